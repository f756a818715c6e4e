package client

import (
	"fmt"
	"time"
)

// ConnectionError indicates the service could not be reached at all.
type ConnectionError struct {
	BaseURL string
	Err     error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cannot connect to server at %s: %v", e.BaseURL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// SubmissionError indicates the service rejected an upload, or accepted it
// without creating a job. Message carries the server-reported error text
// when one was available.
type SubmissionError struct {
	Message string
}

func (e *SubmissionError) Error() string {
	return "upload failed: " + e.Message
}

// PollError indicates a status fetch failed mid-poll. The poll loop does
// not retry; a single failed fetch aborts the wait.
type PollError struct {
	JobID string
	Err   error
}

func (e *PollError) Error() string {
	return fmt.Sprintf("polling job %s: %v", e.JobID, e.Err)
}

func (e *PollError) Unwrap() error { return e.Err }

// ConversionFailedError reports a job that reached the failed state.
type ConversionFailedError struct {
	Message string
}

func (e *ConversionFailedError) Error() string {
	return "conversion failed: " + e.Message
}

// TimeoutError reports a job that did not reach a terminal state within the
// configured wait timeout.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("job timed out after %.0f seconds", e.Timeout.Seconds())
}

// DownloadError indicates the result artifact could not be retrieved.
type DownloadError struct {
	JobID string
	Err   error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download of job %s failed: %v", e.JobID, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }
