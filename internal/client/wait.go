package client

import (
	"context"
	"time"

	"github.com/arstropica/gif-converter/internal/models"
)

// Default wait parameters.
const (
	DefaultWaitTimeout  = 5 * time.Minute
	DefaultPollInterval = 500 * time.Millisecond
)

// ProgressReporter receives poll-by-poll progress from WaitForCompletion
// and chunk-by-chunk progress from Download. A nil reporter disables all
// progress output without changing control flow.
type ProgressReporter interface {
	// Update renders one in-place progress line.
	Update(label string, percent, currentPass int)
	// Finish renders a final 100% line terminated with a newline.
	Finish(label string)
	// Break terminates the current progress line without a summary,
	// used before error output.
	Break()
}

// WaitOptions configures WaitForCompletion.
type WaitOptions struct {
	// Timeout bounds the total wall-clock wait. Default: DefaultWaitTimeout.
	Timeout time.Duration

	// Interval is the fixed sleep between polls. Default: DefaultPollInterval.
	// The service finishes jobs in seconds to minutes, so a fixed short
	// interval keeps feedback current; backoff would only delay it.
	Interval time.Duration

	// Reporter receives progress updates. May be nil.
	Reporter ProgressReporter
}

// WaitForCompletion polls the job until it reaches a terminal state and
// returns the final snapshot. A failed fetch aborts immediately with a
// PollError; a failed job yields a ConversionFailedError; exceeding the
// timeout yields a TimeoutError. Transient states may occur in any order,
// so no progression through them is assumed.
func (c *Client) WaitForCompletion(ctx context.Context, jobID string, opts WaitOptions) (*models.Job, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultWaitTimeout
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultPollInterval
	}

	start := time.Now()
	for {
		if time.Since(start) > opts.Timeout {
			return nil, &TimeoutError{Timeout: opts.Timeout}
		}

		job, err := c.GetJob(ctx, jobID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, &PollError{JobID: jobID, Err: err}
		}

		if opts.Reporter != nil {
			opts.Reporter.Update(job.Status.Label(), job.Progress, job.CurrentPass)
		}

		switch job.Status {
		case models.StatusCompleted:
			if opts.Reporter != nil {
				opts.Reporter.Finish(models.StatusCompleted.Label())
			}
			return job, nil
		case models.StatusFailed:
			if opts.Reporter != nil {
				opts.Reporter.Break()
			}
			msg := job.ErrorMessage
			if msg == "" {
				msg = "Unknown error"
			}
			return nil, &ConversionFailedError{Message: msg}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(opts.Interval):
		}
	}
}
