// Package models defines the data structures exchanged with the gif-converter service.
package models

import "strings"

// JobStatus is the server-reported lifecycle state of a conversion job.
// The set of values is owned by the service; unrecognized values are
// preserved as-is and rendered with a titlecased fallback label.
type JobStatus string

// Known job statuses.
const (
	StatusUploading   JobStatus = "uploading"
	StatusQueued      JobStatus = "queued"
	StatusProcessing  JobStatus = "processing"
	StatusCompressing JobStatus = "compressing"
	StatusCompleted   JobStatus = "completed"
	StatusFailed      JobStatus = "failed"
)

var statusLabels = map[JobStatus]string{
	StatusUploading:   "Uploading",
	StatusQueued:      "Queued",
	StatusProcessing:  "Processing",
	StatusCompressing: "Compressing",
	StatusCompleted:   "Completed",
	StatusFailed:      "Failed",
}

// IsTerminal reports whether the job can no longer change state.
func (s JobStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Label returns the display name for the status. Unrecognized values get a
// titlecased rendering of the raw string so new server states still display.
func (s JobStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return titlecase(string(s))
}

func titlecase(s string) string {
	if s == "" {
		return "Unknown"
	}
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// Job is a read-only snapshot of a conversion job as reported by the
// service. Size and dimension fields are only populated once the job
// completes; a zero value means the server has not reported the field.
type Job struct {
	ID              string    `json:"id"`
	Status          JobStatus `json:"status"`
	Progress        int       `json:"progress"`     // 0-100
	CurrentPass     int       `json:"current_pass"` // 0 = single pass
	ErrorMessage    string    `json:"error_message"`
	OriginalSize    int64     `json:"original_size"`
	ConvertedSize   int64     `json:"converted_size"`
	ConvertedWidth  int       `json:"converted_width"`
	ConvertedHeight int       `json:"converted_height"`
}
