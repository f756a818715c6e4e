package commands

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arstropica/gif-converter/internal/models"
)

func TestStatusCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/jobs/abc123" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id":"abc123","status":"processing","progress":50,"current_pass":2}`))
	}))
	defer server.Close()

	code := Status([]string{"--job-id", "abc123", "--base-url", server.URL})
	if code != ExitSuccess {
		t.Errorf("Exit code = %d, want %d", code, ExitSuccess)
	}
}

func TestStatusCommandRequiresJobID(t *testing.T) {
	if code := Status([]string{}); code != ExitFailure {
		t.Errorf("Exit code = %d, want %d", code, ExitFailure)
	}
}

func TestStatusCommandServerDown(t *testing.T) {
	code := Status([]string{"--job-id", "abc123", "--base-url", "http://127.0.0.1:1"})
	if code != ExitFailure {
		t.Errorf("Exit code = %d, want %d", code, ExitFailure)
	}
}

func TestJobToRow(t *testing.T) {
	job := &models.Job{
		ID:              "abc123",
		Status:          models.StatusProcessing,
		Progress:        50,
		CurrentPass:     2,
		OriginalSize:    2_000_000,
		ConvertedWidth:  480,
		ConvertedHeight: 270,
	}

	headers, row := jobToRow(job)
	if len(headers) != len(row) {
		t.Fatalf("Row has %d cells for %d headers", len(row), len(headers))
	}
	if row[1] != "Processing" {
		t.Errorf("Status cell = %q", row[1])
	}
	if row[2] != "50%" {
		t.Errorf("Progress cell = %q", row[2])
	}
	if row[3] != "2" {
		t.Errorf("Pass cell = %q", row[3])
	}
	if row[5] != "-" {
		t.Errorf("Converted cell = %q, want placeholder before completion", row[5])
	}
	if row[6] != "480x270" {
		t.Errorf("Dimensions cell = %q", row[6])
	}
}
