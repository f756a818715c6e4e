package history

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/arstropica/gif-converter/internal/models"
)

func openTestTracker(t *testing.T) *Tracker {
	t.Helper()
	tracker, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Failed to open tracker: %v", err)
	}
	t.Cleanup(func() {
		if err := tracker.Close(); err != nil {
			t.Logf("Failed to close tracker: %v", err)
		}
	})
	return tracker
}

func TestRecordAndGet(t *testing.T) {
	tracker := openTestTracker(t)

	err := tracker.RecordSubmission(&Record{
		JobID:      "abc123",
		SourcePath: "/videos/clip.mp4",
		OutputPath: "clip-converted.gif",
	})
	if err != nil {
		t.Fatalf("RecordSubmission failed: %v", err)
	}

	rec, err := tracker.Get("abc123")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if rec.SourcePath != "/videos/clip.mp4" {
		t.Errorf("SourcePath = %q", rec.SourcePath)
	}
	if rec.Status != string(models.StatusQueued) {
		t.Errorf("Status = %q, want initial queued", rec.Status)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("CreatedAt should default to now")
	}
}

func TestGetNotFound(t *testing.T) {
	tracker := openTestTracker(t)

	_, err := tracker.Get("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestRecordSubmissionIsIdempotent(t *testing.T) {
	tracker := openTestTracker(t)

	first := &Record{JobID: "abc123", SourcePath: "/a.mp4"}
	if err := tracker.RecordSubmission(first); err != nil {
		t.Fatalf("RecordSubmission failed: %v", err)
	}
	dupe := &Record{JobID: "abc123", SourcePath: "/other.mp4"}
	if err := tracker.RecordSubmission(dupe); err != nil {
		t.Fatalf("Duplicate RecordSubmission should not error: %v", err)
	}

	rec, err := tracker.Get("abc123")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if rec.SourcePath != "/a.mp4" {
		t.Errorf("SourcePath = %q, original record must win", rec.SourcePath)
	}
}

func TestRecordOutcome(t *testing.T) {
	tracker := openTestTracker(t)

	if err := tracker.RecordSubmission(&Record{JobID: "abc123", SourcePath: "/a.mp4"}); err != nil {
		t.Fatalf("RecordSubmission failed: %v", err)
	}

	job := &models.Job{
		Status:        models.StatusCompleted,
		OriginalSize:  2_000_000,
		ConvertedSize: 500_000,
	}
	if err := tracker.RecordOutcome("abc123", job, "a-converted.gif"); err != nil {
		t.Fatalf("RecordOutcome failed: %v", err)
	}

	rec, err := tracker.Get("abc123")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if rec.Status != string(models.StatusCompleted) {
		t.Errorf("Status = %q, want completed", rec.Status)
	}
	if rec.ConvertedSize != 500_000 {
		t.Errorf("ConvertedSize = %d, want 500000", rec.ConvertedSize)
	}
	if rec.OutputPath != "a-converted.gif" {
		t.Errorf("OutputPath = %q", rec.OutputPath)
	}
}

func TestRecordOutcomeKeepsExistingOutputPath(t *testing.T) {
	tracker := openTestTracker(t)

	if err := tracker.RecordSubmission(&Record{JobID: "abc123", SourcePath: "/a.mp4", OutputPath: "keep.gif"}); err != nil {
		t.Fatalf("RecordSubmission failed: %v", err)
	}
	job := &models.Job{Status: models.StatusFailed, ErrorMessage: "boom"}
	if err := tracker.RecordOutcome("abc123", job, ""); err != nil {
		t.Fatalf("RecordOutcome failed: %v", err)
	}

	rec, err := tracker.Get("abc123")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if rec.OutputPath != "keep.gif" {
		t.Errorf("OutputPath = %q, want preserved", rec.OutputPath)
	}
	if rec.ErrorMessage != "boom" {
		t.Errorf("ErrorMessage = %q", rec.ErrorMessage)
	}
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	tracker := openTestTracker(t)

	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"old", "mid", "new"} {
		err := tracker.RecordSubmission(&Record{
			JobID:      id,
			SourcePath: "/" + id + ".mp4",
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("RecordSubmission failed: %v", err)
		}
	}

	records, err := tracker.Recent(2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Recent returned %d records, want 2", len(records))
	}
	if records[0].JobID != "new" || records[1].JobID != "mid" {
		t.Errorf("Order = %s, %s; want new, mid", records[0].JobID, records[1].JobID)
	}
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	tracker, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := tracker.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
