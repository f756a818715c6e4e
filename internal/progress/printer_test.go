package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestUpdateBarCells(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, true)

	p.Update("Processing", 50, 0)

	out := buf.String()
	if !strings.HasPrefix(out, "\r") {
		t.Errorf("Expected carriage return prefix, got %q", out)
	}
	if got := strings.Count(out, filledGlyph); got != 15 {
		t.Errorf("Filled cells = %d, want 15", got)
	}
	if got := strings.Count(out, emptyGlyph); got != 15 {
		t.Errorf("Empty cells = %d, want 15", got)
	}
	if !strings.Contains(out, "Processing: [") {
		t.Errorf("Expected label prefix, got %q", out)
	}
	if !strings.Contains(out, "] 50%") {
		t.Errorf("Expected percent suffix, got %q", out)
	}
	if !strings.HasSuffix(out, pad) {
		t.Errorf("Expected trailing erase pad, got %q", out)
	}
}

func TestUpdatePassAnnotation(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, true)

	p.Update("Processing", 10, 2)
	if !strings.Contains(buf.String(), "(Pass 2/3)") {
		t.Errorf("Expected pass annotation, got %q", buf.String())
	}

	buf.Reset()
	p.Update("Processing", 10, 0)
	if strings.Contains(buf.String(), "Pass") {
		t.Errorf("Pass 0 must not be annotated, got %q", buf.String())
	}
}

func TestUpdateClampsPercent(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, true)

	p.Update("Queued", -5, 0)
	if got := strings.Count(buf.String(), filledGlyph); got != 0 {
		t.Errorf("Filled cells = %d, want 0 for negative percent", got)
	}

	buf.Reset()
	p.Update("Queued", 150, 0)
	if got := strings.Count(buf.String(), emptyGlyph); got != 0 {
		t.Errorf("Empty cells = %d, want 0 for percent above 100", got)
	}
}

func TestFinishTerminatesLine(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, true)

	p.Finish("Completed")

	out := buf.String()
	if !strings.HasSuffix(out, "\n") {
		t.Errorf("Finish must end with newline, got %q", out)
	}
	if !strings.Contains(out, "] 100%") {
		t.Errorf("Finish must render 100%%, got %q", out)
	}
	if got := strings.Count(out, filledGlyph); got != barWidth {
		t.Errorf("Filled cells = %d, want %d", got, barWidth)
	}
}

func TestBreakWritesNewline(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, true)

	p.Break()
	if buf.String() != "\n" {
		t.Errorf("Break output = %q, want newline", buf.String())
	}
}

func TestDisabledPrinterIsSilent(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, false)

	p.Update("Processing", 50, 1)
	p.Finish("Completed")
	p.Break()
	p.Println("Saved: out.gif")

	if buf.Len() != 0 {
		t.Errorf("Disabled printer wrote %q", buf.String())
	}
}
