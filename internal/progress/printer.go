// Package progress renders an in-place terminal progress bar for job
// polling and downloads.
package progress

import (
	"fmt"
	"io"
	"strings"
)

const (
	barWidth = 30

	filledGlyph = "█"
	emptyGlyph  = "░"

	// trailing pad wide enough to erase a longer previous line
	pad = "          "

	// the service's multi-pass mode always runs three passes
	totalPasses = 3
)

// Printer writes progress lines to a single output stream, rewriting the
// current line in place until a phase finishes. A disabled Printer turns
// every method into a no-op so callers never branch on it.
type Printer struct {
	w       io.Writer
	enabled bool
}

// New creates a Printer writing to w. When enabled is false all output is
// suppressed.
func New(w io.Writer, enabled bool) *Printer {
	return &Printer{w: w, enabled: enabled}
}

// Enabled reports whether the printer produces output.
func (p *Printer) Enabled() bool { return p.enabled }

// Update rewrites the current progress line:
//
//	Processing (Pass 2/3): [███████████████░░░░░░░░░░░░░░░] 50%
//
// currentPass 0 omits the pass annotation.
func (p *Printer) Update(label string, percent, currentPass int) {
	if !p.enabled {
		return
	}
	fmt.Fprintf(p.w, "\r%s%s", renderLine(label, percent, currentPass), pad)
}

// Finish writes a final 100% line for the phase, terminated with a newline.
func (p *Printer) Finish(label string) {
	if !p.enabled {
		return
	}
	fmt.Fprintf(p.w, "\r%s%s\n", renderLine(label, 100, 0), pad)
}

// Break ends the current progress line without a summary, leaving the
// stream ready for error output.
func (p *Printer) Break() {
	if !p.enabled {
		return
	}
	fmt.Fprintln(p.w)
}

// Println writes a plain status line, such as upload announcements and the
// final summary. Suppressed like all other output when disabled.
func (p *Printer) Println(msg string) {
	if !p.enabled {
		return
	}
	fmt.Fprintln(p.w, msg)
}

func renderLine(label string, percent, currentPass int) string {
	if percent < 0 {
		percent = 0
	} else if percent > 100 {
		percent = 100
	}
	filled := barWidth * percent / 100

	var b strings.Builder
	b.WriteString(label)
	if currentPass > 0 {
		fmt.Fprintf(&b, " (Pass %d/%d)", currentPass, totalPasses)
	}
	b.WriteString(": [")
	b.WriteString(strings.Repeat(filledGlyph, filled))
	b.WriteString(strings.Repeat(emptyGlyph, barWidth-filled))
	fmt.Fprintf(&b, "] %d%%", percent)
	return b.String()
}
