package worker

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

const barWidth = 30

// Progress prints a single-line progress bar for a batch of sheets.
type Progress struct {
	startTime time.Time
	output    io.Writer
	label     string
	total     int
	completed int
	failed    int
	mu        sync.RWMutex
	enabled   bool
}

// NewProgress creates a tracker that writes to stderr when enabled.
func NewProgress(total int, enabled bool) *Progress {
	return NewProgressWriter(os.Stderr, "sheets", total, enabled)
}

// NewProgressWriter creates a tracker writing to w. label names the unit,
// e.g. "sheets".
func NewProgressWriter(w io.Writer, label string, total int, enabled bool) *Progress {
	return &Progress{
		startTime: time.Now(),
		output:    w,
		label:     label,
		total:     total,
		enabled:   enabled,
	}
}

// Update records the pool's counters.
func (p *Progress) Update(completed, total, failed int) {
	p.mu.Lock()
	p.completed = completed
	p.total = total
	p.failed = failed
	p.mu.Unlock()

	if p.enabled {
		p.Print()
	}
}

// Callback returns Update as a ProgressFunc.
func (p *Progress) Callback() ProgressFunc {
	return p.Update
}

type snapshot struct {
	completed, total, failed int
	elapsed                  time.Duration
}

func (p *Progress) snapshot() snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return snapshot{
		completed: p.completed,
		total:     p.total,
		failed:    p.failed,
		elapsed:   time.Since(p.startTime),
	}
}

func (s snapshot) rate() float64 {
	if s.elapsed <= 0 {
		return 0
	}
	return float64(s.completed) / s.elapsed.Seconds()
}

// Line renders the current progress bar without a carriage return.
func (p *Progress) Line() string {
	s := p.snapshot()

	filled := 0
	if s.total > 0 {
		filled = s.completed * barWidth / s.total
	}
	if filled > barWidth {
		filled = barWidth
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s%s] %d/%d %s",
		strings.Repeat("█", filled), strings.Repeat("░", barWidth-filled),
		s.completed, s.total, p.label)
	if s.failed > 0 {
		fmt.Fprintf(&b, " (%d failed)", s.failed)
	}
	rate := s.rate()
	fmt.Fprintf(&b, " - %.1f %s/sec", rate, p.label)

	switch {
	case s.completed >= s.total:
		fmt.Fprintf(&b, " - Done in %s", formatDuration(s.elapsed))
	case rate > 0:
		eta := time.Duration(float64(s.total-s.completed)/rate) * time.Second
		fmt.Fprintf(&b, " - ETA: %s", formatDuration(eta))
	}

	return b.String()
}

// Print redraws the progress line in place.
func (p *Progress) Print() {
	// Trailing spaces clear leftovers of a longer previous line.
	fmt.Fprint(p.output, "\r"+p.Line()+"          ")
}

// Done prints the final line followed by a newline.
func (p *Progress) Done() {
	if p.enabled {
		p.Print()
		fmt.Fprintln(p.output)
	}
}

// Summary describes the finished batch.
func (p *Progress) Summary() string {
	s := p.snapshot()
	return fmt.Sprintf("Rendered %d/%d %s (%d failed) in %s (%.1f %s/sec)",
		s.completed-s.failed, s.total, p.label, s.failed, formatDuration(s.elapsed), s.rate(), p.label)
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.0fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
	}
}
