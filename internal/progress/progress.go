// SPDX-License-Identifier: MPL-2.0

package progress

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// barWidth is the number of fill cells in a rendered progress bar.
const barWidth = 28

var (
	barFillStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED"))
	barEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	barLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
)

// Sink receives progress notifications during an upload. sent is the number
// of bytes transferred so far and total is the full payload size. sent never
// decreases between calls and the final call reports sent == total.
type Sink func(sent, total int64)

// Discard is a Sink that ignores all notifications. It is used when progress
// reporting is disabled; the transfer itself is unaffected.
func Discard(int64, int64) {}

// Reader wraps an io.Reader and notifies a Sink as bytes are consumed.
// It is handed to the HTTP client as the request body, so the counts track
// what the transport has actually read.
type Reader struct {
	r     io.Reader
	sink  Sink
	total int64
	sent  int64
	done  bool
}

// NewReader creates a counting Reader over r. total is the full payload size
// in bytes; sink must not be nil (use Discard to disable reporting).
func NewReader(r io.Reader, total int64, sink Sink) *Reader {
	return &Reader{r: r, sink: sink, total: total}
}

// Read implements io.Reader. Each successful read advances the count and
// notifies the sink; counts are clamped to total so a final notification of
// exactly (total, total) is guaranteed even for over-reading transports.
func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if n > 0 {
		r.sent += int64(n)
		if r.sent > r.total {
			r.sent = r.total
		}
		r.notify()
	}
	if err == io.EOF && !r.done {
		r.done = true
		r.sent = r.total
		r.notify()
	}
	return n, err
}

func (r *Reader) notify() {
	if r.sink != nil {
		r.sink(r.sent, r.total)
	}
}

// Bar renders an in-place progress bar to a writer. Each Update call redraws
// the bar on the current line; the draw that reaches 100% appends a newline
// so subsequent output starts on a fresh line.
type Bar struct {
	w        io.Writer
	label    string
	finished bool
}

// NewBar creates a Bar writing to w. label is printed before the bar,
// typically the artifact being uploaded.
func NewBar(w io.Writer, label string) *Bar {
	return &Bar{w: w, label: label}
}

// Update redraws the bar for the given byte counts. It is safe to call with
// sent == total multiple times; the terminating newline is written once.
func (b *Bar) Update(sent, total int64) {
	if b.finished {
		return
	}

	pct := 1.0
	if total > 0 {
		pct = float64(sent) / float64(total)
	}
	filled := int(pct * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}

	bar := barFillStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", barWidth-filled))

	fmt.Fprintf(b.w, "\r%s %s %s", b.label, bar,
		barLabelStyle.Render(fmt.Sprintf("%3.0f%% (%s / %s)", pct*100, formatBytes(sent), formatBytes(total))))

	if sent >= total {
		b.finished = true
		fmt.Fprintln(b.w)
	}
}

// Sink returns b.Update as a Sink for use with NewReader.
func (b *Bar) Sink() Sink {
	return b.Update
}

// formatBytes renders a byte count with a binary unit suffix.
func formatBytes(size int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)

	switch {
	case size >= gb:
		return fmt.Sprintf("%.2f GB", float64(size)/float64(gb))
	case size >= mb:
		return fmt.Sprintf("%.2f MB", float64(size)/float64(mb))
	case size >= kb:
		return fmt.Sprintf("%.2f KB", float64(size)/float64(kb))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
