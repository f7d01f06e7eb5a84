// SPDX-License-Identifier: MPL-2.0

package progress

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestReader_NotifiesMonotonically(t *testing.T) {
	t.Parallel()

	payload := bytes.Repeat([]byte("x"), 10_000)

	var calls []int64
	r := NewReader(bytes.NewReader(payload), int64(len(payload)), func(sent, total int64) {
		if total != int64(len(payload)) {
			t.Errorf("got total %d, want %d", total, len(payload))
		}
		calls = append(calls, sent)
	})

	// Drain through a small buffer to force many reads.
	if _, err := io.CopyBuffer(io.Discard, r, make([]byte, 512)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(calls) == 0 {
		t.Fatal("expected at least one notification, got none")
	}

	prev := int64(-1)
	for i, sent := range calls {
		if sent < prev {
			t.Fatalf("notification %d went backwards: %d after %d", i, sent, prev)
		}
		prev = sent
	}

	if last := calls[len(calls)-1]; last != int64(len(payload)) {
		t.Errorf("final notification: got sent %d, want %d", last, len(payload))
	}
}

func TestReader_EmptyPayloadStillReportsCompletion(t *testing.T) {
	t.Parallel()

	var calls []int64
	r := NewReader(bytes.NewReader(nil), 0, func(sent, _ int64) {
		calls = append(calls, sent)
	})

	if _, err := io.Copy(io.Discard, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(calls) != 1 {
		t.Fatalf("expected exactly 1 notification, got %d", len(calls))
	}
	if calls[0] != 0 {
		t.Errorf("got sent %d, want 0", calls[0])
	}
}

func TestReader_ClampsToTotal(t *testing.T) {
	t.Parallel()

	// Total deliberately understates the payload size; the reader must not
	// report past it.
	payload := []byte("0123456789")
	var maxSent int64
	r := NewReader(bytes.NewReader(payload), 4, func(sent, _ int64) {
		if sent > maxSent {
			maxSent = sent
		}
	})

	if _, err := io.Copy(io.Discard, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if maxSent != 4 {
		t.Errorf("got max sent %d, want 4", maxSent)
	}
}

func TestDiscard_ProducesNoOutput(t *testing.T) {
	t.Parallel()

	payload := []byte("hello")
	r := NewReader(bytes.NewReader(payload), int64(len(payload)), Discard)

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("got payload %q, want %q", got, "hello")
	}
}

func TestBar_TerminatesWithNewline(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	bar := NewBar(&buf, "pkg")

	bar.Update(50, 100)
	bar.Update(100, 100)

	out := buf.String()
	if !strings.HasSuffix(out, "\n") {
		t.Errorf("expected output to end with newline, got %q", out)
	}
	if !strings.Contains(out, "100%") {
		t.Errorf("expected output to contain 100%%, got %q", out)
	}
}

func TestBar_StopsDrawingAfterCompletion(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	bar := NewBar(&buf, "pkg")

	bar.Update(100, 100)
	afterDone := buf.Len()
	bar.Update(100, 100)

	if buf.Len() != afterDone {
		t.Errorf("bar kept drawing after completion: %d bytes before, %d after", afterDone, buf.Len())
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		size int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.00 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
		{3 * 1024 * 1024 * 1024, "3.00 GB"},
	}

	for _, tt := range tests {
		if got := formatBytes(tt.size); got != tt.want {
			t.Errorf("formatBytes(%d): got %q, want %q", tt.size, got, tt.want)
		}
	}
}
