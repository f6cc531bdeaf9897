package redact

import (
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/suryansh-23/txguard/internal/types"
)

// Writer redacts a byte stream line by line before writing it to out.
// Lines longer than the redactor's window are emitted in window-sized
// chunks; a secret split across a chunk boundary is not detected.
type Writer struct {
	out      io.Writer
	redactor *Redactor
	buffer   []byte
	chunk    int
}

// NewWriter returns a streaming redactor writing to out.
func NewWriter(out io.Writer, r *Redactor) *Writer {
	if r == nil {
		r = std
	}
	return &Writer{
		out:      out,
		redactor: r,
		chunk:    r.maxLength - len(types.MarkerTruncated),
	}
}

// Write buffers p and emits every complete line.
func (w *Writer) Write(p []byte) (int, error) {
	w.buffer = append(w.buffer, p...)
	for {
		if idx := bytes.IndexByte(w.buffer, '\n'); idx >= 0 && idx <= w.chunk {
			if err := w.emit(w.buffer[:idx], true); err != nil {
				return 0, err
			}
			w.buffer = w.buffer[idx+1:]
			continue
		}
		if len(w.buffer) < w.chunk {
			return len(p), nil
		}
		n := utf8SafePrefixLen(w.buffer, w.chunk)
		if n == 0 {
			n = w.chunk
		}
		if err := w.emit(w.buffer[:n], false); err != nil {
			return 0, err
		}
		w.buffer = w.buffer[n:]
	}
}

// Flush redacts and writes any buffered partial line.
func (w *Writer) Flush() error {
	if len(w.buffer) == 0 {
		return nil
	}
	err := w.emit(w.buffer, false)
	w.buffer = nil
	return err
}

// FlushWords writes the buffered partial line up to its last blank, keeping
// the trailing word in case more of it arrives. Interactive prompts such as
// "Password: " become visible without waiting for a newline.
func (w *Writer) FlushWords() error {
	idx := bytes.LastIndexAny(w.buffer, " \t\r")
	if idx < 0 {
		return nil
	}
	err := w.emit(w.buffer[:idx+1], false)
	w.buffer = w.buffer[idx+1:]
	return err
}

// Pending reports how many bytes are buffered.
func (w *Writer) Pending() int {
	return len(w.buffer)
}

// Close flushes pending data.
func (w *Writer) Close() error {
	return w.Flush()
}

func (w *Writer) emit(line []byte, newline bool) error {
	out := w.redactor.Text(string(line))
	if newline {
		out += "\n"
	}
	_, err := io.WriteString(w.out, out)
	return err
}

// utf8SafePrefixLen returns the largest n <= max that does not split a rune.
func utf8SafePrefixLen(buf []byte, max int) int {
	if max > len(buf) {
		max = len(buf)
	}
	head := buf[:max]
	start := len(head) - 1
	for start >= 0 && !utf8.RuneStart(head[start]) {
		start--
	}
	if start < 0 {
		return 0
	}
	if utf8.FullRune(head[start:]) {
		return max
	}
	return start
}
