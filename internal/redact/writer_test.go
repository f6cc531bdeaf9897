package redact

import (
	"bytes"
	"strings"
	"testing"

	"github.com/suryansh-23/txguard/internal/types"
)

func TestWriterRedactsAcrossWrites(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out, nil)
	key := strings.Repeat("d", 64)
	chunks := []string{"first line ok\nsecret=0x", key[:30], key[30:] + "\ntail without newline"}
	for _, c := range chunks {
		if _, err := w.Write([]byte(c)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	want := "first line ok\nsecret=" + types.MarkerPrivateKey + "\ntail without newline"
	if out.String() != want {
		t.Fatalf("output = %q", out.String())
	}
}

func TestWriterChunksLongLines(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out, New(WithMaxLength(40)))
	line := strings.Repeat("z", 100)
	if _, err := w.Write([]byte(line + "\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if out.String() != line+"\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestUTF8SafePrefixLen(t *testing.T) {
	buf := []byte("abé")
	if n := utf8SafePrefixLen(buf, 3); n != 2 {
		t.Fatalf("n = %d", n)
	}
	if n := utf8SafePrefixLen(buf, 4); n != 4 {
		t.Fatalf("n = %d", n)
	}
}

func TestWriterFlushWordsKeepsTrailingToken(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out, nil)
	if _, err := w.Write([]byte("Enter key: 0x" + strings.Repeat("e", 20))); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.FlushWords(); err != nil {
		t.Fatalf("flush words: %v", err)
	}
	if out.String() != "Enter key: " {
		t.Fatalf("output = %q", out.String())
	}
	if w.Pending() != 22 {
		t.Fatalf("pending = %d", w.Pending())
	}
	if _, err := w.Write([]byte(strings.Repeat("e", 44) + "\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if out.String() != "Enter key: "+types.MarkerPrivateKey+"\n" {
		t.Fatalf("output = %q", out.String())
	}
}
