package sink_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/reoring/omnitree/internal/sink"
)

type halfWriter struct{ buf bytes.Buffer }

func (h *halfWriter) Write(p []byte) (int, error) {
	n := len(p) / 2
	h.buf.Write(p[:n])
	return n, nil
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriter_BuffersUntilFlush(t *testing.T) {
	var out bytes.Buffer
	w := sink.New(&out)
	if err := w.WriteString("{}"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected buffered output before Flush, got %q", out.String())
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if out.String() != "{}" || w.Written() != 2 {
		t.Fatalf("got %q written=%d", out.String(), w.Written())
	}
}

func TestWriter_ShortWriteIsSticky(t *testing.T) {
	w := sink.New(&halfWriter{})
	_ = w.WriteString("abcdef")
	err := w.Flush()
	if !errors.Is(err, io.ErrShortWrite) {
		t.Fatalf("expected io.ErrShortWrite, got %v", err)
	}
	if err := w.WriteString("x"); !errors.Is(err, io.ErrShortWrite) {
		t.Fatalf("expected sticky error, got %v", err)
	}
}

func TestWriter_DestinationErrorIsKept(t *testing.T) {
	w := sink.New(failWriter{})
	_ = w.WriteString("abc")
	if err := w.Flush(); err == nil || err.Error() != "disk full" {
		t.Fatalf("expected destination error, got %v", err)
	}
	if w.Err() == nil {
		t.Fatalf("Err should report the recorded error")
	}
}
