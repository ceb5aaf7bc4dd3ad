// Package sink wraps an io.Writer for the wire encoders: writes are buffered
// and the first write error is kept and returned by every later call.
package sink

import (
	"bufio"
	"io"
)

// Writer is a buffered writer with a sticky error.
//
// A destination that accepts fewer bytes than requested without reporting an
// error is recorded as io.ErrShortWrite. Short writes are not retried.
type Writer struct {
	dst     io.Writer
	buf     *bufio.Writer
	err     error
	written int64
}

// New wraps w.
func New(w io.Writer) *Writer {
	s := &Writer{dst: w}
	s.buf = bufio.NewWriter(shortWriteGuard{s})
	return s
}

// WriteString appends s to the buffer.
func (s *Writer) WriteString(str string) error {
	if s.err != nil {
		return s.err
	}
	if str == "" {
		return nil
	}
	if _, err := s.buf.WriteString(str); err != nil {
		s.err = err
	}
	return s.err
}

// Write implements io.Writer on top of the buffer.
func (s *Writer) Write(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := s.buf.Write(p)
	if err != nil {
		s.err = err
	}
	return n, err
}

// Flush pushes buffered bytes to the destination.
func (s *Writer) Flush() error {
	if s.err != nil {
		return s.err
	}
	if err := s.buf.Flush(); err != nil {
		s.err = err
	}
	return s.err
}

// Err returns the first recorded error.
func (s *Writer) Err() error { return s.err }

// Written returns the number of bytes accepted by the destination so far.
func (s *Writer) Written() int64 { return s.written }

type shortWriteGuard struct{ s *Writer }

func (g shortWriteGuard) Write(p []byte) (int, error) {
	n, err := g.s.dst.Write(p)
	g.s.written += int64(n)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return n, err
}
