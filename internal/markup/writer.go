package markup

import (
	"errors"
	"io"
)

// ErrAlreadySuppressed is returned when encoding is suppressed on a Writer that
// already has an active suppression scope.
var ErrAlreadySuppressed = errors.New("markup: encoding already suppressed on this writer")

// Writer wraps an output sink and encodes everything written through it for the
// page format. Encoding can be switched off for one Scope at a time so that
// already formatted markup passes through untouched.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	out        io.Writer
	dialect    Dialect
	suppressed bool
}

// NewWriter returns an encoding writer for format on top of out.
func NewWriter(out io.Writer, format Format) *Writer {
	return &Writer{out: out, dialect: DialectFor(format)}
}

// Format returns the output format this writer encodes for.
func (w *Writer) Format() Format { return w.dialect.Format() }

// Dialect returns the inline syntax helpers for the writer's format.
func (w *Writer) Dialect() Dialect { return w.dialect }

// Suppressed reports whether a suppression scope is currently active.
func (w *Writer) Suppressed() bool { return w.suppressed }

// Write encodes p unless encoding is suppressed. The returned count is the
// number of input bytes consumed, not the number of encoded bytes written.
func (w *Writer) Write(p []byte) (int, error) {
	if _, err := w.WriteString(string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteString encodes s unless encoding is suppressed.
func (w *Writer) WriteString(s string) (int, error) {
	if w.suppressed {
		return io.WriteString(w.out, s)
	}
	if _, err := io.WriteString(w.out, w.dialect.Escape(s)); err != nil {
		return 0, err
	}
	return len(s), nil
}

// Suppress turns encoding off until the returned scope is closed. It fails with
// ErrAlreadySuppressed if another scope is still open on w.
func (w *Writer) Suppress() (*Scope, error) {
	if w.suppressed {
		return nil, ErrAlreadySuppressed
	}
	w.suppressed = true
	return &Scope{w: w}, nil
}

// WithSuppressed runs fn inside a suppression scope. Encoding is restored when
// fn returns, fails or panics.
func (w *Writer) WithSuppressed(fn func(s *Scope) error) error {
	s, err := w.Suppress()
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

// Scope is an active suppression on a Writer. Writes through a Scope reach the
// sink verbatim. Close restores encoding and is safe to call more than once.
type Scope struct {
	w      *Writer
	closed bool
}

func (s *Scope) Write(p []byte) (int, error) {
	if s.closed {
		return 0, errors.New("markup: write to closed scope")
	}
	return s.w.out.Write(p)
}

func (s *Scope) WriteString(text string) (int, error) {
	if s.closed {
		return 0, errors.New("markup: write to closed scope")
	}
	return io.WriteString(s.w.out, text)
}

// WriteText writes plain text encoded for the format even though the scope is
// suppressing the writer's automatic encoding.
func (s *Scope) WriteText(text string) error {
	_, err := s.WriteString(s.w.dialect.Escape(text))
	return err
}

// Close ends the scope.
func (s *Scope) Close() error {
	if !s.closed {
		s.closed = true
		s.w.suppressed = false
	}
	return nil
}
