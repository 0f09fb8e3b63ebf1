package markup

// MarkupWriter is what formatters write inline markup through: a suppression
// scope plus format-aware helpers for links, code and text.
type MarkupWriter struct {
	*Scope
	dialect Dialect
	err     error
}

// NewMarkupWriter opens a suppression scope on w. The caller must Close the
// returned writer; it fails if w is already suppressed.
func NewMarkupWriter(w *Writer) (*MarkupWriter, error) {
	s, err := w.Suppress()
	if err != nil {
		return nil, err
	}
	return &MarkupWriter{Scope: s, dialect: w.dialect}, nil
}

// Dialect returns the inline syntax helpers for the underlying format.
func (m *MarkupWriter) Dialect() Dialect { return m.dialect }

// Format returns the underlying output format.
func (m *MarkupWriter) Format() Format { return m.dialect.Format() }

// WriteRaw writes markup verbatim.
func (m *MarkupWriter) WriteRaw(markup string) error {
	return m.record(m.WriteString(markup))
}

// WriteText writes escaped plain text.
func (m *MarkupWriter) WriteText(text string) error {
	return m.record(m.WriteString(m.dialect.Escape(text)))
}

// WriteLink writes a documentation link. An empty url degrades to plain text.
func (m *MarkupWriter) WriteLink(label, url string) error {
	if url == "" {
		return m.WriteText(label)
	}
	return m.record(m.WriteString(m.dialect.Link(m.dialect.Escape(label), url)))
}

// WriteCode writes text as an inline code span.
func (m *MarkupWriter) WriteCode(text string) error {
	return m.record(m.WriteString(m.dialect.Code(text)))
}

// Err returns the first write error seen by the helpers.
func (m *MarkupWriter) Err() error { return m.err }

func (m *MarkupWriter) record(_ int, err error) error {
	if err != nil && m.err == nil {
		m.err = err
	}
	return err
}
