package topics

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates a document opened a YAML front matter
// block but never closed it.
var ErrMissingClosingDelimiter = errors.New("yaml front matter start delimiter found but closing delimiter is missing")

// splitFrontMatter separates a leading `---` delimited YAML block from the
// markdown body. Documents without one return a nil header and the full
// content as body. CRLF documents are handled.
func splitFrontMatter(content []byte) (header, body []byte, err error) {
	nl := []byte("\n")
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		nl = []byte("\r\n")
	}

	open := append([]byte("---"), nl...)
	if !bytes.HasPrefix(content, open) {
		return nil, content, nil
	}
	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], nil
	}

	closing := append(append([]byte{}, nl...), open...)
	if idx := bytes.Index(rest, closing); idx >= 0 {
		return rest[:idx+len(nl)], rest[idx+len(closing):], nil
	}
	// A closing delimiter may end the file without a trailing newline.
	if tail := append(append([]byte{}, nl...), "---"...); bytes.HasSuffix(rest, tail) {
		return rest[:len(rest)-len(tail)+len(nl)], []byte{}, nil
	}
	if bytes.Equal(rest, []byte("---")) {
		return []byte{}, []byte{}, nil
	}
	return nil, nil, ErrMissingClosingDelimiter
}

// parseFrontMatter decodes a YAML header into a map. An empty header yields an
// empty map.
func parseFrontMatter(header []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(bytes.TrimSpace(header)) == 0 {
		return fields, nil
	}
	if err := yaml.Unmarshal(header, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}
