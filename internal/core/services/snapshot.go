package services

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/friesencafe/statusportal/internal/core/domain"
)

// requiredSequences are the keys a persisted document must carry.
var requiredSequences = []string{"status", "nextActions", "documents", "changelog"}

// EncodeSnapshot renders doc as two-space indented JSON with a trailing
// newline. Keys follow the field order of domain.PortalDocument.
func EncodeSnapshot(doc domain.PortalDocument) ([]byte, error) {
	return encode(doc, "  ")
}

// DecodeSnapshot parses an encoded portal document.
// Content that is not a JSON object, lacks one of the entry sequences,
// or has mistyped fields is reported as domain.ErrMalformedDocument.
func DecodeSnapshot(data []byte) (domain.PortalDocument, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return domain.PortalDocument{}, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}
	if fields == nil {
		return domain.PortalDocument{}, fmt.Errorf("%w: not an object", domain.ErrMalformedDocument)
	}
	for _, key := range requiredSequences {
		raw, ok := fields[key]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return domain.PortalDocument{}, fmt.Errorf("%w: missing %q", domain.ErrMalformedDocument, key)
		}
	}

	var doc domain.PortalDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.PortalDocument{}, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}
	doc.Normalise()
	return doc, nil
}

// encodeCompact is the slot encoding: same keys, no indentation.
func encodeCompact(doc domain.PortalDocument) ([]byte, error) {
	return encode(doc, "")
}

func encode(doc domain.PortalDocument, indent string) ([]byte, error) {
	// Clone yields non-nil sections without touching the caller's slices.
	doc = doc.Clone()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding portal document: %w", err)
	}
	return buf.Bytes(), nil
}
