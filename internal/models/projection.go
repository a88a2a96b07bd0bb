package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ProjectionField is a single key of a projection.
// Value is nil when the source response did not define the key.
type ProjectionField struct {
	Key   string
	Value json.RawMessage
}

// Projection is the response restricted to the mandatory fields plus the
// selected optional fields, in insertion order
type Projection struct {
	Fields []ProjectionField
}

// Project builds the projection of resp for the given selection.
// Mandatory fields are always listed, even when resp lacks them; selected
// fields are listed only when resp defines them.
func Project(resp Response, selection FilterSelection) *Projection {
	p := &Projection{Fields: make([]ProjectionField, 0, len(MandatoryFields)+len(selection))}

	for _, key := range MandatoryFields {
		p.Fields = append(p.Fields, ProjectionField{Key: key, Value: resp[key]})
	}

	for _, opt := range selection {
		key := string(opt)
		if !resp.Has(key) || p.Has(key) {
			continue
		}
		p.Fields = append(p.Fields, ProjectionField{Key: key, Value: resp[key]})
	}

	return p
}

// Keys returns the projection keys in order
func (p *Projection) Keys() []string {
	keys := make([]string, 0, len(p.Fields))
	for _, f := range p.Fields {
		keys = append(keys, f.Key)
	}
	return keys
}

// Has reports whether key is part of the projection
func (p *Projection) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Get returns the raw value for key and whether key is part of the projection
func (p *Projection) Get(key string) (json.RawMessage, bool) {
	for _, f := range p.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// MarshalJSON writes the fields in order, skipping absent values
func (p *Projection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	first := true
	for _, f := range p.Fields {
		if f.Value == nil {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false

		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to encode key %s: %w", f.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		if err := json.Compact(&buf, f.Value); err != nil {
			return nil, fmt.Errorf("failed to encode value of %s: %w", f.Key, err)
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Format renders the projection as JSON indented by two spaces
func (p *Projection) Format() (string, error) {
	raw, err := p.MarshalJSON()
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return "", fmt.Errorf("failed to format projection: %w", err)
	}
	return out.String(), nil
}
