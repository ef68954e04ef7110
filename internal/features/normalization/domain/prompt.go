package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Field is a single name/value pair of a StructuredPrompt.
type Field struct {
	Key   string
	Value any
}

// StructuredPrompt is an ordered mapping from field name to value.
// Values are string, json.Number, bool, *StructuredPrompt or []any.
type StructuredPrompt struct {
	fields []Field
	index  map[string]int
}

// NewStructuredPrompt creates an empty prompt.
func NewStructuredPrompt() *StructuredPrompt {
	return &StructuredPrompt{index: make(map[string]int)}
}

// Set stores value under key. An existing key keeps its position.
func (p *StructuredPrompt) Set(key string, value any) {
	if p.index == nil {
		p.index = make(map[string]int)
	}
	if i, ok := p.index[key]; ok {
		p.fields[i].Value = value
		return
	}
	p.index[key] = len(p.fields)
	p.fields = append(p.fields, Field{Key: key, Value: value})
}

// SetDefault stores value only if key is absent.
func (p *StructuredPrompt) SetDefault(key string, value any) {
	if !p.Has(key) {
		p.Set(key, value)
	}
}

// Prepend stores value under key as the first field, moving it if present.
func (p *StructuredPrompt) Prepend(key string, value any) {
	p.Delete(key)
	p.fields = append([]Field{{Key: key, Value: value}}, p.fields...)
	p.reindex()
}

// Delete removes key if present.
func (p *StructuredPrompt) Delete(key string) {
	i, ok := p.index[key]
	if !ok {
		return
	}
	p.fields = append(p.fields[:i], p.fields[i+1:]...)
	p.reindex()
}

// Get returns the value stored under key.
func (p *StructuredPrompt) Get(key string) (any, bool) {
	if p == nil {
		return nil, false
	}
	i, ok := p.index[key]
	if !ok {
		return nil, false
	}
	return p.fields[i].Value, true
}

// String returns the value under key when it is a string.
func (p *StructuredPrompt) String(key string) string {
	v, _ := p.Get(key)
	s, _ := v.(string)
	return s
}

// Has reports whether key is present.
func (p *StructuredPrompt) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Len returns the number of top-level fields.
func (p *StructuredPrompt) Len() int {
	if p == nil {
		return 0
	}
	return len(p.fields)
}

// Keys returns field names in insertion order.
func (p *StructuredPrompt) Keys() []string {
	if p == nil {
		return nil
	}
	keys := make([]string, len(p.fields))
	for i, f := range p.fields {
		keys[i] = f.Key
	}
	return keys
}

// Fields returns a copy of the fields in order.
func (p *StructuredPrompt) Fields() []Field {
	if p == nil {
		return nil
	}
	return append([]Field(nil), p.fields...)
}

// Truncate keeps the first n fields.
func (p *StructuredPrompt) Truncate(n int) {
	if n < 0 || n >= len(p.fields) {
		return
	}
	p.fields = p.fields[:n]
	p.reindex()
}

// Merge copies fields of other that are not yet present, in other's order.
func (p *StructuredPrompt) Merge(other *StructuredPrompt) {
	for _, f := range other.Fields() {
		p.SetDefault(f.Key, f.Value)
	}
}

// ToMap converts the prompt, recursively, into plain maps.
func (p *StructuredPrompt) ToMap() map[string]any {
	if p == nil {
		return nil
	}
	m := make(map[string]any, len(p.fields))
	for _, f := range p.fields {
		m[f.Key] = plainValue(f.Value)
	}
	return m
}

func plainValue(v any) any {
	switch t := v.(type) {
	case *StructuredPrompt:
		return t.ToMap()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plainValue(e)
		}
		return out
	default:
		return v
	}
}

func (p *StructuredPrompt) reindex() {
	p.index = make(map[string]int, len(p.fields))
	for i, f := range p.fields {
		p.index[f.Key] = i
	}
}

// NormalizeKeys rewrites top-level and nested field names to lowercase underscore form.
// When two names collide the first one wins.
func (p *StructuredPrompt) NormalizeKeys() *StructuredPrompt {
	out := NewStructuredPrompt()
	for _, f := range p.Fields() {
		key := NormalizeKey(f.Key)
		if key == "" {
			continue
		}
		v := f.Value
		if nested, ok := v.(*StructuredPrompt); ok {
			v = nested.NormalizeKeys()
		}
		out.SetDefault(key, v)
	}
	return out
}

// NormalizeKey lowercases name and joins its alphanumeric runs with underscores.
// "Output Format" and "outputFormat" both become "output_format".
func NormalizeKey(name string) string {
	var b strings.Builder
	pendingSep := false
	prevLower := false
	for _, r := range strings.TrimSpace(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if unicode.IsUpper(r) && prevLower {
				pendingSep = true
			}
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(unicode.ToLower(r))
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		default:
			pendingSep = true
			prevLower = false
		}
	}
	return b.String()
}

// MarshalJSON writes fields in insertion order.
func (p *StructuredPrompt) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range p.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal field %q: %w", f.Key, err)
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping key order.
func (p *StructuredPrompt) UnmarshalJSON(data []byte) error {
	parsed, err := ParseStructuredPrompt(data)
	if err != nil {
		return err
	}
	*p = *parsed
	return nil
}

// MarshalYAML renders the prompt as an ordered YAML mapping.
func (p *StructuredPrompt) MarshalYAML() (any, error) {
	return p.yamlNode()
}

func (p *StructuredPrompt) yamlNode() (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, f := range p.Fields() {
		val, err := yamlValue(f.Value)
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key},
			val)
	}
	return node, nil
}

func yamlValue(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case *StructuredPrompt:
		return t.yamlNode()
	case json.Number:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: t.String()}, nil
	case []any:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range t {
			n, err := yamlValue(e)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, n)
		}
		return seq, nil
	default:
		n := &yaml.Node{}
		if err := n.Encode(v); err != nil {
			return nil, err
		}
		return n, nil
	}
}

// ParseStructuredPrompt decodes data, which must hold exactly one JSON object.
func ParseStructuredPrompt(data []byte) (*StructuredPrompt, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", tok)
	}
	prompt, err := decodeObject(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after JSON object")
	}
	return prompt, nil
}

// decodeObject reads the remainder of an object whose '{' was consumed.
func decodeObject(dec *json.Decoder) (*StructuredPrompt, error) {
	prompt := NewStructuredPrompt()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		prompt.Set(key, val)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return prompt, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			list := []any{}
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return list, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", t)
		}
	default:
		return t, nil
	}
}
