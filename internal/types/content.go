// Package types provides type definitions for structured data used throughout the resume export engine.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind discriminates the shape carried by a Content value.
type Kind int

const (
	// KindNull is the zero value: absent or JSON null content.
	KindNull Kind = iota
	// KindText is a plain string.
	KindText
	// KindList is an ordered list of items (strings, records, or anything else).
	KindList
	// KindRecord is an ordered set of named fields.
	KindRecord
	// KindScalar is a number or boolean, kept as its literal text.
	KindScalar
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindList:
		return "list"
	case KindRecord:
		return "record"
	case KindScalar:
		return "scalar"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Content is the polymorphic body of a section. Producers (parser, AI rewriter,
// user edits) do not share a schema, so the value is a tagged variant rather
// than a fixed struct. Only the fields matching Kind are meaningful.
type Content struct {
	Kind   Kind
	Text   string    // KindText value, or the literal of a KindScalar
	Items  []Content // KindList elements
	Fields []Field   // KindRecord fields, in source order
}

// Field is a single named value inside a record.
type Field struct {
	Key   string
	Value Content
}

// TextContent builds a KindText value.
func TextContent(s string) Content {
	return Content{Kind: KindText, Text: s}
}

// ListContent builds a KindList value.
func ListContent(items ...Content) Content {
	return Content{Kind: KindList, Items: items}
}

// RecordContent builds a KindRecord value.
func RecordContent(fields ...Field) Content {
	return Content{Kind: KindRecord, Fields: fields}
}

// ScalarContent builds a KindScalar value from its literal text.
func ScalarContent(literal string) Content {
	return Content{Kind: KindScalar, Text: literal}
}

// F is shorthand for a record field holding a string.
func F(key, value string) Field {
	return Field{Key: key, Value: TextContent(value)}
}

// Lookup returns the first field with the given key.
// It always reports false for non-record content.
func (c Content) Lookup(key string) (Content, bool) {
	if c.Kind != KindRecord {
		return Content{}, false
	}
	for _, f := range c.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Content{}, false
}

// IsZero reports whether the content is null.
func (c Content) IsZero() bool {
	return c.Kind == KindNull
}

// UnmarshalJSON decodes any JSON value into the matching variant,
// preserving the key order of objects.
func (c *Content) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeContent(dec)
	if err != nil {
		return fmt.Errorf("failed to decode content: %w", err)
	}
	*c = v
	return nil
}

func decodeContent(dec *json.Decoder) (Content, error) {
	tok, err := dec.Token()
	if err != nil {
		return Content{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			items := []Content{}
			for dec.More() {
				item, err := decodeContent(dec)
				if err != nil {
					return Content{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Content{}, err
			}
			return ListContent(items...), nil
		case '{':
			fields := []Field{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Content{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Content{}, fmt.Errorf("unexpected object key %v", keyTok)
				}
				value, err := decodeContent(dec)
				if err != nil {
					return Content{}, err
				}
				fields = append(fields, Field{Key: key, Value: value})
			}
			if _, err := dec.Token(); err != nil {
				return Content{}, err
			}
			return RecordContent(fields...), nil
		}
	case string:
		return TextContent(t), nil
	case json.Number:
		return ScalarContent(t.String()), nil
	case bool:
		return ScalarContent(strconv.FormatBool(t)), nil
	case nil:
		return Content{}, nil
	}

	return Content{}, fmt.Errorf("unexpected token %v", tok)
}

// MarshalJSON encodes the variant back to its JSON form.
func (c Content) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c Content) encode(buf *bytes.Buffer) error {
	switch c.Kind {
	case KindNull:
		buf.WriteString("null")
	case KindText:
		b, err := json.Marshal(c.Text)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindScalar:
		if json.Valid([]byte(c.Text)) {
			buf.WriteString(c.Text)
			return nil
		}
		b, err := json.Marshal(c.Text)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindList:
		buf.WriteByte('[')
		for i, item := range c.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindRecord:
		buf.WriteByte('{')
		for i, f := range c.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(f.Key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := f.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unknown content kind %d", int(c.Kind))
	}
	return nil
}
