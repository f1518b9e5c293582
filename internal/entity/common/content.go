package common

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// ContentKind identifies which variant a Content holds.
type ContentKind int

const (
	ContentNone ContentKind = iota
	ContentText
	ContentList
)

func (k ContentKind) String() string {
	switch k {
	case ContentText:
		return "text"
	case ContentList:
		return "list"
	default:
		return "none"
	}
}

// Content is the body of an entry: either a single text or an ordered list of texts.
// Which variant is allowed depends on the entry type.
//
// It encodes as a JSON string or a JSON array of strings, and is stored the same way
// in SQL columns and as a BSON string or array in documents.
type Content struct {
	kind ContentKind
	text string
	list []string
}

// TextContent builds a text variant.
func TextContent(text string) Content {
	return Content{kind: ContentText, text: text}
}

// ListContent builds a list variant. The items are copied.
func ListContent(items []string) Content {
	list := make([]string, len(items))
	copy(list, items)
	return Content{kind: ContentList, list: list}
}

// Kind returns the variant held by c.
func (c Content) Kind() ContentKind {
	return c.kind
}

// IsZero reports whether c holds no variant.
func (c Content) IsZero() bool {
	return c.kind == ContentNone
}

// Text returns the text variant.
func (c Content) Text() (string, bool) {
	return c.text, c.kind == ContentText
}

// List returns a copy of the list variant.
func (c Content) List() ([]string, bool) {
	if c.kind != ContentList {
		return nil, false
	}
	out := make([]string, len(c.list))
	copy(out, c.list)
	return out, true
}

// Validate checks that c has the shape required by kind: a non-empty text, or a
// non-empty list of non-empty strings.
func (c Content) Validate(kind ContentKind) error {
	if c.kind != kind {
		return fmt.Errorf("content must be %s, got %s", kind, c.kind)
	}
	switch kind {
	case ContentText:
		if strings.TrimSpace(c.text) == "" {
			return errors.New("content must not be empty")
		}
	case ContentList:
		if len(c.list) == 0 {
			return errors.New("content must contain at least one item")
		}
		for i, item := range c.list {
			if strings.TrimSpace(item) == "" {
				return fmt.Errorf("content item %d must not be empty", i)
			}
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (c Content) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case ContentText:
		return json.Marshal(c.text)
	case ContentList:
		return json.Marshal(c.list)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Content) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		*c = Content{}
		return nil
	case trimmed[0] == '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*c = TextContent(text)
		return nil
	case trimmed[0] == '[':
		var items []string
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return fmt.Errorf("content list must contain only strings: %w", err)
		}
		*c = Content{kind: ContentList, list: items}
		return nil
	default:
		return errors.New("content must be a string or an array of strings")
	}
}

// Value implements driver.Valuer.
func (c Content) Value() (driver.Value, error) {
	if c.kind == ContentNone {
		return nil, nil
	}
	raw, err := c.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan implements sql.Scanner.
func (c *Content) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*c = Content{}
		return nil
	case []byte:
		return c.UnmarshalJSON(v)
	case string:
		return c.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("unsupported type for Content: %T", value)
	}
}

// MarshalBSONValue implements bson.ValueMarshaler.
func (c Content) MarshalBSONValue() (bsontype.Type, []byte, error) {
	switch c.kind {
	case ContentText:
		return bson.MarshalValue(c.text)
	case ContentList:
		return bson.MarshalValue(c.list)
	default:
		return bsontype.Null, nil, nil
	}
}

// UnmarshalBSONValue implements bson.ValueUnmarshaler.
func (c *Content) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Null, bsontype.Undefined:
		*c = Content{}
		return nil
	case bsontype.String:
		text, ok := raw.StringValueOK()
		if !ok {
			return errors.New("invalid bson string for content")
		}
		*c = TextContent(text)
		return nil
	case bsontype.Array:
		var items []string
		if err := raw.Unmarshal(&items); err != nil {
			return fmt.Errorf("decode content list: %w", err)
		}
		*c = Content{kind: ContentList, list: items}
		return nil
	default:
		return fmt.Errorf("unsupported bson type for content: %s", t)
	}
}
