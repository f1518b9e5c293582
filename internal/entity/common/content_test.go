package common

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestContentJSON(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var c Content
		require.NoError(t, json.Unmarshal([]byte(`"felt great"`), &c))
		text, ok := c.Text()
		assert.True(t, ok)
		assert.Equal(t, "felt great", text)

		raw, err := json.Marshal(c)
		require.NoError(t, err)
		assert.JSONEq(t, `"felt great"`, string(raw))
	})

	t.Run("list", func(t *testing.T) {
		var c Content
		require.NoError(t, json.Unmarshal([]byte(`["sun", "coffee"]`), &c))
		items, ok := c.List()
		assert.True(t, ok)
		assert.Equal(t, []string{"sun", "coffee"}, items)

		raw, err := json.Marshal(c)
		require.NoError(t, err)
		assert.JSONEq(t, `["sun","coffee"]`, string(raw))
	})

	t.Run("null", func(t *testing.T) {
		c := TextContent("x")
		require.NoError(t, json.Unmarshal([]byte(`null`), &c))
		assert.True(t, c.IsZero())
	})

	t.Run("rejects other shapes", func(t *testing.T) {
		var c Content
		assert.Error(t, json.Unmarshal([]byte(`42`), &c))
		assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &c))
		assert.Error(t, json.Unmarshal([]byte(`["a", 1]`), &c))
	})
}

func TestContentValidate(t *testing.T) {
	tests := []struct {
		name    string
		content Content
		kind    ContentKind
		wantErr bool
	}{
		{name: "text ok", content: TextContent("calm"), kind: ContentText},
		{name: "text blank", content: TextContent("   "), kind: ContentText, wantErr: true},
		{name: "list for text", content: ListContent([]string{"a"}), kind: ContentText, wantErr: true},
		{name: "list ok", content: ListContent([]string{"a", "b"}), kind: ContentList},
		{name: "empty list", content: ListContent(nil), kind: ContentList, wantErr: true},
		{name: "blank item", content: ListContent([]string{"a", ""}), kind: ContentList, wantErr: true},
		{name: "text for list", content: TextContent("a"), kind: ContentList, wantErr: true},
		{name: "zero", content: Content{}, kind: ContentText, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.content.Validate(tt.kind)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestContentSQLRoundTrip(t *testing.T) {
	for _, c := range []Content{TextContent("hello"), ListContent([]string{"one", "two"})} {
		v, err := c.Value()
		require.NoError(t, err)

		var scanned Content
		require.NoError(t, scanned.Scan(v))
		assert.Equal(t, c, scanned)
	}

	var zero Content
	v, err := zero.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestContentBSONRoundTrip(t *testing.T) {
	type doc struct {
		Content Content `bson:"content"`
	}

	for _, c := range []Content{TextContent("hello"), ListContent([]string{"one", "two"})} {
		raw, err := bson.Marshal(doc{Content: c})
		require.NoError(t, err)

		var decoded doc
		require.NoError(t, bson.Unmarshal(raw, &decoded))
		assert.Equal(t, c, decoded.Content)
	}
}

func TestListContentCopiesInput(t *testing.T) {
	items := []string{"a"}
	c := ListContent(items)
	items[0] = "changed"

	got, _ := c.List()
	assert.Equal(t, []string{"a"}, got)
}
