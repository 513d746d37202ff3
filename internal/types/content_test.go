package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContent_UnmarshalString(t *testing.T) {
	var c Content
	require.NoError(t, json.Unmarshal([]byte(`"Jane Doe"`), &c))
	assert.Equal(t, KindText, c.Kind)
	assert.Equal(t, "Jane Doe", c.Text)
}

func TestContent_UnmarshalRecordPreservesKeyOrder(t *testing.T) {
	var c Content
	err := json.Unmarshal([]byte(`{"zeta":"1","alpha":"2","mid":"3"}`), &c)
	require.NoError(t, err)

	require.Equal(t, KindRecord, c.Kind)
	require.Len(t, c.Fields, 3)
	assert.Equal(t, "zeta", c.Fields[0].Key)
	assert.Equal(t, "alpha", c.Fields[1].Key)
	assert.Equal(t, "mid", c.Fields[2].Key)
}

func TestContent_UnmarshalMixedList(t *testing.T) {
	var c Content
	err := json.Unmarshal([]byte(`["plain", {"company":"Acme"}, 42, true, null, ["nested"]]`), &c)
	require.NoError(t, err)

	require.Equal(t, KindList, c.Kind)
	require.Len(t, c.Items, 6)
	assert.Equal(t, KindText, c.Items[0].Kind)
	assert.Equal(t, KindRecord, c.Items[1].Kind)
	assert.Equal(t, ScalarContent("42"), c.Items[2])
	assert.Equal(t, ScalarContent("true"), c.Items[3])
	assert.Equal(t, KindNull, c.Items[4].Kind)
	assert.Equal(t, KindList, c.Items[5].Kind)
}

func TestContent_UnmarshalEmptyContainers(t *testing.T) {
	var list, record Content
	require.NoError(t, json.Unmarshal([]byte(`[]`), &list))
	require.NoError(t, json.Unmarshal([]byte(`{}`), &record))

	assert.Equal(t, KindList, list.Kind)
	assert.Empty(t, list.Items)
	assert.Equal(t, KindRecord, record.Kind)
	assert.Empty(t, record.Fields)
}

func TestContent_UnmarshalInvalid(t *testing.T) {
	var c Content
	err := json.Unmarshal([]byte(`{"a":`), &c)
	assert.Error(t, err)
}

func TestContent_MarshalKeepsShape(t *testing.T) {
	c := RecordContent(
		F("title", "Engineer"),
		Field{Key: "years", Value: ScalarContent("3")},
		Field{Key: "tags", Value: ListContent(TextContent("go"), TextContent("sql"))},
		Field{Key: "extra", Value: Content{}},
	)

	b, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Engineer","years":3,"tags":["go","sql"],"extra":null}`, string(b))
}

func TestContent_Lookup(t *testing.T) {
	c := RecordContent(F("email", "jane@example.com"))

	v, ok := c.Lookup("email")
	assert.True(t, ok)
	assert.Equal(t, "jane@example.com", v.Text)

	_, ok = c.Lookup("phone")
	assert.False(t, ok)

	_, ok = TextContent("x").Lookup("email")
	assert.False(t, ok)
}

func TestSection_UnmarshalWithoutOrder(t *testing.T) {
	var sections []Section
	err := json.Unmarshal([]byte(`[{"type":"name","content":"Jane","order":0},{"type":"skills","content":["Go"]}]`), &sections)
	require.NoError(t, err)

	require.Len(t, sections, 2)
	require.NotNil(t, sections[0].Order)
	assert.Equal(t, 0, *sections[0].Order)
	assert.Nil(t, sections[1].Order)
	assert.Equal(t, KindList, sections[1].Content.Kind)
}

func TestFindSection(t *testing.T) {
	sections := []Section{
		OrderedSection(SectionName, TextContent("Jane"), 0),
		UnorderedSection(SectionContact, TextContent("jane@example.com")),
	}

	s, ok := FindSection(sections, SectionContact)
	assert.True(t, ok)
	assert.Equal(t, "jane@example.com", s.Content.Text)

	_, ok = FindSection(sections, "education")
	assert.False(t, ok)
}
