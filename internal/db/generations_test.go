package db

import (
	"testing"

	"github.com/jonathan/resume-export/internal/schemas"
	"github.com/jonathan/resume-export/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSections_Valid(t *testing.T) {
	raw := []byte(`[
		{"type": "name", "content": "Jane Doe", "order": 0},
		{"type": "skills", "content": ["Go", "SQL"]}
	]`)

	sections, err := decodeSections(raw)
	require.NoError(t, err)
	require.Len(t, sections, 2)

	assert.Equal(t, "name", sections[0].Type)
	assert.Equal(t, "Jane Doe", sections[0].Content.Text)
	require.NotNil(t, sections[0].Order)
	assert.Equal(t, 0, *sections[0].Order)
	assert.Nil(t, sections[1].Order)
	assert.Equal(t, types.KindList, sections[1].Content.Kind)
}

func TestDecodeSections_NullIsEmpty(t *testing.T) {
	for _, raw := range [][]byte{nil, []byte("null")} {
		sections, err := decodeSections(raw)
		require.NoError(t, err)
		assert.Empty(t, sections)
	}
}

func TestDecodeSections_SchemaViolation(t *testing.T) {
	_, err := decodeSections([]byte(`[{"content": "no type"}]`))

	var validationErr *schemas.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestEncodeSections_NilIsEmptyArray(t *testing.T) {
	b, err := encodeSections(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(b))
}

func TestEncodeSections_RoundTripsThroughDecode(t *testing.T) {
	in := []types.Section{
		types.OrderedSection(types.SectionName, types.TextContent("Jane"), 0),
		types.UnorderedSection("hobbies", types.RecordContent(types.F("list", "chess"))),
	}

	b, err := encodeSections(in)
	require.NoError(t, err)

	out, err := decodeSections(b)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestMigrations_Named(t *testing.T) {
	migrations := Migrations()
	require.Len(t, migrations, 3)
	for _, m := range migrations {
		assert.NotEmpty(t, m.Name)
		assert.NotNil(t, m.Up)
	}
}
