package layout

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jonathan/resume-export/internal/types"
	"github.com/stretchr/testify/assert"
)

func paragraph(chars int) types.Content {
	return types.TextContent(strings.Repeat("x", chars))
}

func TestEstimate_Empty(t *testing.T) {
	m := Estimate(nil)
	assert.Equal(t, 0, m.SectionCount)
	assert.Equal(t, 0.0, m.EstimatedPages)
	assert.Equal(t, types.CompressionNone, m.CompressionLevel)
}

func TestEstimate_ShortResumeIsUncompressed(t *testing.T) {
	sections := []types.Section{
		types.OrderedSection(types.SectionName, types.TextContent("Jane Doe"), 0),
		types.OrderedSection(types.SectionContact, types.TextContent("jane@example.com"), 1),
		types.OrderedSection("summary", paragraph(300), 2),
	}

	m := Estimate(sections)

	assert.Equal(t, 3, m.SectionCount)
	assert.Equal(t, types.CompressionNone, m.CompressionLevel)
	assert.Less(t, m.EstimatedPages, 0.5)
}

func TestEstimate_LongResumeIsHeavy(t *testing.T) {
	var sections []types.Section
	for i := 0; i < 8; i++ {
		sections = append(sections, types.OrderedSection(fmt.Sprintf("s%d", i), paragraph(950), i))
	}

	m := Estimate(sections)

	assert.Equal(t, types.CompressionHeavy, m.CompressionLevel)
	assert.Greater(t, m.EstimatedPages, 1.2)
}

func TestWrappedLines(t *testing.T) {
	assert.Equal(t, 0, WrappedLines(""))
	assert.Equal(t, 1, WrappedLines("short"))
	assert.Equal(t, 2, WrappedLines(strings.Repeat("a", charsPerLine+1)))
	assert.Equal(t, 3, WrappedLines("a\n\nb"))
	assert.Equal(t, 1, WrappedLines(strings.Repeat("é", charsPerLine)), "counts runes, not bytes")
}

func TestSectionLines_NameIsFixed(t *testing.T) {
	s := types.OrderedSection(types.SectionName, paragraph(500), 0)
	assert.Equal(t, nameOverheadLines, SectionLines(s))
}

func TestClassify_Boundaries(t *testing.T) {
	assert.Equal(t, types.CompressionNone, Classify(0.85))
	assert.Equal(t, types.CompressionLight, Classify(0.9))
	assert.Equal(t, types.CompressionLight, Classify(1.0))
	assert.Equal(t, types.CompressionMedium, Classify(1.1))
	assert.Equal(t, types.CompressionHeavy, Classify(1.3))
	assert.Equal(t, types.CompressionHeavy, Classify(4))
}

// TestEstimate_Monotonic appends non-empty sections one at a time and checks
// the tier never loosens.
func TestEstimate_Monotonic(t *testing.T) {
	var sections []types.Section
	prev := types.CompressionNone

	for i := 0; i < 40; i++ {
		size := 40 + (i*137)%600
		sections = append(sections, types.OrderedSection(fmt.Sprintf("section_%d", i), paragraph(size), i))

		level := Estimate(sections).CompressionLevel
		assert.GreaterOrEqual(t, level.Rank(), prev.Rank(), "tier loosened after %d sections", i+1)
		prev = level
	}

	assert.Equal(t, types.CompressionHeavy, prev)
}
