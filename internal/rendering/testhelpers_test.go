package rendering

import (
	"testing"

	"github.com/jonathan/resume-export/internal/templates"
	"github.com/jonathan/resume-export/internal/types"
	"github.com/stretchr/testify/require"
)

func sampleSections() []types.Section {
	return []types.Section{
		types.OrderedSection(types.SectionName, types.TextContent("Jane Doe"), 0),
		types.OrderedSection(types.SectionContact, types.TextContent("jane@example.com | 555-123-4567 | Berlin"), 1),
		types.OrderedSection("experience", types.ListContent(
			types.RecordContent(
				types.F("job_title", "Engineer"),
				types.F("company", "Acme"),
				types.F("duration", "2020-2023"),
				types.F("description", "Built things"),
			),
		), 2),
		types.OrderedSection("work_history", types.TextContent("<script>alert(1)</script>"), 3),
	}
}

func sampleDocument(t *testing.T, templateID string) *Document {
	t.Helper()
	style, err := templates.MustBuiltin().ResolveStyle(templateID, nil)
	require.NoError(t, err)

	sections := sampleSections()
	doc := &Document{Sections: sections, Style: style}
	if info, ok := templates.ContactFromSections(sections); ok {
		doc.Contact = &info
	}
	return doc
}
