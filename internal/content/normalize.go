// Package content flattens polymorphic section content into display text.
package content

import (
	"strings"

	"github.com/jonathan/resume-export/internal/types"
)

// itemSeparator joins resolved list items with a blank line
const itemSeparator = "\n\n"

// Normalize converts a section's content into a single renderable string.
// It is total: every shape yields a string, possibly empty.
//
//   - text is returned verbatim
//   - lists resolve each element independently and join them with a blank line
//   - records join their string-valued fields with newlines
//   - scalars are returned as their literal; null becomes ""
func Normalize(c types.Content) string {
	switch c.Kind {
	case types.KindText:
		return c.Text
	case types.KindList:
		return normalizeList(c.Items)
	case types.KindRecord:
		return joinStringFields(c.Fields)
	case types.KindScalar:
		return c.Text
	case types.KindNull:
		return ""
	default:
		return ""
	}
}

// NormalizeSection is Normalize applied to a section's content.
func NormalizeSection(s types.Section) string {
	return Normalize(s.Content)
}

func normalizeList(items []types.Content) string {
	resolved := make([]string, 0, len(items))
	for _, item := range items {
		var text string
		switch item.Kind {
		case types.KindText:
			text = item.Text
		case types.KindRecord:
			text = ResolveRecord(item.Fields)
		default:
			text = Normalize(item)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		resolved = append(resolved, text)
	}
	return strings.Join(resolved, itemSeparator)
}

// ResolveRecord renders one list entry. When a title-like or
// organization-like slot is present the entry is composed as
// "<title> | <org> (<duration>)\n<narrative>" with absent parts omitted;
// otherwise every string-valued field is joined with newlines.
func ResolveRecord(fields []types.Field) string {
	title := slotValue(fields, titleAliases)
	org := slotValue(fields, organizationAliases)
	if title == "" && org == "" {
		return joinStringFields(fields)
	}

	var sb strings.Builder
	sb.WriteString(title)
	if org != "" {
		if title != "" {
			sb.WriteString(" | ")
		}
		sb.WriteString(org)
	}
	if duration := slotValue(fields, durationAliases); duration != "" {
		sb.WriteString(" (")
		sb.WriteString(duration)
		sb.WriteString(")")
	}
	if narrative := slotValue(fields, narrativeAliases); narrative != "" {
		sb.WriteString("\n")
		sb.WriteString(narrative)
	}
	return sb.String()
}

func joinStringFields(fields []types.Field) string {
	values := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.Value.Kind != types.KindText || f.Value.Text == "" {
			continue
		}
		values = append(values, f.Value.Text)
	}
	return strings.Join(values, "\n")
}
