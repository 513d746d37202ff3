package rendering

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-export/internal/content"
	"github.com/jonathan/resume-export/internal/types"
)

// TextAssembler renders plain text. It cannot fail.
type TextAssembler struct{}

// Format returns types.FormatTXT
func (TextAssembler) Format() types.Format { return types.FormatTXT }

// Assemble renders doc as plain text.
func (TextAssembler) Assemble(_ context.Context, doc *Document) (Output, error) {
	return Output{Format: types.FormatTXT, Bytes: []byte(RenderText(doc))}, nil
}

// RenderText renders the name underlined with "=" to its length, then each
// other section as an uppercase label underlined with "-" to the length of
// the raw section type, its content and a blank line.
func RenderText(doc *Document) string {
	var b strings.Builder

	for _, s := range doc.Sections {
		text := content.NormalizeSection(s)

		if s.Type == types.SectionName {
			name := strings.TrimSpace(text)
			b.WriteString(name)
			b.WriteByte('\n')
			b.WriteString(strings.Repeat("=", utf8.RuneCountInString(name)))
			b.WriteString("\n\n")
			continue
		}

		b.WriteString(HeadingLabel(s.Type))
		b.WriteByte('\n')
		// underline follows the raw key, not the displayed label
		b.WriteString(strings.Repeat("-", utf8.RuneCountInString(s.Type)))
		b.WriteByte('\n')
		b.WriteString(text)
		b.WriteString("\n\n")
	}

	return b.String()
}
