package rendering

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonathan/resume-export/internal/content"
	"github.com/jonathan/resume-export/internal/templates"
	"github.com/jonathan/resume-export/internal/types"
)

// Document is the input shared by all assemblers: reconciled sections in
// display order plus the resolved style.
type Document struct {
	Sections []types.Section
	Style    templates.StyleSpec
	// Contact is the structured contact record used by layouts that need it.
	Contact *types.ContactInfo
}

// Name returns the normalized name section, trimmed.
func (d *Document) Name() string {
	s, ok := types.FindSection(d.Sections, types.SectionName)
	if !ok {
		return ""
	}
	return strings.TrimSpace(content.NormalizeSection(s))
}

// Assembler renders a Document into one output format.
type Assembler interface {
	Format() types.Format
	Assemble(ctx context.Context, doc *Document) (Output, error)
}

// Output is the result of an assembler. Format is the format actually
// produced, which differs from the requested one when Degraded is set.
type Output struct {
	Format   types.Format
	Bytes    []byte
	Degraded bool
	// Cause is the failure that triggered degradation.
	Cause error
}

// HeadingLabel renders a section type for plain text and office headings:
// "work_history" becomes "WORK HISTORY".
func HeadingLabel(sectionType string) string {
	return strings.ToUpper(strings.ReplaceAll(sectionType, "_", " "))
}

// TitleLabel renders a section type for markup headings:
// "work_history" becomes "Work History".
func TitleLabel(sectionType string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(sectionType, "_", " "))
}
