package rendering

import (
	"bytes"
	"context"
	"html/template"
	"strings"

	"github.com/jonathan/resume-export/internal/content"
	"github.com/jonathan/resume-export/internal/types"
)

const markupTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>{{.CSS}}</style>
</head>
<body>
<div class="cv-page cv-layout-{{.Layout}} cv-theme-{{.TemplateID}}">
<header class="cv-header">
{{- if .Name}}
<div class="cv-name"><h1>{{.Name}}</h1></div>
{{- end}}
{{- if .ContactItems}}
<div class="cv-contact"><ul>
{{- range .ContactItems}}
<li class="cv-contact-{{.Key}}"><span class="cv-icon" aria-hidden="true">{{.Icon}}</span>{{.Value}}</li>
{{- end}}
</ul></div>
{{- else if .ContactText}}
<div class="cv-contact">{{.ContactText}}</div>
{{- end}}
</header>
<main class="cv-body">
{{- range .Sections}}
<section class="cv-section" data-section="{{.Type}}">
<h2>{{.Label}}</h2>
<div class="cv-content">{{.Text}}</div>
</section>
{{- end}}
</main>
</div>
</body>
</html>
`

var markupTmpl = template.Must(template.New("document").Parse(markupTemplate))

type markupData struct {
	Title        string
	CSS          template.CSS
	Layout       string
	TemplateID   string
	Name         string
	ContactText  string
	ContactItems []contactItem
	Sections     []markupSection
}

type contactItem struct {
	Key   string
	Icon  string
	Value string
}

type markupSection struct {
	Type  string
	Label string
	Text  string
}

// MarkupAssembler renders a self-contained HTML document. All user content
// is escaped by html/template.
type MarkupAssembler struct{}

// Format returns types.FormatHTML
func (MarkupAssembler) Format() types.Format { return types.FormatHTML }

// Assemble renders doc as HTML.
func (a MarkupAssembler) Assemble(_ context.Context, doc *Document) (Output, error) {
	b, err := RenderMarkup(doc)
	if err != nil {
		return Output{}, err
	}
	return Output{Format: types.FormatHTML, Bytes: b}, nil
}

// RenderMarkup renders the name block, the contact block and one titled
// block per remaining section, in order.
func RenderMarkup(doc *Document) ([]byte, error) {
	data := markupData{
		Name:       doc.Name(),
		CSS:        template.CSS(doc.Style.CSS),
		Layout:     string(doc.Style.Layout),
		TemplateID: doc.Style.TemplateID,
	}

	data.Title = data.Name
	if data.Title == "" {
		data.Title = "Resume"
	}

	for _, s := range doc.Sections {
		switch s.Type {
		case types.SectionName:
		case types.SectionContact:
			data.ContactText = strings.TrimSpace(content.NormalizeSection(s))
		default:
			data.Sections = append(data.Sections, markupSection{
				Type:  s.Type,
				Label: TitleLabel(s.Type),
				Text:  strings.TrimSpace(content.NormalizeSection(s)),
			})
		}
	}

	if doc.Style.RequiresContact && doc.Contact != nil {
		data.ContactItems = contactItems(*doc.Contact)
	}

	var buf bytes.Buffer
	if err := markupTmpl.Execute(&buf, data); err != nil {
		return nil, &TemplateError{
			Message: "failed to execute markup template",
			Cause:   err,
		}
	}
	return buf.Bytes(), nil
}

func contactItems(info types.ContactInfo) []contactItem {
	var items []contactItem
	if info.Email != "" {
		items = append(items, contactItem{Key: "email", Icon: "✉", Value: info.Email})
	}
	if info.Phone != "" {
		items = append(items, contactItem{Key: "phone", Icon: "☎", Value: info.Phone})
	}
	if info.Location != "" {
		items = append(items, contactItem{Key: "location", Icon: "⌖", Value: info.Location})
	}
	return items
}
