package rendering

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"math"
	"strings"
	"time"

	"github.com/jonathan/resume-export/internal/content"
	"github.com/jonathan/resume-export/internal/templates"
	"github.com/jonathan/resume-export/internal/types"
)

// NodeKind is the role of one node in an office document.
type NodeKind int

const (
	// NodeTitle holds the name section
	NodeTitle NodeKind = iota
	// NodeHeading is a bold uppercase section heading
	NodeHeading
	// NodeParagraph is one non-blank line of section content
	NodeParagraph
)

// Node is one paragraph of an office document.
type Node struct {
	Kind NodeKind
	Text string
}

// BuildNodes converts sections into an ordered node tree: a title node for
// the name, then a heading and one paragraph per non-blank line for every
// other section.
func BuildNodes(sections []types.Section) []Node {
	var nodes []Node
	for _, s := range sections {
		text := content.NormalizeSection(s)

		if s.Type == types.SectionName {
			nodes = append(nodes, Node{Kind: NodeTitle, Text: strings.TrimSpace(text)})
			continue
		}

		nodes = append(nodes, Node{Kind: NodeHeading, Text: HeadingLabel(s.Type)})
		for _, line := range strings.Split(text, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				nodes = append(nodes, Node{Kind: NodeParagraph, Text: line})
			}
		}
	}
	return nodes
}

// A4 in twentieths of a point.
const (
	a4WidthTwips  = 11906
	a4HeightTwips = 16838
	twipsPerMM    = 56.7
)

// defaultDocxMarginMM applies when the style carries no margins.
const defaultDocxMarginMM = 15

// DocxAssembler renders a WordprocessingML package.
type DocxAssembler struct {
	// Now stamps document metadata. Defaults to time.Now.
	Now func() time.Time
}

// Format returns types.FormatDOCX
func (DocxAssembler) Format() types.Format { return types.FormatDOCX }

// Assemble renders doc as a .docx package.
func (a DocxAssembler) Assemble(_ context.Context, doc *Document) (Output, error) {
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}

	b, err := RenderDocx(BuildNodes(doc.Sections), doc.Style.Margins, doc.Name(), now().UTC())
	if err != nil {
		return Output{}, &RenderError{
			Format:  types.FormatDOCX,
			Message: "failed to build office package",
			Cause:   err,
		}
	}
	return Output{Format: types.FormatDOCX, Bytes: b}, nil
}

// RenderDocx serializes nodes into a zipped office document.
func RenderDocx(nodes []Node, margins templates.Margins, title string, created time.Time) ([]byte, error) {
	document, err := marshalPart(newDocumentXML(nodes, margins))
	if err != nil {
		return nil, err
	}
	core, err := marshalPart(newCorePropsXML(title, created))
	if err != nil {
		return nil, err
	}

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"docProps/core.xml", core},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
		{"word/styles.xml", []byte(stylesXML)},
		{"word/document.xml", document},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range parts {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.name,
			Method:   zip.Deflate,
			Modified: created,
		})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(p.data); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func marshalPart(v any) ([]byte, error) {
	body, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

func mmToTwips(mm float64) int {
	return int(math.Round(mm * twipsPerMM))
}

// XML namespaces used in the package
const (
	nsW  = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsCP = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsDC = "http://purl.org/dc/elements/1.1/"
	nsDT = "http://purl.org/dc/terms/"
	nsXS = "http://www.w3.org/2001/XMLSchema-instance"
)

// documentXML is word/document.xml
type documentXML struct {
	XMLName xml.Name `xml:"w:document"`
	NSW     string   `xml:"xmlns:w,attr"`
	NSR     string   `xml:"xmlns:r,attr"`
	Body    bodyXML  `xml:"w:body"`
}

type bodyXML struct {
	Paragraphs []paragraphXML  `xml:"w:p"`
	Section    sectionPropsXML `xml:"w:sectPr"`
}

type paragraphXML struct {
	Props *paragraphPropsXML `xml:"w:pPr,omitempty"`
	Runs  []runXML           `xml:"w:r"`
}

type paragraphPropsXML struct {
	Style   *valXML     `xml:"w:pStyle,omitempty"`
	Spacing *spacingXML `xml:"w:spacing,omitempty"`
	Justify *valXML     `xml:"w:jc,omitempty"`
}

type spacingXML struct {
	Before int `xml:"w:before,attr"`
	After  int `xml:"w:after,attr"`
}

type runXML struct {
	Props *runPropsXML `xml:"w:rPr,omitempty"`
	Text  textXML      `xml:"w:t"`
}

type runPropsXML struct {
	Bold *onOffXML `xml:"w:b,omitempty"`
	Caps *onOffXML `xml:"w:caps,omitempty"`
	Size *valXML   `xml:"w:sz,omitempty"`
}

type onOffXML struct{}

type valXML struct {
	Val string `xml:"w:val,attr"`
}

type textXML struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Value string `xml:",chardata"`
}

type sectionPropsXML struct {
	PageSize    pageSizeXML    `xml:"w:pgSz"`
	PageMargins pageMarginsXML `xml:"w:pgMar"`
}

type pageSizeXML struct {
	W int `xml:"w:w,attr"`
	H int `xml:"w:h,attr"`
}

type pageMarginsXML struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
	Header int `xml:"w:header,attr"`
	Footer int `xml:"w:footer,attr"`
}

func newDocumentXML(nodes []Node, margins templates.Margins) documentXML {
	if margins.IsZero() {
		margins = templates.UniformMargins(defaultDocxMarginMM)
	}

	doc := documentXML{
		NSW: nsW,
		NSR: nsR,
		Body: bodyXML{
			Paragraphs: make([]paragraphXML, 0, len(nodes)),
			Section: sectionPropsXML{
				PageSize: pageSizeXML{W: a4WidthTwips, H: a4HeightTwips},
				PageMargins: pageMarginsXML{
					Top:    mmToTwips(margins.Top),
					Right:  mmToTwips(margins.Right),
					Bottom: mmToTwips(margins.Bottom),
					Left:   mmToTwips(margins.Left),
					Header: 720,
					Footer: 720,
				},
			},
		},
	}

	for _, n := range nodes {
		doc.Body.Paragraphs = append(doc.Body.Paragraphs, paragraphFor(n))
	}
	return doc
}

func paragraphFor(n Node) paragraphXML {
	run := runXML{Text: textXML{Space: "preserve", Value: n.Text}}

	switch n.Kind {
	case NodeTitle:
		run.Props = &runPropsXML{Bold: &onOffXML{}, Size: &valXML{Val: "36"}}
		return paragraphXML{
			Props: &paragraphPropsXML{
				Style:   &valXML{Val: "Title"},
				Justify: &valXML{Val: "center"},
				Spacing: &spacingXML{After: 240},
			},
			Runs: []runXML{run},
		}
	case NodeHeading:
		run.Props = &runPropsXML{Bold: &onOffXML{}, Caps: &onOffXML{}, Size: &valXML{Val: "24"}}
		return paragraphXML{
			Props: &paragraphPropsXML{
				Style:   &valXML{Val: "Heading1"},
				Spacing: &spacingXML{Before: 240, After: 80},
			},
			Runs: []runXML{run},
		}
	default:
		return paragraphXML{
			Props: &paragraphPropsXML{Spacing: &spacingXML{After: 60}},
			Runs:  []runXML{run},
		}
	}
}

// corePropsXML is docProps/core.xml
type corePropsXML struct {
	XMLName  xml.Name   `xml:"cp:coreProperties"`
	NSCP     string     `xml:"xmlns:cp,attr"`
	NSDC     string     `xml:"xmlns:dc,attr"`
	NSDT     string     `xml:"xmlns:dcterms,attr"`
	NSXSI    string     `xml:"xmlns:xsi,attr"`
	Title    string     `xml:"dc:title,omitempty"`
	Creator  string     `xml:"dc:creator"`
	Created  w3cDateXML `xml:"dcterms:created"`
	Modified w3cDateXML `xml:"dcterms:modified"`
}

type w3cDateXML struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}

func newCorePropsXML(title string, created time.Time) corePropsXML {
	stamp := w3cDateXML{Type: "dcterms:W3CDTF", Value: created.Format(time.RFC3339)}
	return corePropsXML{
		NSCP:     nsCP,
		NSDC:     nsDC,
		NSDT:     nsDT,
		NSXSI:    nsXS,
		Title:    title,
		Creator:  "resume-export",
		Created:  stamp,
		Modified: stamp,
	}
}

const contentTypesXML = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` +
	`</Types>`

const packageRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`</Relationships>`

const documentRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`</Relationships>`

const stylesXML = xml.Header + `<w:styles xmlns:w="` + nsW + `">` +
	`<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="Calibri" w:hAnsi="Calibri" w:cs="Calibri"/><w:sz w:val="21"/></w:rPr></w:rPrDefault></w:docDefaults>` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:basedOn w:val="Normal"/><w:rPr><w:b/><w:sz w:val="36"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/><w:pPr><w:keepNext/></w:pPr><w:rPr><w:b/><w:caps/><w:sz w:val="24"/></w:rPr></w:style>` +
	`</w:styles>`
