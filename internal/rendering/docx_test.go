package rendering

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/resume-export/internal/templates"
	"github.com/jonathan/resume-export/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readZipPart(t *testing.T, pkg []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(pkg), int64(len(pkg)))
	require.NoError(t, err)

	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(b)
	}
	t.Fatalf("part %s not found", name)
	return ""
}

func TestBuildNodes(t *testing.T) {
	sections := []types.Section{
		types.OrderedSection(types.SectionName, types.TextContent(" Jane Doe "), 0),
		types.OrderedSection("skills", types.TextContent("Go\n\n  \nSQL"), 1),
	}

	nodes := BuildNodes(sections)

	assert.Equal(t, []Node{
		{Kind: NodeTitle, Text: "Jane Doe"},
		{Kind: NodeHeading, Text: "SKILLS"},
		{Kind: NodeParagraph, Text: "Go"},
		{Kind: NodeParagraph, Text: "SQL"},
	}, nodes)
}

func TestDocxAssembler_Package(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	out, err := DocxAssembler{Now: func() time.Time { return fixed }}.Assemble(context.Background(), sampleDocument(t, "classic"))
	require.NoError(t, err)
	assert.Equal(t, types.FormatDOCX, out.Format)

	zr, err := zip.NewReader(bytes.NewReader(out.Bytes), int64(len(out.Bytes)))
	require.NoError(t, err)
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"docProps/core.xml",
		"word/_rels/document.xml.rels",
		"word/styles.xml",
		"word/document.xml",
	}, names)

	document := readZipPart(t, out.Bytes, "word/document.xml")
	assert.Contains(t, document, `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`)
	assert.Contains(t, document, `<w:pStyle w:val="Title"></w:pStyle>`)
	assert.Contains(t, document, ">Jane Doe</w:t>")
	assert.Contains(t, document, ">EXPERIENCE</w:t>")
	assert.Contains(t, document, ">Engineer | Acme (2020-2023)</w:t>")
	assert.Contains(t, document, ">Built things</w:t>")
	assert.Contains(t, document, "&lt;script&gt;")
	assert.Contains(t, document, `<w:pgSz w:w="11906" w:h="16838"></w:pgSz>`)
	// 20mm spacious margins
	assert.Contains(t, document, `w:top="1134"`)

	var generic struct {
		XMLName xml.Name
	}
	require.NoError(t, xml.Unmarshal([]byte(document), &generic))
	assert.Equal(t, "document", generic.XMLName.Local)

	core := readZipPart(t, out.Bytes, "docProps/core.xml")
	assert.Contains(t, core, "<dc:title>Jane Doe</dc:title>")
	assert.Contains(t, core, "2024-03-01T12:00:00Z")
}

func TestDocx_HeadingIsBoldUppercase(t *testing.T) {
	p := paragraphFor(Node{Kind: NodeHeading, Text: "SKILLS"})
	require.NotNil(t, p.Runs[0].Props)
	assert.NotNil(t, p.Runs[0].Props.Bold)
	assert.NotNil(t, p.Runs[0].Props.Caps)
}

func TestDocx_ZeroMarginsUseDefault(t *testing.T) {
	doc := newDocumentXML(nil, templates.Margins{})
	assert.Equal(t, mmToTwips(defaultDocxMarginMM), doc.Body.Section.PageMargins.Left)
}

func TestMMToTwips(t *testing.T) {
	assert.Equal(t, 567, mmToTwips(10))
	assert.Equal(t, 0, mmToTwips(0))
	assert.True(t, strings.HasPrefix(stylesXML, xml.Header))
}
