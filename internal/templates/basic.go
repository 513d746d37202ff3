package templates

import (
	"math"
	"strconv"
	"strings"
	"text/template"

	"github.com/jonathan/resume-export/internal/types"
)

// Palette is the typography and colour identity of a basic theme.
type Palette struct {
	FontFamily  string
	BaseSizePt  float64
	Text        string
	Muted       string
	Accent      string
	Uppercase   bool
	Align       string // "left" or "center"
	HeadingRule string // CSS border for section headings
}

// basicCSS is combined with a Palette and a Spacing preset.
const basicCSS = `:root { --text: {{.Text}}; --muted: {{.Muted}}; --accent: {{.Accent}}; }
* { box-sizing: border-box; }
html, body { margin: 0; padding: 0; background: #ffffff; }
body { font-family: {{.FontFamily}}; font-size: {{num .FontSize}}pt; line-height: {{num .LineHeight}}; color: var(--text); }
@page { size: A4; }
@media screen { .cv-page { max-width: 210mm; margin: 0 auto; padding: {{num .MarginMM}}mm; } }
.cv-name h1 { margin: 0 0 {{num .ItemGapPt}}pt; font-size: {{num .NameSize}}pt; color: var(--accent); text-align: {{.Align}};{{if .Uppercase}} text-transform: uppercase; letter-spacing: 0.04em;{{end}} }
.cv-contact { margin: 0 0 {{num .SectionGapPt}}pt; color: var(--muted); text-align: {{.Align}}; white-space: pre-line; }
.cv-section { margin: 0 0 {{num .SectionGapPt}}pt; }
.cv-section h2 { margin: 0 0 {{num .ItemGapPt}}pt; padding-bottom: 2pt; font-size: {{num .HeadingSize}}pt; color: var(--accent); border-bottom: {{.HeadingRule}};{{if .Uppercase}} text-transform: uppercase; letter-spacing: 0.06em;{{end}} }
.cv-content { white-space: pre-line; }
`

var basicTemplate = template.Must(template.New("basic").Funcs(template.FuncMap{
	"num": formatNumber,
}).Parse(basicCSS))

type basicCSSData struct {
	Palette
	Spacing
	FontSize    float64
	NameSize    float64
	HeadingSize float64
}

// BasicTheme is a single-column theme whose spacing follows the compression tier.
type BasicTheme struct {
	id      string
	name    string
	palette Palette
	css     map[string]string // keyed by Spacing.Name
}

// NewBasicTheme renders the theme CSS for every spacing preset.
func NewBasicTheme(id, name string, palette Palette) (*BasicTheme, error) {
	t := &BasicTheme{
		id:      id,
		name:    name,
		palette: palette,
		css:     make(map[string]string, 3),
	}

	for _, preset := range spacingPresets() {
		size := palette.BaseSizePt * preset.FontScale
		data := basicCSSData{
			Palette:     palette,
			Spacing:     preset,
			FontSize:    size,
			NameSize:    size * 2.2,
			HeadingSize: size * 1.25,
		}

		var sb strings.Builder
		if err := basicTemplate.Execute(&sb, data); err != nil {
			return nil, &RegistryError{
				Message: "failed to render CSS for theme " + id,
				Cause:   err,
			}
		}
		t.css[preset.Name] = sb.String()
	}

	return t, nil
}

// ID returns the registry key
func (t *BasicTheme) ID() string { return t.id }

// Name returns the display name
func (t *BasicTheme) Name() string { return t.name }

// Kind returns KindBasic
func (t *BasicTheme) Kind() Kind { return KindBasic }

// Style combines the base CSS with the spacing overlay for the tier.
func (t *BasicTheme) Style(metrics types.DensityMetrics) StyleSpec {
	spacing := SpacingFor(metrics.CompressionLevel)
	return StyleSpec{
		TemplateID:  t.id,
		Kind:        KindBasic,
		Layout:      LayoutSingle,
		CSS:         t.css[spacing.Name],
		Spacing:     spacing,
		Margins:     UniformMargins(spacing.MarginMM),
		Compression: compressionOrNone(metrics.CompressionLevel),
	}
}

func compressionOrNone(level types.CompressionLevel) types.CompressionLevel {
	if level == "" {
		return types.CompressionNone
	}
	return level
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

const (
	serifStack = `Georgia, "Times New Roman", serif`
	sansStack  = `"Helvetica Neue", Helvetica, Arial, sans-serif`
	monoStack  = `"DejaVu Sans Mono", Menlo, Consolas, monospace`
)

func basicPalettes() []struct {
	id, name string
	palette  Palette
} {
	return []struct {
		id, name string
		palette  Palette
	}{
		{"classic", "Classic", Palette{FontFamily: serifStack, BaseSizePt: 11, Text: "#222222", Muted: "#555555", Accent: "#222222", Uppercase: true, Align: "center", HeadingRule: "1px solid #222222"}},
		{"modern", "Modern", Palette{FontFamily: sansStack, BaseSizePt: 10.5, Text: "#1f2933", Muted: "#52606d", Accent: "#2563eb", Align: "left", HeadingRule: "2px solid #2563eb"}},
		{"minimal", "Minimal", Palette{FontFamily: sansStack, BaseSizePt: 10.5, Text: "#111111", Muted: "#666666", Accent: "#111111", Align: "left", HeadingRule: "none"}},
		{"professional", "Professional", Palette{FontFamily: sansStack, BaseSizePt: 10.5, Text: "#1a202c", Muted: "#4a5568", Accent: "#1e3a5f", Uppercase: true, Align: "left", HeadingRule: "1px solid #1e3a5f"}},
		{"creative", "Creative", Palette{FontFamily: `"Trebuchet MS", ` + sansStack, BaseSizePt: 10.5, Text: "#2d2d2d", Muted: "#6b6b6b", Accent: "#d9480f", Align: "left", HeadingRule: "3px solid #ffd8a8"}},
		{"executive", "Executive", Palette{FontFamily: serifStack, BaseSizePt: 11, Text: "#1b1b1b", Muted: "#4d4d4d", Accent: "#7a5c00", Uppercase: true, Align: "center", HeadingRule: "double 3px #7a5c00"}},
		{"elegant", "Elegant", Palette{FontFamily: `Garamond, ` + serifStack, BaseSizePt: 11.5, Text: "#2b2b2b", Muted: "#707070", Accent: "#5b3a6e", Align: "center", HeadingRule: "1px solid #d8c8e0"}},
		{"technical", "Technical", Palette{FontFamily: monoStack, BaseSizePt: 9.5, Text: "#1d1f21", Muted: "#5c6370", Accent: "#0f766e", Align: "left", HeadingRule: "1px dashed #0f766e"}},
		{"compact", "Compact", Palette{FontFamily: sansStack, BaseSizePt: 9.5, Text: "#222222", Muted: "#555555", Accent: "#374151", Uppercase: true, Align: "left", HeadingRule: "1px solid #9ca3af"}},
		{"bold", "Bold", Palette{FontFamily: `"Arial Black", ` + sansStack, BaseSizePt: 10.5, Text: "#111827", Muted: "#4b5563", Accent: "#b91c1c", Uppercase: true, Align: "left", HeadingRule: "4px solid #b91c1c"}},
		{"academic", "Academic", Palette{FontFamily: `"Times New Roman", ` + serifStack, BaseSizePt: 11, Text: "#000000", Muted: "#333333", Accent: "#000000", Align: "left", HeadingRule: "1px solid #000000"}},
		{"corporate", "Corporate", Palette{FontFamily: sansStack, BaseSizePt: 10.5, Text: "#1f2937", Muted: "#6b7280", Accent: "#065f46", Uppercase: true, Align: "left", HeadingRule: "2px solid #a7f3d0"}},
	}
}
