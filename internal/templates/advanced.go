package templates

import "github.com/jonathan/resume-export/internal/types"

// AdvancedTheme is a theme with self-managed page geometry.
type AdvancedTheme struct {
	id     string
	name   string
	layout Layout
	css    string
}

// ID returns the registry key
func (t *AdvancedTheme) ID() string { return t.id }

// Name returns the display name
func (t *AdvancedTheme) Name() string { return t.name }

// Kind returns KindAdvanced
func (t *AdvancedTheme) Kind() Kind { return KindAdvanced }

// Style returns the fixed geometry of the theme. The compression tier is
// recorded but does not change spacing.
func (t *AdvancedTheme) Style(metrics types.DensityMetrics) StyleSpec {
	return StyleSpec{
		TemplateID:        t.id,
		Kind:              KindAdvanced,
		Layout:            t.layout,
		CSS:               t.css,
		Spacing:           Medium,
		ManagesOwnMargins: true,
		RequiresContact:   true,
		Compression:       compressionOrNone(metrics.CompressionLevel),
	}
}

const advancedBaseCSS = `* { box-sizing: border-box; }
html, body { margin: 0; padding: 0; background: #ffffff; }
@page { size: A4; margin: 0; }
body { font-family: "Helvetica Neue", Helvetica, Arial, sans-serif; font-size: 10pt; line-height: 1.35; color: #1f2937; }
.cv-page { width: 210mm; min-height: 297mm; margin: 0 auto; }
.cv-name h1 { margin: 0 0 4pt; font-size: 22pt; letter-spacing: 0.02em; }
.cv-contact ul { list-style: none; margin: 0; padding: 0; }
.cv-contact li { margin: 0 0 3pt; }
.cv-contact .cv-icon { display: inline-block; width: 14pt; }
.cv-section { margin: 0 0 10pt; break-inside: avoid-page; }
.cv-section h2 { margin: 0 0 4pt; font-size: 11.5pt; text-transform: uppercase; letter-spacing: 0.08em; }
.cv-content { white-space: pre-line; }
`

const sidebarCSS = advancedBaseCSS + `.cv-page { display: grid; grid-template-columns: 68mm 1fr; }
.cv-header { background: #1e293b; color: #f8fafc; padding: 12mm 8mm; }
.cv-header .cv-name h1 { color: #ffffff; font-size: 20pt; }
.cv-header .cv-contact { margin-top: 10pt; color: #cbd5e1; }
.cv-body { padding: 12mm 12mm 12mm 10mm; }
.cv-section h2 { color: #1e293b; border-bottom: 2px solid #94a3b8; padding-bottom: 2pt; }
`

const splitCSS = advancedBaseCSS + `.cv-header { padding: 12mm 12mm 6mm; border-bottom: 3px solid #0e7490; display: flex; justify-content: space-between; align-items: flex-end; }
.cv-header .cv-name h1 { color: #0e7490; }
.cv-header .cv-contact { text-align: right; color: #475569; }
.cv-body { padding: 8mm 12mm 12mm; column-count: 2; column-gap: 10mm; }
.cv-section h2 { color: #0e7490; }
`

const iconicCSS = advancedBaseCSS + `.cv-header { padding: 12mm 12mm 6mm; background: #f5f3ff; }
.cv-header .cv-name h1 { color: #5b21b6; }
.cv-header .cv-contact ul { display: flex; flex-wrap: wrap; gap: 4pt 14pt; }
.cv-body { padding: 8mm 12mm 12mm; }
.cv-section h2 { color: #5b21b6; }
.cv-section h2::before { content: "\25C6"; display: inline-block; width: 14pt; color: #8b5cf6; }
.cv-section[data-section="experience"] h2::before { content: "\2692"; }
.cv-section[data-section="education"] h2::before { content: "\270E"; }
.cv-section[data-section="skills"] h2::before { content: "\2699"; }
.cv-section[data-section="projects"] h2::before { content: "\2726"; }
.cv-section[data-section="summary"] h2::before { content: "\2630"; }
.cv-section[data-section="hobbies"] h2::before { content: "\2665"; }
`

func advancedThemes() []*AdvancedTheme {
	return []*AdvancedTheme{
		{id: "sidebar", name: "Sidebar", layout: LayoutSidebar, css: sidebarCSS},
		{id: "split", name: "Split", layout: LayoutSidebar, css: splitCSS},
		{id: "iconic", name: "Iconic", layout: LayoutIconic, css: iconicCSS},
	}
}
