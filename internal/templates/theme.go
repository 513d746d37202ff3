// Package templates holds the registry of visual themes and generates the
// style specification used by every document assembler.
package templates

import "github.com/jonathan/resume-export/internal/types"

// Kind distinguishes basic themes from advanced ones.
type Kind string

const (
	// KindBasic themes are single-column and take a spacing overlay from the compression tier.
	KindBasic Kind = "basic"
	// KindAdvanced themes carry their own page geometry and need structured contact data.
	KindAdvanced Kind = "advanced"
)

// Layout is the page arrangement produced by a theme.
type Layout string

// Layouts
const (
	LayoutSingle  Layout = "single"
	LayoutSidebar Layout = "sidebar"
	LayoutIconic  Layout = "iconic"
)

// Theme is a registered visual theme. Implementations are strategies: the
// registry dispatches on ID only, so new themes need no dispatch changes.
type Theme interface {
	ID() string
	Name() string
	Kind() Kind
	Style(metrics types.DensityMetrics) StyleSpec
}

// Margins are page margins in millimetres.
type Margins struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// UniformMargins returns equal margins on every side.
func UniformMargins(mm float64) Margins {
	return Margins{Top: mm, Right: mm, Bottom: mm, Left: mm}
}

// IsZero reports whether every margin is zero.
func (m Margins) IsZero() bool {
	return m == Margins{}
}

// MMToInches converts millimetres to inches.
func MMToInches(mm float64) float64 {
	return mm / 25.4
}

// StyleSpec is the resolved styling for one export.
type StyleSpec struct {
	TemplateID string
	Kind       Kind
	Layout     Layout
	CSS        string
	Spacing    Spacing
	Margins    Margins

	// ManagesOwnMargins tells the page renderer to apply zero external margins.
	ManagesOwnMargins bool
	// RequiresContact means the layout renders structured ContactInfo.
	RequiresContact bool

	Compression types.CompressionLevel
}

// Info describes a theme for listings.
type Info struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}
