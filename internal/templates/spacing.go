package templates

import "github.com/jonathan/resume-export/internal/types"

// Spacing is a margin and rhythm preset applied on top of a basic theme.
type Spacing struct {
	Name         string
	MarginMM     float64
	LineHeight   float64
	SectionGapPt float64
	ItemGapPt    float64
	FontScale    float64
}

// Spacing presets
var (
	Spacious = Spacing{Name: "spacious", MarginMM: 20, LineHeight: 1.5, SectionGapPt: 14, ItemGapPt: 6, FontScale: 1.0}
	Medium   = Spacing{Name: "medium", MarginMM: 15, LineHeight: 1.35, SectionGapPt: 10, ItemGapPt: 4, FontScale: 0.97}
	Tight    = Spacing{Name: "tight", MarginMM: 10, LineHeight: 1.2, SectionGapPt: 6, ItemGapPt: 2, FontScale: 0.93}
)

// SpacingFor picks the preset for a compression tier.
func SpacingFor(level types.CompressionLevel) Spacing {
	switch level {
	case types.CompressionLight:
		return Medium
	case types.CompressionMedium, types.CompressionHeavy:
		return Tight
	default:
		return Spacious
	}
}

func spacingPresets() []Spacing {
	return []Spacing{Spacious, Medium, Tight}
}
