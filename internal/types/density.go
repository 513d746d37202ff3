// Package types provides type definitions for structured data used throughout the resume export engine.
package types

// CompressionLevel controls how tightly spacing and margins are set to fit content on a page.
type CompressionLevel string

// Compression tiers, from loosest to tightest
const (
	CompressionNone   CompressionLevel = "none"
	CompressionLight  CompressionLevel = "light"
	CompressionMedium CompressionLevel = "medium"
	CompressionHeavy  CompressionLevel = "heavy"
)

// Rank orders tiers so that a tighter tier has a higher rank.
func (c CompressionLevel) Rank() int {
	switch c {
	case CompressionLight:
		return 1
	case CompressionMedium:
		return 2
	case CompressionHeavy:
		return 3
	default:
		return 0
	}
}

// DensityMetrics summarizes how much page space the content is expected to use
type DensityMetrics struct {
	EstimatedPages   float64          `json:"estimated_pages"`
	CompressionLevel CompressionLevel `json:"compression_level"`
	SectionCount     int              `json:"section_count"`
}
