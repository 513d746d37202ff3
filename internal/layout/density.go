// Package layout estimates how much page space resume content will occupy.
package layout

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-export/internal/content"
	"github.com/jonathan/resume-export/internal/types"
)

const (
	// linesPerPage is the estimated number of body lines on one A4 page
	linesPerPage = 50
	// charsPerLine is the estimated number of characters per wrapped line
	charsPerLine = 95
	// sectionOverheadLines covers a section heading and the gap below it
	sectionOverheadLines = 2
	// nameOverheadLines covers the large name block
	nameOverheadLines = 3
)

// Page-fill thresholds for each compression tier. Content estimated at or
// below a threshold gets the matching tier; above the last one is heavy.
const (
	noneMaxPages   = 0.85
	lightMaxPages  = 1.0
	mediumMaxPages = 1.2
)

// Estimate measures the normalized content volume of all sections and
// classifies it into a compression tier. It is a heuristic pre-pass; real
// overflow is only resolved by the renderer's own pagination.
func Estimate(sections []types.Section) types.DensityMetrics {
	lines := 0
	for _, s := range sections {
		lines += SectionLines(s)
	}

	pages := float64(lines) / linesPerPage
	return types.DensityMetrics{
		EstimatedPages:   math.Round(pages*100) / 100,
		CompressionLevel: Classify(pages),
		SectionCount:     len(sections),
	}
}

// SectionLines estimates the rendered line count of one section including its heading.
func SectionLines(s types.Section) int {
	if s.Type == types.SectionName {
		return nameOverheadLines
	}
	return sectionOverheadLines + WrappedLines(content.NormalizeSection(s))
}

// WrappedLines counts lines after wrapping at charsPerLine. Blank lines count as one.
func WrappedLines(text string) int {
	if text == "" {
		return 0
	}

	total := 0
	for _, line := range strings.Split(text, "\n") {
		n := utf8.RuneCountInString(strings.TrimRight(line, " \t\r"))
		if n == 0 {
			total++
			continue
		}
		total += (n + charsPerLine - 1) / charsPerLine
	}
	return total
}

// Classify maps an estimated page count to a compression tier.
// It is non-decreasing: more pages never yield a looser tier.
func Classify(pages float64) types.CompressionLevel {
	switch {
	case pages <= noneMaxPages:
		return types.CompressionNone
	case pages <= lightMaxPages:
		return types.CompressionLight
	case pages <= mediumMaxPages:
		return types.CompressionMedium
	default:
		return types.CompressionHeavy
	}
}
