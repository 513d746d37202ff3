// Package reconcile merges original, AI-modified and independently edited
// section sources into one ordered, type-unique section list.
package reconcile

import (
	"math"
	"sort"

	"github.com/jonathan/resume-export/internal/types"
)

// unorderedRank places sections without an order after every ordered one.
const unorderedRank = math.MaxInt

// DefaultOverrideType is the section type whose auxiliary value always wins.
const DefaultOverrideType = types.SectionHobbies

// Reconciler applies the precedence rules. OverrideTypes lists the section
// types for which an auxiliary section beats both original and modified.
type Reconciler struct {
	OverrideTypes []string
}

// New returns a Reconciler with the default override type.
func New() *Reconciler {
	return &Reconciler{OverrideTypes: []string{DefaultOverrideType}}
}

// Reconcile merges the sources with the default override type.
func Reconcile(original, modified []types.Section, auxiliary *types.Section) []types.Section {
	return New().Reconcile(original, modified, auxiliary)
}

// Reconcile merges the three sources:
//
//  1. every original section is kept, in input order
//  2. an override-type section takes the auxiliary value when auxiliary is present
//  3. otherwise a same-type modified section replaces the original value
//  4. modified sections with no original counterpart are appended
//  5. auxiliary is appended if its type is still absent
//  6. the result is sorted by order, unordered sections last
//
// Duplicate types within a source collapse to their first occurrence.
func (r *Reconciler) Reconcile(original, modified []types.Section, auxiliary *types.Section) []types.Section {
	modifiedByType := make(map[string]types.Section, len(modified))
	for _, s := range modified {
		if _, dup := modifiedByType[s.Type]; !dup {
			modifiedByType[s.Type] = s
		}
	}

	result := make([]types.Section, 0, len(original)+len(modified)+1)
	seen := make(map[string]bool, len(original)+len(modified)+1)

	for _, orig := range original {
		if seen[orig.Type] {
			continue
		}
		seen[orig.Type] = true

		merged := orig
		if auxiliary != nil && auxiliary.Type == orig.Type && r.isOverride(orig.Type) {
			merged = overlay(orig, *auxiliary)
		} else if mod, ok := modifiedByType[orig.Type]; ok {
			merged = overlay(orig, mod)
		}
		result = append(result, merged)
	}

	for _, mod := range modified {
		if seen[mod.Type] {
			continue
		}
		seen[mod.Type] = true

		if auxiliary != nil && auxiliary.Type == mod.Type && r.isOverride(mod.Type) {
			mod = overlay(mod, *auxiliary)
		}
		result = append(result, mod)
	}

	if auxiliary != nil && !seen[auxiliary.Type] {
		result = append(result, *auxiliary)
	}

	SortByOrder(result)
	return result
}

// SortByOrder sorts sections ascending by order. Sections without an order
// keep their relative input order after all ordered sections.
func SortByOrder(sections []types.Section) {
	sort.SliceStable(sections, func(i, j int) bool {
		return rank(sections[i]) < rank(sections[j])
	})
}

func (r *Reconciler) isOverride(sectionType string) bool {
	for _, t := range r.OverrideTypes {
		if t == sectionType {
			return true
		}
	}
	return false
}

// overlay replaces base's content with winner's. The base order is kept
// unless it has none.
func overlay(base, winner types.Section) types.Section {
	out := base
	out.Content = winner.Content
	if out.Order == nil {
		out.Order = winner.Order
	}
	return out
}

func rank(s types.Section) int {
	if s.Order == nil {
		return unorderedRank
	}
	return *s.Order
}
