// Package types provides type definitions for structured data used throughout the resume export engine.
package types

// Well-known section types
const (
	SectionName    = "name"
	SectionContact = "contact"
	SectionHobbies = "hobbies"
)

// Section is one named block of resume content.
// After reconciliation at most one Section exists per Type.
type Section struct {
	Type    string  `json:"type"`
	Content Content `json:"content"`
	Order   *int    `json:"order,omitempty"`
}

// OrderedSection builds a section with an explicit sort position.
func OrderedSection(sectionType string, content Content, order int) Section {
	return Section{Type: sectionType, Content: content, Order: &order}
}

// UnorderedSection builds a section without a sort position.
func UnorderedSection(sectionType string, content Content) Section {
	return Section{Type: sectionType, Content: content}
}

// FindSection returns the first section of the given type.
func FindSection(sections []Section, sectionType string) (Section, bool) {
	for _, s := range sections {
		if s.Type == sectionType {
			return s, true
		}
	}
	return Section{}, false
}

// ContactInfo is the structured form of a contact section.
type ContactInfo struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
}

// IsZero reports whether no contact field is set.
func (c ContactInfo) IsZero() bool {
	return c.Email == "" && c.Phone == "" && c.Location == ""
}
