package templates

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-export/internal/content"
	"github.com/jonathan/resume-export/internal/types"
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?\d[\d \t().\-]{6,}\d`)

	// segmentSeparators split a contact line into candidate fields.
	segmentSeparators = strings.NewReplacer("|", "\n", "•", "\n", "·", "\n")
)

var (
	emailAliases    = []string{"email", "mail", "e-mail"}
	phoneAliases    = []string{"phone", "telephone", "mobile", "tel"}
	locationAliases = []string{"location", "address", "city"}
)

// ContactFromSections extracts ContactInfo from the contact section, if any.
func ContactFromSections(sections []types.Section) (types.ContactInfo, bool) {
	s, ok := types.FindSection(sections, types.SectionContact)
	if !ok {
		return types.ContactInfo{}, false
	}
	info := ExtractContactInfo(s.Content)
	return info, !info.IsZero()
}

// ExtractContactInfo returns structured contact data. Records with recognised
// keys map directly; anything else is normalized and parsed as free text.
func ExtractContactInfo(c types.Content) types.ContactInfo {
	if c.Kind == types.KindRecord {
		info := types.ContactInfo{
			Email:    recordValue(c, emailAliases),
			Phone:    recordValue(c, phoneAliases),
			Location: recordValue(c, locationAliases),
		}
		if !info.IsZero() {
			return info
		}
	}
	return ParseContactText(content.Normalize(c))
}

// ParseContactText locates an email and a phone number with regular
// expressions and takes the first remaining segment as the location.
func ParseContactText(text string) types.ContactInfo {
	info := types.ContactInfo{
		Email: emailPattern.FindString(text),
		Phone: strings.TrimSpace(phonePattern.FindString(text)),
	}

	for _, segment := range strings.Split(segmentSeparators.Replace(text), "\n") {
		segment = strings.TrimSpace(segment)
		if segment == "" || emailPattern.MatchString(segment) || phonePattern.MatchString(segment) || isURL(segment) {
			continue
		}
		info.Location = segment
		break
	}

	return info
}

func recordValue(c types.Content, aliases []string) string {
	for _, alias := range aliases {
		v, ok := c.Lookup(alias)
		if !ok {
			continue
		}
		if v.Kind != types.KindText && v.Kind != types.KindScalar {
			continue
		}
		if s := strings.TrimSpace(v.Text); s != "" {
			return s
		}
	}
	return ""
}

func isURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.Contains(lower, "://") ||
		strings.HasPrefix(lower, "www.") ||
		strings.Contains(lower, "linkedin.com") ||
		strings.Contains(lower, "github.com")
}
