package content

import (
	"strings"

	"github.com/jonathan/resume-export/internal/types"
)

// Field-name aliases for each semantic slot, in priority order.
var (
	titleAliases = []string{
		"title", "job_title", "jobTitle", "position", "role", "degree", "name", "project",
	}
	organizationAliases = []string{
		"company", "organization", "organisation", "employer", "institution", "school", "university", "issuer",
	}
	narrativeAliases = []string{
		"description", "details", "summary", "responsibilities", "achievements", "highlights",
	}
	durationAliases = []string{
		"duration", "period", "dates", "date", "years", "timeframe",
	}
)

// slotValue returns the first non-blank alias value. Strings are trimmed,
// scalars use their literal, and lists of strings are joined line by line.
func slotValue(fields []types.Field, aliases []string) string {
	for _, alias := range aliases {
		for _, f := range fields {
			if f.Key != alias {
				continue
			}
			if v := slotText(f.Value); v != "" {
				return v
			}
		}
	}
	return ""
}

func slotText(c types.Content) string {
	switch c.Kind {
	case types.KindText, types.KindScalar:
		return strings.TrimSpace(c.Text)
	case types.KindList:
		lines := make([]string, 0, len(c.Items))
		for _, item := range c.Items {
			if item.Kind != types.KindText && item.Kind != types.KindScalar {
				continue
			}
			if line := strings.TrimSpace(item.Text); line != "" {
				lines = append(lines, line)
			}
		}
		return strings.Join(lines, "\n")
	default:
		return ""
	}
}
