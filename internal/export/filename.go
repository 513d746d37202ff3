package export

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-export/internal/types"
)

// MaxFilenamePartLength bounds each sanitized filename component.
const MaxFilenamePartLength = 50

// DefaultJobTitle names documents whose generation has no job title.
const DefaultJobTitle = "Resume"

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// SanitizeFilename replaces every non-alphanumeric character with "_" and
// truncates the result to MaxFilenamePartLength characters.
func SanitizeFilename(s string) string {
	out := unsafeFilenameChars.ReplaceAllString(s, "_")
	if len(out) > MaxFilenamePartLength {
		out = out[:MaxFilenamePartLength]
	}
	return out
}

// BuildFilename returns CV_<job-title>_<template>.<ext>, or CV_<job-title>.txt
// for plain text.
func BuildFilename(jobTitle, templateID string, format types.Format) string {
	jobTitle = strings.TrimSpace(jobTitle)
	if jobTitle == "" {
		jobTitle = DefaultJobTitle
	}

	name := "CV_" + SanitizeFilename(jobTitle)
	if format != types.FormatTXT {
		name += "_" + SanitizeFilename(templateID)
	}
	return name + "." + format.Extension()
}
