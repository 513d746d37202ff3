// Package types provides type definitions for structured data used throughout the resume export engine.
package types

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Format is an output encoding for an exported resume
type Format string

// Supported export formats
const (
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatTXT  Format = "txt"
)

// MIME types for each format
const (
	MimeHTML = "text/html"
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeTXT  = "text/plain"
)

// Formats lists every supported format in dispatch order.
func Formats() []Format {
	return []Format{FormatHTML, FormatPDF, FormatDOCX, FormatTXT}
}

// ParseFormat converts a request value into a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatHTML, FormatPDF, FormatDOCX, FormatTXT:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q", s)
	}
}

// MimeType returns the content type served for the format.
func (f Format) MimeType() string {
	switch f {
	case FormatHTML:
		return MimeHTML
	case FormatPDF:
		return MimePDF
	case FormatDOCX:
		return MimeDOCX
	case FormatTXT:
		return MimeTXT
	default:
		return "application/octet-stream"
	}
}

// Extension returns the file extension, without the dot.
func (f Format) Extension() string {
	return string(f)
}

// ExportRequest is the request accepted from the HTTP layer.
type ExportRequest struct {
	GenerationID string `json:"generation_id" validate:"required,uuid"`
	Template     string `json:"template,omitempty"`
	Format       string `json:"format" validate:"required,oneof=html pdf docx txt"`
}

// Validate validates the ExportRequest using the validator.
func (r *ExportRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// RenderedDocument is the artifact returned to the caller.
// Format is the encoding actually produced, which differs from the
// requested one when rendering degraded to a safer format.
type RenderedDocument struct {
	Bytes    []byte         `json:"-"`
	MimeType string         `json:"mime_type"`
	Filename string         `json:"filename"`
	Format   Format         `json:"format"`
	Degraded bool           `json:"degraded"`
	Density  DensityMetrics `json:"density"`
	Template string         `json:"template"`
	Contact  *ContactInfo   `json:"contact,omitempty"`
}
