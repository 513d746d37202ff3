package export

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-export/internal/layout"
	"github.com/jonathan/resume-export/internal/logging"
	"github.com/jonathan/resume-export/internal/rendering"
	"github.com/jonathan/resume-export/internal/templates"
	"github.com/jonathan/resume-export/internal/types"
)

// Input is one export of already reconciled sections.
type Input struct {
	Sections   []types.Section
	TemplateID string
	Format     types.Format
	JobTitle   string
	// Contact, when set, takes precedence over extraction from the contact section.
	Contact *types.ContactInfo
}

// Options configures an Exporter.
type Options struct {
	Registry *templates.Registry
	// Printer backs PDF output. Without one, PDF requests degrade to HTML.
	Printer       rendering.Printer
	RenderTimeout time.Duration
	Logger        *zerolog.Logger
}

// Exporter dispatches an export to the assembler chain for its format.
type Exporter struct {
	registry   *templates.Registry
	assemblers map[types.Format]rendering.Assembler
	logger     zerolog.Logger
}

// NewExporter wires the assembler chains: pdf falls back to html, docx
// falls back to txt, html and txt stand alone.
func NewExporter(opts Options) (*Exporter, error) {
	registry := opts.Registry
	if registry == nil {
		var err error
		if registry, err = templates.Builtin(); err != nil {
			return nil, err
		}
	}

	e := &Exporter{
		registry: registry,
		logger:   logging.OrNop(opts.Logger).With().Str("component", "export").Logger(),
	}

	markup := rendering.MarkupAssembler{}
	text := rendering.TextAssembler{}
	pdf := rendering.PDFAssembler{Printer: opts.Printer, Timeout: opts.RenderTimeout}
	docx := rendering.DocxAssembler{}

	e.assemblers = map[types.Format]rendering.Assembler{
		types.FormatHTML: markup,
		types.FormatPDF:  rendering.Fallback(pdf, markup, e.logDegrade),
		types.FormatDOCX: rendering.Fallback(docx, text, e.logDegrade),
		types.FormatTXT:  text,
	}
	return e, nil
}

// Registry returns the template registry used for style resolution.
func (e *Exporter) Registry() *templates.Registry {
	return e.registry
}

// Export estimates density, resolves the style and renders the document.
// Rendering backend failures never surface here; they degrade to a safer
// format and are reported on the result.
func (e *Exporter) Export(ctx context.Context, in Input) (*types.RenderedDocument, error) {
	assembler, ok := e.assemblers[in.Format]
	if !ok {
		return nil, &ValidationError{Field: "format", Message: "unsupported format " + string(in.Format)}
	}

	metrics := layout.Estimate(in.Sections)
	style, err := e.registry.ResolveStyle(in.TemplateID, &metrics)
	if err != nil {
		return nil, &InternalError{Message: "failed to resolve style", Cause: err}
	}

	doc := &rendering.Document{
		Sections: in.Sections,
		Style:    style,
		Contact:  resolveContact(in, style),
	}

	out, err := assembler.Assemble(ctx, doc)
	if err != nil {
		return nil, &InternalError{Message: "failed to render " + string(in.Format), Cause: err}
	}

	e.logger.Info().
		Str("format", string(in.Format)).
		Str("produced", string(out.Format)).
		Str("template", style.TemplateID).
		Str("compression", string(metrics.CompressionLevel)).
		Float64("estimated_pages", metrics.EstimatedPages).
		Int("bytes", len(out.Bytes)).
		Msg("document exported")

	return &types.RenderedDocument{
		Bytes:    out.Bytes,
		MimeType: out.Format.MimeType(),
		Filename: BuildFilename(in.JobTitle, style.TemplateID, out.Format),
		Format:   out.Format,
		Degraded: out.Degraded,
		Density:  metrics,
		Template: style.TemplateID,
		Contact:  doc.Contact,
	}, nil
}

func (e *Exporter) logDegrade(err *rendering.RenderError, fallback types.Format) {
	e.logger.Warn().
		Err(err).
		Str("format", string(err.Format)).
		Str("fallback", string(fallback)).
		Msg("rendering failed, degrading")
}

// resolveContact prefers directly supplied contact data, then structured
// extraction from the contact section for layouts that need it.
func resolveContact(in Input, style templates.StyleSpec) *types.ContactInfo {
	if in.Contact != nil && !in.Contact.IsZero() {
		c := *in.Contact
		return &c
	}
	if !style.RequiresContact {
		return nil
	}
	if info, ok := templates.ContactFromSections(in.Sections); ok {
		return &info
	}
	return nil
}
