package rendering

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/jonathan/resume-export/internal/browser"
	"github.com/jonathan/resume-export/internal/templates"
	"github.com/jonathan/resume-export/internal/types"
)

// DefaultRenderTimeout bounds one page print.
const DefaultRenderTimeout = 30 * time.Second

var pdfMagic = []byte("%PDF-")

// Printer prints an HTML page to PDF. *browser.Pool implements it.
type Printer interface {
	PrintPDF(ctx context.Context, html []byte, opts browser.PrintOptions) ([]byte, error)
}

// PDFAssembler prints the markup output through a headless browser.
type PDFAssembler struct {
	Printer Printer
	Timeout time.Duration
}

// Format returns types.FormatPDF
func (PDFAssembler) Format() types.Format { return types.FormatPDF }

// Assemble renders doc as markup and prints it. Any failure, including a
// timeout or a response that is not a PDF, is returned as a *RenderError.
func (a PDFAssembler) Assemble(ctx context.Context, doc *Document) (Output, error) {
	if a.Printer == nil {
		return Output{}, &RenderError{Format: types.FormatPDF, Message: "no page renderer configured"}
	}

	html, err := RenderMarkup(doc)
	if err != nil {
		return Output{}, &RenderError{Format: types.FormatPDF, Message: "failed to build markup", Cause: err}
	}

	timeout := a.Timeout
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pdf, err := a.Printer.PrintPDF(ctx, html, PrintOptionsFor(doc.Style))
	if err != nil {
		msg := "page renderer failed"
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			msg = "page renderer timed out"
		}
		return Output{}, &RenderError{Format: types.FormatPDF, Message: msg, Cause: err}
	}
	if !bytes.HasPrefix(pdf, pdfMagic) {
		return Output{}, &RenderError{Format: types.FormatPDF, Message: "page renderer returned a non-PDF payload"}
	}

	return Output{Format: types.FormatPDF, Bytes: pdf}, nil
}

// PrintOptionsFor maps a style to A4 print options. Themes that manage their
// own margins print with zero external margins.
func PrintOptionsFor(style templates.StyleSpec) browser.PrintOptions {
	if style.ManagesOwnMargins {
		opts := browser.A4(0)
		opts.PreferCSSPageSize = true
		return opts
	}

	opts := browser.A4(0)
	opts.MarginTop = templates.MMToInches(style.Margins.Top)
	opts.MarginRight = templates.MMToInches(style.Margins.Right)
	opts.MarginBottom = templates.MMToInches(style.Margins.Bottom)
	opts.MarginLeft = templates.MMToInches(style.Margins.Left)
	return opts
}
