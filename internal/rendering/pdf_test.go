package rendering

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonathan/resume-export/internal/browser"
	"github.com/jonathan/resume-export/internal/templates"
	"github.com/jonathan/resume-export/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePrinter struct {
	pdf   []byte
	err   error
	delay time.Duration
	opts  browser.PrintOptions
	html  []byte
}

func (f *fakePrinter) PrintPDF(ctx context.Context, html []byte, opts browser.PrintOptions) ([]byte, error) {
	f.opts = opts
	f.html = html
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.pdf, f.err
}

func TestPDFAssembler_Success(t *testing.T) {
	printer := &fakePrinter{pdf: []byte("%PDF-1.7 body")}
	a := PDFAssembler{Printer: printer}

	out, err := a.Assemble(context.Background(), sampleDocument(t, "classic"))
	require.NoError(t, err)

	assert.Equal(t, types.FormatPDF, out.Format)
	assert.Equal(t, "%PDF-1.7 body", string(out.Bytes))
	assert.Contains(t, string(printer.html), "<h1>Jane Doe</h1>")
	assert.InDelta(t, 20/25.4, printer.opts.MarginTop, 1e-9)
	assert.Equal(t, browser.A4WidthIn, printer.opts.PaperWidth)
}

func TestPDFAssembler_RejectsNonPDF(t *testing.T) {
	a := PDFAssembler{Printer: &fakePrinter{pdf: []byte("<html>oops")}}

	_, err := a.Assemble(context.Background(), sampleDocument(t, "classic"))

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, types.FormatPDF, renderErr.Format)
}

func TestPDFAssembler_Timeout(t *testing.T) {
	a := PDFAssembler{Printer: &fakePrinter{delay: time.Second}, Timeout: 10 * time.Millisecond}

	_, err := a.Assemble(context.Background(), sampleDocument(t, "classic"))

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, "page renderer timed out", renderErr.Message)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPDFAssembler_NoPrinter(t *testing.T) {
	_, err := PDFAssembler{}.Assemble(context.Background(), sampleDocument(t, "classic"))

	var renderErr *RenderError
	assert.ErrorAs(t, err, &renderErr)
}

func TestPDFAssembler_PrinterError(t *testing.T) {
	cause := errors.New("chrome crashed")
	_, err := PDFAssembler{Printer: &fakePrinter{err: cause}}.Assemble(context.Background(), sampleDocument(t, "classic"))

	assert.ErrorIs(t, err, cause)
}

func TestPrintOptionsFor(t *testing.T) {
	registry := templates.MustBuiltin()

	advanced, err := registry.ResolveStyle("iconic", nil)
	require.NoError(t, err)
	opts := PrintOptionsFor(advanced)
	assert.Zero(t, opts.MarginTop)
	assert.Zero(t, opts.MarginLeft)
	assert.True(t, opts.PreferCSSPageSize)

	basic, err := registry.ResolveStyle("classic", &types.DensityMetrics{CompressionLevel: types.CompressionHeavy})
	require.NoError(t, err)
	opts = PrintOptionsFor(basic)
	assert.InDelta(t, 10/25.4, opts.MarginBottom, 1e-9)
	assert.False(t, opts.PreferCSSPageSize)
}
