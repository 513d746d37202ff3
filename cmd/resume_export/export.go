package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-export/internal/browser"
	"github.com/jonathan/resume-export/internal/export"
	"github.com/jonathan/resume-export/internal/reconcile"
	"github.com/jonathan/resume-export/internal/rendering"
	"github.com/jonathan/resume-export/internal/schemas"
	"github.com/jonathan/resume-export/internal/templates"
	"github.com/jonathan/resume-export/internal/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render section files to one or more formats",
	Long: `Reconciles the original, modified and auxiliary section files and renders
the result once per requested format. Formats are rendered concurrently;
PDF output starts a headless Chrome.`,
	RunE: runExportCmd,
}

var (
	exportOriginalFile  string
	exportModifiedFile  string
	exportAuxiliaryFile string
	exportTemplate      string
	exportFormats       string
	exportJobTitle      string
	exportOutDir        string
)

func init() {
	exportCmd.Flags().StringVar(&exportOriginalFile, "original", "", "Path to the original sections JSON file (required)")
	exportCmd.Flags().StringVar(&exportModifiedFile, "modified", "", "Path to the modified sections JSON file")
	exportCmd.Flags().StringVar(&exportAuxiliaryFile, "auxiliary", "", "Path to a single user-edited section JSON file")
	exportCmd.Flags().StringVarP(&exportTemplate, "template", "t", "", "Template ID (defaults to the configured default)")
	exportCmd.Flags().StringVarP(&exportFormats, "format", "f", "pdf", "Comma-separated formats: html, pdf, docx, txt")
	exportCmd.Flags().StringVar(&exportJobTitle, "job-title", "", "Job title used in output filenames")
	exportCmd.Flags().StringVarP(&exportOutDir, "out-dir", "o", ".", "Directory for rendered files")

	_ = exportCmd.MarkFlagRequired("original")
	rootCmd.AddCommand(exportCmd)
}

// exportOptions holds one CLI export run.
type exportOptions struct {
	OriginalFile  string
	ModifiedFile  string
	AuxiliaryFile string
	Template      string
	Formats       []types.Format
	JobTitle      string
	OutDir        string
	Registry      *templates.Registry
	Printer       rendering.Printer
	RenderTimeout time.Duration
	Logger        *zerolog.Logger
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	formats, err := parseFormats(exportFormats)
	if err != nil {
		return err
	}
	registry, err := newRegistry(appConfig.DefaultTemplate)
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	opts := exportOptions{
		OriginalFile:  exportOriginalFile,
		ModifiedFile:  exportModifiedFile,
		AuxiliaryFile: exportAuxiliaryFile,
		Template:      exportTemplate,
		Formats:       formats,
		JobTitle:      exportJobTitle,
		OutDir:        exportOutDir,
		Registry:      registry,
		RenderTimeout: appConfig.RenderTimeoutDuration(),
		Logger:        &logger,
	}

	if slices.Contains(formats, types.FormatPDF) {
		pool := browser.NewPool(browser.Config{
			ExecPath: appConfig.ChromePath,
			Size:     appConfig.RenderPoolSize,
			Logger:   &logger,
		})
		defer pool.Close()
		opts.Printer = pool
	}

	docs, err := runExport(cmd.Context(), opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, d := range docs {
		status := "ok"
		if d.Degraded {
			status = "degraded"
		}
		fmt.Fprintf(out, "%s\t%s\t%s\t%d bytes\n", d.Path, d.Format, status, d.Size)
	}
	return nil
}

// writtenDocument describes one file produced by runExport.
type writtenDocument struct {
	Requested types.Format
	Format    types.Format
	Path      string
	Size      int
	Degraded  bool
}

// runExport reconciles the section files and writes one document per format.
func runExport(ctx context.Context, opts exportOptions) ([]writtenDocument, error) {
	if len(opts.Formats) == 0 {
		return nil, fmt.Errorf("at least one format is required")
	}

	original, err := readSections(opts.OriginalFile)
	if err != nil {
		return nil, err
	}
	var modified []types.Section
	if opts.ModifiedFile != "" {
		if modified, err = readSections(opts.ModifiedFile); err != nil {
			return nil, err
		}
	}
	var auxiliary *types.Section
	if opts.AuxiliaryFile != "" {
		if auxiliary, err = readSection(opts.AuxiliaryFile); err != nil {
			return nil, err
		}
	}

	sections := reconcile.New().Reconcile(original, modified, auxiliary)

	exporter, err := export.NewExporter(export.Options{
		Registry:      opts.Registry,
		Printer:       opts.Printer,
		RenderTimeout: opts.RenderTimeout,
		Logger:        opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	docs := make([]writtenDocument, len(opts.Formats))
	g, gctx := errgroup.WithContext(ctx)
	for i, format := range opts.Formats {
		g.Go(func() error {
			doc, err := exporter.Export(gctx, export.Input{
				Sections:   sections,
				TemplateID: opts.Template,
				Format:     format,
				JobTitle:   opts.JobTitle,
			})
			if err != nil {
				return fmt.Errorf("export %s: %w", format, err)
			}

			name := doc.Filename
			if doc.Degraded {
				// A degraded file also names the format that was asked for.
				name = strings.TrimSuffix(name, "."+doc.Format.Extension()) + "_from_" + string(format) + "." + doc.Format.Extension()
			}
			path := filepath.Join(opts.OutDir, name)
			if err := os.WriteFile(path, doc.Bytes, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}

			docs[i] = writtenDocument{
				Requested: format,
				Format:    doc.Format,
				Path:      path,
				Size:      len(doc.Bytes),
				Degraded:  doc.Degraded,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func readSections(path string) ([]types.Section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sections file: %w", err)
	}
	if err := schemas.ValidateSections(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	var sections []types.Section
	if err := json.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("failed to parse sections JSON %s: %w", path, err)
	}
	return sections, nil
}

func readSection(path string) (*types.Section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read section file: %w", err)
	}
	if err := schemas.ValidateSection(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	var section types.Section
	if err := json.Unmarshal(data, &section); err != nil {
		return nil, fmt.Errorf("failed to parse section JSON %s: %w", path, err)
	}
	return &section, nil
}

// parseFormats parses a comma-separated format list, dropping duplicates.
func parseFormats(list string) ([]types.Format, error) {
	var formats []types.Format
	seen := make(map[types.Format]bool)
	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		f, err := types.ParseFormat(part)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("at least one format is required")
	}
	return formats, nil
}
