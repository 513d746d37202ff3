package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-export/internal/browser"
	"github.com/jonathan/resume-export/internal/db"
	"github.com/jonathan/resume-export/internal/export"
	"github.com/jonathan/resume-export/internal/server"
)

var (
	servePort    int
	serveMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exports stored generations as HTML, PDF, DOCX or plain text.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Apply database migrations before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := *appConfig
	if servePort != 0 {
		cfg.Port = servePort
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	jwtConfig, err := cfg.JWT()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}

	ctx := cmd.Context()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if serveMigrate {
		if err := database.Migrate(ctx, &logger); err != nil {
			database.Close()
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	registry, err := newRegistry(cfg.DefaultTemplate)
	if err != nil {
		database.Close()
		return fmt.Errorf("failed to load templates: %w", err)
	}

	pool := browser.NewPool(browser.Config{
		ExecPath: cfg.ChromePath,
		Size:     cfg.RenderPoolSize,
		Logger:   &logger,
	})

	exporter, err := export.NewExporter(export.Options{
		Registry:      registry,
		Printer:       pool,
		RenderTimeout: cfg.RenderTimeoutDuration(),
		Logger:        &logger,
	})
	if err != nil {
		pool.Close()
		database.Close()
		return fmt.Errorf("failed to create exporter: %w", err)
	}

	srv, err := server.New(server.Config{
		Port:       cfg.Port,
		CORSOrigin: cfg.CORSOrigin,
		JWT:        jwtConfig,
		Exports:    export.NewService(database, exporter),
		Registry:   registry,
		Logger:     &logger,
		OnShutdown: []func(){pool.Close, database.Close},
	})
	if err != nil {
		pool.Close()
		database.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
