// Package main provides the resume_export CLI and HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-export/internal/config"
	"github.com/jonathan/resume-export/internal/logging"
	"github.com/jonathan/resume-export/internal/templates"
)

var (
	configPath string
	appConfig  *config.Config
	logger     zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "resume_export",
	Short: "Resume export engine",
	Long:  "resume_export renders reconciled resume sections to HTML, PDF, DOCX and plain text, from the command line or over a REST API.",
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		appConfig = cfg
		logger = logging.Init(cfg.Logging())
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a JSON or YAML config file")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRegistry returns the built-in themes with the configured fallback.
func newRegistry(defaultID string) (*templates.Registry, error) {
	registry, err := templates.Builtin()
	if err != nil {
		return nil, err
	}
	if defaultID != "" {
		if err := registry.SetDefault(defaultID); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
