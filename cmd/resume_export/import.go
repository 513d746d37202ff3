package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-export/internal/db"
	"github.com/jonathan/resume-export/internal/types"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Store a generation and optional user-edited section",
	Long: `Stores the original and modified section files as a generation record so
it can be exported through the API. An --auxiliary section is saved as the
latest user edit of its type for the CV.`,
	RunE: runImport,
}

var (
	importUserID        string
	importCVID          string
	importJobTitle      string
	importOriginalFile  string
	importModifiedFile  string
	importAuxiliaryFile string
	importMigrate       bool
)

func init() {
	importCmd.Flags().StringVarP(&importUserID, "user-id", "u", "", "Owning user ID (required)")
	importCmd.Flags().StringVar(&importCVID, "cv-id", "", "CV ID (generated when empty)")
	importCmd.Flags().StringVar(&importJobTitle, "job-title", "", "Job title of the generation")
	importCmd.Flags().StringVar(&importOriginalFile, "original", "", "Path to the original sections JSON file (required)")
	importCmd.Flags().StringVar(&importModifiedFile, "modified", "", "Path to the modified sections JSON file")
	importCmd.Flags().StringVar(&importAuxiliaryFile, "auxiliary", "", "Path to a single user-edited section JSON file")
	importCmd.Flags().BoolVar(&importMigrate, "migrate", false, "Apply database migrations first")

	_ = importCmd.MarkFlagRequired("user-id")
	_ = importCmd.MarkFlagRequired("original")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	if appConfig.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	userID, err := uuid.Parse(importUserID)
	if err != nil {
		return fmt.Errorf("invalid user ID: %w", err)
	}
	cvID := uuid.New()
	if importCVID != "" {
		if cvID, err = uuid.Parse(importCVID); err != nil {
			return fmt.Errorf("invalid CV ID: %w", err)
		}
	}

	original, err := readSections(importOriginalFile)
	if err != nil {
		return err
	}
	var modified []types.Section
	if importModifiedFile != "" {
		if modified, err = readSections(importModifiedFile); err != nil {
			return err
		}
	}
	var auxiliary *types.Section
	if importAuxiliaryFile != "" {
		if auxiliary, err = readSection(importAuxiliaryFile); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	database, err := db.Connect(ctx, appConfig.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if importMigrate {
		if err := database.Migrate(ctx, &logger); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	gen, err := database.CreateGeneration(ctx, &db.GenerationInput{
		UserID:           userID,
		CVID:             cvID,
		JobTitle:         importJobTitle,
		OriginalSections: original,
		ModifiedSections: modified,
	})
	if err != nil {
		return fmt.Errorf("failed to store generation: %w", err)
	}

	if auxiliary != nil {
		if _, err := database.SaveCustomSection(ctx, cvID, *auxiliary); err != nil {
			return fmt.Errorf("failed to store auxiliary section: %w", err)
		}
	}

	logger.Info().
		Str("generation_id", gen.ID.String()).
		Str("cv_id", cvID.String()).
		Int("sections", len(original)).
		Msg("generation imported")
	fmt.Fprintln(cmd.OutOrStdout(), gen.ID)
	return nil
}
