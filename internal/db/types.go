package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-export/internal/types"
)

// Generation is one AI-assisted rewrite of a CV for a job.
type Generation struct {
	ID               uuid.UUID       `json:"id"`
	UserID           uuid.UUID       `json:"user_id"`
	CVID             uuid.UUID       `json:"cv_id"`
	JobTitle         string          `json:"job_title"`
	OriginalSections []types.Section `json:"original_sections"`
	ModifiedSections []types.Section `json:"modified_sections"`
	CreatedAt        time.Time       `json:"created_at"`
}

// GenerationInput holds the fields needed to create a generation
type GenerationInput struct {
	UserID           uuid.UUID
	CVID             uuid.UUID
	JobTitle         string
	OriginalSections []types.Section
	ModifiedSections []types.Section
}

// CustomSection is a section edited by the user outside the generation flow.
type CustomSection struct {
	ID        uuid.UUID     `json:"id"`
	CVID      uuid.UUID     `json:"cv_id"`
	Section   types.Section `json:"section"`
	UpdatedAt time.Time     `json:"updated_at"`
}
