package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-export/internal/schemas"
	"github.com/jonathan/resume-export/internal/types"
)

// CreateGeneration stores a generation and returns it with its ID
func (db *DB) CreateGeneration(ctx context.Context, in *GenerationInput) (*Generation, error) {
	original, err := encodeSections(in.OriginalSections)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal original sections: %w", err)
	}
	modified, err := encodeSections(in.ModifiedSections)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal modified sections: %w", err)
	}

	g := &Generation{
		UserID:           in.UserID,
		CVID:             in.CVID,
		JobTitle:         in.JobTitle,
		OriginalSections: in.OriginalSections,
		ModifiedSections: in.ModifiedSections,
	}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO cv_generations (user_id, cv_id, job_title, original_sections, modified_sections)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		in.UserID, in.CVID, in.JobTitle, original, modified,
	).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation: %w", err)
	}
	return g, nil
}

// GetGeneration retrieves a generation by ID. It returns nil, nil when absent.
func (db *DB) GetGeneration(ctx context.Context, id uuid.UUID) (*Generation, error) {
	var (
		g                  Generation
		original, modified []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, cv_id, job_title, original_sections, modified_sections, created_at
		 FROM cv_generations WHERE id = $1`,
		id,
	).Scan(&g.ID, &g.UserID, &g.CVID, &g.JobTitle, &original, &modified, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get generation: %w", err)
	}

	if g.OriginalSections, err = decodeSections(original); err != nil {
		return nil, fmt.Errorf("generation %s has invalid original sections: %w", id, err)
	}
	if g.ModifiedSections, err = decodeSections(modified); err != nil {
		return nil, fmt.Errorf("generation %s has invalid modified sections: %w", id, err)
	}
	return &g, nil
}

// SaveCustomSection records a user-edited section for a CV
func (db *DB) SaveCustomSection(ctx context.Context, cvID uuid.UUID, s types.Section) (*CustomSection, error) {
	content, err := json.Marshal(s.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal custom section: %w", err)
	}

	cs := &CustomSection{CVID: cvID, Section: s}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO cv_custom_sections (cv_id, section_type, content, sort_order)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, updated_at`,
		cvID, s.Type, content, s.Order,
	).Scan(&cs.ID, &cs.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save custom section: %w", err)
	}
	return cs, nil
}

// GetLatestCustomSection returns the most recently edited section of the
// given type for a CV, or nil, nil when there is none.
func (db *DB) GetLatestCustomSection(ctx context.Context, cvID uuid.UUID, sectionType string) (*types.Section, error) {
	var (
		s       types.Section
		content []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT section_type, content, sort_order
		 FROM cv_custom_sections
		 WHERE cv_id = $1 AND section_type = $2
		 ORDER BY updated_at DESC
		 LIMIT 1`,
		cvID, sectionType,
	).Scan(&s.Type, &content, &s.Order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get custom section %s: %w", sectionType, err)
	}

	if len(content) > 0 {
		if err := json.Unmarshal(content, &s.Content); err != nil {
			return nil, fmt.Errorf("failed to decode custom section %s: %w", sectionType, err)
		}
	}
	return &s, nil
}

func encodeSections(sections []types.Section) ([]byte, error) {
	if sections == nil {
		sections = []types.Section{}
	}
	return json.Marshal(sections)
}

// decodeSections validates a stored section list against the sections schema
// and decodes it. NULL decodes to an empty list.
func decodeSections(raw []byte) ([]types.Section, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []types.Section{}, nil
	}
	if err := schemas.ValidateSections(raw); err != nil {
		return nil, err
	}

	var sections []types.Section
	if err := json.Unmarshal(raw, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}
