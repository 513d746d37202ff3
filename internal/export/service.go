package export

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/resume-export/internal/db"
	"github.com/jonathan/resume-export/internal/reconcile"
	"github.com/jonathan/resume-export/internal/types"
)

// Store supplies generation records and user-edited sections.
type Store interface {
	GetGeneration(ctx context.Context, id uuid.UUID) (*db.Generation, error)
	GetLatestCustomSection(ctx context.Context, cvID uuid.UUID, sectionType string) (*types.Section, error)
}

// Service exports stored generations on behalf of a user.
type Service struct {
	store      Store
	exporter   *Exporter
	reconciler *reconcile.Reconciler
}

// NewService creates a Service
func NewService(store Store, exporter *Exporter) *Service {
	return &Service{
		store:      store,
		exporter:   exporter,
		reconciler: reconcile.New(),
	}
}

// Export validates req, loads the generation owned by userID, reconciles
// its section sources and renders the requested format.
func (s *Service) Export(ctx context.Context, userID uuid.UUID, req types.ExportRequest) (*types.RenderedDocument, error) {
	req.Format = strings.ToLower(strings.TrimSpace(req.Format))
	if err := req.Validate(); err != nil {
		return nil, toValidationError(err)
	}

	format, err := types.ParseFormat(req.Format)
	if err != nil {
		return nil, &ValidationError{Field: "format", Message: err.Error(), Cause: err}
	}
	generationID, err := uuid.Parse(req.GenerationID)
	if err != nil {
		return nil, &ValidationError{Field: "generation_id", Message: "must be a valid UUID", Cause: err}
	}

	gen, err := s.store.GetGeneration(ctx, generationID)
	if err != nil {
		return nil, &InternalError{Message: "failed to load generation", Cause: err}
	}
	if gen == nil || gen.UserID != userID {
		return nil, &NotFoundError{Resource: "generation", ID: generationID.String()}
	}

	sections, err := s.Sections(ctx, gen)
	if err != nil {
		return nil, err
	}

	return s.exporter.Export(ctx, Input{
		Sections:   sections,
		TemplateID: req.Template,
		Format:     format,
		JobTitle:   gen.JobTitle,
	})
}

// Sections reconciles the original, modified and latest auxiliary sources of gen.
func (s *Service) Sections(ctx context.Context, gen *db.Generation) ([]types.Section, error) {
	var auxiliary *types.Section
	for _, overrideType := range s.reconciler.OverrideTypes {
		aux, err := s.store.GetLatestCustomSection(ctx, gen.CVID, overrideType)
		if err != nil {
			return nil, &InternalError{Message: "failed to load custom section", Cause: err}
		}
		if aux != nil {
			auxiliary = aux
			break
		}
	}
	return s.reconciler.Reconcile(gen.OriginalSections, gen.ModifiedSections, auxiliary), nil
}

func toValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ValidationError{
			Field:   jsonFieldName(fe.Field()),
			Message: "failed on the '" + fe.Tag() + "' rule",
			Cause:   err,
		}
	}
	return &ValidationError{Field: "request", Message: err.Error(), Cause: err}
}

func jsonFieldName(field string) string {
	switch field {
	case "GenerationID":
		return "generation_id"
	case "Format":
		return "format"
	case "Template":
		return "template"
	default:
		return strings.ToLower(field)
	}
}
