package server

import (
	"net/http"

	"github.com/jonathan/resume-export/internal/templates"
)

// TemplatesResponse lists the registered themes.
type TemplatesResponse struct {
	Default   string           `json:"default"`
	Templates []templates.Info `json:"templates"`
}

// handleListTemplates returns every registered theme in registration order.
func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, TemplatesResponse{
		Default:   s.registry.DefaultID(),
		Templates: s.registry.List(),
	})
}
