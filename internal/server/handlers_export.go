package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jonathan/resume-export/internal/logging"
	"github.com/jonathan/resume-export/internal/server/middleware"
	"github.com/jonathan/resume-export/internal/types"
)

// Response headers describing how an export was produced
const (
	HeaderCompressionLevel = "X-Compression-Level"
	HeaderDegraded         = "X-Export-Degraded"
	HeaderTemplate         = "X-Export-Template"
)

// maxExportBodyBytes bounds the POST /exports request body.
const maxExportBodyBytes = 64 << 10

// handleCreateExport renders the generation named in the JSON body.
func (s *Server) handleCreateExport(w http.ResponseWriter, r *http.Request) {
	var req types.ExportRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxExportBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	s.export(w, r, req)
}

// handleGenerationExport renders the generation in the path, with template
// and format taken from the query string.
func (s *Server) handleGenerationExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.export(w, r, types.ExportRequest{
		GenerationID: r.PathValue("id"),
		Template:     q.Get("template"),
		Format:       q.Get("format"),
	})
}

func (s *Server) export(w http.ResponseWriter, r *http.Request, req types.ExportRequest) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	doc, err := s.exports.Export(r.Context(), userID, req)
	if err != nil {
		status := HTTPStatus(err)
		if status == http.StatusInternalServerError {
			logging.Ctx(r.Context()).Error().Err(err).Str("generation_id", req.GenerationID).Msg("export failed")
		}
		s.errorResponse(w, status, publicMessage(err))
		return
	}

	writeDocument(w, doc)
}

// writeDocument streams doc as an attachment with its export metadata headers.
func writeDocument(w http.ResponseWriter, doc *types.RenderedDocument) {
	h := w.Header()
	h.Set("Content-Type", contentType(doc.MimeType))
	h.Set("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	h.Set("Content-Length", strconv.Itoa(len(doc.Bytes)))
	h.Set(HeaderCompressionLevel, string(doc.Density.CompressionLevel))
	h.Set(HeaderDegraded, strconv.FormatBool(doc.Degraded))
	h.Set(HeaderTemplate, doc.Template)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Bytes)
}

// contentType adds a charset to textual MIME types.
func contentType(mimeType string) string {
	switch mimeType {
	case types.MimeHTML, types.MimeTXT:
		return fmt.Sprintf("%s; charset=utf-8", mimeType)
	default:
		return mimeType
	}
}
