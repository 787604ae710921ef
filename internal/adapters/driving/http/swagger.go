package http

import (
	"net/http"

	"github.com/swaggo/swag"

	// registers the generated API description
	_ "github.com/foliocms/folio-core/internal/adapters/driving/http/docs"
)

// handleSwaggerDoc serves the registered OpenAPI document
func (s *Server) handleSwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		s.logger.Error("read swagger doc", "error", err)
		writeError(w, http.StatusInternalServerError, "api documentation unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(doc))
}
