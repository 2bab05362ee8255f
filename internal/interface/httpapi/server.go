// Package httpapi exposes the lookup engine and the relay gateway over
// a small JSON HTTP surface.
package httpapi

import (
	"encoding/json"
	"net/http"

	"contactdesk-service/internal/usecase"
	"contactdesk-service/pkg/logger"
	"contactdesk-service/pkg/metrics"
)

// Server wires the lookup session, composer and relay orchestrator
// into HTTP handlers.
type Server struct {
	session        *usecase.Session
	composer       *usecase.Composer
	relay          *usecase.RelayOrchestrator
	allowedOrigins []string
	metrics        *metrics.Metrics
	logger         logger.Logger
}

// NewServer creates a new API server
func NewServer(
	session *usecase.Session,
	composer *usecase.Composer,
	relay *usecase.RelayOrchestrator,
	allowedOrigins []string,
	m *metrics.Metrics,
	logger logger.Logger,
) *Server {
	return &Server{
		session:        session,
		composer:       composer,
		relay:          relay,
		allowedOrigins: allowedOrigins,
		metrics:        m,
		logger:         logger,
	}
}

// Register mounts all API routes on the mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/v1/departments", s.handleDepartments)
	mux.HandleFunc("/api/v1/contacts", s.handleContacts)
	mux.HandleFunc("/api/v1/contacts/resolve", s.handleResolve)
	mux.HandleFunc("/api/v1/compose", s.handleCompose)
	mux.HandleFunc("/api/v1/relay", s.handleRelay)
	mux.HandleFunc("/api/v1/relay/status", s.handleRelayStatus)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}
