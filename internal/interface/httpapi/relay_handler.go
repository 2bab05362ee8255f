package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"contactdesk-service/internal/domain/entity"
	"contactdesk-service/internal/usecase"
)

func relayOK() map[string]interface{} {
	return map[string]interface{}{"ok": true}
}

func relayErr(message string) map[string]interface{} {
	return map[string]interface{}{"ok": false, "error": message}
}

// handleRelay implements the relay gateway endpoint: JSON-only POST,
// CORS allow-list, size limits, then a single best-effort dispatch.
func (s *Server) handleRelay(w http.ResponseWriter, r *http.Request) {
	s.corsHeaders(w, r)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		s.writeJSON(w, http.StatusNotFound, relayErr("Not Found"))
		return
	}

	ct := strings.ToLower(r.Header.Get("Content-Type"))
	if !strings.Contains(ct, "application/json") {
		s.writeJSON(w, http.StatusBadRequest, relayErr("Content-Type must be application/json"))
		return
	}

	var req entity.RelayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, relayErr("invalid JSON body"))
		return
	}

	if len(req.Text) > usecase.MaxTextLen || len(req.HTML) > usecase.MaxHTMLLen {
		s.writeJSON(w, http.StatusRequestEntityTooLarge, relayErr("Message too large"))
		return
	}

	_, err := s.relay.Dispatch(r.Context(), &req)
	if err == nil {
		s.writeJSON(w, http.StatusOK, relayOK())
		return
	}

	var validationErr *entity.ValidationError
	switch {
	case errors.Is(err, entity.ErrBlocked):
		// Honeypot and rate-limit hits share one generic answer.
		s.writeJSON(w, http.StatusBadRequest, relayErr("blocked"))
	case errors.As(err, &validationErr):
		s.writeJSON(w, http.StatusBadRequest, relayErr(validationErr.Error()))
	default:
		s.writeJSON(w, http.StatusBadGateway, relayErr(err.Error()))
	}
}

// handleRelayStatus reports the outcome of the most recent relay
// attempt.
func (s *Server) handleRelayStatus(w http.ResponseWriter, r *http.Request) {
	s.corsHeaders(w, r)
	if r.Method != http.MethodGet {
		s.writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	status := s.relay.LastStatus()
	if status == nil {
		s.writeJSON(w, http.StatusOK, map[string]interface{}{"status": nil})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"status": status})
}
