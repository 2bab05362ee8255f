package httpapi

import (
	"encoding/json"
	"net/http"

	"contactdesk-service/internal/domain/entity"
	"contactdesk-service/internal/usecase"
	"contactdesk-service/pkg/utils"
	"contactdesk-service/templates"
)

// handleDepartments lists the fixed department set.
func (s *Server) handleDepartments(w http.ResponseWriter, r *http.Request) {
	s.corsHeaders(w, r)
	if r.Method != http.MethodGet {
		s.writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"departments": entity.Departments(),
	})
}

// handleContacts loads a department and returns its listing, filtered
// when a query is supplied. The session auto-selects the first result.
func (s *Server) handleContacts(w http.ResponseWriter, r *http.Request) {
	s.corsHeaders(w, r)
	if r.Method != http.MethodGet {
		s.writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	dept := r.URL.Query().Get("department")
	if dept == "" {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "department is required"})
		return
	}

	snap := s.session.SelectDepartment(r.Context(), dept)
	if q := r.URL.Query().Get("q"); q != "" && snap.LoadError == "" {
		snap = s.session.Search(q)
	}

	s.metrics.LookupsServed.Inc()
	if snap.LoadError != "" {
		s.writeJSON(w, http.StatusBadGateway, snap)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

// handleResolve resolves one selection key within a department.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	s.corsHeaders(w, r)
	if r.Method != http.MethodGet {
		s.writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	dept := r.URL.Query().Get("department")
	key := r.URL.Query().Get("key")
	if dept == "" || key == "" {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "department and key are required"})
		return
	}

	snap := s.session.SelectDepartment(r.Context(), dept)
	if snap.LoadError != "" {
		s.writeJSON(w, http.StatusBadGateway, snap)
		return
	}

	snap = s.session.Pick(key)
	s.metrics.LookupsServed.Inc()
	if snap.Selected == nil {
		s.writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"error":    entity.ErrNoSelection.Error(),
			"snapshot": snap,
		})
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

type composeRequest struct {
	Department string                  `json:"department"`
	Key        string                  `json:"key"`
	Passenger  usecase.PassengerFields `json:"passenger"`
}

type composeResponse struct {
	Text        string   `json:"text"`
	Subject     string   `json:"subject,omitempty"`
	HTML        string   `json:"html,omitempty"`
	ClickToChat string   `json:"clickToChat,omitempty"`
	Params      []string `json:"params,omitempty"`
}

// handleCompose renders the canonical message for a selection plus
// passenger fields, together with the email subject, HTML body and the
// wa.me fallback link.
func (s *Server) handleCompose(w http.ResponseWriter, r *http.Request) {
	s.corsHeaders(w, r)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		s.writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req composeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	snap := s.session.SelectDepartment(r.Context(), req.Department)
	if snap.LoadError != "" {
		s.writeJSON(w, http.StatusBadGateway, snap)
		return
	}
	if req.Key != "" {
		snap = s.session.Pick(req.Key)
	}

	rec := snap.Selected
	text := s.composer.Compose(rec, req.Passenger)

	resp := composeResponse{Text: text}
	if rec != nil {
		resp.Subject = templates.EmailSubject(rec.Department, rec.City)
		resp.HTML = templates.TextToHTML(text)

		// Without a passenger number the link targets the department
		// phone, which is handy for manual testing.
		waPhone := req.Passenger.Phone
		if waPhone == "" && len(rec.Phones) > 0 {
			waPhone = rec.Phones[0]
		}
		resp.ClickToChat = utils.ClickToChatURL(waPhone, text)

		var email, phone string
		if len(rec.Emails) > 0 {
			email = rec.Emails[0]
		}
		if len(rec.Phones) > 0 {
			phone = rec.Phones[0]
		}
		// Ready-to-relay WhatsApp template vector for this selection.
		resp.Params = templates.TemplateParams(
			req.Passenger.Name, rec.Department, rec.City, email, phone, req.Passenger.Note)
	}

	s.writeJSON(w, http.StatusOK, resp)
}
