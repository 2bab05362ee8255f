package httpapi

import "net/http"

// corsHeaders applies the gateway CORS policy: an empty allow-list
// reflects any origin, a configured one reflects only listed origins
// and answers "null" to the rest.
func (s *Server) corsHeaders(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")

	allow := len(s.allowedOrigins) == 0
	for _, o := range s.allowedOrigins {
		if o == origin {
			allow = true
			break
		}
	}

	value := origin
	if !allow {
		value = "null"
	}
	w.Header().Set("Access-Control-Allow-Origin", value)
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Vary", "Origin")
}
