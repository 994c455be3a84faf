package handler

import "net/http"

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetOpenAPI handles GET /openapi.yaml, serving the embedded API document.
// Serving it from the binary means the spec and the running code are always
// in sync.
func (s *Server) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	if len(s.openapi) == 0 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.openapi)
}
