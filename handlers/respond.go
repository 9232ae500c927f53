package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"localconnect/backend"
	"localconnect/metrics"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeBackendError surfaces a backend failure to the caller: a rejection
// keeps the backend's status and message verbatim, a transport failure maps
// to 502.
func writeBackendError(w http.ResponseWriter, err error) {
	var be *backend.Error
	if errors.As(err, &be) {
		metrics.BackendErrorsTotal.WithLabelValues(be.Kind).Inc()
		if be.Kind == backend.KindRejected && be.Status != 0 {
			writeError(w, be.Status, be.Message)
			return
		}
		writeError(w, http.StatusBadGateway, be.Message)
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
