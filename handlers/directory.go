package handlers

import (
	"encoding/json"
	"net/http"

	"localconnect/directory"
	"localconnect/validators"
)

type nearbyRequest struct {
	Location []float64 `json:"location"`
	Q        string    `json:"q,omitempty"`
}

type categoryRequest struct {
	Category string `json:"category"`
	Q        string `json:"q,omitempty"`
}

// NearbyHandler looks up businesses around the caller's coordinate. The
// coordinate comes from the client (the browser's one-shot geolocation probe)
// and is forwarded unchanged.
func NearbyHandler(svc *directory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		var req nearbyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if err := validators.ValidateLocation(req.Location); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		businesses, err := svc.Nearby(r.Context(), req.Location, req.Q)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"businesses": businesses})
	}
}

func ByCategoryHandler(svc *directory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.Category == "" {
			writeError(w, http.StatusBadRequest, "category cannot be empty")
			return
		}
		businesses, err := svc.ByCategory(r.Context(), req.Category, req.Q)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"businesses": businesses})
	}
}
