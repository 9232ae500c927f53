package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"localconnect/backend"
	"localconnect/validators"
)

func AllProductsHandler(bc *backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		products, err := bc.AllProducts(r.Context())
		if err != nil {
			writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"products": products})
	}
}

// ProductsByBusinessHandler serves GET /products/by-business/{email}.
func ProductsByBusinessHandler(bc *backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		email := parts[len(parts)-1]
		if err := validators.ValidateEmail(email); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		products, err := bc.ProductsByBusiness(r.Context(), email)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"products": products})
	}
}

type searchRequest struct {
	Tags []string `json:"tags"`
}

func SearchProductsHandler(bc *backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		tags := validators.CleanTags(req.Tags)
		if len(tags) == 0 {
			writeError(w, http.StatusBadRequest, "at least one tag is required")
			return
		}
		products, err := bc.SearchProducts(r.Context(), tags)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"products": products})
	}
}
