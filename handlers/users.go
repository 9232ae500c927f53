package handlers

import (
	"net/http"

	"localconnect/backend"
	"localconnect/validators"
)

// ProfileHandler serves the caller's own profile: GET returns it, PUT
// forwards the multipart update (name, address, optional image) and returns
// the backend's refreshed copy.
func ProfileHandler(bc *backend.Client, getSession SessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, upstream := getSession(r)
		switch r.Method {
		case http.MethodGet:
			user, err := bc.UserProfile(r.Context(), upstream)
			if err != nil {
				writeBackendError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"user": user})
		case http.MethodPut:
			fields, upload, err := readMultipart(r, "profileImage")
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid multipart form")
				return
			}
			if err := validators.ValidateString("name", fields["name"], 1, 100); err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			user, err := bc.UpdateUserProfile(r.Context(), upstream, fields, upload)
			if err != nil {
				writeBackendError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"user": user})
		default:
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}
