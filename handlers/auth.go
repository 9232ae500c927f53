package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"localconnect/backend"
	"localconnect/models"
	"localconnect/session"
	"localconnect/validators"
)

// SessionFunc resolves the authenticated caller from the request context:
// the gateway claims plus the upstream bearer token.
type SessionFunc func(*http.Request) (*models.Claims, string)

type registerRequest struct {
	models.SignupRequest
	ConfirmPassword string `json:"confirm_password"`
}

func RegisterHandler(bc *backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if err := validators.ValidateString("name", req.Name, 1, 100); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := validators.ValidateEmail(req.Email); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := validators.ValidatePassword(req.Password); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Password != req.ConfirmPassword {
			writeError(w, http.StatusBadRequest, "passwords do not match")
			return
		}
		if err := bc.UserSignup(r.Context(), req.SignupRequest); err != nil {
			writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"message": "account created"})
	}
}

// BusinessRegisterHandler forwards the multipart signup form (profile image,
// category, tags, map-selected location) to the backend.
func BusinessRegisterHandler(bc *backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		fields, upload, err := readMultipart(r, "profileImage")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}
		if err := validators.ValidateEmail(fields["email"]); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := validators.ValidateString("name", fields["name"], 1, 100); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := validators.ValidatePassword(fields["password"]); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if raw := fields["location"]; raw != "" {
			var location []float64
			if err := json.Unmarshal([]byte(raw), &location); err != nil {
				writeError(w, http.StatusBadRequest, "location must be a JSON [longitude, latitude] pair")
				return
			}
			if err := validators.ValidateLocation(location); err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
		}
		if !cleanTagsField(fields) {
			writeError(w, http.StatusBadRequest, "tags must be a JSON string array")
			return
		}
		if err := bc.BusinessSignup(r.Context(), fields, upload); err != nil {
			writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"message": "business account created"})
	}
}

func LoginHandler(bc *backend.Client, sessions *session.Manager) http.HandlerFunc {
	return loginHandler(sessions, models.RoleUser, bc.UserLogin)
}

func BusinessLoginHandler(bc *backend.Client, sessions *session.Manager) http.HandlerFunc {
	return loginHandler(sessions, models.RoleBusiness, bc.BusinessLogin)
}

func loginHandler(sessions *session.Manager, role string, login func(context.Context, string, string) (string, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		var creds models.Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		upstreamToken, err := login(r.Context(), creds.Email, creds.Password)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		token, err := sessions.Issue(r.Context(), creds.Email, role, upstreamToken)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "could not create session")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"token": token,
			"email": creds.Email,
			"role":  role,
		})
	}
}

func LogoutHandler(sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if err := sessions.Revoke(r.Context(), strings.TrimPrefix(authHeader, "Bearer ")); err != nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
