package handlers

import (
	"encoding/json"
	"net/http"

	"localconnect/backend"
	"localconnect/models"
	"localconnect/validators"
)

func WalletHandler(bc *backend.Client, getSession SessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		claims, upstream := getSession(r)
		wallet, err := bc.Wallet(r.Context(), upstream, claims.Email)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"wallet": wallet})
	}
}

// WithdrawHandler validates the withdrawal details, forwards the request,
// and returns the re-fetched wallet on success.
func WithdrawHandler(bc *backend.Client, getSession SessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		claims, upstream := getSession(r)
		var req models.WithdrawRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		// The session, not the request body, decides whose wallet this is.
		req.BusinessEmail = claims.Email
		if err := validators.ValidateWithdrawal(&req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := bc.Withdraw(r.Context(), upstream, req); err != nil {
			writeBackendError(w, err)
			return
		}
		wallet, err := bc.Wallet(r.Context(), upstream, claims.Email)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "withdrawal initiated",
			"wallet":  wallet,
		})
	}
}
