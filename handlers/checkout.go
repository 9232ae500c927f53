package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"localconnect/checkout"
	"localconnect/metrics"
)

// CheckoutHandler is invoked from the payment widget's callback. Only a
// reported-successful payment reaches order creation; anything else leaves
// the cart untouched.
func CheckoutHandler(flow *checkout.Flow, getSession SessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		owner := cartOwner(r, getSession)
		var req checkout.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		result, err := flow.Checkout(r.Context(), owner, req)
		switch {
		case errors.Is(err, checkout.ErrPaymentDeclined):
			metrics.CheckoutsTotal.WithLabelValues(metrics.OutcomePaymentDeclined).Inc()
			writeError(w, http.StatusPaymentRequired, err.Error())
		case errors.Is(err, checkout.ErrEmptyCart):
			metrics.CheckoutsTotal.WithLabelValues(metrics.OutcomeEmptyCart).Inc()
			writeError(w, http.StatusBadRequest, err.Error())
		case err != nil:
			metrics.CheckoutsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
			writeBackendError(w, err)
		default:
			metrics.CheckoutsTotal.WithLabelValues(metrics.OutcomePlaced).Inc()
			writeJSON(w, http.StatusCreated, result)
		}
	}
}
