package handlers

import (
	"net/http"

	"localconnect/backend"
	"localconnect/orders"
)

func OrdersHandler(bc *backend.Client, getSession SessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		claims, upstream := getSession(r)
		list, err := bc.OrdersForUser(r.Context(), upstream, claims.Email)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"orders": list})
	}
}

// GroupedOrdersHandler returns the buyer's orders in display form: grouped
// by order, then business, with product tallies resolved against the full
// catalog.
func GroupedOrdersHandler(bc *backend.Client, getSession SessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		claims, upstream := getSession(r)
		list, err := bc.OrdersForUser(r.Context(), upstream, claims.Email)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		catalog, err := bc.AllProducts(r.Context())
		if err != nil {
			writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"orders": orders.GroupForDisplay(list, catalog)})
	}
}
