package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"localconnect/cart"
	"localconnect/checkout"
	"localconnect/models"
	"localconnect/validators"
)

func cartOwner(r *http.Request, getSession SessionFunc) cart.Owner {
	claims, upstream := getSession(r)
	return cart.Owner{Email: claims.Email, Token: upstream}
}

type cartView struct {
	Items []models.Product `json:"items"`
	Total float64          `json:"total"`
}

func viewCart(items []models.Product) cartView {
	if items == nil {
		items = []models.Product{}
	}
	return cartView{Items: items, Total: checkout.Total(items)}
}

// CartHandler serves the cart itself: GET returns the snapshot lines with
// their running total, DELETE empties it.
func CartHandler(repo cart.Repository, getSession SessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner := cartOwner(r, getSession)
		switch r.Method {
		case http.MethodGet:
			items, err := repo.Get(r.Context(), owner)
			if err != nil {
				writeBackendError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, viewCart(items))
		case http.MethodDelete:
			if err := repo.Clear(r.Context(), owner); err != nil {
				writeBackendError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

// AddCartItemHandler appends a full product snapshot to the cart. The same
// product can be added any number of times; each add is its own entry.
func AddCartItemHandler(repo cart.Repository, getSession SessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		owner := cartOwner(r, getSession)
		var product models.Product
		if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if err := validators.ValidateProduct(&product); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := repo.Add(r.Context(), owner, product); err != nil {
			writeBackendError(w, err)
			return
		}
		items, err := repo.Get(r.Context(), owner)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, viewCart(items))
	}
}

// RemoveCartItemHandler drops every cart entry matching the product id in
// the path.
func RemoveCartItemHandler(repo cart.Repository, getSession SessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		owner := cartOwner(r, getSession)
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		productID := parts[len(parts)-1]
		if productID == "" || productID == "items" {
			writeError(w, http.StatusBadRequest, "missing product id")
			return
		}
		if err := repo.Remove(r.Context(), owner, productID); err != nil {
			writeBackendError(w, err)
			return
		}
		items, err := repo.Get(r.Context(), owner)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, viewCart(items))
	}
}
