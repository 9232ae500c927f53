package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"localconnect/backend"
	"localconnect/orders"
	"localconnect/validators"
)

// BusinessProfileHandler serves the business's own profile. PUT forwards the
// multipart update (name, about, address, category, tags, location, image)
// and returns the backend's refreshed copy.
func BusinessProfileHandler(bc *backend.Client, getSession SessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, upstream := getSession(r)
		switch r.Method {
		case http.MethodGet:
			biz, err := bc.Business(r.Context(), upstream, claims.Email)
			if err != nil {
				writeBackendError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"business": biz})
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
			biz, err := bc.UpdateBusinessProfile(r.Context(), upstream, fields, upload)
			if err != nil {
				writeBackendError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"business": biz})
		default:
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

// validateProductForm checks the shared add/update product fields.
func validateProductForm(fields map[string]string) error {
	if err := validators.ValidateString("name", fields["name"], 1, 100); err != nil {
		return err
	}
	if raw := fields["price"]; raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("price must be a number")
		}
		if err := validators.ValidatePrice(price); err != nil {
			return err
		}
	}
	return nil
}

// AddProductHandler forwards the multipart product form and responds with
// the business's refreshed product list, mirroring the
// mutate-then-re-fetch flow of the dashboard.
func AddProductHandler(bc *backend.Client, getSession SessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		claims, upstream := getSession(r)
		fields, upload, err := readMultipart(r, "productImage")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}
		if err := validateProductForm(fields); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if !cleanTagsField(fields) {
			writeError(w, http.StatusBadRequest, "tags must be a JSON string array")
			return
		}
		if err := bc.AddProduct(r.Context(), upstream, fields, upload); err != nil {
			writeBackendError(w, err)
			return
		}
		products, err := bc.ProductsByBusiness(r.Context(), claims.Email)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"products": products})
	}
}

// UpdateProductHandler serves PUT /business/products/{id} and
// DeleteProductHandler DELETE /business/products/{id}; both respond with the
// refreshed product list.
func UpdateProductHandler(bc *backend.Client, getSession SessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		claims, upstream := getSession(r)
		productID := lastPathSegment(r)
		if productID == "" {
			writeError(w, http.StatusBadRequest, "missing product id")
			return
		}
		fields, upload, err := readMultipart(r, "productImage")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}
		if err := validateProductForm(fields); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if !cleanTagsField(fields) {
			writeError(w, http.StatusBadRequest, "tags must be a JSON string array")
			return
		}
		if err := bc.UpdateProduct(r.Context(), upstream, productID, fields, upload); err != nil {
			writeBackendError(w, err)
			return
		}
		products, err := bc.ProductsByBusiness(r.Context(), claims.Email)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"products": products})
	}
}

func DeleteProductHandler(bc *backend.Client, getSession SessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		claims, upstream := getSession(r)
		productID := lastPathSegment(r)
		if productID == "" {
			writeError(w, http.StatusBadRequest, "missing product id")
			return
		}
		if err := bc.DeleteProduct(r.Context(), upstream, productID); err != nil {
			writeBackendError(w, err)
			return
		}
		products, err := bc.ProductsByBusiness(r.Context(), claims.Email)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"products": products})
	}
}

func BusinessOrdersHandler(bc *backend.Client, getSession SessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		_, upstream := getSession(r)
		list, err := bc.FetchOrders(r.Context(), upstream)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"orders": list})
	}
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatusHandler appends one label to an order's status history
// and resubmits the whole accumulated list, then returns the refreshed
// orders.
func UpdateOrderStatusHandler(bc *backend.Client, getSession SessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		_, upstream := getSession(r)
		orderID := orderIDFromStatusPath(r)
		if orderID == "" {
			writeError(w, http.StatusBadRequest, "missing order id")
			return
		}
		var req statusUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		list, err := bc.FetchOrders(r.Context(), upstream)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		var history []string
		found := false
		for _, o := range list {
			if o.OrderID == orderID {
				history = o.Status
				found = true
				break
			}
		}
		if !found {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		updated, err := orders.AppendStatus(history, req.Status)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := bc.UpdateOrderStatus(r.Context(), upstream, orderID, updated); err != nil {
			writeBackendError(w, err)
			return
		}
		refreshed, err := bc.FetchOrders(r.Context(), upstream)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"orders": refreshed})
	}
}

func lastPathSegment(r *http.Request) string {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	return parts[len(parts)-1]
}

// orderIDFromStatusPath extracts {id} from /business/orders/{id}/status.
func orderIDFromStatusPath(r *http.Request) string {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 2 || parts[len(parts)-1] != "status" {
		return ""
	}
	return parts[len(parts)-2]
}
