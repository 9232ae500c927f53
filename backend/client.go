package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"localconnect/models"
)

// Client talks to the commerce backend. Authenticated calls take the caller's
// upstream bearer token; public catalog and directory calls omit it.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Upload is one file forwarded inside a multipart request.
type Upload struct {
	Field    string
	Filename string
	Content  []byte
}

// Response envelopes as the backend returns them.
type (
	tokenResponse      struct{ Token string `json:"token"` }
	userResponse       struct{ User models.User `json:"user"` }
	businessResponse   struct{ Business models.Business `json:"business"` }
	businessesResponse struct{ Businesses []models.Business `json:"businesses"` }
	productsResponse   struct{ Products []models.Product `json:"products"` }
	ordersResponse     struct{ Orders []models.Order `json:"orders"` }
	walletResponse     struct{ Wallet models.Wallet `json:"wallet"` }
	cartResponse       struct{ Cart []models.Product `json:"cart"` }
	errorResponse      struct{ Error string `json:"error"` }
)

func (c *Client) do(ctx context.Context, method, path, token string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return transportError(err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed", "method", method, "path", path, "error", err)
		return transportError(err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return rejectedError(resp.StatusCode, extractMessage(data, resp.StatusCode))
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return transportError(fmt.Errorf("decoding backend response: %w", err))
		}
	}
	return nil
}

// extractMessage pulls the backend's error string out of the response body,
// falling back to the raw body and then the status text.
func extractMessage(data []byte, status int) string {
	var er errorResponse
	if err := json.Unmarshal(data, &er); err == nil && er.Error != "" {
		return er.Error
	}
	if len(data) > 0 {
		return string(bytes.TrimSpace(data))
	}
	return http.StatusText(status)
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, body, out any) error {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return transportError(err)
		}
		rd = bytes.NewReader(data)
	}
	return c.do(ctx, method, path, token, rd, "application/json", out)
}

func (c *Client) doMultipart(ctx context.Context, method, path, token string, fields map[string]string, file *Upload, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return transportError(err)
		}
	}
	if file != nil {
		fw, err := mw.CreateFormFile(file.Field, file.Filename)
		if err != nil {
			return transportError(err)
		}
		if _, err := fw.Write(file.Content); err != nil {
			return transportError(err)
		}
	}
	if err := mw.Close(); err != nil {
		return transportError(err)
	}
	return c.do(ctx, method, path, token, &buf, mw.FormDataContentType(), out)
}

// --- users ---

func (c *Client) UserLogin(ctx context.Context, email, password string) (string, error) {
	var tr tokenResponse
	err := c.doJSON(ctx, http.MethodPost, "/user/login", "", models.Credentials{Email: email, Password: password}, &tr)
	return tr.Token, err
}

func (c *Client) UserSignup(ctx context.Context, req models.SignupRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/user/signup", "", req, nil)
}

func (c *Client) UserProfile(ctx context.Context, token string) (models.User, error) {
	var ur userResponse
	err := c.doJSON(ctx, http.MethodGet, "/user/profile", token, nil, &ur)
	return ur.User, err
}

func (c *Client) UpdateUserProfile(ctx context.Context, token string, fields map[string]string, image *Upload) (models.User, error) {
	var ur userResponse
	err := c.doMultipart(ctx, http.MethodPut, "/user/update-profile", token, fields, image, &ur)
	return ur.User, err
}

// --- businesses ---

func (c *Client) BusinessLogin(ctx context.Context, email, password string) (string, error) {
	var tr tokenResponse
	err := c.doJSON(ctx, http.MethodPost, "/business/login", "", models.Credentials{Email: email, Password: password}, &tr)
	return tr.Token, err
}

func (c *Client) BusinessSignup(ctx context.Context, fields map[string]string, image *Upload) error {
	return c.doMultipart(ctx, http.MethodPost, "/business/signup", "", fields, image, nil)
}

func (c *Client) Business(ctx context.Context, token, email string) (models.Business, error) {
	var br businessResponse
	err := c.doJSON(ctx, http.MethodGet, "/business/"+url.PathEscape(email), token, nil, &br)
	return br.Business, err
}

func (c *Client) UpdateBusinessProfile(ctx context.Context, token string, fields map[string]string, image *Upload) (models.Business, error) {
	var br businessResponse
	err := c.doMultipart(ctx, http.MethodPut, "/business/update-profile", token, fields, image, &br)
	return br.Business, err
}

// FetchNearby forwards the caller's coordinate unchanged; proximity logic is
// backend-owned.
func (c *Client) FetchNearby(ctx context.Context, location []float64) ([]models.Business, error) {
	var br businessesResponse
	err := c.doJSON(ctx, http.MethodPost, "/business/fetch-nearby", "", map[string][]float64{"location": location}, &br)
	return br.Businesses, err
}

func (c *Client) FetchByCategory(ctx context.Context, category string) ([]models.Business, error) {
	var br businessesResponse
	err := c.doJSON(ctx, http.MethodPost, "/business/fetch-by-category", "", map[string]string{"category": category}, &br)
	return br.Businesses, err
}

func (c *Client) Wallet(ctx context.Context, token, email string) (models.Wallet, error) {
	var wr walletResponse
	err := c.doJSON(ctx, http.MethodGet, "/business/wallet/"+url.PathEscape(email), token, nil, &wr)
	return wr.Wallet, err
}

func (c *Client) Withdraw(ctx context.Context, token string, req models.WithdrawRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/business/wallet/withdraw", token, req, nil)
}

// --- products ---

func (c *Client) ProductsByBusiness(ctx context.Context, email string) ([]models.Product, error) {
	var pr productsResponse
	err := c.doJSON(ctx, http.MethodGet, "/product/by-business/"+url.PathEscape(email), "", nil, &pr)
	return pr.Products, err
}

func (c *Client) AllProducts(ctx context.Context) ([]models.Product, error) {
	var pr productsResponse
	err := c.doJSON(ctx, http.MethodGet, "/product/all", "", nil, &pr)
	return pr.Products, err
}

func (c *Client) SearchProducts(ctx context.Context, tags []string) ([]models.Product, error) {
	var pr productsResponse
	err := c.doJSON(ctx, http.MethodPost, "/product/products-search", "", map[string][]string{"tags": tags}, &pr)
	return pr.Products, err
}

func (c *Client) AddProduct(ctx context.Context, token string, fields map[string]string, image *Upload) error {
	return c.doMultipart(ctx, http.MethodPost, "/product/add-product", token, fields, image, nil)
}

func (c *Client) UpdateProduct(ctx context.Context, token, productID string, fields map[string]string, image *Upload) error {
	return c.doMultipart(ctx, http.MethodPut, "/product/update/"+url.PathEscape(productID), token, fields, image, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, token, productID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/product/delete/"+url.PathEscape(productID), token, nil, nil)
}

// --- orders ---

func (c *Client) OrdersForUser(ctx context.Context, token, email string) ([]models.Order, error) {
	var or ordersResponse
	err := c.doJSON(ctx, http.MethodGet, "/order/user/"+url.PathEscape(email), token, nil, &or)
	return or.Orders, err
}

// FetchOrders lists the orders addressed to the authenticated business.
func (c *Client) FetchOrders(ctx context.Context, token string) ([]models.Order, error) {
	var or ordersResponse
	err := c.doJSON(ctx, http.MethodGet, "/order/fetch-orders", token, nil, &or)
	return or.Orders, err
}

func (c *Client) CreateOrder(ctx context.Context, token string, order models.Order) error {
	return c.doJSON(ctx, http.MethodPost, "/order/create", token, order, nil)
}

// UpdateOrderStatus resubmits the entire accumulated status history, never a
// delta.
func (c *Client) UpdateOrderStatus(ctx context.Context, token, orderID string, status []string) error {
	return c.doJSON(ctx, http.MethodPut, "/order/update-details/"+url.PathEscape(orderID),
		token, map[string][]string{"status": status}, nil)
}

// --- backend-owned cart ---

func (c *Client) Cart(ctx context.Context, token string) ([]models.Product, error) {
	var cr cartResponse
	err := c.doJSON(ctx, http.MethodGet, "/cart", token, nil, &cr)
	return cr.Cart, err
}

func (c *Client) CartAdd(ctx context.Context, token string, product models.Product) error {
	return c.doJSON(ctx, http.MethodPost, "/cart/add", token, product, nil)
}

func (c *Client) CartRemove(ctx context.Context, token, productID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/cart/remove/"+url.PathEscape(productID), token, nil, nil)
}

func (c *Client) CartClear(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodDelete, "/cart/clear", token, nil, nil)
}
