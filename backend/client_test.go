package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localconnect/models"
)

func newTestClient(baseURL string) *Client {
	return New(baseURL, 5*time.Second, nil)
}

func TestDoJSON_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"orders": []models.Order{}})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.FetchOrders(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestDoJSON_PublicCallsOmitAuthorization(t *testing.T) {
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		json.NewEncoder(w).Encode(map[string]any{"products": []models.Product{}})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).AllProducts(context.Background())
	require.NoError(t, err)
	assert.False(t, hasAuth)
}

func TestRejection_SurfacesBackendMessageVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "email already registered"})
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).UserSignup(context.Background(), models.SignupRequest{Email: "a@x.com"})
	require.Error(t, err)
	assert.True(t, IsRejected(err))
	assert.Equal(t, http.StatusConflict, StatusOf(err))
	assert.Equal(t, "email already registered", err.Error())
}

func TestRejection_FallsBackToRawBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not today", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).CartClear(context.Background(), "tok")
	require.Error(t, err)
	assert.True(t, IsRejected(err))
	assert.Equal(t, "not today", err.Error())
}

func TestTransportError_WhenBackendUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // unreachable on purpose

	_, err := newTestClient(srv.URL).AllProducts(context.Background())
	require.Error(t, err)
	assert.False(t, IsRejected(err))
	assert.Equal(t, 0, StatusOf(err))
}

func TestDoMultipart_ForwardsFieldsAndFile(t *testing.T) {
	var gotName, gotFilename string
	var gotContent []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotName = r.FormValue("name")
		file, header, err := r.FormFile("productImage")
		require.NoError(t, err)
		defer file.Close()
		gotFilename = header.Filename
		gotContent, err = io.ReadAll(file)
		require.NoError(t, err)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).AddProduct(context.Background(), "tok",
		map[string]string{"name": "Sourdough Loaf"},
		&Upload{Field: "productImage", Filename: "loaf.jpg", Content: []byte("jpegbytes")})
	require.NoError(t, err)
	assert.Equal(t, "Sourdough Loaf", gotName)
	assert.Equal(t, "loaf.jpg", gotFilename)
	assert.Equal(t, []byte("jpegbytes"), gotContent)
}

func TestUpdateOrderStatus_SendsWholeHistory(t *testing.T) {
	var got map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/order/update-details/o1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).UpdateOrderStatus(context.Background(), "tok", "o1", []string{"created", "shipped"})
	require.NoError(t, err)
	assert.Equal(t, []string{"created", "shipped"}, got["status"])
}
