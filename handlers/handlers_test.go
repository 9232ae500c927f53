package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localconnect/backend"
	"localconnect/cart"
	"localconnect/checkout"
	"localconnect/models"
)

// upstream is a stub commerce backend covering the endpoints the handler
// tests touch.
type upstream struct {
	cartItems     []models.Product
	orders        []models.Order
	created       []models.Order
	statusUpdates map[string][]string
	withdrawals   int
	signups       int
}

func (u *upstream) server(t *testing.T) *httptest.Server {
	t.Helper()
	u.statusUpdates = make(map[string][]string)
	mux := http.NewServeMux()
	mux.HandleFunc("/cart", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"cart": u.cartItems})
	})
	mux.HandleFunc("/cart/add", func(w http.ResponseWriter, r *http.Request) {
		var p models.Product
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		u.cartItems = append(u.cartItems, p)
	})
	mux.HandleFunc("/cart/remove/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/cart/remove/")
		var kept []models.Product
		for _, p := range u.cartItems {
			if p.ProductID != id {
				kept = append(kept, p)
			}
		}
		u.cartItems = kept
	})
	mux.HandleFunc("/cart/clear", func(w http.ResponseWriter, r *http.Request) {
		u.cartItems = nil
	})
	mux.HandleFunc("/order/create", func(w http.ResponseWriter, r *http.Request) {
		var o models.Order
		require.NoError(t, json.NewDecoder(r.Body).Decode(&o))
		u.created = append(u.created, o)
		u.orders = append(u.orders, o)
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("/order/user/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"orders": u.orders})
	})
	mux.HandleFunc("/order/fetch-orders", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"orders": u.orders})
	})
	mux.HandleFunc("/order/update-details/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/order/update-details/")
		var body map[string][]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		u.statusUpdates[id] = body["status"]
		for i := range u.orders {
			if u.orders[i].OrderID == id {
				u.orders[i].Status = body["status"]
			}
		}
	})
	mux.HandleFunc("/business/wallet/withdraw", func(w http.ResponseWriter, r *http.Request) {
		u.withdrawals++
	})
	mux.HandleFunc("/business/wallet/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"wallet": models.Wallet{Amount: 1200}})
	})
	mux.HandleFunc("/user/signup", func(w http.ResponseWriter, r *http.Request) {
		u.signups++
		w.WriteHeader(http.StatusCreated)
	})
	return httptest.NewServer(mux)
}

func userSession(email string) SessionFunc {
	return func(*http.Request) (*models.Claims, string) {
		return &models.Claims{Email: email, Role: models.RoleUser, SessionID: "sid"}, "upstream-tok"
	}
}

func businessSession(email string) SessionFunc {
	return func(*http.Request) (*models.Claims, string) {
		return &models.Claims{Email: email, Role: models.RoleBusiness, SessionID: "sid"}, "upstream-tok"
	}
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func TestCartHandlers_AddThenRemoveRoundTrip(t *testing.T) {
	u := &upstream{}
	srv := u.server(t)
	defer srv.Close()

	bc := backend.New(srv.URL, 5*time.Second, nil)
	repo := cart.NewRemoteRepository(bc)
	sess := userSession("buyer@x.com")

	add := AddCartItemHandler(repo, sess)
	remove := RemoveCartItemHandler(repo, sess)

	product := models.Product{ProductID: "p1", BusinessOwned: "b1@x.com", Name: "Loaf", Price: 10}
	rec := httptest.NewRecorder()
	add(rec, httptest.NewRequest(http.MethodPost, "/cart/items", jsonBody(t, product)))
	require.Equal(t, http.StatusOK, rec.Code)

	var afterAdd cartView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &afterAdd))
	require.Len(t, afterAdd.Items, 1)
	assert.Equal(t, 10.0, afterAdd.Total)

	rec = httptest.NewRecorder()
	remove(rec, httptest.NewRequest(http.MethodDelete, "/cart/items/p1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var afterRemove cartView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &afterRemove))
	assert.Empty(t, afterRemove.Items)
	assert.Equal(t, 0.0, afterRemove.Total)
}

func TestAddCartItem_RejectsNegativePrice(t *testing.T) {
	u := &upstream{}
	srv := u.server(t)
	defer srv.Close()

	repo := cart.NewRemoteRepository(backend.New(srv.URL, 5*time.Second, nil))
	add := AddCartItemHandler(repo, userSession("buyer@x.com"))

	rec := httptest.NewRecorder()
	product := models.Product{ProductID: "p1", BusinessOwned: "b1@x.com", Name: "Loaf", Price: -5}
	add(rec, httptest.NewRequest(http.MethodPost, "/cart/items", jsonBody(t, product)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, u.cartItems, "nothing may reach the cart store")
}

func TestCheckoutHandler_DeclinedPaymentSkipsOrderCreation(t *testing.T) {
	u := &upstream{cartItems: []models.Product{{ProductID: "p1", BusinessOwned: "b1@x.com", Price: 100}}}
	srv := u.server(t)
	defer srv.Close()

	bc := backend.New(srv.URL, 5*time.Second, nil)
	flow := checkout.NewFlow(cart.NewRemoteRepository(bc), bc, nil)
	h := CheckoutHandler(flow, userSession("buyer@x.com"))

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/checkout", jsonBody(t, checkout.Request{PaymentStatus: "abandoned"})))
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	assert.Empty(t, u.created)
	assert.Len(t, u.cartItems, 1, "cart must stay as it was")
}

func TestCheckoutHandler_PlacesOrderAndClearsCart(t *testing.T) {
	u := &upstream{cartItems: []models.Product{
		{ProductID: "p1", BusinessOwned: "b1@x.com", Price: 1000},
		{ProductID: "p2", BusinessOwned: "b2@x.com", Price: 2000},
	}}
	srv := u.server(t)
	defer srv.Close()

	bc := backend.New(srv.URL, 5*time.Second, nil)
	flow := checkout.NewFlow(cart.NewRemoteRepository(bc), bc, nil)
	h := CheckoutHandler(flow, userSession("buyer@x.com"))

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/checkout", jsonBody(t, checkout.Request{PaymentStatus: checkout.PaymentSuccess})))
	require.Equal(t, http.StatusCreated, rec.Code)

	var result checkout.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.NotEmpty(t, result.OrderID)
	assert.Equal(t, 3000.0, result.Total)

	require.Len(t, u.created, 1)
	assert.Equal(t, []models.OrderLine{
		{BusinessOwned: "b1@x.com", ProductID: "p1"},
		{BusinessOwned: "b2@x.com", ProductID: "p2"},
	}, u.created[0].Lines)
	assert.Empty(t, u.cartItems, "cart is cleared after a placed order")
}

func TestUpdateOrderStatus_ResubmitsWholeHistory(t *testing.T) {
	u := &upstream{orders: []models.Order{{OrderID: "o1", Status: []string{"created"}}}}
	srv := u.server(t)
	defer srv.Close()

	bc := backend.New(srv.URL, 5*time.Second, nil)
	h := UpdateOrderStatusHandler(bc, businessSession("biz@x.com"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/business/orders/o1/status", jsonBody(t, map[string]string{"status": "shipped"}))
	h(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"created", "shipped"}, u.statusUpdates["o1"])
}

func TestUpdateOrderStatus_RejectsEmptyStatus(t *testing.T) {
	u := &upstream{orders: []models.Order{{OrderID: "o1", Status: []string{"created"}}}}
	srv := u.server(t)
	defer srv.Close()

	bc := backend.New(srv.URL, 5*time.Second, nil)
	h := UpdateOrderStatusHandler(bc, businessSession("biz@x.com"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/business/orders/o1/status", jsonBody(t, map[string]string{"status": "   "}))
	h(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, u.statusUpdates)
}

func TestWithdrawHandler_ValidatesBeforeForwarding(t *testing.T) {
	u := &upstream{}
	srv := u.server(t)
	defer srv.Close()

	bc := backend.New(srv.URL, 5*time.Second, nil)
	h := WithdrawHandler(bc, businessSession("biz@x.com"))

	rec := httptest.NewRecorder()
	bad := models.WithdrawRequest{Amount: 100, AccountNumber: "123", BankCode: "058"}
	h(rec, httptest.NewRequest(http.MethodPost, "/business/wallet/withdraw", jsonBody(t, bad)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, u.withdrawals)

	rec = httptest.NewRecorder()
	good := models.WithdrawRequest{Amount: 100, AccountNumber: "0123456789", BankCode: "058"}
	h(rec, httptest.NewRequest(http.MethodPost, "/business/wallet/withdraw", jsonBody(t, good)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, u.withdrawals)
	assert.Contains(t, rec.Body.String(), "wallet")
}

func TestRegisterHandler_PasswordMismatchNeverReachesBackend(t *testing.T) {
	u := &upstream{}
	srv := u.server(t)
	defer srv.Close()

	h := RegisterHandler(backend.New(srv.URL, 5*time.Second, nil))
	rec := httptest.NewRecorder()
	body := map[string]string{
		"name": "Ada", "email": "ada@x.com",
		"password": "secret1", "confirm_password": "secret2",
	}
	h(rec, httptest.NewRequest(http.MethodPost, "/register", jsonBody(t, body)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, u.signups)
}
