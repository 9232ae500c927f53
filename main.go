package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	_ "github.com/lib/pq"

	"localconnect/backend"
	"localconnect/cart"
	"localconnect/checkout"
	"localconnect/config"
	"localconnect/directory"
	"localconnect/handlers"
	"localconnect/metrics"
	"localconnect/models"
	"localconnect/session"
)

type ctxKey int

const (
	ctxClaims ctxKey = iota
	ctxUpstreamToken
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func main() {
	cfg := config.LoadConfig()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if len(cfg.JWTSecret) == 0 {
		logger.Error("JWT_SECRET is not set in environment")
		os.Exit(1)
	}

	bc := backend.New(cfg.BackendURL, cfg.RequestTimeout, logger)

	var store session.Store
	if cfg.RedisAddr != "" {
		redisStore, err := session.NewRedisStore(cfg.RedisAddr)
		if err != nil {
			logger.Error("could not connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisStore.Close()
		store = redisStore
		logger.Info("sessions stored in redis", "addr", cfg.RedisAddr)
	} else {
		store = session.NewMemoryStore()
		logger.Info("sessions stored in memory")
	}
	sessions := session.NewManager(cfg.JWTSecret, store)

	var cartRepo cart.Repository
	var db *sql.DB
	switch cfg.CartStore {
	case "postgres":
		var err error
		db, err = sql.Open("postgres", cfg.DBConnStr)
		if err != nil {
			logger.Error("could not open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Error("could not ping database", "error", err)
			os.Exit(1)
		}
		cartRepo = cart.NewPostgresRepository(db)
		logger.Info("cart stored in postgres")
	case "remote":
		cartRepo = cart.NewRemoteRepository(bc)
		logger.Info("cart delegated to backend")
	default:
		logger.Error("CART_STORE must be \"postgres\" or \"remote\"", "value", cfg.CartStore)
		os.Exit(1)
	}

	flow := checkout.NewFlow(cartRepo, bc, logger)
	dir := directory.NewService(bc)

	auth := func(role string, next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			claims, upstream, err := sessions.Verify(r.Context(), strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if claims.Role != role {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			ctx := context.WithValue(r.Context(), ctxClaims, claims)
			ctx = context.WithValue(ctx, ctxUpstreamToken, upstream)
			next(w, r.WithContext(ctx))
		}
	}

	getSession := func(r *http.Request) (*models.Claims, string) {
		return r.Context().Value(ctxClaims).(*models.Claims), r.Context().Value(ctxUpstreamToken).(string)
	}

	instrument := func(route string, next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next(sw, r)
			metrics.RequestsTotal.WithLabelValues(route, fmt.Sprintf("%dxx", sw.status/100)).Inc()
		}
	}

	handle := func(route string, h http.HandlerFunc) {
		http.HandleFunc(route, instrument(route, h))
	}

	http.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.Ping(); err != nil {
				http.Error(w, "db error", http.StatusInternalServerError)
				return
			}
		}
		w.Write([]byte("pong"))
	})
	http.Handle("/metrics", metrics.Handler())

	// Public surface.
	handle("/register", handlers.RegisterHandler(bc))
	handle("/login", handlers.LoginHandler(bc, sessions))
	handle("/logout", handlers.LogoutHandler(sessions))
	handle("/business/register", handlers.BusinessRegisterHandler(bc))
	handle("/business/login", handlers.BusinessLoginHandler(bc, sessions))
	handle("/businesses/nearby", handlers.NearbyHandler(dir))
	handle("/businesses/by-category", handlers.ByCategoryHandler(dir))
	handle("/products", handlers.AllProductsHandler(bc))
	handle("/products/by-business/", handlers.ProductsByBusinessHandler(bc))
	handle("/products/search", handlers.SearchProductsHandler(bc))

	// Buyer surface.
	handle("/profile", auth(models.RoleUser, handlers.ProfileHandler(bc, getSession)))
	handle("/cart", auth(models.RoleUser, handlers.CartHandler(cartRepo, getSession)))
	handle("/cart/items", auth(models.RoleUser, handlers.AddCartItemHandler(cartRepo, getSession)))
	handle("/cart/items/", auth(models.RoleUser, handlers.RemoveCartItemHandler(cartRepo, getSession)))
	handle("/checkout", auth(models.RoleUser, handlers.CheckoutHandler(flow, getSession)))
	handle("/orders", auth(models.RoleUser, handlers.OrdersHandler(bc, getSession)))
	handle("/orders/grouped", auth(models.RoleUser, handlers.GroupedOrdersHandler(bc, getSession)))

	// Business surface.
	handle("/business/profile", auth(models.RoleBusiness, handlers.BusinessProfileHandler(bc, getSession)))
	handle("/business/products", auth(models.RoleBusiness, handlers.AddProductHandler(bc, getSession)))
	updateProduct := handlers.UpdateProductHandler(bc, getSession)
	deleteProduct := handlers.DeleteProductHandler(bc, getSession)
	handle("/business/products/", auth(models.RoleBusiness, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			updateProduct(w, r)
		case http.MethodDelete:
			deleteProduct(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))
	handle("/business/orders", auth(models.RoleBusiness, handlers.BusinessOrdersHandler(bc, getSession)))
	handle("/business/orders/", auth(models.RoleBusiness, handlers.UpdateOrderStatusHandler(bc, getSession)))
	handle("/business/wallet", auth(models.RoleBusiness, handlers.WalletHandler(bc, getSession)))
	handle("/business/wallet/withdraw", auth(models.RoleBusiness, handlers.WithdrawHandler(bc, getSession)))

	logger.Info("gateway listening", "port", cfg.ServerPort, "backend", cfg.BackendURL, "cart_store", cfg.CartStore)
	if err := http.ListenAndServe(":"+cfg.ServerPort, nil); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
