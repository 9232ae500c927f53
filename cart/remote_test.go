package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localconnect/backend"
	"localconnect/models"
)

// cartUpstream is a backend stub owning the cart, as in the backend-cart
// revision.
type cartUpstream struct {
	items []models.Product
}

func (c *cartUpstream) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/cart", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"cart": c.items})
	})
	mux.HandleFunc("/cart/add", func(w http.ResponseWriter, r *http.Request) {
		var p models.Product
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		c.items = append(c.items, p)
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("/cart/remove/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/cart/remove/")
		var kept []models.Product
		for _, p := range c.items {
			if p.ProductID != id {
				kept = append(kept, p)
			}
		}
		c.items = kept
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/cart/clear", func(w http.ResponseWriter, r *http.Request) {
		c.items = nil
		w.WriteHeader(http.StatusNoContent)
	})
	return httptest.NewServer(mux)
}

func TestRemoteRepository_AddThenRemoveRoundTrips(t *testing.T) {
	upstream := &cartUpstream{}
	srv := upstream.server(t)
	defer srv.Close()

	repo := NewRemoteRepository(backend.New(srv.URL, 5*time.Second, nil))
	owner := Owner{Email: "buyer@x.com", Token: "tok"}
	ctx := context.Background()

	keep := models.Product{ProductID: "p0", BusinessOwned: "b@x.com", Price: 5}
	require.NoError(t, repo.Add(ctx, owner, keep))

	before, err := repo.Get(ctx, owner)
	require.NoError(t, err)

	// Add the same product twice: both entries must exist, and Remove must
	// drop them both.
	extra := models.Product{ProductID: "p1", BusinessOwned: "b@x.com", Price: 10}
	require.NoError(t, repo.Add(ctx, owner, extra))
	require.NoError(t, repo.Add(ctx, owner, extra))

	mid, err := repo.Get(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, mid, 3)

	require.NoError(t, repo.Remove(ctx, owner, "p1"))
	after, err := repo.Get(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRemoteRepository_Clear(t *testing.T) {
	upstream := &cartUpstream{items: []models.Product{{ProductID: "p1"}}}
	srv := upstream.server(t)
	defer srv.Close()

	repo := NewRemoteRepository(backend.New(srv.URL, 5*time.Second, nil))
	owner := Owner{Email: "buyer@x.com", Token: "tok"}

	require.NoError(t, repo.Clear(context.Background(), owner))
	items, err := repo.Get(context.Background(), owner)
	require.NoError(t, err)
	assert.Empty(t, items)
}
