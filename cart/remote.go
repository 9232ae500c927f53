package cart

import (
	"context"

	"localconnect/backend"
	"localconnect/models"
)

// RemoteRepository is the backend-cart revision: the backend owns the cart
// and the gateway is a thin view over its cart endpoints.
type RemoteRepository struct {
	client *backend.Client
}

func NewRemoteRepository(client *backend.Client) *RemoteRepository {
	return &RemoteRepository{client: client}
}

func (r *RemoteRepository) Get(ctx context.Context, owner Owner) ([]models.Product, error) {
	return r.client.Cart(ctx, owner.Token)
}

func (r *RemoteRepository) Add(ctx context.Context, owner Owner, product models.Product) error {
	return r.client.CartAdd(ctx, owner.Token, product)
}

func (r *RemoteRepository) Remove(ctx context.Context, owner Owner, productID string) error {
	return r.client.CartRemove(ctx, owner.Token, productID)
}

func (r *RemoteRepository) Clear(ctx context.Context, owner Owner) error {
	return r.client.CartClear(ctx, owner.Token)
}
