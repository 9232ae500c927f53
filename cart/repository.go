package cart

import (
	"context"

	"localconnect/models"
)

// Owner identifies whose cart is being touched. Email keys the local store;
// Token authenticates against the backend-owned cart.
type Owner struct {
	Email string
	Token string
}

// Repository is the snapshot cart. Entries are full product copies captured
// at add time, so later catalog edits never change what is already in the
// cart. Add never deduplicates; the same product can sit in the cart as
// several separate entries.
//
// Remove drops every entry sharing the given product id, matching the
// storefront's remove behavior.
type Repository interface {
	Get(ctx context.Context, owner Owner) ([]models.Product, error)
	Add(ctx context.Context, owner Owner, product models.Product) error
	Remove(ctx context.Context, owner Owner, productID string) error
	Clear(ctx context.Context, owner Owner) error
}
