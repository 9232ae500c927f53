package cart

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"localconnect/models"
)

// PostgresRepository is the gateway-owned cart revision: snapshot rows in
// Postgres keyed by customer email.
//
// Expected schema:
//
//	CREATE TABLE cart_items (
//	    cart_item_id   SERIAL PRIMARY KEY,
//	    customer_email TEXT NOT NULL,
//	    product        JSONB NOT NULL,
//	    added_ts       TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
//	CREATE INDEX cart_items_customer_idx ON cart_items (customer_email);
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, owner Owner) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product FROM cart_items
		WHERE customer_email = $1
		ORDER BY cart_item_id
	`, owner.Email)
	if err != nil {
		return nil, fmt.Errorf("loading cart: %w", err)
	}
	defer rows.Close()
	var items []models.Product
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scanning cart row: %w", err)
		}
		var p models.Product
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decoding cart snapshot: %w", err)
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) Add(ctx context.Context, owner Owner, product models.Product) error {
	snapshot, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("encoding cart snapshot: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO cart_items (customer_email, product)
		VALUES ($1, $2)
	`, owner.Email, snapshot)
	if err != nil {
		return fmt.Errorf("adding to cart: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Remove(ctx context.Context, owner Owner, productID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE customer_email = $1 AND product->>'product_id' = $2
	`, owner.Email, productID)
	if err != nil {
		return fmt.Errorf("removing from cart: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Clear(ctx context.Context, owner Owner) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items WHERE customer_email = $1
	`, owner.Email)
	if err != nil {
		return fmt.Errorf("clearing cart: %w", err)
	}
	return nil
}
