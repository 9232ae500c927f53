package models

// OrderLine associates one purchased product with the business that sells
// it. Lines are never deduplicated: buying the same product twice yields two
// identical lines.
type OrderLine struct {
	BusinessOwned string `json:"business_owned"`
	ProductID     string `json:"product_id"`
}

// Order is the backend's order representation. Status is an append-only
// history of free-text labels, most recent last.
type Order struct {
	OrderID          string      `json:"order_id"`
	Customer         string      `json:"customer"`
	Lines            []OrderLine `json:"product_list"`
	CollectionMethod string      `json:"collection_method"`
	CustomerNotes    []string    `json:"customer_notes,omitempty"`
	Status           []string    `json:"status"`
}

const (
	CollectionOnsite   = "onsite"
	CollectionDelivery = "delivery"
)
