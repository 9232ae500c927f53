package models

type Product struct {
	ProductID     string   `json:"product_id"`
	BusinessOwned string   `json:"business_owned"`
	Name          string   `json:"name"`
	About         string   `json:"about,omitempty"`
	Price         float64  `json:"price"`
	ImageURL      string   `json:"imageUrl"`
	Available     bool     `json:"available"`
	Tags          []string `json:"tags,omitempty"`
}
