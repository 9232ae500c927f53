package models

// Business matches the commerce backend's business representation.
// Location is a [longitude, latitude] pair.
type Business struct {
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	About           string    `json:"about,omitempty"`
	Address         string    `json:"address,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	Category        string    `json:"category,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
	Location        []float64 `json:"location,omitempty"`
	ProfileImageURL string    `json:"profileImageUrl"`
	Active          bool      `json:"active,omitempty"`
}

type Wallet struct {
	Amount       float64       `json:"amount"`
	Transactions []Transaction `json:"transactions"`
}

type Transaction struct {
	Date    string  `json:"date"`
	Amount  float64 `json:"amount"`
	From    string  `json:"from"`
	OrderID string  `json:"orderID"`
}

type WithdrawRequest struct {
	BusinessEmail string  `json:"business_email"`
	Amount        float64 `json:"amount"`
	AccountNumber string  `json:"account_number"`
	BankCode      string  `json:"bank_code"`
}
