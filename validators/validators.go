package validators

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"localconnect/models"
)

var (
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	accountNumRe = regexp.MustCompile(`^\d{10}$`)
	bankCodeRe   = regexp.MustCompile(`^\d{3,6}$`)
)

func ValidateString(field, val string, minLen, maxLen int) error {
	length := utf8.RuneCountInString(val)
	if length < minLen || length > maxLen {
		return fmt.Errorf("%s must be between %d and %d characters", field, minLen, maxLen)
	}
	return nil
}

func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	return nil
}

// ValidateLocation checks a [longitude, latitude] pair. The coordinate is
// forwarded to the backend unchanged, so only shape and range are checked.
func ValidateLocation(location []float64) error {
	if len(location) != 2 {
		return fmt.Errorf("location must be a [longitude, latitude] pair")
	}
	if location[0] < -180 || location[0] > 180 {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	if location[1] < -90 || location[1] > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	return nil
}

func ValidatePrice(price float64) error {
	if price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	return nil
}

func ValidateProduct(p *models.Product) error {
	if err := ValidateString("name", p.Name, 1, 100); err != nil {
		return err
	}
	if err := ValidateEmail(p.BusinessOwned); err != nil {
		return fmt.Errorf("business_owned: %w", err)
	}
	if p.ProductID == "" {
		return fmt.Errorf("product_id cannot be empty")
	}
	return ValidatePrice(p.Price)
}

func ValidateWithdrawal(req *models.WithdrawRequest) error {
	if req.Amount <= 0 {
		return fmt.Errorf("amount must be greater than zero")
	}
	if !accountNumRe.MatchString(req.AccountNumber) {
		return fmt.Errorf("account_number must be exactly 10 digits")
	}
	if !bankCodeRe.MatchString(req.BankCode) {
		return fmt.Errorf("bank_code must be 3 to 6 digits")
	}
	return nil
}
