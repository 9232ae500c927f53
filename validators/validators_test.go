package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"localconnect/models"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("buyer@example.com"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail(""))
}

func TestValidateLocation(t *testing.T) {
	assert.NoError(t, ValidateLocation([]float64{3.3792, 6.5244}))
	assert.Error(t, ValidateLocation([]float64{3.3792}))
	assert.Error(t, ValidateLocation([]float64{181, 0}))
	assert.Error(t, ValidateLocation([]float64{0, -91}))
	assert.Error(t, ValidateLocation(nil))
}

func TestValidateProduct(t *testing.T) {
	p := models.Product{ProductID: "p1", BusinessOwned: "biz@x.com", Name: "Loaf", Price: 10}
	assert.NoError(t, ValidateProduct(&p))

	negative := p
	negative.Price = -1
	assert.Error(t, ValidateProduct(&negative))

	noID := p
	noID.ProductID = ""
	assert.Error(t, ValidateProduct(&noID))
}

func TestValidateWithdrawal(t *testing.T) {
	req := models.WithdrawRequest{Amount: 500, AccountNumber: "0123456789", BankCode: "058"}
	assert.NoError(t, ValidateWithdrawal(&req))

	zero := req
	zero.Amount = 0
	assert.Error(t, ValidateWithdrawal(&zero))

	shortAcct := req
	shortAcct.AccountNumber = "12345"
	assert.Error(t, ValidateWithdrawal(&shortAcct))

	badBank := req
	badBank.BankCode = "ZB"
	assert.Error(t, ValidateWithdrawal(&badBank))
}

func TestCleanTags(t *testing.T) {
	assert.Nil(t, CleanTags([]string{"", "   "}), "trimmed-empty tags are never appended")
	assert.Equal(t, []string{"vegan", "Vegan", "bakery"},
		CleanTags([]string{" vegan ", "Vegan", "vegan", "bakery"}),
		"dedup is case-sensitive and order-preserving")
}
