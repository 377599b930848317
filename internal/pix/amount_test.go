package pix

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cinepix/internal/models"
)

func TestResolveConfirmedAmountPrecedence(t *testing.T) {
	selection := models.Selection{Seats: []string{"A1"}, TotalPrice: 20}

	payment := &models.PaymentSnapshot{
		Amount:            models.NewNumberString("30"),
		TransactionAmount: models.NewNumber(40),
		TransactionDetails: &models.PixTransactionDetails{
			TotalPaidAmount: models.NewNumber(50),
		},
	}

	assert.Equal(t, 50.0, ResolveConfirmedAmount(payment, selection))

	payment.TransactionDetails.TotalPaidAmount = nil
	assert.Equal(t, 40.0, ResolveConfirmedAmount(payment, selection))

	payment.TransactionAmount = models.NewNumberString("not-a-number")
	assert.Equal(t, 30.0, ResolveConfirmedAmount(payment, selection))

	payment.Amount = nil
	payment.TransactionAmount = nil
	payment.TransactionDetails = nil
	assert.Equal(t, 20.0, ResolveConfirmedAmount(payment, selection))
}

func TestResolveConfirmedAmountNilPayment(t *testing.T) {
	selection := models.Selection{Seats: []string{"A1", "A2"}, TotalPrice: 45}

	assert.Equal(t, 45.0, ResolveConfirmedAmount(nil, selection))
}

func TestResolveConfirmedAmountSkipsNaN(t *testing.T) {
	selection := models.Selection{TotalPrice: 20}
	payment := &models.PaymentSnapshot{
		Amount: models.NewNumberString("NaN"),
		TransactionDetails: &models.PixTransactionDetails{
			TotalPaidAmount: models.NewNumberString("NaN"),
		},
	}

	assert.Equal(t, 20.0, ResolveConfirmedAmount(payment, selection))
}

func TestResolveConfirmedAmountNumericString(t *testing.T) {
	selection := models.Selection{TotalPrice: 20}
	payment := &models.PaymentSnapshot{
		Amount: models.NewNumberString("45.90"),
	}

	assert.Equal(t, 45.90, ResolveConfirmedAmount(payment, selection))
}
