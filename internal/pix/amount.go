package pix

import "cinepix/internal/models"

// ResolveConfirmedAmount picks the single authoritative paid amount at
// confirmation time. Precedence, first finite number wins:
//
//	transaction_details.total_paid_amount
//	transaction_amount
//	amount
//	selection total
//
// A candidate that does not coerce to a finite number is skipped. The
// selection total is a plain float, so the result is always finite.
func ResolveConfirmedAmount(payment *models.PaymentSnapshot, selection models.Selection) float64 {
	if payment != nil {
		candidates := make([]*models.Number, 0, 3)
		if payment.TransactionDetails != nil {
			candidates = append(candidates, payment.TransactionDetails.TotalPaidAmount)
		}
		candidates = append(candidates, payment.TransactionAmount, payment.Amount)

		for _, c := range candidates {
			if v, ok := c.Float64(); ok {
				return v
			}
		}
	}
	return selection.TotalPrice
}
