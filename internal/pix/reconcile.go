// Package pix holds the payment-side domain logic: folding partial provider
// snapshots into the locally known payment state, and resolving the
// authoritative paid amount at confirmation time.
package pix

import (
	"cinepix/internal/merge"
	"cinepix/internal/models"
)

// Reconcile folds incoming into current and returns the merged snapshot.
// Fields the incoming poll omits (or sends as null) keep their previously
// known values. point_of_interaction and transaction_details are excluded
// from the generic pass and merged by dedicated sub-rules so a partial
// nested object cannot clobber the known one wholesale.
//
// Neither input is mutated; the result is built on a clone of current.
//
// Known limitation: there is no freshness guard. A slow poll resolving after
// a newer one can still overwrite a fresher present field with a stale
// present value; null-preservation only protects against omissions.
func Reconcile(current, incoming *models.PaymentSnapshot) *models.PaymentSnapshot {
	if incoming == nil {
		return current
	}
	if current == nil {
		// First snapshot seen for this payment: taken verbatim.
		return incoming.Clone()
	}

	out := current.Clone()

	out.ID = merge.Overlay(out.ID, incoming.ID)
	out.Amount = merge.Overlay(out.Amount, incoming.Amount)
	out.Description = merge.Overlay(out.Description, incoming.Description)
	out.Status = merge.Overlay(out.Status, incoming.Status)
	out.StatusDetail = merge.Overlay(out.StatusDetail, incoming.StatusDetail)
	out.ExternalReference = merge.Overlay(out.ExternalReference, incoming.ExternalReference)
	out.TransactionAmount = merge.Overlay(out.TransactionAmount, incoming.TransactionAmount)
	out.CurrencyID = merge.Overlay(out.CurrencyID, incoming.CurrencyID)
	out.QRCode = merge.Overlay(out.QRCode, incoming.QRCode)
	out.QRCodeBase64 = merge.Overlay(out.QRCodeBase64, incoming.QRCodeBase64)
	out.QRCodeText = merge.Overlay(out.QRCodeText, incoming.QRCodeText)
	out.CopyAndPaste = merge.Overlay(out.CopyAndPaste, incoming.CopyAndPaste)
	out.ExpiresAt = merge.Overlay(out.ExpiresAt, incoming.ExpiresAt)
	out.DateOfExpiration = merge.Overlay(out.DateOfExpiration, incoming.DateOfExpiration)

	out.Extra = merge.Flat(out.Extra, incoming.Extra)

	out.PointOfInteraction = mergePointOfInteraction(out.PointOfInteraction, incoming.PointOfInteraction)
	out.TransactionDetails = mergeTransactionDetails(out.TransactionDetails, incoming.TransactionDetails)

	return out
}

func mergePointOfInteraction(current, incoming *models.PixPointOfInteraction) *models.PixPointOfInteraction {
	if incoming == nil {
		return current
	}
	if current == nil {
		return incoming
	}
	return &models.PixPointOfInteraction{
		TransactionData: mergeTransactionData(current.TransactionData, incoming.TransactionData),
	}
}

func mergeTransactionData(current, incoming *models.PixTransactionData) *models.PixTransactionData {
	if incoming == nil {
		return current
	}
	if current == nil {
		return incoming
	}
	// bank_info is a leaf of this pass: present-and-non-null replaces it
	// wholesale.
	return &models.PixTransactionData{
		TicketURL:    merge.Overlay(current.TicketURL, incoming.TicketURL),
		QRCode:       merge.Overlay(current.QRCode, incoming.QRCode),
		QRCodeBase64: merge.Overlay(current.QRCodeBase64, incoming.QRCodeBase64),
		BankInfo:     merge.Overlay(current.BankInfo, incoming.BankInfo),
	}
}

func mergeTransactionDetails(current, incoming *models.PixTransactionDetails) *models.PixTransactionDetails {
	if incoming == nil {
		return current
	}
	if current == nil {
		return incoming
	}
	return &models.PixTransactionDetails{
		TotalPaidAmount:   merge.Overlay(current.TotalPaidAmount, incoming.TotalPaidAmount),
		NetReceivedAmount: merge.Overlay(current.NetReceivedAmount, incoming.NetReceivedAmount),
		InstallmentAmount: merge.Overlay(current.InstallmentAmount, incoming.InstallmentAmount),
	}
}
