package service

import (
	"fmt"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"powerschool_backend/internals/features/finance/fees/model"
)

var snapClient snap.Client

// InitMidtrans menyiapkan client Snap (sandbox).
func InitMidtrans(serverKey string) {
	snapClient.New(serverKey, midtrans.Sandbox)
}

// CreateSnapToken membuat token checkout Midtrans untuk satu invoice.
// Order ID memakai pola inv-<uuid> supaya webhook bisa memetakan balik.
func CreateSnapToken(invoice model.FeeInvoiceModel, studentName string) (string, string, error) {
	orderID := "inv-" + invoice.ID.String()

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID: orderID,
			// Midtrans pakai rupiah utuh, bukan sen
			GrossAmt: invoice.AmountCents / 100,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    invoice.ID.String(),
				Name:  invoice.Title,
				Price: invoice.AmountCents / 100,
				Qty:   1,
			},
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: studentName,
		},
	}

	resp, err := snapClient.CreateTransaction(req)
	if err != nil {
		return "", "", fmt.Errorf("midtrans create transaction: %w", err)
	}
	return resp.Token, orderID, nil
}
