package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"powerschool_backend/internals/features/finance/fees/model"
)

// HandlePaymentNotification memproses callback Midtrans.
// capture/settlement menandai invoice paid; status lain diabaikan.
// Notifikasi yang diulang untuk order yang sama tidak membuat payment ganda.
func HandlePaymentNotification(db *gorm.DB, payload map[string]any) error {
	orderID, _ := payload["order_id"].(string)
	txStatus, _ := payload["transaction_status"].(string)
	fraudStatus, _ := payload["fraud_status"].(string)

	if orderID == "" {
		return fmt.Errorf("notification tanpa order_id")
	}

	settled := txStatus == "settlement" ||
		(txStatus == "capture" && fraudStatus != "challenge")
	if !settled {
		return nil
	}

	invoiceID, err := uuid.Parse(strings.TrimPrefix(orderID, "inv-"))
	if err != nil {
		return fmt.Errorf("order_id %q tidak memetakan ke invoice: %w", orderID, err)
	}

	var invoice model.FeeInvoiceModel
	if err := db.First(&invoice, "id = ?", invoiceID).Error; err != nil {
		return fmt.Errorf("invoice %s tidak ditemukan: %w", invoiceID, err)
	}
	if invoice.Status == "paid" {
		return nil
	}

	var existing int64
	if err := db.Model(&model.PaymentModel{}).
		Where("gateway_order_id = ?", orderID).
		Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	now := time.Now()
	payment := model.PaymentModel{
		InvoiceID:      invoice.ID,
		AmountCents:    invoice.AmountCents,
		Method:         "midtrans",
		GatewayOrderID: &orderID,
		PaidAt:         now,
	}
	if err := db.Create(&payment).Error; err != nil {
		return fmt.Errorf("simpan payment: %w", err)
	}

	return db.Model(&invoice).Updates(map[string]any{
		"status":  "paid",
		"paid_at": now,
	}).Error
}
