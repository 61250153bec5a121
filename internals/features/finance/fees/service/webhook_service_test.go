package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"powerschool_backend/internals/databases/testdb"
	"powerschool_backend/internals/features/finance/fees/model"
)

func seedInvoice(t *testing.T, db *gorm.DB, status string) model.FeeInvoiceModel {
	t.Helper()
	invoice := model.FeeInvoiceModel{
		ID:          uuid.New(),
		StudentID:   uuid.New(),
		Title:       "SPP Agustus",
		AmountCents: 95000,
		DueDate:     "2026-08-10",
		Status:      status,
	}
	require.NoError(t, db.Create(&invoice).Error)
	return invoice
}

func TestHandlePaymentNotificationSettlement(t *testing.T) {
	db, err := testdb.Open()
	require.NoError(t, err)
	invoice := seedInvoice(t, db, "pending")

	payload := map[string]any{
		"order_id":           "inv-" + invoice.ID.String(),
		"transaction_status": "settlement",
	}
	require.NoError(t, HandlePaymentNotification(db, payload))

	var got model.FeeInvoiceModel
	require.NoError(t, db.First(&got, "id = ?", invoice.ID).Error)
	assert.Equal(t, "paid", got.Status)
	assert.NotNil(t, got.PaidAt)

	var payments []model.PaymentModel
	require.NoError(t, db.Where("invoice_id = ?", invoice.ID).Find(&payments).Error)
	require.Len(t, payments, 1)
	assert.Equal(t, int64(95000), payments[0].AmountCents)
	assert.Equal(t, "midtrans", payments[0].Method)
}

func TestHandlePaymentNotificationIdempotent(t *testing.T) {
	db, err := testdb.Open()
	require.NoError(t, err)
	invoice := seedInvoice(t, db, "pending")

	payload := map[string]any{
		"order_id":           "inv-" + invoice.ID.String(),
		"transaction_status": "settlement",
	}
	require.NoError(t, HandlePaymentNotification(db, payload))
	require.NoError(t, HandlePaymentNotification(db, payload))

	var n int64
	require.NoError(t, db.Model(&model.PaymentModel{}).
		Where("invoice_id = ?", invoice.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestHandlePaymentNotificationIgnoresNonSettled(t *testing.T) {
	db, err := testdb.Open()
	require.NoError(t, err)
	invoice := seedInvoice(t, db, "pending")

	for _, payload := range []map[string]any{
		{"order_id": "inv-" + invoice.ID.String(), "transaction_status": "pending"},
		{"order_id": "inv-" + invoice.ID.String(), "transaction_status": "deny"},
		{"order_id": "inv-" + invoice.ID.String(), "transaction_status": "capture", "fraud_status": "challenge"},
	} {
		require.NoError(t, HandlePaymentNotification(db, payload))
	}

	var got model.FeeInvoiceModel
	require.NoError(t, db.First(&got, "id = ?", invoice.ID).Error)
	assert.Equal(t, "pending", got.Status)
}

func TestHandlePaymentNotificationRejectsBadOrderID(t *testing.T) {
	db, err := testdb.Open()
	require.NoError(t, err)

	assert.Error(t, HandlePaymentNotification(db, map[string]any{
		"transaction_status": "settlement",
	}))
	assert.Error(t, HandlePaymentNotification(db, map[string]any{
		"order_id":           "bukan-invoice",
		"transaction_status": "settlement",
	}))
}

func TestMarkOverdueInvoices(t *testing.T) {
	db, err := testdb.Open()
	require.NoError(t, err)

	pastPending := seedInvoice(t, db, "pending")
	require.NoError(t, db.Model(&pastPending).Update("due_date", "2000-01-01").Error)
	paid := seedInvoice(t, db, "paid")

	future := model.FeeInvoiceModel{
		ID:          uuid.New(),
		StudentID:   uuid.New(),
		Title:       "SPP Desember",
		AmountCents: 45000,
		DueDate:     "2099-12-01",
		Status:      "pending",
	}
	require.NoError(t, db.Create(&future).Error)

	MarkOverdueInvoices(db)

	var gotPast model.FeeInvoiceModel
	require.NoError(t, db.First(&gotPast, "id = ?", pastPending.ID).Error)
	assert.Equal(t, "overdue", gotPast.Status)

	var gotPaid model.FeeInvoiceModel
	require.NoError(t, db.First(&gotPaid, "id = ?", paid.ID).Error)
	assert.Equal(t, "paid", gotPaid.Status)

	var gotFuture model.FeeInvoiceModel
	require.NoError(t, db.First(&gotFuture, "id = ?", future.ID).Error)
	assert.Equal(t, "pending", gotFuture.Status)
}
