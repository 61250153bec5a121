package controller

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"powerschool_backend/internals/databases/testdb"
	activityModel "powerschool_backend/internals/features/activity/model"
	"powerschool_backend/internals/features/finance/fees/model"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := testdb.Open()
	require.NoError(t, err)

	ctrl := NewFeeController(db)
	app := fiber.New()
	app.Get("/api/fees", ctrl.List)
	app.Post("/api/fees", ctrl.Create)
	app.Post("/api/fees/:id/mark-paid", ctrl.MarkPaid)
	app.Get("/api/fees/:id/receipt", ctrl.Receipt)
	app.Post("/api/receipt/send", ctrl.SendReceipt)
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func seedInvoice(t *testing.T, db *gorm.DB, amount int64, status string) model.FeeInvoiceModel {
	t.Helper()
	invoice := model.FeeInvoiceModel{
		ID:          uuid.New(),
		StudentID:   uuid.New(),
		Title:       "SPP Agustus",
		AmountCents: amount,
		DueDate:     "2026-08-10",
		Status:      status,
	}
	require.NoError(t, db.Create(&invoice).Error)
	return invoice
}

func TestMarkPaid(t *testing.T) {
	app, db := setupApp(t)
	invoice := seedInvoice(t, db, 95000, "pending")

	resp := doJSON(t, app, "POST", "/api/fees/"+invoice.ID.String()+"/mark-paid", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got model.FeeInvoiceModel
	require.NoError(t, db.First(&got, "id = ?", invoice.ID).Error)
	assert.Equal(t, "paid", got.Status)
	assert.NotNil(t, got.PaidAt)

	var payments []model.PaymentModel
	require.NoError(t, db.Where("invoice_id = ?", invoice.ID).Find(&payments).Error)
	require.Len(t, payments, 1)
	assert.Equal(t, int64(95000), payments[0].AmountCents)
	assert.Equal(t, "manual", payments[0].Method)
}

func TestMarkPaidTwiceConflicts(t *testing.T) {
	app, db := setupApp(t)
	invoice := seedInvoice(t, db, 95000, "pending")

	resp := doJSON(t, app, "POST", "/api/fees/"+invoice.ID.String()+"/mark-paid", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/api/fees/"+invoice.ID.String()+"/mark-paid", "")
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var n int64
	require.NoError(t, db.Model(&model.PaymentModel{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestListOutstandingExcludesPaid(t *testing.T) {
	app, db := setupApp(t)
	seedInvoice(t, db, 180000, "pending")
	seedInvoice(t, db, 95000, "paid")
	seedInvoice(t, db, 120000, "overdue")
	seedInvoice(t, db, 45000, "pending")

	resp := doJSON(t, app, "GET", "/api/fees", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope struct {
		Data struct {
			Invoices         []model.FeeInvoiceModel `json:"invoices"`
			OutstandingCents int64                   `json:"outstanding_cents"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Len(t, envelope.Data.Invoices, 4)
	assert.Equal(t, int64(345000), envelope.Data.OutstandingCents)
}

func TestReceiptOnlyForPaidInvoices(t *testing.T) {
	app, db := setupApp(t)
	pending := seedInvoice(t, db, 95000, "pending")

	resp := doJSON(t, app, "GET", "/api/fees/"+pending.ID.String()+"/receipt", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	doJSON(t, app, "POST", "/api/fees/"+pending.ID.String()+"/mark-paid", "")
	resp = doJSON(t, app, "GET", "/api/fees/"+pending.ID.String()+"/receipt", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "LUNAS")
	assert.Contains(t, string(raw), pending.ID.String())
}

func TestMarkPaidPartialFailureKeepsPayment(t *testing.T) {
	app, db := setupApp(t)
	invoice := seedInvoice(t, db, 95000, "pending")

	// Fase dua (update invoice) digagalkan; insert payment tetap jalan
	require.NoError(t, db.Callback().Update().Before("gorm:update").
		Register("tolak_update_invoice", func(tx *gorm.DB) {
			if tx.Statement.Table == "fee_invoices" {
				tx.AddError(errors.New("update ditolak"))
			}
		}))

	resp := doJSON(t, app, "POST", "/api/fees/"+invoice.ID.String()+"/mark-paid", "")
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	// Payment sudah tercatat, invoice tetap pending — tanpa kompensasi
	var n int64
	require.NoError(t, db.Model(&model.PaymentModel{}).
		Where("invoice_id = ?", invoice.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	var got model.FeeInvoiceModel
	require.NoError(t, db.First(&got, "id = ?", invoice.ID).Error)
	assert.Equal(t, "pending", got.Status)
	assert.Nil(t, got.PaidAt)
}

func TestSendReceiptStub(t *testing.T) {
	app, db := setupApp(t)
	invoiceID := uuid.NewString()

	resp := doJSON(t, app, "POST", "/api/receipt/send", `{"invoice_id":"`+invoiceID+`"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(raw))

	// Tercatat sebagai aktivitas best-effort
	var logged activityModel.ActivityLogModel
	require.NoError(t, db.First(&logged, "action = ?", "receipt_sent").Error)
	require.NotNil(t, logged.EntityID)
	assert.Equal(t, invoiceID, *logged.EntityID)
}

func TestSendReceiptRequiresInvoiceID(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, "POST", "/api/receipt/send", `{}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
