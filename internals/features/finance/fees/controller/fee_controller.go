package controller

import (
	"fmt"
	"html/template"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	activityService "powerschool_backend/internals/features/activity/service"
	"powerschool_backend/internals/features/finance/fees/model"
	"powerschool_backend/internals/features/finance/fees/service"
	studentModel "powerschool_backend/internals/features/school/students/model"
	helper "powerschool_backend/internals/helpers"
)

type FeeController struct {
	DB *gorm.DB
}

func NewFeeController(db *gorm.DB) *FeeController {
	return &FeeController{DB: db}
}

type createInvoiceRequest struct {
	StudentID   string `json:"student_id"   validate:"required,uuid"`
	Title       string `json:"title"        validate:"required,min=2,max=200"`
	AmountCents int64  `json:"amount_cents" validate:"required,min=1"`
	IssuedOn    string `json:"issued_on"    validate:"omitempty,datetime=2006-01-02"`
	DueDate     string `json:"due_date"     validate:"required,datetime=2006-01-02"`
}

// ==========================================
// 📋 GET /api/fees?student_id=&status=
// Ikut mengembalikan outstanding_cents: total
// amount invoice berstatus != paid
// ==========================================
func (ctrl *FeeController) List(c *fiber.Ctx) error {
	q := ctrl.DB.Model(&model.FeeInvoiceModel{})
	outstandingQ := ctrl.DB.Model(&model.FeeInvoiceModel{}).Where("status <> ?", "paid")

	if studentID := c.Query("student_id"); studentID != "" {
		id, err := uuid.Parse(studentID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid")
		}
		q = q.Where("student_id = ?", id)
		outstandingQ = outstandingQ.Where("student_id = ?", id)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var invoices []model.FeeInvoiceModel
	if err := q.Order("due_date ASC").Find(&invoices).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data tagihan")
	}

	var outstanding int64
	if err := outstandingQ.
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&outstanding).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung tunggakan")
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"invoices":          invoices,
		"outstanding_cents": outstanding,
	})
}

// =======================
// ➕ POST /api/fees
// =======================
func (ctrl *FeeController) Create(c *fiber.Ctx) error {
	var req createInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}

	issuedOn := req.IssuedOn
	if issuedOn == "" {
		issuedOn = time.Now().Format("2006-01-02")
	}

	invoice := model.FeeInvoiceModel{
		StudentID:   studentID,
		Title:       req.Title,
		AmountCents: req.AmountCents,
		IssuedOn:    issuedOn,
		DueDate:     req.DueDate,
		Status:      "pending",
	}
	if err := ctrl.DB.Create(&invoice).Error; err != nil {
		log.Printf("[ERROR] create invoice: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat tagihan")
	}

	actorID, _ := helper.GetUserUUID(c)
	activityService.LogAction(ctrl.DB, &actorID, "invoice_created", "invoice", invoice.ID.String(), map[string]any{
		"student_id":   invoice.StudentID.String(),
		"amount_cents": invoice.AmountCents,
	})

	return helper.JsonCreated(c, "Tagihan berhasil dibuat", invoice)
}

// ==========================================
// 💰 POST /api/fees/:id/mark-paid
// Dua write terpisah: insert payment lalu update invoice.
// Payment masuk tapi update gagal = invoice tetap pending
// dengan payment tercatat; tidak ada kompensasi.
// ==========================================
func (ctrl *FeeController) MarkPaid(c *fiber.Ctx) error {
	invoiceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tagihan tidak valid")
	}

	var invoice model.FeeInvoiceModel
	if err := ctrl.DB.First(&invoice, "id = ?", invoiceID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Tagihan tidak ditemukan")
	}
	if invoice.Status == "paid" {
		return helper.JsonError(c, fiber.StatusConflict, "Tagihan sudah lunas")
	}

	actorID, _ := helper.GetUserUUID(c)
	now := time.Now()

	payment := model.PaymentModel{
		InvoiceID:   invoice.ID,
		AmountCents: invoice.AmountCents,
		Method:      "manual",
		RecordedBy:  &actorID,
		PaidAt:      now,
	}
	if err := ctrl.DB.Create(&payment).Error; err != nil {
		log.Printf("[ERROR] create payment: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mencatat pembayaran")
	}

	if err := ctrl.DB.Model(&invoice).Updates(map[string]any{
		"status":  "paid",
		"paid_at": now,
	}).Error; err != nil {
		log.Printf("[ERROR] update invoice status: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Pembayaran tercatat, status tagihan gagal diperbarui")
	}

	activityService.LogAction(ctrl.DB, &actorID, "invoice_paid", "invoice", invoice.ID.String(), map[string]any{
		"amount_cents": invoice.AmountCents,
		"method":       "manual",
	})

	return helper.JsonOK(c, "Tagihan berhasil ditandai lunas", fiber.Map{
		"invoice": invoice,
		"payment": payment,
	})
}

var receiptTmpl = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Kwitansi {{.InvoiceID}}</title></head>
<body>
  <h1>Kwitansi Pembayaran</h1>
  <p>No. Tagihan: {{.InvoiceID}}</p>
  <p>Siswa: {{.StudentName}}</p>
  <p>Keterangan: {{.Title}}</p>
  <p>Jumlah: Rp {{.Amount}}</p>
  <p>Tanggal Bayar: {{.PaidAt}}</p>
  <p>Status: LUNAS</p>
</body>
</html>`))

// ==========================================
// 🧾 GET /api/fees/:id/receipt — HTML kwitansi
// ==========================================
func (ctrl *FeeController) Receipt(c *fiber.Ctx) error {
	invoiceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tagihan tidak valid")
	}

	var invoice model.FeeInvoiceModel
	if err := ctrl.DB.First(&invoice, "id = ?", invoiceID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Tagihan tidak ditemukan")
	}
	if invoice.Status != "paid" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Kwitansi hanya untuk tagihan lunas")
	}

	var student studentModel.StudentModel
	_ = ctrl.DB.First(&student, "id = ?", invoice.StudentID).Error

	paidAt := ""
	if invoice.PaidAt != nil {
		paidAt = invoice.PaidAt.Format("2006-01-02 15:04")
	}

	var sb strings.Builder
	if err := receiptTmpl.Execute(&sb, map[string]any{
		"InvoiceID":   invoice.ID.String(),
		"StudentName": student.FullName,
		"Title":       invoice.Title,
		"Amount":      fmt.Sprintf("%d.%02d", invoice.AmountCents/100, invoice.AmountCents%100),
		"PaidAt":      paidAt,
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat kwitansi")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(sb.String())
}

// ==========================================
// ✉️ POST /api/receipt/send — stub pengiriman
// Dicatat sebagai aktivitas lalu selalu {ok:true};
// integrasi email belum ada
// ==========================================
func (ctrl *FeeController) SendReceipt(c *fiber.Ctx) error {
	var req struct {
		InvoiceID string `json:"invoice_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.InvoiceID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "invoice_id wajib diisi")
	}

	actorID, _ := helper.GetUserUUID(c)
	activityService.LogAction(ctrl.DB, &actorID, "receipt_sent", "invoice", req.InvoiceID, map[string]any{
		"via": "manual-send",
	})

	return c.JSON(fiber.Map{"ok": true})
}

// ==========================================
// 💳 POST /api/fees/:id/checkout — token Snap Midtrans
// ==========================================
func (ctrl *FeeController) Checkout(c *fiber.Ctx) error {
	invoiceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tagihan tidak valid")
	}

	var invoice model.FeeInvoiceModel
	if err := ctrl.DB.First(&invoice, "id = ?", invoiceID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Tagihan tidak ditemukan")
	}
	if invoice.Status == "paid" {
		return helper.JsonError(c, fiber.StatusConflict, "Tagihan sudah lunas")
	}

	var student studentModel.StudentModel
	_ = ctrl.DB.First(&student, "id = ?", invoice.StudentID).Error

	token, orderID, err := service.CreateSnapToken(invoice, student.FullName)
	if err != nil {
		log.Printf("[ERROR] midtrans checkout: %v", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal membuat sesi pembayaran")
	}

	return helper.JsonOK(c, "Sesi pembayaran dibuat", fiber.Map{
		"snap_token": token,
		"order_id":   orderID,
	})
}

// ==========================================
// 🔔 POST /api/payments/notification — webhook Midtrans (public)
// ==========================================
func (ctrl *FeeController) PaymentNotification(c *fiber.Ctx) error {
	var payload map[string]any
	if err := c.BodyParser(&payload); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	if err := service.HandlePaymentNotification(ctrl.DB, payload); err != nil {
		log.Printf("[ERROR] payment notification: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses notifikasi")
	}
	return c.JSON(fiber.Map{"ok": true})
}
