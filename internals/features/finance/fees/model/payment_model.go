package model

import (
	"time"

	"github.com/google/uuid"
)

type PaymentModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InvoiceID uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`

	AmountCents int64  `gorm:"not null" json:"amount_cents"`
	Method      string `gorm:"type:varchar(30);not null;default:'manual'" json:"method"`

	// Order ID Midtrans untuk pembayaran via gateway, kosong untuk manual
	GatewayOrderID *string `gorm:"type:varchar(80);index" json:"gateway_order_id"`

	RecordedBy *uuid.UUID `gorm:"type:uuid" json:"recorded_by"`
	PaidAt     time.Time  `gorm:"not null" json:"paid_at"`

	CreatedAt time.Time `json:"created_at"`
}

func (PaymentModel) TableName() string {
	return "payments"
}
