package model

import (
	"time"

	"github.com/google/uuid"
)

type FeeInvoiceModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`

	Title       string `gorm:"type:varchar(200);not null" json:"title"`
	AmountCents int64  `gorm:"not null" json:"amount_cents"`
	IssuedOn    string `gorm:"type:date;not null" json:"issued_on"`
	DueDate     string `gorm:"type:date;not null" json:"due_date"`

	// pending | paid | overdue
	Status string `gorm:"type:varchar(10);not null;default:'pending';index" json:"status"`

	PaidAt *time.Time `json:"paid_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (FeeInvoiceModel) TableName() string {
	return "fee_invoices"
}
