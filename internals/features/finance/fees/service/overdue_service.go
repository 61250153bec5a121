package service

import (
	"log"
	"time"

	"gorm.io/gorm"

	"powerschool_backend/internals/features/finance/fees/model"
)

// StartOverdueMarkerScheduler menjalankan goroutine harian yang mem-flip
// invoice pending yang sudah lewat jatuh tempo menjadi overdue.
// Status tersimpan di kolom, bukan dihitung saat baca.
func StartOverdueMarkerScheduler(db *gorm.DB) {
	go func() {
		for {
			MarkOverdueInvoices(db)
			time.Sleep(24 * time.Hour)
		}
	}()
}

func MarkOverdueInvoices(db *gorm.DB) {
	today := time.Now().Format("2006-01-02")
	res := db.Model(&model.FeeInvoiceModel{}).
		Where("status = ? AND due_date < ?", "pending", today).
		Update("status", "overdue")
	if res.Error != nil {
		log.Printf("[ERROR] mark overdue invoices: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("[INFO] %d invoice ditandai overdue", res.RowsAffected)
	}
}
