package model

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceLockModel menandai satu kelas+tanggal sudah dikunci.
// Kunci bersifat advisory: penyimpanan absensi membaca ulang baris ini
// sebelum menulis dan menolak dengan 409 jika locked.
type AttendanceLockModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClassID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_lock_class_date" json:"class_id"`
	AttendanceDate string     `gorm:"type:date;not null;uniqueIndex:uq_attendance_lock_class_date" json:"attendance_date"`
	Locked         bool       `gorm:"not null" json:"locked"`
	LockedBy       *uuid.UUID `gorm:"type:uuid" json:"locked_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AttendanceLockModel) TableName() string {
	return "attendance_locks"
}
