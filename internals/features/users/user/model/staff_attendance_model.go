package model

import (
	"time"

	"github.com/google/uuid"
)

// StaffAttendanceModel merepresentasikan tabel `staff_attendance`.
// Satu row per (user_id, attendance_date) — upsert last-write-wins.
type StaffAttendanceModel struct {
	ID             uuid.UUID `json:"id"              gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID `json:"user_id"         gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_staff_attendance_user_date"`
	AttendanceDate string    `json:"attendance_date" gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_staff_attendance_user_date"`
	Status         string    `json:"status"          gorm:"column:status;type:varchar(20);not null"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;type:timestamptz;not null;default:now()"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;type:timestamptz;not null;default:now()"`
}

func (StaffAttendanceModel) TableName() string {
	return "staff_attendance"
}
