package model

import (
	"time"

	"github.com/google/uuid"
)

type AttendanceRecordModel struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StudentID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_student_date" json:"student_id"`
	ClassID        uuid.UUID `gorm:"type:uuid;not null;index" json:"class_id"`
	AttendanceDate string    `gorm:"type:date;not null;uniqueIndex:uq_attendance_student_date" json:"attendance_date"`

	// present | absent | tardy | excused
	Status string  `gorm:"type:varchar(10);not null;default:'present'" json:"status"`
	Note   *string `gorm:"type:text" json:"note"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AttendanceRecordModel) TableName() string {
	return "attendance_records"
}
