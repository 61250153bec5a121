package model

import (
	"time"

	"github.com/google/uuid"
)

type TimetableEntryModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClassID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"class_id"`
	SubjectID *uuid.UUID `gorm:"type:uuid" json:"subject_id"`
	TeacherID *uuid.UUID `gorm:"type:uuid;index" json:"teacher_id"`

	// 0=Minggu .. 6=Sabtu
	DayOfWeek int `gorm:"not null" json:"day_of_week"`

	// HH:MM, interval setengah-terbuka [start, end)
	StartTime string `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime   string `gorm:"type:varchar(5);not null" json:"end_time"`

	Room *string `gorm:"type:varchar(60)" json:"room"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TimetableEntryModel) TableName() string {
	return "timetable_entries"
}
