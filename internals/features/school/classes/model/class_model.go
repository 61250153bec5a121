package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassModel merepresentasikan tabel `classes`
type ClassModel struct {
	ID          uuid.UUID `json:"id"           gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `json:"name"         gorm:"column:name;type:varchar(120);not null;uniqueIndex"`
	Grade       string    `json:"grade"        gorm:"column:grade;type:varchar(20);not null"`
	TeacherName string    `json:"teacher_name" gorm:"column:teacher_name;type:varchar(120);not null"`

	CreatedAt time.Time      `json:"created_at" gorm:"column:created_at;type:timestamptz;not null;default:now()"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"column:updated_at;type:timestamptz;not null;default:now()"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"column:deleted_at;type:timestamptz;index"`
}

func (ClassModel) TableName() string {
	return "classes"
}
