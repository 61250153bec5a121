package model

import (
	"time"

	"github.com/google/uuid"
)

// TeacherClassModel merepresentasikan tabel join `teacher_classes`.
// Scoping data guru di dashboard dihitung dari set class_id di sini.
type TeacherClassModel struct {
	UserID  uuid.UUID `json:"user_id"  gorm:"column:user_id;type:uuid;not null;primaryKey"`
	ClassID uuid.UUID `json:"class_id" gorm:"column:class_id;type:uuid;not null;primaryKey"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;type:timestamptz;not null;default:now()"`
}

func (TeacherClassModel) TableName() string {
	return "teacher_classes"
}
