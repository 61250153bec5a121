package model

import (
	"time"

	"github.com/google/uuid"
)

type GradeModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_grade_student_subject_term" json:"student_id"`
	SubjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_grade_student_subject_term" json:"subject_id"`
	Term      string    `gorm:"type:varchar(30);not null;uniqueIndex:uq_grade_student_subject_term" json:"term"`

	Score    float64 `gorm:"not null" json:"score"`
	MaxScore float64 `gorm:"not null;default:100" json:"max_score"`
	Letter   string  `gorm:"type:varchar(2);not null" json:"letter"`
	Comment  *string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (GradeModel) TableName() string {
	return "grades"
}
