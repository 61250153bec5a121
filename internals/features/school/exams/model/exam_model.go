package model

import (
	"time"

	"github.com/google/uuid"
)

type ExamModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClassID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"class_id"`
	SubjectID *uuid.UUID `gorm:"type:uuid" json:"subject_id"`
	Name      string     `gorm:"type:varchar(150);not null" json:"name"`
	ExamType  string     `gorm:"type:varchar(30);not null" json:"exam_type"`
	Term      string     `gorm:"type:varchar(30);not null" json:"term"`
	ExamDate  string     `gorm:"type:date;not null" json:"exam_date"`
	MaxScore  float64    `gorm:"not null;default:100" json:"max_score"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ExamModel) TableName() string {
	return "exams"
}

type ExamScoreModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ExamID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_exam_score_exam_student" json:"exam_id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_exam_score_exam_student" json:"student_id"`
	Score     float64   `gorm:"not null" json:"score"`
	Letter    string    `gorm:"type:varchar(2);not null" json:"letter"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ExamScoreModel) TableName() string {
	return "exam_scores"
}
