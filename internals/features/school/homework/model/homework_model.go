package model

import (
	"time"

	"github.com/google/uuid"
)

type HomeworkModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClassID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"class_id"`
	SubjectID     *uuid.UUID `gorm:"type:uuid" json:"subject_id"`
	Title         string     `gorm:"type:varchar(200);not null" json:"title"`
	Description   *string    `gorm:"type:text" json:"description"`
	DueDate       string     `gorm:"type:date;not null" json:"due_date"`
	AttachmentURL *string    `gorm:"type:text" json:"attachment_url"`
	CreatedBy     *uuid.UUID `gorm:"type:uuid" json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (HomeworkModel) TableName() string {
	return "homework"
}

type HomeworkSubmissionModel struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	HomeworkID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_submission_homework_student" json:"homework_id"`
	StudentID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_submission_homework_student" json:"student_id"`

	// pending | submitted | graded
	Status string   `gorm:"type:varchar(12);not null;default:'pending'" json:"status"`
	Score  *float64 `json:"score"`
	Note   *string  `gorm:"type:text" json:"note"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (HomeworkSubmissionModel) TableName() string {
	return "homework_submissions"
}
