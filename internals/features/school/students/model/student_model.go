package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentModel struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FullName       string    `gorm:"type:varchar(150);not null" json:"full_name"`
	Email          *string   `gorm:"type:varchar(150)" json:"email"`
	GuardianName   *string   `gorm:"type:varchar(150)" json:"guardian_name"`
	GuardianEmail  *string   `gorm:"type:varchar(150)" json:"guardian_email"`
	FatherName     *string   `gorm:"type:varchar(150)" json:"father_name"`
	MotherName     *string   `gorm:"type:varchar(150)" json:"mother_name"`
	Phone          *string   `gorm:"type:varchar(30)" json:"phone"`
	BirthDate      *string   `gorm:"type:date" json:"birth_date"`
	PreviousSchool *string   `gorm:"type:varchar(200)" json:"previous_school"`
	MedicalInfo    *string   `gorm:"type:text" json:"medical_info"`
	ClassID        uuid.UUID `gorm:"type:uuid;not null;index" json:"class_id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (StudentModel) TableName() string {
	return "students"
}
