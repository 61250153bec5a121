package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileModel merepresentasikan tabel `profiles` (data kepegawaian + role)
type ProfileModel struct {
	UserID      uuid.UUID `json:"user_id"     gorm:"column:user_id;type:uuid;primaryKey"`
	FullName    *string   `json:"full_name"   gorm:"column:full_name;type:varchar(120)"`
	Role        string    `json:"role"        gorm:"column:role;type:varchar(20);not null;default:'teacher'"`
	Designation *string   `json:"designation,omitempty" gorm:"column:designation;type:varchar(120)"`
	Department  *string   `json:"department,omitempty"  gorm:"column:department;type:varchar(120)"`
	SalaryCents *int64    `json:"salary_cents,omitempty" gorm:"column:salary_cents"`
	StaffDocURL *string   `json:"staff_doc_url,omitempty" gorm:"column:staff_doc_url;type:text"`
	ResumeURL   *string   `json:"resume_url,omitempty"    gorm:"column:resume_url;type:text"`

	CreatedAt time.Time      `json:"created_at" gorm:"column:created_at;type:timestamptz;not null;default:now()"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"column:updated_at;type:timestamptz;not null;default:now()"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"column:deleted_at;type:timestamptz;index"`
}

func (ProfileModel) TableName() string {
	return "profiles"
}
