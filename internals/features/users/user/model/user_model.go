package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel merepresentasikan tabel `users` (identitas login)
type UserModel struct {
	ID       uuid.UUID `json:"id"        gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email    string    `json:"email"     gorm:"column:email;type:varchar(255);not null;uniqueIndex"`
	Password string    `json:"-"         gorm:"column:password;type:text;not null"`
	FullName string    `json:"full_name" gorm:"column:full_name;type:varchar(120);not null"`
	IsActive bool      `json:"is_active" gorm:"column:is_active;not null;default:true"`

	// diisi kalau login lewat Google
	GoogleID *string `json:"google_id,omitempty" gorm:"column:google_id;type:varchar(64)"`

	CreatedAt time.Time      `json:"created_at" gorm:"column:created_at;type:timestamptz;not null;default:now()"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"column:updated_at;type:timestamptz;not null;default:now()"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"column:deleted_at;type:timestamptz;index"`
}

func (UserModel) TableName() string {
	return "users"
}
