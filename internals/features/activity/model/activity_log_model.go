package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ActivityLogModel merepresentasikan tabel `activity_logs` (append-only)
type ActivityLogModel struct {
	ID       uuid.UUID  `json:"id"                  gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID   *uuid.UUID `json:"user_id,omitempty"   gorm:"column:user_id;type:uuid"`
	Action   string     `json:"action"              gorm:"column:action;type:varchar(80);not null"`
	Entity   *string    `json:"entity,omitempty"    gorm:"column:entity;type:varchar(80)"`
	EntityID *string    `json:"entity_id,omitempty" gorm:"column:entity_id;type:text"`
	Meta     datatypes.JSON `json:"meta,omitempty"  gorm:"column:meta;type:jsonb"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;type:timestamptz;not null;default:now()"`
}

func (ActivityLogModel) TableName() string {
	return "activity_logs"
}
