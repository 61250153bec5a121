package service

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"powerschool_backend/internals/features/activity/model"
)

// LogAction menulis satu entri audit best-effort.
// Kegagalan hanya dicatat di log server — tidak pernah menggagalkan aksi
// utama yang sudah sukses, dan tidak pernah dibalikkan ke user.
func LogAction(db *gorm.DB, userID *uuid.UUID, action, entity, entityID string, meta map[string]any) {
	entry := model.ActivityLogModel{
		UserID: userID,
		Action: action,
	}
	if entity != "" {
		entry.Entity = &entity
	}
	if entityID != "" {
		entry.EntityID = &entityID
	}
	if meta != nil {
		if raw, err := json.Marshal(meta); err == nil {
			entry.Meta = datatypes.JSON(raw)
		}
	}

	if err := db.Create(&entry).Error; err != nil {
		log.Printf("[WARN] logAction gagal (action=%s): %v", action, err)
	}
}
