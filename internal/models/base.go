package models

import (
	"time"

	"moneta/internal/uuid"

	"gorm.io/gorm"
)

// Base contains common columns for all entity tables. Rollup tables and
// user settings use natural composite keys instead and do not embed it.
type Base struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}
