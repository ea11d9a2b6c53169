package model

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies products for the catalog and dashboard rollups.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Products []Product `gorm:"foreignKey:CategoryID"`
}

// TableName overrides GORM's default pluralization.
func (Category) TableName() string { return "categories" }
