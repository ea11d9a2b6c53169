package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the sellable catalog entry. Stock is mutated exclusively through
// conditional decrements during checkout and manual adjustments; it never goes
// negative (enforced at the storage layer, not just here).
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"index;not null"`
	Description *string
	Price       decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	Cost        *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Stock       int              `gorm:"not null;default:0"`
	CategoryID  *uuid.UUID       `gorm:"type:uuid;index"`
	Active      bool             `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
}
