package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cashier operation kinds.
const (
	OperationOpen  = "open"
	OperationClose = "close"
)

// CashierOperation is one entry in the append-only register log.
// Amount is the opening float for "open" rows and the counted cash for
// "close" rows. Balance and Difference are only set on "close" rows.
// Entries are never updated or deleted.
type CashierOperation struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Type       string           `gorm:"type:varchar(10);not null;index"`
	Amount     decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Balance    *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Difference *decimal.Decimal `gorm:"type:decimal(12,2)"`
	OpenedAt   *time.Time
	ClosedAt   *time.Time
	CreatedAt  time.Time `gorm:"index"`
}

// TableName overrides GORM's default pluralization.
func (CashierOperation) TableName() string { return "cashier_operations" }

// RegisterState is the explicit Open/Closed state of the single cash
// register, held in one row alongside the operation log and updated in the
// same transaction as every log append. Deriving the state by scanning the
// log is ambiguous when consecutive "open" rows exist; this row is the
// source of truth. Open/close transactions lock it FOR UPDATE, which
// serializes the check-then-act sequence.
type RegisterState struct {
	ID             int  `gorm:"primaryKey"` // always 1 — single register
	Open           bool `gorm:"not null;default:false"`
	OpenedAt       *time.Time
	InitialBalance decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	OperationID    *uuid.UUID      `gorm:"type:uuid"`
	UpdatedAt      time.Time
}

// TableName keeps the singleton table out of GORM pluralization.
func (RegisterState) TableName() string { return "register_state" }
