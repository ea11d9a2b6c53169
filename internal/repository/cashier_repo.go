package repository

import (
	"context"

	"github.com/obispoem/pdv-simple/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CashierRepository persists the append-only operation log and the explicit
// register state row. State writes always happen inside the same transaction
// as the log append; LockStateTx takes a row lock so concurrent open/close
// calls serialize instead of racing the check-then-act sequence.
type CashierRepository interface {
	State(ctx context.Context) (*model.RegisterState, error)
	LockStateTx(tx *gorm.DB) (*model.RegisterState, error)
	SaveStateTx(tx *gorm.DB, s *model.RegisterState) error
	CreateOperationTx(tx *gorm.DB, op *model.CashierOperation) error
	ListOperations(ctx context.Context, limit int) ([]model.CashierOperation, error)
	DB() *gorm.DB
}

type cashierRepo struct{ db *gorm.DB }

func NewCashierRepository(db *gorm.DB) CashierRepository { return &cashierRepo{db: db} }

func (r *cashierRepo) DB() *gorm.DB { return r.db }

func (r *cashierRepo) State(ctx context.Context) (*model.RegisterState, error) {
	var s model.RegisterState
	err := r.db.WithContext(ctx).First(&s, "id = ?", 1).Error
	return &s, err
}

func (r *cashierRepo) LockStateTx(tx *gorm.DB) (*model.RegisterState, error) {
	var s model.RegisterState
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&s, "id = ?", 1).Error
	return &s, err
}

func (r *cashierRepo) SaveStateTx(tx *gorm.DB, s *model.RegisterState) error {
	return tx.Save(s).Error
}

func (r *cashierRepo) CreateOperationTx(tx *gorm.DB, op *model.CashierOperation) error {
	return tx.Create(op).Error
}

func (r *cashierRepo) ListOperations(ctx context.Context, limit int) ([]model.CashierOperation, error) {
	var ops []model.CashierOperation
	err := r.db.WithContext(ctx).
		Order("created_at DESC").Limit(limit).
		Find(&ops).Error
	return ops, err
}
