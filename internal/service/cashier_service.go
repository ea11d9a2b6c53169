package service

import (
	"context"
	"time"

	"github.com/obispoem/pdv-simple/internal/dto"
	"github.com/obispoem/pdv-simple/internal/model"
	"github.com/obispoem/pdv-simple/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const defaultHistoryLimit = 30

type CashierService interface {
	Open(ctx context.Context, req dto.OpenRegisterRequest) (*dto.CashierOperationResponse, error)
	Close(ctx context.Context, req dto.CloseRegisterRequest) (*dto.CashierOperationResponse, error)
	Status(ctx context.Context) (*dto.RegisterStatusResponse, error)
	History(ctx context.Context, limit int) ([]dto.CashierOperationResponse, error)
}

type cashierService struct {
	repo     repository.CashierRepository
	saleRepo repository.SaleRepository
}

func NewCashierService(repo repository.CashierRepository, saleRepo repository.SaleRepository) CashierService {
	return &cashierService{repo: repo, saleRepo: saleRepo}
}

// ── Open ──────────────────────────────────────────────────────────────────────
// The state row is locked FOR UPDATE for the duration of the transaction, so
// two concurrent opens serialize: the second sees Open=true and fails with
// ErrRegisterAlreadyOpen. The "open" log entry and the state flip commit
// together or not at all.

func (s *cashierService) Open(ctx context.Context, req dto.OpenRegisterRequest) (*dto.CashierOperationResponse, error) {
	var op model.CashierOperation
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		state, err := s.repo.LockStateTx(tx)
		if err != nil {
			return err
		}
		if state.Open {
			return ErrRegisterAlreadyOpen
		}

		now := time.Now()
		op = model.CashierOperation{
			Type:     model.OperationOpen,
			Amount:   req.InitialBalance,
			OpenedAt: &now,
		}
		if err := s.repo.CreateOperationTx(tx, &op); err != nil {
			return err
		}

		state.Open = true
		state.OpenedAt = &now
		state.InitialBalance = req.InitialBalance
		state.OperationID = &op.ID
		return s.repo.SaveStateTx(tx, state)
	})
	if txErr != nil {
		return nil, txErr
	}
	return operationToResponse(&op), nil
}

// ── Close ─────────────────────────────────────────────────────────────────────
// Reconciliation runs inside the same transaction that appends the "close"
// entry, so the sales sum is a consistent snapshot. The window is inclusive
// of the opening instant: every sale with created_at >= opened_at counts.
// Sums stay at full decimal precision; rounding happens only in responses.

func (s *cashierService) Close(ctx context.Context, req dto.CloseRegisterRequest) (*dto.CashierOperationResponse, error) {
	var op model.CashierOperation
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		state, err := s.repo.LockStateTx(tx)
		if err != nil {
			return err
		}
		if !state.Open || state.OpenedAt == nil {
			return ErrRegisterNotOpen
		}

		salesTotal, err := s.saleRepo.SumTotalsSinceTx(tx, *state.OpenedAt)
		if err != nil {
			return err
		}

		expected := state.InitialBalance.Add(salesTotal)
		difference := req.FinalBalance.Sub(expected)
		now := time.Now()

		op = model.CashierOperation{
			Type:       model.OperationClose,
			Amount:     req.FinalBalance,
			Balance:    &expected,
			Difference: &difference,
			OpenedAt:   state.OpenedAt,
			ClosedAt:   &now,
		}
		if err := s.repo.CreateOperationTx(tx, &op); err != nil {
			return err
		}

		state.Open = false
		state.OpenedAt = nil
		state.InitialBalance = decimal.Zero
		state.OperationID = &op.ID
		return s.repo.SaveStateTx(tx, state)
	})
	if txErr != nil {
		return nil, txErr
	}
	return operationToResponse(&op), nil
}

// ── Status ────────────────────────────────────────────────────────────────────

func (s *cashierService) Status(ctx context.Context) (*dto.RegisterStatusResponse, error) {
	state, err := s.repo.State(ctx)
	if err != nil {
		return nil, err
	}
	// Closed register: report and stop — no sale or product queries.
	if !state.Open || state.OpenedAt == nil {
		return &dto.RegisterStatusResponse{IsOpen: false}, nil
	}

	sales, err := s.saleRepo.ListSince(ctx, *state.OpenedAt)
	if err != nil {
		return nil, err
	}

	salesTotal := decimal.Zero
	statusSales := make([]dto.StatusSale, 0, len(sales))
	for i := range sales {
		sale := &sales[i]
		salesTotal = salesTotal.Add(sale.Total)
		items := make([]dto.StatusSaleItem, 0, len(sale.Items))
		for _, item := range sale.Items {
			name := ""
			if item.Product != nil {
				name = item.Product.Name
			}
			items = append(items, dto.StatusSaleItem{
				ProductName: name,
				Quantity:    item.Quantity,
				Price:       item.Price,
			})
		}
		statusSales = append(statusSales, dto.StatusSale{
			ID:        sale.ID.String(),
			Total:     sale.Total,
			CreatedAt: isoTime(sale.CreatedAt),
			Items:     items,
		})
	}

	expected := state.InitialBalance.Add(salesTotal)
	openedAt := isoTime(*state.OpenedAt)
	initial := state.InitialBalance.Round(2)
	totalSales := salesTotal.Round(2)
	expectedRounded := expected.Round(2)
	count := len(sales)

	return &dto.RegisterStatusResponse{
		IsOpen:          true,
		OpenedAt:        &openedAt,
		InitialBalance:  &initial,
		TotalSales:      &totalSales,
		ExpectedBalance: &expectedRounded,
		SalesCount:      &count,
		Sales:           statusSales,
	}, nil
}

// ── History ───────────────────────────────────────────────────────────────────

func (s *cashierService) History(ctx context.Context, limit int) ([]dto.CashierOperationResponse, error) {
	if limit < 1 {
		limit = defaultHistoryLimit
	}
	ops, err := s.repo.ListOperations(ctx, limit)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CashierOperationResponse, 0, len(ops))
	for i := range ops {
		result = append(result, *operationToResponse(&ops[i]))
	}
	return result, nil
}

func operationToResponse(op *model.CashierOperation) *dto.CashierOperationResponse {
	resp := &dto.CashierOperationResponse{
		ID:        op.ID.String(),
		Type:      op.Type,
		Amount:    op.Amount.Round(2),
		CreatedAt: isoTime(op.CreatedAt),
	}
	if op.Balance != nil {
		b := op.Balance.Round(2)
		resp.Balance = &b
	}
	if op.Difference != nil {
		d := op.Difference.Round(2)
		resp.Difference = &d
	}
	if op.OpenedAt != nil {
		t := isoTime(*op.OpenedAt)
		resp.OpenedAt = &t
	}
	if op.ClosedAt != nil {
		t := isoTime(*op.ClosedAt)
		resp.ClosedAt = &t
	}
	return resp
}
