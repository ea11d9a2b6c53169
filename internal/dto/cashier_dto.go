package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OpenRegisterRequest struct {
	InitialBalance decimal.Decimal `json:"initial_balance" validate:"min=0"`
}

type CloseRegisterRequest struct {
	FinalBalance decimal.Decimal `json:"final_balance" validate:"min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// CashierOperationResponse is returned by open/close and inside history.
// Balance and Difference are present only for "close" operations.
type CashierOperationResponse struct {
	ID         string           `json:"id"`
	Type       string           `json:"type"`
	Amount     decimal.Decimal  `json:"amount"`
	Balance    *decimal.Decimal `json:"balance,omitempty"`
	Difference *decimal.Decimal `json:"difference,omitempty"`
	OpenedAt   *string          `json:"opened_at,omitempty"`
	ClosedAt   *string          `json:"closed_at,omitempty"`
	CreatedAt  string           `json:"created_at"`
}

// StatusSaleItem is the per-item detail inside the open-register status.
type StatusSaleItem struct {
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type StatusSale struct {
	ID        string           `json:"id"`
	Total     decimal.Decimal  `json:"total"`
	CreatedAt string           `json:"created_at"`
	Items     []StatusSaleItem `json:"items"`
}

// RegisterStatusResponse reports the register state. When the register is
// closed only IsOpen is meaningful; the remaining fields are omitted.
type RegisterStatusResponse struct {
	IsOpen          bool             `json:"is_open"`
	OpenedAt        *string          `json:"opened_at,omitempty"`
	InitialBalance  *decimal.Decimal `json:"initial_balance,omitempty"`
	TotalSales      *decimal.Decimal `json:"total_sales,omitempty"`
	ExpectedBalance *decimal.Decimal `json:"expected_balance,omitempty"`
	SalesCount      *int             `json:"sales_count,omitempty"`
	Sales           []StatusSale     `json:"sales,omitempty"`
}
