package dto

import "github.com/shopspring/decimal"

// ─── Daily report ────────────────────────────────────────────────────────────

type BestSeller struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
}

type DailyReportResponse struct {
	Date           string          `json:"date"`
	TotalSales     decimal.Decimal `json:"total_sales"`
	TotalOrders    int             `json:"total_orders"`
	TotalItemsSold int             `json:"total_items_sold"`
	BestSellers    []BestSeller    `json:"best_selling_products"`
	Sales          []SaleResponse  `json:"sales"`
}

// ─── Payment-methods report ──────────────────────────────────────────────────

type PaymentMethodSummary struct {
	Method     string          `json:"method"`
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`
	Percentage decimal.Decimal `json:"percentage"`
}

type PaymentMethodsReportResponse struct {
	Date           string                 `json:"date"`
	TotalSales     decimal.Decimal        `json:"total_sales"`
	TotalOrders    int                    `json:"total_orders"`
	PaymentMethods []PaymentMethodSummary `json:"payment_methods"`
}

// ─── Dashboard ───────────────────────────────────────────────────────────────

type LowStockProduct struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

type DashboardSummary struct {
	Date           string          `json:"date"`
	TotalSales     decimal.Decimal `json:"total_sales"`
	TotalOrders    int             `json:"total_orders"`
	TotalItemsSold int             `json:"total_items_sold"`
	IsCashierOpen  bool            `json:"is_cashier_open"`
}

type DashboardResponse struct {
	Summary          DashboardSummary       `json:"summary"`
	PaymentMethods   []PaymentMethodSummary `json:"payment_methods"`
	BestSellers      []BestSeller           `json:"best_selling_products"`
	CashierStatus    RegisterStatusResponse `json:"cashier_status"`
	LowStockProducts []LowStockProduct      `json:"low_stock_products"`
	LastSales        []SaleResponse         `json:"last_sales"`
	UpdatedAt        string                 `json:"updated_at"`
}
