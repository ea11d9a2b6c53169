package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name        string           `json:"name"        validate:"required,min=2"`
	Description *string          `json:"description"`
	Price       decimal.Decimal  `json:"price"       validate:"required,gt=0"`
	Cost        *decimal.Decimal `json:"cost"        validate:"omitempty,min=0"`
	Stock       int              `json:"stock"       validate:"min=0"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,uuid"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name"        validate:"omitempty,min=2"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"       validate:"omitempty,gt=0"`
	Cost        *decimal.Decimal `json:"cost"        validate:"omitempty,min=0"`
	Stock       *int             `json:"stock"       validate:"omitempty,min=0"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,uuid"`
}

// ProductFilter is bound from the query string of GET /v1/products.
type ProductFilter struct {
	Name   string `form:"name"`
	Active string `form:"active"` // "false" = inactive only, "all" = everything, default active only
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	Cost        *decimal.Decimal `json:"cost,omitempty"`
	Stock       int              `json:"stock"`
	CategoryID  *string          `json:"category_id,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Active      bool             `json:"active"`
	CreatedAt   string           `json:"created_at"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
