package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/obispoem/pdv-simple/internal/dto"
	"github.com/obispoem/pdv-simple/internal/model"
	"github.com/obispoem/pdv-simple/internal/repository"
	"github.com/obispoem/pdv-simple/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Full in-memory ProductRepository ─────────────────────────────────────────

type memProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *memProductRepo) add(name string, price float64, stock int, active bool) uuid.UUID {
	id := uuid.New()
	r.products[id] = &model.Product{
		ID:     id,
		Name:   name,
		Price:  decimal.NewFromFloat(price),
		Stock:  stock,
		Active: active,
	}
	return id
}

func (r *memProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	r.products[p.ID] = p
	return nil
}

func (r *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *memProductRepo) List(_ context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var result []model.Product
	for _, p := range r.products {
		switch filter.Active {
		case "false":
			if p.Active {
				continue
			}
		case "all":
		default:
			if !p.Active {
				continue
			}
		}
		result = append(result, *p)
	}
	return result, int64(len(result)), nil
}

func (r *memProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *memProductRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok {
		return errors.New("not found")
	}
	p.Active = false
	return nil
}

func (r *memProductRepo) ListLowStock(_ context.Context, threshold, limit int) ([]model.Product, error) {
	var result []model.Product
	for _, p := range r.products {
		if p.Active && p.Stock <= threshold && len(result) < limit {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *memProductRepo) DecrementStockTx(_ *gorm.DB, id uuid.UUID, qty int) (bool, error) {
	p, ok := r.products[id]
	if !ok || !p.Active || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	return true, nil
}

func (r *memProductRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *memProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*memProductRepo)(nil)

// ── Full in-memory SaleRepository ────────────────────────────────────────────

type memSaleRepo struct {
	sales          []model.Sale
	listSinceCalls int
}

func (r *memSaleRepo) Create(_ context.Context, _ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	for i := range s.Items {
		if s.Items[i].ID == uuid.Nil {
			s.Items[i].ID = uuid.New()
		}
		s.Items[i].SaleID = s.ID
	}
	r.sales = append(r.sales, *s)
	return nil
}

func (r *memSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	for i := range r.sales {
		if r.sales[i].ID == id {
			return &r.sales[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (r *memSaleRepo) List(_ context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var result []model.Sale
	for _, s := range r.sales {
		if filter.Date != "" && s.CreatedAt.Format("2006-01-02") != filter.Date {
			continue
		}
		result = append(result, s)
	}
	total := int64(len(result))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(result) {
		return nil, total, nil
	}
	end := start + filter.Limit
	if end > len(result) {
		end = len(result)
	}
	return result[start:end], total, nil
}

func (r *memSaleRepo) ListBetween(_ context.Context, from, to time.Time) ([]model.Sale, error) {
	var result []model.Sale
	for _, s := range r.sales {
		if !s.CreatedAt.Before(from) && s.CreatedAt.Before(to) {
			result = append(result, s)
		}
	}
	return result, nil
}

func (r *memSaleRepo) ListSince(_ context.Context, since time.Time) ([]model.Sale, error) {
	r.listSinceCalls++
	var result []model.Sale
	for _, s := range r.sales {
		if !s.CreatedAt.Before(since) {
			result = append(result, s)
		}
	}
	return result, nil
}

func (r *memSaleRepo) ListRecent(_ context.Context, limit int) ([]model.Sale, error) {
	// Newest last in the slice — walk backwards
	var result []model.Sale
	for i := len(r.sales) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, r.sales[i])
	}
	return result, nil
}

func (r *memSaleRepo) SumTotalsSinceTx(_ *gorm.DB, since time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, s := range r.sales {
		if !s.CreatedAt.Before(since) {
			sum = sum.Add(s.Total)
		}
	}
	return sum, nil
}

func (r *memSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*memSaleRepo)(nil)

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCreateSale(t *testing.T) {
	products := newMemProductRepo()
	coffeeID := products.add("Coffee 500g", 10.50, 10, true)
	sugarID := products.add("Sugar 1kg", 3.25, 4, true)

	sales := &memSaleRepo{}
	svc := service.NewSaleService(sales, products, nil)

	resp, err := svc.Create(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: coffeeID.String(), Quantity: 2},
			{ProductID: sugarID.String(), Quantity: 1},
		},
		PaymentMethod: model.PaymentPix,
	})

	require.NoError(t, err)
	// 2×10.50 + 1×3.25 = 24.25
	assert.Equal(t, "24.25", resp.Total.String())
	assert.Equal(t, model.PaymentPix, resp.PaymentMethod)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, "Coffee 500g", resp.Items[0].ProductName)

	// Stock decremented
	assert.Equal(t, 8, products.products[coffeeID].Stock)
	assert.Equal(t, 3, products.products[sugarID].Stock)

	// Persisted with price snapshot
	require.Len(t, sales.sales, 1)
	assert.Equal(t, "10.5", sales.sales[0].Items[0].Price.String())
}

func TestCreateSaleDefaultPaymentMethod(t *testing.T) {
	products := newMemProductRepo()
	id := products.add("Milk 1L", 2, 5, true)

	svc := service.NewSaleService(&memSaleRepo{}, products, nil)

	resp, err := svc.Create(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: id.String(), Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentCash, resp.PaymentMethod)
}

func TestCreateSaleUnknownProduct(t *testing.T) {
	svc := service.NewSaleService(&memSaleRepo{}, newMemProductRepo(), nil)

	_, err := svc.Create(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: uuid.NewString(), Quantity: 1}},
	})

	var notFound *service.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestCreateSaleInactiveProduct(t *testing.T) {
	products := newMemProductRepo()
	id := products.add("Discontinued", 9.99, 50, false)

	svc := service.NewSaleService(&memSaleRepo{}, products, nil)

	_, err := svc.Create(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: id.String(), Quantity: 1}},
	})

	// Inactive products are invisible to checkout
	var notFound *service.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestCreateSaleInsufficientStock(t *testing.T) {
	products := newMemProductRepo()
	id := products.add("Rice 5kg", 22, 2, true)

	sales := &memSaleRepo{}
	svc := service.NewSaleService(sales, products, nil)

	_, err := svc.Create(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: id.String(), Quantity: 3}},
	})

	var insufficient *service.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 3, insufficient.Requested)
	assert.Equal(t, 2, insufficient.Available)

	// Nothing persisted, stock untouched
	assert.Empty(t, sales.sales)
	assert.Equal(t, 2, products.products[id].Stock)
}

func TestCreateSaleRejectsWholeBasket(t *testing.T) {
	// One bad line fails the entire sale — no partial decrement of valid lines.
	products := newMemProductRepo()
	okID := products.add("Bread", 1.50, 10, true)
	shortID := products.add("Butter", 4, 1, true)

	sales := &memSaleRepo{}
	svc := service.NewSaleService(sales, products, nil)

	_, err := svc.Create(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: okID.String(), Quantity: 2},
			{ProductID: shortID.String(), Quantity: 5},
		},
	})

	require.Error(t, err)
	assert.Empty(t, sales.sales)
	assert.Equal(t, 10, products.products[okID].Stock)
	assert.Equal(t, 1, products.products[shortID].Stock)
}

// deactivatingProductRepo simulates an admin deactivating the product in the
// window between the pre-flight read and the in-transaction decrement.
type deactivatingProductRepo struct {
	*memProductRepo
	target uuid.UUID
}

func (r *deactivatingProductRepo) DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) (bool, error) {
	r.products[r.target].Active = false
	return r.memProductRepo.DecrementStockTx(tx, id, qty)
}

func TestCreateSaleProductDeactivatedMidCheckout(t *testing.T) {
	inner := newMemProductRepo()
	id := inner.add("Coffee 500g", 10.50, 10, true)
	products := &deactivatingProductRepo{memProductRepo: inner, target: id}

	sales := &memSaleRepo{}
	svc := service.NewSaleService(sales, products, nil)

	_, err := svc.Create(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: id.String(), Quantity: 1}},
	})

	// Deactivation reads as "gone", not as a stock shortage
	var notFound *service.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestSaleResponseTimestampIsUTC(t *testing.T) {
	products := newMemProductRepo()
	id := products.add("Milk 1L", 2, 5, true)
	svc := service.NewSaleService(&memSaleRepo{}, products, nil)

	resp, err := svc.Create(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: id.String(), Quantity: 1}},
	})
	require.NoError(t, err)

	parsed, err := time.Parse(time.RFC3339, resp.CreatedAt)
	require.NoError(t, err)

	// The "Z" suffix must mean UTC for real, wherever the server runs
	_, offset := parsed.Zone()
	assert.Zero(t, offset)
	assert.WithinDuration(t, time.Now().UTC(), parsed, time.Minute)
}

func TestCreateSaleEmptyBasket(t *testing.T) {
	svc := service.NewSaleService(&memSaleRepo{}, newMemProductRepo(), nil)

	_, err := svc.Create(context.Background(), dto.CreateSaleRequest{})

	var invalid *service.InvalidInputError
	assert.ErrorAs(t, err, &invalid)
}

func TestCreateSaleInvalidProductID(t *testing.T) {
	svc := service.NewSaleService(&memSaleRepo{}, newMemProductRepo(), nil)

	_, err := svc.Create(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "not-a-uuid", Quantity: 1}},
	})

	var invalid *service.InvalidInputError
	assert.ErrorAs(t, err, &invalid)
}

func TestGetSaleNotFound(t *testing.T) {
	svc := service.NewSaleService(&memSaleRepo{}, newMemProductRepo(), nil)

	_, err := svc.Get(context.Background(), uuid.New())

	var notFound *service.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestListSalesPagination(t *testing.T) {
	sales := &memSaleRepo{}
	for i := 0; i < 5; i++ {
		_ = sales.Create(context.Background(), nil, &model.Sale{
			Total:         decimal.NewFromInt(10),
			PaymentMethod: model.PaymentCash,
		})
	}
	svc := service.NewSaleService(sales, newMemProductRepo(), nil)

	resp, err := svc.List(context.Background(), dto.SaleFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.Total)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, 2, resp.Page)
}
