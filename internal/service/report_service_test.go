package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/obispoem/pdv-simple/internal/model"
	"github.com/obispoem/pdv-simple/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saleWithItems(total float64, method string, at time.Time, items ...model.SaleItem) model.Sale {
	return model.Sale{
		ID:            uuid.New(),
		Total:         decimal.NewFromFloat(total),
		PaymentMethod: method,
		CreatedAt:     at,
		Items:         items,
	}
}

func item(name string, qty int, price float64) model.SaleItem {
	return model.SaleItem{
		ID:        uuid.New(),
		ProductID: uuid.New(),
		Quantity:  qty,
		Price:     decimal.NewFromFloat(price),
		Product:   &model.Product{Name: name},
	}
}

func TestDailyReport(t *testing.T) {
	now := time.Now()
	coffee := item("Coffee 500g", 3, 10)
	bread := item("Bread", 5, 1.50)
	milk := item("Milk 1L", 1, 2)

	sales := &memSaleRepo{sales: []model.Sale{
		saleWithItems(30, model.PaymentCash, now, coffee),
		saleWithItems(9.50, model.PaymentPix, now, bread, milk),
		// Yesterday's sale must not leak into today's report
		saleWithItems(500, model.PaymentCash, now.Add(-24*time.Hour), item("TV", 1, 500)),
	}}
	svc := service.NewReportService(sales)

	resp, err := svc.DailyReport(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, now.Format("2006-01-02"), resp.Date)
	assert.Equal(t, "39.5", resp.TotalSales.String())
	assert.Equal(t, 2, resp.TotalOrders)
	assert.Equal(t, 9, resp.TotalItemsSold)
	assert.Len(t, resp.Sales, 2)

	// Best sellers ranked by quantity sold
	require.Len(t, resp.BestSellers, 3)
	assert.Equal(t, "Bread", resp.BestSellers[0].ProductName)
	assert.Equal(t, 5, resp.BestSellers[0].Quantity)
	assert.Equal(t, "7.5", resp.BestSellers[0].Total.String())
	assert.Equal(t, "Coffee 500g", resp.BestSellers[1].ProductName)
}

func TestDailyReportAggregatesAcrossSales(t *testing.T) {
	now := time.Now()
	productID := uuid.New()
	line := func(qty int) model.SaleItem {
		return model.SaleItem{
			ID: uuid.New(), ProductID: productID, Quantity: qty,
			Price:   decimal.NewFromInt(4),
			Product: &model.Product{Name: "Soda"},
		}
	}

	sales := &memSaleRepo{sales: []model.Sale{
		saleWithItems(8, model.PaymentCash, now, line(2)),
		saleWithItems(12, model.PaymentCash, now, line(3)),
	}}
	svc := service.NewReportService(sales)

	resp, err := svc.DailyReport(context.Background(), "")
	require.NoError(t, err)

	// Same product across sales collapses into one ranking entry
	require.Len(t, resp.BestSellers, 1)
	assert.Equal(t, 5, resp.BestSellers[0].Quantity)
	assert.Equal(t, "20", resp.BestSellers[0].Total.String())
}

func TestDailyReportInvalidDate(t *testing.T) {
	svc := service.NewReportService(&memSaleRepo{})

	_, err := svc.DailyReport(context.Background(), "31-12-2025")

	var invalid *service.InvalidInputError
	assert.ErrorAs(t, err, &invalid)
}

func TestDailyReportEmptyDay(t *testing.T) {
	svc := service.NewReportService(&memSaleRepo{})

	resp, err := svc.DailyReport(context.Background(), "2025-01-01")
	require.NoError(t, err)
	assert.True(t, resp.TotalSales.IsZero())
	assert.Zero(t, resp.TotalOrders)
	assert.Empty(t, resp.BestSellers)
}

func TestPaymentMethodsReport(t *testing.T) {
	now := time.Now()
	sales := &memSaleRepo{sales: []model.Sale{
		saleWithItems(60, model.PaymentCash, now),
		saleWithItems(40, model.PaymentCash, now),
		saleWithItems(50, model.PaymentPix, now),
	}}
	svc := service.NewReportService(sales)

	resp, err := svc.PaymentMethodsReport(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "150", resp.TotalSales.String())
	assert.Equal(t, 3, resp.TotalOrders)
	require.Len(t, resp.PaymentMethods, 2)

	// Alphabetical: cash before pix
	cash := resp.PaymentMethods[0]
	assert.Equal(t, model.PaymentCash, cash.Method)
	assert.Equal(t, "100", cash.Total.String())
	assert.Equal(t, 2, cash.Count)
	// 100/150 → 66.7% at one decimal
	assert.Equal(t, "66.7", cash.Percentage.String())

	pix := resp.PaymentMethods[1]
	assert.Equal(t, model.PaymentPix, pix.Method)
	assert.Equal(t, "33.3", pix.Percentage.String())
}

func TestPaymentMethodsReportEmptyDay(t *testing.T) {
	svc := service.NewReportService(&memSaleRepo{})

	resp, err := svc.PaymentMethodsReport(context.Background(), "2025-01-01")
	require.NoError(t, err)
	assert.True(t, resp.TotalSales.IsZero())
	assert.Empty(t, resp.PaymentMethods)
}
