package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/obispoem/pdv-simple/internal/model"
	"github.com/obispoem/pdv-simple/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardOverview(t *testing.T) {
	now := time.Now()
	products := newMemProductRepo()
	products.add("Napkins", 1.20, 3, true) // below the low-stock threshold
	products.add("Rice 5kg", 22, 80, true)

	sales := &memSaleRepo{sales: []model.Sale{
		saleWithItems(30, model.PaymentCash, now, item("Coffee 500g", 3, 10)),
		saleWithItems(50, model.PaymentPix, now, item("Rice 5kg", 2, 25)),
	}}

	cashier := service.NewCashierService(newMemCashierRepo(), sales)
	reports := service.NewReportService(sales)
	svc := service.NewDashboardService(reports, cashier, products, sales, nil)

	resp, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "80", resp.Summary.TotalSales.String())
	assert.Equal(t, 2, resp.Summary.TotalOrders)
	assert.Equal(t, 5, resp.Summary.TotalItemsSold)
	assert.False(t, resp.Summary.IsCashierOpen)
	assert.False(t, resp.CashierStatus.IsOpen)

	assert.Len(t, resp.PaymentMethods, 2)
	assert.Len(t, resp.BestSellers, 2)
	assert.Len(t, resp.LastSales, 2)

	require.Len(t, resp.LowStockProducts, 1)
	assert.Equal(t, "Napkins", resp.LowStockProducts[0].Name)
	assert.Equal(t, 3, resp.LowStockProducts[0].Stock)

	_, err = time.Parse(time.RFC3339, resp.UpdatedAt)
	assert.NoError(t, err)
}
