package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/obispoem/pdv-simple/internal/dto"
	"github.com/obispoem/pdv-simple/internal/repository"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const (
	lowStockThreshold = 10
	lowStockLimit     = 10
	lastSalesLimit    = 5

	dashboardCacheKey = "dashboard:overview"
	dashboardCacheTTL = 15 * time.Second
)

// DashboardService composes the admin overview from independent read-only
// sections. The sections have no ordering dependency, so they run
// concurrently; a short-TTL redis cache absorbs dashboard polling.
type DashboardService interface {
	Overview(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	reports     ReportService
	cashier     CashierService
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	rdb         *redis.Client
}

func NewDashboardService(
	reports ReportService,
	cashier CashierService,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	rdb *redis.Client,
) DashboardService {
	return &dashboardService{
		reports:     reports,
		cashier:     cashier,
		productRepo: productRepo,
		saleRepo:    saleRepo,
		rdb:         rdb,
	}
}

func (s *dashboardService) Overview(ctx context.Context) (*dto.DashboardResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, dashboardCacheKey).Bytes(); err == nil {
			var resp dto.DashboardResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return &resp, nil
			}
		}
	}

	var (
		daily    *dto.DailyReportResponse
		payments *dto.PaymentMethodsReportResponse
		status   *dto.RegisterStatusResponse
		lowStock []dto.LowStockProduct
		last     []dto.SaleResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		daily, err = s.reports.DailyReport(gctx, "")
		return err
	})
	g.Go(func() (err error) {
		payments, err = s.reports.PaymentMethodsReport(gctx, "")
		return err
	})
	g.Go(func() (err error) {
		status, err = s.cashier.Status(gctx)
		return err
	})
	g.Go(func() error {
		products, err := s.productRepo.ListLowStock(gctx, lowStockThreshold, lowStockLimit)
		if err != nil {
			return err
		}
		lowStock = make([]dto.LowStockProduct, 0, len(products))
		for _, p := range products {
			lowStock = append(lowStock, dto.LowStockProduct{
				ID:    p.ID.String(),
				Name:  p.Name,
				Price: p.Price,
				Stock: p.Stock,
			})
		}
		return nil
	})
	g.Go(func() error {
		sales, err := s.saleRepo.ListRecent(gctx, lastSalesLimit)
		if err != nil {
			return err
		}
		last = make([]dto.SaleResponse, 0, len(sales))
		for i := range sales {
			last = append(last, *saleToResponse(&sales[i]))
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		Summary: dto.DashboardSummary{
			Date:           daily.Date,
			TotalSales:     daily.TotalSales,
			TotalOrders:    daily.TotalOrders,
			TotalItemsSold: daily.TotalItemsSold,
			IsCashierOpen:  status.IsOpen,
		},
		PaymentMethods:   payments.PaymentMethods,
		BestSellers:      daily.BestSellers,
		CashierStatus:    *status,
		LowStockProducts: lowStock,
		LastSales:        last,
		UpdatedAt:        time.Now().UTC().Format(time.RFC3339),
	}

	if s.rdb != nil {
		if b, err := json.Marshal(resp); err == nil {
			// Detached from the request context so a client disconnect does
			// not void the cache, but bounded so a hung redis cannot pin the
			// goroutine.
			cacheCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			_ = s.rdb.Set(cacheCtx, dashboardCacheKey, b, dashboardCacheTTL).Err()
			cancel()
		}
	}
	return resp, nil
}
