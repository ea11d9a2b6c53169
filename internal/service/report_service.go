package service

import (
	"context"
	"sort"
	"time"

	"github.com/obispoem/pdv-simple/internal/dto"
	"github.com/obispoem/pdv-simple/internal/repository"

	"github.com/shopspring/decimal"
)

// ReportService builds the read-side sales rollups. Totals accumulate at
// full decimal precision and are rounded to two decimals only on the way out.
type ReportService interface {
	DailyReport(ctx context.Context, date string) (*dto.DailyReportResponse, error)
	PaymentMethodsReport(ctx context.Context, date string) (*dto.PaymentMethodsReportResponse, error)
}

type reportService struct {
	saleRepo repository.SaleRepository
}

func NewReportService(saleRepo repository.SaleRepository) ReportService {
	return &reportService{saleRepo: saleRepo}
}

// dayWindow resolves a YYYY-MM-DD string (empty = today) to the half-open
// interval [00:00, next day 00:00) in local time.
func dayWindow(date string) (time.Time, time.Time, error) {
	target := time.Now()
	if date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, &InvalidInputError{Field: "date", Reason: "expected YYYY-MM-DD"}
		}
		target = parsed
	}
	start := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 0, 1), nil
}

func (s *reportService) DailyReport(ctx context.Context, date string) (*dto.DailyReportResponse, error) {
	from, to, err := dayWindow(date)
	if err != nil {
		return nil, err
	}
	sales, err := s.saleRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	totalSales := decimal.Zero
	totalItems := 0
	type productAgg struct {
		id       string
		name     string
		quantity int
		total    decimal.Decimal
	}
	byProduct := make(map[string]*productAgg)

	responses := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		sale := &sales[i]
		totalSales = totalSales.Add(sale.Total)
		for _, item := range sale.Items {
			totalItems += item.Quantity
			key := item.ProductID.String()
			agg, ok := byProduct[key]
			if !ok {
				agg = &productAgg{id: key, total: decimal.Zero}
				if item.Product != nil {
					agg.name = item.Product.Name
				}
				byProduct[key] = agg
			}
			agg.quantity += item.Quantity
			agg.total = agg.total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
		responses = append(responses, *saleToResponse(sale))
	}

	aggs := make([]*productAgg, 0, len(byProduct))
	for _, agg := range byProduct {
		aggs = append(aggs, agg)
	}
	sort.Slice(aggs, func(i, j int) bool { return aggs[i].quantity > aggs[j].quantity })
	if len(aggs) > 5 {
		aggs = aggs[:5]
	}
	best := make([]dto.BestSeller, 0, len(aggs))
	for _, agg := range aggs {
		best = append(best, dto.BestSeller{
			ProductID:   agg.id,
			ProductName: agg.name,
			Quantity:    agg.quantity,
			Total:       agg.total.Round(2),
		})
	}

	return &dto.DailyReportResponse{
		Date:           from.Format("2006-01-02"),
		TotalSales:     totalSales.Round(2),
		TotalOrders:    len(sales),
		TotalItemsSold: totalItems,
		BestSellers:    best,
		Sales:          responses,
	}, nil
}

func (s *reportService) PaymentMethodsReport(ctx context.Context, date string) (*dto.PaymentMethodsReportResponse, error) {
	from, to, err := dayWindow(date)
	if err != nil {
		return nil, err
	}
	sales, err := s.saleRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	totalSales := decimal.Zero
	type methodAgg struct {
		total decimal.Decimal
		count int
	}
	byMethod := make(map[string]*methodAgg)
	order := make([]string, 0, 4)

	for i := range sales {
		sale := &sales[i]
		totalSales = totalSales.Add(sale.Total)
		agg, ok := byMethod[sale.PaymentMethod]
		if !ok {
			agg = &methodAgg{total: decimal.Zero}
			byMethod[sale.PaymentMethod] = agg
			order = append(order, sale.PaymentMethod)
		}
		agg.total = agg.total.Add(sale.Total)
		agg.count++
	}
	sort.Strings(order)

	hundred := decimal.NewFromInt(100)
	methods := make([]dto.PaymentMethodSummary, 0, len(order))
	for _, method := range order {
		agg := byMethod[method]
		pct := decimal.Zero
		if !totalSales.IsZero() {
			pct = agg.total.Div(totalSales).Mul(hundred).Round(1)
		}
		methods = append(methods, dto.PaymentMethodSummary{
			Method:     method,
			Total:      agg.total.Round(2),
			Count:      agg.count,
			Percentage: pct,
		})
	}

	return &dto.PaymentMethodsReportResponse{
		Date:           from.Format("2006-01-02"),
		TotalSales:     totalSales.Round(2),
		TotalOrders:    len(sales),
		PaymentMethods: methods,
	}, nil
}
