package service

import (
	"context"
	"time"

	"github.com/obispoem/pdv-simple/internal/dto"
	"github.com/obispoem/pdv-simple/internal/model"
	"github.com/obispoem/pdv-simple/internal/repository"
	"github.com/obispoem/pdv-simple/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleService interface {
	Create(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
}

type saleService struct {
	repo        repository.SaleRepository
	productRepo repository.ProductRepository
	dispatcher  *worker.Dispatcher
}

func NewSaleService(
	repo repository.SaleRepository,
	productRepo repository.ProductRepository,
	dispatcher *worker.Dispatcher,
) SaleService {
	return &saleService{
		repo:        repo,
		productRepo: productRepo,
		dispatcher:  dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Create ────────────────────────────────────────────────────────────────────
// Checkout is all-or-nothing at the basket granularity:
//   1. Resolve every line: product must exist and be active, stock must cover
//      the quantity, unit price is snapshotted at this instant.
//   2. BEGIN TX: create sale + items, then conditionally decrement stock per
//      line ("stock = stock - q WHERE stock >= q"). Zero rows affected means
//      a concurrent checkout consumed the stock after the pre-flight check;
//      the whole transaction rolls back.
//   3. COMMIT, then best-effort enqueue of the async receipt job.

func (s *saleService) Create(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	type resolvedItem struct {
		productID uuid.UUID
		name      string
		price     decimal.Decimal
		quantity  int
	}

	if len(req.Items) == 0 {
		return nil, &InvalidInputError{Field: "items", Reason: "must contain at least one line"}
	}

	var resolved []resolvedItem
	total := decimal.Zero

	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, &InvalidInputError{Field: "product_id", Reason: err.Error()}
		}
		if item.Quantity < 1 {
			return nil, &InvalidInputError{Field: "quantity", Reason: "must be at least 1"}
		}
		p, err := s.productRepo.FindByID(ctx, pid)
		if err != nil || !p.Active {
			return nil, &NotFoundError{Resource: "product", ID: item.ProductID}
		}
		if p.Stock < item.Quantity {
			return nil, &InsufficientStockError{
				ProductName: p.Name,
				Requested:   item.Quantity,
				Available:   p.Stock,
			}
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		resolved = append(resolved, resolvedItem{
			productID: pid,
			name:      p.Name,
			price:     p.Price,
			quantity:  item.Quantity,
		})
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = model.PaymentCash
	}

	var sale model.Sale
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		sale = model.Sale{
			Total:         total,
			PaymentMethod: paymentMethod,
		}
		for _, r := range resolved {
			sale.Items = append(sale.Items, model.SaleItem{
				ProductID: r.productID,
				Quantity:  r.quantity,
				Price:     r.price,
			})
		}

		if err := s.repo.Create(ctx, tx, &sale); err != nil {
			return err
		}

		// Conditional decrement per line — this, not the pre-flight check
		// above, is what keeps stock non-negative under concurrent checkout.
		for _, r := range resolved {
			applied, err := s.productRepo.DecrementStockTx(tx, r.productID, r.quantity)
			if err != nil {
				return err
			}
			if !applied {
				// Zero rows has two causes: a concurrent checkout drained the
				// stock, or the product was deactivated after the pre-flight
				// read. Re-read to report the right one.
				p, ferr := s.productRepo.FindByIDTx(tx, r.productID)
				if ferr != nil || !p.Active {
					return &NotFoundError{Resource: "product", ID: r.productID.String()}
				}
				return &InsufficientStockError{
					ProductName: r.name,
					Requested:   r.quantity,
					Available:   p.Stock,
				}
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Receipt generation is async and best-effort; the sale is committed.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueReceipt(ctx, worker.ReceiptPayload{SaleID: sale.ID.String()})
	}

	resp := saleToResponse(&sale)
	for i, r := range resolved {
		resp.Items[i].ProductName = r.name
	}
	return resp, nil
}

// ── Reads ─────────────────────────────────────────────────────────────────────

func (s *saleService) Get(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, &NotFoundError{Resource: "sale", ID: id.String()}
	}
	return saleToResponse(sale), nil
}

func (s *saleService) List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		items = append(items, *saleToResponse(&sales[i]))
	}
	return &dto.SaleListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// isoTime renders a timestamp in UTC RFC 3339, the wire format for every
// response DTO. Instants are stored in server-local time; converting here
// keeps the "Z" suffix honest.
func isoTime(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func saleToResponse(s *model.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		items = append(items, dto.SaleItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: name,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}
	return &dto.SaleResponse{
		ID:            s.ID.String(),
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		Items:         items,
		CreatedAt:     isoTime(s.CreatedAt),
	}
}
