package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/obispoem/pdv-simple/internal/infra"
	"github.com/obispoem/pdv-simple/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReceiptWorker renders a PDF receipt for a committed sale. Receipt
// generation is deliberately outside the sale transaction: a failed render
// never blocks or rolls back a checkout.
type ReceiptWorker struct {
	saleRepo    repository.SaleRepository
	storagePath string
}

func NewReceiptWorker(saleRepo repository.SaleRepository, storagePath string) *ReceiptWorker {
	return &ReceiptWorker{saleRepo: saleRepo, storagePath: storagePath}
}

func (w *ReceiptWorker) Process(ctx context.Context, payload json.RawMessage) error {
	var p ReceiptPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("receipt: decode payload: %w", err)
	}
	id, err := uuid.Parse(p.SaleID)
	if err != nil {
		return fmt.Errorf("receipt: invalid sale id %q: %w", p.SaleID, err)
	}

	sale, err := w.saleRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("receipt: load sale %s: %w", p.SaleID, err)
	}

	path, err := infra.GenerateReceiptPDF(sale, w.storagePath)
	if err != nil {
		return err
	}

	log.Info().Str("sale_id", p.SaleID).Str("path", path).Msg("receipt generated")
	return nil
}
