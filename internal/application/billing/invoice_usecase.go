package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/invoice"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
	"github.com/jhoicas/facturacion-api/pkg/logger"
)

// InvoiceUseCase flujo de vida de la factura: crear, editar, eliminar, consultar y buscar.
// Toda escritura corre en una sola transacción del BillingTxRunner.
type InvoiceUseCase struct {
	txRunner    BillingTxRunner
	invoiceRepo repository.InvoiceRepository
	cfg         Config
	log         *logger.Logger
	recorder    OperationRecorder
}

// NewInvoiceUseCase construye el caso de uso. invoiceRepo se usa para las lecturas fuera de tx.
func NewInvoiceUseCase(
	txRunner BillingTxRunner,
	invoiceRepo repository.InvoiceRepository,
	cfg Config,
	log *logger.Logger,
	recorder OperationRecorder,
) *InvoiceUseCase {
	if cfg.InvoicePrefix == "" {
		cfg.InvoicePrefix = invoice.DefaultPrefix
	}
	return &InvoiceUseCase{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		cfg:         cfg,
		log:         log.Named("billing"),
		recorder:    recorder,
	}
}

// requestedLine línea tal como llega, antes de valorizar.
type requestedLine struct {
	productID int64
	quantity  int64
	override  *decimal.Decimal
}

// CreateInvoice valida cliente, productos y stock, toma el siguiente número, guarda
// cabecera y líneas y descuenta el stock. Cualquier error deshace todo; el número
// tomado no se reutiliza.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, in dto.CreateInvoiceRequest) (_ *dto.InvoiceCreatedResponse, err error) {
	start := time.Now()
	defer func() { uc.observe(OpCreate, start, err) }()

	req := make([]requestedLine, 0, len(in.Items))
	for _, it := range in.Items {
		req = append(req, requestedLine{productID: it.ProductID, quantity: it.Quantity})
	}

	var created *entity.Invoice
	err = uc.txRunner.RunBilling(ctx, func(
		clientRepo repository.ClientRepository,
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		if err := uc.requireClient(ctx, clientRepo, in.ClientID); err != nil {
			return err
		}
		lines, err := uc.priceLines(ctx, productRepo, req, true)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrEmptyInvoice
		}

		seq, err := invoiceRepo.NextNumber(ctx)
		if err != nil {
			return err
		}
		inv := &entity.Invoice{
			Number:   invoice.FormatNumber(uc.cfg.InvoicePrefix, seq),
			ClientID: in.ClientID,
			Total:    invoice.Total(lines),
		}
		if err := invoiceRepo.Create(ctx, inv); err != nil {
			return err
		}
		if err := insertLines(ctx, invoiceRepo, inv.ID, lines); err != nil {
			return err
		}
		for _, d := range invoice.StockDemands(lines) {
			if err := productRepo.DecrementStock(ctx, d.ProductID, d.Quantity); err != nil {
				return err
			}
		}
		created = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("invoice_id", created.ID).
		Str("number", created.Number).
		Str("total", created.Total.StringFixed(2)).
		Msg("factura creada")
	return &dto.InvoiceCreatedResponse{ID: created.ID, Number: created.Number, Total: created.Total}, nil
}

// UpdateInvoice reemplaza cliente y líneas y recalcula el total. No toca el stock.
func (uc *InvoiceUseCase) UpdateInvoice(ctx context.Context, id int64, in dto.UpdateInvoiceRequest) (_ *dto.InvoiceCreatedResponse, err error) {
	start := time.Now()
	defer func() { uc.observe(OpEdit, start, err) }()

	req := make([]requestedLine, 0, len(in.Items))
	for _, it := range in.Items {
		req = append(req, requestedLine{productID: it.ProductID, quantity: it.Quantity, override: it.UnitPrice})
	}

	var updated *entity.Invoice
	err = uc.txRunner.RunBilling(ctx, func(
		clientRepo repository.ClientRepository,
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		inv, err := invoiceRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrInvoiceNotFound.WithDetail("id %d", id)
		}
		if err := uc.requireClient(ctx, clientRepo, in.ClientID); err != nil {
			return err
		}
		lines, err := uc.priceLines(ctx, productRepo, req, false)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrEmptyInvoice
		}

		inv.ClientID = in.ClientID
		inv.Total = invoice.Total(lines)
		if err := invoiceRepo.UpdateHeader(ctx, inv); err != nil {
			return err
		}
		if _, err := invoiceRepo.DeleteItems(ctx, inv.ID); err != nil {
			return err
		}
		if err := insertLines(ctx, invoiceRepo, inv.ID, lines); err != nil {
			return err
		}
		updated = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("invoice_id", updated.ID).
		Str("total", updated.Total.StringFixed(2)).
		Msg("factura actualizada")
	return &dto.InvoiceCreatedResponse{ID: updated.ID, Number: updated.Number, Total: updated.Total}, nil
}

// DeleteInvoice borra líneas y cabecera en una transacción. El stock no se repone.
func (uc *InvoiceUseCase) DeleteInvoice(ctx context.Context, id int64) (err error) {
	start := time.Now()
	defer func() { uc.observe(OpDelete, start, err) }()

	err = uc.txRunner.RunBilling(ctx, func(
		_ repository.ClientRepository,
		_ repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		if _, err := invoiceRepo.DeleteItems(ctx, id); err != nil {
			return err
		}
		n, err := invoiceRepo.Delete(ctx, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrInvoiceNotFound.WithDetail("id %d", id)
		}
		return nil
	})
	if err != nil {
		return err
	}
	uc.log.Info().Int64("invoice_id", id).Msg("factura eliminada")
	return nil
}

func (uc *InvoiceUseCase) requireClient(ctx context.Context, clientRepo repository.ClientRepository, id int64) error {
	if id <= 0 {
		return domain.ErrClientNotFound.WithDetail("id %d", id)
	}
	c, err := clientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrClientNotFound.WithDetail("id %d", id)
	}
	return nil
}

// priceLines valida y valoriza las líneas. Con checkStock las cantidades de un mismo
// producto se acumulan antes de compararlas con el stock disponible.
func (uc *InvoiceUseCase) priceLines(ctx context.Context, productRepo repository.ProductRepository, req []requestedLine, checkStock bool) ([]invoice.Line, error) {
	lines := make([]invoice.Line, 0, len(req))
	requested := make(map[int64]int64)
	for _, r := range req {
		if r.productID == 0 || r.quantity == 0 {
			continue
		}
		if r.productID < 0 || r.quantity < 0 || r.quantity > invoice.MaxQuantity {
			return nil, domain.ErrInvalidInput.WithDetail("producto %d cantidad %d", r.productID, r.quantity)
		}
		p, err := productRepo.GetByID(ctx, r.productID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrProductNotFound.WithDetail("id %d", r.productID)
		}
		if checkStock {
			requested[p.ID] += r.quantity
			if requested[p.ID] > p.Stock {
				return nil, domain.ErrInsufficientStock.WithDetail("%s: disponible %d, solicitado %d", p.Name, p.Stock, requested[p.ID])
			}
		}
		price := p.Price
		if r.override != nil && uc.cfg.AllowPriceOverride {
			price = r.override.Round(2)
			if !invoice.ValidPrice(price) {
				return nil, domain.ErrInvalidPrice.WithDetail("producto %d: %s", p.ID, r.override.String())
			}
		}
		lines = append(lines, invoice.NewLine(p.ID, r.quantity, price))
	}
	if err := invoice.CheckAmounts(lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func insertLines(ctx context.Context, invoiceRepo repository.InvoiceRepository, invoiceID int64, lines []invoice.Line) error {
	for _, l := range lines {
		item := &entity.InvoiceItem{
			InvoiceID: invoiceID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
		}
		if err := invoiceRepo.CreateItem(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

func (uc *InvoiceUseCase) observe(op string, start time.Time, err error) {
	kind := domain.KindOf(err)
	if uc.recorder != nil {
		uc.recorder.ObserveInvoiceOperation(op, kind, time.Since(start))
	}
	if err != nil && kind != domain.KindInfrastructure {
		uc.log.Debug().Str("operation", op).Str("kind", string(kind)).Err(err).Msg("operación rechazada")
	}
}
