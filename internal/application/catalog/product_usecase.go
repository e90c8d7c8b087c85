package catalog

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/invoice"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
	"github.com/jhoicas/facturacion-api/pkg/logger"
)

// ProductUseCase catálogo de productos y ajuste de stock.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner StockTxRunner
	log      *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, txRunner StockTxRunner, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner, log: log.Named("catalog")}
}

// CreateProduct crea un producto. El nombre es único sin distinguir mayúsculas.
func (uc *ProductUseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput.WithDetail("nombre requerido")
	}
	price := in.Price.Round(2)
	if !invoice.ValidPrice(price) {
		return nil, domain.ErrInvalidPrice.WithDetail("%s", in.Price.String())
	}
	if !invoice.ValidStock(in.Stock) {
		return nil, domain.ErrInvalidStock.WithDetail("%d", in.Stock)
	}

	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateProduct
	}

	product := &entity.Product{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       price,
		Stock:       in.Stock,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("product_id", product.ID).Str("name", product.Name).Msg("producto creado")
	return toProductResponse(product), nil
}

// GetProduct obtiene un producto por ID.
func (uc *ProductUseCase) GetProduct(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound.WithDetail("id %d", id)
	}
	return toProductResponse(p), nil
}

// ListProducts devuelve el catálogo ordenado por nombre.
func (uc *ProductUseCase) ListProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// AdjustStock fija el stock de varios productos. Cada entrada se valida por separado:
// las inválidas o de productos inexistentes se devuelven como aviso y el resto se
// confirma junto en una transacción. Un error de infraestructura aborta todo el lote.
func (uc *ProductUseCase) AdjustStock(ctx context.Context, in dto.StockAdjustmentRequest) (*dto.StockAdjustmentResponse, error) {
	keys := make([]string, 0, len(in.Stock))
	for k := range in.Stock {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	res := &dto.StockAdjustmentResponse{
		Applied:  make([]dto.StockAppliedEntry, 0, len(keys)),
		Warnings: make([]dto.StockWarning, 0),
	}
	type entry struct {
		key   string
		id    int64
		stock int64
	}
	var valid []entry
	for _, k := range keys {
		raw := in.Stock[k]
		id, err := invoice.ParseID(k)
		if err != nil {
			res.Warnings = append(res.Warnings, uc.warn(k, raw, err))
			continue
		}
		stock, err := invoice.ParseStockValue(raw)
		if err != nil {
			res.Warnings = append(res.Warnings, uc.warn(k, raw, err))
			continue
		}
		valid = append(valid, entry{key: k, id: id, stock: stock})
	}

	if len(valid) > 0 {
		var applied []dto.StockAppliedEntry
		var warnings []dto.StockWarning
		err := uc.txRunner.RunStock(ctx, func(productRepo repository.ProductRepository) error {
			applied, warnings = applied[:0], warnings[:0]
			for _, e := range valid {
				err := productRepo.SetStock(ctx, e.id, e.stock)
				if errors.Is(err, domain.ErrProductNotFound) {
					warnings = append(warnings, uc.warn(e.key, in.Stock[e.key], err))
					continue
				}
				if err != nil {
					return err
				}
				applied = append(applied, dto.StockAppliedEntry{ProductID: e.id, Stock: e.stock})
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		res.Applied = append(res.Applied, applied...)
		res.Warnings = append(res.Warnings, warnings...)
	}

	uc.log.Info().Int("applied", len(res.Applied)).Int("warnings", len(res.Warnings)).Msg("ajuste de stock")
	return res, nil
}

func (uc *ProductUseCase) warn(key, raw string, err error) dto.StockWarning {
	w := dto.StockWarning{Key: key, Value: raw, Code: "INVALID", Message: err.Error()}
	var de *domain.Error
	if errors.As(err, &de) {
		w.Code = de.Code
		w.Message = de.Message
	}
	uc.log.Warn().Str("product_id", key).Str("value", raw).Str("code", w.Code).Msg("entrada de stock rechazada")
	return w
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
