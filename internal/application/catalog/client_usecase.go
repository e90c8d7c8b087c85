package catalog

import (
	"context"
	"regexp"
	"strings"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
	"github.com/jhoicas/facturacion-api/pkg/logger"
)

var taxIDPattern = regexp.MustCompile(`^[0-9]{11}$`)

// ClientUseCase alta y listado de clientes.
type ClientUseCase struct {
	repo repository.ClientRepository
	log  *logger.Logger
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository, log *logger.Logger) *ClientUseCase {
	return &ClientUseCase{repo: repo, log: log.Named("catalog")}
}

// RegisterClient valida el RUC (11 dígitos) y que no exista otro cliente con él.
func (uc *ClientUseCase) RegisterClient(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	taxID := strings.TrimSpace(in.TaxID)
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput.WithDetail("nombre requerido")
	}
	if !taxIDPattern.MatchString(taxID) {
		return nil, domain.ErrInvalidTaxID
	}

	existing, err := uc.repo.GetByTaxID(ctx, taxID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateTaxID
	}

	client := &entity.Client{
		TaxID:   taxID,
		Name:    name,
		Address: strings.TrimSpace(in.Address),
		Phone:   strings.TrimSpace(in.Phone),
		Email:   strings.TrimSpace(in.Email),
	}
	// Dos altas simultáneas con el mismo RUC: el UNIQUE del store responde ErrDuplicateTaxID.
	if err := uc.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("client_id", client.ID).Str("tax_id", client.TaxID).Msg("cliente registrado")
	return toClientResponse(client), nil
}

// ListClients devuelve los clientes ordenados por nombre.
func (uc *ClientUseCase) ListClients(ctx context.Context) ([]dto.ClientResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toClientResponse(c))
	}
	return out, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:        c.ID,
		TaxID:     c.TaxID,
		Name:      c.Name,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
	}
}
