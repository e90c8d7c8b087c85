// seed carga los clientes y productos de demostración en PostgreSQL pasando por los
// casos de uso del catálogo (mismas validaciones que el API). Los registros que ya
// existen se saltan, así que puede ejecutarse varias veces.
//
// Uso: go run ./cmd/seed [--stock 20]
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	"github.com/jhoicas/facturacion-api/internal/application/catalog"
	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/facturacion-api/pkg/config"
	"github.com/jhoicas/facturacion-api/pkg/logger"
)

// Los clientes de demostración no traían RUC; se arma con "10" + teléfono.
var demoClients = []dto.CreateClientRequest{
	{Name: "Juan Pérez", Address: "Av. Siempre Viva 742", Phone: "987654321", Email: "juan.perez@example.com"},
	{Name: "María García", Address: "Calle Falsa 123", Phone: "987654322", Email: "maria.garcia@example.com"},
	{Name: "Carlos Sánchez", Address: "Av. Los Álamos 456", Phone: "987654323", Email: "carlos.sanchez@example.com"},
	{Name: "Ana López", Address: "Calle de la Rosa 789", Phone: "987654324", Email: "ana.lopez@example.com"},
	{Name: "Luis Martínez", Address: "Av. del Sol 101", Phone: "987654325", Email: "luis.martinez@example.com"},
	{Name: "Laura Fernández", Address: "Calle Luna 202", Phone: "987654326", Email: "laura.fernandez@example.com"},
	{Name: "Pedro Gómez", Address: "Av. Estrella 303", Phone: "987654327", Email: "pedro.gomez@example.com"},
	{Name: "Sofía Torres", Address: "Calle Mar 404", Phone: "987654328", Email: "sofia.torres@example.com"},
	{Name: "Miguel Díaz", Address: "Av. Río 505", Phone: "987654329", Email: "miguel.diaz@example.com"},
	{Name: "Lucía Romero", Address: "Calle Montaña 606", Phone: "987654330", Email: "lucia.romero@example.com"},
}

var demoProducts = []struct {
	name, description, price string
}{
	{"Laptop HP", "Laptop HP con procesador Intel i5 y 8GB de RAM", "750.00"},
	{"Smartphone Samsung", "Smartphone Samsung Galaxy S21", "999.99"},
	{"Monitor LG", "Monitor LG de 24 pulgadas Full HD", "150.00"},
	{"Teclado Mecánico", "Teclado mecánico con switches Cherry MX Blue", "85.50"},
	{"Mouse Inalámbrico", "Mouse inalámbrico Logitech MX Master 3", "99.99"},
	{"Impresora Canon", "Impresora multifuncional Canon Pixma", "120.00"},
	{"Tablet Apple", "Tablet Apple iPad Pro 11 pulgadas", "799.00"},
	{"Auriculares Sony", "Auriculares inalámbricos Sony WH-1000XM4", "350.00"},
	{"Cámara Nikon", "Cámara réflex Nikon D3500", "450.00"},
	{"Disco Duro Externo", "Disco duro externo Seagate 2TB", "70.00"},
}

func main() {
	stock := pflag.Int64("stock", 0, "stock inicial de cada producto")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("seed")

	if cfg.DB.Driver != config.StorePostgres {
		log.Fatal().Str("store", cfg.DB.Driver).Msg("el seed sólo aplica a STORE_DRIVER=postgres")
	}
	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	clientUC := catalog.NewClientUseCase(postgres.NewClientRepository(pool), log)
	productUC := catalog.NewProductUseCase(postgres.NewProductRepository(pool), postgres.NewTxRunner(pool), log)

	var created, skipped int
	for _, c := range demoClients {
		c.TaxID = "10" + c.Phone
		_, err := clientUC.RegisterClient(ctx, c)
		switch {
		case err == nil:
			created++
		case domain.KindOf(err) == domain.KindConflict:
			skipped++
		default:
			log.Fatal().Err(err).Str("client", c.Name).Msg("insertar cliente")
		}
	}

	for _, p := range demoProducts {
		_, err := productUC.CreateProduct(ctx, dto.CreateProductRequest{
			Name:        p.name,
			Description: p.description,
			Price:       decimal.RequireFromString(p.price),
			Stock:       *stock,
		})
		switch {
		case err == nil:
			created++
		case domain.KindOf(err) == domain.KindConflict:
			skipped++
		default:
			log.Fatal().Err(err).Str("product", p.name).Msg("insertar producto")
		}
	}

	log.Info().Int("created", created).Int("skipped", skipped).Msg("datos de demostración cargados")
}
