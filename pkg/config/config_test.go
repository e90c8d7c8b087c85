package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StoreMemory, cfg.DB.Driver)
	assert.Equal(t, "FACT", cfg.Billing.InvoicePrefix)
	assert.Equal(t, "S/.", cfg.Billing.CurrencySymbol)
	assert.False(t, cfg.Billing.AllowPriceOverride)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("BILLING_INVOICE_PREFIX", "F001")
	t.Setenv("BILLING_ALLOW_PRICE_OVERRIDE", "true")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("ADMIN_REGISTRATION_KEY", "clave")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "F001", cfg.Billing.InvoicePrefix)
	assert.True(t, cfg.Billing.AllowPriceOverride)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.Equal(t, "clave", cfg.Auth.AdminRegistrationKey)
}

func TestLoad_DriverDesconocido(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mysql")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDSN_EscapaContraseña(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "facturacion", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/facturacion?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
