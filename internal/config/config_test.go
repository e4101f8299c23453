package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 8084, cfg.Server.Port)
	assert.Equal(t, 0.05, cfg.Pricing.TaxRate)
	assert.Equal(t, 40.0, cfg.Pricing.DeliveryFee)
	assert.Equal(t, "₹", cfg.Pricing.CurrencySymbol)
	assert.True(t, cfg.Features.EnableCartPersistence)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("PRICING_TAX_RATE", "0.18")
	t.Setenv("PRICING_CURRENCY_SYMBOL", "$")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("FEATURE_CART_EVENTS", "false")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 0.18, cfg.Pricing.TaxRate)
	assert.Equal(t, "$", cfg.Pricing.CurrencySymbol)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.False(t, cfg.Features.EnableCartEvents)
}

func TestConnectionString(t *testing.T) {
	d := DatabaseConfig{
		Host: "db", Port: 5432, User: "u", Password: "p", Name: "catalog", SSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=catalog sslmode=disable", d.ConnectionString())
}
