package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_CatalogConfig(t *testing.T) {
	os.Setenv("CATALOG_DEFAULT_PAGE_SIZE", "24")
	os.Setenv("CATALOG_HOLD_SECONDS", "300")
	defer func() {
		os.Unsetenv("CATALOG_DEFAULT_PAGE_SIZE")
		os.Unsetenv("CATALOG_HOLD_SECONDS")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, 24, cfg.Catalog.DefaultPageSize)
	assert.Equal(t, 300, cfg.Catalog.HoldSeconds)
}

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("CATALOG_DEFAULT_PAGE_SIZE")
	os.Unsetenv("TYPESENSE_URL")
	os.Unsetenv("DB_NAME")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, 12, cfg.Catalog.DefaultPageSize)
	assert.Equal(t, "http://localhost:8108", cfg.Typesense.URL)
	assert.Equal(t, "travelbook", cfg.Database.Database)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	os.Setenv("SERVER_PORT", "not-a-port")
	defer os.Unsetenv("SERVER_PORT")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}
