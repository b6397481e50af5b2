package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-kiosk-demo/config"
	"pos-kiosk-demo/internal/model"
)

func TestDialector(t *testing.T) {
	_, err := Dialector(&config.StoreConfig{Driver: "postgres"})
	assert.Error(t, err, "postgres needs a dsn")

	_, err = Dialector(&config.StoreConfig{Driver: "bolt"})
	assert.Error(t, err)

	d, err := Dialector(&config.StoreConfig{Driver: "postgres", DSN: "host=localhost"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	d, err = Dialector(&config.StoreConfig{Driver: "sqlite", DSN: "x.sqlite"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())
}

func TestInit_SQLiteMigrates(t *testing.T) {
	gormDB, err := Init(&config.StoreConfig{
		Driver:       "sqlite",
		DSN:          filepath.Join(t.TempDir(), "kiosk.sqlite"),
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.True(t, gormDB.Migrator().HasTable(&model.Session{}))
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}
