package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railway_station/configs"
	"github.com/railway_station/internal/models"
)

func TestOpenSQLiteCreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "railway.db")
	gdb, err := Open(configs.DatabaseConfig{Driver: DriverSQLite, SQLitePath: path, LogLevel: "silent"})
	require.NoError(t, err)

	assert.True(t, gdb.Migrator().HasTable(&models.Train{}))
	assert.True(t, gdb.Migrator().HasTable(&models.User{}))
	assert.True(t, gdb.Migrator().HasIndex(&models.Train{}, "Number"))

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(configs.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestEmbeddedMigrationsPresent(t *testing.T) {
	entries, err := migrationFiles.ReadDir("migrations")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
