package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade-journal-go/internal/config"
	"trade-journal-go/internal/models"
)

func TestNewDatabase_SQLite(t *testing.T) {
	cfg := &config.Database{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "journal.db")}

	db, err := NewDatabase(cfg)
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&models.Trade{}))
	assert.True(t, db.Migrator().HasTable(&models.Transaction{}))
	assert.True(t, db.Migrator().HasColumn(&models.Trade{}, "pnl"))

	// migrating again keeps existing data
	require.NoError(t, db.Create(&models.Transaction{Type: models.Deposit}).Error)
	require.NoError(t, AutoMigrate(db))
	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestNewDatabase_UnknownDriver(t *testing.T) {
	_, err := NewDatabase(&config.Database{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported database driver")
}
