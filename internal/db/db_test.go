package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "invoicer.db")

	d, err := Open(path, "s3cret&key")
	require.NoError(t, err)
	require.NoError(t, d.RunMigrations())
	// Idempotent
	require.NoError(t, d.RunMigrations())

	var version int
	require.NoError(t, d.QueryRow("SELECT MAX(version) FROM schema_version").Scan(&version))
	assert.Equal(t, len(migrations), version)

	for _, table := range []string{"settings", "clients", "invoice_history"} {
		var name string
		err := d.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, table)
	}
	require.NoError(t, d.Close())
}

func TestOpen_WrongKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoicer.db")

	d, err := Open(path, "right")
	require.NoError(t, err)
	require.NoError(t, d.RunMigrations())
	require.NoError(t, d.Close())

	_, err = Open(path, "wrong")
	assert.Error(t, err)
}
