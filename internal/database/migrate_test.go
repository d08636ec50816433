package database

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrationsEmbedded(t *testing.T) {
	migrations, err := loadMigrations(migrationFiles)
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	assert.Equal(t, 1, migrations[0].Version)
	assert.Equal(t, "001_documents", migrations[0].Name)
	assert.Contains(t, migrations[0].SQL, "CREATE TABLE IF NOT EXISTS documents")
}

func TestLoadMigrationsOrdersByVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/010_later.up.sql": {Data: []byte("SELECT 10")},
		"migrations/002_next.up.sql":  {Data: []byte("SELECT 2")},
		"migrations/001_first.up.sql": {Data: []byte("SELECT 1")},
		"migrations/README.md":        {Data: []byte("ignored")},
	}

	migrations, err := loadMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, migrations, 3)
	assert.Equal(t, []int{1, 2, 10}, []int{migrations[0].Version, migrations[1].Version, migrations[2].Version})
}

func TestLoadMigrationsRejectsBadNames(t *testing.T) {
	tests := map[string]fstest.MapFS{
		"no prefix":   {"migrations/documents.up.sql": {Data: []byte("x")}},
		"not numeric": {"migrations/abc_documents.up.sql": {Data: []byte("x")}},
		"duplicate": {
			"migrations/001_a.up.sql": {Data: []byte("x")},
			"migrations/1_b.up.sql":   {Data: []byte("y")},
		},
	}

	for name, fsys := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := loadMigrations(fsys)
			require.Error(t, err)
		})
	}
}
