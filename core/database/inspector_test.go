package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE test_items (fingerprint TEXT PRIMARY KEY, amount INTEGER, item_id TEXT)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "test_items")
	assert.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}

	assert.Equal(t, "text", colMap["fingerprint"])
	assert.Equal(t, "integer", colMap["amount"])
	assert.Equal(t, "text", colMap["item_id"])

	// PRAGMA table_info returns an empty result for a missing table
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestMissingColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE item_limits (fingerprint TEXT PRIMARY KEY, min INTEGER)").Error)

	missing, err := MissingColumns(db, "item_limits", []string{"fingerprint", "min", "max"})
	require.NoError(t, err)
	assert.Equal(t, []string{"max"}, missing)

	missing, err = MissingColumns(db, "absent", []string{"fingerprint"})
	require.NoError(t, err)
	assert.Equal(t, []string{"fingerprint"}, missing)
}
