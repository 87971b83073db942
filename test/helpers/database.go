package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andrescamacho/annocalc-go/internal/infrastructure/database"
)

// NewTestDB opens an in-memory SQLite catalog store with the goods, buildings
// and modifiers tables already migrated. The connection is closed when the
// test ends, so every test starts from an empty catalog.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewTestConnection()
	require.NoError(t, err, "open in-memory catalog store")
	t.Cleanup(func() { database.Close(db) })

	return db
}
