package migrations_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qcharged/product-service/database/migrations"
	"github.com/qcharged/product-service/pkg/testkit"
)

func TestDescriptionKeyBackfill(t *testing.T) {
	db := testkit.OpenDB(t, nil)

	require.NoError(t, db.Exec(`CREATE TABLE products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name VARCHAR(100) NOT NULL,
		name_key VARCHAR(100) NOT NULL,
		description VARCHAR(500),
		price DECIMAL(19,2) NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO products (name, name_key, description, price, created_at, updated_at)
		VALUES ('Éclair', 'éclair', 'CRÈME Pâtissière', 4.5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`).Error)

	m := &migrations.AddProductsDescriptionKey{}
	require.NoError(t, m.Up(db))

	var key string
	require.NoError(t, db.Raw(`SELECT description_key FROM products WHERE name_key = ?`, "éclair").Scan(&key).Error)
	assert.Equal(t, "crème pâtissière", key)

	require.NoError(t, m.Up(db), "re-running is harmless")

	require.NoError(t, m.Down(db))
	assert.False(t, db.Migrator().HasColumn("products", "description_key"))
}
