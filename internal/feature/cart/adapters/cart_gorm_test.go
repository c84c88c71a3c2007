package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"catalog_backend/internal/feature/cart/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&entity.CartItem{}), "failed to migrate table")
	// products is owned by the product feature.
	require.NoError(t, db.Exec(`CREATE TABLE products (id TEXT PRIMARY KEY, name TEXT NOT NULL, deleted_at DATETIME)`).Error)
	return db
}

func TestCartGorm_Add_Upsert(t *testing.T) {
	ctx := context.Background()
	repo := NewCartGorm(setupTestDB(t))
	userID, productID := uuid.New(), uuid.New()

	first, err := repo.Add(ctx, userID, productID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Quantity)

	time.Sleep(2 * time.Millisecond)
	second, err := repo.Add(ctx, userID, productID, 3)
	require.NoError(t, err)

	assert.Equal(t, 5, second.Quantity)
	assert.Equal(t, first.ID, second.ID, "the existing row is updated, not duplicated")
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt), "updated_at is refreshed")

	items, err := repo.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestCartGorm_Add_ScopedPerUser(t *testing.T) {
	ctx := context.Background()
	repo := NewCartGorm(setupTestDB(t))
	alice, bob, productID := uuid.New(), uuid.New(), uuid.New()

	_, err := repo.Add(ctx, alice, productID, 1)
	require.NoError(t, err)
	_, err = repo.Add(ctx, bob, productID, 4)
	require.NoError(t, err)

	aliceItems, err := repo.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, aliceItems, 1)
	assert.Equal(t, 1, aliceItems[0].Quantity)

	bobItems, err := repo.List(ctx, bob)
	require.NoError(t, err)
	require.Len(t, bobItems, 1)
	assert.Equal(t, 4, bobItems[0].Quantity)
}

func TestCartGorm_List_OldestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewCartGorm(setupTestDB(t))
	userID := uuid.New()

	var want []uuid.UUID
	for range 3 {
		productID := uuid.New()
		_, err := repo.Add(ctx, userID, productID, 1)
		require.NoError(t, err)
		want = append(want, productID)
		time.Sleep(2 * time.Millisecond)
	}

	items, err := repo.List(ctx, userID)
	require.NoError(t, err)

	got := make([]uuid.UUID, len(items))
	for i, it := range items {
		got[i] = it.ProductID
	}
	assert.Equal(t, want, got)

	t.Run("empty cart", func(t *testing.T) {
		items, err := repo.List(ctx, uuid.New())
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})
}

func TestCartGorm_Remove(t *testing.T) {
	ctx := context.Background()
	repo := NewCartGorm(setupTestDB(t))
	userID, productID := uuid.New(), uuid.New()
	_, err := repo.Add(ctx, userID, productID, 1)
	require.NoError(t, err)

	n, err := repo.Remove(ctx, uuid.New(), productID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n, "another user's line is untouched")

	n, err = repo.Remove(ctx, userID, productID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.Remove(ctx, userID, productID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestCartGorm_ProductLive(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewCartGorm(db)

	live, deleted := uuid.New(), uuid.New()
	require.NoError(t, db.Exec(`INSERT INTO products (id, name) VALUES (?, ?)`, live, "Shoe").Error)
	require.NoError(t, db.Exec(`INSERT INTO products (id, name, deleted_at) VALUES (?, ?, ?)`, deleted, "Hat", time.Now()).Error)

	tests := []struct {
		name string
		id   uuid.UUID
		want bool
	}{
		{"live product", live, true},
		{"soft-deleted product", deleted, false},
		{"unknown product", uuid.New(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := repo.ProductLive(ctx, tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}
