package repository_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"app/internal/domain/model"
	infraRepo "app/internal/infra/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TEST_DATABASE_URL が無ければスキップ（CI/ローカルDB前提の実DBテスト）
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Product{}))

	return db
}

func createTestProduct(t *testing.T, db *gorm.DB, stock int64) model.Product {
	t.Helper()

	now := time.Now()
	p := model.Product{
		ID:           uuid.NewString(),
		VendorID:     uuid.NewString(),
		Name:         "decrement-target",
		Stock:        stock,
		CurrentPrice: 1000,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, db.Create(&p).Error)

	t.Cleanup(func() {
		db.Unscoped().Delete(&model.Product{}, "id = ?", p.ID)
	})
	return p
}

// Test: 在庫1に対して2回減算→成功は1回だけ・最終在庫0
func TestInventoryGormRepository_DecreaseStockIfEnough_NoOversell(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	p := createTestProduct(t, db, 1)
	r := infraRepo.NewInventoryGormRepository(db)

	first, err := r.DecreaseStockIfEnough(ctx, p.ID, 1)
	assert.NoError(t, err)
	assert.True(t, first)

	second, err := r.DecreaseStockIfEnough(ctx, p.ID, 1)
	assert.NoError(t, err)
	assert.False(t, second)

	var got model.Product
	require.NoError(t, db.First(&got, "id = ?", p.ID).Error)
	assert.Equal(t, int64(0), got.Stock)
}

// Test: 同時に叩いても売り越さない（条件付きUPDATEの競合確認）
func TestInventoryGormRepository_DecreaseStockIfEnough_Concurrent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	p := createTestProduct(t, db, 1)
	r := infraRepo.NewInventoryGormRepository(db)

	const workers = 8
	results := make([]bool, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, err := r.DecreaseStockIfEnough(ctx, p.ID, 1)
			assert.NoError(t, err)
			results[i] = ok
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, ok := range results {
		if ok {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)

	var got model.Product
	require.NoError(t, db.First(&got, "id = ?", p.ID).Error)
	assert.Equal(t, int64(0), got.Stock)
}

// Test: 要求数が在庫を超えると1行も更新されない
func TestInventoryGormRepository_DecreaseStockIfEnough_QtyAboveStock(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	p := createTestProduct(t, db, 3)
	r := infraRepo.NewInventoryGormRepository(db)

	ok, err := r.DecreaseStockIfEnough(ctx, p.ID, 5)
	assert.NoError(t, err)
	assert.False(t, ok)

	var got model.Product
	require.NoError(t, db.First(&got, "id = ?", p.ID).Error)
	assert.Equal(t, int64(3), got.Stock)
}

// Test: 在庫戻し
func TestInventoryGormRepository_IncreaseStock(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	p := createTestProduct(t, db, 0)
	r := infraRepo.NewInventoryGormRepository(db)

	require.NoError(t, r.IncreaseStock(ctx, p.ID, 2))

	var got model.Product
	require.NoError(t, db.First(&got, "id = ?", p.ID).Error)
	assert.Equal(t, int64(2), got.Stock)
}
