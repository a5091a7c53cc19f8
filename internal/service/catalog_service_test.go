package service

import (
	"testing"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCatalogService(t *testing.T, db *gorm.DB) CatalogService {
	t.Helper()
	require.NoError(t, repository.NewCategoryRepo(db).SeedDefaults())
	return NewCatalogService(
		repository.NewProductRepo(db),
		repository.NewCategoryRepo(db),
		nil,
	)
}

func TestCreateProductRequiresKnownCategory(t *testing.T) {
	db := setupTestDB(t)
	svc := newCatalogService(t, db)

	_, err := svc.CreateProduct(ProductRequest{
		Name:      "Mystery Item",
		Category:  "No Such Category",
		SellPrice: 100,
	}, "u1")
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	product, err := svc.CreateProduct(ProductRequest{
		Name:      "Laptop Sleeve",
		Category:  "Accessories",
		BuyPrice:  800,
		SellPrice: 1500,
		Stock:     5,
		LowStock:  2,
	}, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Laptop Sleeve", product.Name)
}

func TestDeleteProductIsUnconditional(t *testing.T) {
	db := setupTestDB(t)
	svc := newCatalogService(t, db)
	p := seedProduct(t, db, "Old Stock Item", 100, 50)

	// Deletion succeeds even with stock on hand.
	require.NoError(t, svc.DeleteProduct(p.ID))

	_, err := svc.GetProduct(p.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestAddCategoryRejectsDuplicates(t *testing.T) {
	db := setupTestDB(t)
	svc := newCatalogService(t, db)

	_, err := svc.AddCategory("Drones", "u1")
	require.NoError(t, err)

	_, err = svc.AddCategory("Drones", "u1")
	assert.ErrorIs(t, err, ErrDuplicateCategory)
}

func TestDeleteCategoryInUseGuard(t *testing.T) {
	db := setupTestDB(t)
	svc := newCatalogService(t, db)
	seedProduct(t, db, "Cable Tie", 50, 100) // category Accessories

	err := svc.DeleteCategory("Accessories")
	assert.ErrorIs(t, err, ErrCategoryInUse)

	// An unused category deletes fine.
	_, err = svc.AddCategory("Seasonal", "u1")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteCategory("Seasonal"))
	assert.ErrorIs(t, svc.DeleteCategory("Seasonal"), ErrCategoryNotFound)
}

func TestSeedDefaultsKeepsUserCategories(t *testing.T) {
	db := setupTestDB(t)
	categoryRepo := repository.NewCategoryRepo(db)
	require.NoError(t, categoryRepo.SeedDefaults())

	custom := &model.Category{Name: "Refurbished"}
	require.NoError(t, db.Create(custom).Error)

	var before int64
	require.NoError(t, db.Model(&model.Category{}).Count(&before).Error)

	// Re-seeding merges, never duplicates or drops.
	require.NoError(t, categoryRepo.SeedDefaults())

	var after int64
	require.NoError(t, db.Model(&model.Category{}).Count(&after).Error)
	assert.Equal(t, before, after)

	_, err := categoryRepo.FindByName("Refurbished")
	assert.NoError(t, err)
}

func TestIsLowStockBoundary(t *testing.T) {
	p := model.Product{Stock: 2, LowStock: 2}
	assert.True(t, p.IsLowStock())
	p.Stock = 3
	assert.False(t, p.IsLowStock())
	p.Stock = 0
	assert.True(t, p.IsOutOfStock())
}
