package productcontroller

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/sellerhub/marketplace-api/models"
	"github.com/sellerhub/marketplace-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{Email: email, Password: "hashed", Name: email, IsEmailVerified: true}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func TestCreateProduct(t *testing.T) {
	db := setupTestDB(t)
	seller := createUser(t, db, "seller@example.com")

	product, err := Create(db, seller.ID, CreateProductRequest{
		Name:       "Tomatoes",
		Categories: "vegetables",
		Price:      12.5,
		Quantity:   40,
		Unit:       "kg",
		Images:     []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, product.ID)
	assert.Equal(t, seller.ID, product.CreatorID)
	assert.Equal(t, models.ProductStatusActive, product.Status)
	assert.Equal(t, "https://cdn.example.com/a.jpg,https://cdn.example.com/b.jpg", product.Images)
}

func TestGetProductLoadsCreatorPreview(t *testing.T) {
	db := setupTestDB(t)
	seller := createUser(t, db, "seller@example.com")

	created, err := Create(db, seller.ID, CreateProductRequest{Name: "Onions", Price: 5})
	require.NoError(t, err)

	product, err := Get(db, created.ID)
	require.NoError(t, err)
	require.NotNil(t, product.Creator)
	assert.Equal(t, seller.ID, product.Creator.ID)
	assert.Empty(t, product.Creator.Password)
}

func TestGetProductUnknown(t *testing.T) {
	db := setupTestDB(t)

	_, err := Get(db, "missing")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestListByCreator(t *testing.T) {
	db := setupTestDB(t)
	sellerA := createUser(t, db, "a@example.com")
	sellerB := createUser(t, db, "b@example.com")

	_, err := Create(db, sellerA.ID, CreateProductRequest{Name: "Tomatoes", Price: 10})
	require.NoError(t, err)
	_, err = Create(db, sellerB.ID, CreateProductRequest{Name: "Onions", Price: 5})
	require.NoError(t, err)

	products, err := ListByCreator(db, sellerA.ID)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Tomatoes", products[0].Name)
}

func TestUpdateProductPartialPatch(t *testing.T) {
	db := setupTestDB(t)
	seller := createUser(t, db, "seller@example.com")

	created, err := Create(db, seller.ID, CreateProductRequest{Name: "Rice", Price: 10, Quantity: 100})
	require.NoError(t, err)

	price := 11.5
	status := models.ProductStatusInactive
	updated, err := Update(db, created.ID, seller.ID, UpdateProductRequest{Price: &price, Status: &status})
	require.NoError(t, err)

	assert.Equal(t, 11.5, updated.Price)
	assert.Equal(t, models.ProductStatusInactive, updated.Status)
	assert.Equal(t, "Rice", updated.Name)
	assert.Equal(t, 100, updated.Quantity)
}

func TestUpdateProductValidation(t *testing.T) {
	db := setupTestDB(t)
	seller := createUser(t, db, "seller@example.com")

	created, err := Create(db, seller.ID, CreateProductRequest{Name: "Rice", Price: 10})
	require.NoError(t, err)

	badPrice := 0.0
	_, err = Update(db, created.ID, seller.ID, UpdateProductRequest{Price: &badPrice})
	assert.ErrorIs(t, err, utils.ErrBadRequest)

	badStatus := models.ProductStatus("Hidden")
	_, err = Update(db, created.ID, seller.ID, UpdateProductRequest{Status: &badStatus})
	assert.ErrorIs(t, err, utils.ErrBadRequest)
}

func TestUpdateProductRejectsForeignListing(t *testing.T) {
	db := setupTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	other := createUser(t, db, "other@example.com")

	created, err := Create(db, owner.ID, CreateProductRequest{Name: "Rice", Price: 10})
	require.NoError(t, err)

	name := "Hijacked"
	_, err = Update(db, created.ID, other.ID, UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestDeleteProduct(t *testing.T) {
	db := setupTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	other := createUser(t, db, "other@example.com")

	created, err := Create(db, owner.ID, CreateProductRequest{Name: "Rice", Price: 10})
	require.NoError(t, err)

	assert.ErrorIs(t, Delete(db, created.ID, other.ID), utils.ErrNotFound)
	require.NoError(t, Delete(db, created.ID, owner.ID))

	_, err = Get(db, created.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}
