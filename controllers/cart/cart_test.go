package cartControllers

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

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{Email: email, Password: "hashed", Name: email, IsEmailVerified: true}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createProduct(t *testing.T, db *gorm.DB, creatorID, name string, price float64, status models.ProductStatus) *models.Product {
	t.Helper()
	product := models.Product{CreatorID: creatorID, Name: name, Price: price, Quantity: 10, Status: status}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func TestEnsureCartCreatesOnce(t *testing.T) {
	db := setupTestDB(t)
	buyer := createUser(t, db, "buyer@example.com")

	first, err := EnsureCart(db, buyer.ID)
	require.NoError(t, err)

	second, err := EnsureCart(db, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Cart{}).Where("user_id = ?", buyer.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAddItem(t *testing.T) {
	db := setupTestDB(t)
	buyer := createUser(t, db, "buyer@example.com")
	seller := createUser(t, db, "seller@example.com")
	product := createProduct(t, db, seller.ID, "Tomatoes", 12.5, models.ProductStatusActive)

	cart, err := AddItem(db, buyer.ID, AddItemRequest{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 12.5, cart.Items[0].UnitPrice)
	assert.Equal(t, seller.ID, cart.Items[0].SellerID)
	assert.Equal(t, 25.0, cart.TotalAmount)
}

func TestAddItemDefaultsQuantityToOne(t *testing.T) {
	db := setupTestDB(t)
	buyer := createUser(t, db, "buyer@example.com")
	seller := createUser(t, db, "seller@example.com")
	product := createProduct(t, db, seller.ID, "Onions", 5, models.ProductStatusActive)

	cart, err := AddItem(db, buyer.ID, AddItemRequest{ProductID: product.ID})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestAddItemUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	buyer := createUser(t, db, "buyer@example.com")

	_, err := AddItem(db, buyer.ID, AddItemRequest{ProductID: "missing"})
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestAddItemRejectsOwnProduct(t *testing.T) {
	db := setupTestDB(t)
	seller := createUser(t, db, "seller@example.com")
	product := createProduct(t, db, seller.ID, "Apples", 4, models.ProductStatusActive)

	_, err := AddItem(db, seller.ID, AddItemRequest{ProductID: product.ID})
	assert.ErrorIs(t, err, utils.ErrBadRequest)
}

func TestAddItemRejectsInactiveProduct(t *testing.T) {
	db := setupTestDB(t)
	buyer := createUser(t, db, "buyer@example.com")
	seller := createUser(t, db, "seller@example.com")
	product := createProduct(t, db, seller.ID, "Mangoes", 8, models.ProductStatusInactive)

	_, err := AddItem(db, buyer.ID, AddItemRequest{ProductID: product.ID})
	assert.ErrorIs(t, err, utils.ErrBadRequest)
}

func TestAddItemUpsertsExistingLine(t *testing.T) {
	db := setupTestDB(t)
	buyer := createUser(t, db, "buyer@example.com")
	seller := createUser(t, db, "seller@example.com")
	product := createProduct(t, db, seller.ID, "Rice", 10, models.ProductStatusActive)

	_, err := AddItem(db, buyer.ID, AddItemRequest{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	// The price changes between adds; the line should pick up the new one.
	require.NoError(t, db.Model(product).Update("price", 11.0).Error)

	cart, err := AddItem(db, buyer.ID, AddItemRequest{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 11.0, cart.Items[0].UnitPrice)
	assert.Equal(t, 55.0, cart.TotalAmount)
}

func TestUpdateItemZeroQuantityRemovesLine(t *testing.T) {
	db := setupTestDB(t)
	buyer := createUser(t, db, "buyer@example.com")
	seller := createUser(t, db, "seller@example.com")
	product := createProduct(t, db, seller.ID, "Wheat", 6, models.ProductStatusActive)

	cart, err := AddItem(db, buyer.ID, AddItemRequest{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	cart, err = UpdateItem(db, buyer.ID, itemID, UpdateItemRequest{Quantity: 0})
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestUpdateItemOverwritesQuantity(t *testing.T) {
	db := setupTestDB(t)
	buyer := createUser(t, db, "buyer@example.com")
	seller := createUser(t, db, "seller@example.com")
	product := createProduct(t, db, seller.ID, "Barley", 3, models.ProductStatusActive)

	cart, err := AddItem(db, buyer.ID, AddItemRequest{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	cart, err = UpdateItem(db, buyer.ID, cart.Items[0].ID, UpdateItemRequest{Quantity: 7})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 7, cart.Items[0].Quantity)
}

func TestRemoveItemRejectsForeignLine(t *testing.T) {
	db := setupTestDB(t)
	buyer := createUser(t, db, "buyer@example.com")
	other := createUser(t, db, "other@example.com")
	seller := createUser(t, db, "seller@example.com")
	product := createProduct(t, db, seller.ID, "Corn", 2, models.ProductStatusActive)

	cart, err := AddItem(db, buyer.ID, AddItemRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	_, err = RemoveItem(db, other.ID, cart.Items[0].ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)

	// The buyer's line is untouched
	refreshed, err := GetCart(db, buyer.ID)
	require.NoError(t, err)
	assert.Len(t, refreshed.Items, 1)
}
