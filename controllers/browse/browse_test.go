package browseControllers

import (
	"fmt"
	"testing"
	"time"

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
		&models.UserAddress{},
	))
	return db
}

func createSeller(t *testing.T, db *gorm.DB, name, bio, location string) *models.User {
	t.Helper()
	user := models.User{Email: name + "@example.com", Password: "hashed", Name: name, Bio: bio, Location: location, IsEmailVerified: true}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createListing(t *testing.T, db *gorm.DB, sellerID, name string, status models.ProductStatus, createdAt time.Time) *models.Product {
	t.Helper()
	product := models.Product{
		CreatorID: sellerID,
		Name:      name,
		Price:     10,
		Quantity:  5,
		Status:    status,
		Images:    "https://cdn.example.com/first.jpg,https://cdn.example.com/second.jpg",
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func TestGetSellersRequiresActiveProducts(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	active := createSeller(t, db, "ActiveFarm", "", "Pune")
	createListing(t, db, active.ID, "Tomatoes", models.ProductStatusActive, now)

	inactive := createSeller(t, db, "SleepyFarm", "", "Pune")
	createListing(t, db, inactive.ID, "Onions", models.ProductStatusInactive, now)

	createSeller(t, db, "EmptyFarm", "", "Pune")

	sellers, err := GetSellers(db, Filters{})
	require.NoError(t, err)

	require.Len(t, sellers, 1)
	assert.Equal(t, active.ID, sellers[0].SellerID)
	assert.Equal(t, int64(1), sellers[0].ProductCount)
}

func TestGetSellersTopThreeNewestPreviews(t *testing.T) {
	db := setupTestDB(t)
	seller := createSeller(t, db, "BigFarm", "", "Pune")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		createListing(t, db, seller.ID, fmt.Sprintf("Product %d", i), models.ProductStatusActive, base.Add(time.Duration(i)*time.Minute))
	}
	createListing(t, db, seller.ID, "Retired", models.ProductStatusSold, base.Add(time.Hour))

	sellers, err := GetSellers(db, Filters{})
	require.NoError(t, err)
	require.Len(t, sellers, 1)

	// Sold listings never show up in the count or the previews
	assert.Equal(t, int64(5), sellers[0].ProductCount)
	require.Len(t, sellers[0].TopProducts, 3)
	assert.Equal(t, "Product 4", sellers[0].TopProducts[0].Name)
	assert.Equal(t, "Product 3", sellers[0].TopProducts[1].Name)
	assert.Equal(t, "Product 2", sellers[0].TopProducts[2].Name)
	assert.Equal(t, "https://cdn.example.com/first.jpg", sellers[0].TopProducts[0].ImageURL)
}

func TestGetSellersOrderedByStockedListings(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	small := createSeller(t, db, "SmallFarm", "", "Pune")
	createListing(t, db, small.ID, "Onions", models.ProductStatusActive, now)

	big := createSeller(t, db, "BigFarm", "", "Pune")
	createListing(t, db, big.ID, "Tomatoes", models.ProductStatusActive, now)
	createListing(t, db, big.ID, "Potatoes", models.ProductStatusActive, now)

	sellers, err := GetSellers(db, Filters{})
	require.NoError(t, err)
	require.Len(t, sellers, 2)
	assert.Equal(t, big.ID, sellers[0].SellerID)
	assert.Equal(t, small.ID, sellers[1].SellerID)
}

func TestGetSellersSearch(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	greens := createSeller(t, db, "Green Valley", "organic greens", "Pune")
	createListing(t, db, greens.ID, "Spinach", models.ProductStatusActive, now)

	dairy := createSeller(t, db, "Happy Cows", "fresh dairy", "Nashik")
	createListing(t, db, dairy.ID, "Milk", models.ProductStatusActive, now)

	sellers, err := GetSellers(db, Filters{Search: "ORGANIC"})
	require.NoError(t, err)
	require.Len(t, sellers, 1)
	assert.Equal(t, greens.ID, sellers[0].SellerID)

	sellers, err = GetSellers(db, Filters{Search: "nashik"})
	require.NoError(t, err)
	require.Len(t, sellers, 1)
	assert.Equal(t, dairy.ID, sellers[0].SellerID)
}

func TestGetSellersUsesDefaultAddress(t *testing.T) {
	db := setupTestDB(t)
	seller := createSeller(t, db, "NoHome", "Fresh Stuff Co", "")
	createListing(t, db, seller.ID, "Tomatoes", models.ProductStatusActive, time.Now())

	require.NoError(t, db.Create(&models.UserAddress{
		UserID:       seller.ID,
		AddressLine1: "1 Farm Lane",
		City:         "Satara",
		Pincode:      "415001",
		IsDefault:    true,
	}).Error)

	sellers, err := GetSellers(db, Filters{})
	require.NoError(t, err)
	require.Len(t, sellers, 1)

	assert.Equal(t, "Satara", sellers[0].Location)
	assert.Equal(t, "415001", sellers[0].Pincode)
	assert.Equal(t, "Fresh Stuff Co", sellers[0].BusinessName)
}

func TestGetSellersBusinessNameFallsBackToName(t *testing.T) {
	db := setupTestDB(t)
	seller := createSeller(t, db, "Plain Seller", "", "Pune")
	createListing(t, db, seller.ID, "Tomatoes", models.ProductStatusActive, time.Now())

	sellers, err := GetSellers(db, Filters{})
	require.NoError(t, err)
	require.Len(t, sellers, 1)
	assert.Equal(t, "Plain Seller", sellers[0].BusinessName)
}

func TestGetSellersPagination(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()
	for i := 0; i < 3; i++ {
		seller := createSeller(t, db, fmt.Sprintf("Farm%d", i), "", "Pune")
		createListing(t, db, seller.ID, "Tomatoes", models.ProductStatusActive, now)
	}

	page1, err := GetSellers(db, Filters{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page1, 2)

	page2, err := GetSellers(db, Filters{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page2, 1)
}

func TestGetSellersRejectsNegativeLimit(t *testing.T) {
	db := setupTestDB(t)

	_, err := GetSellers(db, Filters{Limit: -1})
	assert.ErrorIs(t, err, utils.ErrBadRequest)
}
