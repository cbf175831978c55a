package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"investrack/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates an active user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email, role)
}

// CreateTestUserWithEmail creates a user with the given email and role.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:     fmt.Sprintf("Test User %d", nextID()),
		Email:    email,
		Password: string(hash),
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestInvestment creates an active stocks position for the given user.
func CreateTestInvestment(t *testing.T, db *gorm.DB, userID string) *models.Investment {
	t.Helper()
	return CreateTestInvestmentWith(t, db, userID, "AAPL", models.AssetTypeStocks, 10, 100, nil)
}

// CreateTestInvestmentWith creates an investment with the given position fields.
func CreateTestInvestmentWith(t *testing.T, db *gorm.DB, userID, symbol string, assetType models.AssetType, amount, purchasePrice float64, currentPrice *float64) *models.Investment {
	t.Helper()

	investment := &models.Investment{
		UserID:        userID,
		Symbol:        symbol,
		AssetType:     assetType,
		Amount:        amount,
		PurchasePrice: purchasePrice,
		CurrentPrice:  currentPrice,
		PurchaseDate:  time.Now().Add(-24 * time.Hour),
		Status:        models.InvestmentStatusActive,
	}
	if err := db.Create(investment).Error; err != nil {
		t.Fatalf("failed to create test investment: %v", err)
	}
	return investment
}

// CreateTestTrackingFilter creates a tracking filter for the given subscriber.
func CreateTestTrackingFilter(t *testing.T, db *gorm.DB, subscriberID string, assetType *models.AssetType) *models.TrackingFilter {
	t.Helper()

	tracking := &models.TrackingFilter{
		SubscriberID: subscriberID,
		AssetType:    assetType,
	}
	if err := db.Create(tracking).Error; err != nil {
		t.Fatalf("failed to create test tracking filter: %v", err)
	}
	return tracking
}

// FloatPtr returns a pointer to the given float64 for optional fields.
func FloatPtr(v float64) *float64 { return &v }
