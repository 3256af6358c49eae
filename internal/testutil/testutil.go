// Package testutil holds helpers shared by package tests and the local container runner.
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/localnerve/shopfloor/internal/database"
	"github.com/localnerve/shopfloor/internal/models"
	"github.com/localnerve/shopfloor/internal/services"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestSecret signs tokens made by MakeToken
const TestSecret = "shopfloor-test-secret"

// SetupTestDB creates a migrated in-memory SQLite database
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// every connection to :memory: is a new database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying SQL DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// CreateOrder inserts an order and returns its id
func CreateOrder(t *testing.T, db *gorm.DB, status string, deadline *time.Time) uint64 {
	t.Helper()

	order := models.Order{Status: status, Priority: models.PriorityMedium, Deadline: deadline}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}
	return order.ID
}

// MakeToken signs a token with TestSecret valid for ttl (negative for an expired token)
func MakeToken(t *testing.T, ttl time.Duration) string {
	t.Helper()

	token, err := services.SignToken(TestSecret, services.Claims{
		UserID: 1,
		Email:  "manager@example.com",
		Role:   "manager",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	})
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return token
}

// AssertStatus verifies the HTTP status code
func AssertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("Expected status %d, got %d", expected, resp.StatusCode)
	}
}

// ParseJSON decodes the response body into the target
func ParseJSON(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	defer resp.Body.Close()

	if err := json.Unmarshal(body, target); err != nil {
		t.Fatalf("Failed to decode JSON: %v. Body: %s", err, string(body))
	}
}
