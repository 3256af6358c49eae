package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/localnerve/shopfloor/internal/services"
	"github.com/localnerve/shopfloor/internal/testutil"
)

func TestTokenRoundTrip(t *testing.T) {
	token := testutil.MakeToken(t, time.Minute)

	claims, err := services.VerifyToken(testutil.TestSecret, token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if claims.Email != "manager@example.com" || claims.User() != "1" {
		t.Errorf("Unexpected claims %+v", claims)
	}

	if _, err := services.VerifyToken("", token); !errors.Is(err, services.ErrNoSecret) {
		t.Errorf("Expected ErrNoSecret, got %v", err)
	}
}

func TestClaimsUser(t *testing.T) {
	claims := &services.Claims{UserID: "u-17"}
	if claims.User() != "u-17" {
		t.Errorf("Expected string user id, got %s", claims.User())
	}

	claims = &services.Claims{}
	claims.Subject = "sub-1"
	if claims.User() != "sub-1" {
		t.Errorf("Expected subject fallback, got %s", claims.User())
	}
}
