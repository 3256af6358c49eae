//go:build integration

package server_test

import (
	"bytes"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/shopfloor/internal/config"
	"github.com/localnerve/shopfloor/internal/database"
	"github.com/localnerve/shopfloor/internal/middleware"
	"github.com/localnerve/shopfloor/internal/models"
	"github.com/localnerve/shopfloor/internal/server"
	"github.com/localnerve/shopfloor/internal/services"
	"github.com/localnerve/shopfloor/internal/storage"
	"github.com/localnerve/shopfloor/internal/testutil"
)

// TestWithPostgresAndMinIO runs the service against real containers
func TestWithPostgresAndMinIO(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tc, err := testutil.CreateAllTestContainers(t)
	if err != nil {
		t.Fatalf("Failed to start test containers: %v", err)
	}
	defer tc.Terminate(t)

	for k, v := range tc.Env() {
		t.Setenv(k, v)
	}
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", testutil.TestSecret)
	t.Setenv("DASHBOARD_AGGREGATE", "true")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	store, err := storage.New(cfg)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	app := server.New(cfg, db, store, server.Options{})

	t.Run("health", func(t *testing.T) {
		resp := send(t, app, http.MethodGet, "/health", "", "")
		testutil.AssertStatus(t, resp, fiber.StatusOK)
	})

	t.Run("settings", func(t *testing.T) {
		resp := send(t, app, http.MethodPut, "/api/production?action=settings", "", `{"machines":["Lathe"],"operators":["Ann","Bob"]}`)
		testutil.AssertStatus(t, resp, fiber.StatusOK)

		// a second write updates the same row
		resp = send(t, app, http.MethodPut, "/api/production?action=settings", "", `{"machines":["Lathe","Mill"],"operators":[]}`)
		testutil.AssertStatus(t, resp, fiber.StatusOK)

		var rows int64
		db.Model(&models.ProductionSettings{}).Count(&rows)
		if rows != 1 {
			t.Errorf("Expected a single settings row, got %d", rows)
		}

		resp = send(t, app, http.MethodGet, "/api/production?action=settings", "", "")
		var settings services.SettingsResult
		testutil.ParseJSON(t, resp, &settings)
		if len(settings.Machines) != 2 || len(settings.Operators) != 0 {
			t.Errorf("Unexpected settings %+v", settings)
		}
	})

	t.Run("tasks", func(t *testing.T) {
		body := `{"dayOfWeek":"Mon","scheduledDate":"2026-03-02","partName":"Bolt","plannedQuantity":100,"timePerPart":2.5,"machine":"M1","operator":"Ann","blueprints":[{"name":"bolt.pdf","url":"https://files.example.com/bolt.pdf","type":"application/pdf"}]}`
		resp := send(t, app, http.MethodPost, "/api/production?action=tasks", "", body)
		testutil.AssertStatus(t, resp, fiber.StatusCreated)

		resp = send(t, app, http.MethodGet, "/api/production?action=tasks", "", "")
		var tasks []services.TaskResult
		testutil.ParseJSON(t, resp, &tasks)
		if len(tasks) != 1 {
			t.Fatalf("Expected 1 task, got %d", len(tasks))
		}
		if tasks[0].ScheduledDate == nil || *tasks[0].ScheduledDate != "2026-03-02" {
			t.Errorf("Unexpected scheduledDate %v", tasks[0].ScheduledDate)
		}
		if len(tasks[0].Blueprints) != 1 {
			t.Errorf("Expected 1 blueprint, got %d", len(tasks[0].Blueprints))
		}
	})

	t.Run("files", func(t *testing.T) {
		deadline := time.Now().UTC().Add(-time.Hour)
		orderID := testutil.CreateOrder(t, db, models.OrderStatusInProgress, &deadline)
		token := testutil.MakeToken(t, time.Hour)

		content := []byte("shop drawing")
		body := `{"orderId":"` + strconv.FormatUint(orderID, 10) + `","filename":"drawing.txt","fileType":"DRAWING","fileContent":"` + base64.StdEncoding.EncodeToString(content) + `"}`
		resp := send(t, app, http.MethodPost, "/api/files", token, body)
		testutil.AssertStatus(t, resp, fiber.StatusCreated)

		var file services.FileResult
		testutil.ParseJSON(t, resp, &file)

		// the bucket allows anonymous reads
		published, err := http.Get(file.FileURL)
		if err != nil {
			t.Fatalf("Failed to fetch published file: %v", err)
		}
		defer published.Body.Close()
		got, _ := io.ReadAll(published.Body)
		if published.StatusCode != http.StatusOK || !bytes.Equal(got, content) {
			t.Errorf("Unexpected published file: %d %q", published.StatusCode, got)
		}

		resp = send(t, app, http.MethodDelete, "/api/files?id="+strconv.FormatUint(file.ID, 10), token, "")
		testutil.AssertStatus(t, resp, fiber.StatusOK)
	})

	t.Run("dashboard", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
		req.Header.Set(middleware.TokenHeader, "present")
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("Failed to execute request: %v", err)
		}
		testutil.AssertStatus(t, resp, fiber.StatusOK)

		var stats services.DashboardStats
		testutil.ParseJSON(t, resp, &stats)
		if stats.ActiveOrders != 1 || stats.OverdueOrders != 1 {
			t.Errorf("Unexpected counters %+v", stats)
		}
	})
}
