package handlers_test

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/shopfloor/internal/handlers"
	"github.com/localnerve/shopfloor/internal/models"
	"github.com/localnerve/shopfloor/internal/services"
	"github.com/localnerve/shopfloor/internal/testutil"
	"github.com/localnerve/shopfloor/internal/utils"
	"gorm.io/gorm"
)

func filesApp(db *gorm.DB, store *testutil.MemoryStore) *fiber.App {
	app := newApp()
	handler := &handlers.FilesHandler{DB: db, Store: store}
	app.All("/api/files", handler.Handle)
	return app
}

func TestUploadListDeleteFile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := testutil.NewMemoryStore()
	app := filesApp(db, store)

	orderID := testutil.CreateOrder(t, db, models.OrderStatusDraft, nil)
	orderKey := strconv.FormatUint(orderID, 10)

	resp := request(t, app, http.MethodPost, "/api/files", map[string]interface{}{
		"orderId":     orderKey,
		"filename":    "drawing.pdf",
		"fileContent": base64.StdEncoding.EncodeToString([]byte("%PDF-1.4")),
	})
	testutil.AssertStatus(t, resp, fiber.StatusCreated)

	var file services.FileResult
	testutil.ParseJSON(t, resp, &file)
	if file.OrderID != orderID {
		t.Errorf("Expected orderId %d, got %d", orderID, file.OrderID)
	}
	if file.FileType != services.DefaultFileType {
		t.Errorf("Expected default file type, got %s", file.FileType)
	}
	if file.FileURL == "" {
		t.Error("Expected a file url")
	}
	if store.Uploads != 1 {
		t.Errorf("Expected 1 upload, got %d", store.Uploads)
	}

	resp = request(t, app, http.MethodGet, "/api/files?orderId="+orderKey, nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var listing handlers.FilesResponse
	testutil.ParseJSON(t, resp, &listing)
	if len(listing.Files) != 1 || listing.Files[0].ID != file.ID {
		t.Fatalf("Expected the uploaded file in the listing, got %+v", listing.Files)
	}

	resp = request(t, app, http.MethodDelete, "/api/files?id="+strconv.FormatUint(file.ID, 10), nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var msg utils.MessageResponseStruct
	testutil.ParseJSON(t, resp, &msg)
	if msg.Message != "File deleted successfully" {
		t.Errorf("Unexpected message %q", msg.Message)
	}

	resp = request(t, app, http.MethodGet, "/api/files", nil)
	testutil.ParseJSON(t, resp, &listing)
	if len(listing.Files) != 0 {
		t.Errorf("Expected empty listing, got %d files", len(listing.Files))
	}
}

func TestUploadValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := testutil.NewMemoryStore()
	app := filesApp(db, store)

	orderID := testutil.CreateOrder(t, db, models.OrderStatusDraft, nil)

	cases := []struct {
		name   string
		body   map[string]interface{}
		status int
	}{
		{
			name:   "missing content",
			body:   map[string]interface{}{"orderId": orderID, "filename": "a.txt"},
			status: fiber.StatusBadRequest,
		},
		{
			name:   "invalid base64",
			body:   map[string]interface{}{"orderId": orderID, "filename": "a.txt", "fileContent": "!!not base64!!"},
			status: fiber.StatusBadRequest,
		},
		{
			name:   "unknown order",
			body:   map[string]interface{}{"orderId": orderID + 100, "filename": "a.txt", "fileContent": "aGVsbG8="},
			status: fiber.StatusNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := request(t, app, http.MethodPost, "/api/files", tc.body)
			testutil.AssertStatus(t, resp, tc.status)
		})
	}

	if store.Uploads != 0 {
		t.Errorf("Expected no storage calls, got %d", store.Uploads)
	}
	var count int64
	db.Model(&models.File{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no file rows, got %d", count)
	}
}

func TestUploadStorageFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := testutil.NewMemoryStore()
	store.FailUpload = errors.New("disk quota exceeded")
	app := filesApp(db, store)

	orderID := testutil.CreateOrder(t, db, models.OrderStatusDraft, nil)

	resp := request(t, app, http.MethodPost, "/api/files", map[string]interface{}{
		"orderId":     orderID,
		"filename":    "a.txt",
		"fileContent": "aGVsbG8=",
	})
	testutil.AssertStatus(t, resp, fiber.StatusInternalServerError)

	var body utils.ErrorResponseStruct
	testutil.ParseJSON(t, resp, &body)
	if body.Details != "" {
		t.Errorf("Expected details to be hidden, got %q", body.Details)
	}
}

func TestDeleteFileErrors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := filesApp(db, testutil.NewMemoryStore())

	orderID := testutil.CreateOrder(t, db, models.OrderStatusDraft, nil)
	db.Create(&models.File{Filename: "keep.txt", FileURL: "https://files.example.com/keep.txt", FileType: "DOCUMENT", OrderID: orderID, CreatedAt: time.Now()})

	resp := request(t, app, http.MethodDelete, "/api/files", nil)
	testutil.AssertStatus(t, resp, fiber.StatusBadRequest)

	resp = request(t, app, http.MethodDelete, "/api/files?id=424242", nil)
	testutil.AssertStatus(t, resp, fiber.StatusNotFound)

	var count int64
	db.Model(&models.File{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected table unchanged, got %d rows", count)
	}
}

func TestFilesMethodNotAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := filesApp(db, testutil.NewMemoryStore())

	resp := request(t, app, http.MethodPatch, "/api/files", nil)
	testutil.AssertStatus(t, resp, fiber.StatusMethodNotAllowed)
}

func TestFileIDsAreNumbers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := filesApp(db, testutil.NewMemoryStore())

	orderID := testutil.CreateOrder(t, db, models.OrderStatusDraft, nil)

	resp := request(t, app, http.MethodPost, "/api/files", map[string]interface{}{
		"orderId":     strconv.FormatUint(orderID, 10),
		"filename":    "spec.txt",
		"fileContent": "aGVsbG8=",
	})
	testutil.AssertStatus(t, resp, fiber.StatusCreated)

	var created map[string]interface{}
	testutil.ParseJSON(t, resp, &created)
	if _, ok := created["id"].(float64); !ok {
		t.Errorf("Expected numeric id, got %T %v", created["id"], created["id"])
	}
	if got, ok := created["orderId"].(float64); !ok || uint64(got) != orderID {
		t.Errorf("Expected numeric orderId %d, got %T %v", orderID, created["orderId"], created["orderId"])
	}

	resp = request(t, app, http.MethodGet, "/api/files", nil)
	var listing map[string][]map[string]interface{}
	testutil.ParseJSON(t, resp, &listing)
	if len(listing["files"]) != 1 {
		t.Fatalf("Expected 1 file, got %d", len(listing["files"]))
	}
	if _, ok := listing["files"][0]["orderId"].(float64); !ok {
		t.Errorf("Expected numeric orderId in listing, got %T", listing["files"][0]["orderId"])
	}
}
