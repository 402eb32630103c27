package customer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/richardamare/cloudfarmsales/internal/database"
	"github.com/richardamare/cloudfarmsales/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBSeq atomic.Int64

func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:customer_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Customer{}, &models.Sale{}))

	database.DB = db
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
}

func newTestApp() *fiber.App {
	log := zap.NewNop()
	app := fiber.New()
	app.Post("/api/customers", CreateCustomerHandler(log))
	app.Get("/api/customers", ListCustomersHandler(log))
	app.Get("/api/customers/:code", GetCustomerHandler(log))
	app.Put("/api/customers/:id", UpdateCustomerHandler(log))
	app.Delete("/api/customers/:id", DeleteCustomerHandler(log))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()

	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func validBody() map[string]any {
	return map[string]any{
		"name":      "Abebe Bikila",
		"region":    "Addis Ababa",
		"zone":      "Bole",
		"phone":     "0911000000",
		"tinNumber": "0012345678",
		"woreda":    "03",
		"kebele":    "05",
	}
}

func TestCreateCustomer(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/customers", validBody())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out struct {
		Customer models.Customer `json:"customer"`
	}
	decode(t, resp, &out)

	assert.NotEmpty(t, out.Customer.ID)
	assert.True(t, strings.HasPrefix(out.Customer.CustomerID, "cus_"), out.Customer.CustomerID)
	assert.Equal(t, "Abebe Bikila", out.Customer.Name)
	assert.Equal(t, "Bole", out.Customer.Zone)
}

func TestCreateCustomer_RequiredFields(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	for _, field := range []string{"name", "region", "zone", "phone", "tinNumber", "woreda", "kebele"} {
		body := validBody()
		body[field] = "  "
		resp := doJSON(t, app, http.MethodPost, "/api/customers", body)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, field)
	}

	var count int64
	database.DB.Model(&models.Customer{}).Count(&count)
	assert.Zero(t, count, "no customer may be written on validation failure")
}

func TestListCustomers_NewestFirstExcludingDeleted(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	older := models.Customer{
		CustomerID: "cus_old", Name: "Old", Region: "r", Zone: "z", Phone: "p",
		TinNumber: "t", Woreda: "w", Kebele: "k",
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	newer := models.Customer{
		CustomerID: "cus_new", Name: "New", Region: "r", Zone: "z", Phone: "p",
		TinNumber: "t", Woreda: "w", Kebele: "k",
		CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	gone := models.Customer{
		CustomerID: "cus_gone", Name: "Gone", Region: "r", Zone: "z", Phone: "p",
		TinNumber: "t", Woreda: "w", Kebele: "k",
		CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, database.DB.Create(&older).Error)
	require.NoError(t, database.DB.Create(&newer).Error)
	require.NoError(t, database.DB.Create(&gone).Error)
	require.NoError(t, database.DB.Delete(&gone).Error)

	resp := doJSON(t, app, http.MethodGet, "/api/customers", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Customers []models.Customer `json:"customers"`
	}
	decode(t, resp, &out)

	require.Len(t, out.Customers, 2)
	assert.Equal(t, "New", out.Customers[0].Name)
	assert.Equal(t, "Old", out.Customers[1].Name)
}

func TestGetCustomerByCode(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	created := models.Customer{
		CustomerID: "cus_abc12345", Name: "Abebe Bikila", Region: "Addis Ababa",
		Zone: "Bole", Phone: "0911000000", TinNumber: "t", Woreda: "w", Kebele: "k",
	}
	require.NoError(t, database.DB.Create(&created).Error)

	resp := doJSON(t, app, http.MethodGet, "/api/customers/cus_abc12345", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Customer models.Customer `json:"customer"`
	}
	decode(t, resp, &out)
	assert.Equal(t, created.ID, out.Customer.ID)

	resp = doJSON(t, app, http.MethodGet, "/api/customers/cus_missing", nil)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestUpdateCustomer(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	created := models.Customer{
		CustomerID: "cus_abc12345", Name: "Before", Region: "r", Zone: "z",
		Phone: "p", TinNumber: "t", Woreda: "w", Kebele: "k",
	}
	require.NoError(t, database.DB.Create(&created).Error)

	body := validBody()
	body["name"] = "After"
	resp := doJSON(t, app, http.MethodPut, "/api/customers/"+created.ID, body)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var persisted models.Customer
	require.NoError(t, database.DB.First(&persisted, "id = ?", created.ID).Error)
	assert.Equal(t, "After", persisted.Name)
	assert.Equal(t, "Addis Ababa", persisted.Region)

	resp = doJSON(t, app, http.MethodPut, "/api/customers/does-not-exist", validBody())
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestDeleteCustomer(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	created := models.Customer{
		CustomerID: "cus_abc12345", Name: "Abebe Bikila", Region: "r", Zone: "z",
		Phone: "p", TinNumber: "t", Woreda: "w", Kebele: "k",
	}
	require.NoError(t, database.DB.Create(&created).Error)

	resp := doJSON(t, app, http.MethodDelete, "/api/customers/"+created.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// physically retained, logically absent
	var raw models.Customer
	require.NoError(t, database.DB.Unscoped().First(&raw, "id = ?", created.ID).Error)
	assert.True(t, raw.DeletedAt.Valid)

	resp = doJSON(t, app, http.MethodGet, "/api/customers/cus_abc12345", nil)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	// deleting twice fails, the record no longer resolves
	resp = doJSON(t, app, http.MethodDelete, "/api/customers/"+created.ID, nil)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	// soft-deleted customers cannot back an update either
	resp = doJSON(t, app, http.MethodPut, "/api/customers/"+created.ID, validBody())
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
