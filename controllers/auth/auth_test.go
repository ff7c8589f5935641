package authController_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"finbook/config"
	"finbook/database"
	"finbook/models"
	authRoutes "finbook/routers/authRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:      "3000",
		JWTKey:    "test-secret",
		JWTExpiry: 24,
		SaltRound: 4,
	}

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.SeedDefaults(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestRegisterCreatesUserWithStarterCategories(t *testing.T) {
	app := setupApp(t)

	resp := postJSON(t, app, "/auth/register", map[string]interface{}{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["token"])

	user := body["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "alice@example.com", user["email"])

	// Template categories are copied to the new user.
	var created models.User
	require.NoError(t, database.Database.Db.Where("username = ?", "alice").First(&created).Error)

	var count int64
	database.Database.Db.Model(&models.Category{}).Where("user_id = ?", created.ID).Count(&count)
	assert.Equal(t, int64(len(database.DefaultCategories)), count)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := setupApp(t)

	resp := postJSON(t, app, "/auth/register", map[string]interface{}{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/auth/register", map[string]interface{}{
		"username": "alice2",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Email is already registered", body["error"])
}

func TestRegisterValidation(t *testing.T) {
	app := setupApp(t)

	resp := postJSON(t, app, "/auth/register", map[string]interface{}{
		"username": "ab",
		"email":    "not-an-email",
		"password": "123",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Validation failed", body["error"])
	assert.NotEmpty(t, body["details"])
}

func TestLogin(t *testing.T) {
	app := setupApp(t)

	resp := postJSON(t, app, "/auth/register", map[string]interface{}{
		"username": "bob",
		"email":    "bob@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/auth/login", map[string]interface{}{
		"email":    "bob@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["token"])
}

func TestLoginWrongPassword(t *testing.T) {
	app := setupApp(t)

	resp := postJSON(t, app, "/auth/register", map[string]interface{}{
		"username": "carol",
		"email":    "carol@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/auth/login", map[string]interface{}{
		"email":    "carol@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Invalid email or password", body["error"])
}
