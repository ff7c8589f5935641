package budgetController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"finbook/config"
	"finbook/database"
	"finbook/models"
	accountRoutes "finbook/routers/accountRoutes"
	authRoutes "finbook/routers/authRoutes"
	budgetRoutes "finbook/routers/budgetRoutes"
	transactionRoutes "finbook/routers/transactionRoutes"

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
	accountRoutes.SetupAccountRoutes(app)
	transactionRoutes.SetupTransactionRoutes(app)
	budgetRoutes.SetupBudgetRoutes(app)
	return app
}

func request(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

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

func registerUser(t *testing.T, app *fiber.App) string {
	t.Helper()

	resp := request(t, app, http.MethodPost, "/auth/register", "", map[string]interface{}{
		"username": "tester",
		"email":    "tester@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	return body["token"].(string)
}

func userCategory(t *testing.T, name string) models.Category {
	t.Helper()

	var category models.Category
	require.NoError(t, database.Database.Db.
		Where("category_name = ? AND user_id IS NOT NULL", name).
		First(&category).Error)
	return category
}

func createAccount(t *testing.T, app *fiber.App, token string) uint {
	t.Helper()

	resp := request(t, app, http.MethodPost, "/accounts/", token, map[string]interface{}{
		"account_name":    "Everyday",
		"account_type":    "Checking",
		"initial_balance": 5000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	return uint(body["id"].(float64))
}

func TestCreateBudgetAndEvaluation(t *testing.T) {
	app := setupApp(t)
	token := registerUser(t, app)
	accountID := createAccount(t, app, token)
	food := userCategory(t, "Food & Dining")

	resp := request(t, app, http.MethodPost, "/budgets/", token, map[string]interface{}{
		"category_id": food.ID,
		"amount":      1000,
		"period":      "monthly",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	budget := body["budget"].(map[string]interface{})
	budgetID := uint(budget["id"].(float64))
	assert.Equal(t, "1000.00", budget["amount"])
	assert.Equal(t, "0.00", budget["spent"])
	assert.Equal(t, "good", budget["status"])

	// Spend into the warning band.
	resp = request(t, app, http.MethodPost, "/transactions/", token, map[string]interface{}{
		"account_id":       accountID,
		"category_id":      food.ID,
		"transaction_type": "EXPENSE",
		"amount":           850,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = request(t, app, http.MethodGet, fmt.Sprintf("/budgets/%d", budgetID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body = decodeBody(t, resp)
	budget = body["budget"].(map[string]interface{})
	assert.Equal(t, "850.00", budget["spent"])
	assert.Equal(t, "150.00", budget["remaining"])
	assert.Equal(t, "85.00", budget["percentage_used"])
	assert.Equal(t, "warning", budget["status"])
	assert.Equal(t, false, budget["is_over_budget"])

	// Push it over.
	resp = request(t, app, http.MethodPost, "/transactions/", token, map[string]interface{}{
		"account_id":       accountID,
		"category_id":      food.ID,
		"transaction_type": "EXPENSE",
		"amount":           200,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = request(t, app, http.MethodGet, fmt.Sprintf("/budgets/%d", budgetID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body = decodeBody(t, resp)
	budget = body["budget"].(map[string]interface{})
	assert.Equal(t, "over", budget["status"])
	assert.Equal(t, true, budget["is_over_budget"])
}

func TestDuplicateActiveBudgetRejected(t *testing.T) {
	app := setupApp(t)
	token := registerUser(t, app)
	food := userCategory(t, "Food & Dining")

	resp := request(t, app, http.MethodPost, "/budgets/", token, map[string]interface{}{
		"category_id": food.ID,
		"amount":      1000,
		"period":      "monthly",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = request(t, app, http.MethodPost, "/budgets/", token, map[string]interface{}{
		"category_id": food.ID,
		"amount":      2000,
		"period":      "monthly",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "An active budget already exists for this category and period", body["error"])
}

func TestBudgetRequiresExpenseCategory(t *testing.T) {
	app := setupApp(t)
	token := registerUser(t, app)
	salary := userCategory(t, "Salary")

	resp := request(t, app, http.MethodPost, "/budgets/", token, map[string]interface{}{
		"category_id": salary.ID,
		"amount":      1000,
		"period":      "monthly",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Budgets can only be set on expense categories", body["error"])
}

func TestCustomBudgetNeedsWindow(t *testing.T) {
	app := setupApp(t)
	token := registerUser(t, app)
	food := userCategory(t, "Food & Dining")

	resp := request(t, app, http.MethodPost, "/budgets/", token, map[string]interface{}{
		"category_id": food.ID,
		"amount":      500,
		"period":      "custom",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteBudgetIsPermanent(t *testing.T) {
	app := setupApp(t)
	token := registerUser(t, app)
	food := userCategory(t, "Food & Dining")

	resp := request(t, app, http.MethodPost, "/budgets/", token, map[string]interface{}{
		"category_id": food.ID,
		"amount":      1000,
		"period":      "monthly",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	budget := body["budget"].(map[string]interface{})
	budgetID := uint(budget["id"].(float64))

	resp = request(t, app, http.MethodDelete, fmt.Sprintf("/budgets/%d", budgetID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	database.Database.Db.Model(&models.Budget{}).Where("id = ?", budgetID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestBudgetPerformanceRollup(t *testing.T) {
	app := setupApp(t)
	token := registerUser(t, app)
	accountID := createAccount(t, app, token)
	food := userCategory(t, "Food & Dining")
	travel := userCategory(t, "Travel")

	for _, b := range []map[string]interface{}{
		{"category_id": food.ID, "amount": 1000, "period": "monthly"},
		{"category_id": travel.ID, "amount": 500, "period": "monthly"},
	} {
		resp := request(t, app, http.MethodPost, "/budgets/", token, b)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := request(t, app, http.MethodPost, "/transactions/", token, map[string]interface{}{
		"account_id":       accountID,
		"category_id":      food.ID,
		"transaction_type": "EXPENSE",
		"amount":           600,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = request(t, app, http.MethodGet, "/budgets/stats/performance", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	performance := body["performance"].(map[string]interface{})
	assert.Equal(t, "1500.00", performance["total_budgeted"])
	assert.Equal(t, "600.00", performance["total_spent"])
	assert.Equal(t, "900.00", performance["total_remaining"])
	assert.Equal(t, float64(2), performance["budget_count"])
	assert.Equal(t, float64(0), performance["over_budget_count"])
}
