package transactionController_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"finbook/config"
	"finbook/database"
	"finbook/models"
	accountRoutes "finbook/routers/accountRoutes"
	authRoutes "finbook/routers/authRoutes"
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

func createAccount(t *testing.T, app *fiber.App, token, name string, initial float64) uint {
	t.Helper()

	resp := request(t, app, http.MethodPost, "/accounts/", token, map[string]interface{}{
		"account_name":    name,
		"account_type":    "Checking",
		"initial_balance": initial,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	return uint(body["id"].(float64))
}

// userCategory finds one of the categories copied to the test user at signup.
func userCategory(t *testing.T, name string) models.Category {
	t.Helper()

	var category models.Category
	require.NoError(t, database.Database.Db.
		Where("category_name = ? AND user_id IS NOT NULL", name).
		First(&category).Error)
	return category
}

func accountBalance(t *testing.T, app *fiber.App, token string, accountID uint) string {
	t.Helper()

	resp := request(t, app, http.MethodGet, fmt.Sprintf("/accounts/%d", accountID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	return body["current_balance"].(string)
}

func TestBalanceFollowsTransactionLifecycle(t *testing.T) {
	app := setupApp(t)
	token := registerUser(t, app)
	accountID := createAccount(t, app, token, "Everyday", 500)

	salary := userCategory(t, "Salary")
	food := userCategory(t, "Food & Dining")

	resp := request(t, app, http.MethodPost, "/transactions/", token, map[string]interface{}{
		"account_id":       accountID,
		"category_id":      salary.ID,
		"transaction_type": "INCOME",
		"amount":           200,
		"description":      "Paycheck",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = request(t, app, http.MethodPost, "/transactions/", token, map[string]interface{}{
		"account_id":       accountID,
		"category_id":      food.ID,
		"transaction_type": "EXPENSE",
		"amount":           50,
		"description":      "Groceries",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	expense := body["transaction"].(map[string]interface{})
	expenseID := uint(expense["id"].(float64))

	assert.Equal(t, "650.00", accountBalance(t, app, token, accountID))

	// Trashing the expense puts the money back.
	resp = request(t, app, http.MethodDelete, fmt.Sprintf("/transactions/%d", expenseID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "700.00", accountBalance(t, app, token, accountID))

	// Restoring takes it out again.
	resp = request(t, app, http.MethodPut, fmt.Sprintf("/transactions/%d/restore", expenseID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "650.00", accountBalance(t, app, token, accountID))
}

func TestCategoryTypeMustMatchTransactionType(t *testing.T) {
	app := setupApp(t)
	token := registerUser(t, app)
	accountID := createAccount(t, app, token, "Everyday", 100)

	food := userCategory(t, "Food & Dining")

	resp := request(t, app, http.MethodPost, "/transactions/", token, map[string]interface{}{
		"account_id":       accountID,
		"category_id":      food.ID,
		"transaction_type": "INCOME",
		"amount":           10,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Category type does not match transaction type", body["error"])
}

func TestTransferCreatesTwoNeutralLegs(t *testing.T) {
	app := setupApp(t)
	token := registerUser(t, app)
	fromID := createAccount(t, app, token, "Checking", 1000)
	toID := createAccount(t, app, token, "Savings", 0)

	resp := request(t, app, http.MethodPost, "/transactions/transfer", token, map[string]interface{}{
		"from_account_id": fromID,
		"to_account_id":   toID,
		"amount":          250,
		"description":     "Monthly savings",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	groupID := body["transfer_group_id"].(string)
	assert.NotEmpty(t, groupID)

	legs := body["transactions"].([]interface{})
	require.Len(t, legs, 2)
	for _, leg := range legs {
		m := leg.(map[string]interface{})
		assert.Equal(t, "TRANSFER", m["transaction_type"])
		assert.Equal(t, groupID, m["transfer_group_id"])
	}

	// Transfers never move the computed balances.
	assert.Equal(t, "1000.00", accountBalance(t, app, token, fromID))
	assert.Equal(t, "0.00", accountBalance(t, app, token, toID))
}

func TestTransferToSameAccountRejected(t *testing.T) {
	app := setupApp(t)
	token := registerUser(t, app)
	accountID := createAccount(t, app, token, "Checking", 100)

	resp := request(t, app, http.MethodPost, "/transactions/transfer", token, map[string]interface{}{
		"from_account_id": accountID,
		"to_account_id":   accountID,
		"amount":          50,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Cannot transfer to the same account", body["error"])
}

func TestTransferToUnknownAccountRejected(t *testing.T) {
	app := setupApp(t)
	token := registerUser(t, app)
	fromID := createAccount(t, app, token, "Checking", 100)

	resp := request(t, app, http.MethodPost, "/transactions/transfer", token, map[string]interface{}{
		"from_account_id": fromID,
		"to_account_id":   99999,
		"amount":          50,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTransferLegCannotBeUpdated(t *testing.T) {
	app := setupApp(t)
	token := registerUser(t, app)
	fromID := createAccount(t, app, token, "Checking", 100)
	toID := createAccount(t, app, token, "Savings", 0)

	resp := request(t, app, http.MethodPost, "/transactions/transfer", token, map[string]interface{}{
		"from_account_id": fromID,
		"to_account_id":   toID,
		"amount":          25,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	leg := body["transactions"].([]interface{})[0].(map[string]interface{})
	legID := uint(leg["id"].(float64))

	resp = request(t, app, http.MethodPut, fmt.Sprintf("/transactions/%d", legID), token, map[string]interface{}{
		"amount": 500,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body = decodeBody(t, resp)
	assert.Equal(t, "Transfer legs cannot be updated individually", body["error"])
}

func TestTransferDeleteAndRestoreCascade(t *testing.T) {
	app := setupApp(t)
	token := registerUser(t, app)
	fromID := createAccount(t, app, token, "Checking", 100)
	toID := createAccount(t, app, token, "Savings", 0)

	resp := request(t, app, http.MethodPost, "/transactions/transfer", token, map[string]interface{}{
		"from_account_id": fromID,
		"to_account_id":   toID,
		"amount":          25,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	groupID := body["transfer_group_id"].(string)
	leg := body["transactions"].([]interface{})[0].(map[string]interface{})
	legID := uint(leg["id"].(float64))

	// Deleting one leg trashes both.
	resp = request(t, app, http.MethodDelete, fmt.Sprintf("/transactions/%d", legID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var live int64
	database.Database.Db.Model(&models.Transaction{}).
		Where("transfer_group_id = ?", groupID).Count(&live)
	assert.Equal(t, int64(0), live)

	// Restoring one leg restores both.
	resp = request(t, app, http.MethodPut, fmt.Sprintf("/transactions/%d/restore", legID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	database.Database.Db.Model(&models.Transaction{}).
		Where("transfer_group_id = ?", groupID).Count(&live)
	assert.Equal(t, int64(2), live)
}

func TestTransactionSummary(t *testing.T) {
	app := setupApp(t)
	token := registerUser(t, app)
	accountID := createAccount(t, app, token, "Everyday", 0)

	salary := userCategory(t, "Salary")
	food := userCategory(t, "Food & Dining")

	fixtures := []map[string]interface{}{
		{"account_id": accountID, "category_id": salary.ID, "transaction_type": "INCOME", "amount": 1000},
		{"account_id": accountID, "category_id": food.ID, "transaction_type": "EXPENSE", "amount": 300},
		{"account_id": accountID, "category_id": food.ID, "transaction_type": "EXPENSE", "amount": 150.50},
	}
	for _, f := range fixtures {
		resp := request(t, app, http.MethodPost, "/transactions/", token, f)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := request(t, app, http.MethodGet, "/transactions/stats/summary", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	summary := body["summary"].(map[string]interface{})
	assert.Equal(t, "1000.00", summary["total_income"])
	assert.Equal(t, "450.50", summary["total_expenses"])
	assert.Equal(t, "549.50", summary["net_income"])
	assert.Equal(t, float64(1), summary["income_transactions"])
	assert.Equal(t, float64(2), summary["expense_transactions"])
}

func TestListTransactionsPagination(t *testing.T) {
	app := setupApp(t)
	token := registerUser(t, app)
	accountID := createAccount(t, app, token, "Everyday", 0)

	salary := userCategory(t, "Salary")
	for i := 0; i < 5; i++ {
		resp := request(t, app, http.MethodPost, "/transactions/", token, map[string]interface{}{
			"account_id":       accountID,
			"category_id":      salary.ID,
			"transaction_type": "INCOME",
			"amount":           10 + i,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := request(t, app, http.MethodGet, "/transactions/?page=2&limit=2", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	transactions := body["transactions"].([]interface{})
	assert.Len(t, transactions, 2)

	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(2), pagination["page"])
	assert.Equal(t, float64(5), pagination["total"])
	assert.Equal(t, float64(3), pagination["total_pages"])
}

func TestTransferRollsBackWhenSecondLegFails(t *testing.T) {
	app := setupApp(t)
	token := registerUser(t, app)
	fromID := createAccount(t, app, token, "Checking", 1000)
	toID := createAccount(t, app, token, "Savings", 0)

	// Refuse the destination leg's insert so the transfer cannot complete.
	db := database.Database.Db
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("refuse_destination_leg", func(tx *gorm.DB) {
		if transaction, ok := tx.Statement.Dest.(*models.Transaction); ok && transaction.AccountID == toID {
			tx.AddError(errors.New("insert refused"))
		}
	}))
	t.Cleanup(func() {
		_ = db.Callback().Create().Remove("refuse_destination_leg")
	})

	resp := request(t, app, http.MethodPost, "/transactions/transfer", token, map[string]interface{}{
		"from_account_id": fromID,
		"to_account_id":   toID,
		"amount":          250,
	})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	// Neither leg survives, the source leg rolled back with the failure.
	var count int64
	db.Unscoped().Model(&models.Transaction{}).
		Where("transfer_group_id IS NOT NULL").Count(&count)
	assert.Equal(t, int64(0), count)

	assert.Equal(t, "1000.00", accountBalance(t, app, token, fromID))
}

func TestTransactionResponseUsesSnakeCaseKeys(t *testing.T) {
	app := setupApp(t)
	token := registerUser(t, app)
	accountID := createAccount(t, app, token, "Everyday", 100)

	resp := request(t, app, http.MethodPost, "/transactions/", token, map[string]interface{}{
		"account_id":       accountID,
		"transaction_type": "INCOME",
		"amount":           42,
		"description":      "Gift",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	transaction := body["transaction"].(map[string]interface{})
	assert.Contains(t, transaction, "id")
	assert.Contains(t, transaction, "transaction_type")
	assert.Contains(t, transaction, "created_at")
	assert.NotContains(t, transaction, "ID")
	assert.NotContains(t, transaction, "CreatedAt")
	assert.NotContains(t, transaction, "DeletedAt")
	assert.NotContains(t, transaction, "deleted_at")
}

func TestRequestsWithoutTokenRejected(t *testing.T) {
	app := setupApp(t)

	resp := request(t, app, http.MethodGet, "/transactions/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
