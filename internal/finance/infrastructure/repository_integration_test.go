package infrastructure

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	database "github.com/pkoziol/ReceiptLedger/db"
	"github.com/pkoziol/ReceiptLedger/internal/finance/domain"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("receiptledger_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	require.NoError(t, database.RunMigrations(db))
	return db
}

func createTestUser(t *testing.T, db *sql.DB) string {
	t.Helper()
	var id string
	err := db.QueryRow(
		`INSERT INTO users (email, password_hash, hash_token) VALUES ($1, $2, $3) RETURNING id`,
		"integration@example.com", "not-a-real-hash", "not-a-real-token",
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestRepositories_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)

	categoryRepo := NewCategoryRepository(db)
	expenseRepo := NewExpenseRepository(db)
	budgetRepo := NewBudgetRepository(db)

	var categories []domain.Category
	for _, name := range domain.PredefinedCategories {
		categories = append(categories, domain.Category{
			ID:     uuid.New(),
			UserID: userID,
			Name:   name,
		})
	}
	require.NoError(t, categoryRepo.SaveAll(categories))

	active, err := categoryRepo.FindActiveByUser(userID)
	require.NoError(t, err)
	assert.Len(t, active, len(domain.PredefinedCategories))

	groceries := categories[0]

	t.Run("duplicate category name", func(t *testing.T) {
		err := categoryRepo.Save(domain.Category{
			ID:     uuid.New(),
			UserID: userID,
			Name:   groceries.Name,
		})
		assert.ErrorIs(t, err, domain.ErrDuplicate)
	})

	t.Run("expense save and search", func(t *testing.T) {
		expense := domain.Expense{
			ID:              uuid.New(),
			UserID:          userID,
			Description:     "Saturday shopping",
			TransactionDate: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
			Items: []domain.ExpenseItem{
				{ID: uuid.New(), ProductName: "Milk", Quantity: 2, Price: decimal.RequireFromString("3.50"), CategoryID: groceries.ID},
				{ID: uuid.New(), ProductName: "Bread", Quantity: 1, Price: decimal.RequireFromString("4.20"), CategoryID: groceries.ID},
			},
		}
		expense.RecalculateTotals()
		require.NoError(t, expenseRepo.Save(expense))

		loaded, err := expenseRepo.FindByID(expense.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, loaded.ItemCount)
		assert.True(t, loaded.TotalAmount.Equal(decimal.RequireFromString("11.20")))
		require.Len(t, loaded.Items, 2)
		assert.Equal(t, groceries.Name, loaded.Items[0].CategoryName)

		start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)

		page, total, err := expenseRepo.Search(userID, start, end, &groceries.ID, 20, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, page, 1)
		assert.Equal(t, expense.ID, page[0].ID)

		other := categories[1]
		_, total, err = expenseRepo.Search(userID, start, end, &other.ID, 20, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, total)

		// Update replaces the whole item set.
		loaded.Items = loaded.Items[:1]
		loaded.RecalculateTotals()
		require.NoError(t, expenseRepo.Update(*loaded))

		reloaded, err := expenseRepo.FindByID(expense.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, reloaded.ItemCount)

		require.NoError(t, expenseRepo.Delete(expense.ID))
		_, err = expenseRepo.FindByID(expense.ID)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("soft deleted category is not active", func(t *testing.T) {
		victim := categories[len(categories)-1]
		require.NoError(t, categoryRepo.MarkDeleted(victim.ID))

		exists, err := categoryRepo.DoesCategoryExistByID(victim.ID, userID)
		require.NoError(t, err)
		assert.False(t, exists)

		active, err := categoryRepo.FindActiveByUser(userID)
		require.NoError(t, err)
		assert.Len(t, active, len(domain.PredefinedCategories)-1)
	})

	t.Run("budget uniqueness per month", func(t *testing.T) {
		budget := domain.MonthlyBudget{
			ID:     uuid.New(),
			UserID: userID,
			Year:   2025,
			Month:  3,
			Budget: decimal.RequireFromString("1500.00"),
			CategoryBudgets: []domain.CategoryBudget{
				{ID: uuid.New(), CategoryID: groceries.ID, Budget: decimal.RequireFromString("500.00")},
			},
		}
		require.NoError(t, budgetRepo.Save(budget))

		loaded, err := budgetRepo.FindByUserAndMonth(userID, 2025, 3)
		require.NoError(t, err)
		require.Len(t, loaded.CategoryBudgets, 1)
		assert.Equal(t, groceries.Name, loaded.CategoryBudgets[0].CategoryName)

		dup := domain.MonthlyBudget{
			ID:     uuid.New(),
			UserID: userID,
			Year:   2025,
			Month:  3,
			Budget: decimal.RequireFromString("900.00"),
		}
		assert.ErrorIs(t, budgetRepo.Save(dup), domain.ErrDuplicate)
	})
}
