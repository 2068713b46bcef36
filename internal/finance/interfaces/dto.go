package interfaces

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pkoziol/ReceiptLedger/internal/finance/application"
	"github.com/pkoziol/ReceiptLedger/internal/finance/domain"
)

type expenseItemDTO struct {
	ID           uuid.UUID       `json:"id"`
	ProductName  string          `json:"productName"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	CategoryID   uuid.UUID       `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
}

type expenseDTO struct {
	ID              uuid.UUID        `json:"id"`
	Description     string           `json:"description"`
	TransactionDate time.Time        `json:"transactionDate"`
	TotalAmount     decimal.Decimal  `json:"totalAmount"`
	ItemCount       int              `json:"itemCount"`
	Items           []expenseItemDTO `json:"items,omitempty"`
}

type expenseSummaryDTO struct {
	ID              uuid.UUID       `json:"id"`
	Description     string          `json:"description"`
	TransactionDate time.Time       `json:"transactionDate"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	ItemCount       int             `json:"itemCount"`
}

type expensePageDTO struct {
	Expenses      []expenseSummaryDTO `json:"expenses"`
	Page          int                 `json:"page"`
	Size          int                 `json:"size"`
	TotalElements int                 `json:"totalElements"`
	TotalPages    int                 `json:"totalPages"`
}

type categoryDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

type categoryBudgetDTO struct {
	ID           uuid.UUID       `json:"id"`
	CategoryID   uuid.UUID       `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Budget       decimal.Decimal `json:"budget"`
}

type budgetDTO struct {
	ID              uuid.UUID           `json:"id"`
	Year            int                 `json:"year"`
	Month           int                 `json:"month"`
	Budget          decimal.Decimal     `json:"budget"`
	CategoryBudgets []categoryBudgetDTO `json:"categoryBudgets"`
}

type kpiDTO struct {
	Budget        decimal.Decimal `json:"budget"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
}

type trendEntryDTO struct {
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

type categorySummaryDTO struct {
	CategoryID   uuid.UUID       `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	TotalSpent   decimal.Decimal `json:"totalSpent"`
	Budget       decimal.Decimal `json:"budget"`
}

type dashboardDTO struct {
	KPI               kpiDTO               `json:"kpi"`
	Trend             []trendEntryDTO      `json:"trend"`
	CategorySummaries []categorySummaryDTO `json:"categorySummaries"`
}

type monthlySpendingDTO struct {
	Month         int             `json:"month"`
	TotalSpending decimal.Decimal `json:"totalSpending"`
	Budget        decimal.Decimal `json:"budget"`
}

type shoppingListItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	ProductName string          `json:"productName"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	IsPurchased bool            `json:"isPurchased"`
}

type shoppingListDTO struct {
	ID        uuid.UUID             `json:"id"`
	Name      string                `json:"name"`
	ItemCount int                   `json:"itemCount"`
	CreatedAt time.Time             `json:"createdAt"`
	Items     []shoppingListItemDTO `json:"items,omitempty"`
}

func toExpenseItemDTO(item domain.ExpenseItem) expenseItemDTO {
	return expenseItemDTO{
		ID:           item.ID,
		ProductName:  item.ProductName,
		Quantity:     item.Quantity,
		Price:        item.Price,
		CategoryID:   item.CategoryID,
		CategoryName: item.CategoryName,
	}
}

func toExpenseDTO(expense *domain.Expense) expenseDTO {
	dto := expenseDTO{
		ID:              expense.ID,
		Description:     expense.Description,
		TransactionDate: expense.TransactionDate,
		TotalAmount:     expense.TotalAmount,
		ItemCount:       expense.ItemCount,
	}
	for _, item := range expense.Items {
		dto.Items = append(dto.Items, toExpenseItemDTO(item))
	}
	return dto
}

func toExpensePageDTO(page *application.ExpensePage) expensePageDTO {
	dto := expensePageDTO{
		Expenses:      []expenseSummaryDTO{},
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
	}
	for _, expense := range page.Expenses {
		dto.Expenses = append(dto.Expenses, expenseSummaryDTO{
			ID:              expense.ID,
			Description:     expense.Description,
			TransactionDate: expense.TransactionDate,
			TotalAmount:     expense.TotalAmount,
			ItemCount:       expense.ItemCount,
		})
	}
	return dto
}

func toCategoryDTO(category domain.Category) categoryDTO {
	return categoryDTO{ID: category.ID, Name: category.Name, Description: category.Description}
}

func toBudgetDTO(budget *domain.MonthlyBudget) budgetDTO {
	dto := budgetDTO{
		ID:              budget.ID,
		Year:            budget.Year,
		Month:           budget.Month,
		Budget:          budget.Budget,
		CategoryBudgets: []categoryBudgetDTO{},
	}
	for _, cb := range budget.CategoryBudgets {
		dto.CategoryBudgets = append(dto.CategoryBudgets, categoryBudgetDTO{
			ID:           cb.ID,
			CategoryID:   cb.CategoryID,
			CategoryName: cb.CategoryName,
			Budget:       cb.Budget,
		})
	}
	return dto
}

func toDashboardDTO(data *application.DashboardData) dashboardDTO {
	dto := dashboardDTO{
		KPI:               kpiDTO{Budget: data.KPI.Budget, TotalExpenses: data.KPI.TotalExpenses},
		Trend:             []trendEntryDTO{},
		CategorySummaries: []categorySummaryDTO{},
	}
	for _, entry := range data.Trend {
		dto.Trend = append(dto.Trend, trendEntryDTO{Year: entry.Year, Month: entry.Month, TotalAmount: entry.TotalAmount})
	}
	for _, summary := range data.CategorySummaries {
		dto.CategorySummaries = append(dto.CategorySummaries, categorySummaryDTO{
			CategoryID:   summary.CategoryID,
			CategoryName: summary.CategoryName,
			TotalSpent:   summary.TotalSpent,
			Budget:       summary.Budget,
		})
	}
	return dto
}

func toShoppingListDTO(list *domain.ShoppingList) shoppingListDTO {
	dto := shoppingListDTO{
		ID:        list.ID,
		Name:      list.Name,
		ItemCount: list.ItemCount,
		CreatedAt: list.CreatedAt,
	}
	for _, item := range list.Items {
		dto.Items = append(dto.Items, shoppingListItemDTO{
			ID:          item.ID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			IsPurchased: item.IsPurchased,
		})
	}
	return dto
}
