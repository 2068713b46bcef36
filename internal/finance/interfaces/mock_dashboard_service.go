package interfaces

import (
	"errors"

	"github.com/pkoziol/ReceiptLedger/internal/finance/application"
)

type MockDashboardService struct {
	data       *application.DashboardData
	summary    []application.MonthlySpending
	err        error
	shouldFail bool
}

func (m *MockDashboardService) GetDashboardData(userID string, year, month int) (*application.DashboardData, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.data, nil
}

func (m *MockDashboardService) GetYearlySpendingSummary(userID string, year int) ([]application.MonthlySpending, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.summary, nil
}
