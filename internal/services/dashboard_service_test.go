package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fintrackhq/fintrack-api/internal/models"
	"github.com/fintrackhq/fintrack-api/internal/repository"
)

func TestDashboardSummary(t *testing.T) {
	incomes := []models.Income{
		{Amount: d("3000"), Source: "salary", Destination: "wallet"},
		{Amount: d("200"), Source: "freelance", Destination: "wallet"},
	}
	expenses := []models.Expense{
		{Amount: d("450.25"), Category: "rent"},
	}
	savings := []models.Saving{
		{Amount: d("600"), Type: models.SavingTypeManual},
		{Amount: d("100"), Type: models.SavingTypeSpend},
	}
	borrows := []models.Borrow{
		{Amount: d("500"), RemainingAmount: d("300"), Status: models.BorrowStatusPending, Destination: "wallet"},
		{Amount: d("200"), RemainingAmount: d("0"), Status: models.BorrowStatusSettled, Destination: "wallet"},
	}
	lends := []models.Lend{
		{Amount: d("150"), RemainingAmount: d("150"), Status: models.LendStatusPending, Source: "wallet"},
	}

	balanceSvc := newTestBalanceService(incomes, expenses, borrows, lends, savings)
	svc := NewDashboardService(
		&mockIncomeRepo{mockFindByUser: func(ctx context.Context, userID uint, filter repository.IncomeFilter) ([]models.Income, error) {
			return incomes, nil
		}},
		&mockExpenseRepo{mockFindByUser: func(ctx context.Context, userID uint, filter repository.ExpenseFilter) ([]models.Expense, error) {
			return expenses, nil
		}},
		&mockBorrowRepo{mockFindByUser: func(ctx context.Context, userID uint, filter repository.ObligationFilter) ([]models.Borrow, error) {
			return borrows, nil
		}},
		&mockLendRepo{mockFindByUser: func(ctx context.Context, userID uint, filter repository.ObligationFilter) ([]models.Lend, error) {
			return lends, nil
		}},
		&mockSavingRepo{mockFindByUser: func(ctx context.Context, userID uint, filter repository.SavingFilter) ([]models.Saving, error) {
			return savings, nil
		}},
		balanceSvc,
	)

	summary, err := svc.Summary(context.Background(), 1, repository.DateRange{})

	assert.NoError(t, err)

	// Wallet: 3000+200-450.25 +500+200 borrowed -150 lent. Settled
	// principals still fold; their repayment counterparts carry the offset.
	assert.Equal(t, "3299.75", summary.WalletBalance.StringFixed(2))
	assert.Equal(t, "500.00", summary.SavingsBalance.StringFixed(2))

	assert.Equal(t, "3200.00", summary.TotalIncome.StringFixed(2))
	assert.Equal(t, "450.25", summary.TotalExpenses.StringFixed(2))
	assert.Equal(t, "500.00", summary.NetSaved.StringFixed(2))

	// Settled obligations drop out of outstanding totals
	assert.Equal(t, "300.00", summary.BorrowOutstanding.StringFixed(2))
	assert.Equal(t, "150.00", summary.LendOutstanding.StringFixed(2))
	assert.Equal(t, 1, summary.OpenBorrows)
	assert.Equal(t, 1, summary.OpenLends)
}

func TestDashboardSummary_EmptyUser(t *testing.T) {
	svc := NewDashboardService(
		&mockIncomeRepo{}, &mockExpenseRepo{},
		&mockBorrowRepo{}, &mockLendRepo{}, &mockSavingRepo{},
		newTestBalanceService(nil, nil, nil, nil, nil),
	)

	summary, err := svc.Summary(context.Background(), 1, repository.DateRange{})

	assert.NoError(t, err)
	assert.True(t, summary.WalletBalance.IsZero())
	assert.True(t, summary.SavingsBalance.IsZero())
	assert.Zero(t, summary.OpenBorrows)
	assert.Zero(t, summary.OpenLends)
}
