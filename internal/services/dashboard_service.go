package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fintrackhq/fintrack-api/internal/ledger"
	"github.com/fintrackhq/fintrack-api/internal/repository"
)

// DashboardService assembles the consolidated financial overview.
type DashboardService struct {
	incomeRepo  repository.IncomeRepository
	expenseRepo repository.ExpenseRepository
	borrowRepo  repository.BorrowRepository
	lendRepo    repository.LendRepository
	savingRepo  repository.SavingRepository
	balanceSvc  *BalanceService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	incomeRepo repository.IncomeRepository,
	expenseRepo repository.ExpenseRepository,
	borrowRepo repository.BorrowRepository,
	lendRepo repository.LendRepository,
	savingRepo repository.SavingRepository,
	balanceSvc *BalanceService,
) *DashboardService {
	return &DashboardService{
		incomeRepo:  incomeRepo,
		expenseRepo: expenseRepo,
		borrowRepo:  borrowRepo,
		lendRepo:    lendRepo,
		savingRepo:  savingRepo,
		balanceSvc:  balanceSvc,
	}
}

// DashboardSummary is the consolidated view of a user's finances. Balances
// are always all-time folds; the totals honor the requested date range.
type DashboardSummary struct {
	WalletBalance     decimal.Decimal `json:"wallet_balance"`
	SavingsBalance    decimal.Decimal `json:"savings_balance"`
	TotalIncome       decimal.Decimal `json:"total_income"`
	TotalExpenses     decimal.Decimal `json:"total_expenses"`
	NetSaved          decimal.Decimal `json:"net_saved"`
	BorrowOutstanding decimal.Decimal `json:"borrow_outstanding"`
	LendOutstanding   decimal.Decimal `json:"lend_outstanding"`
	OpenBorrows       int             `json:"open_borrows"`
	OpenLends         int             `json:"open_lends"`
}

// Summary builds the dashboard for a user
func (s *DashboardService) Summary(ctx context.Context, userID uint, rng repository.DateRange) (*DashboardSummary, error) {
	wallet, err := s.balanceSvc.WalletBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	savingsBalance, err := s.balanceSvc.SavingsBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	incomes, err := s.incomeRepo.FindByUser(ctx, userID, repository.IncomeFilter{Range: rng})
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenseRepo.FindByUser(ctx, userID, repository.ExpenseFilter{Range: rng})
	if err != nil {
		return nil, err
	}

	savings, err := s.savingRepo.FindByUser(ctx, userID, repository.SavingFilter{Range: rng})
	if err != nil {
		return nil, err
	}

	borrows, err := s.borrowRepo.FindByUser(ctx, userID, repository.ObligationFilter{})
	if err != nil {
		return nil, err
	}

	lends, err := s.lendRepo.FindByUser(ctx, userID, repository.ObligationFilter{})
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		WalletBalance:  wallet,
		SavingsBalance: savingsBalance,
	}

	totalIncome := decimal.Zero
	for i := range incomes {
		totalIncome = totalIncome.Add(incomes[i].Amount)
	}
	summary.TotalIncome = ledger.Quantize(totalIncome)

	totalExpenses := decimal.Zero
	for i := range expenses {
		totalExpenses = totalExpenses.Add(expenses[i].Amount)
	}
	summary.TotalExpenses = ledger.Quantize(totalExpenses)

	netSaved := decimal.Zero
	for i := range savings {
		netSaved = netSaved.Add(savings[i].Posting().Amount)
	}
	summary.NetSaved = ledger.Quantize(netSaved)

	borrowOutstanding := decimal.Zero
	for i := range borrows {
		if !borrows[i].IsSettled() {
			borrowOutstanding = borrowOutstanding.Add(borrows[i].RemainingAmount)
			summary.OpenBorrows++
		}
	}
	summary.BorrowOutstanding = ledger.Quantize(borrowOutstanding)

	lendOutstanding := decimal.Zero
	for i := range lends {
		if !lends[i].IsSettled() {
			lendOutstanding = lendOutstanding.Add(lends[i].RemainingAmount)
			summary.OpenLends++
		}
	}
	summary.LendOutstanding = ledger.Quantize(lendOutstanding)

	return summary, nil
}
