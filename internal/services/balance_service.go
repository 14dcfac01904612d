package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fintrackhq/fintrack-api/internal/ledger"
	"github.com/fintrackhq/fintrack-api/internal/repository"
)

// BalanceService derives account balances by folding the postings of every
// persisted transaction row. Nothing is read from a stored balance: the
// transaction tables are the single source of truth, so the fold always
// agrees with the data no matter what order rows were written in.
//
// Repayments never appear in the fold directly. Each repayment persists a
// counterpart row (Expense, Income or Saving) in the same transaction, and
// that counterpart carries the balance effect.
type BalanceService struct {
	incomeRepo  repository.IncomeRepository
	expenseRepo repository.ExpenseRepository
	borrowRepo  repository.BorrowRepository
	lendRepo    repository.LendRepository
	savingRepo  repository.SavingRepository
}

// NewBalanceService creates a new balance service
func NewBalanceService(
	incomeRepo repository.IncomeRepository,
	expenseRepo repository.ExpenseRepository,
	borrowRepo repository.BorrowRepository,
	lendRepo repository.LendRepository,
	savingRepo repository.SavingRepository,
) *BalanceService {
	return &BalanceService{
		incomeRepo:  incomeRepo,
		expenseRepo: expenseRepo,
		borrowRepo:  borrowRepo,
		lendRepo:    lendRepo,
		savingRepo:  savingRepo,
	}
}

// Postings collects the signed ledger contributions of every transaction row
// for a user, optionally limited to a date window.
func (s *BalanceService) Postings(ctx context.Context, userID uint, rng repository.DateRange) ([]ledger.Posting, error) {
	incomes, err := s.incomeRepo.FindByUser(ctx, userID, repository.IncomeFilter{Range: rng})
	if err != nil {
		return nil, fmt.Errorf("failed to load income: %w", err)
	}

	expenses, err := s.expenseRepo.FindByUser(ctx, userID, repository.ExpenseFilter{Range: rng})
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	borrows, err := s.borrowRepo.FindByUser(ctx, userID, repository.ObligationFilter{Range: rng})
	if err != nil {
		return nil, fmt.Errorf("failed to load borrows: %w", err)
	}

	lends, err := s.lendRepo.FindByUser(ctx, userID, repository.ObligationFilter{Range: rng})
	if err != nil {
		return nil, fmt.Errorf("failed to load lends: %w", err)
	}

	savings, err := s.savingRepo.FindByUser(ctx, userID, repository.SavingFilter{Range: rng})
	if err != nil {
		return nil, fmt.Errorf("failed to load savings: %w", err)
	}

	postings := make([]ledger.Posting, 0, len(incomes)+len(expenses)+len(borrows)+len(lends)+len(savings))
	for i := range incomes {
		postings = append(postings, incomes[i].Posting())
	}
	for i := range expenses {
		postings = append(postings, expenses[i].Posting())
	}
	for i := range borrows {
		postings = append(postings, borrows[i].Posting())
	}
	for i := range lends {
		postings = append(postings, lends[i].Posting())
	}
	for i := range savings {
		postings = append(postings, savings[i].Posting())
	}

	return postings, nil
}

// WalletBalance folds the wallet balance for a user
func (s *BalanceService) WalletBalance(ctx context.Context, userID uint) (decimal.Decimal, error) {
	return s.Balance(ctx, userID, ledger.AccountWallet)
}

// SavingsBalance folds the savings balance for a user
func (s *BalanceService) SavingsBalance(ctx context.Context, userID uint) (decimal.Decimal, error) {
	return s.Balance(ctx, userID, ledger.AccountSavings)
}

// Balance folds the balance of one account for a user
func (s *BalanceService) Balance(ctx context.Context, userID uint, account ledger.Account) (decimal.Decimal, error) {
	postings, err := s.Postings(ctx, userID, repository.DateRange{})
	if err != nil {
		return decimal.Zero, err
	}
	return ledger.Balance(account, postings), nil
}
