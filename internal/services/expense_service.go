package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrackhq/fintrack-api/internal/ledger"
	"github.com/fintrackhq/fintrack-api/internal/models"
	"github.com/fintrackhq/fintrack-api/internal/repository"
)

// ExpenseService handles expense records. Expenses always debit the wallet;
// the wallet is allowed to go negative, which the dashboard surfaces rather
// than the API refusing the spend.
type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo repository.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

// ExpenseInput carries the fields of an expense request
type ExpenseInput struct {
	Amount      decimal.Decimal
	Category    string
	Date        time.Time
	Description *string
}

func validateExpense(input *ExpenseInput) error {
	if !input.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	}
	if input.Category == "" {
		return fmt.Errorf("%w: category is required", ErrValidation)
	}
	return nil
}

// Create records an expense
func (s *ExpenseService) Create(ctx context.Context, userID uint, input ExpenseInput) (*models.Expense, error) {
	if err := validateExpense(&input); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		UserID:      userID,
		Amount:      ledger.Quantize(input.Amount),
		Category:    input.Category,
		Date:        input.Date,
		Description: input.Description,
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	return expense, nil
}

// Get returns one expense owned by the user
func (s *ExpenseService) Get(ctx context.Context, userID, id uint) (*models.Expense, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, ErrNotFound
	}
	return expense, nil
}

// List returns the user's expenses, optionally filtered
func (s *ExpenseService) List(ctx context.Context, userID uint, filter repository.ExpenseFilter) ([]models.Expense, error) {
	return s.expenseRepo.FindByUser(ctx, userID, filter)
}

// Update edits an expense
func (s *ExpenseService) Update(ctx context.Context, userID, id uint, input ExpenseInput) (*models.Expense, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, ErrNotFound
	}

	if err := validateExpense(&input); err != nil {
		return nil, err
	}

	expense.Amount = ledger.Quantize(input.Amount)
	expense.Category = input.Category
	expense.Date = input.Date
	expense.Description = input.Description

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	return expense, nil
}

// Delete removes an expense
func (s *ExpenseService) Delete(ctx context.Context, userID, id uint) error {
	if _, err := s.expenseRepo.FindByID(ctx, id, userID); err != nil {
		return ErrNotFound
	}
	return s.expenseRepo.Delete(ctx, id, userID)
}
