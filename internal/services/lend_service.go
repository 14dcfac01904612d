package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fintrackhq/fintrack-api/internal/ledger"
	"github.com/fintrackhq/fintrack-api/internal/models"
	"github.com/fintrackhq/fintrack-api/internal/repository"
	"github.com/fintrackhq/fintrack-api/internal/statemachine"
)

// LendService handles lend obligations: money the user is owed.
type LendService struct {
	lendRepo      repository.LendRepository
	repaymentRepo repository.RepaymentRepository
	balanceSvc    *BalanceService
}

// NewLendService creates a new lend service
func NewLendService(lendRepo repository.LendRepository, repaymentRepo repository.RepaymentRepository, balanceSvc *BalanceService) *LendService {
	return &LendService{
		lendRepo:      lendRepo,
		repaymentRepo: repaymentRepo,
		balanceSvc:    balanceSvc,
	}
}

// Create records a new lend. The principal leaves the source account through
// the ledger fold. Lending out of savings is refused when it would take the
// savings balance negative.
func (s *LendService) Create(ctx context.Context, userID uint, input ObligationInput) (*models.Lend, error) {
	source, err := validateObligation(&input)
	if err != nil {
		return nil, err
	}

	amount := ledger.Quantize(input.Amount)

	if source == ledger.AccountSavings {
		balance, err := s.balanceSvc.SavingsBalance(ctx, userID)
		if err != nil {
			return nil, err
		}
		if balance.LessThan(amount) {
			return nil, fmt.Errorf("%w: savings balance is %s, cannot lend %s",
				ErrInsufficientBalance, balance.StringFixed(2), amount.StringFixed(2))
		}
	}

	lend := &models.Lend{
		UserID:          userID,
		Person:          input.Person,
		Amount:          amount,
		RemainingAmount: amount,
		Description:     input.Description,
		Status:          models.LendStatusPending,
		Source:          string(source),
		Date:            input.Date,
	}

	if err := s.lendRepo.Create(ctx, lend); err != nil {
		return nil, fmt.Errorf("failed to create lend: %w", err)
	}

	return lend, nil
}

// Get returns one lend owned by the user
func (s *LendService) Get(ctx context.Context, userID, id uint) (*models.Lend, error) {
	lend, err := s.lendRepo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, ErrNotFound
	}
	return lend, nil
}

// List returns the user's lends, optionally filtered by status and date
func (s *LendService) List(ctx context.Context, userID uint, filter repository.ObligationFilter) ([]models.Lend, error) {
	return s.lendRepo.FindByUser(ctx, userID, filter)
}

// Update edits a lend's descriptive fields and principal. Settled lends are
// immutable. When the principal changes, the remaining amount is recomputed
// from the repayments already recorded.
func (s *LendService) Update(ctx context.Context, userID, id uint, input ObligationInput) (*models.Lend, error) {
	lend, err := s.lendRepo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, ErrNotFound
	}
	if lend.IsSettled() {
		return nil, fmt.Errorf("%w: settled obligations cannot be edited", ErrInvalidState)
	}

	source, err := validateObligation(&input)
	if err != nil {
		return nil, err
	}

	amount := ledger.Quantize(input.Amount)
	if !amount.Equal(lend.Amount) {
		received, err := s.repaymentRepo.SumForLend(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to total repayments: %w", err)
		}
		if amount.LessThan(received) {
			return nil, fmt.Errorf("%w: amount %s is less than the %s already collected",
				ErrValidation, amount.StringFixed(2), received.StringFixed(2))
		}

		lend.Amount = amount
		lend.RemainingAmount = ledger.Quantize(amount.Sub(received))
		if !lend.RemainingAmount.IsPositive() {
			lend.RemainingAmount = decimal.Zero
			if err := statemachine.NewLendFSM(lend).Settle(ctx); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
			}
		}
	}

	lend.Person = input.Person
	lend.Description = input.Description
	lend.Source = string(source)
	lend.Date = input.Date

	if err := s.lendRepo.Update(ctx, lend); err != nil {
		return nil, fmt.Errorf("failed to update lend: %w", err)
	}

	return lend, nil
}

// Delete removes a lend and its repayment history
func (s *LendService) Delete(ctx context.Context, userID, id uint) error {
	if _, err := s.lendRepo.FindByID(ctx, id, userID); err != nil {
		return ErrNotFound
	}
	return s.lendRepo.Delete(ctx, id, userID)
}
