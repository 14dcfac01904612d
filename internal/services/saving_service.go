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

// SavingService handles savings entries. The savings balance is the fold of
// all entries and is never allowed to go negative: a spend larger than the
// current balance is refused.
type SavingService struct {
	savingRepo repository.SavingRepository
	balanceSvc *BalanceService
}

// NewSavingService creates a new saving service
func NewSavingService(savingRepo repository.SavingRepository, balanceSvc *BalanceService) *SavingService {
	return &SavingService{
		savingRepo: savingRepo,
		balanceSvc: balanceSvc,
	}
}

// SavingInput carries the fields of a savings entry request
type SavingInput struct {
	Amount decimal.Decimal
	Type   string
	Reason string
	Date   time.Time
}

func validateSaving(input *SavingInput) error {
	if !input.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	}

	if input.Type == "" {
		input.Type = models.SavingTypeManual
	}
	switch input.Type {
	case models.SavingTypeManual, models.SavingTypeAuto, models.SavingTypeSpend:
	default:
		return fmt.Errorf("%w: unknown saving type %q", ErrValidation, input.Type)
	}

	return nil
}

// Create records a savings entry. Spends are checked against the folded
// balance so savings can never go negative.
func (s *SavingService) Create(ctx context.Context, userID uint, input SavingInput) (*models.Saving, error) {
	if err := validateSaving(&input); err != nil {
		return nil, err
	}

	amount := ledger.Quantize(input.Amount)

	if input.Type == models.SavingTypeSpend {
		balance, err := s.balanceSvc.SavingsBalance(ctx, userID)
		if err != nil {
			return nil, err
		}
		if balance.LessThan(amount) {
			return nil, fmt.Errorf("%w: savings balance is %s, cannot spend %s",
				ErrInsufficientBalance, balance.StringFixed(2), amount.StringFixed(2))
		}
	}

	saving := &models.Saving{
		UserID: userID,
		Amount: amount,
		Type:   input.Type,
		Reason: input.Reason,
		Date:   input.Date,
	}

	if err := s.savingRepo.Create(ctx, saving); err != nil {
		return nil, fmt.Errorf("failed to create saving: %w", err)
	}

	return saving, nil
}

// Get returns one savings entry owned by the user
func (s *SavingService) Get(ctx context.Context, userID, id uint) (*models.Saving, error) {
	saving, err := s.savingRepo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, ErrNotFound
	}
	return saving, nil
}

// List returns the user's savings entries, optionally filtered
func (s *SavingService) List(ctx context.Context, userID uint, filter repository.SavingFilter) ([]models.Saving, error) {
	return s.savingRepo.FindByUser(ctx, userID, filter)
}

// Balance returns the folded savings balance
func (s *SavingService) Balance(ctx context.Context, userID uint) (decimal.Decimal, error) {
	return s.balanceSvc.SavingsBalance(ctx, userID)
}

// Update edits a savings entry. The edit is refused when the reshaped fold
// would leave the savings balance negative.
func (s *SavingService) Update(ctx context.Context, userID, id uint, input SavingInput) (*models.Saving, error) {
	saving, err := s.savingRepo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, ErrNotFound
	}

	if err := validateSaving(&input); err != nil {
		return nil, err
	}

	balance, err := s.balanceSvc.SavingsBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated := models.Saving{Amount: ledger.Quantize(input.Amount), Type: input.Type}
	newBalance := balance.Sub(saving.Posting().Amount).Add(updated.Posting().Amount)
	if newBalance.IsNegative() {
		return nil, fmt.Errorf("%w: edit would leave savings balance at %s",
			ErrInsufficientBalance, ledger.Quantize(newBalance).StringFixed(2))
	}

	saving.Amount = updated.Amount
	saving.Type = input.Type
	saving.Reason = input.Reason
	saving.Date = input.Date

	if err := s.savingRepo.Update(ctx, saving); err != nil {
		return nil, fmt.Errorf("failed to update saving: %w", err)
	}

	return saving, nil
}

// Delete removes a savings entry, refusing when the remaining fold would be
// negative (e.g. deleting a deposit that later spends rely on).
func (s *SavingService) Delete(ctx context.Context, userID, id uint) error {
	saving, err := s.savingRepo.FindByID(ctx, id, userID)
	if err != nil {
		return ErrNotFound
	}

	balance, err := s.balanceSvc.SavingsBalance(ctx, userID)
	if err != nil {
		return err
	}

	newBalance := balance.Sub(saving.Posting().Amount)
	if newBalance.IsNegative() {
		return fmt.Errorf("%w: delete would leave savings balance at %s",
			ErrInsufficientBalance, ledger.Quantize(newBalance).StringFixed(2))
	}

	return s.savingRepo.Delete(ctx, id, userID)
}
