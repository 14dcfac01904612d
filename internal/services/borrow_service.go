package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrackhq/fintrack-api/internal/ledger"
	"github.com/fintrackhq/fintrack-api/internal/models"
	"github.com/fintrackhq/fintrack-api/internal/repository"
	"github.com/fintrackhq/fintrack-api/internal/statemachine"
)

// BorrowService handles borrow obligations: money the user owes someone.
type BorrowService struct {
	borrowRepo    repository.BorrowRepository
	repaymentRepo repository.RepaymentRepository
}

// NewBorrowService creates a new borrow service
func NewBorrowService(borrowRepo repository.BorrowRepository, repaymentRepo repository.RepaymentRepository) *BorrowService {
	return &BorrowService{
		borrowRepo:    borrowRepo,
		repaymentRepo: repaymentRepo,
	}
}

// ObligationInput carries the fields shared by borrow and lend records.
// Account is the destination for borrows and the source for lends.
type ObligationInput struct {
	Person      string
	Amount      decimal.Decimal
	Description *string
	Account     string
	Date        time.Time
}

func validateObligation(input *ObligationInput) (ledger.Account, error) {
	if input.Person == "" {
		return "", fmt.Errorf("%w: person is required", ErrValidation)
	}
	if !input.Amount.IsPositive() {
		return "", fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	}

	account := ledger.Account(input.Account)
	if input.Account == "" {
		account = ledger.AccountWallet
	}
	if !account.Valid() {
		return "", fmt.Errorf("%w: unknown account %q", ErrValidation, input.Account)
	}

	return account, nil
}

// Create records a new borrow. The principal is credited to the destination
// account through the ledger fold; the remaining amount starts at the full
// principal and only repayments bring it down.
func (s *BorrowService) Create(ctx context.Context, userID uint, input ObligationInput) (*models.Borrow, error) {
	destination, err := validateObligation(&input)
	if err != nil {
		return nil, err
	}

	amount := ledger.Quantize(input.Amount)
	borrow := &models.Borrow{
		UserID:          userID,
		Person:          input.Person,
		Amount:          amount,
		RemainingAmount: amount,
		Description:     input.Description,
		Status:          models.BorrowStatusPending,
		Destination:     string(destination),
		Date:            input.Date,
	}

	if err := s.borrowRepo.Create(ctx, borrow); err != nil {
		return nil, fmt.Errorf("failed to create borrow: %w", err)
	}

	return borrow, nil
}

// Get returns one borrow owned by the user
func (s *BorrowService) Get(ctx context.Context, userID, id uint) (*models.Borrow, error) {
	borrow, err := s.borrowRepo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, ErrNotFound
	}
	return borrow, nil
}

// List returns the user's borrows, optionally filtered by status and date
func (s *BorrowService) List(ctx context.Context, userID uint, filter repository.ObligationFilter) ([]models.Borrow, error) {
	return s.borrowRepo.FindByUser(ctx, userID, filter)
}

// Update edits a borrow's descriptive fields and principal. Settled borrows
// are immutable. When the principal changes, the remaining amount is
// recomputed from the repayments already recorded.
func (s *BorrowService) Update(ctx context.Context, userID, id uint, input ObligationInput) (*models.Borrow, error) {
	borrow, err := s.borrowRepo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, ErrNotFound
	}
	if borrow.IsSettled() {
		return nil, fmt.Errorf("%w: settled obligations cannot be edited", ErrInvalidState)
	}

	destination, err := validateObligation(&input)
	if err != nil {
		return nil, err
	}

	amount := ledger.Quantize(input.Amount)
	if !amount.Equal(borrow.Amount) {
		paid, err := s.repaymentRepo.SumForBorrow(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to total repayments: %w", err)
		}
		if amount.LessThan(paid) {
			return nil, fmt.Errorf("%w: amount %s is less than the %s already repaid",
				ErrValidation, amount.StringFixed(2), paid.StringFixed(2))
		}

		borrow.Amount = amount
		borrow.RemainingAmount = ledger.Quantize(amount.Sub(paid))
		if !borrow.RemainingAmount.IsPositive() {
			borrow.RemainingAmount = decimal.Zero
			if err := statemachine.NewBorrowFSM(borrow).Settle(ctx); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
			}
		}
	}

	borrow.Person = input.Person
	borrow.Description = input.Description
	borrow.Destination = string(destination)
	borrow.Date = input.Date

	if err := s.borrowRepo.Update(ctx, borrow); err != nil {
		return nil, fmt.Errorf("failed to update borrow: %w", err)
	}

	return borrow, nil
}

// Delete removes a borrow and its repayment history
func (s *BorrowService) Delete(ctx context.Context, userID, id uint) error {
	if _, err := s.borrowRepo.FindByID(ctx, id, userID); err != nil {
		return ErrNotFound
	}
	return s.borrowRepo.Delete(ctx, id, userID)
}

// Approve marks a pending borrow as acknowledged by the counterparty.
// Approval is informational; it does not gate repayment.
func (s *BorrowService) Approve(ctx context.Context, userID, id uint) (*models.Borrow, error) {
	return s.transition(ctx, userID, id, func(fsm *statemachine.BorrowFSM) error {
		return fsm.Approve(ctx)
	})
}

// Reject marks a pending borrow as disputed by the counterparty.
func (s *BorrowService) Reject(ctx context.Context, userID, id uint) (*models.Borrow, error) {
	return s.transition(ctx, userID, id, func(fsm *statemachine.BorrowFSM) error {
		return fsm.Reject(ctx)
	})
}

func (s *BorrowService) transition(ctx context.Context, userID, id uint, event func(*statemachine.BorrowFSM) error) (*models.Borrow, error) {
	borrow, err := s.borrowRepo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, ErrNotFound
	}

	if err := event(statemachine.NewBorrowFSM(borrow)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	if err := s.borrowRepo.Update(ctx, borrow); err != nil {
		return nil, fmt.Errorf("failed to update borrow: %w", err)
	}

	return borrow, nil
}
