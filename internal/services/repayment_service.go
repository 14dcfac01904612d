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
	"github.com/fintrackhq/fintrack-api/pkg/logger"
)

// RepaymentService applies repayments against borrow and lend obligations.
// Every repayment persists three things atomically: the repayment row, a
// counterpart transaction on the paying or receiving account, and the
// obligation with its decremented remaining amount. When the remaining
// amount reaches zero the obligation settles, and settled is terminal.
type RepaymentService struct {
	repaymentRepo   repository.RepaymentRepository
	borrowRepo      repository.BorrowRepository
	lendRepo        repository.LendRepository
	balanceSvc      *BalanceService
	notificationSvc *NotificationService
}

// NewRepaymentService creates a new repayment service
func NewRepaymentService(
	repaymentRepo repository.RepaymentRepository,
	borrowRepo repository.BorrowRepository,
	lendRepo repository.LendRepository,
	balanceSvc *BalanceService,
	notificationSvc *NotificationService,
) *RepaymentService {
	return &RepaymentService{
		repaymentRepo:   repaymentRepo,
		borrowRepo:      borrowRepo,
		lendRepo:        lendRepo,
		balanceSvc:      balanceSvc,
		notificationSvc: notificationSvc,
	}
}

// RepaymentInput carries the fields of a repayment request. Account is the
// source account when paying a borrow and the destination account when
// collecting a lend; it defaults to the wallet.
type RepaymentInput struct {
	Amount  decimal.Decimal
	Date    time.Time
	Account string
	Notes   *string
}

// PayBorrow records a payment toward a borrow, moving money out of the
// chosen account via a counterpart transaction.
func (s *RepaymentService) PayBorrow(ctx context.Context, userID, borrowID uint, input RepaymentInput) (*models.Repayment, error) {
	borrow, err := s.borrowRepo.FindByID(ctx, borrowID, userID)
	if err != nil {
		return nil, ErrNotFound
	}
	if borrow.IsSettled() {
		return nil, fmt.Errorf("%w: obligation is already settled", ErrInvalidState)
	}

	amount := ledger.Quantize(input.Amount)
	account, err := validateRepayment(amount, input.Date, borrow.RemainingAmount, input.Account)
	if err != nil {
		return nil, err
	}

	// Paying out requires the money to actually be there.
	balance, err := s.balanceSvc.Balance(ctx, userID, account)
	if err != nil {
		return nil, err
	}
	if balance.LessThan(amount) {
		return nil, fmt.Errorf("%w: %s balance is %s, cannot pay %s",
			ErrInsufficientBalance, account, balance.StringFixed(2), amount.StringFixed(2))
	}

	accountStr := string(account)
	repayment := &models.Repayment{
		Amount:   amount,
		Date:     input.Date,
		Source:   &accountStr,
		Notes:    input.Notes,
		BorrowID: &borrow.ID,
	}

	app := &repository.RepaymentApplication{
		Repayment: repayment,
		Borrow:    borrow,
	}

	reason := fmt.Sprintf("Repayment to %s", borrow.Person)
	if account == ledger.AccountSavings {
		app.Saving = &models.Saving{
			UserID: userID,
			Amount: amount,
			Type:   models.SavingTypeSpend,
			Reason: reason,
			Date:   input.Date,
		}
	} else {
		app.Expense = &models.Expense{
			UserID:      userID,
			Amount:      amount,
			Category:    "repayment",
			Date:        input.Date,
			Description: &reason,
		}
	}

	borrow.RemainingAmount = ledger.Quantize(borrow.RemainingAmount.Sub(amount))
	settled := !borrow.RemainingAmount.IsPositive()
	if settled {
		borrow.RemainingAmount = decimal.Zero
		if err := statemachine.NewBorrowFSM(borrow).Settle(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
		}
	}

	if err := s.repaymentRepo.Apply(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to apply repayment: %w", err)
	}

	if settled {
		s.notifySettled(ctx, userID, "borrow", borrow.Person)
	}

	repayment.Borrow = borrow
	return repayment, nil
}

// ReceiveLend records a collection on a lend, moving money into the chosen
// account via a counterpart transaction.
func (s *RepaymentService) ReceiveLend(ctx context.Context, userID, lendID uint, input RepaymentInput) (*models.Repayment, error) {
	lend, err := s.lendRepo.FindByID(ctx, lendID, userID)
	if err != nil {
		return nil, ErrNotFound
	}
	if lend.IsSettled() {
		return nil, fmt.Errorf("%w: obligation is already settled", ErrInvalidState)
	}

	amount := ledger.Quantize(input.Amount)
	account, err := validateRepayment(amount, input.Date, lend.RemainingAmount, input.Account)
	if err != nil {
		return nil, err
	}

	accountStr := string(account)
	notes := fmt.Sprintf("Repayment from %s", lend.Person)
	repayment := &models.Repayment{
		Amount:      amount,
		Date:        input.Date,
		Destination: &accountStr,
		Notes:       input.Notes,
		LendID:      &lend.ID,
	}

	app := &repository.RepaymentApplication{
		Repayment: repayment,
		Lend:      lend,
	}

	if account == ledger.AccountSavings {
		app.Saving = &models.Saving{
			UserID: userID,
			Amount: amount,
			Type:   models.SavingTypeAuto,
			Reason: notes,
			Date:   input.Date,
		}
	} else {
		app.Income = &models.Income{
			UserID:      userID,
			Amount:      amount,
			Source:      "repayment",
			Date:        input.Date,
			Destination: string(ledger.AccountWallet),
			Notes:       &notes,
		}
	}

	lend.RemainingAmount = ledger.Quantize(lend.RemainingAmount.Sub(amount))
	settled := !lend.RemainingAmount.IsPositive()
	if settled {
		lend.RemainingAmount = decimal.Zero
		if err := statemachine.NewLendFSM(lend).Settle(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
		}
	}

	if err := s.repaymentRepo.Apply(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to apply repayment: %w", err)
	}

	if settled {
		s.notifySettled(ctx, userID, "lend", lend.Person)
	}

	repayment.Lend = lend
	return repayment, nil
}

// validateRepayment runs the shared precondition checks and resolves the
// account. Each failure names what was wrong, including exact amounts.
func validateRepayment(amount decimal.Decimal, date time.Time, remaining decimal.Decimal, accountName string) (ledger.Account, error) {
	if !amount.IsPositive() {
		return "", fmt.Errorf("%w: repayment amount must be greater than zero", ErrValidation)
	}

	if date.Format("2006-01-02") > time.Now().Format("2006-01-02") {
		return "", fmt.Errorf("%w: repayment date cannot be in the future", ErrValidation)
	}

	if amount.GreaterThan(remaining) {
		return "", fmt.Errorf("%w: repayment of %s exceeds remaining amount of %s",
			ErrExceedsRemaining, amount.StringFixed(2), remaining.StringFixed(2))
	}

	account := ledger.Account(accountName)
	if accountName == "" {
		account = ledger.AccountWallet
	}
	if !account.Valid() {
		return "", fmt.Errorf("%w: unknown account %q", ErrValidation, accountName)
	}

	return account, nil
}

// ListForBorrow returns the repayment history of one borrow
func (s *RepaymentService) ListForBorrow(ctx context.Context, userID, borrowID uint) ([]models.Repayment, error) {
	if _, err := s.borrowRepo.FindByID(ctx, borrowID, userID); err != nil {
		return nil, ErrNotFound
	}
	return s.repaymentRepo.FindByBorrow(ctx, borrowID, userID)
}

// ListForLend returns the repayment history of one lend
func (s *RepaymentService) ListForLend(ctx context.Context, userID, lendID uint) ([]models.Repayment, error) {
	if _, err := s.lendRepo.FindByID(ctx, lendID, userID); err != nil {
		return nil, ErrNotFound
	}
	return s.repaymentRepo.FindByLend(ctx, lendID, userID)
}

// List returns all repayments for a user across both obligation types
func (s *RepaymentService) List(ctx context.Context, userID uint, filter repository.RepaymentFilter) ([]models.Repayment, error) {
	return s.repaymentRepo.List(ctx, userID, filter)
}

func (s *RepaymentService) notifySettled(ctx context.Context, userID uint, kind, person string) {
	var message string
	if kind == "borrow" {
		message = fmt.Sprintf("Your debt to %s is fully repaid.", person)
	} else {
		message = fmt.Sprintf("Your loan to %s is fully collected.", person)
	}
	if err := s.notificationSvc.NotifyUser(ctx, userID, "Obligation settled", message, models.NotificationTypeObligationSettled); err != nil {
		logger.Error(fmt.Sprintf("failed to create settlement notification: %v", err))
	}
}
