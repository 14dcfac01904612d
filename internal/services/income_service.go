package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrackhq/fintrack-api/internal/jobs"
	"github.com/fintrackhq/fintrack-api/internal/ledger"
	"github.com/fintrackhq/fintrack-api/internal/models"
	"github.com/fintrackhq/fintrack-api/internal/repository"
	"github.com/fintrackhq/fintrack-api/pkg/logger"
)

// IncomeService handles income records. Salary credits to the wallet get
// special treatment: whatever is left in the wallet is swept into savings
// first, then the salary lands in the empty wallet, and a credit report is
// generated in the background.
type IncomeService struct {
	incomeRepo repository.IncomeRepository
	savingRepo repository.SavingRepository
	balanceSvc *BalanceService
	reportSvc  *ReportService
	worker     *jobs.Worker
}

// NewIncomeService creates a new income service
func NewIncomeService(
	incomeRepo repository.IncomeRepository,
	savingRepo repository.SavingRepository,
	balanceSvc *BalanceService,
	reportSvc *ReportService,
	worker *jobs.Worker,
) *IncomeService {
	return &IncomeService{
		incomeRepo: incomeRepo,
		savingRepo: savingRepo,
		balanceSvc: balanceSvc,
		reportSvc:  reportSvc,
		worker:     worker,
	}
}

// IncomeInput carries the fields of an income request
type IncomeInput struct {
	Amount      decimal.Decimal
	Source      string
	Date        time.Time
	Destination string
	Notes       *string
}

func (s *IncomeService) validate(input *IncomeInput) (ledger.Account, error) {
	if !input.Amount.IsPositive() {
		return "", fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	}
	if input.Source == "" {
		return "", fmt.Errorf("%w: source is required", ErrValidation)
	}

	destination := ledger.Account(input.Destination)
	if input.Destination == "" {
		destination = ledger.AccountWallet
	}
	if !destination.Valid() {
		return "", fmt.Errorf("%w: unknown account %q", ErrValidation, input.Destination)
	}

	return destination, nil
}

// Create records an income. A salary credited to the wallet first sweeps the
// existing wallet balance into savings.
func (s *IncomeService) Create(ctx context.Context, userID uint, input IncomeInput) (*models.Income, error) {
	destination, err := s.validate(&input)
	if err != nil {
		return nil, err
	}

	income := &models.Income{
		UserID:      userID,
		Amount:      ledger.Quantize(input.Amount),
		Source:      input.Source,
		Date:        input.Date,
		Destination: string(destination),
		Notes:       input.Notes,
	}

	salary := income.IsSalary() && destination == ledger.AccountWallet
	if salary {
		if err := s.sweepWallet(ctx, userID, input.Date); err != nil {
			return nil, err
		}
	}

	if err := s.incomeRepo.Create(ctx, income); err != nil {
		return nil, fmt.Errorf("failed to create income: %w", err)
	}

	if salary {
		s.worker.EnqueueAsync(func(jobCtx context.Context) error {
			return s.reportSvc.GenerateSalaryCreditReport(jobCtx, userID, income.ID)
		})
	}

	return income, nil
}

// sweepWallet moves the current wallet balance into savings ahead of a
// salary credit. Two rows record the transfer: a savings credit and a
// negative income counter-entry that zeroes the wallet, so the ledger fold
// stays consistent without touching any existing rows.
func (s *IncomeService) sweepWallet(ctx context.Context, userID uint, date time.Time) error {
	balance, err := s.balanceSvc.WalletBalance(ctx, userID)
	if err != nil {
		return err
	}
	if !balance.IsPositive() {
		return nil
	}

	saving := &models.Saving{
		UserID: userID,
		Amount: balance,
		Type:   models.SavingTypeAuto,
		Reason: "Pre-salary wallet sweep",
		Date:   date,
	}
	if err := s.savingRepo.Create(ctx, saving); err != nil {
		return fmt.Errorf("failed to create sweep saving: %w", err)
	}

	notes := "Moved to savings before salary credit"
	counter := &models.Income{
		UserID:      userID,
		Amount:      balance.Neg(),
		Source:      "wallet_sweep",
		Date:        date,
		Destination: string(ledger.AccountWallet),
		Notes:       &notes,
	}
	if err := s.incomeRepo.Create(ctx, counter); err != nil {
		return fmt.Errorf("failed to create sweep counter-entry: %w", err)
	}

	logger.Info(fmt.Sprintf("swept %s from wallet to savings for user %d", balance.StringFixed(2), userID))
	return nil
}

// Get returns one income record owned by the user
func (s *IncomeService) Get(ctx context.Context, userID, id uint) (*models.Income, error) {
	income, err := s.incomeRepo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, ErrNotFound
	}
	return income, nil
}

// List returns the user's income records, optionally filtered
func (s *IncomeService) List(ctx context.Context, userID uint, filter repository.IncomeFilter) ([]models.Income, error) {
	return s.incomeRepo.FindByUser(ctx, userID, filter)
}

// Update edits an income record
func (s *IncomeService) Update(ctx context.Context, userID, id uint, input IncomeInput) (*models.Income, error) {
	income, err := s.incomeRepo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, ErrNotFound
	}

	destination, err := s.validate(&input)
	if err != nil {
		return nil, err
	}

	income.Amount = ledger.Quantize(input.Amount)
	income.Source = input.Source
	income.Date = input.Date
	income.Destination = string(destination)
	income.Notes = input.Notes

	if err := s.incomeRepo.Update(ctx, income); err != nil {
		return nil, fmt.Errorf("failed to update income: %w", err)
	}

	return income, nil
}

// Delete removes an income record
func (s *IncomeService) Delete(ctx context.Context, userID, id uint) error {
	if _, err := s.incomeRepo.FindByID(ctx, id, userID); err != nil {
		return ErrNotFound
	}
	return s.incomeRepo.Delete(ctx, id, userID)
}
