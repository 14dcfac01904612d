package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fintrackhq/fintrack-api/internal/jobs"
	"github.com/fintrackhq/fintrack-api/internal/models"
	"github.com/fintrackhq/fintrack-api/internal/repository"
	"github.com/fintrackhq/fintrack-api/internal/storage"
)

// salaryTestHarness wires an income service with a real worker and report
// pipeline so the salary path can run end to end.
type salaryTestHarness struct {
	incomeRepo     *mockIncomeRepo
	savingRepo     *mockSavingRepo
	reportRepo     *mockReportRepo
	worker         *jobs.Worker
	svc            *IncomeService
	createdIncomes []*models.Income
	createdSavings []*models.Saving
	reportDone     chan struct{}
}

func newSalaryTestHarness(t *testing.T, walletIncomes []models.Income) *salaryTestHarness {
	t.Helper()

	h := &salaryTestHarness{reportDone: make(chan struct{}, 1)}

	h.incomeRepo = &mockIncomeRepo{
		mockCreate: func(ctx context.Context, income *models.Income) error {
			income.ID = uint(len(h.createdIncomes) + 1)
			h.createdIncomes = append(h.createdIncomes, income)
			return nil
		},
		mockFindByID: func(ctx context.Context, id, userID uint) (*models.Income, error) {
			for _, income := range h.createdIncomes {
				if income.ID == id {
					return income, nil
				}
			}
			return nil, ErrNotFound
		},
	}
	h.savingRepo = &mockSavingRepo{
		mockCreate: func(ctx context.Context, saving *models.Saving) error {
			h.createdSavings = append(h.createdSavings, saving)
			return nil
		},
	}
	h.reportRepo = &mockReportRepo{
		mockCreate: func(ctx context.Context, report *models.Report) error {
			select {
			case h.reportDone <- struct{}{}:
			default:
			}
			return nil
		},
	}

	balanceSvc := newTestBalanceService(walletIncomes, nil, nil, nil, nil)
	dashboardSvc := NewDashboardService(
		&mockIncomeRepo{}, &mockExpenseRepo{},
		&mockBorrowRepo{}, &mockLendRepo{}, &mockSavingRepo{},
		balanceSvc,
	)

	store, err := storage.NewLocalStorage(t.TempDir())
	assert.NoError(t, err)

	reportSvc := NewReportService(
		h.reportRepo, h.incomeRepo, &mockExpenseRepo{}, &mockSavingRepo{},
		dashboardSvc, newTestNotificationService(&mockNotificationRepo{}), store,
	)

	h.worker = jobs.NewWorker(1)
	t.Cleanup(h.worker.Shutdown)

	h.svc = NewIncomeService(h.incomeRepo, h.savingRepo, balanceSvc, reportSvc, h.worker)
	return h
}

func (h *salaryTestHarness) waitForReport(t *testing.T) {
	t.Helper()
	select {
	case <-h.reportDone:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for salary credit report")
	}
}

func TestIncomeCreate_SalarySweepsWallet(t *testing.T) {
	// Wallet already holds 250 before the salary lands
	h := newSalaryTestHarness(t, []models.Income{{Amount: d("250"), Destination: "wallet"}})

	income, err := h.svc.Create(context.Background(), 1, IncomeInput{
		Amount: d("3000"),
		Source: "Salary",
		Date:   yesterday(),
	})

	assert.NoError(t, err)
	assert.Equal(t, "3000.00", income.Amount.StringFixed(2))

	// Sweep deposited the old balance into savings
	assert.Len(t, h.createdSavings, 1)
	assert.Equal(t, models.SavingTypeAuto, h.createdSavings[0].Type)
	assert.Equal(t, "250.00", h.createdSavings[0].Amount.StringFixed(2))

	// Counter-entry zeroes the wallet, then the salary row follows
	assert.Len(t, h.createdIncomes, 2)
	assert.Equal(t, "wallet_sweep", h.createdIncomes[0].Source)
	assert.Equal(t, "-250.00", h.createdIncomes[0].Amount.StringFixed(2))
	assert.Equal(t, "Salary", h.createdIncomes[1].Source)

	// Background report lands after the credit
	h.waitForReport(t)
	assert.Len(t, h.reportRepo.created, 1)
	assert.Equal(t, models.ReportTypeSalaryCredit, h.reportRepo.created[0].Type)
}

func TestIncomeCreate_SalaryWithEmptyWalletSkipsSweep(t *testing.T) {
	h := newSalaryTestHarness(t, nil)

	_, err := h.svc.Create(context.Background(), 1, IncomeInput{
		Amount: d("3000"),
		Source: "salary",
		Date:   yesterday(),
	})

	assert.NoError(t, err)
	assert.Empty(t, h.createdSavings)
	assert.Len(t, h.createdIncomes, 1)

	// The report still runs
	h.waitForReport(t)
}

func TestIncomeCreate_NonSalaryDoesNotSweep(t *testing.T) {
	h := newSalaryTestHarness(t, []models.Income{{Amount: d("250"), Destination: "wallet"}})

	_, err := h.svc.Create(context.Background(), 1, IncomeInput{
		Amount: d("120"),
		Source: "freelance",
		Date:   yesterday(),
	})

	assert.NoError(t, err)
	assert.Empty(t, h.createdSavings)
	assert.Len(t, h.createdIncomes, 1)
	assert.Empty(t, h.reportRepo.created)
}

func TestIncomeCreate_SalaryToSavingsDoesNotSweep(t *testing.T) {
	h := newSalaryTestHarness(t, []models.Income{{Amount: d("250"), Destination: "wallet"}})

	_, err := h.svc.Create(context.Background(), 1, IncomeInput{
		Amount:      d("3000"),
		Source:      "Salary",
		Destination: "savings",
		Date:        yesterday(),
	})

	assert.NoError(t, err)
	assert.Empty(t, h.createdSavings)
	assert.Len(t, h.createdIncomes, 1)
}

func TestIncomeCreate_Validation(t *testing.T) {
	svc := NewIncomeService(&mockIncomeRepo{}, &mockSavingRepo{}, newTestBalanceService(nil, nil, nil, nil, nil), nil, nil)

	_, err := svc.Create(context.Background(), 1, IncomeInput{
		Amount: d("-5"),
		Source: "freelance",
		Date:   yesterday(),
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), 1, IncomeInput{
		Amount: d("100"),
		Date:   yesterday(),
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), 1, IncomeInput{
		Amount:      d("100"),
		Source:      "freelance",
		Destination: "vault",
		Date:        yesterday(),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestIncomeList_PassesFilter(t *testing.T) {
	var got repository.IncomeFilter
	repo := &mockIncomeRepo{
		mockFindByUser: func(ctx context.Context, userID uint, filter repository.IncomeFilter) ([]models.Income, error) {
			got = filter
			return nil, nil
		},
	}
	svc := NewIncomeService(repo, &mockSavingRepo{}, nil, nil, nil)

	from := "2026-01-01"
	_, err := svc.List(context.Background(), 1, repository.IncomeFilter{
		Source: "salary",
		Range:  repository.DateRange{From: &from},
	})

	assert.NoError(t, err)
	assert.Equal(t, "salary", got.Source)
	assert.Equal(t, &from, got.Range.From)
}
