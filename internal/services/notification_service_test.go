package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fintrackhq/fintrack-api/internal/models"
)

func singleUserRepo() *mockUserRepo {
	return &mockUserRepo{
		mockFindAll: func(ctx context.Context) ([]models.User, error) {
			return []models.User{{ID: 1}}, nil
		},
	}
}

func TestCheckLowSavings_NotifiesBelowThreshold(t *testing.T) {
	notifRepo := &mockNotificationRepo{}
	// Savings fold to 400, threshold 1000
	svc := NewNotificationService(
		notifRepo, singleUserRepo(), &mockBorrowRepo{}, &mockLendRepo{},
		newTestBalanceService(nil, nil, nil, nil, []models.Saving{{Amount: d("400"), Type: models.SavingTypeManual}}),
		"1000",
	)

	err := svc.CheckLowSavings(context.Background())

	assert.NoError(t, err)
	assert.Len(t, notifRepo.created, 1)
	assert.Equal(t, models.NotificationTypeLowSavings, *notifRepo.created[0].NotificationType)
	assert.Contains(t, notifRepo.created[0].Message, "400.00")
	assert.Contains(t, notifRepo.created[0].Message, "1000.00")
}

func TestCheckLowSavings_SkipsAboveThreshold(t *testing.T) {
	notifRepo := &mockNotificationRepo{}
	svc := NewNotificationService(
		notifRepo, singleUserRepo(), &mockBorrowRepo{}, &mockLendRepo{},
		newTestBalanceService(nil, nil, nil, nil, []models.Saving{{Amount: d("2000"), Type: models.SavingTypeManual}}),
		"1000",
	)

	err := svc.CheckLowSavings(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, notifRepo.created)
}

func TestCheckLowSavings_DedupsWithinADay(t *testing.T) {
	notifRepo := &mockNotificationRepo{
		mockExistsSince: func(ctx context.Context, userID uint, notificationType string, since time.Time) (bool, error) {
			return true, nil
		},
	}
	svc := NewNotificationService(
		notifRepo, singleUserRepo(), &mockBorrowRepo{}, &mockLendRepo{},
		newTestBalanceService(nil, nil, nil, nil, nil),
		"1000",
	)

	err := svc.CheckLowSavings(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, notifRepo.created)
}

func TestCheckLowSavings_DisabledWithoutThreshold(t *testing.T) {
	notifRepo := &mockNotificationRepo{}
	svc := NewNotificationService(
		notifRepo, singleUserRepo(), &mockBorrowRepo{}, &mockLendRepo{},
		newTestBalanceService(nil, nil, nil, nil, nil),
		"0",
	)

	err := svc.CheckLowSavings(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, notifRepo.created)
}

func TestCheckDueRepayments_NotifiesOnPastDue(t *testing.T) {
	notifRepo := &mockNotificationRepo{}
	borrowRepo := &mockBorrowRepo{
		mockFindPendingPastDue: func(ctx context.Context, userID uint) ([]models.Borrow, error) {
			return []models.Borrow{*testBorrow("500", "300")}, nil
		},
	}
	lendRepo := &mockLendRepo{
		mockFindPendingPastDue: func(ctx context.Context, userID uint) ([]models.Lend, error) {
			return []models.Lend{*testLend("200", "200"), *testLend("100", "100")}, nil
		},
	}
	svc := NewNotificationService(
		notifRepo, singleUserRepo(), borrowRepo, lendRepo,
		newTestBalanceService(nil, nil, nil, nil, nil),
		"1000",
	)

	err := svc.CheckDueRepayments(context.Background())

	assert.NoError(t, err)
	assert.Len(t, notifRepo.created, 1)
	assert.Equal(t, models.NotificationTypeRepaymentDue, *notifRepo.created[0].NotificationType)
	assert.Contains(t, notifRepo.created[0].Message, "1 debt(s)")
	assert.Contains(t, notifRepo.created[0].Message, "2 loan(s)")
}

func TestCheckDueRepayments_QuietWhenNothingDue(t *testing.T) {
	notifRepo := &mockNotificationRepo{}
	svc := NewNotificationService(
		notifRepo, singleUserRepo(), &mockBorrowRepo{}, &mockLendRepo{},
		newTestBalanceService(nil, nil, nil, nil, nil),
		"1000",
	)

	err := svc.CheckDueRepayments(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, notifRepo.created)
}

func TestCheckDueRepayments_DedupsWithinADay(t *testing.T) {
	notifRepo := &mockNotificationRepo{
		mockExistsSince: func(ctx context.Context, userID uint, notificationType string, since time.Time) (bool, error) {
			return true, nil
		},
	}
	borrowRepo := &mockBorrowRepo{
		mockFindPendingPastDue: func(ctx context.Context, userID uint) ([]models.Borrow, error) {
			t.Fatal("past due query should be skipped when a reminder already exists")
			return nil, nil
		},
	}
	svc := NewNotificationService(
		notifRepo, singleUserRepo(), borrowRepo, &mockLendRepo{},
		newTestBalanceService(nil, nil, nil, nil, nil),
		"1000",
	)

	err := svc.CheckDueRepayments(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, notifRepo.created)
}
