package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fintrackhq/fintrack-api/internal/models"
)

func savingsFixture() []models.Saving {
	// Balance folds to 700
	return []models.Saving{
		{Amount: d("1000"), Type: models.SavingTypeManual},
		{Amount: d("300"), Type: models.SavingTypeSpend},
	}
}

func TestSavingCreate_Deposit(t *testing.T) {
	repo := &mockSavingRepo{}
	svc := NewSavingService(repo, newTestBalanceService(nil, nil, nil, nil, nil))

	saving, err := svc.Create(context.Background(), 1, SavingInput{
		Amount: d("150.555"),
		Reason: "Emergency fund",
		Date:   yesterday(),
	})

	assert.NoError(t, err)
	assert.Equal(t, models.SavingTypeManual, saving.Type)
	assert.Equal(t, "150.56", saving.Amount.StringFixed(2))
}

func TestSavingCreate_SpendWithinBalance(t *testing.T) {
	repo := &mockSavingRepo{}
	svc := NewSavingService(repo, newTestBalanceService(nil, nil, nil, nil, savingsFixture()))

	_, err := svc.Create(context.Background(), 1, SavingInput{
		Amount: d("700"),
		Type:   models.SavingTypeSpend,
		Date:   yesterday(),
	})

	assert.NoError(t, err)
}

func TestSavingCreate_SpendExceedsBalance(t *testing.T) {
	repo := &mockSavingRepo{}
	svc := NewSavingService(repo, newTestBalanceService(nil, nil, nil, nil, savingsFixture()))

	_, err := svc.Create(context.Background(), 1, SavingInput{
		Amount: d("800"),
		Type:   models.SavingTypeSpend,
		Date:   yesterday(),
	})

	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Contains(t, err.Error(), "700.00")
}

func TestSavingCreate_RejectsUnknownType(t *testing.T) {
	svc := NewSavingService(&mockSavingRepo{}, newTestBalanceService(nil, nil, nil, nil, nil))

	_, err := svc.Create(context.Background(), 1, SavingInput{
		Amount: d("100"),
		Type:   "bonus",
		Date:   yesterday(),
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestSavingUpdate_RefusesNegativeFold(t *testing.T) {
	deposit := &models.Saving{ID: 1, UserID: 1, Amount: d("1000"), Type: models.SavingTypeManual}
	repo := &mockSavingRepo{
		mockFindByID: func(ctx context.Context, id, userID uint) (*models.Saving, error) {
			return deposit, nil
		},
	}
	svc := NewSavingService(repo, newTestBalanceService(nil, nil, nil, nil, savingsFixture()))

	// Shrinking the 1000 deposit to 200 would leave 200-300 = -100
	_, err := svc.Update(context.Background(), 1, 1, SavingInput{
		Amount: d("200"),
		Type:   models.SavingTypeManual,
		Date:   yesterday(),
	})

	assert.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestSavingUpdate_AllowsNonNegativeFold(t *testing.T) {
	deposit := &models.Saving{ID: 1, UserID: 1, Amount: d("1000"), Type: models.SavingTypeManual}
	repo := &mockSavingRepo{
		mockFindByID: func(ctx context.Context, id, userID uint) (*models.Saving, error) {
			return deposit, nil
		},
	}
	svc := NewSavingService(repo, newTestBalanceService(nil, nil, nil, nil, savingsFixture()))

	saving, err := svc.Update(context.Background(), 1, 1, SavingInput{
		Amount: d("300"),
		Type:   models.SavingTypeManual,
		Date:   yesterday(),
	})

	assert.NoError(t, err)
	assert.Equal(t, "300.00", saving.Amount.StringFixed(2))
}

func TestSavingDelete_RefusesNegativeFold(t *testing.T) {
	deposit := &models.Saving{ID: 1, UserID: 1, Amount: d("1000"), Type: models.SavingTypeManual}
	repo := &mockSavingRepo{
		mockFindByID: func(ctx context.Context, id, userID uint) (*models.Saving, error) {
			return deposit, nil
		},
	}
	svc := NewSavingService(repo, newTestBalanceService(nil, nil, nil, nil, savingsFixture()))

	// Deleting the only deposit leaves the 300 spend unbacked
	err := svc.Delete(context.Background(), 1, 1)

	assert.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestSavingDelete_AllowsSpendRemoval(t *testing.T) {
	spend := &models.Saving{ID: 2, UserID: 1, Amount: d("300"), Type: models.SavingTypeSpend}
	var deleted bool
	repo := &mockSavingRepo{
		mockFindByID: func(ctx context.Context, id, userID uint) (*models.Saving, error) {
			return spend, nil
		},
		mockDelete: func(ctx context.Context, id, userID uint) error {
			deleted = true
			return nil
		},
	}
	svc := NewSavingService(repo, newTestBalanceService(nil, nil, nil, nil, savingsFixture()))

	err := svc.Delete(context.Background(), 1, 2)

	assert.NoError(t, err)
	assert.True(t, deleted)
}

func TestSavingBalance(t *testing.T) {
	svc := NewSavingService(&mockSavingRepo{}, newTestBalanceService(nil, nil, nil, nil, savingsFixture()))

	balance, err := svc.Balance(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, "700.00", balance.StringFixed(2))
}
