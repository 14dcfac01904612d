package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/fintrackhq/fintrack-api/internal/models"
)

func TestBorrowCreate_StartsWithFullRemaining(t *testing.T) {
	repo := &mockBorrowRepo{}
	svc := NewBorrowService(repo, &mockRepaymentRepo{})

	borrow, err := svc.Create(context.Background(), 1, ObligationInput{
		Person: "Alice",
		Amount: d("500.005"),
		Date:   yesterday(),
	})

	assert.NoError(t, err)
	assert.Equal(t, "500.01", borrow.Amount.StringFixed(2))
	assert.True(t, borrow.RemainingAmount.Equal(borrow.Amount))
	assert.Equal(t, models.BorrowStatusPending, borrow.Status)
	assert.Equal(t, "wallet", borrow.Destination)
}

func TestBorrowCreate_RequiresPerson(t *testing.T) {
	svc := NewBorrowService(&mockBorrowRepo{}, &mockRepaymentRepo{})

	_, err := svc.Create(context.Background(), 1, ObligationInput{
		Amount: d("100"),
		Date:   yesterday(),
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestBorrowApprove_FromPending(t *testing.T) {
	borrow := testBorrow("500", "500")
	repo := &mockBorrowRepo{
		mockFindByID: func(ctx context.Context, id, userID uint) (*models.Borrow, error) {
			return borrow, nil
		},
	}
	svc := NewBorrowService(repo, &mockRepaymentRepo{})

	updated, err := svc.Approve(context.Background(), 1, 1)

	assert.NoError(t, err)
	assert.Equal(t, models.BorrowStatusApproved, updated.Status)
}

func TestBorrowApprove_RejectsNonPending(t *testing.T) {
	borrow := testBorrow("500", "500")
	borrow.Status = models.BorrowStatusRejected
	repo := &mockBorrowRepo{
		mockFindByID: func(ctx context.Context, id, userID uint) (*models.Borrow, error) {
			return borrow, nil
		},
	}
	svc := NewBorrowService(repo, &mockRepaymentRepo{})

	_, err := svc.Approve(context.Background(), 1, 1)

	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestBorrowUpdate_RecomputesRemaining(t *testing.T) {
	borrow := testBorrow("500", "300")
	repo := &mockBorrowRepo{
		mockFindByID: func(ctx context.Context, id, userID uint) (*models.Borrow, error) {
			return borrow, nil
		},
	}
	repaymentRepo := &mockRepaymentRepo{
		mockSumForBorrow: func(ctx context.Context, borrowID uint) (decimal.Decimal, error) {
			return d("200"), nil
		},
	}
	svc := NewBorrowService(repo, repaymentRepo)

	updated, err := svc.Update(context.Background(), 1, 1, ObligationInput{
		Person: "Alice",
		Amount: d("800"),
		Date:   yesterday(),
	})

	assert.NoError(t, err)
	assert.Equal(t, "600.00", updated.RemainingAmount.StringFixed(2))
	assert.Equal(t, models.BorrowStatusPending, updated.Status)
}

func TestBorrowUpdate_RejectsAmountBelowPaid(t *testing.T) {
	borrow := testBorrow("500", "300")
	repo := &mockBorrowRepo{
		mockFindByID: func(ctx context.Context, id, userID uint) (*models.Borrow, error) {
			return borrow, nil
		},
	}
	repaymentRepo := &mockRepaymentRepo{
		mockSumForBorrow: func(ctx context.Context, borrowID uint) (decimal.Decimal, error) {
			return d("200"), nil
		},
	}
	svc := NewBorrowService(repo, repaymentRepo)

	_, err := svc.Update(context.Background(), 1, 1, ObligationInput{
		Person: "Alice",
		Amount: d("150"),
		Date:   yesterday(),
	})

	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "200.00")
}

func TestBorrowUpdate_SettlesWhenAmountMatchesPaid(t *testing.T) {
	borrow := testBorrow("500", "300")
	repo := &mockBorrowRepo{
		mockFindByID: func(ctx context.Context, id, userID uint) (*models.Borrow, error) {
			return borrow, nil
		},
	}
	repaymentRepo := &mockRepaymentRepo{
		mockSumForBorrow: func(ctx context.Context, borrowID uint) (decimal.Decimal, error) {
			return d("200"), nil
		},
	}
	svc := NewBorrowService(repo, repaymentRepo)

	updated, err := svc.Update(context.Background(), 1, 1, ObligationInput{
		Person: "Alice",
		Amount: d("200"),
		Date:   yesterday(),
	})

	assert.NoError(t, err)
	assert.Equal(t, models.BorrowStatusSettled, updated.Status)
	assert.True(t, updated.RemainingAmount.IsZero())
}

func TestBorrowUpdate_SettledIsImmutable(t *testing.T) {
	borrow := testBorrow("500", "0")
	borrow.Status = models.BorrowStatusSettled
	repo := &mockBorrowRepo{
		mockFindByID: func(ctx context.Context, id, userID uint) (*models.Borrow, error) {
			return borrow, nil
		},
	}
	svc := NewBorrowService(repo, &mockRepaymentRepo{})

	_, err := svc.Update(context.Background(), 1, 1, ObligationInput{
		Person: "Alice",
		Amount: d("500"),
		Date:   yesterday(),
	})

	assert.ErrorIs(t, err, ErrInvalidState)
}
