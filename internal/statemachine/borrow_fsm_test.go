package statemachine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fintrackhq/fintrack-api/internal/models"
)

func pendingBorrow() *models.Borrow {
	return &models.Borrow{Status: models.BorrowStatusPending}
}

func TestBorrowFSM_ApproveFromPending(t *testing.T) {
	borrow := pendingBorrow()

	err := NewBorrowFSM(borrow).Approve(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, models.BorrowStatusApproved, borrow.Status)
}

func TestBorrowFSM_RejectFromPending(t *testing.T) {
	borrow := pendingBorrow()

	err := NewBorrowFSM(borrow).Reject(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, models.BorrowStatusRejected, borrow.Status)
}

func TestBorrowFSM_ApproveOnlyFromPending(t *testing.T) {
	for _, status := range []string{models.BorrowStatusApproved, models.BorrowStatusRejected, models.BorrowStatusSettled} {
		borrow := &models.Borrow{Status: status}
		err := NewBorrowFSM(borrow).Approve(context.Background())
		assert.Error(t, err)
		assert.Equal(t, status, borrow.Status)
	}
}

func TestBorrowFSM_SettleFromAnyOpenState(t *testing.T) {
	for _, status := range []string{models.BorrowStatusPending, models.BorrowStatusApproved, models.BorrowStatusRejected} {
		borrow := &models.Borrow{Status: status}
		err := NewBorrowFSM(borrow).Settle(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, models.BorrowStatusSettled, borrow.Status)
	}
}

func TestBorrowFSM_SettledIsTerminal(t *testing.T) {
	borrow := &models.Borrow{Status: models.BorrowStatusSettled}
	bfsm := NewBorrowFSM(borrow)

	assert.Error(t, bfsm.Approve(context.Background()))
	assert.Error(t, bfsm.Reject(context.Background()))
	assert.Error(t, bfsm.Settle(context.Background()))
	assert.Equal(t, models.BorrowStatusSettled, borrow.Status)

	assert.False(t, bfsm.Can("approve"))
	assert.False(t, bfsm.Can("reject"))
	assert.False(t, bfsm.Can("settle"))
}
