package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/fintrackhq/fintrack-api/internal/models"
)

// BorrowFSM wraps a borrow with its state machine.
// Approval and rejection are informational transitions set by the user;
// settlement happens automatically when the remaining amount reaches zero.
// Settled is terminal: no event leaves it.
type BorrowFSM struct {
	borrow *models.Borrow
	fsm    *fsm.FSM
}

// NewBorrowFSM creates a new borrow state machine
func NewBorrowFSM(borrow *models.Borrow) *BorrowFSM {
	bfsm := &BorrowFSM{
		borrow: borrow,
	}

	bfsm.fsm = fsm.NewFSM(
		borrow.Status,
		fsm.Events{
			// pending → approved (manual, does not gate repayment)
			{Name: "approve", Src: []string{models.BorrowStatusPending}, Dst: models.BorrowStatusApproved},

			// pending → rejected (manual, does not gate repayment)
			{Name: "reject", Src: []string{models.BorrowStatusPending}, Dst: models.BorrowStatusRejected},

			// any non-terminal state → settled, when fully repaid
			{Name: "settle", Src: []string{models.BorrowStatusPending, models.BorrowStatusApproved, models.BorrowStatusRejected}, Dst: models.BorrowStatusSettled},
		},
		fsm.Callbacks{},
	)

	return bfsm
}

// Approve transitions the borrow to approved state
func (b *BorrowFSM) Approve(ctx context.Context) error {
	if !b.borrow.MayApprove() {
		return fmt.Errorf("borrow cannot be approved in current state: %s", b.borrow.Status)
	}

	if err := b.fsm.Event(ctx, "approve"); err != nil {
		return fmt.Errorf("failed to approve borrow: %w", err)
	}

	b.borrow.Status = b.fsm.Current()
	return nil
}

// Reject transitions the borrow to rejected state
func (b *BorrowFSM) Reject(ctx context.Context) error {
	if !b.borrow.MayReject() {
		return fmt.Errorf("borrow cannot be rejected in current state: %s", b.borrow.Status)
	}

	if err := b.fsm.Event(ctx, "reject"); err != nil {
		return fmt.Errorf("failed to reject borrow: %w", err)
	}

	b.borrow.Status = b.fsm.Current()
	return nil
}

// Settle transitions the borrow to the terminal settled state
func (b *BorrowFSM) Settle(ctx context.Context) error {
	if err := b.fsm.Event(ctx, "settle"); err != nil {
		return fmt.Errorf("failed to settle borrow: %w", err)
	}

	b.borrow.Status = b.fsm.Current()
	return nil
}

// Current returns the current state
func (b *BorrowFSM) Current() string {
	return b.fsm.Current()
}

// Can checks if a transition is possible
func (b *BorrowFSM) Can(event string) bool {
	return b.fsm.Can(event)
}
