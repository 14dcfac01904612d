package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/fintrackhq/fintrack-api/internal/models"
)

// LendFSM wraps a lend with its state machine. A lend only moves from
// pending to settled, automatically, when the remaining amount reaches zero.
type LendFSM struct {
	lend *models.Lend
	fsm  *fsm.FSM
}

// NewLendFSM creates a new lend state machine
func NewLendFSM(lend *models.Lend) *LendFSM {
	lfsm := &LendFSM{
		lend: lend,
	}

	lfsm.fsm = fsm.NewFSM(
		lend.Status,
		fsm.Events{
			// pending → settled, when fully repaid; terminal
			{Name: "settle", Src: []string{models.LendStatusPending}, Dst: models.LendStatusSettled},
		},
		fsm.Callbacks{},
	)

	return lfsm
}

// Settle transitions the lend to the terminal settled state
func (l *LendFSM) Settle(ctx context.Context) error {
	if err := l.fsm.Event(ctx, "settle"); err != nil {
		return fmt.Errorf("failed to settle lend: %w", err)
	}

	l.lend.Status = l.fsm.Current()
	return nil
}

// Current returns the current state
func (l *LendFSM) Current() string {
	return l.fsm.Current()
}

// Can checks if a transition is possible
func (l *LendFSM) Can(event string) bool {
	return l.fsm.Can(event)
}
