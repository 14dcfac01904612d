package statemachine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fintrackhq/fintrack-api/internal/models"
)

func TestLendFSM_SettleFromPending(t *testing.T) {
	lend := &models.Lend{Status: models.LendStatusPending}

	err := NewLendFSM(lend).Settle(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, models.LendStatusSettled, lend.Status)
}

func TestLendFSM_SettledIsTerminal(t *testing.T) {
	lend := &models.Lend{Status: models.LendStatusSettled}
	lfsm := NewLendFSM(lend)

	assert.Error(t, lfsm.Settle(context.Background()))
	assert.False(t, lfsm.Can("settle"))
	assert.Equal(t, models.LendStatusSettled, lend.Status)
}
