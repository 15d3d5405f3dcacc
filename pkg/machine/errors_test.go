package machine_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/vendingkit/pkg/machine"
)

func TestErrorPredicates(t *testing.T) {
	t.Parallel()

	t.Run("invalid command", func(t *testing.T) {
		t.Parallel()
		err := machine.NewInvalidCommandError(machine.StateReady, machine.CommandDispense)
		assert.True(t, machine.IsInvalidCommandError(err))
		assert.False(t, machine.IsBusyError(err))
		assert.Contains(t, err.Error(), "dispense")
		assert.Contains(t, err.Error(), "ready")

		wrapped := fmt.Errorf("request failed: %w", err)
		assert.True(t, machine.IsInvalidCommandError(wrapped))
	})

	t.Run("busy", func(t *testing.T) {
		t.Parallel()
		err := machine.NewBusyError(machine.CommandInsertCoin)
		assert.True(t, machine.IsBusyError(err))
		assert.Contains(t, err.Error(), "busy")
	})

	t.Run("insufficient funds shortfall", func(t *testing.T) {
		t.Parallel()
		err := machine.NewInsufficientFundsError("cola", 1000, 999)
		assert.True(t, machine.IsInsufficientFundsError(err))
		assert.Equal(t, int64(1), err.Shortfall())
		assert.Contains(t, err.Error(), "short 1")
	})

	t.Run("predicates ignore unrelated errors", func(t *testing.T) {
		t.Parallel()
		err := errors.New("plain")
		assert.False(t, machine.IsInvalidCommandError(err))
		assert.False(t, machine.IsBusyError(err))
		assert.False(t, machine.IsInsufficientFundsError(err))
	})
}
