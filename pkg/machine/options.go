package machine

import (
	"log/slog"

	"github.com/dmitrymomot/vendingkit/pkg/translog"
)

// Option configures a Machine during construction.
type Option func(*Machine)

// WithTransactionLog attaches an append-only audit trail. Every accepted
// command is recorded; a failed append aborts and rolls back the command.
func WithTransactionLog(recorder *translog.Recorder) Option {
	return func(m *Machine) {
		if recorder != nil {
			m.recorder = recorder
		}
	}
}

// WithLogger sets the structured logger for transition logging. Without it
// the machine stays silent.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}
