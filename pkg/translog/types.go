package translog

import (
	"context"
	"fmt"
	"time"
)

// Entry is a single transaction log record. Entries are append-only and never
// mutated after they are stored.
type Entry struct {
	ID      string    `json:"id"`
	Time    time.Time `json:"time"`
	Command string    `json:"command"`
	State   string    `json:"state"`
	Detail  string    `json:"detail,omitempty"`
}

// Validate checks that the entry carries the required fields.
func (e *Entry) Validate() error {
	if e.Command == "" {
		return fmt.Errorf("%w: command is required", ErrEntryValidation)
	}
	if e.State == "" {
		return fmt.Errorf("%w: state is required", ErrEntryValidation)
	}
	return nil
}

// Storage persists transaction log entries. Implementations must keep
// insertion order: Recent returns the last n entries with the newest last,
// without removing anything.
type Storage interface {
	Append(ctx context.Context, entry Entry) error
	Recent(ctx context.Context, n int) ([]Entry, error)
}
