package translog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Recorder stamps entries with an id and timestamp and forwards them to the
// configured storage. It is the only writer the machine controller talks to.
type Recorder struct {
	storage Storage
	now     func() time.Time
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithClock overrides the timestamp source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRecorder creates a recorder writing to the given storage.
func NewRecorder(storage Storage, opts ...Option) *Recorder {
	if storage == nil {
		panic("translog: storage cannot be nil")
	}

	r := &Recorder{
		storage: storage,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record appends an entry for the given command, the state it resulted in,
// and a free-form detail string.
func (r *Recorder) Record(ctx context.Context, command, state, detail string) error {
	entry := Entry{
		ID:      uuid.New().String(),
		Time:    r.now(),
		Command: command,
		State:   state,
		Detail:  detail,
	}

	if err := entry.Validate(); err != nil {
		return err
	}
	return r.storage.Append(ctx, entry)
}

// Recent returns the last n entries, newest last. n <= 0 yields an empty
// result without touching storage.
func (r *Recorder) Recent(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}
	return r.storage.Recent(ctx, n)
}
