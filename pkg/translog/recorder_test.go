package translog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/vendingkit/pkg/translog"
)

// MockStorage implements translog.Storage for testing.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Append(ctx context.Context, entry translog.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockStorage) Recent(ctx context.Context, n int) ([]translog.Entry, error) {
	args := m.Called(ctx, n)
	if entries, ok := args.Get(0).([]translog.Entry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestNewRecorder(t *testing.T) {
	t.Parallel()

	t.Run("panics with nil storage", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			translog.NewRecorder(nil)
		})
	})
}

func TestRecord(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("stamps id and timestamp", func(t *testing.T) {
		t.Parallel()
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		storage := &MockStorage{}
		storage.On("Append", ctx, mock.MatchedBy(func(e translog.Entry) bool {
			return e.ID != "" && e.Time.Equal(now) && e.Command == "insert_coin" &&
				e.State == "coin_inserted" && e.Detail == "amount=500"
		})).Return(nil)

		rec := translog.NewRecorder(storage, translog.WithClock(func() time.Time { return now }))
		require.NoError(t, rec.Record(ctx, "insert_coin", "coin_inserted", "amount=500"))
		storage.AssertExpectations(t)
	})

	t.Run("rejects entries without command or state", func(t *testing.T) {
		t.Parallel()
		storage := &MockStorage{}
		rec := translog.NewRecorder(storage)

		require.ErrorIs(t, rec.Record(ctx, "", "ready", ""), translog.ErrEntryValidation)
		require.ErrorIs(t, rec.Record(ctx, "refund", "", ""), translog.ErrEntryValidation)
		storage.AssertNotCalled(t, "Append")
	})

	t.Run("propagates storage failure", func(t *testing.T) {
		t.Parallel()
		storage := &MockStorage{}
		storage.On("Append", ctx, mock.Anything).Return(errors.New("boom"))

		rec := translog.NewRecorder(storage)
		require.Error(t, rec.Record(ctx, "refund", "ready", ""))
	})
}

func TestRecent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("passes through to storage", func(t *testing.T) {
		t.Parallel()
		expected := []translog.Entry{{ID: "1", Command: "refund", State: "ready"}}
		storage := &MockStorage{}
		storage.On("Recent", ctx, 5).Return(expected, nil)

		rec := translog.NewRecorder(storage)
		entries, err := rec.Recent(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, expected, entries)
	})

	t.Run("non-positive limit skips storage", func(t *testing.T) {
		t.Parallel()
		storage := &MockStorage{}
		rec := translog.NewRecorder(storage)

		entries, err := rec.Recent(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, entries)
		storage.AssertNotCalled(t, "Recent")
	})
}
