package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"ipam-migrator/core/remote"
	"ipam-migrator/core/retry"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func noSleep(waits *[]time.Duration) retry.Option {
	return retry.WithSleeper(func(ctx context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		return nil
	})
}

func TestDo_TransientTwiceThenSuccess(t *testing.T) {
	var waits []time.Duration
	e := retry.New(5, 10*time.Second, zap.NewNop(), noSleep(&waits))

	calls := 0
	err := e.Do(context.Background(), "create vlan", func() error {
		calls++
		if calls < 3 {
			return remote.Classify("POST ipam/vlans", 503, "service unavailable", nil)
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
	// Linear backoff: delay × attempt number.
	assert.Equal(t, []time.Duration{10 * time.Second, 20 * time.Second}, waits)
}

func TestDo_SemanticFailsImmediately(t *testing.T) {
	var waits []time.Duration
	e := retry.New(5, time.Second, zap.NewNop(), noSleep(&waits))

	calls := 0
	err := e.Do(context.Background(), "create prefix", func() error {
		calls++
		return remote.Classify("POST ipam/prefixes", 400, "prefix already exists", nil)
	})

	assert.Error(t, err)
	assert.True(t, remote.IsDuplicate(err))
	assert.Equal(t, 1, calls)
	assert.Empty(t, waits)
}

func TestDo_UnknownNotRetried(t *testing.T) {
	e := retry.New(5, time.Second, zap.NewNop(), retry.WithSleeper(func(context.Context, time.Duration) error {
		t.Fatal("should not sleep")
		return nil
	}))

	calls := 0
	err := e.Do(context.Background(), "create vrf", func() error {
		calls++
		return errors.New("unclassified failure")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	var waits []time.Duration
	e := retry.New(3, time.Second, zap.NewNop(), noSleep(&waits))

	calls := 0
	want := remote.Classify("POST ipam/vrfs", 0, "connection reset by peer", nil)
	err := e.Do(context.Background(), "create vrf", func() error {
		calls++
		return want
	})

	assert.Equal(t, 3, calls)
	assert.Len(t, waits, 2)
	var re *remote.Error
	assert.ErrorAs(t, err, &re)
	assert.Equal(t, remote.KindTransient, re.Kind)
}

func TestDo_RetryAllRetriesUnknown(t *testing.T) {
	var waits []time.Duration
	e := retry.New(2, time.Second, zap.NewNop(), retry.WithRetryAll(), noSleep(&waits))

	calls := 0
	err := e.Do(context.Background(), "create address", func() error {
		calls++
		return errors.New("anything")
	})

	assert.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestDo_RetryAllSkipsDuplicates(t *testing.T) {
	e := retry.New(5, time.Second, zap.NewNop(), retry.WithRetryAll())

	calls := 0
	err := e.Do(context.Background(), "create vlan", func() error {
		calls++
		return remote.Classify("POST ipam/vlans", 409, "duplicate entry", nil)
	})

	assert.True(t, remote.IsDuplicate(err))
	assert.Equal(t, 1, calls)
}

func TestDo_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := retry.New(3, time.Second, zap.NewNop())
	err := e.Do(ctx, "create vrf", func() error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
