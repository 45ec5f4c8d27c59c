package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/xo-engine/internal/entity"
)

type recorder struct {
	mu     sync.Mutex
	timers []entity.Timer
}

func (that *recorder) Expire(_ context.Context, timer entity.Timer) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.timers = append(that.timers, timer)

	return nil
}

func (that *recorder) fired() []entity.Timer {
	that.mu.Lock()
	defer that.mu.Unlock()

	return append([]entity.Timer(nil), that.timers...)
}

func newTestScheduler() *Scheduler {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestScheduler(t *testing.T) {
	t.Run("Fires every armed timer", func(t *testing.T) {
		// Given: a started scheduler
		s := newTestScheduler()
		rec := &recorder{}
		s.Start(context.Background(), rec)

		// When: two timers are armed
		require.NoError(t, s.Schedule(entity.Timer{GameID: "a", Kind: entity.TimerTurn, Seq: 1, Delay: time.Millisecond}))
		require.NoError(t, s.Schedule(entity.Timer{GameID: "b", Kind: entity.TimerGrace, Delay: 5 * time.Millisecond}))
		s.Wait()

		// Then: both reach the expirer
		assert.ElementsMatch(t, []string{"a", "b"}, []string{rec.fired()[0].GameID, rec.fired()[1].GameID})
	})

	t.Run("Drops pending timers on shutdown", func(t *testing.T) {
		s := newTestScheduler()
		rec := &recorder{}
		ctx, cancel := context.WithCancel(context.Background())
		s.Start(ctx, rec)

		require.NoError(t, s.Schedule(entity.Timer{GameID: "a", Kind: entity.TimerTurn, Delay: time.Hour}))
		cancel()
		s.Wait()

		assert.Empty(t, rec.fired())
		require.ErrorIs(t, s.Schedule(entity.Timer{GameID: "a"}), context.Canceled)
	})

	t.Run("Refuses timers before start", func(t *testing.T) {
		s := newTestScheduler()

		require.ErrorIs(t, s.Schedule(entity.Timer{GameID: "a"}), ErrNotStarted)
	})
}
