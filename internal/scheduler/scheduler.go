package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/xo-engine/internal/entity"
)

var ErrNotStarted = errors.New("scheduler is not started")

// Expirer handles a timer whose delay elapsed. It must reload the game and re-check
// that the timer still applies before acting.
type Expirer interface {
	Expire(ctx context.Context, timer entity.Timer) error
}

// Scheduler runs one goroutine per armed timer. There is no cancel API: superseded
// timers fire anyway and are ignored by the expirer.
type Scheduler struct {
	logger *slog.Logger

	mu      sync.Mutex
	ctx     context.Context
	expirer Expirer
	wg      sync.WaitGroup
}

func New(logger *slog.Logger) *Scheduler {
	return &Scheduler{
		logger: logger.With("component", "scheduler"),
	}
}

// Start binds the scheduler to ctx; pending timers are dropped once ctx is done.
func (that *Scheduler) Start(ctx context.Context, expirer Expirer) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.ctx = ctx
	that.expirer = expirer
}

// Schedule arms timer.
func (that *Scheduler) Schedule(timer entity.Timer) error {
	that.mu.Lock()
	ctx, expirer := that.ctx, that.expirer
	that.mu.Unlock()

	if ctx == nil || expirer == nil {
		return ErrNotStarted
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	that.wg.Add(1)
	go that.run(ctx, expirer, timer)

	return nil
}

func (that *Scheduler) run(ctx context.Context, expirer Expirer, timer entity.Timer) {
	defer that.wg.Done()

	log := that.logger.With("method", "run", "game_id", timer.GameID, "kind", timer.Kind, "seq", timer.Seq)

	wait := time.NewTimer(timer.Delay)
	defer wait.Stop()

	select {
	case <-ctx.Done():
		log.Debug("timer dropped on shutdown")
		return
	case <-wait.C:
	}

	if err := expirer.Expire(ctx, timer); err != nil {
		log.Error("failed to expire timer", "error", err)
	}
}

// Wait blocks until every armed timer fired or was dropped.
func (that *Scheduler) Wait() {
	that.wg.Wait()
}
