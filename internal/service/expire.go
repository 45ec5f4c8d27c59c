package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/xo-engine/internal/apperror"
	"github.com/rocketscienceinc/xo-engine/internal/entity"
)

var errSuperseded = errors.New("timer superseded")

// Expire is called by the scheduler once a timer's delay elapsed. It reloads the game
// and only acts when the phase the timer was armed for is still current.
func (that *GameSession) Expire(ctx context.Context, timer entity.Timer) error {
	log := that.logger.With("method", "Expire", "game_id", timer.GameID, "kind", timer.Kind, "seq", timer.Seq)

	var abandoned bool
	game, err := that.games.Update(ctx, timer.GameID, func(game *entity.Game) error {
		if game.Superseded(timer) {
			return errSuperseded
		}

		switch timer.Kind {
		case entity.TimerTurn:
			if game.IsSetup() {
				abandoned = true
				game.SoftDelete(that.now())
				return nil
			}
			game.TimeOut()
		case entity.TimerTieVote:
			game.CancelTieVote()
		case entity.TimerForfeitVote:
			game.ConfirmForfeit()
		case entity.TimerGrace:
			game.SoftDelete(that.now())
		}

		return nil
	})

	switch {
	case errors.Is(err, errSuperseded), errors.Is(err, apperror.ErrGameNotFound):
		log.Debug("timer is no longer applicable")
		return nil
	case err != nil:
		return fmt.Errorf("failed to expire timer: %w", err)
	}

	log.Info("timer forced a transition", "status", game.Status)

	switch {
	case abandoned:
		return that.renderAbandoned(ctx, game)
	case timer.Kind == entity.TimerGrace:
		return that.renderFinal(ctx, game, nil, false)
	case game.IsConcluded():
		return that.conclude(ctx, game, nil)
	default:
		that.armTurn(game)
		return that.renderBoard(ctx, game, nil)
	}
}
