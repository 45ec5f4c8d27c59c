package service

import (
	"context"

	"github.com/rocketscienceinc/xo-engine/internal/entity"
)

func (that *GameSession) endGame(ctx context.Context, gameID string, actor *entity.Player, action entity.EndAction) error {
	var round int

	game, err := that.games.Update(ctx, gameID, func(game *entity.Game) error {
		round = game.VoteRound

		switch action {
		case entity.EndTie:
			_, err := game.ProposeTie(actor.ID)
			return err
		case entity.EndGiveUp:
			return game.Forfeit(actor.ID)
		case entity.EndConfirm:
			_, err := game.Confirm(actor.ID)
			return err
		default:
			return game.Cancel(actor.ID)
		}
	})
	if err != nil {
		return err
	}

	if game.IsConcluded() {
		return that.conclude(ctx, game, actor)
	}

	switch {
	case game.Players.HasIntent(entity.IntentTieProposed):
		if game.VoteRound != round {
			that.arm(game.VoteTimer(entity.TimerTieVote, that.timeouts.Vote))
		}

		return that.renderTieVote(ctx, game, actor)
	case game.Players.HasIntent(entity.IntentForfeited):
		if game.VoteRound != round {
			that.arm(game.VoteTimer(entity.TimerForfeitVote, that.timeouts.Vote))
		}

		return that.renderForfeitVote(ctx, game, actor)
	default:
		// the vote was cancelled and play resumes
		that.armTurn(game)

		return that.renderBoard(ctx, game, actor)
	}
}

// conclude renders the terminal state. A game that saw at least one move keeps its final
// board on screen for the grace window before the row is soft-deleted.
func (that *GameSession) conclude(ctx context.Context, game *entity.Game, actor *entity.Player) error {
	that.logger.Info("game concluded", "game_id", game.ID, "status", game.Status, "queue", game.Queue)

	if game.LastMove != nil {
		if err := that.renderFinal(ctx, game, actor, true); err != nil {
			return err
		}

		that.arm(game.GraceTimer(that.timeouts.Grace))

		return nil
	}

	deleted, err := that.games.Update(ctx, game.ID, func(game *entity.Game) error {
		game.SoftDelete(that.now())
		return nil
	})
	if err != nil {
		return err
	}

	return that.renderFinal(ctx, deleted, actor, true)
}
