package service

import (
	"context"

	"github.com/rocketscienceinc/xo-engine/internal/entity"
	"github.com/rocketscienceinc/xo-engine/internal/phrase"
)

func (that *GameSession) move(ctx context.Context, gameID string, actor *entity.Player, choice entity.Choice) (Notice, error) {
	var result entity.MoveResult

	game, err := that.games.Update(ctx, gameID, func(game *entity.Game) error {
		var err error
		result, err = game.Play(actor.ID, choice)

		return err
	})
	if err != nil {
		return Notice{}, err
	}

	var notice Notice
	if result.Joined {
		slot := game.Players.FindSlotFor(actor.ID)
		key := phrase.Joined
		if result.Deferred {
			key = phrase.WaitTurn
		}
		notice.Text = that.catalog.Phrase(phrase.Parse(actor.Lang()), key, slot.Symbol)
	}

	if game.IsConcluded() {
		return notice, that.conclude(ctx, game, actor)
	}

	if result.Placed {
		that.armTurn(game)
	}

	return notice, that.renderBoard(ctx, game, actor)
}
