package service

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/xo-engine/internal/entity"
)

// Create opens a game for creator with the symbol they picked. When only one board size
// fits the players count the game starts at once, otherwise the size prompt is rendered.
func (that *GameSession) Create(ctx context.Context, gameID string, creator entity.Player, symbol entity.Symbol) (*entity.Game, error) {
	log := that.logger.With("method", "Create", "game_id", gameID)

	if err := that.players.CreateOrUpdate(ctx, &creator); err != nil {
		return nil, fmt.Errorf("failed to upsert player: %w", err)
	}

	game, err := entity.NewGame(gameID, creator.ID, symbol, that.now())
	if err != nil {
		return nil, err
	}

	sizes := entity.SizesForPlayers(len(game.Symbols))
	if len(sizes) == 1 {
		if _, err = game.ChooseSize(sizes[0]); err != nil {
			return nil, err
		}

		if err = game.Start(sizes[0]); err != nil {
			return nil, err
		}
	}

	if err = that.games.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	log.Info("game created", "creator", creator.ID, "symbol", symbol)

	if game.IsPlaying() {
		that.armTurn(game)
		return game, that.renderBoard(ctx, game, &creator)
	}

	that.arm(game.TurnTimer(that.timeouts.Setup))

	return game, that.renderSizePrompt(ctx, game, &creator)
}

func (that *GameSession) chooseSize(ctx context.Context, gameID string, actor *entity.Player, size int) error {
	game, err := that.games.Update(ctx, gameID, func(game *entity.Game) error {
		if err := game.ConfirmSetupState(); err != nil {
			return err
		}

		if _, err := game.Join(actor.ID); err != nil {
			return err
		}

		if size == 0 {
			size = entity.RandomSize(len(game.Symbols))
		}

		ready, err := game.ChooseSize(size)
		if err != nil || !ready {
			return err
		}

		return game.Start(size)
	})
	if err != nil {
		return err
	}

	if game.IsPlaying() {
		that.armTurn(game)
		return that.renderBoard(ctx, game, actor)
	}

	return that.renderPlayersPrompt(ctx, game, actor)
}

func (that *GameSession) choosePlayers(ctx context.Context, gameID string, actor *entity.Player, count int) error {
	game, err := that.games.Update(ctx, gameID, func(game *entity.Game) error {
		if err := game.ConfirmSetupState(); err != nil {
			return err
		}

		if _, err := game.Join(actor.ID); err != nil {
			return err
		}

		if count == 0 {
			count = entity.RandomPlayersCount(game.SetupSize, len(game.Symbols))
		}

		return game.ChoosePlayers(count)
	})
	if err != nil {
		return err
	}

	that.logger.Info("game started", "game_id", game.ID, "size", game.Size(), "players", len(game.Symbols))

	that.armTurn(game)

	return that.renderBoard(ctx, game, actor)
}
