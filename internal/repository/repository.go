package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/xo-engine/internal/entity"
)

// maxUpdateRetries bounds optimistic transaction retries before ErrConcurrentUpdate.
const maxUpdateRetries = 16

// UpdateFunc mutates a freshly loaded game inside a transaction. Returning an error aborts the write.
type UpdateFunc func(game *entity.Game) error

// GameRepository stores one row per game. Update is the atomic load-check-mutate-save
// every handler, foreground or timer, goes through.
type GameRepository interface {
	Create(ctx context.Context, game *entity.Game) error
	Save(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	Update(ctx context.Context, id string, fn UpdateFunc) (*entity.Game, error)
	PlayerSlots(ctx context.Context, gameID string) (entity.Players, error)
	UpsertPlayerSlot(ctx context.Context, gameID string, slot *entity.PlayerSlot) error
}

type PlayerRepository interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

func gameKey(id string) string {
	return "game:" + id
}

func playerKey(id string) string {
	return "player:" + id
}

func decodeGame(data []byte) (*entity.Game, error) {
	var game entity.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &game, nil
}

func encodeGame(game *entity.Game) ([]byte, error) {
	data, err := json.Marshal(game)
	if err != nil {
		return nil, fmt.Errorf("could not marshal game: %w", err)
	}

	return data, nil
}

// upsertSlot writes slot into the registry position its index names.
func upsertSlot(slot *entity.PlayerSlot) UpdateFunc {
	return func(game *entity.Game) error {
		if slot.Index < 0 || slot.Index >= len(game.Players) {
			return fmt.Errorf("slot index %d out of range for game %s", slot.Index, game.ID)
		}

		updated := *slot
		game.Players[slot.Index] = &updated

		return nil
	}
}
