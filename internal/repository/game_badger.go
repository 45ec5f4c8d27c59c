package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/rocketscienceinc/xo-engine/internal/apperror"
	"github.com/rocketscienceinc/xo-engine/internal/entity"
)

type badgerGame struct {
	db *badger.DB
}

func NewBadgerGameRepository(db *badger.DB) GameRepository {
	return &badgerGame{
		db: db,
	}
}

func (that *badgerGame) Create(_ context.Context, game *entity.Game) error {
	data, err := encodeGame(game)
	if err != nil {
		return err
	}

	return that.db.Update(func(txn *badger.Txn) error {
		key := []byte(gameKey(game.ID))
		if _, err = txn.Get(key); err == nil {
			return apperror.ErrGameAlreadyExists
		}

		return txn.Set(key, data)
	})
}

func (that *badgerGame) Save(_ context.Context, game *entity.Game) error {
	data, err := encodeGame(game)
	if err != nil {
		return err
	}

	err = that.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(gameKey(game.ID)), data)
	})
	if err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *badgerGame) GetByID(_ context.Context, id string) (*entity.Game, error) {
	var game *entity.Game

	err := that.db.View(func(txn *badger.Txn) error {
		var err error
		game, err = loadGame(txn, id)

		return err
	})
	if err != nil {
		return nil, err
	}

	return game, nil
}

// Update relies on badger's serializable transactions: a commit that read a key written
// by a concurrent commit fails with ErrConflict and is retried on fresh state.
func (that *badgerGame) Update(ctx context.Context, id string, fn UpdateFunc) (*entity.Game, error) {
	for range maxUpdateRetries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var updated *entity.Game
		err := that.db.Update(func(txn *badger.Txn) error {
			game, err := loadGame(txn, id)
			if err != nil {
				return err
			}

			if err = fn(game); err != nil {
				return err
			}

			game.Revision++

			data, err := encodeGame(game)
			if err != nil {
				return err
			}

			updated = game

			return txn.Set([]byte(gameKey(id)), data)
		})
		if errors.Is(err, badger.ErrConflict) {
			continue
		}

		if err != nil {
			return nil, err
		}

		return updated, nil
	}

	return nil, fmt.Errorf("%w: %s", apperror.ErrConcurrentUpdate, id)
}

func (that *badgerGame) PlayerSlots(ctx context.Context, gameID string) (entity.Players, error) {
	game, err := that.GetByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	return game.Players, nil
}

func (that *badgerGame) UpsertPlayerSlot(ctx context.Context, gameID string, slot *entity.PlayerSlot) error {
	_, err := that.Update(ctx, gameID, upsertSlot(slot))

	return err
}

func loadGame(txn *badger.Txn, id string) (*entity.Game, error) {
	item, err := txn.Get([]byte(gameKey(id)))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, apperror.ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	var game *entity.Game
	err = item.Value(func(val []byte) error {
		game, err = decodeGame(val)
		return err
	})

	return game, err
}
