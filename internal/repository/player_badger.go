package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/rocketscienceinc/xo-engine/internal/apperror"
	"github.com/rocketscienceinc/xo-engine/internal/entity"
)

type badgerPlayer struct {
	db *badger.DB
}

func NewBadgerPlayerRepository(db *badger.DB) PlayerRepository {
	return &badgerPlayer{
		db: db,
	}
}

func (that *badgerPlayer) CreateOrUpdate(_ context.Context, player *entity.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("failed to marshal player: %w", err)
	}

	err = that.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(playerKey(player.ID)), data)
	})
	if err != nil {
		return fmt.Errorf("failed to set player: %w", err)
	}

	return nil
}

func (that *badgerPlayer) GetByID(_ context.Context, id string) (*entity.Player, error) {
	var player entity.Player

	err := that.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(playerKey(id)))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &player)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, apperror.ErrPlayerNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player by ID: %w", err)
	}

	return &player, nil
}
