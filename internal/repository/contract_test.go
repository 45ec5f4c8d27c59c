package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/xo-engine/internal/apperror"
	"github.com/rocketscienceinc/xo-engine/internal/entity"
)

type gameRepoFactory func(t *testing.T) (context.Context, GameRepository)

type playerRepoFactory func(t *testing.T) (context.Context, PlayerRepository)

func newStartedGame(t *testing.T, id string) *entity.Game {
	t.Helper()

	game, err := entity.NewGame(id, "p1", entity.SymbolX, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, game.Start(3))

	return game
}

func runGameRepositoryContract(t *testing.T, newRepo gameRepoFactory) {
	t.Run("Create_Success", func(t *testing.T) {
		ctx, repo := newRepo(t)

		// Given: a started game
		game := newStartedGame(t, "123")

		// When: Create is called
		err := repo.Create(ctx, game)

		// Then: the game is readable with its board
		require.NoError(t, err)

		stored, err := repo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, game.ID, stored.ID)
		assert.Equal(t, entity.StatusPlaying, stored.Status)
		assert.Equal(t, game.Board.View(), stored.Board.View())
	})

	t.Run("Create_AlreadyExists", func(t *testing.T) {
		ctx, repo := newRepo(t)

		game := newStartedGame(t, "123")
		require.NoError(t, repo.Create(ctx, game))

		err := repo.Create(ctx, game)

		require.ErrorIs(t, err, apperror.ErrGameAlreadyExists)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, repo := newRepo(t)

		// When: GetByID is called with non-existent ID
		_, err := repo.GetByID(ctx, "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Save_Overwrites", func(t *testing.T) {
		ctx, repo := newRepo(t)

		game := newStartedGame(t, "123")
		require.NoError(t, repo.Save(ctx, game))

		game.TimeOut()
		require.NoError(t, repo.Save(ctx, game))

		stored, err := repo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusTimedOut, stored.Status)
	})

	t.Run("Update_AppliesMutation", func(t *testing.T) {
		ctx, repo := newRepo(t)

		// Given: a stored game
		game := newStartedGame(t, "123")
		require.NoError(t, repo.Create(ctx, game))

		// When: a move is applied through Update
		updated, err := repo.Update(ctx, game.ID, func(g *entity.Game) error {
			_, playErr := g.Play("p1", entity.CellChoice(1, 1))
			return playErr
		})

		// Then: both the returned and the stored game carry the move
		require.NoError(t, err)
		assert.Equal(t, 1, updated.Moves)
		assert.Equal(t, game.Revision+1, updated.Revision)

		stored, err := repo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.SymbolX, stored.Board.View()[1][1])
		assert.Equal(t, 1, stored.Queue)
	})

	t.Run("Update_DeclinedLeavesRowUntouched", func(t *testing.T) {
		ctx, repo := newRepo(t)

		game := newStartedGame(t, "123")
		require.NoError(t, repo.Create(ctx, game))

		// When: the mutation is declined halfway
		_, err := repo.Update(ctx, game.ID, func(g *entity.Game) error {
			g.Moves = 42
			_, playErr := g.Play("p2", entity.CellChoice(7, 7))
			return playErr
		})

		// Then: the error surfaces and nothing is written
		require.ErrorIs(t, err, apperror.ErrIllegalMove)

		stored, err := repo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Zero(t, stored.Moves)
		assert.Equal(t, game.Revision, stored.Revision)
	})

	t.Run("Update_NotFound", func(t *testing.T) {
		ctx, repo := newRepo(t)

		_, err := repo.Update(ctx, "missing", func(*entity.Game) error { return nil })

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Update_SerializesConcurrentWriters", func(t *testing.T) {
		ctx, repo := newRepo(t)

		game := newStartedGame(t, "123")
		require.NoError(t, repo.Create(ctx, game))

		// When: several writers bump the same counter at once
		const writers = 8
		var wg sync.WaitGroup
		errs := make(chan error, writers)
		for range writers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.Update(ctx, game.ID, func(g *entity.Game) error {
					g.VoteRound++
					return nil
				})
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		// Then: no increment is lost
		for err := range errs {
			require.NoError(t, err)
		}

		stored, err := repo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, writers, stored.VoteRound)
		assert.Equal(t, game.Revision+writers, stored.Revision)
	})

	t.Run("PlayerSlots_RoundTrip", func(t *testing.T) {
		ctx, repo := newRepo(t)

		game := newStartedGame(t, "123")
		require.NoError(t, repo.Create(ctx, game))

		// When: the open O slot is bound through the slot API
		err := repo.UpsertPlayerSlot(ctx, game.ID, &entity.PlayerSlot{
			Symbol:   entity.SymbolO,
			PlayerID: "p2",
			Index:    1,
			Intent:   entity.IntentForfeited,
		})
		require.NoError(t, err)

		// Then: the slots reflect it
		slots, err := repo.PlayerSlots(ctx, game.ID)
		require.NoError(t, err)
		require.Len(t, slots, 2)
		assert.Equal(t, "p2", slots[1].PlayerID)
		assert.Equal(t, entity.IntentForfeited, slots[1].Intent)

		err = repo.UpsertPlayerSlot(ctx, game.ID, &entity.PlayerSlot{Index: 5})
		require.Error(t, err)
	})
}

func runPlayerRepositoryContract(t *testing.T, newRepo playerRepoFactory) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, repo := newRepo(t)

		// Given: a stored player
		player := &entity.Player{ID: "123", Name: "Ann", Language: "ru"}
		require.NoError(t, repo.CreateOrUpdate(ctx, player))

		// When: GetByID is called with existing ID
		stored, err := repo.GetByID(ctx, player.ID)

		// Then: the retrieved player matches
		require.NoError(t, err)
		assert.Equal(t, player, stored)
	})

	t.Run("CreateOrUpdate_Overwrites", func(t *testing.T) {
		ctx, repo := newRepo(t)

		require.NoError(t, repo.CreateOrUpdate(ctx, &entity.Player{ID: "123", Name: "Ann"}))
		require.NoError(t, repo.CreateOrUpdate(ctx, &entity.Player{ID: "123", Name: "Anna"}))

		stored, err := repo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, "Anna", stored.Name)
		assert.Equal(t, entity.DefaultLanguage, stored.Lang())
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, repo := newRepo(t)

		_, err := repo.GetByID(ctx, "9999999")

		require.ErrorIs(t, err, apperror.ErrPlayerNotFound)
	})
}
