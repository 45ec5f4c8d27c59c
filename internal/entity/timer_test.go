package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGame_Superseded(t *testing.T) {
	t.Run("Turn timer is stale after a move", func(t *testing.T) {
		// Given: a timer armed at the start
		game := startedGame(t, 3, 2)
		timer := game.TurnTimer(time.Minute)
		assert.False(t, game.Superseded(timer))

		// When: the player moves
		_, err := game.Play("p1", CellChoice(0, 0))
		require.NoError(t, err)

		// Then: the old timer no longer applies, a fresh one does
		assert.True(t, game.Superseded(timer))
		assert.False(t, game.Superseded(game.TurnTimer(time.Minute)))
	})

	t.Run("Turn timer sleeps through a vote", func(t *testing.T) {
		game := startedGame(t, 3, 2)
		timer := game.TurnTimer(time.Minute)

		require.NoError(t, game.Forfeit("p2"))

		assert.True(t, game.Superseded(timer))
	})

	t.Run("Vote timer is stale once the vote is cancelled", func(t *testing.T) {
		game := startedGame(t, 3, 2)
		_, err := game.ProposeTie("p1")
		require.NoError(t, err)
		timer := game.VoteTimer(TimerTieVote, time.Minute)
		assert.False(t, game.Superseded(timer))

		require.NoError(t, game.Cancel("p2"))

		assert.True(t, game.Superseded(timer))
	})

	t.Run("Vote timer of an earlier round is stale", func(t *testing.T) {
		game := startedGame(t, 3, 2)
		require.NoError(t, game.Forfeit("p1"))
		timer := game.VoteTimer(TimerForfeitVote, time.Minute)
		require.NoError(t, game.Cancel("p1"))
		require.NoError(t, game.Forfeit("p1"))

		assert.True(t, game.Superseded(timer))
		assert.False(t, game.Superseded(game.VoteTimer(TimerForfeitVote, time.Minute)))
	})

	t.Run("Grace timer only applies to a concluded game", func(t *testing.T) {
		game := startedGame(t, 3, 2)
		timer := game.GraceTimer(time.Second)
		assert.True(t, game.Superseded(timer))

		game.TimeOut()
		assert.False(t, game.Superseded(timer))

		deleted := testNow
		game.DeletedAt = &deleted
		assert.True(t, game.Superseded(timer))
	})
}
