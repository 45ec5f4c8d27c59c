package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/xo-engine/internal/apperror"
)

func TestPlayers(t *testing.T) {
	symbols := Symbols{SymbolX, SymbolO, SymbolTriangle}

	t.Run("Binding is exclusive per slot and per player", func(t *testing.T) {
		players := NewPlayers(symbols)

		slot, err := players.BindSlot(SymbolO, "p1")
		require.NoError(t, err)
		assert.Equal(t, 1, slot.Index)

		// binding the same seat again is a no-op
		_, err = players.BindSlot(SymbolO, "p1")
		require.NoError(t, err)

		_, err = players.BindSlot(SymbolX, "p1")
		require.ErrorIs(t, err, apperror.ErrPlayerAlreadyBound)

		_, err = players.BindSlot(SymbolO, "p2")
		require.ErrorIs(t, err, apperror.ErrSlotTaken)

		_, err = players.BindSlot(SymbolSquare, "p2")
		require.ErrorIs(t, err, apperror.ErrUnsupportedPlayers)
	})

	t.Run("Queries ignore open slots", func(t *testing.T) {
		players := NewPlayers(symbols)
		_, err := players.BindSlot(SymbolTriangle, "p3")
		require.NoError(t, err)

		assert.Equal(t, SymbolX, players.FirstOpen().Symbol)
		assert.Equal(t, []string{"p3"}, players.IDs())
		assert.Len(t, players.WithIntent(IntentPlaying), 1)
		assert.True(t, players.AllActiveHave(IntentPlaying))
		assert.Nil(t, players.FindSlotFor(""))
	})

	t.Run("Intent updates", func(t *testing.T) {
		players := NewPlayers(symbols)
		for i, symbol := range symbols {
			_, err := players.BindSlot(symbol, playerName(i+1))
			require.NoError(t, err)
		}

		assert.True(t, players.SetIntent("p2", IntentTieProposed))
		assert.False(t, players.SetIntent("nobody", IntentTieProposed))

		players.SetIntentExcept("p2", IntentFinished)

		assert.True(t, players.AllActiveHave(IntentTieProposed))

		players.SetIntentExcept("", IntentFinished)

		assert.Len(t, players.WithIntent(IntentFinished), len(symbols))
	})

	t.Run("Resize keeps bound slots", func(t *testing.T) {
		players := NewPlayers(Symbols{SymbolX, SymbolO})
		_, err := players.BindSlot(SymbolO, "p1")
		require.NoError(t, err)

		resized := players.Resize(symbols)

		require.Len(t, resized, 3)
		assert.Equal(t, "p1", resized[1].PlayerID)
		assert.True(t, resized[2].IsOpen())
	})
}
