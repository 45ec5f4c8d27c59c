package phrase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestCatalog_Phrase(t *testing.T) {
	cat, err := New()
	require.NoError(t, err)

	t.Run("Formats in the preferred language", func(t *testing.T) {
		assert.Equal(t, "3 in a row to win", cat.Phrase(Parse("en"), ToWin, 3))
		assert.Equal(t, "4 в ряд для победы", cat.Phrase(Parse("ru"), ToWin, 4))
	})

	t.Run("Regional variants match their base language", func(t *testing.T) {
		assert.Equal(t, language.Russian, cat.Match(Parse("ru-RU")))
	})

	t.Run("Unsupported or empty preference falls back to English", func(t *testing.T) {
		assert.Equal(t, "Give up", cat.Phrase(Parse("de"), GiveUp))
		assert.Equal(t, "Give up", cat.Phrase(Preference{}, GiveUp))
	})

	t.Run("Every key exists in every dictionary", func(t *testing.T) {
		for key := range dictionaries["en"] {
			_, ok := dictionaries["ru"][key]
			assert.True(t, ok, key)
		}
	})
}

func TestMerge(t *testing.T) {
	t.Run("Majority language comes first", func(t *testing.T) {
		// Given: two russian speakers and one english speaker
		merged := Merge(Parse("en"), Parse("ru"), Parse("ru-RU"))

		// Then: russian leads and english is kept as a fallback
		assert.Equal(t, Preference{language.Russian, language.English}, merged)
	})

	t.Run("No consensus falls back to the actor", func(t *testing.T) {
		merged := Merge(Parse("en"), Parse("ru"))

		assert.Empty(t, merged)
		assert.Equal(t, Parse("ru"), merged.Or(Parse("ru")))
	})

	t.Run("Players without a preference do not vote", func(t *testing.T) {
		merged := Merge(Parse("ru"), Preference{}, nil)

		assert.Equal(t, Preference{language.Russian}, merged)
	})
}
