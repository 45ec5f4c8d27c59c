package repository

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/xo-engine/testing/suite"
)

func TestGameRepository_Redis(t *testing.T) {
	runGameRepositoryContract(t, func(t *testing.T) (context.Context, GameRepository) {
		ctx, st := suite.New(t)

		return ctx, NewGameRepository(st.Storage)
	})
}

func TestGameRepository_Badger(t *testing.T) {
	runGameRepositoryContract(t, func(t *testing.T) (context.Context, GameRepository) {
		ctx, st := suite.NewEmbedded(t)

		return ctx, NewBadgerGameRepository(st.Storage)
	})
}
