package repository

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/xo-engine/testing/suite"
)

func TestPlayerRepository_Redis(t *testing.T) {
	runPlayerRepositoryContract(t, func(t *testing.T) (context.Context, PlayerRepository) {
		ctx, st := suite.New(t)

		return ctx, NewPlayerRepository(st.Storage)
	})
}

func TestPlayerRepository_Badger(t *testing.T) {
	runPlayerRepositoryContract(t, func(t *testing.T) (context.Context, PlayerRepository) {
		ctx, st := suite.NewEmbedded(t)

		return ctx, NewBadgerPlayerRepository(st.Storage)
	})
}
