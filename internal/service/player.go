package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/xo-engine/internal/apperror"
	"github.com/rocketscienceinc/xo-engine/internal/entity"
	"github.com/rocketscienceinc/xo-engine/internal/phrase"
)

type PlayerService interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
	// Seated resolves the identities bound to the slots of a game; unknown ids get a bare record.
	Seated(ctx context.Context, slots entity.Players) (map[string]*entity.Player, error)
}

type playerService struct {
	playerRepo playerRepo
}

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

func NewPlayerService(playerRepo playerRepo) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
	}
}

func (that *playerService) CreateOrUpdate(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("create player %w", err)
	}

	return nil
}

func (that *playerService) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	existingPlayer, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get player by id %w", err)
	}

	return existingPlayer, nil
}

func (that *playerService) Seated(ctx context.Context, slots entity.Players) (map[string]*entity.Player, error) {
	seated := make(map[string]*entity.Player, len(slots))

	for _, id := range slots.IDs() {
		player, err := that.playerRepo.GetByID(ctx, id)
		switch {
		case errors.Is(err, apperror.ErrPlayerNotFound):
			player = &entity.Player{ID: id, Name: id}
		case err != nil:
			return nil, fmt.Errorf("get player by id %w", err)
		}

		seated[id] = player
	}

	return seated, nil
}

// preferenceOf merges the languages of the seated players, falling back to actor's own language.
func preferenceOf(seated map[string]*entity.Player, actor *entity.Player) phrase.Preference {
	prefs := make([]phrase.Preference, 0, len(seated))
	for _, player := range seated {
		prefs = append(prefs, phrase.Parse(player.Lang()))
	}

	fallback := phrase.Parse(entity.DefaultLanguage)
	if actor != nil {
		fallback = phrase.Parse(actor.Lang())
	}

	return phrase.Merge(prefs...).Or(fallback)
}
