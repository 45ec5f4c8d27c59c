package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/xo-engine/internal/apperror"
	"github.com/rocketscienceinc/xo-engine/internal/entity"
	"github.com/rocketscienceinc/xo-engine/internal/phrase"
	"github.com/rocketscienceinc/xo-engine/internal/repository"
)

// slackThreshold is the wait above which timers get the extra slack.
const slackThreshold = 10 * time.Second

type gameRepo interface {
	Create(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	Update(ctx context.Context, id string, fn repository.UpdateFunc) (*entity.Game, error)
}

// Gateway delivers rendered game messages to the players.
type Gateway interface {
	Render(ctx context.Context, request RenderRequest) error
}

type timerScheduler interface {
	Schedule(timer entity.Timer) error
}

// Timeouts are the per-phase deadlines.
type Timeouts struct {
	// PerCell multiplied by the cells count is the turn inactivity deadline.
	PerCell time.Duration
	Slack   time.Duration
	Vote    time.Duration
	Grace   time.Duration
	Setup   time.Duration
}

// Event is an inbound player action.
type Event struct {
	GameID  string
	Player  entity.Player
	Command string
}

// Notice is the short reply shown to the acting player only.
type Notice struct {
	Text string
}

type GameSession struct {
	logger *slog.Logger

	games     gameRepo
	players   PlayerService
	gateway   Gateway
	scheduler timerScheduler
	catalog   *phrase.Catalog
	timeouts  Timeouts

	now func() time.Time
}

func NewGameSession(
	logger *slog.Logger,
	games gameRepo,
	players PlayerService,
	gateway Gateway,
	scheduler timerScheduler,
	catalog *phrase.Catalog,
	timeouts Timeouts,
) *GameSession {
	return &GameSession{
		logger:    logger.With("component", "session"),
		games:     games,
		players:   players,
		gateway:   gateway,
		scheduler: scheduler,
		catalog:   catalog,
		timeouts:  timeouts,
		now:       time.Now,
	}
}

// Game returns the persisted state of a game.
func (that *GameSession) Game(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.games.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return game, nil
}

// Handle applies one inbound event. Declined actions come back as an error that
// apperror.IsDeclined recognizes, together with a notice for the actor.
func (that *GameSession) Handle(ctx context.Context, event Event) (Notice, error) {
	log := that.logger.With("method", "Handle", "game_id", event.GameID, "player_id", event.Player.ID)

	actor := event.Player
	if err := that.players.CreateOrUpdate(ctx, &actor); err != nil {
		return Notice{}, fmt.Errorf("failed to upsert player: %w", err)
	}

	command, err := entity.ParseCommand(event.Command)
	if err != nil {
		return that.decline(&actor, err), err
	}

	var notice Notice
	switch command.Kind {
	case entity.CommandSize:
		err = that.chooseSize(ctx, event.GameID, &actor, command.Value)
	case entity.CommandPlayers:
		err = that.choosePlayers(ctx, event.GameID, &actor, command.Value)
	case entity.CommandMove, entity.CommandBoard:
		notice, err = that.move(ctx, event.GameID, &actor, command.Choice)
	case entity.CommandEnd:
		err = that.endGame(ctx, event.GameID, &actor, command.End)
	}

	if err != nil {
		if apperror.IsDeclined(err) || errors.Is(err, apperror.ErrGameNotFound) {
			log.Debug("action declined", "command", event.Command, "error", err)
			return that.decline(&actor, err), err
		}

		log.Error("failed to handle event", "command", event.Command, "error", err)

		return Notice{}, err
	}

	return notice, nil
}

// arm schedules timer, adding the slack to long waits.
func (that *GameSession) arm(timer entity.Timer) {
	if timer.Delay > slackThreshold {
		timer.Delay += that.timeouts.Slack
	}

	if err := that.scheduler.Schedule(timer); err != nil {
		that.logger.Error("failed to schedule timer", "game_id", timer.GameID, "kind", timer.Kind, "error", err)
	}
}

// turnDelay is the inactivity deadline of a started game: one PerCell for every cell.
func (that *GameSession) turnDelay(game *entity.Game) time.Duration {
	size := game.Size()

	return time.Duration(size*size) * that.timeouts.PerCell
}

func (that *GameSession) armTurn(game *entity.Game) {
	that.arm(game.TurnTimer(that.turnDelay(game)))
}
