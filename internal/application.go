package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/xo-engine/internal/config"
	"github.com/rocketscienceinc/xo-engine/internal/phrase"
	"github.com/rocketscienceinc/xo-engine/internal/repository"
	"github.com/rocketscienceinc/xo-engine/internal/repository/storage"
	"github.com/rocketscienceinc/xo-engine/internal/scheduler"
	"github.com/rocketscienceinc/xo-engine/internal/service"
	"github.com/rocketscienceinc/xo-engine/internal/transport/rest"
	"github.com/rocketscienceinc/xo-engine/internal/transport/websocket"
)

var (
	ErrAddrNotFound   = errors.New("redis address string is empty")
	ErrUnknownBackend = errors.New("unknown storage backend")
)

type repositories struct {
	games   repository.GameRepository
	players repository.PlayerRepository
	close   func() error
}

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, logger, conf)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := repos.close(); closeErr != nil {
			log.Error("could not close storage", "error", closeErr)
		}
	}()

	catalog, err := phrase.New()
	if err != nil {
		return fmt.Errorf("could not build phrase catalog: %w", err)
	}

	timers := scheduler.New(logger)
	hub := websocket.NewHub(logger)

	session := service.NewGameSession(
		logger,
		repos.games,
		service.NewPlayerService(repos.players),
		hub,
		timers,
		catalog,
		service.Timeouts{
			PerCell: conf.Timeouts.PerCell,
			Slack:   conf.Timeouts.Slack,
			Vote:    conf.Timeouts.Vote,
			Grace:   conf.Timeouts.Grace,
			Setup:   conf.Timeouts.Setup,
		},
	)

	group, ctx := errgroup.WithContext(ctx)
	timers.Start(ctx, session)

	group.Go(func() error {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.New(logger, session).Start(ctx, conf.HTTPPort); httpErr != nil {
			return fmt.Errorf("HTTP server error: %w", httpErr)
		}

		return nil
	})

	group.Go(func() error {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if wsErr := websocket.New(logger, hub, session).Start(ctx, conf.SocketPort); wsErr != nil {
			return fmt.Errorf("WebSocket server error: %w", wsErr)
		}

		return nil
	})

	err = group.Wait()
	log.Info("Application context canceled, shutting down")
	timers.Wait()

	return err
}

func openRepositories(ctx context.Context, logger *slog.Logger, conf *config.Config) (*repositories, error) {
	switch conf.Storage.Backend {
	case config.BackendRedis:
		addr := conf.Redis.GetRedisAddr()
		if addr == "" {
			return nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, addr)
		if err != nil {
			return nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return &repositories{
			games:   repository.NewGameRepository(redisStorage.Connection),
			players: repository.NewPlayerRepository(redisStorage.Connection),
			close:   redisStorage.Close,
		}, nil
	case config.BackendBadger:
		badgerStorage, err := storage.NewBadgerStorage(conf.Badger.Path, conf.Badger.InMemory, logger)
		if err != nil {
			return nil, fmt.Errorf("could not open badger storage: %w", err)
		}

		return &repositories{
			games:   repository.NewBadgerGameRepository(badgerStorage.Connection),
			players: repository.NewBadgerPlayerRepository(badgerStorage.Connection),
			close:   badgerStorage.Close,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, conf.Storage.Backend)
	}
}
