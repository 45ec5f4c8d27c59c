package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/xo-engine/internal/apperror"
	"github.com/rocketscienceinc/xo-engine/internal/entity"
	"github.com/rocketscienceinc/xo-engine/internal/service"
)

var ErrUnknownAction = errors.New("unknown action")

type gameSession interface {
	Create(ctx context.Context, gameID string, creator entity.Player, symbol entity.Symbol) (*entity.Game, error)
	Handle(ctx context.Context, event service.Event) (service.Notice, error)
}

type handlerFunc func(ctx context.Context, c *client, message *Message) error

type Server struct {
	logger   *slog.Logger
	hub      *Hub
	session  gameSession
	validate *validator.Validate
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, hub *Hub, session gameSession) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		hub:      hub,
		session:  session,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionNew] = server.handleNewGame
	server.handlers[actionWatch] = server.handleWatch
	server.handlers[actionEvent] = server.handleEvent

	return server
}

// Handler routes /ws to the upgrade endpoint.
func (that *Server) Handler(ctx context.Context) http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return router
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := newClient(that.logger, conn)
	go c.writeLoop()

	defer func() {
		that.hub.unsubscribe(c)
		c.close()
	}()

	log.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	if err = that.handleMessages(ctx, c); err != nil {
		log.Debug("connection closed", "error", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, c *client) error {
	log := that.logger.With("method", "handleMessages")

	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var message Message
		if err := c.conn.ReadJSON(&message); err != nil {
			var syntaxErr *json.SyntaxError
			if errors.As(err, &syntaxErr) {
				that.replyError(c, err)
				continue
			}

			return err
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Debug("unknown action", "action", message.Action)
			that.replyError(c, fmt.Errorf("%w: %s", ErrUnknownAction, message.Action))
			continue
		}

		if err := handler(ctx, c, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
			that.replyError(c, err)
		}
	}
}

// decode unmarshals and validates a payload.
func (that *Server) decode(message *Message, payload any) error {
	if err := json.Unmarshal(message.Payload, payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if err := that.validate.Struct(payload); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}

	return nil
}

func (that *Server) handleNewGame(ctx context.Context, c *client, message *Message) error {
	var payload NewGamePayload
	if err := that.decode(message, &payload); err != nil {
		return err
	}

	gameID := uuid.NewString()
	that.hub.subscribe(gameID, c)

	if err := that.reply(c, actionNew, NewGameResponse{GameID: gameID}); err != nil {
		return err
	}

	if _, err := that.session.Create(ctx, gameID, payload.Player.toEntity(), entity.Symbol(payload.Symbol)); err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	return nil
}

func (that *Server) handleWatch(_ context.Context, c *client, message *Message) error {
	var payload WatchPayload
	if err := that.decode(message, &payload); err != nil {
		return err
	}

	that.hub.subscribe(payload.GameID, c)

	return nil
}

func (that *Server) handleEvent(ctx context.Context, c *client, message *Message) error {
	var payload EventPayload
	if err := that.decode(message, &payload); err != nil {
		return err
	}

	that.hub.subscribe(payload.GameID, c)

	notice, err := that.session.Handle(ctx, service.Event{
		GameID:  payload.GameID,
		Player:  payload.Player.toEntity(),
		Command: payload.Command,
	})

	declined := apperror.IsDeclined(err) || errors.Is(err, apperror.ErrGameNotFound)
	if err != nil && !declined {
		return err
	}

	if notice.Text == "" {
		return nil
	}

	return that.reply(c, actionNotice, NoticePayload{GameID: payload.GameID, Text: notice.Text, Declined: declined})
}

func (that *Server) reply(c *client, action string, payload any) error {
	message, err := newMessage(action, payload)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	c.enqueue(message)

	return nil
}

func (that *Server) replyError(c *client, err error) {
	if replyErr := that.reply(c, actionError, ErrorPayload{Error: err.Error()}); replyErr != nil {
		that.logger.Error("failed to send error", "error", replyErr)
	}
}
