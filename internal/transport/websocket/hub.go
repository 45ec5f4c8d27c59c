package websocket

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/xo-engine/internal/service"
)

// Hub fans rendered games out to the connections watching them and keeps the
// latest render of every running game so late watchers get the current state.
type Hub struct {
	logger *slog.Logger

	mu       sync.RWMutex
	watchers map[string]map[*client]struct{}
	last     map[string]service.RenderRequest
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:   logger.With("component", "hub"),
		watchers: make(map[string]map[*client]struct{}),
		last:     make(map[string]service.RenderRequest),
	}
}

// Render implements the messaging gateway. A render older than the cached one is
// dropped; a final render is delivered and then the game is forgotten.
func (that *Hub) Render(_ context.Context, request service.RenderRequest) error {
	message, err := newMessage(actionRender, request)
	if err != nil {
		return err
	}

	that.mu.Lock()
	if last, ok := that.last[request.GameID]; ok && request.Revision < last.Revision {
		that.mu.Unlock()
		that.logger.Debug("stale render dropped", "game_id", request.GameID,
			"revision", request.Revision, "cached", last.Revision)

		return nil
	}

	watchers := make([]*client, 0, len(that.watchers[request.GameID]))
	for c := range that.watchers[request.GameID] {
		watchers = append(watchers, c)
	}

	if request.Final {
		delete(that.last, request.GameID)
		delete(that.watchers, request.GameID)
	} else {
		that.last[request.GameID] = request
	}
	that.mu.Unlock()

	for _, c := range watchers {
		c.enqueue(message)
	}

	that.logger.Debug("game rendered", "game_id", request.GameID, "watchers", len(watchers), "final", request.Final)

	return nil
}

// subscribe adds c to the watchers of gameID and replays the latest render.
func (that *Hub) subscribe(gameID string, c *client) {
	that.mu.Lock()
	if that.watchers[gameID] == nil {
		that.watchers[gameID] = make(map[*client]struct{})
	}

	_, known := that.watchers[gameID][c]
	that.watchers[gameID][c] = struct{}{}
	last, rendered := that.last[gameID]
	that.mu.Unlock()

	if known || !rendered {
		return
	}

	message, err := newMessage(actionRender, last)
	if err != nil {
		that.logger.Error("failed to replay render", "game_id", gameID, "error", err)
		return
	}

	c.enqueue(message)
}

// unsubscribe drops c from every game it watched.
func (that *Hub) unsubscribe(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for gameID, watchers := range that.watchers {
		delete(watchers, c)
		if len(watchers) == 0 {
			delete(that.watchers, gameID)
		}
	}
}

// Cached reports whether a render of gameID is kept for late watchers.
func (that *Hub) Cached(gameID string) bool {
	that.mu.RLock()
	defer that.mu.RUnlock()

	_, ok := that.last[gameID]

	return ok
}

// Watchers returns how many connections watch gameID.
func (that *Hub) Watchers(gameID string) int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.watchers[gameID])
}
