package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/xo-engine/internal/apperror"
)

func (that *Server) getGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "getGame")

	id := mux.Vars(r)["id"]

	game, err := that.games.Game(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperror.ErrGameNotFound) {
			http.Error(w, "game not found", http.StatusNotFound)
			return
		}

		log.Error("failed to get game", "game_id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(game); err != nil {
		log.Error("failed to encode game", "game_id", id, "error", err)
	}
}
