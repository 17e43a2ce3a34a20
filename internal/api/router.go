package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/duelroom/internal/api/apierr"
	"github.com/mcoot/duelroom/internal/api/handler"
	"github.com/mcoot/duelroom/internal/api/middleware"
	"github.com/mcoot/duelroom/internal/api/response"
	"github.com/mcoot/duelroom/internal/games"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger  *slog.Logger
	Catalog *games.Catalog
	Rooms   handler.RoomInspector

	// Realtime serves the websocket endpoint
	Realtime http.Handler
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	gamesHandler := handler.NewGamesHandler(cfg.Catalog)
	roomHandler := handler.NewRoomHandler(cfg.Rooms)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.NotFoundHandler = http.HandlerFunc(notFoundHandler)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowedHandler)

	r.HandleFunc("/api/health", healthHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/games", gamesHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/api/valid-moves", gamesHandler.ValidMoves).Methods(http.MethodPost)
	r.HandleFunc("/api/rooms/{code}", roomHandler.Get).Methods(http.MethodGet)

	if cfg.Realtime != nil {
		r.Handle("/ws", cfg.Realtime).Methods(http.MethodGet)
	}

	return r
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	apierr.WriteError(w, apierr.NewNotFoundError())
}

func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	apierr.WriteError(w, apierr.NewMethodNotAllowedError())
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
