package handler

import (
	"net/http"

	"github.com/mcoot/duelroom/internal/api/request"
	"github.com/mcoot/duelroom/internal/api/response"
	"github.com/mcoot/duelroom/internal/games"
)

// GamesHandler serves the game catalog and the stateless move helper
type GamesHandler struct {
	catalog *games.Catalog
}

// NewGamesHandler creates a new games handler
func NewGamesHandler(catalog *games.Catalog) *GamesHandler {
	return &GamesHandler{catalog: catalog}
}

// List handles GET /api/games
func (h *GamesHandler) List(w http.ResponseWriter, r *http.Request) {
	response.List(w, response.GamesFromCatalog(h.catalog.List()))
}

// ValidMoves handles POST /api/valid-moves
func (h *GamesHandler) ValidMoves(w http.ResponseWriter, r *http.Request) {
	var req request.ValidMovesRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	moves := games.ValidMoves(games.Grid(req.Board), *req.Row, *req.Col)
	response.List(w, response.PositionsFromModel(moves))
}
