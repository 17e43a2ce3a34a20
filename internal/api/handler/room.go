package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/duelroom/internal/api/response"
	"github.com/mcoot/duelroom/internal/model"
	"github.com/mcoot/duelroom/internal/services/session"
)

// RoomInspector looks up a room together with its live game
type RoomInspector interface {
	Snapshot(ctx context.Context, code model.RoomCode) (*session.Snapshot, error)
}

// RoomHandler handles room inspection endpoints
type RoomHandler struct {
	rooms RoomInspector
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(rooms RoomInspector) *RoomHandler {
	return &RoomHandler{rooms: rooms}
}

// Get handles GET /api/rooms/{code}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	snap, err := h.rooms.Snapshot(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromSnapshot(snap))
}
