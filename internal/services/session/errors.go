package session

import (
	"errors"

	"github.com/mcoot/duelroom/internal/model"
)

const messageInternal = "Something went wrong"

var errorMessages = []struct {
	err error
	msg string
}{
	{model.ErrRoomNotFound, "Room not found"},
	{model.ErrRoomFull, "Room is full"},
	{model.ErrNotHost, "Only the host can select a game"},
	{model.ErrUnknownGameType, "Unknown game type"},
	{model.ErrNotEnoughPlayers, "Waiting for another player"},
}

// ErrorMessage returns the text shown to a player whose room action failed
func ErrorMessage(err error) string {
	for _, m := range errorMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return messageInternal
}
