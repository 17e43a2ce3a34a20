package games

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/mcoot/duelroom/internal/model"
)

var validate = validator.New()

// decodeMove unmarshals a move payload and checks its struct tags
func decodeMove(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: empty payload", model.ErrMalformedMove)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", model.ErrMalformedMove, err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", model.ErrInvalidPosition, err)
	}
	return nil
}

// decodeBoard unmarshals the board payload of st into a fresh value
func decodeBoard[T any](st *model.GameState) (T, error) {
	var board T
	if err := json.Unmarshal(st.Board, &board); err != nil {
		return board, fmt.Errorf("decode %s board: %w", st.GameType, err)
	}
	return board, nil
}

// DecodeBoard exposes a state's board as its concrete type
func DecodeBoard[T any](st *model.GameState) (T, error) {
	return decodeBoard[T](st)
}

func encodeBoard(st *model.GameState, board any) error {
	data, err := json.Marshal(board)
	if err != nil {
		return fmt.Errorf("encode %s board: %w", st.GameType, err)
	}
	st.Board = data
	return nil
}

// commit stores an accepted move's board and marks the game as started
func commit(st *model.GameState, board any) error {
	st.FirstMoveMade = true
	return encodeBoard(st, board)
}

// requireTurn rejects moves on finished games and out-of-turn moves
func requireTurn(st *model.GameState, actor model.PlayerID) error {
	if st.IsOver {
		return model.ErrGameOver
	}
	if st.CurrentPlayerID != actor {
		return model.ErrNotPlayerTurn
	}
	return nil
}

func illegal(format string, args ...any) error {
	return fmt.Errorf("%w: %s", model.ErrIllegalMove, fmt.Sprintf(format, args...))
}

// finishByScore ends the game in favour of the higher score
func finishByScore(st *model.GameState, scores [2]int) {
	switch {
	case scores[0] > scores[1]:
		st.Finish(st.Players[0].ID)
	case scores[1] > scores[0]:
		st.Finish(st.Players[1].ID)
	default:
		st.FinishDraw()
	}
}
