package games

import (
	"encoding/json"
	"time"

	"github.com/mcoot/duelroom/internal/model"
)

const dotsBoxes = 3

// DotsAndBoxesBoard holds the drawn edges of a 4x4 dot lattice. Horizontal
// has 4 rows of 3 edges, Vertical has 3 rows of 4 edges.
type DotsAndBoxesBoard struct {
	Horizontal [][]bool           `json:"horizontal"`
	Vertical   [][]bool           `json:"vertical"`
	Boxes      [][]model.PlayerID `json:"boxes"`
	Scores     [2]int             `json:"scores"`
}

type dotsMove struct {
	Orientation string `json:"orientation" validate:"required,oneof=horizontal vertical"`
	Row         *int   `json:"row" validate:"required,min=0,max=3"`
	Col         *int   `json:"col" validate:"required,min=0,max=3"`
}

// DotsAndBoxes draws edges and claims completed boxes
type DotsAndBoxes struct{}

func (DotsAndBoxes) Type() model.GameType        { return model.GameDotsAndBoxes }
func (DotsAndBoxes) TurnDuration() time.Duration { return 5 * time.Second }

func (DotsAndBoxes) Initialize([]model.Player) (any, error) {
	b := DotsAndBoxesBoard{
		Horizontal: boolGrid(dotsBoxes+1, dotsBoxes),
		Vertical:   boolGrid(dotsBoxes, dotsBoxes+1),
		Boxes:      make([][]model.PlayerID, dotsBoxes),
	}
	for r := range b.Boxes {
		b.Boxes[r] = make([]model.PlayerID, dotsBoxes)
	}
	return b, nil
}

func (DotsAndBoxes) Apply(st *model.GameState, actor model.PlayerID, raw json.RawMessage) (model.MoveExtra, error) {
	var extra model.MoveExtra
	if err := requireTurn(st, actor); err != nil {
		return extra, err
	}
	var m dotsMove
	if err := decodeMove(raw, &m); err != nil {
		return extra, err
	}
	b, err := decodeBoard[DotsAndBoxesBoard](st)
	if err != nil {
		return extra, err
	}

	edges := b.Horizontal
	if m.Orientation == "vertical" {
		edges = b.Vertical
	}
	row, col := *m.Row, *m.Col
	if row >= len(edges) || col >= len(edges[row]) {
		return extra, model.ErrInvalidPosition
	}
	if edges[row][col] {
		return extra, model.ErrCellOccupied
	}
	edges[row][col] = true

	seat := st.PlayerIndex(actor)
	for r := range dotsBoxes {
		for c := range dotsBoxes {
			if b.Boxes[r][c] == "" && b.boxClosed(r, c) {
				b.Boxes[r][c] = actor
				b.Scores[seat]++
				extra.BoxesClaimed++
			}
		}
	}

	switch {
	case b.Scores[0]+b.Scores[1] == dotsBoxes*dotsBoxes:
		finishByScore(st, b.Scores)
	case extra.BoxesClaimed == 0:
		st.SwitchTurn()
	}
	return extra, commit(st, b)
}

func (b *DotsAndBoxesBoard) boxClosed(r, c int) bool {
	return b.Horizontal[r][c] && b.Horizontal[r+1][c] && b.Vertical[r][c] && b.Vertical[r][c+1]
}

func boolGrid(rows, cols int) [][]bool {
	g := make([][]bool, rows)
	for r := range g {
		g[r] = make([]bool, cols)
	}
	return g
}
