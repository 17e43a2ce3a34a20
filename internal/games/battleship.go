package games

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/mcoot/duelroom/internal/model"
)

const (
	battleshipSize = 10

	PhaseSetup   = "setup"
	PhasePlaying = "playing"

	ShotHit  = "hit"
	ShotMiss = "miss"
)

// fleetSizes is the required fleet, sorted ascending
var fleetSizes = []int{2, 3, 3, 4, 5}

// Ship is a straight run of cells
type Ship struct {
	Size  int              `json:"size"`
	Cells []model.Position `json:"cells"`
}

// Fleet is one player's ships and the shots they have fired at the opponent
type Fleet struct {
	Ready bool     `json:"ready"`
	Ships []Ship   `json:"ships"`
	Shots []string `json:"shots"`
}

// BattleshipBoard holds both fleets keyed by player
type BattleshipBoard struct {
	Phase  string                    `json:"phase"`
	Fleets map[model.PlayerID]*Fleet `json:"fleets"`
}

type battleshipMove struct {
	Ships []Ship `json:"ships"`
	Row   *int   `json:"row" validate:"omitempty,min=0,max=9"`
	Col   *int   `json:"col" validate:"omitempty,min=0,max=9"`
}

// Battleship places fleets in a setup phase, then trades shots
type Battleship struct{}

func (Battleship) Type() model.GameType        { return model.GameBattleship }
func (Battleship) TurnDuration() time.Duration { return 8 * time.Second }

func (Battleship) Initialize(players []model.Player) (any, error) {
	b := BattleshipBoard{Phase: PhaseSetup, Fleets: make(map[model.PlayerID]*Fleet, len(players))}
	for _, p := range players {
		b.Fleets[p.ID] = &Fleet{Ships: []Ship{}, Shots: make([]string, battleshipSize*battleshipSize)}
	}
	return b, nil
}

func (bs Battleship) Apply(st *model.GameState, actor model.PlayerID, raw json.RawMessage) (model.MoveExtra, error) {
	var extra model.MoveExtra
	if st.IsOver {
		return extra, model.ErrGameOver
	}
	var m battleshipMove
	if err := decodeMove(raw, &m); err != nil {
		return extra, err
	}
	b, err := decodeBoard[BattleshipBoard](st)
	if err != nil {
		return extra, err
	}

	if b.Phase == PhaseSetup {
		return extra, bs.placeFleet(st, &b, actor, m.Ships)
	}

	if err := requireTurn(st, actor); err != nil {
		return extra, err
	}
	if m.Row == nil || m.Col == nil {
		return extra, model.ErrMalformedMove
	}
	own, enemy := b.Fleets[actor], b.Fleets[st.OtherPlayer(actor)]
	shot := *m.Row*battleshipSize + *m.Col
	if own.Shots[shot] != "" {
		return extra, model.ErrCellOccupied
	}

	target := model.Position{Row: *m.Row, Col: *m.Col}
	hit := false
	own.Shots[shot] = ShotMiss
	for _, ship := range enemy.Ships {
		if !slices.Contains(ship.Cells, target) {
			continue
		}
		hit = true
		own.Shots[shot] = ShotHit
		extra.Sunk = own.allHit(ship.Cells)
		break
	}
	extra.Hit = &hit

	if own.sankFleet(enemy) {
		st.Finish(actor)
	} else {
		st.SwitchTurn()
	}
	return extra, commit(st, b)
}

// placeFleet records one player's ships. Play starts once both have placed.
func (Battleship) placeFleet(st *model.GameState, b *BattleshipBoard, actor model.PlayerID, ships []Ship) error {
	fleet := b.Fleets[actor]
	if fleet == nil {
		return model.ErrNotInRoom
	}
	if fleet.Ready {
		return illegal("fleet already placed")
	}
	if err := validateFleet(ships); err != nil {
		return err
	}
	fleet.Ships = ships
	fleet.Ready = true

	ready := true
	for _, f := range b.Fleets {
		ready = ready && f.Ready
	}
	if ready {
		b.Phase = PhasePlaying
		st.FirstMoveMade = true
	}
	return encodeBoard(st, b)
}

// Redact hides every ship of another player's fleet that has not been sunk
func (Battleship) Redact(st *model.GameState, viewer model.PlayerID) error {
	b, err := decodeBoard[BattleshipBoard](st)
	if err != nil {
		return err
	}
	for owner, fleet := range b.Fleets {
		if owner == viewer {
			continue
		}
		hunter := b.Fleets[st.OtherPlayer(owner)]
		sunk := []Ship{}
		for _, ship := range fleet.Ships {
			if hunter != nil && hunter.allHit(ship.Cells) {
				sunk = append(sunk, ship)
			}
		}
		fleet.Ships = sunk
	}
	return encodeBoard(st, b)
}

func validateFleet(ships []Ship) error {
	sizes := make([]int, len(ships))
	for i, s := range ships {
		sizes[i] = s.Size
	}
	slices.Sort(sizes)
	if !slices.Equal(sizes, fleetSizes) {
		return illegal("fleet must be ships of sizes %v", fleetSizes)
	}

	occupied := make(map[model.Position]bool)
	for _, s := range ships {
		if len(s.Cells) != s.Size || !straightRun(s.Cells) {
			return illegal("ship of size %d is not a straight run of %d cells", s.Size, s.Size)
		}
		for _, p := range s.Cells {
			if p.Row < 0 || p.Row >= battleshipSize || p.Col < 0 || p.Col >= battleshipSize {
				return model.ErrInvalidPosition
			}
			if occupied[p] {
				return model.ErrCellOccupied
			}
			occupied[p] = true
		}
	}
	return nil
}

// straightRun reports whether the cells form one contiguous row or column segment
func straightRun(cells []model.Position) bool {
	sorted := slices.Clone(cells)
	slices.SortFunc(sorted, func(a, b model.Position) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
	for i := 1; i < len(sorted); i++ {
		dr, dc := sorted[i].Row-sorted[i-1].Row, sorted[i].Col-sorted[i-1].Col
		horizontal := sorted[0].Row == sorted[len(sorted)-1].Row
		if (horizontal && (dr != 0 || dc != 1)) || (!horizontal && (dr != 1 || dc != 0)) {
			return false
		}
	}
	return true
}

func (f *Fleet) allHit(cells []model.Position) bool {
	for _, p := range cells {
		if f.Shots[p.Row*battleshipSize+p.Col] != ShotHit {
			return false
		}
	}
	return true
}

func (f *Fleet) sankFleet(enemy *Fleet) bool {
	for _, ship := range enemy.Ships {
		if !f.allHit(ship.Cells) {
			return false
		}
	}
	return len(enemy.Ships) > 0
}
