package testutil

import (
	"sync"

	"github.com/mcoot/duelroom/internal/model"
)

// RecordingNotifier captures every event sent to each player
type RecordingNotifier struct {
	mu     sync.Mutex
	events map[model.PlayerID][]model.Event
}

// NewRecordingNotifier creates an empty RecordingNotifier
func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{events: make(map[model.PlayerID][]model.Event)}
}

// Send records the event for the player
func (n *RecordingNotifier) Send(playerID model.PlayerID, event model.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events[playerID] = append(n.events[playerID], event)
}

// Events returns everything sent to the player so far
func (n *RecordingNotifier) Events(playerID model.PlayerID) []model.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]model.Event(nil), n.events[playerID]...)
}

// Types returns the types of the events sent to the player, in order
func (n *RecordingNotifier) Types(playerID model.PlayerID) []model.EventType {
	events := n.Events(playerID)
	types := make([]model.EventType, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	return types
}

// Last returns the most recent event sent to the player
func (n *RecordingNotifier) Last(playerID model.PlayerID) (model.Event, bool) {
	events := n.Events(playerID)
	if len(events) == 0 {
		return model.Event{}, false
	}
	return events[len(events)-1], true
}

// OfType returns the events of one type sent to the player
func (n *RecordingNotifier) OfType(playerID model.PlayerID, t model.EventType) []model.Event {
	var out []model.Event
	for _, e := range n.Events(playerID) {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Reset forgets all recorded events
func (n *RecordingNotifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = make(map[model.PlayerID][]model.Event)
}
