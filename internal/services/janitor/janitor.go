package janitor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/mcoot/duelroom/internal/model"
)

// DefaultSchedule runs a sweep once a minute
const DefaultSchedule = "@every 1m"

// RoomLister lists every live room
type RoomLister interface {
	ListRooms(ctx context.Context) ([]*model.Room, error)
}

// Presence reports whether a player still has an open connection
type Presence interface {
	Connected(playerID model.PlayerID) bool
}

// Releaser removes players and the bookkeeping of rooms that are gone
type Releaser interface {
	Disconnect(ctx context.Context, playerID model.PlayerID)
	Prune(ctx context.Context) (int, error)
}

// Result summarises one sweep
type Result struct {
	Disconnected int
	Pruned       int
}

// Janitor periodically releases seats held by players whose connection is
// gone, e.g. after a close the gateway never saw
type Janitor struct {
	rooms    RoomLister
	presence Presence
	releaser Releaser
	schedule string
	logger   *slog.Logger

	cron *cron.Cron
}

// New creates a Janitor. An empty schedule uses DefaultSchedule.
func New(rooms RoomLister, presence Presence, releaser Releaser, schedule string, logger *slog.Logger) *Janitor {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	return &Janitor{
		rooms:    rooms,
		presence: presence,
		releaser: releaser,
		schedule: schedule,
		logger:   logger.With(slog.String("component", "janitor")),
	}
}

// Sweep disconnects every seated player without a live connection and then
// prunes per-room state of deleted rooms
func (j *Janitor) Sweep(ctx context.Context) (Result, error) {
	var res Result

	rooms, err := j.rooms.ListRooms(ctx)
	if err != nil {
		return res, fmt.Errorf("list rooms: %w", err)
	}

	stale := make(map[model.PlayerID]struct{})
	for _, r := range rooms {
		for _, p := range r.Players {
			if !j.presence.Connected(p.ID) {
				stale[p.ID] = struct{}{}
			}
		}
	}

	for playerID := range stale {
		j.logger.Info("releasing disconnected player", slog.String("player_id", string(playerID)))
		j.releaser.Disconnect(ctx, playerID)
		res.Disconnected++
	}

	pruned, err := j.releaser.Prune(ctx)
	if err != nil {
		return res, fmt.Errorf("prune rooms: %w", err)
	}
	res.Pruned = pruned
	return res, nil
}

// Start schedules sweeps in the background
func (j *Janitor) Start() error {
	c := cron.New()
	_, err := c.AddFunc(j.schedule, func() {
		res, err := j.Sweep(context.Background())
		if err != nil {
			j.logger.Error("sweep failed", slog.String("error", err.Error()))
			return
		}
		if res.Disconnected > 0 || res.Pruned > 0 {
			j.logger.Info("sweep complete",
				slog.Int("disconnected", res.Disconnected),
				slog.Int("pruned", res.Pruned))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}
	j.cron = c
	c.Start()
	j.logger.Info("janitor started", slog.String("schedule", j.schedule))
	return nil
}

// Stop halts scheduling and waits for a running sweep to finish
func (j *Janitor) Stop() {
	if j.cron == nil {
		return
	}
	<-j.cron.Stop().Done()
	j.cron = nil
}
