package redis

import (
	"fmt"

	"github.com/mcoot/duelroom/internal/model"
)

// Key prefix for all room-related data
const keyPrefix = "duelroom"

// roomKey returns the Redis key for a Room
func roomKey(code model.RoomCode) string {
	return fmt.Sprintf("%s:room:%s", keyPrefix, code)
}

// gameStateKey returns the Redis key for the game state of a room
func gameStateKey(code model.RoomCode) string {
	return fmt.Sprintf("%s:state:%s", keyPrefix, code)
}

// roomIndexKey returns the Redis key for the SET of live room keys
func roomIndexKey() string {
	return fmt.Sprintf("%s:idx:rooms", keyPrefix)
}

// allKeysPattern matches every key this store writes
func allKeysPattern() string {
	return keyPrefix + ":*"
}
