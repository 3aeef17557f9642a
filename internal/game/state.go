// Package game owns the session state machine that decides which subsystem
// may act on a tick, and the terminal loop that drives it.
package game

// State represents the current game state. Only the subsystem named by the
// state may mutate the player.
type State int

const (
	// StateExploring - the player walks the overworld; encounters may roll.
	StateExploring State = iota
	// StateBattle - a battle owns the player until it resolves.
	StateBattle
	// StateDialog - an NPC is talking; movement and encounters are paused.
	StateDialog
	// StateLevelUp - the level-up screen is showing.
	StateLevelUp
	// StateGameOver - the player was defeated and may restart.
	StateGameOver
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateExploring:
		return "exploring"
	case StateBattle:
		return "battle"
	case StateDialog:
		return "dialog"
	case StateLevelUp:
		return "level_up"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}
