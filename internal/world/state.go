package world

import (
	"fmt"

	"rockup/internal/blocks"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// State is the phase of a run.
type State uint8

const (
	Lobby State = iota
	Falling
	Playing
	Clear
)

func (s State) String() string {
	switch s {
	case Lobby:
		return "LOBBY"
	case Falling:
		return "FALLING"
	case Playing:
		return "PLAYING"
	case Clear:
		return "CLEAR"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// ActiveSet returns the collider set used for collision in state s.
func (s State) ActiveSet() blocks.Set {
	if s == Lobby || s == Falling {
		return blocks.Lobby
	}
	return blocks.Tower
}

// Reason tells why a transition happened.
type Reason string

const (
	ReasonDeck   Reason = "left lobby deck"
	ReasonLanded Reason = "reached tower"
	ReasonGoal   Reason = "reached goal"
	ReasonReset  Reason = "reset"
)

// Transition is published every time the state changes, and on every reset.
type Transition struct {
	From     State
	To       State
	Reason   Reason
	Tick     uint64
	Position rl.Vector3
	Seed     int64
}
