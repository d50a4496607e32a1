// SPDX-License-Identifier: EPL-2.0

package player

// State is the lifecycle stage of a player. Transitions are published
// with atomic stores; the producer owns every transition except
// Idle→Opening, which the controller performs while the player is
// parked.
type State int32

const (
	// StateIdle: no file bound, the player is free.
	StateIdle State = iota

	// StateOpening: a play request is pending; the producer will
	// open and parse the file on its next cycle.
	StateOpening

	// StateFilling: the file is open and the producer is
	// prefilling the ring before the consumer may drain it.
	StateFilling

	// StatePlaying: steady state, the consumer drains and the
	// producer refills.
	StatePlaying

	// StateDraining: the decoder hit end of stream; the consumer
	// drains what remains in the ring.
	StateDraining
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateOpening:
		return "opening"
	case StateFilling:
		return "filling"
	case StatePlaying:
		return "playing"
	case StateDraining:
		return "draining"
	default:
		return "unknown"
	}
}

// Active reports whether the player holds a file.
func (s State) Active() bool { return s != StateIdle }
