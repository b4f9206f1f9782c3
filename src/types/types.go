package types

import (
	"fmt"

	"github.com/google/uuid"
)

type Direction int

const (
	Idle Direction = iota
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Idle:
		return "IDLE"
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Towards returns the direction of travel from one floor to another, Idle if they are equal.
func Towards(from, to int) Direction {
	if from < to {
		return Up
	}
	if from > to {
		return Down
	}
	return Idle
}

// Request is a floor call. Hint is Idle when the caller gave no direction.
// The core compares requests by Floor only.
type Request struct {
	ID    uuid.UUID
	Floor int
	Hint  Direction
}

func NewRequest(floor int, hint Direction) Request {
	return Request{
		ID:    uuid.New(),
		Floor: floor,
		Hint:  hint,
	}
}

func (r Request) String() string {
	if r.Hint == Idle {
		return fmt.Sprintf("Call(%d)", r.Floor)
	}
	return fmt.Sprintf("Call(%d,%s)", r.Floor, r.Hint)
}

// CarStatus is a point-in-time copy of a car. Up and Down never alias the car's own sets.
type CarStatus struct {
	ID        int
	Floor     int
	Direction Direction
	UpCount   int
	DownCount int
	Up        []int
	Down      []int
}

func (s CarStatus) Pending() int {
	return s.UpCount + s.DownCount
}

// MovingAway reports whether the car is travelling in the opposite direction of floor.
func (s CarStatus) MovingAway(floor int) bool {
	return (s.Direction == Up && floor < s.Floor) ||
		(s.Direction == Down && floor > s.Floor)
}

type EventKind int

const (
	Moved EventKind = iota
	Stopped
	Parked
	Reversed
)

func (k EventKind) String() string {
	switch k {
	case Moved:
		return "MOVED"
	case Stopped:
		return "STOPPED"
	case Parked:
		return "IDLE"
	case Reversed:
		return "REVERSED"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

type StatusEvent struct {
	CarID     int
	Floor     int
	Direction Direction
	Kind      EventKind
}

// Observer receives status events. OnStatus is called from inside the car's
// critical section and must neither block nor call back into the car.
type Observer interface {
	OnStatus(event StatusEvent)
}

type ObserverFunc func(event StatusEvent)

func (f ObserverFunc) OnStatus(event StatusEvent) {
	f(event)
}
