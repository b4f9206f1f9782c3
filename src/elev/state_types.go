// State types are defined in elev package to make method receivers possible in fsm.go and elev_state.go.
package elev

import (
	"errors"
	"sync"

	"elevbank/src/types"
)

var ErrInvalidFloor = errors.New("invalid floor")

// Car is one elevator of the bank. All fields below mu are guarded by it.
type Car struct {
	ID       int
	MinFloor int
	MaxFloor int

	// wake is signalled when the car leaves Idle so a parked loop resumes.
	wake chan struct{}

	mu        sync.Mutex
	floor     int
	dir       types.Direction
	up        *floorSet
	down      *floorSet
	observers []types.Observer
}

func NewCar(id, startFloor, minFloor, maxFloor int) *Car {
	return &Car{
		ID:       id,
		MinFloor: minFloor,
		MaxFloor: maxFloor,
		wake:     make(chan struct{}, 1),
		floor:    startFloor,
		dir:      types.Idle,
		up:       newFloorSet(ascending),
		down:     newFloorSet(descending),
	}
}

func (c *Car) AddObserver(observer types.Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, observer)
}

// emit must be called with mu held.
func (c *Car) emit(kind types.EventKind, events *[]types.StatusEvent) {
	event := types.StatusEvent{
		CarID:     c.ID,
		Floor:     c.floor,
		Direction: c.dir,
		Kind:      kind,
	}
	*events = append(*events, event)
	for _, observer := range c.observers {
		observer.OnStatus(event)
	}
}
