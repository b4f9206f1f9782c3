// Contains the SCAN state machine of a single car.
package elev

import (
	"fmt"
	"log/slog"

	"elevbank/src/types"
)

// Enqueue adds a floor call to the car.
//   - floors outside the shaft are rejected without touching state
//   - a call for the current floor is served at once and never stored, which
//     also clears that floor if the car arrived with it still pending
//   - a parked car takes the direction of the new call and wakes its loop
//   - a floor that is already pending is ignored
func (c *Car) Enqueue(req types.Request) error {
	if req.Floor < c.MinFloor || req.Floor > c.MaxFloor {
		return fmt.Errorf("%w: car %d got floor %d outside [%d, %d]",
			ErrInvalidFloor, c.ID, req.Floor, c.MinFloor, c.MaxFloor)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var events []types.StatusEvent
	switch {
	case req.Floor > c.floor:
		if !c.up.add(req.Floor) {
			slog.Debug("Call already pending", "car", c.ID, "request", req)
			return nil
		}
	case req.Floor < c.floor:
		if !c.down.add(req.Floor) {
			slog.Debug("Call already pending", "car", c.ID, "request", req)
			return nil
		}
	default:
		slog.Debug("Call served at current floor", "car", c.ID, "request", req)
		// The car may have just arrived here with the floor still pending.
		c.up.remove(c.floor)
		c.down.remove(c.floor)
		c.emit(types.Stopped, &events)
		if c.dir != types.Idle && c.up.empty() && c.down.empty() {
			c.dir = types.Idle
			c.emit(types.Parked, &events)
		}
		return nil
	}
	slog.Debug("Call queued", "car", c.ID, "request", req, "id", req.ID,
		"up", c.up.len(), "down", c.down.len())

	if c.dir == types.Idle {
		c.dir = types.Towards(c.floor, req.Floor)
		select {
		case c.wake <- struct{}{}:
		default:
		}
	}
	return nil
}

// Step advances the car by one tick and returns the events it produced.
// An idle car does nothing.
func (c *Car) Step() []types.StatusEvent {
	c.mu.Lock()
	defer c.mu.Unlock()

	var events []types.StatusEvent
	switch c.dir {
	case types.Up:
		c.sweep(c.up, c.down, &events)
	case types.Down:
		c.sweep(c.down, c.up, &events)
	}
	return events
}

// sweep serves the current floor from the active set and then chooses the next action.
func (c *Car) sweep(active, opposite *floorSet, events *[]types.StatusEvent) {
	if active.remove(c.floor) {
		slog.Debug("Stopping at floor", "car", c.ID, "floor", c.floor, "direction", c.dir)
		c.emit(types.Stopped, events)
	}

	switch c.chooseAction(active, opposite) {
	case types.Moved:
		if c.dir == types.Up {
			c.floor++
		} else {
			c.floor--
		}
		c.emit(types.Moved, events)
	case types.Reversed:
		c.dir = reverse(c.dir)
		slog.Debug("Reversing", "car", c.ID, "floor", c.floor, "direction", c.dir)
		c.emit(types.Reversed, events)
	case types.Parked:
		c.dir = types.Idle
		slog.Debug("Parking", "car", c.ID, "floor", c.floor)
		c.emit(types.Parked, events)
	}
}

// chooseAction decides what the car does after the stop check.
//  1. Keep moving while there are calls ahead in the current direction.
//  2. Reverse only when the current direction is drained and calls remain behind.
//  3. Park when there are no calls at all.
func (c *Car) chooseAction(active, opposite *floorSet) types.EventKind {
	ahead := active.ordersAbove(c.floor)
	if c.dir == types.Down {
		ahead = active.ordersBelow(c.floor)
	}
	switch {
	case ahead:
		return types.Moved
	case !opposite.empty():
		return types.Reversed
	default:
		return types.Parked
	}
}

func reverse(dir types.Direction) types.Direction {
	switch dir {
	case types.Up:
		return types.Down
	case types.Down:
		return types.Up
	}
	return types.Idle
}
