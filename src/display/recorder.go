package display

import (
	"sync"

	"elevbank/src/types"
)

// Recorder keeps every event it sees.
type Recorder struct {
	mu     sync.Mutex
	events []types.StatusEvent
}

func (r *Recorder) OnStatus(event types.StatusEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *Recorder) Events() []types.StatusEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := make([]types.StatusEvent, len(r.events))
	copy(events, r.events)
	return events
}

// Stops returns the floors a car stopped at, in order.
func (r *Recorder) Stops(carID int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	var floors []int
	for _, event := range r.events {
		if event.CarID == carID && event.Kind == types.Stopped {
			floors = append(floors, event.Floor)
		}
	}
	return floors
}
