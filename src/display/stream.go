package display

import (
	"log/slog"
	"sync/atomic"

	"elevbank/src/types"
)

// Stream hands events to a consumer goroutine through a buffered channel.
// Cars never wait for the consumer: when the buffer is full the event is dropped and counted.
type Stream struct {
	events  chan types.StatusEvent
	dropped atomic.Uint64
}

func NewStream(size int) *Stream {
	return &Stream{events: make(chan types.StatusEvent, size)}
}

func (s *Stream) OnStatus(event types.StatusEvent) {
	select {
	case s.events <- event:
	default:
		if n := s.dropped.Add(1); n == 1 || n%100 == 0 {
			slog.Warn("Event stream full, dropping events", "dropped", n)
		}
	}
}

func (s *Stream) Events() <-chan types.StatusEvent {
	return s.events
}

func (s *Stream) Dropped() uint64 {
	return s.dropped.Load()
}
