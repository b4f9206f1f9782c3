package timer

import (
	"time"
)

type TimerAction int

const (
	Start TimerAction = iota
	Stop
)

// Timer paces a car loop. It is armed with Start before every tick and
// disarmed with Stop while the car is parked.
type Timer struct {
	t        *time.Timer
	interval time.Duration
}

func New(interval time.Duration) *Timer {
	t := time.NewTimer(interval)
	stopTimer(t)
	return &Timer{t: t, interval: interval}
}

func (timer *Timer) C() <-chan time.Time {
	return timer.t.C
}

func (timer *Timer) Interval() time.Duration {
	return timer.interval
}

func (timer *Timer) Apply(action TimerAction) {
	switch action {
	case Start:
		resetTimer(timer.t, timer.interval)
	case Stop:
		stopTimer(timer.t)
	}
}

// Stops the timer and resets it.
func resetTimer(t *time.Timer, d time.Duration) {
	stopTimer(t)
	t.Reset(d)
}

func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
