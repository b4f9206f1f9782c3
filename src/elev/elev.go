package elev

import (
	"context"
	"log/slog"
	"time"

	"elevbank/src/timer"
	"elevbank/src/types"
)

// Run is the movement loop of the car. It steps once per tick while the car
// has calls and parks on the wake channel while it is idle. The loop only
// looks at ctx between steps, so a step is never cut short.
func (c *Car) Run(ctx context.Context, tick time.Duration) {
	tickTimer := timer.New(tick)
	defer tickTimer.Apply(timer.Stop)
	slog.Info("Car started", "car", c.ID, "floor", c.Floor(), "tick", tick)

	for {
		if ctx.Err() != nil {
			slog.Info("Car stopped", "car", c.ID, "floor", c.Floor())
			return
		}

		if c.Direction() == types.Idle {
			tickTimer.Apply(timer.Stop)
			select {
			case <-ctx.Done():
				continue
			case <-c.wake:
				slog.Debug("Car woken", "car", c.ID)
				continue
			}
		}

		tickTimer.Apply(timer.Start)
		select {
		case <-ctx.Done():
			continue
		case <-tickTimer.C():
			c.Step()
		}
	}
}
