package elev

import (
	"log/slog"

	"github.com/tiendc/go-deepcopy"

	"elevbank/src/types"
)

// Status copies the car state under its lock. The pending floors are deep
// copied so the snapshot can be read after the car has moved on.
func (c *Car) Status() types.CarStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := types.CarStatus{
		ID:        c.ID,
		Floor:     c.floor,
		Direction: c.dir,
		UpCount:   c.up.len(),
		DownCount: c.down.len(),
	}
	if err := deepcopy.Copy(&status.Up, c.up.floors); err != nil {
		slog.Error("Copying up calls failed", "car", c.ID, "err", err)
	}
	if err := deepcopy.Copy(&status.Down, c.down.floors); err != nil {
		slog.Error("Copying down calls failed", "car", c.ID, "err", err)
	}
	return status
}

func (c *Car) Direction() types.Direction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dir
}

func (c *Car) Floor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.floor
}
