package dispatcher

import (
	"log/slog"
	"slices"

	"github.com/tiendc/go-deepcopy"

	"elevbank/src/types"
)

// TravelTime simulates each car's SCAN sweep with the call added and picks
// the car that reaches the floor in the fewest ticks.
type TravelTime struct{}

func (TravelTime) Name() string { return EtaName }

func (s TravelTime) Select(cars []types.CarStatus, req types.Request) (int, bool) {
	return findAssignee(cars, req, s.Cost)
}

// Cost is the number of ticks until the car stops at the requested floor.
//   - works on a deep copy of the snapshot, the input is left untouched
//   - a stop and a move happen in the same tick, a reversal takes a tick of its own
//   - a call at the car's floor costs nothing
func (TravelTime) Cost(car types.CarStatus, req types.Request) int {
	if car.Floor == req.Floor {
		return 0
	}
	sim := new(types.CarStatus)
	if err := deepcopy.Copy(sim, &car); err != nil {
		slog.Error("Copying snapshot failed", "car", car.ID, "err", err)
		return unreachable
	}

	if req.Floor > sim.Floor {
		sim.Up = insertSorted(sim.Up, req.Floor, false)
	} else {
		sim.Down = insertSorted(sim.Down, req.Floor, true)
	}
	if sim.Direction == types.Idle {
		sim.Direction = types.Towards(sim.Floor, req.Floor)
	}

	for ticks := 1; ticks <= maxSimTicks; ticks++ {
		active, opposite := &sim.Up, &sim.Down
		if sim.Direction == types.Down {
			active, opposite = &sim.Down, &sim.Up
		}

		if i := slices.Index(*active, sim.Floor); i >= 0 {
			if sim.Floor == req.Floor {
				return ticks
			}
			*active = slices.Delete(*active, i, i+1)
		}

		switch {
		case hasAhead(*active, sim.Floor, sim.Direction):
			if sim.Direction == types.Up {
				sim.Floor++
			} else {
				sim.Floor--
			}
		case len(*opposite) > 0:
			if sim.Direction == types.Up {
				sim.Direction = types.Down
			} else {
				sim.Direction = types.Up
			}
		default:
			return unreachable
		}
	}
	return unreachable
}

func hasAhead(floors []int, floor int, dir types.Direction) bool {
	return slices.ContainsFunc(floors, func(f int) bool {
		if dir == types.Up {
			return f > floor
		}
		return f < floor
	})
}

func insertSorted(floors []int, floor int, descending bool) []int {
	if slices.Contains(floors, floor) {
		return floors
	}
	floors = append(floors, floor)
	slices.Sort(floors)
	if descending {
		slices.Reverse(floors)
	}
	return floors
}
