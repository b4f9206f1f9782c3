package dispatcher

import (
	"fmt"
	"log/slog"
	"sort"

	"elevbank/src/types"
)

var strategies = map[string]Strategy{
	NearestName: NearestCar{},
	EnergyName:  EnergySaving{},
	LoadName:    LoadAware{},
	EtaName:     TravelTime{},
}

func ByName(name string) (Strategy, error) {
	s, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownStrategy, name, Names())
	}
	return s, nil
}

func Names() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// findAssignee returns the car with the lowest cost, ties going to the lowest id.
// Cars with an unreachable cost are never picked.
func findAssignee(cars []types.CarStatus, req types.Request, cost func(types.CarStatus, types.Request) int) (int, bool) {
	lowestCost := unreachable
	assignee := noCandidate

	for _, car := range cars {
		c := cost(car, req)
		if c >= unreachable {
			continue
		}
		if c < lowestCost || (c == lowestCost && car.ID < assignee) {
			lowestCost = c
			assignee = car.ID
		}
	}

	if assignee == noCandidate {
		slog.Debug("No car can take call", "request", req, "cars", len(cars))
		return noCandidate, false
	}
	slog.Debug("Assigning call", "request", req, "car", assignee, "cost", lowestCost)
	return assignee, true
}
