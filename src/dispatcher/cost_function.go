package dispatcher

import (
	"elevbank/src/types"
	"elevbank/src/utils"
)

// NearestCar prefers the closest car and penalizes cars heading away from the call.
type NearestCar struct{}

func (NearestCar) Name() string { return NearestName }

func (NearestCar) Cost(car types.CarStatus, req types.Request) int {
	cost := utils.Abs(car.Floor - req.Floor)
	if car.MovingAway(req.Floor) {
		cost += MovingAwayPenalty
	}
	return cost
}

func (s NearestCar) Select(cars []types.CarStatus, req types.Request) (int, bool) {
	return findAssignee(cars, req, s.Cost)
}

// EnergySaving avoids waking parked cars when a moving car can absorb the call.
type EnergySaving struct{}

func (EnergySaving) Name() string { return EnergyName }

func (EnergySaving) Cost(car types.CarStatus, req types.Request) int {
	distance := utils.Abs(car.Floor - req.Floor)
	cost := distance
	if car.Direction == types.Idle && distance > 0 {
		cost += IdleStartupPenalty
	}
	if car.MovingAway(req.Floor) {
		cost += EnergyMovingAwayPenalty
	}
	return cost
}

func (s EnergySaving) Select(cars []types.CarStatus, req types.Request) (int, bool) {
	return findAssignee(cars, req, s.Cost)
}

// LoadAware only considers cars that can pick the call up on their current
// sweep and weighs distance against the number of calls they already carry.
// It reports no car when every car is busy travelling the other way.
type LoadAware struct{}

func (LoadAware) Name() string { return LoadName }

// CanTake reports whether the car can serve the call without reversing first.
// A hint against the car's travel direction disqualifies a moving car.
func (LoadAware) CanTake(car types.CarStatus, req types.Request) bool {
	switch car.Direction {
	case types.Idle:
		return true
	case types.Up:
		return req.Floor >= car.Floor && req.Hint != types.Down
	case types.Down:
		return req.Floor <= car.Floor && req.Hint != types.Up
	}
	return false
}

func (s LoadAware) Cost(car types.CarStatus, req types.Request) int {
	if !s.CanTake(car, req) {
		return unreachable
	}
	return utils.Abs(car.Floor-req.Floor) + car.Pending()
}

func (s LoadAware) Select(cars []types.CarStatus, req types.Request) (int, bool) {
	return findAssignee(cars, req, s.Cost)
}
