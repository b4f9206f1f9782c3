package dispatcher

import (
	"errors"

	"elevbank/src/types"
)

var ErrUnknownStrategy = errors.New("unknown dispatch strategy")

// Strategy picks the car that should answer a call. Implementations are pure:
// they only read the snapshots and never touch a car.
type Strategy interface {
	Name() string
	Select(cars []types.CarStatus, req types.Request) (carID int, ok bool)
}

const (
	NearestName = "nearest"
	EnergyName  = "energy"
	LoadName    = "load"
	EtaName     = "eta"
)

const (
	noCandidate = -1
	unreachable = 1 << 30
	maxSimTicks = 1 << 16
)

const (
	MovingAwayPenalty       = 10
	IdleStartupPenalty      = 15
	EnergyMovingAwayPenalty = 25
)
