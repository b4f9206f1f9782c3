package dispatcher

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"slices"
	"testing"

	"elevbank/src/types"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

func idleCar(id, floor int) types.CarStatus {
	return types.CarStatus{ID: id, Floor: floor, Direction: types.Idle}
}

func movingCar(id, floor int, dir types.Direction, up, down []int) types.CarStatus {
	return types.CarStatus{
		ID:        id,
		Floor:     floor,
		Direction: dir,
		Up:        up,
		Down:      down,
		UpCount:   len(up),
		DownCount: len(down),
	}
}

func TestNearestCarPicksClosest(t *testing.T) {
	cars := []types.CarStatus{idleCar(0, 1), idleCar(1, 10)}
	req := types.NewRequest(5, types.Idle)

	s := NearestCar{}
	if c := s.Cost(cars[0], req); c != 4 {
		t.Errorf("Expected cost 4, got %d", c)
	}
	if c := s.Cost(cars[1], req); c != 5 {
		t.Errorf("Expected cost 5, got %d", c)
	}
	id, ok := s.Select(cars, req)
	if !ok || id != 0 {
		t.Errorf("Expected car 0, got %d (ok=%v)", id, ok)
	}
}

func TestNearestCarPenalizesMovingAway(t *testing.T) {
	req := types.NewRequest(5, types.Idle)
	tests := []struct {
		name string
		car  types.CarStatus
		cost int
	}{
		{"up below", movingCar(0, 3, types.Up, []int{8}, nil), 2},
		{"up above", movingCar(0, 7, types.Up, []int{9}, nil), 2 + MovingAwayPenalty},
		{"down above", movingCar(0, 7, types.Down, nil, []int{1}), 2},
		{"down below", movingCar(0, 3, types.Down, nil, []int{1}), 2 + MovingAwayPenalty},
		{"idle", idleCar(0, 9), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if c := (NearestCar{}).Cost(tt.car, req); c != tt.cost {
				t.Errorf("Expected cost %d, got %d", tt.cost, c)
			}
		})
	}
}

func TestTiesGoToLowestID(t *testing.T) {
	cars := []types.CarStatus{idleCar(2, 3), idleCar(0, 7), idleCar(1, 3)}
	req := types.NewRequest(5, types.Idle)
	for _, s := range []Strategy{NearestCar{}, EnergySaving{}, LoadAware{}, TravelTime{}} {
		id, ok := s.Select(cars, req)
		if !ok || id != 0 {
			t.Errorf("%s: expected car 0, got %d (ok=%v)", s.Name(), id, ok)
		}
	}
}

func TestEnergySavingPrefersMovingCar(t *testing.T) {
	carA := idleCar(0, 1)
	carB := movingCar(1, 4, types.Up, []int{6}, nil)
	req := types.NewRequest(5, types.Idle)

	s := EnergySaving{}
	if c := s.Cost(carA, req); c != 19 {
		t.Errorf("Expected cost 19 for idle car, got %d", c)
	}
	if c := s.Cost(carB, req); c != 1 {
		t.Errorf("Expected cost 1 for moving car, got %d", c)
	}
	id, ok := s.Select([]types.CarStatus{carA, carB}, req)
	if !ok || id != 1 {
		t.Errorf("Expected car 1, got %d (ok=%v)", id, ok)
	}
}

func TestEnergySavingPenalties(t *testing.T) {
	req := types.NewRequest(5, types.Idle)
	tests := []struct {
		name string
		car  types.CarStatus
		cost int
	}{
		{"idle at floor", idleCar(0, 5), 0},
		{"idle away", idleCar(0, 2), 3 + IdleStartupPenalty},
		{"moving away", movingCar(0, 6, types.Up, []int{9}, nil), 1 + EnergyMovingAwayPenalty},
		{"moving towards", movingCar(0, 8, types.Down, nil, []int{1}), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if c := (EnergySaving{}).Cost(tt.car, req); c != tt.cost {
				t.Errorf("Expected cost %d, got %d", tt.cost, c)
			}
		})
	}
}

func TestLoadAwareSkipsCarsThatCannotTake(t *testing.T) {
	s := LoadAware{}
	busyUp := movingCar(0, 6, types.Up, []int{9}, nil)
	busyDown := movingCar(1, 4, types.Down, nil, []int{1})

	if _, ok := s.Select([]types.CarStatus{busyUp, busyDown}, types.NewRequest(5, types.Idle)); ok {
		t.Error("Expected no car for a call behind both cars")
	}

	id, ok := s.Select([]types.CarStatus{busyUp, busyDown}, types.NewRequest(8, types.Idle))
	if !ok || id != 0 {
		t.Errorf("Expected car 0 for a call ahead of it, got %d (ok=%v)", id, ok)
	}

	if _, ok := s.Select([]types.CarStatus{busyUp}, types.NewRequest(8, types.Down)); ok {
		t.Error("Expected a down hint to disqualify a car going up")
	}
}

func TestLoadAwareWeighsPendingCalls(t *testing.T) {
	near := movingCar(0, 4, types.Up, []int{5, 6, 7, 8}, []int{2})
	far := idleCar(1, 1)
	req := types.NewRequest(5, types.Idle)

	s := LoadAware{}
	if c := s.Cost(near, req); c != 1+5 {
		t.Errorf("Expected cost 6, got %d", c)
	}
	if c := s.Cost(far, req); c != 4 {
		t.Errorf("Expected cost 4, got %d", c)
	}
	id, _ := s.Select([]types.CarStatus{near, far}, req)
	if id != 1 {
		t.Errorf("Expected idle car 1, got %d", id)
	}
}

func TestTravelTimeSimulatesSweep(t *testing.T) {
	s := TravelTime{}
	tests := []struct {
		name  string
		car   types.CarStatus
		floor int
		ticks int
	}{
		{"at floor", idleCar(0, 3), 3, 0},
		{"idle below", idleCar(0, 1), 5, 5},
		{"on the way", movingCar(0, 4, types.Up, []int{6}, nil), 5, 2},
		{"after reversal", movingCar(0, 4, types.Up, []int{6}, []int{2}), 3, 7},
		{"already pending", movingCar(0, 2, types.Up, []int{4}, nil), 4, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if c := s.Cost(tt.car, types.NewRequest(tt.floor, types.Idle)); c != tt.ticks {
				t.Errorf("Expected %d ticks, got %d", tt.ticks, c)
			}
		})
	}
}

func TestTravelTimeLeavesSnapshotUntouched(t *testing.T) {
	car := movingCar(0, 4, types.Up, []int{6, 8}, []int{2})
	up := slices.Clone(car.Up)
	down := slices.Clone(car.Down)

	(TravelTime{}).Cost(car, types.NewRequest(3, types.Idle))
	(TravelTime{}).Cost(car, types.NewRequest(7, types.Idle))

	if !slices.Equal(car.Up, up) || !slices.Equal(car.Down, down) {
		t.Errorf("Expected snapshot untouched, got up %v down %v", car.Up, car.Down)
	}
}

func TestSelectEmptyBank(t *testing.T) {
	if _, ok := (NearestCar{}).Select(nil, types.NewRequest(1, types.Idle)); ok {
		t.Error("Expected no car from an empty bank")
	}
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		s, err := ByName(name)
		if err != nil {
			t.Fatalf("ByName(%q): %v", name, err)
		}
		if s.Name() != name {
			t.Errorf("Expected %q, got %q", name, s.Name())
		}
	}
	if _, err := ByName("random"); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("Expected ErrUnknownStrategy, got %v", err)
	}
	if !slices.Equal(Names(), []string{EnergyName, EtaName, LoadName, NearestName}) {
		t.Errorf("Unexpected names %v", Names())
	}
}
