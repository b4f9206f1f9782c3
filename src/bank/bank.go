package bank

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"elevbank/src/config"
	"elevbank/src/dispatcher"
	"elevbank/src/elev"
	"elevbank/src/types"
)

var (
	ErrNoCapacity = errors.New("no car available")
	ErrStopped    = errors.New("bank stopped")
	ErrUnknownCar = errors.New("unknown car")
)

type strategyBox struct {
	strategy dispatcher.Strategy
}

// Bank owns a fixed set of cars and routes calls to them through the active strategy.
type Bank struct {
	Name string

	cfg      config.Config
	cars     []*elev.Car
	strategy atomic.Pointer[strategyBox]
	buffer   *callBuffer

	// lifecycle orders Start against Stop so no loop is launched after the cancel.
	lifecycle sync.Mutex
	running   atomic.Bool
	stopped   bool
	startOnce sync.Once
	stopOnce  sync.Once
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// New builds the bank described by cfg. A nil strategy selects cfg.Strategy by name.
// Configuration problems are returned here and are not recoverable later.
func New(cfg config.Config, strategy dispatcher.Strategy, observers ...types.Observer) (*Bank, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if strategy == nil {
		s, err := dispatcher.ByName(cfg.Strategy)
		if err != nil {
			return nil, err
		}
		strategy = s
	}

	b := &Bank{
		Name:   cfg.Name,
		cfg:    cfg,
		cars:   make([]*elev.Car, cfg.NumCars),
		buffer: newCallBuffer(),
	}
	for id := range b.cars {
		car := elev.NewCar(id, cfg.StartFloor(id), cfg.MinFloor, cfg.MaxFloor)
		for _, observer := range observers {
			car.AddObserver(observer)
		}
		b.cars[id] = car
	}
	b.strategy.Store(&strategyBox{strategy: strategy})
	b.ctx, b.cancel = context.WithCancel(context.Background())

	slog.Info("Bank created", "bank", b.Name, "cars", cfg.NumCars,
		"floors", fmt.Sprintf("[%d, %d]", cfg.MinFloor, cfg.MaxFloor), "strategy", strategy.Name())
	return b, nil
}

func (b *Bank) AddObserver(observer types.Observer) {
	for _, car := range b.cars {
		car.AddObserver(observer)
	}
}

// SetStrategy swaps the dispatch policy. Calls already handed to a car are not re-routed.
func (b *Bank) SetStrategy(strategy dispatcher.Strategy) {
	old := b.strategy.Swap(&strategyBox{strategy: strategy})
	slog.Info("Strategy changed", "bank", b.Name, "from", old.strategy.Name(), "to", strategy.Name())
}

func (b *Bank) Strategy() dispatcher.Strategy {
	return b.strategy.Load().strategy
}

func (b *Bank) NumCars() int {
	return len(b.cars)
}

func (b *Bank) Running() bool {
	return b.running.Load()
}

// Start launches one movement loop per car and the retry loop for buffered calls.
// Only the first call has an effect, and a stopped bank cannot be restarted.
func (b *Bank) Start() {
	b.startOnce.Do(func() {
		b.lifecycle.Lock()
		defer b.lifecycle.Unlock()
		if b.stopped {
			slog.Warn("Start ignored, bank already stopped", "bank", b.Name)
			return
		}
		ctx := b.ctx
		b.running.Store(true)

		for _, car := range b.cars {
			b.wg.Add(1)
			go func(car *elev.Car) {
				defer b.wg.Done()
				car.Run(ctx, b.cfg.TickInterval)
			}(car)
		}
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			b.runRetries(ctx)
		}()
		slog.Info("Bank started", "bank", b.Name)
	})
}

// Stop ends every loop after its current step and fails calls still waiting
// for a car with ErrStopped. Later calls are no-ops.
func (b *Bank) Stop() {
	b.stopOnce.Do(func() {
		b.lifecycle.Lock()
		b.stopped = true
		b.running.Store(false)
		b.cancel()
		b.lifecycle.Unlock()

		b.wg.Wait()
		if n := b.buffer.close(ErrStopped); n > 0 {
			slog.Warn("Dropped buffered calls on stop", "bank", b.Name, "calls", n)
		}
		slog.Info("Bank stopped", "bank", b.Name)
	})
}

func (b *Bank) Status(carID int) (types.CarStatus, error) {
	if carID < 0 || carID >= len(b.cars) {
		return types.CarStatus{}, fmt.Errorf("%w: %d (bank has %d cars)", ErrUnknownCar, carID, len(b.cars))
	}
	return b.cars[carID].Status(), nil
}

// Statuses snapshots every car, each under its own lock. The result is not a
// consistent cut across cars.
func (b *Bank) Statuses() []types.CarStatus {
	statuses := make([]types.CarStatus, len(b.cars))
	for i, car := range b.cars {
		statuses[i] = car.Status()
	}
	return statuses
}

// Pending is the number of calls waiting in the retry buffer.
func (b *Bank) Pending() int {
	return b.buffer.len()
}
