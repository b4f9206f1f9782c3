package bank

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"elevbank/src/elev"
	"elevbank/src/types"
)

// Submit routes a call to a car and returns the car's id.
//   - floors outside the shaft fail with elev.ErrInvalidFloor
//   - when the strategy finds no car, the call is buffered and retried every
//     DispatchInterval, at most MaxDispatchRetries times, before ErrNoCapacity
//   - a bank that is not running cannot retry and fails with ErrNoCapacity at once
//   - cancelling ctx withdraws a buffered call
func (b *Bank) Submit(ctx context.Context, floor int, hint types.Direction) (int, error) {
	if floor < b.cfg.MinFloor || floor > b.cfg.MaxFloor {
		return -1, fmt.Errorf("%w: floor %d outside [%d, %d]", elev.ErrInvalidFloor, floor, b.cfg.MinFloor, b.cfg.MaxFloor)
	}
	req := types.NewRequest(floor, hint)

	carID, ok, err := b.dispatch(req)
	if ok {
		return carID, err
	}
	if !b.running.Load() || b.cfg.MaxDispatchRetries == 0 {
		return -1, fmt.Errorf("%w: %s", ErrNoCapacity, req)
	}

	call, err := b.buffer.push(req)
	if err != nil {
		return -1, err
	}
	slog.Warn("No car available, call buffered", "bank", b.Name, "request", req, "id", req.ID, "buffered", b.buffer.len())
	return b.await(ctx, call)
}

// await blocks until the buffered call is finished or ctx is done. A call
// withdrawn because of ctx always reports ctx.Err().
func (b *Bank) await(ctx context.Context, call *bufferedCall) (int, error) {
	select {
	case res := <-call.done:
		return res.carID, res.err
	case <-ctx.Done():
		call.cancelled.Store(true)
		if b.buffer.remove(call) {
			return -1, ctx.Err()
		}
		// A retry cycle or Stop holds the call and will finish it.
		res := <-call.done
		if errors.Is(res.err, context.Canceled) {
			return -1, ctx.Err()
		}
		return res.carID, res.err
	}
}

// dispatch snapshots the cars, asks the strategy and enqueues on the chosen car.
// The snapshot may be stale by the time the car sees the call; the car still serves it.
func (b *Bank) dispatch(req types.Request) (int, bool, error) {
	statuses := b.Statuses()
	strategy := b.Strategy()

	carID, ok := strategy.Select(statuses, req)
	if !ok {
		return -1, false, nil
	}
	if carID < 0 || carID >= len(b.cars) {
		return -1, true, fmt.Errorf("%w: strategy %s picked %d", ErrUnknownCar, strategy.Name(), carID)
	}

	if err := b.cars[carID].Enqueue(req); err != nil {
		return -1, true, err
	}
	slog.Info("Dispatched call", "bank", b.Name, "request", req, "car", carID, "strategy", strategy.Name())
	return carID, true, nil
}

// runRetries gives every buffered call another dispatch attempt once per DispatchInterval.
func (b *Bank) runRetries(ctx context.Context) {
	ticker := time.NewTicker(b.cfg.DispatchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.retryBuffered(ctx)
		}
	}
}

func (b *Bank) retryBuffered(ctx context.Context) {
	calls := b.buffer.takeAll()
	if len(calls) == 0 {
		return
	}

	var retry []*bufferedCall
	for _, call := range calls {
		if call.cancelled.Load() {
			call.finish(-1, context.Canceled)
			continue
		}
		call.attempts++
		carID, ok, err := b.dispatch(call.req)
		switch {
		case ok:
			call.finish(carID, err)
		case call.attempts >= b.cfg.MaxDispatchRetries:
			slog.Warn("Giving up on call", "bank", b.Name, "request", call.req, "attempts", call.attempts)
			call.finish(-1, fmt.Errorf("%w: %s after %d retries", ErrNoCapacity, call.req, call.attempts))
		default:
			retry = append(retry, call)
		}
	}

	if ctx.Err() != nil {
		for _, call := range retry {
			call.finish(-1, ErrStopped)
		}
		return
	}
	b.buffer.putBack(retry)
}
