package bank

import (
	"sync"
	"sync/atomic"

	"elevbank/src/types"
)

type dispatchResult struct {
	carID int
	err   error
}

// bufferedCall is a call no car could take yet.
type bufferedCall struct {
	req       types.Request
	attempts  int
	cancelled atomic.Bool
	done      chan dispatchResult
}

func (call *bufferedCall) finish(carID int, err error) {
	call.done <- dispatchResult{carID: carID, err: err}
}

// callBuffer keeps buffered calls in arrival order.
type callBuffer struct {
	mu     sync.Mutex
	calls  []*bufferedCall
	closed bool
	err    error
}

func newCallBuffer() *callBuffer {
	return &callBuffer{}
}

// push returns the close error once the buffer has been closed.
func (buf *callBuffer) push(req types.Request) (*bufferedCall, error) {
	buf.mu.Lock()
	defer buf.mu.Unlock()
	if buf.closed {
		return nil, buf.err
	}
	call := &bufferedCall{req: req, done: make(chan dispatchResult, 1)}
	buf.calls = append(buf.calls, call)
	return call, nil
}

// remove reports false when the call is not in the buffer, either because a
// retry cycle holds it or because it has been finished.
func (buf *callBuffer) remove(call *bufferedCall) bool {
	buf.mu.Lock()
	defer buf.mu.Unlock()
	for i, c := range buf.calls {
		if c == call {
			buf.calls = append(buf.calls[:i], buf.calls[i+1:]...)
			return true
		}
	}
	return false
}

func (buf *callBuffer) takeAll() []*bufferedCall {
	buf.mu.Lock()
	defer buf.mu.Unlock()
	calls := buf.calls
	buf.calls = nil
	return calls
}

// putBack returns unplaced calls ahead of anything that arrived meanwhile.
func (buf *callBuffer) putBack(calls []*bufferedCall) {
	if len(calls) == 0 {
		return
	}
	buf.mu.Lock()
	defer buf.mu.Unlock()
	if buf.closed {
		for _, call := range calls {
			call.finish(-1, buf.err)
		}
		return
	}
	buf.calls = append(calls, buf.calls...)
}

// close fails every buffered call with err and rejects later pushes.
func (buf *callBuffer) close(err error) int {
	buf.mu.Lock()
	defer buf.mu.Unlock()
	buf.closed = true
	buf.err = err
	n := len(buf.calls)
	for _, call := range buf.calls {
		call.finish(-1, err)
	}
	buf.calls = nil
	return n
}

func (buf *callBuffer) len() int {
	buf.mu.Lock()
	defer buf.mu.Unlock()
	return len(buf.calls)
}
