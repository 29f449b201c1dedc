package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/chazu/fingerjoint/pkg/graph"
)

// EvalTimeout is the default limit for a single evaluation.
const EvalTimeout = 5 * time.Second

var (
	// ErrTimeout is returned when a script runs longer than the engine's timeout.
	ErrTimeout = errors.New("evaluation timed out")

	// ErrSuperseded is returned to a caller whose evaluation finished after
	// a newer one started.
	ErrSuperseded = errors.New("evaluation superseded by newer request")
)

type evalResult struct {
	graph  *graph.DesignGraph
	errors []EvalError
	err    error
}

// begin starts a new generation and returns its number.
func (e *Engine) begin() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.generation++
	return e.generation
}

func (e *Engine) current(gen uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return gen == e.generation
}

func (e *Engine) timeout() time.Duration {
	if e.Timeout > 0 {
		return e.Timeout
	}
	return EvalTimeout
}

// wait blocks until gen's result arrives on ch or the timeout passes. A
// goroutine that outlives its timeout keeps running; whatever it sends
// later lands in the buffered channel and is dropped.
func (e *Engine) wait(ch <-chan evalResult, gen uint64) (*graph.DesignGraph, []EvalError, error) {
	d := e.timeout()
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case res := <-ch:
		if !e.current(gen) {
			return nil, nil, ErrSuperseded
		}
		return res.graph, res.errors, res.err
	case <-timer.C:
		return nil, nil, fmt.Errorf("%w after %s", ErrTimeout, d)
	}
}
