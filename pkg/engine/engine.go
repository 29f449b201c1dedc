// Package engine evaluates design scripts. It wraps zygomys in a sandboxed
// environment, registers the panel and joint DSL, and produces a
// DesignGraph from user source code.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chazu/fingerjoint/pkg/graph"
	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
	NodeID  graph.NodeID // set for graph validation errors
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// EvalWarning represents a non-fatal warning produced during evaluation.
type EvalWarning struct {
	Line    int
	Col     int
	Message string
	NodeID  graph.NodeID
}

// EvalResult bundles the full output of an evaluation for use by UI bindings.
type EvalResult struct {
	Graph    *graph.DesignGraph
	Errors   []EvalError
	Warnings []EvalWarning
}

// OK reports whether the evaluation produced a usable graph.
func (r EvalResult) OK() bool {
	return r.Graph != nil && len(r.Errors) == 0
}

// Engine wraps the zygomys interpreter.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism.
type Engine struct {
	// Timeout bounds each evaluation; zero means EvalTimeout.
	Timeout time.Duration

	mu         sync.Mutex
	generation uint64
}

// NewEngine creates a new Engine instance.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate takes design script source and produces a new DesignGraph.
// Each call creates a fresh zygomys sandbox for deterministic evaluation.
//
// Return semantics:
//   - On success: returns graph + nil errors + nil error
//   - On parse/eval failure: returns nil graph + eval errors + nil error
//   - On fatal failure (timeout, panic, superseded): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*graph.DesignGraph, []EvalError, error) {
	gen := e.begin()
	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		g, evalErrs, err := e.evaluate(source)
		ch <- evalResult{graph: g, errors: evalErrs, err: err}
	}()

	return e.wait(ch, gen)
}

// EvaluateAndValidate evaluates source and runs every validation tier on
// the resulting graph. Validation errors are returned as EvalErrors with
// their NodeID set; the graph is still returned so callers can show what
// was built. A fatal failure is returned as a single EvalError.
func (e *Engine) EvaluateAndValidate(source string) EvalResult {
	g, evalErrs, err := e.Evaluate(source)
	if err != nil {
		return EvalResult{Errors: []EvalError{{Message: err.Error()}}}
	}
	if len(evalErrs) > 0 {
		return EvalResult{Errors: evalErrs}
	}

	res := EvalResult{Graph: g}
	v := graph.ValidateAll(g)
	for _, ve := range v.Errors {
		res.Errors = append(res.Errors, EvalError{Message: ve.Error(), NodeID: ve.NodeID})
	}
	for _, w := range v.Warnings {
		res.Warnings = append(res.Warnings, EvalWarning{Message: w.Message, NodeID: w.NodeID})
	}
	return res
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*graph.DesignGraph, []EvalError, error) {
	// Empty source is a valid program that produces an empty graph.
	if strings.TrimSpace(source) == "" {
		return graph.New(), nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	b := graph.NewBuilder()
	registerBuiltins(env, b)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}

	// Builtins report their errors through zygomys, so Build has nothing
	// left to add.
	g, _ := b.Build()
	return g, nil, nil
}

// linePattern matches the location prefix zygomys puts on errors:
// "Error on line N: ..." or "line N: ...".
var linePattern = regexp.MustCompile(`(?i)(?:error )?(?:on )?line (\d+):\s*`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
// It extracts the line number when the message carries one and strips the
// location prefix from the message.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	if loc := linePattern.FindStringSubmatchIndex(msg); loc != nil {
		line, _ := strconv.Atoi(msg[loc[2]:loc[3]])
		rest := strings.TrimSpace(msg[:loc[0]] + msg[loc[1]:])
		return []EvalError{{Line: line, Message: rest}}
	}

	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
