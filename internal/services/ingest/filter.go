package ingest

import (
	"strings"
	"time"

	"github.com/google/cel-go/cel"
)

// Filter wraps a compiled CEL program evaluated against every submission.
// When disabled (empty expression), Accept always returns true.
type Filter struct {
	prog    cel.Program
	enabled bool
}

// NewFilter compiles expr. Variables available to the expression:
//
//	event_type  string   the submitted event type ("mint", "pool", "tx")
//	json        dyn      the parsed payload
//	now_ms      int      current time in unix milliseconds
//
// An empty expression yields a disabled filter.
func NewFilter(expr string) (Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Filter{}, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("event_type", cel.StringType),
		cel.Variable("json", cel.DynType),
		cel.Variable("now_ms", cel.IntType),
	)
	if err != nil {
		return Filter{}, err
	}
	ast, iss := env.Parse(expr)
	if iss != nil && iss.Err() != nil {
		return Filter{}, iss.Err()
	}
	checked, iss2 := env.Check(ast)
	if iss2 != nil && iss2.Err() != nil {
		return Filter{}, iss2.Err()
	}
	prog, err := env.Program(checked)
	if err != nil {
		return Filter{}, err
	}
	return Filter{prog: prog, enabled: true}, nil
}

// Accept evaluates the expression against one event. Evaluation errors reject
// the event rather than letting unfiltered traffic through.
func (f Filter) Accept(eventType string, payload map[string]any) bool {
	if !f.enabled {
		return true
	}
	out, _, err := f.prog.Eval(map[string]any{
		"event_type": eventType,
		"json":       payload,
		"now_ms":     time.Now().UnixMilli(),
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}
