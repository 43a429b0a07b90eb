package craft

import (
	"errors"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

var errBadEquation = errors.New("equation does not compile")

// Env is the stat environment a scaling expression resolves against.
// Total holds effective stats with buff, condition and harmony
// contributions folded in; Pure holds the recipe's base stats. The
// "pure" scaling mode reads from Pure, everything else from Total.
type Env struct {
	Total map[string]float64
	Pure  map[string]float64
}

func (env Env) stat(name, scaling string) float64 {
	src := env.Total
	if scaling == ScalingPure {
		src = env.Pure
	}
	if v, ok := src[name]; ok {
		return v
	}
	return 1
}

func (env Env) with(name string, v float64) Env {
	out := Env{
		Total: make(map[string]float64, len(env.Total)+1),
		Pure:  make(map[string]float64, len(env.Pure)+1),
	}
	for k, val := range env.Total {
		out.Total[k] = val
	}
	for k, val := range env.Pure {
		out.Pure[k] = val
	}
	out.Total[name] = v
	out.Pure[name] = v
	return out
}

func (env Env) vars() map[string]any {
	out := make(map[string]any, len(env.Total))
	for k, v := range env.Total {
		out[k] = v
	}
	return out
}

// Evaluator resolves Expr trees. Equation strings are compiled once
// and cached; the evaluator is safe for concurrent use.
type Evaluator struct {
	mu       sync.RWMutex
	programs map[string]*vm.Program
}

func NewEvaluator() *Evaluator {
	return &Evaluator{programs: make(map[string]*vm.Program)}
}

// Eval computes the scalar value of e under env. A nil expression is
// worth zero. Resolution failures inside the tree degrade to neutral
// factors rather than errors.
func (ev *Evaluator) Eval(e *Expr, env Env) float64 {
	if e == nil {
		return 0
	}
	v := e.Value
	if e.Stat != "" {
		v *= env.stat(e.Stat, e.Scaling)
	}
	if e.Equation != "" {
		v *= ev.equationFactor(e.Equation, env)
	}
	if e.Add != nil {
		v += ev.Eval(e.Add, env)
	}
	if e.Max != nil {
		if limit := ev.Eval(e.Max, env); v > limit {
			v = limit
		}
	}
	return v
}

func (ev *Evaluator) equationFactor(src string, env Env) float64 {
	prog, err := ev.compile(src)
	if err != nil {
		return 1
	}
	out, err := expr.Run(prog, env.vars())
	if err != nil {
		return 1
	}
	switch n := out.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 1
	}
}

func (ev *Evaluator) compile(src string) (*vm.Program, error) {
	ev.mu.RLock()
	prog, ok := ev.programs[src]
	ev.mu.RUnlock()
	if ok {
		if prog == nil {
			return nil, errBadEquation
		}
		return prog, nil
	}

	prog, err := expr.Compile(src)
	if err != nil {
		// Cache the failure as a nil program so a broken catalog
		// entry is not recompiled on every evaluation.
		ev.mu.Lock()
		ev.programs[src] = nil
		ev.mu.Unlock()
		return nil, err
	}
	ev.mu.Lock()
	ev.programs[src] = prog
	ev.mu.Unlock()
	return prog, nil
}
