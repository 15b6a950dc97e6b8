package eval

import (
	"fmt"

	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/environment"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

// State bundles the Environment a program runs against with the output
// accumulator spec.md §6's "Core → REPL" interface describes: one entry
// per top-level `!(e)` query, in program order.
type State struct {
	Env    *environment.Environment
	Output [][]value.Value
}

// NewState wraps env in a fresh State with an empty output accumulator.
func NewState(env *environment.Environment) *State {
	return &State{Env: env}
}

// Run implements spec.md §6's `run(program, state) -> state'`: every
// top-level form is evaluated for its side effects (rule/fact
// registration, space/state mutation); forms headed by `!` additionally
// append their result list to state.Output. Run mutates and returns
// state so callers can chain a REPL loop over successive inputs.
func Run(forms []value.Value, state *State) *State {
	for _, f := range forms {
		if f.Head() == "!" && f.Arity() == 1 {
			results := evalChild(f.Items[1], state.Env, 0)
			state.Output = append(state.Output, results)
			if debugEval {
				state.Env.Logger().Debug("query", "expr", f.Items[1].String(), "results", fmt.Sprint(results))
			}
			continue
		}
		Eval(f, state.Env, 0)
	}
	return state
}
