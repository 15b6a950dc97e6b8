package eval

import (
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/bindings"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/environment"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/scope"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

// checkBodyScope is a strict-mode-only diagnostic: build a single
// lexical scope binding boundNames, then warn about every variable body
// references that this scope doesn't cover and that isn't already a
// resolvable token. An unbound body variable almost always signals a
// typo rather than an intentional wildcard, so it is worth a warning
// alongside spec.md §7's pattern-mismatch row.
//
// Scope nesting here is one level deep per call: the evaluator's
// trampoline reuses Go stack frames across tail calls, so there is no
// stable call chain to hang a deeper enclosing-scope lookup from. A
// form's own pattern variables are the only names this check considers
// bound.
func checkBodyScope(env *environment.Environment, formName string, boundNames []string, body value.Value) {
	if !env.Strict() {
		return
	}
	sc := scope.Root()
	for _, name := range boundNames {
		sc.Bind(name)
	}
	for _, name := range bindings.Vars(body) {
		if sc.Contains(name) {
			continue
		}
		if _, ok := env.ResolveToken("$" + name); ok {
			continue
		}
		env.Logger().Warn(formName+": variable not bound by this form's pattern", "name", name)
	}
}
