package bindings

import "github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"

// Match implements pattern_match(pattern, val) from spec.md §4.2: "_" in
// the pattern matches anything without binding; a variable atom matches
// anything, consistently across repeated occurrences; atoms and literals
// must be equal, with no numeric cross-tag promotion (Long(1) does not
// match Float(1.0)); SExpr/Conjunction match element-wise after an arity
// check. Every other pairing fails.
func Match(pattern, val value.Value) (Bindings, bool) {
	b := Bindings{}
	if matchInto(pattern, val, b) {
		return b, true
	}
	return nil, false
}

// MatchInto extends an existing binding set, threading bindings across
// multiple patterns (e.g. successive elements of an s-expression, or
// successive goals of a conjunction). It mutates and returns b's
// underlying map on success; on failure b is left in an unspecified
// state and should be discarded.
func MatchInto(pattern, val value.Value, b Bindings) bool {
	return matchInto(pattern, val, b)
}

func matchInto(pattern, val value.Value, b Bindings) bool {
	if pattern.IsWildcard() {
		return true
	}
	if pattern.IsVariable() {
		name := pattern.VariableName()
		if existing, ok := b[name]; ok {
			return value.Equal(existing, val)
		}
		b[name] = val
		return true
	}
	if pattern.Kind != val.Kind {
		return false
	}
	switch pattern.Kind {
	case value.KindAtom:
		return pattern.Atom == val.Atom
	case value.KindLong:
		return pattern.Long == val.Long
	case value.KindFloat:
		return pattern.Float == val.Float
	case value.KindBool:
		return pattern.Bool == val.Bool
	case value.KindString, value.KindUri:
		return pattern.Str == val.Str
	case value.KindNil, value.KindUnit:
		return true
	case value.KindSExpr, value.KindConjunction:
		if len(pattern.Items) != len(val.Items) {
			return false
		}
		for i := range pattern.Items {
			if !matchInto(pattern.Items[i], val.Items[i], b) {
				return false
			}
		}
		return true
	case value.KindError:
		if pattern.ErrMessage != val.ErrMessage {
			return false
		}
		return matchPtr(pattern.ErrInner, val.ErrInner, b)
	case value.KindType:
		return matchPtr(pattern.TypeExpr, val.TypeExpr, b)
	case value.KindSpace:
		return pattern.SpaceID == val.SpaceID
	case value.KindState:
		return pattern.StateID == val.StateID
	case value.KindMemo:
		return pattern.MemoID == val.MemoID
	default:
		return false
	}
}

func matchPtr(pattern, val *value.Value, b Bindings) bool {
	if pattern == nil || val == nil {
		return pattern == val
	}
	return matchInto(*pattern, *val, b)
}

// Unify attempts Match in both directions (pattern seen as the left and
// as the right operand) and returns the first success, per spec.md
// §4.2's description of the `unify` special form.
func Unify(a, b value.Value) (Bindings, bool) {
	if bi, ok := Match(a, b); ok {
		debugLogger().Debug("unify", "mode", "forward", "a", a.String(), "b", b.String())
		return bi, true
	}
	if bi, ok := Match(b, a); ok {
		debugLogger().Debug("unify", "mode", "reverse", "a", a.String(), "b", b.String())
		return bi, true
	}
	debugLogger().Debug("unify", "mode", "fail", "a", a.String(), "b", b.String())
	return nil, false
}
