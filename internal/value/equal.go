package value

// Equal reports exact structural equality, including tag: Long(1) and
// Float(1.0) are not Equal, matching the strict-comparison invariant in
// spec §4.2 and §9. Equal never binds variables — use the pattern matcher
// in internal/bindings for that.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindAtom:
		return a.Atom == b.Atom
	case KindLong:
		return a.Long == b.Long
	case KindFloat:
		return a.Float == b.Float
	case KindBool:
		return a.Bool == b.Bool
	case KindString, KindUri:
		return a.Str == b.Str
	case KindNil, KindUnit:
		return true
	case KindSExpr, KindConjunction:
		if len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !Equal(a.Items[i], b.Items[i]) {
				return false
			}
		}
		return true
	case KindError:
		if a.ErrMessage != b.ErrMessage {
			return false
		}
		return equalPtr(a.ErrInner, b.ErrInner)
	case KindType:
		return equalPtr(a.TypeExpr, b.TypeExpr)
	case KindSpace:
		return a.SpaceID == b.SpaceID
	case KindState:
		return a.StateID == b.StateID
	case KindMemo:
		return a.MemoID == b.MemoID
	default:
		return false
	}
}

func equalPtr(a, b *Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	return Equal(*a, *b)
}
