package value

import (
	"strconv"
	"strings"
)

// String renders v in surface-ish s-expression syntax. It is meant for
// debug output, trace logging, and REPL results — not for round-tripping
// through the (out-of-scope) surface parser.
func (v Value) String() string {
	var b strings.Builder
	v.write(&b)
	return b.String()
}

func (v Value) write(b *strings.Builder) {
	switch v.Kind {
	case KindAtom:
		b.WriteString(v.Atom)
	case KindLong:
		b.WriteString(strconv.FormatInt(v.Long, 10))
	case KindFloat:
		b.WriteString(strconv.FormatFloat(v.Float, 'g', -1, 64))
	case KindBool:
		if v.Bool {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case KindString:
		b.WriteByte('"')
		b.WriteString(v.Str)
		b.WriteByte('"')
	case KindUri:
		b.WriteString(v.Str)
	case KindNil:
		b.WriteString("Empty")
	case KindUnit:
		b.WriteString("()")
	case KindSExpr:
		writeItems(b, '(', ')', v.Items)
	case KindConjunction:
		writeItems(b, '(', ')', append([]Value{Atom(",")}, v.Items...))
	case KindError:
		b.WriteString("(Error ")
		b.WriteByte('"')
		b.WriteString(v.ErrMessage)
		b.WriteByte('"')
		if v.ErrInner != nil {
			b.WriteByte(' ')
			v.ErrInner.write(b)
		}
		b.WriteByte(')')
	case KindType:
		b.WriteString("(Type ")
		if v.TypeExpr != nil {
			v.TypeExpr.write(b)
		}
		b.WriteByte(')')
	case KindSpace:
		b.WriteString("#<space:")
		b.WriteString(strconv.FormatInt(v.SpaceID, 10))
		b.WriteByte('>')
	case KindState:
		b.WriteString("#<state:")
		b.WriteString(strconv.FormatInt(v.StateID, 10))
		b.WriteByte('>')
	case KindMemo:
		b.WriteString("#<memo:")
		b.WriteString(strconv.FormatInt(v.MemoID, 10))
		b.WriteByte('>')
	default:
		b.WriteString("#<unknown>")
	}
}

func writeItems(b *strings.Builder, open, close byte, items []Value) {
	b.WriteByte(open)
	for i, it := range items {
		if i > 0 {
			b.WriteByte(' ')
		}
		it.write(b)
	}
	b.WriteByte(close)
}
