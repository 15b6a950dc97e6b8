package wire

import (
	"encoding/binary"
	"math"

	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

// Encode produces the binary trie encoding of v (spec.md §3.4). When
// intern is true, every leaf symbol payload is replaced by an 8-byte
// little-endian id into the process-wide symbol table (internal/wire's
// symtab.go); this is required for symbols whose encoded payload would
// otherwise exceed 63 bytes.
//
// Variable scope is local to a single Encode call: the first occurrence
// of a given variable name emits NewVar, later occurrences of the same
// name emit a VarRef back to it. This lets structurally-identical
// patterns share trie prefixes regardless of the variables' actual
// spelling, at the cost of not round-tripping variable names through
// Decode (Decode synthesizes placeholder names; callers that need the
// original names already have them in the un-encoded Value).
func Encode(v value.Value, intern bool) ([]byte, error) {
	e := &encoder{intern: intern, varIndex: make(map[string]int)}
	if err := e.encode(v); err != nil {
		return nil, err
	}
	return e.buf, nil
}

type encoder struct {
	buf      []byte
	intern   bool
	varIndex map[string]int
	nextVar  int
}

func (e *encoder) encode(v value.Value) error {
	switch v.Kind {
	case value.KindSExpr, value.KindConjunction:
		if len(v.Items) > maxArity {
			return ErrArityTooLarge
		}
		e.buf = append(e.buf, byte(classArity)|byte(len(v.Items)))
		for _, it := range v.Items {
			if err := e.encode(it); err != nil {
				return err
			}
		}
		return nil
	case value.KindAtom:
		if v.IsVariable() {
			return e.encodeVariable(v.VariableName())
		}
		return e.encodeLeaf(discAtom, []byte(v.Atom))
	case value.KindLong:
		b := make([]byte, 8)
		binary.BigEndian.PutUint64(b, uint64(v.Long))
		return e.encodeLeaf(discLong, b)
	case value.KindFloat:
		b := make([]byte, 8)
		binary.BigEndian.PutUint64(b, math.Float64bits(v.Float))
		return e.encodeLeaf(discFloat, b)
	case value.KindBool:
		var b byte
		if v.Bool {
			b = 1
		}
		return e.encodeLeaf(discBool, []byte{b})
	case value.KindString:
		return e.encodeLeaf(discString, []byte(v.Str))
	case value.KindUri:
		return e.encodeLeaf(discURI, []byte(v.Str))
	case value.KindNil:
		return e.encodeLeaf(discNil, nil)
	case value.KindUnit:
		return e.encodeLeaf(discUnit, nil)
	default:
		return errUnencodable(v.Kind)
	}
}

func (e *encoder) encodeVariable(name string) error {
	if idx, ok := e.varIndex[name]; ok {
		if idx > maxVarRef {
			return ErrTooManyVariables
		}
		e.buf = append(e.buf, byte(classVarRef)|byte(idx))
		return nil
	}
	if e.nextVar > maxVarRef {
		return ErrTooManyVariables
	}
	e.varIndex[name] = e.nextVar
	e.nextVar++
	e.buf = append(e.buf, newVarTag)
	return nil
}

func (e *encoder) encodeLeaf(disc byte, data []byte) error {
	payload := make([]byte, 1+len(data))
	payload[0] = disc
	copy(payload[1:], data)

	if e.intern {
		id := intern(payload)
		b := make([]byte, 8)
		binary.LittleEndian.PutUint64(b, id)
		e.buf = append(e.buf, byte(classSymbolic)|8)
		e.buf = append(e.buf, b...)
		return nil
	}

	if len(payload) > maxSymSize {
		return ErrSymbolTooLarge
	}
	e.buf = append(e.buf, byte(classSymbolic)|byte(len(payload)))
	e.buf = append(e.buf, payload...)
	return nil
}
