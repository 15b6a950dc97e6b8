package wire

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

func errUnencodable(k value.Kind) error {
	return fmt.Errorf("wire: value kind %d cannot be trie-encoded (Space/State/Memo are compared by handle identity, not structure)", k)
}

// Decode is the inverse of Encode; intern must match the flag the data
// was encoded with. On any malformed or reserved byte it returns an
// error rather than panicking — callers like internal/store's Iter and
// Query skip entries that fail to decode instead of aborting (spec.md
// §9's "Reserved bytes in decoding" note).
func Decode(data []byte, intern bool) (value.Value, error) {
	d := &decoder{data: data, intern: intern}
	v, n, err := d.decodeAt(0)
	if err != nil {
		return value.Value{}, err
	}
	if n != len(data) {
		return value.Value{}, fmt.Errorf("wire: %d trailing byte(s) after decoded expression", len(data)-n)
	}
	return v, nil
}

type decoder struct {
	data   []byte
	intern bool
	vars   []string
}

func (d *decoder) decodeAt(pos int) (value.Value, int, error) {
	if pos >= len(d.data) {
		return value.Value{}, pos, fmt.Errorf("wire: unexpected end of data at offset %d", pos)
	}
	b := d.data[pos]

	switch classOf(b) {
	case classReserved:
		return value.Value{}, pos, ErrReserved

	case classArity:
		n := int(b & valueMask)
		pos++
		items := make([]value.Value, 0, n)
		for i := 0; i < n; i++ {
			it, next, err := d.decodeAt(pos)
			if err != nil {
				return value.Value{}, pos, err
			}
			items = append(items, it)
			pos = next
		}
		return value.SExpr(items...), pos, nil

	case classVarRef:
		idx := int(b & valueMask)
		pos++
		if idx >= len(d.vars) {
			return value.Value{}, pos, fmt.Errorf("wire: back-reference to undefined variable slot %d", idx)
		}
		return value.Atom(d.vars[idx]), pos, nil

	case classSymbolic:
		if b == newVarTag {
			pos++
			name := fmt.Sprintf("$_v%d", len(d.vars))
			d.vars = append(d.vars, name)
			return value.Atom(name), pos, nil
		}
		k := int(b & valueMask)
		pos++
		if pos+k > len(d.data) {
			return value.Value{}, pos, fmt.Errorf("wire: truncated symbol payload at offset %d", pos)
		}
		raw := d.data[pos : pos+k]
		pos += k

		payload := raw
		if d.intern && k == 8 {
			id := binary.LittleEndian.Uint64(raw)
			p, ok := resolveSymbol(id)
			if !ok {
				return value.Value{}, pos, fmt.Errorf("wire: unknown interned symbol id %d", id)
			}
			payload = p
		}
		v, err := decodeLeaf(payload)
		if err != nil {
			return value.Value{}, pos, err
		}
		return v, pos, nil
	}
	return value.Value{}, pos, fmt.Errorf("wire: unreachable tag class for byte 0x%02x", b)
}

func decodeLeaf(payload []byte) (value.Value, error) {
	if len(payload) == 0 {
		return value.Value{}, fmt.Errorf("wire: empty leaf payload")
	}
	disc, rest := payload[0], payload[1:]
	switch disc {
	case discAtom:
		return value.Atom(string(rest)), nil
	case discLong:
		if len(rest) != 8 {
			return value.Value{}, fmt.Errorf("wire: malformed Long payload")
		}
		return value.Long(int64(binary.BigEndian.Uint64(rest))), nil
	case discFloat:
		if len(rest) != 8 {
			return value.Value{}, fmt.Errorf("wire: malformed Float payload")
		}
		return value.Float(math.Float64frombits(binary.BigEndian.Uint64(rest))), nil
	case discBool:
		if len(rest) != 1 {
			return value.Value{}, fmt.Errorf("wire: malformed Bool payload")
		}
		return value.Bool(rest[0] != 0), nil
	case discString:
		return value.Str(string(rest)), nil
	case discURI:
		return value.Uri(string(rest)), nil
	case discNil:
		return value.Nil(), nil
	case discUnit:
		return value.Unit(), nil
	default:
		return value.Value{}, fmt.Errorf("wire: unknown leaf discriminator %d", disc)
	}
}

// HeadInfo extracts the raw encoded head-symbol bytes and the arity
// (argument count, head excluded) from the prefix of an encoded
// s-expression in O(1) relative to the size of the head symbol, without
// decoding the rest of the tree. headRaw is an opaque byte string
// suitable as a map key; it is the literal symbol bytes or, under
// interning, the 8-byte id — never decode it, compare it. ok is false if
// data does not begin with a well-formed, non-empty s-expression.
//
// A variable (or wildcard) head yields headRaw == nil, ok == true: the
// caller should treat that as belonging to the rule index's wildcard
// bucket per spec.md §4.4.
func HeadInfo(data []byte) (headRaw []byte, arity int, ok bool) {
	if len(data) == 0 || classOf(data[0]) != classArity {
		return nil, 0, false
	}
	n := int(data[0] & valueMask)
	if n == 0 {
		return nil, 0, false
	}
	pos := 1
	if pos >= len(data) {
		return nil, 0, false
	}
	hb := data[pos]
	switch classOf(hb) {
	case classSymbolic:
		if hb == newVarTag {
			return nil, n - 1, true
		}
		k := int(hb & valueMask)
		pos++
		if pos+k > len(data) {
			return nil, 0, false
		}
		return data[pos : pos+k], n - 1, true
	case classVarRef:
		return nil, n - 1, true
	default:
		return nil, 0, false
	}
}
