package sexpr

import (
	"strconv"
	"sync"

	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"

	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

var (
	parserOnce sync.Once
	parser     *participle.Parser[Program]
	parserErr  error
)

func buildParser() (*participle.Parser[Program], error) {
	parserOnce.Do(func() {
		parser, parserErr = participle.Build[Program](
			participle.Lexer(Lexer),
			participle.Elide("Comment", "Whitespace"),
			participle.UseLookahead(3),
		)
	})
	return parser, parserErr
}

// Read parses source into the sequence of top-level forms it contains,
// matching spec.md §6's reader stage. filename is used only for error
// messages.
func Read(filename, source string) ([]value.Value, error) {
	p, err := buildParser()
	if err != nil {
		return nil, errors.Wrap(err, "sexpr: build parser")
	}
	program, err := p.ParseString(filename, source)
	if err != nil {
		return nil, errors.Wrapf(err, "sexpr: parse %s", filename)
	}
	forms := make([]value.Value, len(program.Forms))
	for i, f := range program.Forms {
		v, err := toValue(f)
		if err != nil {
			return nil, err
		}
		forms[i] = v
	}
	return forms, nil
}

// ReadOne parses source as a single form, returning an error unless it
// holds exactly one.
func ReadOne(source string) (value.Value, error) {
	forms, err := Read("<input>", source)
	if err != nil {
		return value.Value{}, err
	}
	if len(forms) != 1 {
		return value.Value{}, errors.Errorf("sexpr: expected exactly one form, got %d", len(forms))
	}
	return forms[0], nil
}

func toValue(e *Expr) (value.Value, error) {
	switch {
	case e.Bang != nil:
		inner, err := toValue(e.Bang.Inner)
		if err != nil {
			return value.Value{}, err
		}
		return value.SExpr(value.Atom("!"), inner), nil
	case e.List != nil:
		return listToValue(e.List)
	case e.Atom != nil:
		return atomToValue(e.Atom)
	default:
		return value.Value{}, errors.New("sexpr: empty expression node")
	}
}

// listToValue converts a parenthesized form. A list whose head is the
// bare symbol "," is spec.md §4.2's Conjunction literal (`(, t1 ... tn)`)
// rather than an ordinary SExpr headed by a "," atom.
func listToValue(l *ListExpr) (value.Value, error) {
	items := make([]value.Value, len(l.Items))
	for i, it := range l.Items {
		v, err := toValue(it)
		if err != nil {
			return value.Value{}, err
		}
		items[i] = v
	}
	if len(items) > 0 && items[0].Kind == value.KindAtom && items[0].Atom == "," {
		return value.Conjunction(items[1:]...), nil
	}
	return value.SExpr(items...), nil
}

func atomToValue(a *AtomExpr) (value.Value, error) {
	switch {
	case a.Float != nil:
		return value.Float(*a.Float), nil
	case a.Int != nil:
		return value.Long(*a.Int), nil
	case a.Str != nil:
		s, err := strconv.Unquote(*a.Str)
		if err != nil {
			return value.Value{}, errors.Wrapf(err, "sexpr: malformed string literal %s", *a.Str)
		}
		return value.Str(s), nil
	case a.Bool != nil:
		return value.Bool(*a.Bool == "True"), nil
	case a.Sym != nil:
		return value.Atom(*a.Sym), nil
	default:
		return value.Value{}, errors.New("sexpr: empty atom node")
	}
}
