// parser.go provides a recursive descent parser for the grammar
//
//	CompUnit   := FuncDef { FuncDef }
//	FuncDef    := "int" IDENTIFIER "(" ")" Block
//	Block      := "{" "return" Exp ";" "}"
//	Exp        := LOrExp
//	LOrExp     := LAndExp { "||" LAndExp }
//	LAndExp    := EqExp { "&&" EqExp }
//	EqExp      := RelExp { ( "==" | "!=" ) RelExp }
//	RelExp     := AddExp { ( "<" | ">" | "<=" | ">=" ) AddExp }
//	AddExp     := MulExp { ( "+" | "-" ) MulExp }
//	MulExp     := UnaryExp { ( "*" | "/" | "%" ) UnaryExp }
//	UnaryExp   := PrimaryExp | ( "+" | "-" | "!" ) UnaryExp
//	PrimaryExp := "(" Exp ")" | INTEGER
//
// Binary operators are left associative.

package frontend

import (
	"errors"
	"fmt"
	"strconv"

	"exprc/src/ir"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// parser builds the syntax tree from the tokens of a running lexer, using one token of lookahead.
type parser struct {
	l   *lexer
	tok item // Next unconsumed token.
}

// binaryLevel lists the operators of one precedence level.
type binaryLevel map[itemType]ir.BinaryOp

// -------------------
// ----- Globals -----
// -------------------

// levels lists the binary operator precedence levels from loosest to tightest binding.
var levels = []binaryLevel{
	{LOR: ir.OpLOr},
	{LAND: ir.OpLAnd},
	{EQ: ir.OpEq, NE: ir.OpNeq},
	{'<': ir.OpLt, '>': ir.OpGt, LE: ir.OpLe, GE: ir.OpGe},
	{'+': ir.OpAdd, '-': ir.OpSub},
	{'*': ir.OpMul, '/': ir.OpDiv, '%': ir.OpMod},
}

// unaryOps maps unary operator tokens to operators.
var unaryOps = map[itemType]ir.UnaryOp{
	'+': ir.OpPlus,
	'-': ir.OpNeg,
	'!': ir.OpNot,
}

// errStop is returned by advance when the lexer reported an error; the lexer's message is wrapped.
var errStop = errors.New("syntax error")

// ---------------------
// ----- Functions -----
// ---------------------

// advance consumes the current token and reads the next one.
func (p *parser) advance() error {
	p.tok = p.l.nextItem()
	if p.tok.typ == itemError {
		return fmt.Errorf("%w: %s", errStop, p.tok.val)
	}
	return nil
}

// expect consumes the current token if it is of type typ, else it returns an error.
func (p *parser) expect(typ itemType) (item, error) {
	t := p.tok
	if t.typ != typ {
		return t, p.unexpected(tokname(typ))
	}
	return t, p.advance()
}

// unexpected returns a syntax error for the current token.
func (p *parser) unexpected(want string) error {
	t := p.tok
	switch t.typ {
	case itemEOF:
		return fmt.Errorf("%w: line %d:%d: expected %s, got end of file", errStop, t.line, t.pos, want)
	case RESERVED:
		return fmt.Errorf("%w: line %d:%d: keyword %q is not supported", errStop, t.line, t.pos, t.val)
	}
	return fmt.Errorf("%w: line %d:%d: expected %s, got %q", errStop, t.line, t.pos, want, t.val)
}

// compUnit parses a sequence of function definitions up to end of file.
func (p *parser) compUnit() (*ir.CompUnit, error) {
	cu := &ir.CompUnit{Funcs: make([]*ir.FuncDef, 0, 1)}
	for {
		fd, err := p.funcDef()
		if err != nil {
			return nil, err
		}
		cu.Funcs = append(cu.Funcs, fd)
		if p.tok.typ == itemEOF {
			return cu, nil
		}
	}
}

// funcDef parses int IDENTIFIER ( ) Block.
func (p *parser) funcDef() (*ir.FuncDef, error) {
	typ, err := p.expect(INT)
	if err != nil {
		return nil, err
	}
	name, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect('('); err != nil {
		return nil, err
	}
	if _, err := p.expect(')'); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ir.FuncDef{Type: typ.val, Name: name.val, Body: body, Line: typ.line, Pos: typ.pos}, nil
}

// block parses { return Exp ; }.
func (p *parser) block() (*ir.Block, error) {
	if _, err := p.expect('{'); err != nil {
		return nil, err
	}
	kw, err := p.expect(RETURN)
	if err != nil {
		return nil, err
	}
	e, err := p.binary(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(';'); err != nil {
		return nil, err
	}
	if _, err := p.expect('}'); err != nil {
		return nil, err
	}
	return &ir.Block{Ret: &ir.Return{Value: e, Line: kw.line, Pos: kw.pos}}, nil
}

// binary parses a left associative chain of operators of precedence level lvl and tighter.
func (p *parser) binary(lvl int) (ir.Expr, error) {
	if lvl == len(levels) {
		return p.unary()
	}
	x, err := p.binary(lvl + 1)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := levels[lvl][p.tok.typ]
		if !ok {
			return x, nil
		}
		t := p.tok
		if err := p.advance(); err != nil {
			return nil, err
		}
		y, err := p.binary(lvl + 1)
		if err != nil {
			return nil, err
		}
		x = &ir.Binary{Op: op, X: x, Y: y, Line: t.line, Pos: t.pos}
	}
}

// unary parses UnaryExp.
func (p *parser) unary() (ir.Expr, error) {
	if op, ok := unaryOps[p.tok.typ]; ok {
		t := p.tok
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ir.Unary{Op: op, X: x, Line: t.line, Pos: t.pos}, nil
	}
	return p.primary()
}

// primary parses a parenthesised expression or an integer literal.
func (p *parser) primary() (ir.Expr, error) {
	t := p.tok
	switch t.typ {
	case '(':
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.binary(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(')'); err != nil {
			return nil, err
		}
		return e, nil
	case INTEGER:
		v, err := parseInteger(t.val)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d:%d: %s", errStop, t.line, t.pos, err)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ir.Integer{Value: v, Line: t.line, Pos: t.pos}, nil
	default:
		return nil, p.unexpected("expression")
	}
}

// parseInteger parses a decimal, octal or hexadecimal integer literal. The value is range checked by
// ir.ValidateTree, so anything that fits in 64 bits is accepted here.
func parseInteger(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
			return 0, fmt.Errorf("integer %s is out of range", s)
		}
		return 0, fmt.Errorf("malformed integer %s", s)
	}
	return v, nil
}
