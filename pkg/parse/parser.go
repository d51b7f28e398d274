package parse

import (
	"errors"
	"strconv"

	"github.com/wildfunctions/fxeval/pkg/expr"
	"github.com/wildfunctions/fxeval/pkg/funcs"
)

// Power selects how '^' binds.
type Power int

const (
	// PowerLeft puts '^' on the same tier as '*' and '/', left-associative:
	// 2^3^2 = (2^3)^2 = 64 and 2*3^2 = (2*3)^2 = 36.
	PowerLeft Power = iota
	// PowerRight is the conventional reading: '^' binds tighter than unary
	// minus and '*', and is right-associative: 2^3^2 = 2^(3^2) = 512.
	PowerRight
)

func (p Power) String() string {
	if p == PowerRight {
		return "right"
	}
	return "left"
}

// ParsePower maps "left" and "right" to a Power.
func ParsePower(s string) (Power, bool) {
	switch s {
	case "left", "":
		return PowerLeft, true
	case "right":
		return PowerRight, true
	default:
		return PowerLeft, false
	}
}

// DefaultMaxDepth bounds parser recursion when Options.MaxDepth is unset.
const DefaultMaxDepth = 256

// Options configures a parse.
type Options struct {
	MaxDepth int
	Power    Power
}

// Binding tiers, low to high.
const (
	precAdd = iota + 1
	precMul
	precPrefix
	precPow
)

type binaryInfo struct {
	op    expr.BinaryOp
	prec  int
	right bool
}

var precedenceTables = map[Power]map[TokenKind]binaryInfo{
	PowerLeft: {
		TokenPlus:  {op: expr.OpAdd, prec: precAdd},
		TokenMinus: {op: expr.OpSub, prec: precAdd},
		TokenStar:  {op: expr.OpMul, prec: precMul},
		TokenSlash: {op: expr.OpDiv, prec: precMul},
		TokenCaret: {op: expr.OpPow, prec: precMul},
	},
	PowerRight: {
		TokenPlus:  {op: expr.OpAdd, prec: precAdd},
		TokenMinus: {op: expr.OpSub, prec: precAdd},
		TokenStar:  {op: expr.OpMul, prec: precMul},
		TokenSlash: {op: expr.OpDiv, prec: precMul},
		TokenCaret: {op: expr.OpPow, prec: precPow, right: true},
	},
}

// Parser is a precedence-climbing parser over a token slice.
//
// Precedence (low to high):
//  1. + - (binary)
//  2. * / and, with PowerLeft, ^
//  3. prefix - +
//  4. ^ with PowerRight
//
// A prefix sign takes as its operand the whole tier-2 chain that follows
// it when it starts an expression, so -2^2 = -(2^2) in both modes.
type Parser struct {
	tokens []Token
	match  []int
	pos    int
	depth  int
	max    int
	table  map[TokenKind]binaryInfo
}

// Parse lexes and parses a normalized formula.
func Parse(src string, opts Options) (expr.ExprNode, error) {
	tokens, err := Lex(src)
	if err != nil {
		return nil, err
	}
	match, err := matchBrackets(tokens)
	if err != nil {
		return nil, err
	}

	p := &Parser{
		tokens: tokens,
		match:  match,
		max:    opts.MaxDepth,
		table:  precedenceTables[opts.Power],
	}
	if p.max <= 0 {
		p.max = DefaultMaxDepth
	}
	if p.table == nil {
		p.table = precedenceTables[PowerLeft]
	}

	if p.peek().Kind == TokenEOF {
		return nil, errorf(KindUnexpectedToken, 0, "empty formula")
	}
	node, err := p.parseExpr(precAdd)
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Kind != TokenEOF {
		return nil, errorf(KindUnexpectedToken, tok.Pos, "%s after complete term", tok)
	}
	return node, nil
}

func (p *Parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *Parser) next() Token {
	tok := p.tokens[p.pos]
	if tok.Kind != TokenEOF {
		p.pos++
	}
	return tok
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.max {
		return errorf(KindRecursionLimitExceeded, p.peek().Pos, "nesting deeper than %d", p.max)
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// parseExpr parses operators binding at least as tightly as minPrec.
func (p *Parser) parseExpr(minPrec int) (expr.ExprNode, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.parseUnary(minPrec)
	if err != nil {
		return nil, err
	}
	for {
		info, ok := p.table[p.peek().Kind]
		if !ok || info.prec < minPrec {
			return left, nil
		}
		p.next()

		next := info.prec + 1
		if info.right {
			next = info.prec
		}
		right, err := p.parseExpr(next)
		if err != nil {
			return nil, err
		}
		left = &expr.BinaryNode{Op: info.op, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary(minPrec int) (expr.ExprNode, error) {
	tok := p.peek()
	if tok.Kind != TokenMinus && tok.Kind != TokenPlus {
		return p.parsePrimary()
	}
	p.next()

	operandPrec := minPrec
	if operandPrec < precMul {
		operandPrec = precMul
	}
	child, err := p.parseExpr(operandPrec)
	if err != nil {
		return nil, err
	}
	if tok.Kind == TokenPlus {
		return child, nil
	}
	return &expr.UnaryNode{Op: expr.OpNeg, Child: child}, nil
}

func (p *Parser) parsePrimary() (expr.ExprNode, error) {
	tok := p.next()
	switch tok.Kind {
	case TokenNumber:
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, errorf(KindMalformedLiteral, tok.Pos, "%q", tok.Text)
		}
		return &expr.NumNode{Val: v}, nil

	case TokenIdent:
		return p.parseIdent(tok)

	case TokenLParen:
		inner, err := p.parseGroup(tok)
		if err != nil {
			return nil, err
		}
		return &expr.GroupNode{Child: inner}, nil

	case TokenEOF:
		return nil, errorf(KindUnexpectedToken, tok.Pos, "missing operand at end of formula")

	default:
		return nil, errorf(KindUnexpectedToken, tok.Pos, "expected operand, got %s", tok)
	}
}

// parseIdent resolves a function call, a constant or the free variable.
func (p *Parser) parseIdent(tok Token) (expr.ExprNode, error) {
	if p.peek().Kind == TokenLParen {
		fn, ok := funcs.Lookup(tok.Text)
		if !ok {
			return nil, errorf(KindUnknownFunction, tok.Pos, "%q", tok.Text)
		}
		arg, err := p.parseGroup(p.next())
		if err != nil {
			return nil, err
		}
		return &expr.CallNode{Fn: fn, Arg: arg}, nil
	}
	if c, ok := funcs.LookupConstant(tok.Text); ok {
		return &expr.ConstNode{Const: c}, nil
	}
	if len(tok.Text) == 1 {
		return &expr.VarNode{Name: tok.Text[0]}, nil
	}
	return nil, errorf(KindUnresolvedIdentifier, tok.Pos, "%q", tok.Text)
}

// parseGroup parses the contents of a bracket pair; open has already been
// consumed.
func (p *Parser) parseGroup(open Token) (expr.ExprNode, error) {
	openIdx := p.pos - 1
	if p.peek().Kind == TokenRParen {
		return nil, errorf(KindUnexpectedToken, open.Pos, "empty parentheses")
	}

	inner, err := p.parseExpr(precAdd)
	if err != nil {
		return nil, err
	}
	if p.pos != p.match[openIdx] {
		tok := p.peek()
		return nil, errorf(KindUnexpectedToken, tok.Pos, "%s where ')' was expected", tok)
	}
	p.next()
	return inner, nil
}
