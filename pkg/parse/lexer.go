package parse

import (
	"strings"
	"unicode/utf8"
)

// Normalize trims surrounding whitespace and lowercases the formula.
// Positions in errors refer to the normalized text.
func Normalize(formula string) string {
	return strings.ToLower(strings.TrimSpace(formula))
}

var operatorTokens = map[byte]TokenKind{
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenStar,
	'/': TokenSlash,
	'^': TokenCaret,
	'(': TokenLParen,
	')': TokenRParen,
}

// lexer turns a normalized formula into a flat token slice. Spaces are
// inert everywhere, including inside literals and identifiers, so "1 2"
// lexes as the number 12 and "s in" as the identifier sin.
type lexer struct {
	src    string
	pos    int
	tokens []Token
}

// Lex tokenizes src. The returned slice always ends with a TokenEOF.
func Lex(src string) ([]Token, error) {
	l := &lexer{src: src}
	for {
		l.skipSpaces()
		if l.pos >= len(l.src) {
			l.tokens = append(l.tokens, Token{Kind: TokenEOF, Pos: len(l.src)})
			return l.tokens, nil
		}

		c := l.src[l.pos]
		switch {
		case isDigit(c) || c == '.':
			if err := l.number(); err != nil {
				return nil, err
			}
		case isLetter(c):
			l.ident()
		default:
			kind, ok := operatorTokens[c]
			if !ok {
				r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
				return nil, errorf(KindInvalidCharacter, l.pos, "%q", r)
			}
			l.tokens = append(l.tokens, Token{Kind: kind, Text: string(c), Pos: l.pos})
			l.pos++
		}
	}
}

func (l *lexer) skipSpaces() {
	for l.pos < len(l.src) && l.src[l.pos] == ' ' {
		l.pos++
	}
}

// number reads digits with at most one '.', which must sit between digits.
func (l *lexer) number() error {
	start := l.pos
	var b strings.Builder
	seenDot := false
	for {
		l.skipSpaces()
		if l.pos >= len(l.src) {
			break
		}
		c := l.src[l.pos]
		if isDigit(c) {
			b.WriteByte(c)
			l.pos++
			continue
		}
		if c != '.' {
			break
		}

		dot := l.pos
		switch {
		case b.Len() == 0:
			return errorf(KindMalformedLiteral, dot, "'.' without leading digits")
		case seenDot:
			return errorf(KindMalformedLiteral, dot, "second '.' in %q", b.String())
		}
		l.pos++
		l.skipSpaces()
		if l.pos >= len(l.src) || !isDigit(l.src[l.pos]) {
			return errorf(KindMalformedLiteral, dot, "'.' not followed by a digit")
		}
		seenDot = true
		b.WriteByte('.')
	}
	l.tokens = append(l.tokens, Token{Kind: TokenNumber, Text: b.String(), Pos: start})
	return nil
}

func (l *lexer) ident() {
	start := l.pos
	var b strings.Builder
	for {
		l.skipSpaces()
		if l.pos >= len(l.src) || !isLetter(l.src[l.pos]) {
			break
		}
		b.WriteByte(l.src[l.pos])
		l.pos++
	}
	l.tokens = append(l.tokens, Token{Kind: TokenIdent, Text: b.String(), Pos: start})
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return c >= 'a' && c <= 'z' }
