package parse

import "fmt"

// TokenKind identifies a lexical token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenNumber
	TokenIdent
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenCaret
	TokenLParen
	TokenRParen
)

var tokenNames = map[TokenKind]string{
	TokenEOF:    "end of input",
	TokenNumber: "number",
	TokenIdent:  "identifier",
	TokenPlus:   "+",
	TokenMinus:  "-",
	TokenStar:   "*",
	TokenSlash:  "/",
	TokenCaret:  "^",
	TokenLParen: "(",
	TokenRParen: ")",
}

func (k TokenKind) String() string {
	if s, ok := tokenNames[k]; ok {
		return s
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is one lexeme. Text has spaces removed; Pos is the byte offset of
// its first character in the normalized formula.
type Token struct {
	Kind TokenKind
	Text string
	Pos  int
}

func (t Token) String() string {
	switch t.Kind {
	case TokenNumber, TokenIdent:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Text)
	default:
		return t.Kind.String()
	}
}
