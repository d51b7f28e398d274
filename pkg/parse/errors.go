package parse

import (
	"errors"
	"fmt"
)

// Kind classifies a formula error.
type Kind int

const (
	KindMalformedLiteral Kind = iota + 1
	KindUnmatchedParenthesis
	KindInvalidCharacter
	KindUnknownFunction
	KindUnresolvedIdentifier
	KindRecursionLimitExceeded
	KindUnexpectedToken
)

// Sentinels for errors.Is. Every *Error matches exactly one of them.
var (
	ErrMalformedLiteral       = errors.New("malformed literal")
	ErrUnmatchedParenthesis   = errors.New("unmatched parenthesis")
	ErrInvalidCharacter       = errors.New("invalid character")
	ErrUnknownFunction        = errors.New("unknown function")
	ErrUnresolvedIdentifier   = errors.New("unresolved identifier")
	ErrRecursionLimitExceeded = errors.New("recursion limit exceeded")
	ErrUnexpectedToken        = errors.New("unexpected token")
)

var kindSentinels = map[Kind]error{
	KindMalformedLiteral:       ErrMalformedLiteral,
	KindUnmatchedParenthesis:   ErrUnmatchedParenthesis,
	KindInvalidCharacter:       ErrInvalidCharacter,
	KindUnknownFunction:        ErrUnknownFunction,
	KindUnresolvedIdentifier:   ErrUnresolvedIdentifier,
	KindRecursionLimitExceeded: ErrRecursionLimitExceeded,
	KindUnexpectedToken:        ErrUnexpectedToken,
}

func (k Kind) String() string {
	if err, ok := kindSentinels[k]; ok {
		return err.Error()
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error reports a problem at a byte offset of the normalized formula.
type Error struct {
	Kind Kind
	Pos  int
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s at pos %d", e.Kind, e.Pos)
	}
	return fmt.Sprintf("%s at pos %d: %s", e.Kind, e.Pos, e.Msg)
}

// Unwrap returns the sentinel for e.Kind.
func (e *Error) Unwrap() error {
	return kindSentinels[e.Kind]
}

func errorf(kind Kind, pos int, format string, args ...any) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
