package evaluator

import "github.com/wildfunctions/fxeval/pkg/parse"

// Error is the error type returned by EvaluateAt.
type Error = parse.Error

// Kind classifies an Error.
type Kind = parse.Kind

const (
	KindMalformedLiteral       = parse.KindMalformedLiteral
	KindUnmatchedParenthesis   = parse.KindUnmatchedParenthesis
	KindInvalidCharacter       = parse.KindInvalidCharacter
	KindUnknownFunction        = parse.KindUnknownFunction
	KindUnresolvedIdentifier   = parse.KindUnresolvedIdentifier
	KindRecursionLimitExceeded = parse.KindRecursionLimitExceeded
	KindUnexpectedToken        = parse.KindUnexpectedToken
)

var (
	ErrMalformedLiteral       = parse.ErrMalformedLiteral
	ErrUnmatchedParenthesis   = parse.ErrUnmatchedParenthesis
	ErrInvalidCharacter       = parse.ErrInvalidCharacter
	ErrUnknownFunction        = parse.ErrUnknownFunction
	ErrUnresolvedIdentifier   = parse.ErrUnresolvedIdentifier
	ErrRecursionLimitExceeded = parse.ErrRecursionLimitExceeded
	ErrUnexpectedToken        = parse.ErrUnexpectedToken
)
