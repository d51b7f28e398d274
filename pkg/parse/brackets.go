package parse

// matchBrackets pairs every '(' token with its ')' and returns, for each
// token index, the index of its partner (or -1 for non-bracket tokens).
func matchBrackets(tokens []Token) ([]int, error) {
	match := make([]int, len(tokens))
	var open []int
	for i, tok := range tokens {
		match[i] = -1
		switch tok.Kind {
		case TokenLParen:
			open = append(open, i)
		case TokenRParen:
			if len(open) == 0 {
				return nil, errorf(KindUnmatchedParenthesis, tok.Pos, "')' without '('")
			}
			j := open[len(open)-1]
			open = open[:len(open)-1]
			match[i] = j
			match[j] = i
		}
	}
	if len(open) > 0 {
		// Report the outermost unclosed bracket.
		return nil, errorf(KindUnmatchedParenthesis, tokens[open[0]].Pos, "'(' is never closed")
	}
	return match, nil
}
