package compiler

import "qscript/internal/lexer"

// ParseExpressions splits a token run into per-clause token lists on
// top-level "," / ";" separators, honoring parenthesis depth (counted
// by scanning each token's body for '(' / ')'). Used for the for/if
// header clauses, where a single clause — "i<3", "i=i+1" — is itself
// several tokens wide.
func ParseExpressions(toks []lexer.Token) [][]lexer.Token {
	if len(toks) == 0 {
		return nil
	}
	var result [][]lexer.Token
	var current []lexer.Token
	depth := 0
	for _, t := range toks {
		if t.Kind == lexer.SEPARATOR && depth == 0 {
			result = append(result, current)
			current = nil
			continue
		}
		for _, ch := range t.Body {
			switch ch {
			case '(':
				depth++
			case ')':
				if depth > 0 {
					depth--
				}
			}
		}
		current = append(current, t)
	}
	result = append(result, current)
	return result
}

// callArgs splits the tokens following a builtin or user-proc name into
// one argument per token, dropping any "," used purely for readability
// between them — "CNot 0, 1" and "CNot 0 1" parse identically.
func callArgs(toks []lexer.Token) [][]lexer.Token {
	var result [][]lexer.Token
	for _, t := range toks {
		if t.Kind == lexer.SEPARATOR {
			continue
		}
		result = append(result, []lexer.Token{t})
	}
	return result
}
