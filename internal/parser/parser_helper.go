package parser

// peekAt returns the i-th significant token from the current position,
// pulling from the scanner as needed. Invalid tokens are dropped here; the
// scanner has already reported them.
func (p *Parser) peekAt(i int) Token {
	for len(p.tokens) <= p.current+i {
		if n := len(p.tokens); n > 0 && p.tokens[n-1].Kind == EndOfInput {
			return p.tokens[n-1]
		}
		tok := p.scanner.Next()
		if tok.Kind == Invalid {
			p.lexical = true
			continue
		}
		p.tokens = append(p.tokens, tok)
	}
	return p.tokens[p.current+i]
}

func (p *Parser) peek() Token {
	return p.peekAt(0)
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if tok.Kind != EndOfInput {
		p.current++
	}
	return tok
}
