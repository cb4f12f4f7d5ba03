package parser

import (
	"fmt"
	"regexp"
	"slices"
	"unicode/utf8"

	"calc/grammar"

	"github.com/alecthomas/participle/v2/lexer"
)

type lexRule struct {
	name string
	kind TokenKind
	skip bool
	re   *regexp.Regexp
}

var ruleKinds = map[string]TokenKind{
	"Integer": Integer,
	"Plus":    Plus,
	"LParen":  LParen,
	"RParen":  RParen,
}

var lexRules = compileRules(grammar.Rules)

// compileRules anchors each pattern and switches it to leftmost-longest
// matching, so alternations inside one rule also take the longest lexeme.
func compileRules(defs []lexer.SimpleRule) []lexRule {
	rules := make([]lexRule, 0, len(defs))
	for _, r := range defs {
		skip := slices.Contains(grammar.Elided, r.Name)
		kind, ok := ruleKinds[r.Name]
		if !ok && !skip {
			panic(fmt.Errorf("lexical rule %q has no token kind", r.Name))
		}
		re := regexp.MustCompile(`^(?:` + r.Pattern + `)`)
		re.Longest()
		rules = append(rules, lexRule{
			name: r.Name,
			kind: kind,
			skip: skip,
			re:   re,
		})
	}
	return rules
}

// Scanner turns one input line into tokens on demand. Once it has returned
// EndOfInput every further call returns EndOfInput again.
type Scanner struct {
	source  string
	current int
	errors  []Diagnostic
}

func NewScanner(source string) *Scanner {
	return &Scanner{source: source}
}

// Next returns the next significant token. Unrecognised input comes back as
// an Invalid token and is recorded as a lexical diagnostic.
func (s *Scanner) Next() Token {
	for !s.isAtEnd() {
		start := s.current
		rule, n := s.longestMatch(s.source[start:])
		if n == 0 {
			end := s.skipUnmatched(start)
			s.current = end
			return s.reportError(Span{Start: start, End: end})
		}
		s.current += n
		if rule.skip {
			continue
		}
		return Token{Kind: rule.kind, Span: Span{Start: start, End: s.current}}
	}
	end := len(s.source)
	return Token{Kind: EndOfInput, Span: Span{Start: end, End: end}}
}

// ScanTokens drains the scanner. The last token is always EndOfInput.
func (s *Scanner) ScanTokens() []Token {
	var tokens []Token
	for {
		tok := s.Next()
		tokens = append(tokens, tok)
		if tok.Kind == EndOfInput {
			return tokens
		}
	}
}

func (s *Scanner) Diagnostics() []Diagnostic {
	return s.errors
}

// longestMatch picks the rule matching the most bytes; ties go to the rule
// listed first.
func (s *Scanner) longestMatch(rest string) (*lexRule, int) {
	var best *lexRule
	bestLen := 0
	for i := range lexRules {
		loc := lexRules[i].re.FindStringIndex(rest)
		if loc == nil || loc[1] <= bestLen {
			continue
		}
		best, bestLen = &lexRules[i], loc[1]
	}
	return best, bestLen
}

// skipUnmatched advances rune by rune until some rule matches again.
func (s *Scanner) skipUnmatched(start int) int {
	pos := start
	for pos < len(s.source) {
		if _, n := s.longestMatch(s.source[pos:]); n > 0 && pos > start {
			break
		}
		_, size := utf8.DecodeRuneInString(s.source[pos:])
		pos += size
	}
	return pos
}

func (s *Scanner) reportError(span Span) Token {
	s.errors = append(s.errors, Diagnostic{
		Kind:  LexicalError,
		Span:  span,
		Found: Invalid,
		Text:  span.Text(s.source),
	})
	return Token{Kind: Invalid, Span: span}
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}
