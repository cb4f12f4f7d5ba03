package parser

import (
	"sort"

	"github.com/tliron/commonlog"
)

type Options struct {
	// MaxRepairCost bounds the number of insert/delete edits tried per error.
	MaxRepairCost int
	// RecoveryLookahead is how many real tokens after a repair count towards
	// its score. A repair needs to let the parser shift at least one, or
	// accept.
	RecoveryLookahead int
}

// MaxRepairCostLimit caps MaxRepairCost. The search tries every edit
// sequence up to that length, so each extra edit multiplies the work per
// error by five.
const MaxRepairCostLimit = 6

func DefaultOptions() Options {
	return Options{MaxRepairCost: 3, RecoveryLookahead: 3}
}

func (o Options) normalized() Options {
	def := DefaultOptions()
	if o.MaxRepairCost < 1 {
		o.MaxRepairCost = def.MaxRepairCost
	}
	o.MaxRepairCost = min(o.MaxRepairCost, MaxRepairCostLimit)
	if o.RecoveryLookahead < 1 {
		o.RecoveryLookahead = def.RecoveryLookahead
	}
	return o
}

// Parser evaluates a single line. It is not reusable: create one per line.
type Parser struct {
	source  string
	scanner *Scanner
	opts    Options
	log     commonlog.Logger

	tokens  []Token
	current int
	lexical bool

	states      []int
	values      []value
	diagnostics []Diagnostic
}

func NewParser(source string, opts Options) *Parser {
	return &Parser{
		source:  source,
		scanner: NewScanner(source),
		opts:    opts.normalized(),
		log:     commonlog.GetLogger("calc.parser"),
	}
}

// Parse lexes, parses and evaluates the line. The result is nil when no parse
// tree could be built; diagnostics are ordered by position.
func (p *Parser) Parse() (*Result, []Diagnostic) {
	if p.peek().Kind == EndOfInput {
		return nil, p.finish()
	}

	p.states = []int{0}
	for {
		tok := p.peek()
		switch p.step(value{tok: tok}) {
		case stepShifted:
			p.advance()
		case stepAccepted:
			res := p.values[len(p.values)-1].res
			if p.lexical && res.Err == nil {
				res.Err = ErrLexical
			}
			return &res, p.finish()
		case stepRejected:
			if !p.recover(tok) {
				return nil, p.finish()
			}
		}
	}
}

type stepResult int

const (
	stepShifted stepResult = iota
	stepAccepted
	stepRejected
)

// step performs every reduction the lookahead triggers and then shifts it.
func (p *Parser) step(la value) stepResult {
	for {
		act := lrTable.action(p.top(), la.tok.Kind)
		switch act.kind {
		case actShift:
			p.states = append(p.states, act.target)
			p.values = append(p.values, la)
			return stepShifted
		case actReduce:
			p.reduce(act.target)
		case actAccept:
			return stepAccepted
		default:
			return stepRejected
		}
	}
}

func (p *Parser) reduce(index int) {
	prod := &productions[index]
	n := len(prod.rhs)
	res := prod.action(p.source, p.values[len(p.values)-n:])

	p.states = p.states[:len(p.states)-n]
	p.values = p.values[:len(p.values)-n]
	p.states = append(p.states, lrTable.gotoState(p.top(), prod.lhs))
	p.values = append(p.values, value{res: res})
}

func (p *Parser) top() int {
	return p.states[len(p.states)-1]
}

func (p *Parser) finish() []Diagnostic {
	// Lex the rest of the line so every lexical error is reported.
	for p.scanner.Next().Kind != EndOfInput {
	}
	diags := append(append([]Diagnostic(nil), p.scanner.Diagnostics()...), p.diagnostics...)
	sort.SliceStable(diags, func(i, j int) bool {
		return diags[i].Span.Start < diags[j].Span.Start
	})
	return diags
}
