package parser

import "slices"

// insertable lists the kinds recovery may synthesise, in preference order.
var insertable = []TokenKind{Integer, Plus, LParen, RParen}

type edit struct {
	kind  RepairKind
	token TokenKind
}

// recover repairs the input at an error and records a diagnostic. Candidate
// edit sequences are tried by increasing length. A sequence is viable when
// the parser can then shift at least one real token or accept; a later
// error is left for the next call. The cheapest viable sequence wins, with
// ties broken by how many real tokens it shifts (up to RecoveryLookahead)
// and then by enumeration order. It reports false when no sequence within
// MaxRepairCost is viable.
func (p *Parser) recover(found Token) bool {
	diag := Diagnostic{
		Kind:     SyntaxError,
		Span:     found.Span,
		Found:    found.Kind,
		Text:     found.Span.Text(p.source),
		Expected: p.expected(),
	}

	seq, ok := p.searchRepairs()
	if !ok {
		diag.Kind = UnrecoverableError
		p.diagnostics = append(p.diagnostics, diag)
		p.log.Debugf("no repair at %s for %s", found.Span, found.Kind)
		return false
	}

	for _, e := range seq {
		tok := p.peek()
		switch e.kind {
		case RepairInsert:
			at := Span{Start: tok.Span.Start, End: tok.Span.Start}
			p.step(value{tok: Token{Kind: e.token, Span: at}, inserted: true})
			diag.Repairs = append(diag.Repairs, Repair{Kind: RepairInsert, Token: e.token, Span: at})
		case RepairDelete:
			p.advance()
			diag.Repairs = append(diag.Repairs, Repair{
				Kind:  RepairDelete,
				Token: tok.Kind,
				Span:  tok.Span,
				Text:  tok.Span.Text(p.source),
			})
		}
	}
	p.diagnostics = append(p.diagnostics, diag)
	p.log.Debugf("repaired %s: %s", found.Span, diag.Message())
	return true
}

func (p *Parser) searchRepairs() ([]edit, bool) {
	for cost := 1; cost <= p.opts.MaxRepairCost; cost++ {
		var best []edit
		bestScore := -1
		p.enumerate(make([]edit, 0, cost), cost, func(seq []edit) {
			if score, ok := p.tryRepair(seq); ok && score > bestScore {
				best, bestScore = slices.Clone(seq), score
			}
		})
		if best != nil {
			return best, true
		}
	}
	return nil, false
}

func (p *Parser) enumerate(prefix []edit, n int, visit func([]edit)) {
	if len(prefix) == n {
		visit(prefix)
		return
	}
	for _, k := range insertable {
		p.enumerate(append(prefix, edit{kind: RepairInsert, token: k}), n, visit)
	}
	p.enumerate(append(prefix, edit{kind: RepairDelete}), n, visit)
}

// tryRepair runs seq against a copy of the state stack and scores it by the
// number of real tokens shifted afterwards; reaching accept counts as one.
// It fails when the token after the edits cannot be shifted.
func (p *Parser) tryRepair(seq []edit) (int, bool) {
	states := slices.Clone(p.states)
	offset := 0
	var r stepResult

	for _, e := range seq {
		switch e.kind {
		case RepairInsert:
			if states, r = simulate(states, e.token); r != stepShifted {
				return 0, false
			}
		case RepairDelete:
			if p.peekAt(offset).Kind == EndOfInput {
				return 0, false
			}
			offset++
		}
	}

	shifted := 0
	for shifted < p.opts.RecoveryLookahead {
		states, r = simulate(states, p.peekAt(offset).Kind)
		switch r {
		case stepShifted:
			shifted++
			offset++
		case stepAccepted:
			return shifted + 1, true
		default:
			return shifted, shifted > 0
		}
	}
	return shifted, true
}

// expected lists the kinds the parser can actually shift or accept from its
// current stack. The SLR table alone over-reports, since FOLLOW sets allow
// reductions that a later state rejects.
func (p *Parser) expected() []TokenKind {
	var kinds []TokenKind
	for _, k := range lrTable.expected(p.top()) {
		if _, r := simulate(slices.Clone(p.states), k); r != stepRejected {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// simulate is step without values: it only tracks parser states.
func simulate(states []int, kind TokenKind) ([]int, stepResult) {
	for {
		act := lrTable.action(states[len(states)-1], kind)
		switch act.kind {
		case actShift:
			return append(states, act.target), stepShifted
		case actReduce:
			prod := &productions[act.target]
			states = states[:len(states)-len(prod.rhs)]
			states = append(states, lrTable.gotoState(states[len(states)-1], prod.lhs))
		case actAccept:
			return states, stepAccepted
		default:
			return states, stepRejected
		}
	}
}
