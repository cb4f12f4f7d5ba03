package parser

import (
	"fmt"
	"sort"
	"strings"
)

// symbol numbers terminals and nonterminals in one space: terminals are the
// TokenKind values, nonterminals follow them.
type symbol int

const (
	symStart symbol = symbol(numTokenKinds) + iota
	symExpr
	symTerm
	symFactor
	symLimit
)

var symbolNames = map[symbol]string{
	symStart:  "Start",
	symExpr:   "Expr",
	symTerm:   "Term",
	symFactor: "Factor",
}

func term(k TokenKind) symbol {
	return symbol(k)
}

func (s symbol) isTerminal() bool {
	return s < symbol(numTokenKinds)
}

func (s symbol) String() string {
	if s.isTerminal() {
		return TokenKind(s).String()
	}
	return symbolNames[s]
}

type production struct {
	name   string
	lhs    symbol
	rhs    []symbol
	action action
}

func (p production) String() string {
	parts := make([]string, len(p.rhs))
	for i, s := range p.rhs {
		parts[i] = s.String()
	}
	return fmt.Sprintf("%s -> %s", p.lhs, strings.Join(parts, " "))
}

// productions lists the grammar in priority order. Production 0 is the
// augmented start rule; reducing it on EndOfInput accepts.
var productions = []production{
	{name: "start", lhs: symStart, rhs: []symbol{symExpr}},
	{name: "sum", lhs: symExpr, rhs: []symbol{symExpr, term(Plus), symTerm}, action: sumAction},
	{name: "expr", lhs: symExpr, rhs: []symbol{symTerm}, action: passThrough},
	{name: "term", lhs: symTerm, rhs: []symbol{symFactor}, action: passThrough},
	{name: "parens", lhs: symFactor, rhs: []symbol{term(LParen), symExpr, term(RParen)}, action: parenAction},
	{name: "literal", lhs: symFactor, rhs: []symbol{term(Integer)}, action: literalAction},
}

type actionKind uint8

const (
	actError actionKind = iota
	actShift
	actReduce
	actAccept
)

type tableAction struct {
	kind   actionKind
	target int // state for a shift, production for a reduce
}

// parseTable is an SLR(1) table: LR(0) item sets with reductions placed on
// the FOLLOW set of the production's left-hand side.
type parseTable struct {
	actions   [][numTokenKinds]tableAction
	gotos     [][]int
	conflicts []string
}

var lrTable = buildTable(productions)

func (t *parseTable) action(state int, kind TokenKind) tableAction {
	return t.actions[state][kind]
}

func (t *parseTable) gotoState(state int, lhs symbol) int {
	return t.gotos[state][lhs-symStart]
}

func (t *parseTable) numStates() int {
	return len(t.actions)
}

// expected lists the token kinds that have a non-error action in state.
func (t *parseTable) expected(state int) []TokenKind {
	var kinds []TokenKind
	for k := TokenKind(0); k < numTokenKinds; k++ {
		if t.actions[state][k].kind != actError {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

type item struct {
	prod int
	dot  int
}

type symbolSet map[symbol]bool

func (s symbolSet) addAll(other symbolSet) bool {
	changed := false
	for sym := range other {
		if !s[sym] {
			s[sym] = true
			changed = true
		}
	}
	return changed
}

type tableBuilder struct {
	prods    []production
	nullable map[symbol]bool
	first    map[symbol]symbolSet
	follow   map[symbol]symbolSet
}

func buildTable(prods []production) *parseTable {
	b := &tableBuilder{
		prods:    prods,
		nullable: map[symbol]bool{},
		first:    map[symbol]symbolSet{},
		follow:   map[symbol]symbolSet{},
	}
	for s := symStart; s < symLimit; s++ {
		b.first[s] = symbolSet{}
		b.follow[s] = symbolSet{}
	}
	b.computeFirst()
	b.computeFollow()
	return b.build()
}

func (b *tableBuilder) firstOf(s symbol) symbolSet {
	if s.isTerminal() {
		return symbolSet{s: true}
	}
	return b.first[s]
}

func (b *tableBuilder) computeFirst() {
	for changed := true; changed; {
		changed = false
		for _, p := range b.prods {
			allNullable := true
			for _, s := range p.rhs {
				if b.first[p.lhs].addAll(b.firstOf(s)) {
					changed = true
				}
				if !b.nullable[s] {
					allNullable = false
					break
				}
			}
			if allNullable && !b.nullable[p.lhs] {
				b.nullable[p.lhs] = true
				changed = true
			}
		}
	}
}

func (b *tableBuilder) computeFollow() {
	b.follow[symStart][term(EndOfInput)] = true
	for changed := true; changed; {
		changed = false
		for _, p := range b.prods {
			for i, s := range p.rhs {
				if s.isTerminal() {
					continue
				}
				restNullable := true
				for _, next := range p.rhs[i+1:] {
					if b.follow[s].addAll(b.firstOf(next)) {
						changed = true
					}
					if !b.nullable[next] {
						restNullable = false
						break
					}
				}
				if restNullable && b.follow[s].addAll(b.follow[p.lhs]) {
					changed = true
				}
			}
		}
	}
}

func (b *tableBuilder) closure(kernel []item) []item {
	seen := map[item]bool{}
	var items []item
	queue := append([]item(nil), kernel...)
	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]
		if seen[it] {
			continue
		}
		seen[it] = true
		items = append(items, it)

		rhs := b.prods[it.prod].rhs
		if it.dot >= len(rhs) || rhs[it.dot].isTerminal() {
			continue
		}
		for i, p := range b.prods {
			if p.lhs == rhs[it.dot] {
				queue = append(queue, item{prod: i})
			}
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].prod != items[j].prod {
			return items[i].prod < items[j].prod
		}
		return items[i].dot < items[j].dot
	})
	return items
}

func (b *tableBuilder) advance(items []item, x symbol) []item {
	var kernel []item
	for _, it := range items {
		rhs := b.prods[it.prod].rhs
		if it.dot < len(rhs) && rhs[it.dot] == x {
			kernel = append(kernel, item{prod: it.prod, dot: it.dot + 1})
		}
	}
	if len(kernel) == 0 {
		return nil
	}
	return b.closure(kernel)
}

func itemSetKey(items []item) string {
	var sb strings.Builder
	for _, it := range items {
		fmt.Fprintf(&sb, "%d.%d;", it.prod, it.dot)
	}
	return sb.String()
}

func (b *tableBuilder) build() *parseTable {
	states := [][]item{b.closure([]item{{prod: 0}})}
	index := map[string]int{itemSetKey(states[0]): 0}
	var transitions []map[symbol]int

	for i := 0; i < len(states); i++ {
		transitions = append(transitions, map[symbol]int{})
		for x := symbol(0); x < symLimit; x++ {
			next := b.advance(states[i], x)
			if next == nil {
				continue
			}
			key := itemSetKey(next)
			j, ok := index[key]
			if !ok {
				j = len(states)
				states = append(states, next)
				index[key] = j
			}
			transitions[i][x] = j
		}
	}

	t := &parseTable{
		actions: make([][numTokenKinds]tableAction, len(states)),
		gotos:   make([][]int, len(states)),
	}
	for i, items := range states {
		t.gotos[i] = make([]int, symLimit-symStart)
		for n := range t.gotos[i] {
			t.gotos[i][n] = -1
		}
		for x, j := range transitions[i] {
			if x.isTerminal() {
				t.actions[i][x] = tableAction{kind: actShift, target: j}
			} else {
				t.gotos[i][x-symStart] = j
			}
		}
		for _, it := range items {
			p := b.prods[it.prod]
			if it.dot < len(p.rhs) {
				continue
			}
			if it.prod == 0 {
				t.actions[i][EndOfInput] = tableAction{kind: actAccept}
				continue
			}
			for la := range b.follow[p.lhs] {
				t.placeReduce(i, TokenKind(la), it.prod, b.prods)
			}
		}
	}
	return t
}

// placeReduce resolves conflicts in favour of shifting, then of the
// production listed first.
func (t *parseTable) placeReduce(state int, la TokenKind, prod int, prods []production) {
	existing := t.actions[state][la]
	switch existing.kind {
	case actError:
		t.actions[state][la] = tableAction{kind: actReduce, target: prod}
	case actShift, actAccept:
		t.conflicts = append(t.conflicts, fmt.Sprintf("state %d on %s: shift/reduce with %s", state, la, prods[prod]))
	case actReduce:
		t.conflicts = append(t.conflicts, fmt.Sprintf("state %d on %s: reduce/reduce between %s and %s",
			state, la, prods[existing.target], prods[prod]))
		if prod < existing.target {
			t.actions[state][la] = tableAction{kind: actReduce, target: prod}
		}
	}
}
