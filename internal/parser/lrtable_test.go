package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableHasNoConflicts(t *testing.T) {
	assert.Empty(t, lrTable.conflicts)
	assert.Equal(t, 10, lrTable.numStates())
}

func TestTableInitialState(t *testing.T) {
	assert.Equal(t, []TokenKind{Integer, LParen}, lrTable.expected(0))
	assert.Equal(t, actShift, lrTable.action(0, Integer).kind)
	assert.Equal(t, actError, lrTable.action(0, RParen).kind)

	exprState := lrTable.gotoState(0, symExpr)
	require.GreaterOrEqual(t, exprState, 0)
	assert.Equal(t, actAccept, lrTable.action(exprState, EndOfInput).kind)
	assert.Equal(t, []TokenKind{EndOfInput, Plus}, lrTable.expected(exprState))
}

func TestTableNeverActsOnInvalid(t *testing.T) {
	for s := 0; s < lrTable.numStates(); s++ {
		assert.Equal(t, actError, lrTable.action(s, Invalid).kind, "state %d", s)
	}
}

func TestFollowSets(t *testing.T) {
	b := &tableBuilder{
		prods:    productions,
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

	want := symbolSet{term(EndOfInput): true, term(Plus): true, term(RParen): true}
	assert.Equal(t, want, b.follow[symExpr])
	assert.Equal(t, want, b.follow[symFactor])
	assert.Equal(t, symbolSet{term(Integer): true, term(LParen): true}, b.first[symExpr])
}

func TestConflictsAreRecorded(t *testing.T) {
	ambiguous := []production{
		{name: "start", lhs: symStart, rhs: []symbol{symExpr}},
		{name: "sum", lhs: symExpr, rhs: []symbol{symExpr, term(Plus), symExpr}, action: sumAction},
		{name: "literal", lhs: symExpr, rhs: []symbol{term(Integer)}, action: literalAction},
	}
	tbl := buildTable(ambiguous)
	assert.NotEmpty(t, tbl.conflicts)
	assert.Contains(t, tbl.conflicts[0], "shift/reduce")
}

func TestProductionString(t *testing.T) {
	assert.Equal(t, "Expr -> Expr Plus Term", productions[1].String())
	assert.Equal(t, "Factor -> LParen Expr RParen", productions[4].String())
}
