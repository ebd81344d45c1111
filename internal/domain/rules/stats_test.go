package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vishalnatekar/myfinancepal/internal/domain/ledger"
)

func TestStatistics_TalliesOutcomes(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)
	ruleSet := []SplittingRule{
		merchantRule("ruleA", 1, "tesco"),
		categoryRule("ruleB", 50, "Utilities"),
	}
	batch := []ledger.Transaction{
		makeTransaction("tx1", -25.50, "Tesco", "Groceries"),
		makeTransaction("tx2", -14.50, "Tesco Express", "Groceries"),
		makeTransaction("tx3", -300.00, "British Gas", "Utilities"),
		makeTransaction("tx4", -9.99, "Netflix", "Entertainment"),
	}

	stats := engine.Statistics(batch, ruleSet)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 3, stats.Matched)
	assert.Equal(t, 1, stats.Unmatched)
	assert.Equal(t, map[string]int{"ruleA": 2, "ruleB": 1}, stats.MatchesByRule)
}

func TestStatistics_EmptyInputs(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)

	stats := engine.Statistics(nil, nil)

	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.Matched)
	assert.Zero(t, stats.Unmatched)
	assert.Empty(t, stats.MatchesByRule)
}
