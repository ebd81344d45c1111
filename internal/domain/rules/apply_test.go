package rules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishalnatekar/myfinancepal/internal/domain/ledger"
)

func TestApplyRuleToBatch_AppliesToMatches(t *testing.T) {
	// Arrange
	engine := NewEngine(DefaultConfig(), nil)
	rule := merchantRule("ruleA", 1, "tesco")
	batch := []ledger.Transaction{
		makeTransaction("tx1", -25.50, "Tesco", ""),
		makeTransaction("tx2", -300.00, "British Gas", ""),
		makeTransaction("tx3", -14.50, "Tesco Express", ""),
	}

	var applied []Application
	persist := func(app Application) error {
		applied = append(applied, app)
		return nil
	}

	// Act
	report := engine.ApplyRuleToBatch(rule, batch, persist)

	// Assert
	assert.Equal(t, 2, report.AppliedCount)
	assert.Equal(t, -40.00, report.TotalAmount)
	assert.Empty(t, report.Errors)

	require.Len(t, applied, 2)
	assert.Equal(t, "tx1", applied[0].TransactionID)
	assert.Equal(t, "ruleA", applied[0].RuleID)
	assert.True(t, applied[0].IsShared)
	assert.Equal(t, "tx3", applied[1].TransactionID)
}

func TestApplyRuleToBatch_PartialFailureIsolation(t *testing.T) {
	// A 3-transaction batch where persistence of the second fails.
	engine := NewEngine(DefaultConfig(), nil)
	rule := defaultRule("ruleA", 100)
	batch := []ledger.Transaction{
		makeTransaction("tx1", -10.00, "Tesco", ""),
		makeTransaction("tx2", -20.00, "Tesco", ""),
		makeTransaction("tx3", -30.00, "Tesco", ""),
	}

	persist := func(app Application) error {
		if app.TransactionID == "tx2" {
			return errors.New("storage write refused")
		}
		return nil
	}

	report := engine.ApplyRuleToBatch(rule, batch, persist)

	assert.Equal(t, 2, report.AppliedCount)
	assert.Equal(t, -40.00, report.TotalAmount)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "tx2", report.Errors[0].TransactionID)
	assert.Contains(t, report.Errors[0].Err, "storage write refused")
}

func TestApplyRuleToBatch_NoMatchesIsEmptyReport(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)
	rule := categoryRule("ruleA", 1, "Transport")
	batch := []ledger.Transaction{
		makeTransaction("tx1", -25.50, "Tesco", "Groceries"),
	}

	report := engine.ApplyRuleToBatch(rule, batch, func(Application) error { return nil })

	assert.Zero(t, report.AppliedCount)
	assert.Zero(t, report.TotalAmount)
	assert.Empty(t, report.Errors)
}

func TestApplyRuleToBatch_SingleMemberIsNotShared(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)
	rule := defaultRule("ruleA", 100)
	rule.SplitPercentage = map[string]int{"userA": 100}

	var applied []Application
	report := engine.ApplyRuleToBatch(rule,
		[]ledger.Transaction{makeTransaction("tx1", -25.50, "Tesco", "")},
		func(app Application) error {
			applied = append(applied, app)
			return nil
		})

	assert.Equal(t, 1, report.AppliedCount)
	require.Len(t, applied, 1)
	assert.False(t, applied[0].IsShared)
	assert.Equal(t, map[string]float64{"userA": -25.50}, applied[0].Attribution)
}

func TestAttributeSplit_SumsToAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		split  map[string]int
	}{
		{"even", -25.50, map[string]int{"userA": 50, "userB": 50}},
		{"uneven", -100.00, map[string]int{"userA": 60, "userB": 40}},
		{"rounding drift", -10.01, map[string]int{"userA": 33, "userB": 33, "userC": 34}},
		{"positive refund", 19.99, map[string]int{"userA": 70, "userB": 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares := attributeSplit(tt.amount, tt.split)

			total := 0.0
			for _, share := range shares {
				total += share
			}
			assert.Equal(t, tt.amount, ledger.RoundToCents(total))
			assert.Len(t, shares, len(tt.split))
		})
	}
}

func TestAttributeSplit_DriftLandsOnLargestShare(t *testing.T) {
	shares := attributeSplit(-10.01, map[string]int{"userA": 33, "userB": 33, "userC": 34})

	// 33% of -10.01 rounds to -3.30 each; userC absorbs the remainder.
	assert.Equal(t, -3.30, shares["userA"])
	assert.Equal(t, -3.30, shares["userB"])
	assert.Equal(t, -3.41, shares["userC"])
}
