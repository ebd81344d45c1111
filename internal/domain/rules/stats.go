package rules

import (
	"github.com/vishalnatekar/myfinancepal/internal/domain/ledger"
)

// Statistics runs FindMatchingRule over a batch and tallies the
// outcomes. Pure diagnostic: no side effects, no logging.
func (e *Engine) Statistics(transactions []ledger.Transaction, ruleSet []SplittingRule) MatchStatistics {
	stats := MatchStatistics{
		Total:         len(transactions),
		MatchesByRule: make(map[string]int),
	}

	for _, tx := range transactions {
		rule := e.FindMatchingRule(tx, ruleSet)
		if rule == nil {
			stats.Unmatched++
			continue
		}
		stats.Matched++
		stats.MatchesByRule[rule.ID]++
	}

	return stats
}
