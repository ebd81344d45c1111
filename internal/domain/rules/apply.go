package rules

import (
	"math"
	"sort"

	"github.com/vishalnatekar/myfinancepal/internal/domain/ledger"
)

// PersistFunc is supplied by the caller to persist one application
// decision. A returned error is recorded against that transaction and
// the batch continues.
type PersistFunc func(app Application) error

// ApplyRuleToBatch evaluates one rule against a transaction set and
// emits an application decision for every match. The caller pre-filters
// the set to transactions with no rule applied yet.
//
// Failures reported by persist are collected per transaction; a single
// bad transaction never aborts the batch. The report carries the count
// and total amount of successful applications alongside the errors.
func (e *Engine) ApplyRuleToBatch(rule SplittingRule, transactions []ledger.Transaction, persist PersistFunc) ApplyReport {
	report := ApplyReport{}

	for _, tx := range transactions {
		if !e.RuleMatches(rule, tx) {
			continue
		}

		app := Application{
			TransactionID: tx.ID,
			RuleID:        rule.ID,
			IsShared:      isShared(rule.SplitPercentage),
			Attribution:   attributeSplit(tx.Amount, rule.SplitPercentage),
		}

		if persist != nil {
			if err := persist(app); err != nil {
				report.Errors = append(report.Errors, ApplyError{
					TransactionID: tx.ID,
					Err:           err.Error(),
				})
				continue
			}
		}

		report.AppliedCount++
		report.TotalAmount = ledger.RoundToCents(report.TotalAmount + tx.Amount)
	}

	e.logger.Info("bulk rule application complete",
		"rule_id", rule.ID,
		"applied", report.AppliedCount,
		"failed", len(report.Errors),
	)

	return report
}

// isShared reports whether more than one member carries a share.
func isShared(split map[string]int) bool {
	holders := 0
	for _, percent := range split {
		if percent > 0 {
			holders++
		}
	}
	return holders > 1
}

// attributeSplit divides an amount by integer percentages. Each share is
// rounded to cents; any rounding drift lands on the member with the
// largest share so the attributions always sum to the original amount.
func attributeSplit(amount float64, split map[string]int) map[string]float64 {
	if len(split) == 0 {
		return nil
	}

	members := make([]string, 0, len(split))
	for member := range split {
		members = append(members, member)
	}
	sort.Strings(members)

	shares := make(map[string]float64, len(members))
	total := 0.0
	largest := members[0]
	for _, member := range members {
		share := ledger.RoundToCents(amount * float64(split[member]) / 100)
		shares[member] = share
		total = ledger.RoundToCents(total + share)
		if split[member] > split[largest] {
			largest = member
		}
	}

	drift := ledger.RoundToCents(amount - total)
	if math.Abs(drift) > 0 {
		shares[largest] = ledger.RoundToCents(shares[largest] + drift)
	}

	return shares
}
