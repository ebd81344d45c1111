package dedupe

import (
	"sort"

	"github.com/vishalnatekar/myfinancepal/internal/domain/ledger"
)

// ResolveDuplicates applies a resolution strategy to a cluster and
// partitions its members into keep, remove, and flag sets.
//
// Callers must pass clusters with at least two members; resolution
// itself never fails. When two members tie on date, the one with the
// lexicographically smallest id wins, so the decision is deterministic
// regardless of input order.
func ResolveDuplicates(cluster DuplicateCluster, strategy ResolutionStrategy) ResolutionDecision {
	ids := cluster.TransactionIDs()

	switch strategy {
	case KeepLatest:
		return keepSingle(cluster, func(a, b ledger.Transaction) bool {
			if !a.Date.Equal(b.Date) {
				return a.Date.After(b.Date)
			}
			return a.ID < b.ID
		})
	case KeepOldest:
		return keepSingle(cluster, func(a, b ledger.Transaction) bool {
			if !a.Date.Equal(b.Date) {
				return a.Date.Before(b.Date)
			}
			return a.ID < b.ID
		})
	case MergeMostComplete:
		return keepSingle(cluster, moreComplete)
	case FlagForReview:
		fallthrough
	default:
		// Unknown strategies degrade to human review rather than
		// guessing which record to delete.
		return ResolutionDecision{
			Keep:   []string{},
			Remove: []string{},
			Flag:   ids,
		}
	}
}

// keepSingle keeps the cluster member that wins every pairwise "better"
// comparison and removes the rest.
func keepSingle(cluster DuplicateCluster, better func(a, b ledger.Transaction) bool) ResolutionDecision {
	winner := cluster.Entries[0].Transaction
	for _, entry := range cluster.Entries[1:] {
		if better(entry.Transaction, winner) {
			winner = entry.Transaction
		}
	}

	decision := ResolutionDecision{
		Keep:   []string{winner.ID},
		Remove: make([]string, 0, len(cluster.Entries)-1),
		Flag:   []string{},
	}
	for _, entry := range cluster.Entries {
		if entry.TransactionID != winner.ID {
			decision.Remove = append(decision.Remove, entry.TransactionID)
		}
	}
	sort.Strings(decision.Remove)
	return decision
}

// moreComplete prefers the transaction with richer data: merchant name
// present, a real category, and a description, in that combined order,
// then the raw count of populated optional fields, then keep_latest.
func moreComplete(a, b ledger.Transaction) bool {
	scoreA, scoreB := completeness(a), completeness(b)
	if scoreA != scoreB {
		return scoreA > scoreB
	}
	fieldsA, fieldsB := populatedFields(a), populatedFields(b)
	if fieldsA != fieldsB {
		return fieldsA > fieldsB
	}
	if !a.Date.Equal(b.Date) {
		return a.Date.After(b.Date)
	}
	return a.ID < b.ID
}

func completeness(tx ledger.Transaction) int {
	score := 0
	if tx.Merchant() != "" {
		score++
	}
	if tx.IsCategorized() {
		score++
	}
	if tx.HasDescription() {
		score++
	}
	return score
}

func populatedFields(tx ledger.Transaction) int {
	count := 0
	if tx.MerchantName != nil {
		count++
	}
	if tx.Description != nil {
		count++
	}
	if tx.Category != "" {
		count++
	}
	if tx.ExternalID != "" {
		count++
	}
	if tx.Currency != "" {
		count++
	}
	return count
}
