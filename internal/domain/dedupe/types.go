package dedupe

import (
	"github.com/vishalnatekar/myfinancepal/internal/domain/ledger"
)

// ClusterConfidence grades how certain the engine is that a cluster's
// members are the same real-world transaction.
type ClusterConfidence string

const (
	// ConfidenceHigh means the members share an exact fingerprint.
	ConfidenceHigh ClusterConfidence = "high"
	// ConfidenceMedium means fuzzy agreement comfortably above threshold.
	ConfidenceMedium ClusterConfidence = "medium"
	// ConfidenceLow means fuzzy agreement barely above threshold.
	ConfidenceLow ClusterConfidence = "low"
)

// ClusterEntry is one transaction's membership in a duplicate cluster.
type ClusterEntry struct {
	TransactionID string
	Fingerprint   string
	Transaction   ledger.Transaction
}

// DuplicateCluster groups two or more transactions judged to represent
// the same real-world event. Entries are ordered by date, then id, so a
// cluster's shape is deterministic regardless of input order.
type DuplicateCluster struct {
	ID         string
	Entries    []ClusterEntry
	Confidence ClusterConfidence
}

// TransactionIDs returns the cluster's member ids in entry order.
func (c DuplicateCluster) TransactionIDs() []string {
	ids := make([]string, 0, len(c.Entries))
	for _, entry := range c.Entries {
		ids = append(ids, entry.TransactionID)
	}
	return ids
}

// DetectionResult is the outcome of checking one candidate against a set
// of existing transactions.
type DetectionResult struct {
	IsDuplicate     bool
	DuplicateOf     string
	SimilarityScore float64
}

// ResolutionStrategy selects the policy applied to a cluster.
type ResolutionStrategy string

const (
	// KeepLatest keeps the member with the most recent date.
	KeepLatest ResolutionStrategy = "keep_latest"
	// KeepOldest keeps the member with the earliest date.
	KeepOldest ResolutionStrategy = "keep_oldest"
	// FlagForReview sends every member to human review.
	FlagForReview ResolutionStrategy = "flag"
	// MergeMostComplete keeps the member with the richest data.
	MergeMostComplete ResolutionStrategy = "merge"
)

// ResolutionDecision partitions a cluster's transaction ids into three
// disjoint sets. Every member lands in exactly one set.
type ResolutionDecision struct {
	Keep   []string
	Remove []string
	Flag   []string
}
