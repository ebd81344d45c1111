package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishalnatekar/myfinancepal/internal/domain/ledger"
)

func makeCluster(confidence ClusterConfidence, txs ...ledger.Transaction) DuplicateCluster {
	detector := NewDetector(DefaultConfig(), nil)
	return detector.newCluster(txs, confidence)
}

func TestResolveDuplicates_KeepLatest(t *testing.T) {
	cluster := makeCluster(ConfidenceHigh,
		makeTransaction("tx1", -25.50, testDay, "Tesco"),
		makeTransaction("tx2", -25.50, testDay.AddDate(0, 0, 1), "Tesco"),
		makeTransaction("tx3", -25.50, testDay.AddDate(0, 0, 2), "Tesco"),
	)

	decision := ResolveDuplicates(cluster, KeepLatest)

	assert.Equal(t, []string{"tx3"}, decision.Keep)
	assert.Equal(t, []string{"tx1", "tx2"}, decision.Remove)
	assert.Empty(t, decision.Flag)
}

func TestResolveDuplicates_KeepOldest(t *testing.T) {
	cluster := makeCluster(ConfidenceHigh,
		makeTransaction("tx1", -25.50, testDay.AddDate(0, 0, 2), "Tesco"),
		makeTransaction("tx2", -25.50, testDay, "Tesco"),
	)

	decision := ResolveDuplicates(cluster, KeepOldest)

	assert.Equal(t, []string{"tx2"}, decision.Keep)
	assert.Equal(t, []string{"tx1"}, decision.Remove)
}

func TestResolveDuplicates_DateTieBreaksOnSmallestID(t *testing.T) {
	cluster := makeCluster(ConfidenceHigh,
		makeTransaction("tx2", -25.50, testDay, "Tesco"),
		makeTransaction("tx1", -25.50, testDay, "Tesco"),
	)

	latest := ResolveDuplicates(cluster, KeepLatest)
	oldest := ResolveDuplicates(cluster, KeepOldest)

	assert.Equal(t, []string{"tx1"}, latest.Keep)
	assert.Equal(t, []string{"tx1"}, oldest.Keep)
}

func TestResolveDuplicates_Flag(t *testing.T) {
	cluster := makeCluster(ConfidenceLow,
		makeTransaction("tx1", -25.50, testDay, "Tesco"),
		makeTransaction("tx2", -25.50, testDay, "Tesco"),
	)

	decision := ResolveDuplicates(cluster, FlagForReview)

	assert.Empty(t, decision.Keep)
	assert.Empty(t, decision.Remove)
	assert.ElementsMatch(t, []string{"tx1", "tx2"}, decision.Flag)
}

func TestResolveDuplicates_MergeKeepsMostComplete(t *testing.T) {
	bare := makeTransaction("tx1", -25.50, testDay.AddDate(0, 0, 1), "")

	rich := makeTransaction("tx2", -25.50, testDay, "Tesco")
	rich.Category = "Groceries"
	desc := "weekly shop"
	rich.Description = &desc

	cluster := makeCluster(ConfidenceHigh, bare, rich)

	decision := ResolveDuplicates(cluster, MergeMostComplete)

	assert.Equal(t, []string{"tx2"}, decision.Keep)
	assert.Equal(t, []string{"tx1"}, decision.Remove)
}

func TestResolveDuplicates_MergeCompletenessTieFallsBackToLatest(t *testing.T) {
	a := makeTransaction("tx1", -25.50, testDay, "Tesco")
	b := makeTransaction("tx2", -25.50, testDay.AddDate(0, 0, 1), "Tesco")

	cluster := makeCluster(ConfidenceHigh, a, b)

	decision := ResolveDuplicates(cluster, MergeMostComplete)

	assert.Equal(t, []string{"tx2"}, decision.Keep)
}

func TestResolveDuplicates_UnknownStrategyFlagsEverything(t *testing.T) {
	cluster := makeCluster(ConfidenceHigh,
		makeTransaction("tx1", -25.50, testDay, "Tesco"),
		makeTransaction("tx2", -25.50, testDay, "Tesco"),
	)

	decision := ResolveDuplicates(cluster, ResolutionStrategy("bogus"))

	assert.Empty(t, decision.Keep)
	assert.ElementsMatch(t, []string{"tx1", "tx2"}, decision.Flag)
}

func TestResolveDuplicates_PartitionInvariant(t *testing.T) {
	// Every member appears in exactly one of keep/remove/flag for every
	// strategy.
	cluster := makeCluster(ConfidenceHigh,
		makeTransaction("tx1", -25.50, testDay, "Tesco"),
		makeTransaction("tx2", -25.50, testDay.AddDate(0, 0, 1), ""),
		makeTransaction("tx3", -25.50, testDay.AddDate(0, 0, 2), "Tesco"),
	)

	strategies := []ResolutionStrategy{KeepLatest, KeepOldest, FlagForReview, MergeMostComplete}
	for _, strategy := range strategies {
		t.Run(string(strategy), func(t *testing.T) {
			decision := ResolveDuplicates(cluster, strategy)

			var all []string
			all = append(all, decision.Keep...)
			all = append(all, decision.Remove...)
			all = append(all, decision.Flag...)

			require.ElementsMatch(t, cluster.TransactionIDs(), all)

			if strategy != FlagForReview {
				assert.Len(t, decision.Keep, 1)
			}
		})
	}
}
