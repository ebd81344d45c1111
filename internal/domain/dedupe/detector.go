package dedupe

import (
	"log/slog"
	"sort"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"github.com/vishalnatekar/myfinancepal/internal/domain/ledger"
)

// Similarity weights. Amount agreement dominates because two unrelated
// transactions at the same merchant are common; two unrelated transactions
// at the same merchant for the same amount within days of each other are not.
const (
	amountWeight   = 0.5
	merchantWeight = 0.3
	dateWeight     = 0.2
)

// Config holds detector tuning parameters.
type Config struct {
	// SimilarityThreshold separates duplicate from non-duplicate in the
	// fuzzy pass. Default: 0.85.
	SimilarityThreshold float64

	// DateWindowDays bounds how far apart two transactions' dates may be
	// for the fuzzy pass to consider them at all. Default: 3.
	DateWindowDays int

	// MediumConfidenceMargin is how far above the threshold a fuzzy
	// cluster's scores must sit to be graded medium rather than low
	// confidence. Default: 0.05.
	MediumConfidenceMargin float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		SimilarityThreshold:    0.85,
		DateWindowDays:         3,
		MediumConfidenceMargin: 0.05,
	}
}

// Detector finds duplicate transactions within and across sync batches.
type Detector struct {
	config Config
	logger *slog.Logger
}

// NewDetector creates a detector. A nil logger falls back to slog.Default().
func NewDetector(config Config, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{config: config, logger: logger}
}

// DetectDuplicate checks a candidate transaction against existing ones.
//
// The exact-fingerprint pass runs first: it catches the common case of a
// provider re-delivering an identical payload under a new external id,
// and costs one hash per transaction. Only when that fails does the
// fuzzy pass run, and only against transactions within the date window.
func (d *Detector) DetectDuplicate(candidate ledger.Transaction, existing []ledger.Transaction) DetectionResult {
	exact := Fingerprint(candidate)
	for _, tx := range existing {
		if Fingerprint(tx) == exact {
			return DetectionResult{
				IsDuplicate:     true,
				DuplicateOf:     tx.ID,
				SimilarityScore: 1.0,
			}
		}
	}

	fuzzy := FuzzyFingerprint(candidate)
	var bestID string
	var bestScore float64
	for _, tx := range existing {
		days := daysApart(candidate.Date, tx.Date)
		if days > d.config.DateWindowDays {
			continue
		}

		score := d.similarity(candidate, tx, fuzzy == FuzzyFingerprint(tx), days)
		if score < d.config.SimilarityThreshold {
			continue
		}
		if score > bestScore || (score == bestScore && tx.ID < bestID) {
			bestID = tx.ID
			bestScore = score
		}
	}

	if bestID == "" {
		return DetectionResult{}
	}

	d.logger.Debug("fuzzy duplicate detected",
		"candidate", candidate.ID,
		"duplicate_of", bestID,
		"score", bestScore,
	)

	return DetectionResult{
		IsDuplicate:     true,
		DuplicateOf:     bestID,
		SimilarityScore: bestScore,
	}
}

// FindDuplicatesInBatch groups a whole batch into duplicate clusters.
//
// Exact fingerprints are bucketed first, which is linear in the batch
// size; any bucket with two or more members becomes a high-confidence
// cluster. The quadratic fuzzy comparison then runs only over leftover
// singletons within the date window, which keeps cost manageable at
// realistic batch sizes (hundreds of transactions per sync).
//
// Transactions with no cluster membership are omitted; an empty result
// means the batch is clean.
func (d *Detector) FindDuplicatesInBatch(transactions []ledger.Transaction) []DuplicateCluster {
	buckets := make(map[string][]ledger.Transaction)
	order := make([]string, 0, len(transactions))
	for _, tx := range transactions {
		fp := Fingerprint(tx)
		if _, seen := buckets[fp]; !seen {
			order = append(order, fp)
		}
		buckets[fp] = append(buckets[fp], tx)
	}

	var clusters []DuplicateCluster
	var singletons []ledger.Transaction
	for _, fp := range order {
		members := buckets[fp]
		if len(members) < 2 {
			singletons = append(singletons, members[0])
			continue
		}
		clusters = append(clusters, d.newCluster(members, ConfidenceHigh))
	}

	clusters = append(clusters, d.fuzzyClusters(singletons)...)

	d.logger.Info("batch deduplication complete",
		"transactions", len(transactions),
		"clusters", len(clusters),
	)

	return clusters
}

// fuzzyClusters links singleton transactions whose pairwise similarity
// crosses the threshold, then unions the links into clusters.
func (d *Detector) fuzzyClusters(singletons []ledger.Transaction) []DuplicateCluster {
	if len(singletons) < 2 {
		return nil
	}

	sort.Slice(singletons, func(i, j int) bool {
		if !singletons[i].Date.Equal(singletons[j].Date) {
			return singletons[i].Date.Before(singletons[j].Date)
		}
		return singletons[i].ID < singletons[j].ID
	})

	fuzzies := make([]string, len(singletons))
	for i, tx := range singletons {
		fuzzies[i] = FuzzyFingerprint(tx)
	}

	parent := make([]int, len(singletons))
	for i := range parent {
		parent[i] = i
	}
	minScore := make(map[int]float64)

	for i := 0; i < len(singletons); i++ {
		for j := i + 1; j < len(singletons); j++ {
			days := daysApart(singletons[i].Date, singletons[j].Date)
			if days > d.config.DateWindowDays {
				break // sorted by date, later pairs only get further apart
			}
			score := d.similarity(singletons[i], singletons[j], fuzzies[i] == fuzzies[j], days)
			if score < d.config.SimilarityThreshold {
				continue
			}
			union(parent, minScore, i, j, score)
		}
	}

	groups := make(map[int][]ledger.Transaction)
	groupOrder := make([]int, 0)
	for i, tx := range singletons {
		root := find(parent, i)
		if _, seen := groups[root]; !seen {
			groupOrder = append(groupOrder, root)
		}
		groups[root] = append(groups[root], tx)
	}

	var clusters []DuplicateCluster
	for _, root := range groupOrder {
		members := groups[root]
		if len(members) < 2 {
			continue
		}
		confidence := ConfidenceLow
		if minScore[root] >= d.config.SimilarityThreshold+d.config.MediumConfidenceMargin {
			confidence = ConfidenceMedium
		}
		clusters = append(clusters, d.newCluster(members, confidence))
	}
	return clusters
}

// similarity scores how likely two transactions are the same event.
// Callers guarantee the pair is within the date window.
func (d *Detector) similarity(a, b ledger.Transaction, fuzzyMatch bool, days int) float64 {
	amountScore := 1.0
	if !fuzzyMatch {
		diff := ledger.RoundToCents(a.AbsAmount() - b.AbsAmount())
		if diff < 0 {
			diff = -diff
		}
		amountScore = 1.0 - diff/2.0
		if amountScore < 0 {
			amountScore = 0
		}
	}

	dateScore := 1.0 - float64(days)/float64(d.config.DateWindowDays+1)

	return amountWeight*amountScore +
		merchantWeight*merchantSimilarity(a.Merchant(), b.Merchant()) +
		dateWeight*dateScore
}

// merchantSimilarity scores merchant-name agreement in [0, 1]. A missing
// name on either side scores 0: amount and date alone cannot establish
// the same merchant.
func merchantSimilarity(a, b string) float64 {
	normA, normB := ledger.NormalizeMerchant(a), ledger.NormalizeMerchant(b)
	if normA == "" || normB == "" {
		return 0
	}
	if normA == normB {
		return 1.0
	}

	simpleA, simpleB := ledger.SimplifyMerchant(a), ledger.SimplifyMerchant(b)
	if simpleA == simpleB {
		return 0.9
	}

	dist := levenshtein.ComputeDistance(simpleA, simpleB)
	maxLen := len(simpleA)
	if len(simpleB) > maxLen {
		maxLen = len(simpleB)
	}
	if maxLen == 0 {
		return 0
	}
	ratio := 1.0 - float64(dist)/float64(maxLen)
	if ratio < 0.5 {
		return 0
	}
	return ratio * 0.85
}

func (d *Detector) newCluster(members []ledger.Transaction, confidence ClusterConfidence) DuplicateCluster {
	sort.Slice(members, func(i, j int) bool {
		if !members[i].Date.Equal(members[j].Date) {
			return members[i].Date.Before(members[j].Date)
		}
		return members[i].ID < members[j].ID
	})

	entries := make([]ClusterEntry, 0, len(members))
	for _, tx := range members {
		entries = append(entries, ClusterEntry{
			TransactionID: tx.ID,
			Fingerprint:   Fingerprint(tx),
			Transaction:   tx,
		})
	}

	return DuplicateCluster{
		ID:         uuid.NewString(),
		Entries:    entries,
		Confidence: confidence,
	}
}

func daysApart(a, b time.Time) int {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return int(d.Hours() / 24)
}

func find(parent []int, i int) int {
	for parent[i] != i {
		parent[i] = parent[parent[i]]
		i = parent[i]
	}
	return i
}

func union(parent []int, minScore map[int]float64, i, j int, score float64) {
	rootI, rootJ := find(parent, i), find(parent, j)
	merged := score
	if s, ok := minScore[rootI]; ok && s < merged {
		merged = s
	}
	if rootI != rootJ {
		if s, ok := minScore[rootJ]; ok && s < merged {
			merged = s
		}
		parent[rootJ] = rootI
		delete(minScore, rootJ)
	}
	minScore[rootI] = merged
}
