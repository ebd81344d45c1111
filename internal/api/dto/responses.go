package dto

import (
	"time"

	"github.com/vishalnatekar/myfinancepal/internal/domain/dedupe"
	"github.com/vishalnatekar/myfinancepal/internal/domain/ledger"
	"github.com/vishalnatekar/myfinancepal/internal/domain/rules"
)

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewHealthResponse builds a healthy response stamped with the current time.
func NewHealthResponse() HealthResponse {
	return HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// DetectResponse reports a single-candidate duplicate check.
type DetectResponse struct {
	IsDuplicate     bool    `json:"is_duplicate"`
	DuplicateOf     string  `json:"duplicate_of,omitempty"`
	SimilarityScore float64 `json:"similarity_score"`
}

// FromDetection converts a domain detection result.
func FromDetection(result dedupe.DetectionResult) DetectResponse {
	return DetectResponse{
		IsDuplicate:     result.IsDuplicate,
		DuplicateOf:     result.DuplicateOf,
		SimilarityScore: result.SimilarityScore,
	}
}

// ClusterEntry is one transaction's membership in a wire cluster.
type ClusterEntry struct {
	TransactionID string      `json:"transaction_id"`
	Fingerprint   string      `json:"fingerprint"`
	Transaction   Transaction `json:"transaction"`
}

// Cluster is the wire form of a duplicate cluster. It round-trips: batch
// responses carry it out and resolve requests carry it back in.
type Cluster struct {
	ID         string         `json:"cluster_id"`
	Confidence string         `json:"confidence"`
	Entries    []ClusterEntry `json:"entries"`
}

// ToDomain converts a wire cluster back to the domain form.
func (c Cluster) ToDomain() (dedupe.DuplicateCluster, error) {
	cluster := dedupe.DuplicateCluster{
		ID:         c.ID,
		Confidence: dedupe.ClusterConfidence(c.Confidence),
		Entries:    make([]dedupe.ClusterEntry, 0, len(c.Entries)),
	}
	for _, entry := range c.Entries {
		tx, err := entry.Transaction.ToDomain()
		if err != nil {
			return dedupe.DuplicateCluster{}, err
		}
		cluster.Entries = append(cluster.Entries, dedupe.ClusterEntry{
			TransactionID: entry.TransactionID,
			Fingerprint:   entry.Fingerprint,
			Transaction:   tx,
		})
	}
	return cluster, nil
}

// FromCluster converts a domain cluster to the wire form.
func FromCluster(cluster dedupe.DuplicateCluster) Cluster {
	out := Cluster{
		ID:         cluster.ID,
		Confidence: string(cluster.Confidence),
		Entries:    make([]ClusterEntry, 0, len(cluster.Entries)),
	}
	for _, entry := range cluster.Entries {
		out.Entries = append(out.Entries, ClusterEntry{
			TransactionID: entry.TransactionID,
			Fingerprint:   entry.Fingerprint,
			Transaction:   fromTransaction(entry.Transaction),
		})
	}
	return out
}

func fromTransaction(tx ledger.Transaction) Transaction {
	return Transaction{
		ID:           tx.ID,
		AccountID:    tx.AccountID,
		ExternalID:   tx.ExternalID,
		Amount:       tx.Amount,
		MerchantName: tx.MerchantName,
		Category:     tx.Category,
		Date:         tx.Date.Format("2006-01-02"),
		Description:  tx.Description,
		Currency:     tx.Currency,
	}
}

// BatchResponse lists the duplicate clusters found in a batch.
type BatchResponse struct {
	Clusters []Cluster `json:"clusters"`
}

// ResolveResponse is the keep/remove/flag partition for a cluster.
type ResolveResponse struct {
	Keep   []string `json:"keep"`
	Remove []string `json:"remove"`
	Flag   []string `json:"flag"`
}

// RuleSummary identifies a rule in match responses.
type RuleSummary struct {
	ID       string `json:"id"`
	Name     string `json:"rule_name"`
	Type     string `json:"rule_type"`
	Priority int    `json:"priority"`
}

// MatchResponse reports the winning rule for a transaction, if any.
type MatchResponse struct {
	Matched bool          `json:"matched"`
	Rule    *RuleSummary  `json:"rule,omitempty"`
	Matches []RuleSummary `json:"matches,omitempty"`
}

// FromMatchResult converts a domain match result.
func FromMatchResult(result rules.MatchResult, includeAll bool) MatchResponse {
	resp := MatchResponse{Matched: result.Rule != nil}
	if result.Rule != nil {
		summary := ruleSummary(*result.Rule)
		resp.Rule = &summary
	}
	if includeAll {
		for _, match := range result.Matches {
			resp.Matches = append(resp.Matches, ruleSummary(match.Rule))
		}
	}
	return resp
}

func ruleSummary(rule rules.SplittingRule) RuleSummary {
	return RuleSummary{
		ID:       rule.ID,
		Name:     rule.Name,
		Type:     string(rule.Type),
		Priority: rule.Priority,
	}
}

// TestRuleResponse reports a draft-rule preview.
type TestRuleResponse struct {
	Matches bool `json:"matches"`
}

// ValidationIssue is one problem in a rule configuration.
type ValidationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateResponse reports every problem found in a rule configuration.
type ValidateResponse struct {
	IsValid bool              `json:"is_valid"`
	Errors  []ValidationIssue `json:"errors"`
}

// FromValidationReport converts a domain validation report.
func FromValidationReport(report rules.ValidationReport) ValidateResponse {
	resp := ValidateResponse{IsValid: report.IsValid, Errors: []ValidationIssue{}}
	for _, issue := range report.Issues {
		resp.Errors = append(resp.Errors, ValidationIssue{
			Field:   issue.Field,
			Message: issue.Message,
		})
	}
	return resp
}

// StatsResponse tallies rule-match outcomes over a batch.
type StatsResponse struct {
	Total         int            `json:"total"`
	Matched       int            `json:"matched"`
	Unmatched     int            `json:"unmatched"`
	MatchesByRule map[string]int `json:"matches_by_rule"`
}

// FromStatistics converts domain match statistics.
func FromStatistics(stats rules.MatchStatistics) StatsResponse {
	return StatsResponse{
		Total:         stats.Total,
		Matched:       stats.Matched,
		Unmatched:     stats.Unmatched,
		MatchesByRule: stats.MatchesByRule,
	}
}
