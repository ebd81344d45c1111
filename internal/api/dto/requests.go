// Package dto defines the request and response shapes of the compute
// API and their mapping to domain types. The API is stateless: every
// request carries the full snapshot of transactions and rules it wants
// evaluated.
package dto

import (
	"fmt"
	"time"

	"github.com/vishalnatekar/myfinancepal/internal/domain/ledger"
	"github.com/vishalnatekar/myfinancepal/internal/domain/rules"
)

// Transaction is the wire form of a bank transaction.
type Transaction struct {
	ID           string  `json:"id" binding:"required"`
	AccountID    string  `json:"account_id" binding:"required"`
	ExternalID   string  `json:"external_id"`
	Amount       float64 `json:"amount"`
	MerchantName *string `json:"merchant_name"`
	Category     string  `json:"category"`
	Date         string  `json:"date" binding:"required"`
	Description  *string `json:"description"`
	Currency     string  `json:"currency"`
}

// ToDomain converts a wire transaction, parsing its calendar date.
func (t Transaction) ToDomain() (ledger.Transaction, error) {
	date, err := time.Parse("2006-01-02", t.Date)
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("transaction %s: invalid date %q (want YYYY-MM-DD)", t.ID, t.Date)
	}
	return ledger.Transaction{
		ID:           t.ID,
		AccountID:    t.AccountID,
		ExternalID:   t.ExternalID,
		Amount:       t.Amount,
		MerchantName: t.MerchantName,
		Category:     t.Category,
		Date:         date,
		Description:  t.Description,
		Currency:     t.Currency,
	}, nil
}

// TransactionsToDomain converts a slice of wire transactions.
func TransactionsToDomain(txs []Transaction) ([]ledger.Transaction, error) {
	out := make([]ledger.Transaction, 0, len(txs))
	for _, tx := range txs {
		domain, err := tx.ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, domain)
	}
	return out, nil
}

// SplittingRule is the wire form of a stored rule.
type SplittingRule struct {
	ID              string         `json:"id" binding:"required"`
	HouseholdID     string         `json:"household_id"`
	Name            string         `json:"rule_name"`
	Type            string         `json:"rule_type" binding:"required"`
	Priority        int            `json:"priority"`
	MerchantPattern string         `json:"merchant_pattern"`
	CategoryMatch   string         `json:"category_match"`
	MinAmount       *float64       `json:"min_amount"`
	MaxAmount       *float64       `json:"max_amount"`
	SplitPercentage map[string]int `json:"split_percentage"`
	IsActive        bool           `json:"is_active"`
}

// ToDomain converts a wire rule.
func (r SplittingRule) ToDomain() rules.SplittingRule {
	return rules.SplittingRule{
		ID:              r.ID,
		HouseholdID:     r.HouseholdID,
		Name:            r.Name,
		Type:            rules.RuleType(r.Type),
		Priority:        r.Priority,
		MerchantPattern: r.MerchantPattern,
		CategoryMatch:   r.CategoryMatch,
		MinAmount:       r.MinAmount,
		MaxAmount:       r.MaxAmount,
		SplitPercentage: r.SplitPercentage,
		IsActive:        r.IsActive,
	}
}

// RulesToDomain converts a slice of wire rules.
func RulesToDomain(in []SplittingRule) []rules.SplittingRule {
	out := make([]rules.SplittingRule, 0, len(in))
	for _, rule := range in {
		out = append(out, rule.ToDomain())
	}
	return out
}

// DraftRule carries the matching fields of an unsaved rule for preview.
type DraftRule struct {
	Type            string   `json:"rule_type" binding:"required"`
	MerchantPattern string   `json:"merchant_pattern"`
	CategoryMatch   string   `json:"category_match"`
	MinAmount       *float64 `json:"min_amount"`
	MaxAmount       *float64 `json:"max_amount"`
}

// ToDomain converts a wire draft rule.
func (d DraftRule) ToDomain() rules.DraftRule {
	return rules.DraftRule{
		Type:            rules.RuleType(d.Type),
		MerchantPattern: d.MerchantPattern,
		CategoryMatch:   d.CategoryMatch,
		MinAmount:       d.MinAmount,
		MaxAmount:       d.MaxAmount,
	}
}

// DetectRequest asks whether a candidate duplicates any existing
// transaction.
type DetectRequest struct {
	Candidate Transaction   `json:"candidate" binding:"required"`
	Existing  []Transaction `json:"existing"`
}

// BatchRequest asks for duplicate clusters across a whole batch.
type BatchRequest struct {
	Transactions []Transaction `json:"transactions" binding:"required"`
}

// ResolveRequest asks for a resolution decision over a cluster.
type ResolveRequest struct {
	Cluster  Cluster `json:"cluster" binding:"required"`
	Strategy string  `json:"strategy" binding:"required"`
}

// MatchRequest asks which rule wins for a transaction.
type MatchRequest struct {
	Transaction Transaction     `json:"transaction" binding:"required"`
	Rules       []SplittingRule `json:"rules"`
	// IncludeAllMatches requests the full ranked list for diagnostics.
	IncludeAllMatches bool `json:"include_all_matches"`
}

// TestRuleRequest previews an unsaved rule against a transaction.
type TestRuleRequest struct {
	Rule        DraftRule   `json:"rule" binding:"required"`
	Transaction Transaction `json:"transaction" binding:"required"`
}

// ValidateRequest checks a rule configuration before it is saved.
type ValidateRequest struct {
	Rule SplittingRule `json:"rule" binding:"required"`
}

// StatsRequest asks for match statistics over a batch.
type StatsRequest struct {
	Transactions []Transaction   `json:"transactions"`
	Rules        []SplittingRule `json:"rules"`
}
