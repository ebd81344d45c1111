// Package ledger defines the shared transaction model used by the
// deduplication and rule-matching engines.
//
// Transactions arrive from the account-linking layer and are read-only
// here: the engines compute decisions over them but never mutate or
// persist them.
package ledger

import (
	"math"
	"strings"
	"time"
)

// Uncategorized is the sentinel category assigned to transactions that
// no rule has classified yet.
const Uncategorized = "Uncategorized"

// Transaction is a single bank transaction as delivered by a provider sync.
//
// ExternalID is the provider's transaction id. Providers re-deliver the
// same real-world transaction under fresh external ids, which is exactly
// what the dedupe engine exists to catch, so identity never depends on it.
type Transaction struct {
	ID           string
	AccountID    string
	ExternalID   string
	Amount       float64
	MerchantName *string
	Category     string
	Date         time.Time
	Description  *string
	Currency     string
}

// Merchant returns the merchant name, or "" when the provider sent none.
func (t Transaction) Merchant() string {
	if t.MerchantName == nil {
		return ""
	}
	return *t.MerchantName
}

// HasDescription reports whether the transaction carries a non-empty
// free-text description.
func (t Transaction) HasDescription() bool {
	return t.Description != nil && strings.TrimSpace(*t.Description) != ""
}

// IsCategorized reports whether the transaction has a real category,
// i.e. anything other than the uncategorized sentinel or blank.
func (t Transaction) IsCategorized() bool {
	return t.Category != "" && t.Category != Uncategorized
}

// AbsAmount returns the transaction amount with the sign stripped.
// Providers disagree on sign conventions for refunds and reversals, so
// identity and threshold checks work on magnitude.
func (t Transaction) AbsAmount() float64 {
	return math.Abs(t.Amount)
}

// DayKey returns the calendar date in YYYY-MM-DD form. Transactions are
// day-granular; any time-of-day component is provider noise.
func (t Transaction) DayKey() string {
	return t.Date.Format("2006-01-02")
}

// RoundToCents rounds an amount to 2 decimal places.
func RoundToCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// corporate suffixes that vary between statements for the same merchant
var merchantSuffixes = []string{
	"plc", "ltd", "ltd.", "inc", "inc.", "co", "co.", "store",
	"llc", "corp", "corp.", "company", "limited",
}

// NormalizeMerchant lowercases a merchant name and collapses runs of
// whitespace. This is the canonical form used for exact comparisons and
// fingerprinting.
func NormalizeMerchant(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// SimplifyMerchant reduces a merchant name to its loosest comparable
// form: lowercased, corporate suffixes stripped, punctuation removed,
// whitespace collapsed. "TESCO Stores Ltd" and "Tesco" simplify to the
// same string.
func SimplifyMerchant(name string) string {
	normalized := NormalizeMerchant(name)
	if normalized == "" {
		return ""
	}

	words := strings.Fields(normalized)
	for len(words) > 1 && isMerchantSuffix(words[len(words)-1]) {
		words = words[:len(words)-1]
	}

	var b strings.Builder
	for _, word := range words {
		for _, r := range word {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				b.WriteRune(r)
			}
		}
		b.WriteRune(' ')
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

func isMerchantSuffix(word string) bool {
	for _, suffix := range merchantSuffixes {
		if word == suffix {
			return true
		}
	}
	return false
}
