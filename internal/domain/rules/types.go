package rules

// RuleType selects how a splitting rule matches transactions.
type RuleType string

const (
	// RuleTypeMerchant matches the merchant name against a regex.
	RuleTypeMerchant RuleType = "merchant"
	// RuleTypeCategory matches the category by case-insensitive equality.
	RuleTypeCategory RuleType = "category"
	// RuleTypeAmountThreshold matches the absolute amount against a range.
	RuleTypeAmountThreshold RuleType = "amount_threshold"
	// RuleTypeDefault matches everything; used as a lowest-priority catch-all.
	RuleTypeDefault RuleType = "default"
)

// SplittingRule is a household-defined policy that classifies a
// transaction and divides it among members by percentage.
//
// Rules are created and soft-deleted (IsActive=false) by the dashboard;
// the engine reads them and never writes them back. Which optional
// fields are required depends on Type; ValidateRuleConfiguration
// enforces that before a rule is saved.
type SplittingRule struct {
	ID          string
	HouseholdID string
	Name        string
	Type        RuleType
	Priority    int

	// MerchantPattern is a regex, required when Type is merchant.
	MerchantPattern string
	// CategoryMatch is required when Type is category.
	CategoryMatch string
	// MinAmount/MaxAmount bound abs(amount) when Type is amount_threshold.
	// A nil bound is unbounded on that side; at least MinAmount is required.
	MinAmount *float64
	MaxAmount *float64

	// SplitPercentage maps member id to integer percent; values must sum
	// to exactly 100 with at least one value above zero.
	SplitPercentage map[string]int

	IsActive bool
}

// DraftRule carries the matching fields of a rule that has not been
// saved yet. No id or household is needed to preview a match.
type DraftRule struct {
	Type            RuleType
	MerchantPattern string
	CategoryMatch   string
	MinAmount       *float64
	MaxAmount       *float64
}

// RuleMatch is one rule's entry in a full match report.
type RuleMatch struct {
	Rule     SplittingRule
	Priority int
}

// MatchResult reports the winning rule for a transaction, and optionally
// the full priority-ordered list of rules that matched, for diagnostics.
// A nil Rule means no rule matched and the transaction needs manual
// categorization; that is a normal outcome, not an error.
type MatchResult struct {
	Rule    *SplittingRule
	Matches []RuleMatch
}

// Application is the decision emitted for one transaction during bulk
// rule application. The caller translates it into persistence writes.
type Application struct {
	TransactionID string
	RuleID        string
	IsShared      bool
	// Attribution maps member id to their share of the transaction
	// amount, in currency units, carrying the transaction's sign.
	Attribution map[string]float64
}

// ApplyError records one transaction's failure during bulk application.
type ApplyError struct {
	TransactionID string
	Err           string
}

// ApplyReport summarises a bulk application run. Per-item failures are
// collected here instead of aborting the batch.
type ApplyReport struct {
	AppliedCount int
	TotalAmount  float64
	Errors       []ApplyError
}

// MatchStatistics tallies findMatchingRule outcomes over a batch.
type MatchStatistics struct {
	Total         int
	Matched       int
	Unmatched     int
	MatchesByRule map[string]int
}
