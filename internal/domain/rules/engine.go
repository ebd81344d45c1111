// Package rules evaluates household splitting rules against transactions.
//
// Rules are matched in priority order (lower number first). Merchant
// patterns are user-supplied regexes and pass an admission gate before
// they are ever compiled; an unsafe or invalid pattern is treated as a
// non-match, never as permission to run it anyway.
package rules

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/vishalnatekar/myfinancepal/internal/domain/ledger"
)

// Config holds rule engine tuning parameters.
type Config struct {
	// MaxPatternLength caps merchant-pattern length at the admission
	// gate. Default: 200.
	MaxPatternLength int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxPatternLength: DefaultMaxPatternLength,
	}
}

// Engine evaluates splitting rules. It holds no mutable state, so a
// single instance is safe for concurrent callers.
type Engine struct {
	config Config
	logger *slog.Logger
}

// NewEngine creates a rule engine. A nil logger falls back to slog.Default().
func NewEngine(config Config, logger *slog.Logger) *Engine {
	if config.MaxPatternLength <= 0 {
		config.MaxPatternLength = DefaultMaxPatternLength
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{config: config, logger: logger}
}

// FindMatchingRule returns the first active rule, in priority order,
// that matches the transaction. A nil result means no rule matched and
// the transaction needs manual categorization.
func (e *Engine) FindMatchingRule(tx ledger.Transaction, ruleSet []SplittingRule) *SplittingRule {
	for _, rule := range sortActive(ruleSet) {
		if e.RuleMatches(rule, tx) {
			matched := rule
			return &matched
		}
	}
	return nil
}

// MatchAll evaluates every active rule against the transaction and
// returns the winner plus the full priority-ordered list of matches,
// for rule debugging in the dashboard.
func (e *Engine) MatchAll(tx ledger.Transaction, ruleSet []SplittingRule) MatchResult {
	result := MatchResult{}
	for _, rule := range sortActive(ruleSet) {
		if !e.RuleMatches(rule, tx) {
			continue
		}
		if result.Rule == nil {
			winner := rule
			result.Rule = &winner
		}
		result.Matches = append(result.Matches, RuleMatch{Rule: rule, Priority: rule.Priority})
	}
	return result
}

// RuleMatches reports whether a single rule matches a transaction.
func (e *Engine) RuleMatches(rule SplittingRule, tx ledger.Transaction) bool {
	switch rule.Type {
	case RuleTypeMerchant:
		return e.merchantMatches(rule, tx)
	case RuleTypeCategory:
		return strings.EqualFold(rule.CategoryMatch, tx.Category)
	case RuleTypeAmountThreshold:
		amount := tx.AbsAmount()
		if rule.MinAmount != nil && amount < *rule.MinAmount {
			return false
		}
		if rule.MaxAmount != nil && amount > *rule.MaxAmount {
			return false
		}
		return true
	case RuleTypeDefault:
		return true
	default:
		// Upstream validation should make this unreachable.
		e.logger.Warn("unrecognized rule type, treating as non-match",
			"rule_id", rule.ID,
			"rule_type", string(rule.Type),
		)
		return false
	}
}

// TestDraftRule evaluates a not-yet-saved rule against a transaction for
// preview-before-save. It goes through RuleMatches so preview and
// production evaluation can never drift.
func (e *Engine) TestDraftRule(draft DraftRule, tx ledger.Transaction) bool {
	return e.RuleMatches(SplittingRule{
		Type:            draft.Type,
		MerchantPattern: draft.MerchantPattern,
		CategoryMatch:   draft.CategoryMatch,
		MinAmount:       draft.MinAmount,
		MaxAmount:       draft.MaxAmount,
	}, tx)
}

// merchantMatches runs the admission gate, then a case-insensitive regex
// test against the merchant name. A rejected or invalid pattern is a
// non-match: merchant text is attacker-influenced, so the engine fails
// closed rather than executing a pattern the gate did not admit.
func (e *Engine) merchantMatches(rule SplittingRule, tx ledger.Transaction) bool {
	merchant := tx.Merchant()
	if merchant == "" {
		return false
	}

	if err := CheckPattern(rule.MerchantPattern, e.config.MaxPatternLength); err != nil {
		e.logger.Warn("merchant pattern rejected by admission gate",
			"rule_id", rule.ID,
			"error", err,
		)
		return false
	}

	re, err := regexp.Compile("(?i)" + rule.MerchantPattern)
	if err != nil {
		e.logger.Warn("merchant pattern failed to compile",
			"rule_id", rule.ID,
			"error", err,
		)
		return false
	}

	return re.MatchString(merchant)
}

// sortActive filters inactive rules and orders the rest by ascending
// priority, breaking ties on rule id so evaluation order is stable.
func sortActive(ruleSet []SplittingRule) []SplittingRule {
	active := make([]SplittingRule, 0, len(ruleSet))
	for _, rule := range ruleSet {
		if rule.IsActive {
			active = append(active, rule)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].Priority != active[j].Priority {
			return active[i].Priority < active[j].Priority
		}
		return active[i].ID < active[j].ID
	})
	return active
}
