package rules

import (
	"fmt"
	"regexp"
)

// ValidationIssue is one problem found in a rule configuration.
type ValidationIssue struct {
	Field   string
	Message string
}

func (v ValidationIssue) String() string {
	return v.Field + ": " + v.Message
}

// ValidationReport collects every problem with a rule configuration so
// the dashboard can show them all at once instead of one per save
// attempt.
type ValidationReport struct {
	IsValid bool
	Issues  []ValidationIssue
}

// ValidateRule validates a rule under the engine's configured limits.
func (e *Engine) ValidateRule(rule SplittingRule) ValidationReport {
	return ValidateRuleConfiguration(rule, e.config.MaxPatternLength)
}

// ValidateRuleConfiguration statically validates a rule, independent of
// any transaction. Violations are collected, not short-circuited.
func ValidateRuleConfiguration(rule SplittingRule, maxPatternLength int) ValidationReport {
	var issues []ValidationIssue
	add := func(field, format string, args ...any) {
		issues = append(issues, ValidationIssue{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	switch rule.Type {
	case RuleTypeMerchant:
		if rule.MerchantPattern == "" {
			add("merchant_pattern", "required for merchant rules")
		} else if err := CheckPattern(rule.MerchantPattern, maxPatternLength); err != nil {
			add("merchant_pattern", "%v", err)
		} else if _, err := regexp.Compile("(?i)" + rule.MerchantPattern); err != nil {
			add("merchant_pattern", "does not compile: %v", err)
		}
	case RuleTypeCategory:
		if rule.CategoryMatch == "" {
			add("category_match", "required for category rules")
		}
	case RuleTypeAmountThreshold:
		if rule.MinAmount == nil {
			add("min_amount", "required for amount_threshold rules")
		}
		if rule.MinAmount != nil && *rule.MinAmount < 0 {
			add("min_amount", "must not be negative")
		}
		if rule.MinAmount != nil && rule.MaxAmount != nil && *rule.MaxAmount <= *rule.MinAmount {
			add("max_amount", "must be greater than min_amount")
		}
	case RuleTypeDefault:
		// No type-specific fields.
	default:
		add("rule_type", "unrecognized rule type %q", string(rule.Type))
	}

	validateSplit(rule.SplitPercentage, add)

	return ValidationReport{IsValid: len(issues) == 0, Issues: issues}
}

func validateSplit(split map[string]int, add func(field, format string, args ...any)) {
	if len(split) == 0 {
		add("split_percentage", "must name at least one household member")
		return
	}

	sum := 0
	anyPositive := false
	for member, percent := range split {
		if percent < 0 || percent > 100 {
			add("split_percentage", "share for %s must be between 0 and 100, got %d", member, percent)
		}
		if percent > 0 {
			anyPositive = true
		}
		sum += percent
	}

	if sum != 100 {
		add("split_percentage", "shares must sum to exactly 100, got %d", sum)
	}
	if !anyPositive {
		add("split_percentage", "at least one share must be greater than zero")
	}
}
