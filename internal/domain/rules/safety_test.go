package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckPattern_AcceptsPlainPatterns(t *testing.T) {
	patterns := []string{
		"tesco",
		"^amazon( prime)?$",
		"uber|bolt|lyft",
		`netflix\.com`,
		"sainsbury's (local|superstore)",
		"a+b*c?",
	}

	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			assert.NoError(t, CheckPattern(pattern, DefaultMaxPatternLength))
		})
	}
}

func TestCheckPattern_RejectsOversizedPattern(t *testing.T) {
	pattern := strings.Repeat("a", 250)

	err := CheckPattern(pattern, DefaultMaxPatternLength)

	assert.ErrorContains(t, err, "exceeds limit")
}

func TestCheckPattern_RejectsNestedQuantifiers(t *testing.T) {
	patterns := []string{
		"(a+)+$",
		"(a*)*",
		"(x+y+)+z",
		"([a-z]+)*",
		"(a{2,})+",
	}

	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			err := CheckPattern(pattern, DefaultMaxPatternLength)
			assert.ErrorContains(t, err, "nested quantifiers")
		})
	}
}

func TestCheckPattern_RejectsSyntaxErrors(t *testing.T) {
	err := CheckPattern("(unclosed", DefaultMaxPatternLength)

	assert.ErrorContains(t, err, "invalid pattern")
}

func TestCheckPattern_ZeroLimitUsesDefault(t *testing.T) {
	assert.NoError(t, CheckPattern(strings.Repeat("a", 150), 0))
	assert.Error(t, CheckPattern(strings.Repeat("a", 250), 0))
}
