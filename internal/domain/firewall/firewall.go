// Package firewall classifies prompts before any credential or audit
// state is touched.
package firewall

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Reason is the rejection reason code reported to callers.
type Reason string

const (
	ReasonNone           Reason = ""
	ReasonTooLong        Reason = "too_long"
	ReasonBlockedPattern Reason = "blocked_pattern"
)

// Decision is the outcome of a single check. It is computed per request
// and not persisted.
type Decision struct {
	Admitted bool
	Reason   Reason
	// Pattern holds the matching policy source for blocked prompts.
	Pattern string
}

// Config configures the firewall.
type Config struct {
	MaxPromptLength int
	// Patterns are matched against the lower-cased prompt in order;
	// the first match determines the reported policy.
	Patterns []string
}

// Firewall is a pure function of its configuration: no state, no I/O.
type Firewall struct {
	maxLen   int
	policies []*regexp.Regexp
}

// New compiles the configured policies. A malformed pattern is a
// startup error.
func New(cfg Config) (*Firewall, error) {
	policies := make([]*regexp.Regexp, 0, len(cfg.Patterns))
	for _, raw := range cfg.Patterns {
		re, err := regexp.Compile(raw)
		if err != nil {
			return nil, fmt.Errorf("compile firewall pattern %q: %w", raw, err)
		}
		policies = append(policies, re)
	}
	return &Firewall{maxLen: cfg.MaxPromptLength, policies: policies}, nil
}

// Check classifies the prompt. Length is measured in characters before
// any normalization; pattern matching runs over the lower-cased prompt.
func (f *Firewall) Check(prompt string) Decision {
	if f.maxLen > 0 && utf8.RuneCountInString(prompt) > f.maxLen {
		return Decision{Reason: ReasonTooLong}
	}

	lowered := strings.ToLower(prompt)
	for _, re := range f.policies {
		if re.MatchString(lowered) {
			return Decision{Reason: ReasonBlockedPattern, Pattern: re.String()}
		}
	}

	return Decision{Admitted: true}
}
