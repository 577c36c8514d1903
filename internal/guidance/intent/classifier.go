// Package intent assigns a coarse topic or safety label to a free-text
// question using an ordered chain of regular expressions.
package intent

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gloryco/thewell/internal/domain/guidance"
)

// Rule pairs a pattern with the intent it selects.
type Rule struct {
	Intent  guidance.Intent
	Pattern *regexp.Regexp
}

func (r Rule) Matches(lowered string) bool {
	return r.Pattern != nil && r.Pattern.MatchString(lowered)
}

// Classifier evaluates its rules top to bottom; the first match wins and no
// match yields IntentGeneral. It holds no mutable state.
type Classifier struct {
	rules []Rule
}

// New builds a classifier. The first rule must be the crisis rule so that a
// question touching both a crisis and another topic always escalates.
func New(rules []Rule) (*Classifier, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("intent: at least one rule required")
	}
	if rules[0].Intent != guidance.IntentCrisis {
		return nil, fmt.Errorf("intent: first rule must be %q, got %q", guidance.IntentCrisis, rules[0].Intent)
	}
	for i, r := range rules {
		if r.Pattern == nil {
			return nil, fmt.Errorf("intent: rule %d (%s) has no pattern", i, r.Intent)
		}
	}
	out := make([]Rule, len(rules))
	copy(out, rules)
	return &Classifier{rules: out}, nil
}

func mustNew(rules []Rule) *Classifier {
	c, err := New(rules)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Classifier) Classify(query string) guidance.Intent {
	s := strings.ToLower(query)
	if strings.TrimSpace(s) == "" {
		return guidance.IntentGeneral
	}
	for _, r := range c.rules {
		if r.Matches(s) {
			return r.Intent
		}
	}
	return guidance.IntentGeneral
}

// IsCrisis reports whether query trips the crisis rule regardless of any
// later rule.
func (c *Classifier) IsCrisis(query string) bool {
	return c.rules[0].Matches(strings.ToLower(query))
}

// Rules returns a copy of the rule chain in evaluation order.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}
