package ident

import (
	"fmt"
	"strings"
)

// Policy selects how an identifier is matched against text.
type Policy string

const (
	// PolicySubstring treats any case-insensitive occurrence of the id as a
	// reference. An id that is a substring of an unrelated id is therefore
	// considered referenced wherever the longer id appears.
	PolicySubstring Policy = "substring"
	// PolicyExact only counts the id when it forms a complete JSON string
	// token, i.e. it is immediately wrapped in double quotes.
	PolicyExact Policy = "exact"
)

// ParsePolicy validates a policy name. Empty selects PolicySubstring.
func ParsePolicy(value string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(value))) {
	case "", PolicySubstring:
		return PolicySubstring, nil
	case PolicyExact:
		return PolicyExact, nil
	default:
		return "", fmt.Errorf("unsupported reference policy %q (supported: substring, exact)", value)
	}
}

// References reports whether id occurs in blob as a case-insensitive substring.
func References(blob, id string) bool {
	return NewText(blob, PolicySubstring).References(id)
}

// Text is a lowered blob prepared for repeated reference checks.
type Text struct {
	lower  string
	policy Policy
}

// NewText prepares blob for lookups under policy.
func NewText(blob string, policy Policy) *Text {
	if policy == "" {
		policy = PolicySubstring
	}
	return &Text{lower: strings.ToLower(blob), policy: policy}
}

// References reports whether id is referenced by the prepared text.
func (t *Text) References(id string) bool {
	if t == nil {
		return false
	}
	needle := strings.ToLower(id)
	if t.policy == PolicyExact {
		needle = `"` + needle + `"`
	}
	return strings.Contains(t.lower, needle)
}

// ContainsAny reports whether any id occurs in blob as a case-insensitive substring.
func ContainsAny(blob string, ids []string) bool {
	lower := strings.ToLower(blob)
	for _, id := range ids {
		if strings.Contains(lower, strings.ToLower(id)) {
			return true
		}
	}
	return false
}
