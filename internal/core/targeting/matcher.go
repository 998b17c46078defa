// Package targeting evaluates campaign targeting rules against a request's
// user context. It performs no I/O and holds no state, so a Matcher is safe
// for concurrent use.
package targeting

import (
	"slices"
	"strings"

	"mesa-decision/internal/core/domain"
)

// Matcher decides whether a user context satisfies a campaign's rules.
type Matcher struct{}

// NewMatcher returns a Matcher.
func NewMatcher() Matcher {
	return Matcher{}
}

// Match reports whether user passes every rule. Rules are ANDed; an empty
// rule set is unrestricted. A rule whose condition the matcher does not
// know is treated as passing.
func (Matcher) Match(rules []domain.TargetingRule, user domain.UserContext) bool {
	for _, rule := range rules {
		if !matchRule(rule, user) {
			return false
		}
	}
	return true
}

func matchRule(rule domain.TargetingRule, user domain.UserContext) bool {
	var matched bool
	switch c := rule.Condition.(type) {
	case domain.GeoCondition:
		matched = matchGeo(c, user)
	case domain.DeviceCondition:
		matched = matchDevice(c, user)
	default:
		return true
	}
	return matched == rule.Include
}

func matchGeo(c domain.GeoCondition, user domain.UserContext) bool {
	if user.Country != "" && slices.Contains(c.Countries, user.Country) {
		return true
	}
	if user.City != "" && slices.Contains(c.Cities, user.City) {
		return true
	}
	return false
}

// matchDevice requires every sub-condition the rule specifies to hold.
// Rule values are already lower-cased.
func matchDevice(c domain.DeviceCondition, user domain.UserContext) bool {
	if len(c.OS) > 0 {
		if user.OS == "" || !slices.Contains(c.OS, strings.ToLower(user.OS)) {
			return false
		}
	}
	if len(c.Browsers) > 0 {
		if user.Browser == "" || !slices.Contains(c.Browsers, strings.ToLower(user.Browser)) {
			return false
		}
	}
	if len(c.Devices) > 0 {
		if user.Device == "" {
			return false
		}
		model := strings.ToLower(user.Device)
		if !slices.ContainsFunc(c.Devices, func(d string) bool { return strings.Contains(model, d) }) {
			return false
		}
	}
	return true
}
