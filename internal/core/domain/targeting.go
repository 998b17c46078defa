package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

var (
	// ErrUnknownRuleKind is returned by ParseCondition for rule types the
	// matcher has no predicate for. Callers drop such rules.
	ErrUnknownRuleKind = errors.New("unknown targeting rule kind")
	// ErrInvalidRule is returned when a known rule kind carries a payload
	// that cannot be decoded.
	ErrInvalidRule = errors.New("invalid targeting rule")
)

// RuleKind is the type tag stored alongside a rule payload.
type RuleKind string

const (
	RuleKindGeo    RuleKind = "geo"
	RuleKindDevice RuleKind = "device"
)

// Condition is the validated payload of a targeting rule. The set of
// implementations is closed: GeoCondition and DeviceCondition.
type Condition interface {
	Kind() RuleKind
}

// GeoCondition matches when the user's country is one of Countries or the
// user's city is one of Cities. Comparisons are exact.
type GeoCondition struct {
	Countries []string `json:"countries"`
	Cities    []string `json:"cities"`
}

func (GeoCondition) Kind() RuleKind { return RuleKindGeo }

// DeviceCondition matches when every non-empty list matches the user's
// device. OS and Browsers are exact, Devices are substrings of the device
// model. All values are lower-cased at parse time.
type DeviceCondition struct {
	OS       []string `json:"os"`
	Browsers []string `json:"browser"`
	Devices  []string `json:"device"`
}

func (DeviceCondition) Kind() RuleKind { return RuleKindDevice }

// TargetingRule belongs to one campaign. Include=false inverts the
// condition's result.
type TargetingRule struct {
	ID         int64
	CampaignID int64
	Include    bool
	Condition  Condition
}

// ParseCondition decodes a raw rule payload into its typed condition.
func ParseCondition(kind string, raw []byte) (Condition, error) {
	switch RuleKind(strings.ToLower(strings.TrimSpace(kind))) {
	case RuleKindGeo:
		var c GeoCondition
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("%w: geo: %v", ErrInvalidRule, err)
		}
		return c, nil
	case RuleKindDevice:
		var c DeviceCondition
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("%w: device: %v", ErrInvalidRule, err)
		}
		c.OS = lowerAll(c.OS)
		c.Browsers = lowerAll(c.Browsers)
		c.Devices = lowerAll(c.Devices)
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRuleKind, kind)
	}
}

func lowerAll(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}
