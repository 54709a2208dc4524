package strategy

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidSpec wraps every specification parse failure: malformed dates,
// unknown rule types, empty rule lists.
var ErrInvalidSpec = errors.New("invalid strategy spec")

const dateLayout = "2006-01-02"

// DefaultMetrics is used when the interchange document omits a metrics list.
var DefaultMetrics = []string{"cagr", "max_drawdown", "sharpe"}

// ruleJSON is the interchange shape shared by both rule kinds.
type ruleJSON struct {
	Type          string `json:"type"`
	FastMA        int    `json:"fast_ma,omitempty"`
	SlowMA        int    `json:"slow_ma,omitempty"`
	Direction     string `json:"direction,omitempty"`
	Window        int    `json:"window,omitempty"`
	Threshold     string `json:"threshold,omitempty"`
	Relation      string `json:"relation,omitempty"`
	LookaheadDays int    `json:"lookahead_days,omitempty"`
	DurationDays  int    `json:"duration_days,omitempty"`
}

type specJSON struct {
	Ticker          string     `json:"ticker"`
	StartDate       string     `json:"start_date"`
	EndDate         string     `json:"end_date"`
	EntryRules      []ruleJSON `json:"entry_rules"`
	ExitRules       []ruleJSON `json:"exit_rules"`
	Metrics         []string   `json:"metrics,omitempty"`
	EntrySequential bool       `json:"entry_sequential,omitempty"`
}

// ParseSpec decodes the JSON interchange format into a StrategySpec.
func ParseSpec(data []byte) (*StrategySpec, error) {
	var raw specJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}

	start, err := time.Parse(dateLayout, raw.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start_date %q", ErrInvalidSpec, raw.StartDate)
	}
	end, err := time.Parse(dateLayout, raw.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end_date %q", ErrInvalidSpec, raw.EndDate)
	}

	entryRules, err := parseRules(raw.EntryRules)
	if err != nil {
		return nil, err
	}
	exitRules, err := parseRules(raw.ExitRules)
	if err != nil {
		return nil, err
	}

	if len(entryRules) == 0 {
		return nil, fmt.Errorf("%w: at least one entry rule is required", ErrInvalidSpec)
	}
	if len(exitRules) == 0 {
		return nil, fmt.Errorf("%w: at least one exit rule is required", ErrInvalidSpec)
	}

	metrics := raw.Metrics
	if len(metrics) == 0 {
		metrics = append([]string(nil), DefaultMetrics...)
	}

	return &StrategySpec{
		Ticker:          strings.ToUpper(strings.TrimSpace(raw.Ticker)),
		StartDate:       start,
		EndDate:         end,
		EntryRules:      entryRules,
		ExitRules:       exitRules,
		Metrics:         metrics,
		EntrySequential: raw.EntrySequential,
	}, nil
}

func parseRules(raws []ruleJSON) ([]Rule, error) {
	rules := make([]Rule, 0, len(raws))
	for _, raw := range raws {
		rule, err := parseRule(raw)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func parseRule(raw ruleJSON) (Rule, error) {
	switch RuleType(raw.Type) {
	case RuleTypeCrossover:
		return CrossoverRule{
			FastMA:    raw.FastMA,
			SlowMA:    raw.SlowMA,
			Direction: Direction(raw.Direction),
			Lookahead: raw.LookaheadDays,
			Duration:  raw.DurationDays,
		}, nil
	case RuleTypeVolFilter:
		threshold := raw.Threshold
		if threshold == "" {
			threshold = ThresholdMedian1Y
		}
		relation := Relation(raw.Relation)
		if relation == "" {
			relation = RelationBelow
		}
		return VolFilterRule{
			Window:    raw.Window,
			Threshold: threshold,
			Relation:  relation,
			Lookahead: raw.LookaheadDays,
			Duration:  raw.DurationDays,
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown rule type %q", ErrInvalidSpec, raw.Type)
	}
}

// MarshalJSON emits the interchange format. ParseSpec(json.Marshal(s)) yields
// an equivalent spec.
func (s StrategySpec) MarshalJSON() ([]byte, error) {
	raw := specJSON{
		Ticker:          s.Ticker,
		StartDate:       s.StartDate.Format(dateLayout),
		EndDate:         s.EndDate.Format(dateLayout),
		EntryRules:      encodeRules(s.EntryRules),
		ExitRules:       encodeRules(s.ExitRules),
		Metrics:         s.Metrics,
		EntrySequential: s.EntrySequential,
	}
	return json.Marshal(raw)
}

func encodeRules(rules []Rule) []ruleJSON {
	raws := make([]ruleJSON, 0, len(rules))
	for _, rule := range rules {
		raws = append(raws, encodeRule(rule))
	}
	return raws
}

func encodeRule(rule Rule) ruleJSON {
	raw := ruleJSON{
		Type:          string(rule.Type()),
		LookaheadDays: rule.LookaheadDays(),
		DurationDays:  rule.DurationDays(),
	}
	switch r := rule.(type) {
	case CrossoverRule:
		raw.FastMA = r.FastMA
		raw.SlowMA = r.SlowMA
		raw.Direction = string(r.Direction)
	case VolFilterRule:
		raw.Window = r.Window
		raw.Threshold = r.Threshold
		raw.Relation = string(r.Relation)
	}
	return raw
}
