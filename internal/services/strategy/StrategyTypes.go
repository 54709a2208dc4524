package strategy

import "time"

// RuleType discriminates the closed set of rule kinds.
type RuleType string

const (
	RuleTypeCrossover RuleType = "crossover"
	RuleTypeVolFilter RuleType = "vol_filter"
)

// Direction of a moving-average comparison: "above" means fast MA > slow MA.
type Direction string

const (
	DirectionAbove Direction = "above"
	DirectionBelow Direction = "below"
)

// Relation of realized volatility to its threshold.
type Relation string

const (
	RelationAbove Relation = "above"
	RelationBelow Relation = "below"
)

// ThresholdMedian1Y is the only supported volatility threshold: the trailing
// 252-day rolling median of the realized volatility series.
const ThresholdMedian1Y = "median_1y"

// Rule is a single entry or exit condition. Rules are immutable value
// objects; evaluation never mutates them, and mode-specific checks take the
// mode as an explicit parameter instead of toggling modifiers in place.
type Rule interface {
	Type() RuleType

	// LookaheadDays is the forward window within which the condition may fire
	// (0 = none). DurationDays is the trailing window over which the condition
	// must hold continuously (0 = none). A rule carries at most one of the two.
	LookaheadDays() int
	DurationDays() int
}

// CrossoverRule compares a fast moving average against a slow one.
type CrossoverRule struct {
	FastMA    int
	SlowMA    int
	Direction Direction
	Lookahead int
	Duration  int
}

func (CrossoverRule) Type() RuleType       { return RuleTypeCrossover }
func (r CrossoverRule) LookaheadDays() int { return r.Lookahead }
func (r CrossoverRule) DurationDays() int  { return r.Duration }

// VolFilterRule compares realized volatility over Window days against its
// trailing one-year median.
type VolFilterRule struct {
	Window    int
	Threshold string
	Relation  Relation
	Lookahead int
	Duration  int
}

func (VolFilterRule) Type() RuleType       { return RuleTypeVolFilter }
func (r VolFilterRule) LookaheadDays() int { return r.Lookahead }
func (r VolFilterRule) DurationDays() int  { return r.Duration }

// StrategySpec is the validated representation of a strategy. It is
// constructed once per request and read-only thereafter.
type StrategySpec struct {
	Ticker    string
	StartDate time.Time
	EndDate   time.Time

	EntryRules []Rule
	ExitRules  []Rule

	Metrics []string

	// EntrySequential switches entry evaluation from "all rules on the same
	// day" to "first rule now, later rules within their lookahead windows".
	EntrySequential bool
}

// AllRules returns entry rules followed by exit rules.
func (s *StrategySpec) AllRules() []Rule {
	all := make([]Rule, 0, len(s.EntryRules)+len(s.ExitRules))
	all = append(all, s.EntryRules...)
	all = append(all, s.ExitRules...)
	return all
}
