package screening

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Rule is a conjunction of predicates supporting one conclusion.
type Rule struct {
	ID          string
	Premises    []Predicate
	Conclusion  Label
	Confidence  float64
	Conditional bool
}

// PredicateIDs lists the premise names in order.
func (r Rule) PredicateIDs() []PredicateID {
	ids := make([]PredicateID, len(r.Premises))
	for i, p := range r.Premises {
		ids[i] = p.ID
	}
	return ids
}

func (r Rule) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID          string        `json:"id"`
		Predicates  []PredicateID `json:"predicates"`
		Conclusion  Label         `json:"conclusion"`
		Confidence  float64       `json:"confidence"`
		Conditional bool          `json:"conditional"`
	}{r.ID, r.PredicateIDs(), r.Conclusion, r.Confidence, r.Conditional})
}

func premises(ids ...PredicateID) []Predicate {
	out := make([]Predicate, len(ids))
	for i, id := range ids {
		p, ok := predicates[id]
		if !ok {
			panic(fmt.Sprintf("screening: unknown predicate %q", id))
		}
		out[i] = p
	}
	return out
}

var baseRules = []Rule{
	{ID: "R1", Premises: premises(GlucoseHigh, BMIHigh), Conclusion: Diabetes, Confidence: 0.85},
	{ID: "R2", Premises: premises(GlucoseHigh, AgeHigh), Conclusion: Diabetes, Confidence: 0.75},
	{ID: "R3", Premises: premises(GlucoseHigh, InsulinHigh), Conclusion: Diabetes, Confidence: 0.80},
	{ID: "R4", Premises: premises(BMIHigh, PedigreeHigh), Conclusion: Diabetes, Confidence: 0.70},
	{ID: "R5", Premises: premises(GlucoseHigh, PressureHigh), Conclusion: Diabetes, Confidence: 0.60},
	{ID: "R6", Premises: premises(GlucoseModerate, BMIModerate), Conclusion: PreDiabetes, Confidence: 0.65},
	{ID: "R7", Premises: premises(AgeHigh, PedigreeHigh), Conclusion: PreDiabetes, Confidence: 0.55},
	{ID: "R8", Premises: premises(GlucoseNotHigh, BMINotHigh), Conclusion: Normal, Confidence: 0.60},
}

var conditionalRules = []Rule{
	{ID: "R9", Premises: premises(GlucoseModerate, PregnanciesMany), Conclusion: PreDiabetes, Confidence: 0.60, Conditional: true},
	{ID: "R10", Premises: premises(GlucoseHigh, PregnanciesMany), Conclusion: Diabetes, Confidence: 0.70, Conditional: true},
}

// BaseRules returns a copy of the rules evaluated for every patient.
func BaseRules() []Rule {
	return cloneRules(baseRules)
}

// ConditionalRules returns a copy of the pregnancy rules.
func ConditionalRules() []Rule {
	return cloneRules(conditionalRules)
}

// RuleBase returns the base rules followed by the conditional ones.
func RuleBase() []Rule {
	return append(BaseRules(), ConditionalRules()...)
}

func cloneRules(rules []Rule) []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		r.Premises = append([]Predicate(nil), r.Premises...)
		out[i] = r
	}
	return out
}

var (
	ErrInvalidRule   = errors.New("invalid rule")
	ErrDuplicateRule = errors.New("duplicate rule id")
)

func validateRules(rules []Rule) error {
	seen := make(map[string]struct{}, len(rules))
	for i, r := range rules {
		if r.ID == "" {
			return fmt.Errorf("rule %d: %w: empty id", i, ErrInvalidRule)
		}
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("rule %s: %w", r.ID, ErrDuplicateRule)
		}
		seen[r.ID] = struct{}{}
		if !r.Conclusion.valid() {
			return fmt.Errorf("rule %s: %w: unknown conclusion %d", r.ID, ErrInvalidRule, int(r.Conclusion))
		}
		if !(r.Confidence > 0 && r.Confidence <= 1) {
			return fmt.Errorf("rule %s: %w: confidence %v outside (0,1]", r.ID, ErrInvalidRule, r.Confidence)
		}
	}
	return nil
}
