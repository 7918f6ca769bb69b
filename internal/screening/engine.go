package screening

import (
	"context"
	"math"

	"github.com/Skufu/GlucoRisk/internal/fuzzy"
	"golang.org/x/sync/errgroup"
)

// FiredRule records a rule whose activation was strictly positive.
type FiredRule struct {
	RuleID     string        `json:"ruleId" yaml:"ruleId"`
	Predicates []PredicateID `json:"predicates" yaml:"predicates"`
	Conclusion Label         `json:"conclusion" yaml:"conclusion"`
	Activation float64       `json:"activation" yaml:"activation"`
	Certainty  float64       `json:"certainty" yaml:"certainty"`
}

// Activation is the audit record for one rule, fired or not.
type Activation struct {
	FiredRule `yaml:",inline"`
	Fired     bool `json:"fired" yaml:"fired"`
}

// Result is the outcome of one evaluation.
type Result struct {
	Scores    Scores      `json:"scores" yaml:"scores"`
	Fired     []FiredRule `json:"fired" yaml:"fired"`
	Best      Label       `json:"best" yaml:"best"`
	Certainty float64     `json:"certainty" yaml:"certainty"`
}

// Engine evaluates an immutable rule table. It holds no per-call state and
// is safe for concurrent use.
type Engine struct {
	rules []Rule
}

// NewEngine returns an engine over a copy of rules.
func NewEngine(rules ...Rule) (*Engine, error) {
	if err := validateRules(rules); err != nil {
		return nil, err
	}
	return &Engine{rules: cloneRules(rules)}, nil
}

var defaultEngine = func() *Engine {
	e, err := NewEngine(RuleBase()...)
	if err != nil {
		panic(err)
	}
	return e
}()

// Default returns the engine over the full rule base.
func Default() *Engine {
	return defaultEngine
}

// Rules returns a copy of the engine's rule table.
func (e *Engine) Rules() []Rule {
	return cloneRules(e.rules)
}

// Evaluate runs every rule against m and accumulates certainty per
// conclusion in rule order.
func (e *Engine) Evaluate(m Measurements) Result {
	var scores Scores
	fired := make([]FiredRule, 0, len(e.rules))

	for _, r := range e.rules {
		mu := activation(r, m)
		if mu <= 0 {
			continue
		}
		cf := fuzzy.Instantiate(r.Confidence, mu)
		scores[r.Conclusion] = fuzzy.Combine(scores[r.Conclusion], cf)
		fired = append(fired, FiredRule{
			RuleID:     r.ID,
			Predicates: r.PredicateIDs(),
			Conclusion: r.Conclusion,
			Activation: mu,
			Certainty:  cf,
		})
	}

	best, certainty := scores.Best()
	return Result{
		Scores:    scores,
		Fired:     fired,
		Best:      best,
		Certainty: certainty,
	}
}

// Explain reports the activation of every rule, including the ones that
// did not fire.
func (e *Engine) Explain(m Measurements) []Activation {
	out := make([]Activation, len(e.rules))
	for i, r := range e.rules {
		mu := activation(r, m)
		var cf float64
		if mu > 0 {
			cf = fuzzy.Instantiate(r.Confidence, mu)
		}
		out[i] = Activation{
			FiredRule: FiredRule{
				RuleID:     r.ID,
				Predicates: r.PredicateIDs(),
				Conclusion: r.Conclusion,
				Activation: mu,
				Certainty:  cf,
			},
			Fired: mu > 0,
		}
	}
	return out
}

// EvaluateAll evaluates independent vectors concurrently with at most limit
// in flight. Results keep the input order.
func (e *Engine) EvaluateAll(ctx context.Context, batch []Measurements, limit int) ([]Result, error) {
	results := make([]Result, len(batch))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, m := range batch {
		i, m := i, m
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.Evaluate(m)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// activation is the fuzzy AND (minimum) of the rule's premises.
func activation(r Rule, m Measurements) float64 {
	if len(r.Premises) == 0 {
		return 0
	}
	mu := math.Inf(1)
	for _, p := range r.Premises {
		if d := p.Degree(m); d < mu {
			mu = d
		}
	}
	return mu
}

// Evaluate runs the default engine.
func Evaluate(m Measurements) Result {
	return defaultEngine.Evaluate(m)
}

// Explain runs the default engine's audit.
func Explain(m Measurements) []Activation {
	return defaultEngine.Explain(m)
}
