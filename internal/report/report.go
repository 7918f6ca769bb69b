// Package report turns an engine result into the figures and text shown to
// the patient: risk index, factor severities, rule trace and advice.
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/Skufu/GlucoRisk/internal/screening"
)

// Pre-diabetes certainty counts at this weight toward the risk index.
const preDiabetesWeight = 0.6

// RiskIndex is the overall risk percentage in [0,100].
func RiskIndex(s screening.Scores) int {
	score := s.Get(screening.Diabetes)*1.0 + s.Get(screening.PreDiabetes)*preDiabetesWeight
	return int(math.Min(1.0, score) * 100)
}

// Severity buckets a membership degree.
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityModerate Severity = "Moderate"
	SeverityHigh     Severity = "High"
)

// Classify buckets degree at 0.33 and 0.66.
func Classify(degree float64) Severity {
	switch {
	case degree < 0.33:
		return SeverityLow
	case degree < 0.66:
		return SeverityModerate
	default:
		return SeverityHigh
	}
}

// Factor is one measurement graded against its "high" predicate.
type Factor struct {
	Field       screening.Field `json:"field" yaml:"field"`
	Title       string          `json:"title" yaml:"title"`
	Value       float64         `json:"value" yaml:"value"`
	Membership  float64         `json:"membership" yaml:"membership"`
	Severity    Severity        `json:"severity" yaml:"severity"`
	Explanation string          `json:"explanation" yaml:"explanation"`
}

type factorText struct {
	title, explanation string
}

var factorTexts = map[screening.Field]factorText{
	screening.Glucose:                  {"Blood glucose (mg/dL)", "High glucose indicates impaired blood sugar regulation."},
	screening.BMI:                      {"Body mass index", "High BMI is associated with insulin resistance."},
	screening.BloodPressure:            {"Diastolic blood pressure (mmHg)", "Hypertension often accompanies metabolic syndrome."},
	screening.Age:                      {"Age (years)", "Risk increases with age."},
	screening.Insulin:                  {"Insulin (pmol/L)", "Hyperinsulinemia is a sign of insulin resistance."},
	screening.DiabetesPedigreeFunction: {"Family history (DPF)", "Reflects a genetic tendency toward diabetes."},
	screening.SkinThickness:            {"Skin thickness (mm)", "Indicates subcutaneous fat composition."},
	screening.Pregnancies:              {"Pregnancies", "Repeated pregnancies raise gestational risk."},
}

var factorOrder = []screening.Field{
	screening.Glucose,
	screening.BMI,
	screening.BloodPressure,
	screening.Age,
	screening.Insulin,
	screening.DiabetesPedigreeFunction,
	screening.SkinThickness,
}

// Factors grades every measurement. Pregnancies is only listed for female
// patients.
func Factors(m screening.Measurements) []Factor {
	fields := factorOrder
	if m.Gender.IsFemale() {
		fields = append(fields[:len(fields):len(fields)], screening.Pregnancies)
	}

	out := make([]Factor, 0, len(fields))
	for _, f := range fields {
		degree := screening.HighPredicate(f).Degree(m)
		text := factorTexts[f]
		out = append(out, Factor{
			Field:       f,
			Title:       text.title,
			Value:       m.Value(f),
			Membership:  degree,
			Severity:    Classify(degree),
			Explanation: text.explanation,
		})
	}
	return out
}

// AdviceKind selects the advice template.
type AdviceKind string

const (
	AdviceConsult  AdviceKind = "consult"
	AdviceMonitor  AdviceKind = "monitor"
	AdviceMaintain AdviceKind = "maintain"
)

// Diabetes at or above this certainty triggers the consultation advice.
const consultThreshold = 0.50

type Advice struct {
	Kind    AdviceKind `json:"kind" yaml:"kind"`
	Message string     `json:"message" yaml:"message"`
}

// AdviceFor picks advice from the best-supported conclusion.
func AdviceFor(best screening.Label, certainty float64) Advice {
	switch {
	case best == screening.Diabetes && certainty >= consultThreshold:
		return Advice{
			Kind: AdviceConsult,
			Message: "High risk indicated. Consult a health professional promptly for further " +
				"testing (e.g. HbA1c and a comprehensive laboratory panel).",
		}
	case best == screening.PreDiabetes:
		return Advice{
			Kind: AdviceMonitor,
			Message: "Signs of pre-diabetes. Consider adjusting diet, regular measured physical " +
				"activity and periodic glucose monitoring as advised by a health professional.",
		}
	default:
		return Advice{
			Kind: AdviceMaintain,
			Message: "Current parameters are within reasonable limits. Keep up healthy habits " +
				"and have routine check-ups as needed.",
		}
	}
}

// NoRulesFired is the trace shown when nothing fired.
const NoRulesFired = "No rule fired: all parameters are in the low range."

// TraceLines renders one line per fired rule.
func TraceLines(fired []screening.FiredRule) []string {
	if len(fired) == 0 {
		return []string{NoRulesFired}
	}
	lines := make([]string, len(fired))
	for i, f := range fired {
		names := make([]string, len(f.Predicates))
		for j, p := range f.Predicates {
			names[j] = string(p)
		}
		lines[i] = fmt.Sprintf("%s: IF %s THEN %s (mu=%.2f, cf=%.2f)",
			f.RuleID, strings.Join(names, ", "), f.Conclusion, f.Activation, f.Certainty)
	}
	return lines
}

// Summary is the one-line text export.
func Summary(res screening.Result, advice Advice) string {
	return fmt.Sprintf("Result: %s (certainty %.2f). Diabetes=%.2f | Pre-diabetes=%.2f | Normal=%.2f. Advice: %s",
		res.Best, res.Certainty,
		res.Scores.Get(screening.Diabetes),
		res.Scores.Get(screening.PreDiabetes),
		res.Scores.Get(screening.Normal),
		advice.Message)
}

// Report bundles everything the presentation layer needs.
type Report struct {
	Scores    screening.Scores      `json:"scores" yaml:"scores"`
	Best      screening.Label       `json:"best" yaml:"best"`
	Certainty float64               `json:"certainty" yaml:"certainty"`
	RiskIndex int                   `json:"riskIndex" yaml:"riskIndex"`
	Fired     []screening.FiredRule `json:"fired" yaml:"fired"`
	Trace     []string              `json:"trace" yaml:"trace"`
	Factors   []Factor              `json:"factors" yaml:"factors"`
	Advice    Advice                `json:"advice" yaml:"advice"`
	Summary   string                `json:"summary" yaml:"summary"`
}

// Build assembles the report for m and its result.
func Build(m screening.Measurements, res screening.Result) Report {
	advice := AdviceFor(res.Best, res.Certainty)
	return Report{
		Scores:    res.Scores,
		Best:      res.Best,
		Certainty: res.Certainty,
		RiskIndex: RiskIndex(res.Scores),
		Fired:     res.Fired,
		Trace:     TraceLines(res.Fired),
		Factors:   Factors(m),
		Advice:    advice,
		Summary:   Summary(res, advice),
	}
}
