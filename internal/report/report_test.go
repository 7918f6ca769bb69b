package report

import (
	"strings"
	"testing"

	"github.com/Skufu/GlucoRisk/internal/screening"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskIndex(t *testing.T) {
	tests := []struct {
		name   string
		scores screening.Scores
		want   int
	}{
		{"zero", screening.Scores{}, 0},
		{"diabetes only", screening.Scores{0.5, 0, 0.9}, 50},
		{"truncates", screening.Scores{0.25, 0.625, 0}, 62},
		{"capped", screening.Scores{0.9, 0.5, 0}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RiskIndex(tt.scores))
		})
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, SeverityLow, Classify(0))
	assert.Equal(t, SeverityLow, Classify(0.329))
	assert.Equal(t, SeverityModerate, Classify(0.33))
	assert.Equal(t, SeverityModerate, Classify(0.659))
	assert.Equal(t, SeverityHigh, Classify(0.66))
	assert.Equal(t, SeverityHigh, Classify(1))
}

func TestFactors(t *testing.T) {
	m := screening.Measurements{
		Gender:                   screening.GenderMale,
		Glucose:                  160,
		BMI:                      36,
		BloodPressure:            70,
		Age:                      40,
		Insulin:                  50,
		DiabetesPedigreeFunction: 0.2,
		SkinThickness:            10,
		Pregnancies:              6,
	}

	male := Factors(m)
	require.Len(t, male, 7)
	assert.Equal(t, screening.Glucose, male[0].Field)
	assert.InDelta(t, 0.5, male[0].Membership, 1e-12)
	assert.Equal(t, SeverityModerate, male[0].Severity)
	assert.Equal(t, SeverityHigh, male[1].Severity)
	assert.Equal(t, SeverityLow, male[3].Severity)
	for _, f := range male {
		assert.NotEqual(t, screening.Pregnancies, f.Field)
		assert.NotEmpty(t, f.Title)
		assert.NotEmpty(t, f.Explanation)
	}

	m.Gender = screening.GenderFemale
	female := Factors(m)
	require.Len(t, female, 8)
	last := female[7]
	assert.Equal(t, screening.Pregnancies, last.Field)
	assert.Equal(t, 6.0, last.Value)
	assert.InDelta(t, 4.0/6.0, last.Membership, 1e-12)
	assert.Equal(t, SeverityHigh, last.Severity)

	m.Pregnancies = 5
	assert.Equal(t, SeverityModerate, Factors(m)[7].Severity)

	// the shared field order must not be modified by the append
	assert.Len(t, Factors(screening.Measurements{Gender: screening.GenderMale}), 7)
}

func TestAdviceFor(t *testing.T) {
	assert.Equal(t, AdviceConsult, AdviceFor(screening.Diabetes, 0.5).Kind)
	assert.Equal(t, AdviceConsult, AdviceFor(screening.Diabetes, 0.97).Kind)
	assert.Equal(t, AdviceMaintain, AdviceFor(screening.Diabetes, 0.49).Kind)
	assert.Equal(t, AdviceMonitor, AdviceFor(screening.PreDiabetes, 0.1).Kind)
	assert.Equal(t, AdviceMaintain, AdviceFor(screening.Normal, 0.6).Kind)
}

func TestTraceLines(t *testing.T) {
	assert.Equal(t, []string{NoRulesFired}, TraceLines(nil))

	lines := TraceLines([]screening.FiredRule{{
		RuleID:     "R1",
		Predicates: []screening.PredicateID{screening.GlucoseHigh, screening.BMIHigh},
		Conclusion: screening.Diabetes,
		Activation: 1,
		Certainty:  0.85,
	}})
	assert.Equal(t, []string{"R1: IF g_high, bmi_high THEN Diabetes (mu=1.00, cf=0.85)"}, lines)
}

func TestBuild(t *testing.T) {
	m := screening.Measurements{
		Gender:                   screening.GenderMale,
		Glucose:                  210,
		BMI:                      36,
		BloodPressure:            70,
		Age:                      20,
		Insulin:                  50,
		DiabetesPedigreeFunction: 0.2,
		SkinThickness:            10,
	}
	rep := Build(m, screening.Evaluate(m))

	assert.Equal(t, screening.Diabetes, rep.Best)
	assert.Equal(t, 85, rep.RiskIndex)
	assert.Equal(t, AdviceConsult, rep.Advice.Kind)
	require.Len(t, rep.Trace, 1)
	assert.True(t, strings.HasPrefix(rep.Trace[0], "R1:"))
	assert.True(t, strings.HasPrefix(rep.Summary, "Result: Diabetes (certainty 0.85)."))
	assert.Contains(t, rep.Summary, "Normal=0.00")
	assert.Len(t, rep.Factors, 7)
}
