package screening

import "github.com/Skufu/GlucoRisk/internal/fuzzy"

// PredicateID names a fuzzy concept such as "glucose is high".
type PredicateID string

const (
	GlucoseHigh     PredicateID = "g_high"
	GlucoseModerate PredicateID = "g_mod"
	GlucoseNotHigh  PredicateID = "g_not_high"
	PressureHigh    PredicateID = "bp_high"
	BMIHigh         PredicateID = "bmi_high"
	BMIModerate     PredicateID = "bmi_mod"
	BMINotHigh      PredicateID = "bmi_not_high"
	AgeHigh         PredicateID = "age_high"
	SkinHigh        PredicateID = "skin_high"
	InsulinHigh     PredicateID = "ins_high"
	PedigreeHigh    PredicateID = "dpf_high"
	PregnanciesMany PredicateID = "preg_many"
)

// Predicate binds a fuzzy concept to the field it reads.
type Predicate struct {
	ID         PredicateID
	Field      Field
	Membership fuzzy.MembershipFunc
	// FemaleOnly predicates read as 0 for anyone not female.
	FemaleOnly bool
}

// Degree evaluates p against m, clamped to [0,1].
func (p Predicate) Degree(m Measurements) float64 {
	if p.FemaleOnly && !m.Gender.IsFemale() {
		return 0
	}
	if p.Membership == nil {
		return 0
	}
	return fuzzy.Clamp(p.Membership(m.Value(p.Field)))
}

var (
	highGlucose  = fuzzy.Ramp(120, 200)
	highPressure = fuzzy.Ramp(80, 100)
	highBMI      = fuzzy.Ramp(25, 35)
	highAge      = fuzzy.Ramp(35, 60)
	highSkin     = fuzzy.Ramp(20, 45)
	highInsulin  = fuzzy.Ramp(90, 200)
	highPedigree = fuzzy.Ramp(0.4, 1.2)
	manyPregnant = fuzzy.Ramp(2, 8)
	modGlucose   = fuzzy.Triangle(100, 135, 170)
	modBMI       = fuzzy.Triangle(22, 26.5, 31)
)

var predicates = map[PredicateID]Predicate{
	GlucoseHigh:     {ID: GlucoseHigh, Field: Glucose, Membership: highGlucose},
	GlucoseModerate: {ID: GlucoseModerate, Field: Glucose, Membership: modGlucose},
	GlucoseNotHigh:  {ID: GlucoseNotHigh, Field: Glucose, Membership: fuzzy.Complement(highGlucose)},
	PressureHigh:    {ID: PressureHigh, Field: BloodPressure, Membership: highPressure},
	BMIHigh:         {ID: BMIHigh, Field: BMI, Membership: highBMI},
	BMIModerate:     {ID: BMIModerate, Field: BMI, Membership: modBMI},
	BMINotHigh:      {ID: BMINotHigh, Field: BMI, Membership: fuzzy.Complement(highBMI)},
	AgeHigh:         {ID: AgeHigh, Field: Age, Membership: highAge},
	SkinHigh:        {ID: SkinHigh, Field: SkinThickness, Membership: highSkin},
	InsulinHigh:     {ID: InsulinHigh, Field: Insulin, Membership: highInsulin},
	PedigreeHigh:    {ID: PedigreeHigh, Field: DiabetesPedigreeFunction, Membership: highPedigree},
	PregnanciesMany: {ID: PregnanciesMany, Field: Pregnancies, Membership: manyPregnant, FemaleOnly: true},
}

// LookupPredicate returns the predicate registered under id.
func LookupPredicate(id PredicateID) (Predicate, bool) {
	p, ok := predicates[id]
	return p, ok
}

// HighPredicate returns the "is high" predicate that reads f. Every field
// has one; for Pregnancies it is preg_many.
func HighPredicate(f Field) Predicate {
	switch f {
	case Glucose:
		return predicates[GlucoseHigh]
	case BloodPressure:
		return predicates[PressureHigh]
	case SkinThickness:
		return predicates[SkinHigh]
	case Insulin:
		return predicates[InsulinHigh]
	case BMI:
		return predicates[BMIHigh]
	case DiabetesPedigreeFunction:
		return predicates[PedigreeHigh]
	case Age:
		return predicates[AgeHigh]
	case Pregnancies:
		return predicates[PregnanciesMany]
	default:
		return Predicate{Field: f}
	}
}
