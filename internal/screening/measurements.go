// Package screening implements the fuzzy rule-based diabetes risk screening:
// the measurement vector, the fixed rule base and the certainty-factor
// inference engine that evaluates it.
package screening

import "strings"

// Gender selects whether the pregnancy rules can contribute.
type Gender string

const (
	GenderMale    Gender = "Laki-laki"
	GenderFemale  Gender = "Perempuan"
	GenderUnknown Gender = ""
)

// ParseGender accepts the two form values and common English aliases.
func ParseGender(s string) (Gender, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "laki-laki", "male", "m":
		return GenderMale, true
	case "perempuan", "female", "f":
		return GenderFemale, true
	default:
		return GenderUnknown, false
	}
}

// IsFemale reports whether g is the female category. Any other value,
// including unrecognised ones, counts as not female.
func (g Gender) IsFemale() bool {
	return g == GenderFemale
}

// Field identifies one numeric measurement.
type Field int

const (
	Glucose Field = iota
	BloodPressure
	SkinThickness
	Insulin
	BMI
	DiabetesPedigreeFunction
	Age
	Pregnancies
)

var fieldNames = [...]string{
	Glucose:                  "Glucose",
	BloodPressure:            "BloodPressure",
	SkinThickness:            "SkinThickness",
	Insulin:                  "Insulin",
	BMI:                      "BMI",
	DiabetesPedigreeFunction: "DiabetesPedigreeFunction",
	Age:                      "Age",
	Pregnancies:              "Pregnancies",
}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "Unknown"
	}
	return fieldNames[f]
}

// MarshalText encodes the field by name.
func (f Field) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Measurements is one patient's input vector.
type Measurements struct {
	Gender                   Gender  `json:"gender" yaml:"gender"`
	Pregnancies              float64 `json:"pregnancies" yaml:"pregnancies"`
	Glucose                  float64 `json:"glucose" yaml:"glucose"`
	BloodPressure            float64 `json:"bloodPressure" yaml:"bloodPressure"`
	SkinThickness            float64 `json:"skinThickness" yaml:"skinThickness"`
	Insulin                  float64 `json:"insulin" yaml:"insulin"`
	BMI                      float64 `json:"bmi" yaml:"bmi"`
	DiabetesPedigreeFunction float64 `json:"diabetesPedigreeFunction" yaml:"diabetesPedigreeFunction"`
	Age                      float64 `json:"age" yaml:"age"`
}

// Value returns the reading for f. Unknown fields read as 0.
func (m Measurements) Value(f Field) float64 {
	switch f {
	case Glucose:
		return m.Glucose
	case BloodPressure:
		return m.BloodPressure
	case SkinThickness:
		return m.SkinThickness
	case Insulin:
		return m.Insulin
	case BMI:
		return m.BMI
	case DiabetesPedigreeFunction:
		return m.DiabetesPedigreeFunction
	case Age:
		return m.Age
	case Pregnancies:
		return m.Pregnancies
	default:
		return 0
	}
}
