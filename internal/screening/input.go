package screening

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidInput marks measurements rejected before reaching the engine.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError lists every problem found in an Input.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvalidInput, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Input is the measurement vector as it arrives from JSON or YAML, with
// every numeric field optional so missing values can be told apart from 0.
type Input struct {
	Gender                   string   `json:"gender" yaml:"gender"`
	Pregnancies              *float64 `json:"pregnancies,omitempty" yaml:"pregnancies,omitempty"`
	Glucose                  *float64 `json:"glucose" yaml:"glucose"`
	BloodPressure            *float64 `json:"bloodPressure" yaml:"bloodPressure"`
	SkinThickness            *float64 `json:"skinThickness" yaml:"skinThickness"`
	Insulin                  *float64 `json:"insulin" yaml:"insulin"`
	BMI                      *float64 `json:"bmi" yaml:"bmi"`
	DiabetesPedigreeFunction *float64 `json:"diabetesPedigreeFunction" yaml:"diabetesPedigreeFunction"`
	Age                      *float64 `json:"age" yaml:"age"`
}

// Measurements validates in and converts it. Pregnancies is forced to 0 for
// male patients and may be omitted for them.
func (in Input) Measurements() (Measurements, error) {
	var problems []string

	gender, ok := ParseGender(in.Gender)
	if !ok {
		if strings.TrimSpace(in.Gender) == "" {
			problems = append(problems, "gender is required")
		} else {
			problems = append(problems, fmt.Sprintf("gender %q must be one of %s, %s", in.Gender, GenderMale, GenderFemale))
		}
	}

	read := func(name string, v *float64) float64 {
		switch {
		case v == nil:
			problems = append(problems, name+" is required")
			return 0
		case math.IsNaN(*v) || math.IsInf(*v, 0):
			problems = append(problems, name+" must be a finite number")
			return 0
		default:
			return *v
		}
	}

	m := Measurements{
		Gender:                   gender,
		Glucose:                  read("glucose", in.Glucose),
		BloodPressure:            read("bloodPressure", in.BloodPressure),
		SkinThickness:            read("skinThickness", in.SkinThickness),
		Insulin:                  read("insulin", in.Insulin),
		BMI:                      read("bmi", in.BMI),
		DiabetesPedigreeFunction: read("diabetesPedigreeFunction", in.DiabetesPedigreeFunction),
		Age:                      read("age", in.Age),
	}
	if gender.IsFemale() {
		m.Pregnancies = read("pregnancies", in.Pregnancies)
	}

	if len(problems) > 0 {
		return Measurements{}, &ValidationError{Problems: problems}
	}
	return m, nil
}
