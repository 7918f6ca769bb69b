package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

var maleArgs = []string{
	"eval", "--gender", "Laki-laki",
	"--glucose", "210", "--bmi", "36", "--blood-pressure", "70", "--age", "20",
	"--insulin", "50", "--dpf", "0.2", "--skin-thickness", "10",
}

func TestEvalText(t *testing.T) {
	out, err := run(t, maleArgs...)
	require.NoError(t, err)

	assert.Contains(t, out, "Diabetes (certainty 0.85)")
	assert.Contains(t, out, "85%")
	assert.Contains(t, out, "R1: IF g_high, bmi_high THEN Diabetes (mu=1.00, cf=0.85)")
	assert.NotContains(t, out, "All rules:")
	assert.NotContains(t, out, "Pregnancies")
}

func TestEvalJSONWithTrace(t *testing.T) {
	out, err := run(t, "eval", "--gender", "Perempuan", "--pregnancies", "9",
		"--glucose", "150", "--bmi", "22", "--blood-pressure", "70", "--age", "20",
		"--insulin", "50", "--dpf", "0.2", "--skin-thickness", "10",
		"--trace", "-o", "json")
	require.NoError(t, err)

	var got struct {
		Best        string `json:"best"`
		RiskIndex   int    `json:"riskIndex"`
		Activations []struct {
			RuleID string `json:"ruleId"`
			Fired  bool   `json:"fired"`
		} `json:"activations"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Normal", got.Best)
	require.Len(t, got.Activations, 10)
	assert.Equal(t, "R9", got.Activations[8].RuleID)
	assert.True(t, got.Activations[8].Fired)
}

func TestEvalTraceText(t *testing.T) {
	out, err := run(t, append(maleArgs, "--trace")...)
	require.NoError(t, err)
	assert.Contains(t, out, "All rules:")
	assert.Contains(t, out, "R10")
	assert.Contains(t, out, "inactive")
}

func TestEvalMissingMeasurements(t *testing.T) {
	_, err := run(t, "eval", "--gender", "Perempuan", "--glucose", "150")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bmi is required")
	assert.Contains(t, err.Error(), "pregnancies is required")
	assert.NotContains(t, err.Error(), "glucose is required")
}

func TestEvalRequiresGender(t *testing.T) {
	_, err := run(t, "eval", "--glucose", "150")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gender")
}

func TestEvalUnknownOutput(t *testing.T) {
	_, err := run(t, append(maleArgs, "-o", "xml")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

const patientsYAML = `
- gender: Laki-laki
  glucose: 210
  bloodPressure: 70
  skinThickness: 10
  insulin: 50
  bmi: 36
  diabetesPedigreeFunction: 0.2
  age: 20
- gender: Perempuan
  pregnancies: 0
  glucose: 100
  bloodPressure: 80
  skinThickness: 20
  insulin: 90
  bmi: 22
  diabetesPedigreeFunction: 0.4
  age: 35
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBatchText(t *testing.T) {
	path := writeFile(t, "patients.yaml", patientsYAML)

	out, err := run(t, "batch", "-f", path, "-w", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "1. [85%] Result: Diabetes"))
	assert.True(t, strings.HasPrefix(lines[1], "2. [0%] Result: Normal"))
}

func TestBatchYAML(t *testing.T) {
	path := writeFile(t, "patients.yaml", patientsYAML)

	out, err := run(t, "batch", "--file", path, "--output", "yaml")
	require.NoError(t, err)

	var got []struct {
		Best   string             `yaml:"best"`
		Scores map[string]float64 `yaml:"scores"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Diabetes", got[0].Best)
	assert.InDelta(t, 0.6, got[1].Scores["Normal"], 1e-12)
}

func TestBatchJSONInput(t *testing.T) {
	path := writeFile(t, "patients.json", `[{"gender":"male","glucose":90,"bloodPressure":70,
		"skinThickness":10,"insulin":50,"bmi":20,"diabetesPedigreeFunction":0.2,"age":20}]`)

	out, err := run(t, "batch", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "1. [0%] Result: Normal")
}

func TestBatchReportsInvalidPatients(t *testing.T) {
	path := writeFile(t, "patients.yaml", patientsYAML+`
- gender: robot
  glucose: .nan
`)

	_, err := run(t, "batch", "-f", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "patient 3")
	assert.Contains(t, err.Error(), "glucose must be a finite number")
	assert.NotContains(t, err.Error(), "patient 1")
}

func TestBatchMissingFile(t *testing.T) {
	_, err := run(t, "batch", "-f", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read batch")
}

func TestRules(t *testing.T) {
	out, err := run(t, "rules")
	require.NoError(t, err)

	assert.Contains(t, out, "g_high AND bmi_high")
	assert.Contains(t, out, "g_not_high AND bmi_not_high")
	assert.Contains(t, out, "female only")
	assert.Equal(t, 11, len(strings.Split(strings.TrimSpace(out), "\n")))
}
