package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Skufu/GlucoRisk/internal/report"
	"github.com/Skufu/GlucoRisk/internal/screening"
	"gopkg.in/yaml.v3"
)

type tracedReport struct {
	report.Report `yaml:",inline"`
	Activations   []screening.Activation `json:"activations,omitempty" yaml:"activations,omitempty"`
}

func writeReport(w io.Writer, format string, rep report.Report, acts []screening.Activation) error {
	switch format {
	case "json", "yaml":
		return encode(w, format, tracedReport{Report: rep, Activations: acts})
	case "text", "":
		return writeText(w, rep, acts)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeReports(w io.Writer, format string, reps []report.Report) error {
	switch format {
	case "json", "yaml":
		return encode(w, format, reps)
	case "text", "":
		for i, rep := range reps {
			if _, err := fmt.Fprintf(w, "%d. [%d%%] %s\n", i+1, rep.RiskIndex, rep.Summary); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func encode(w io.Writer, format string, v any) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func writeText(w io.Writer, rep report.Report, acts []screening.Activation) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Result:\t%s (certainty %.2f)\n", rep.Best, rep.Certainty)
	fmt.Fprintf(tw, "Risk index:\t%d%%\n", rep.RiskIndex)
	fmt.Fprintf(tw, "Scores:\tDiabetes=%.2f  Pre-diabetes=%.2f  Normal=%.2f\n",
		rep.Scores.Get(screening.Diabetes),
		rep.Scores.Get(screening.PreDiabetes),
		rep.Scores.Get(screening.Normal))

	fmt.Fprintln(tw, "\nFactors:")
	for _, f := range rep.Factors {
		fmt.Fprintf(tw, "  %s\t%g\t%s\n", f.Title, f.Value, f.Severity)
	}

	fmt.Fprintln(tw, "\nRules:")
	for _, line := range rep.Trace {
		fmt.Fprintf(tw, "  %s\n", line)
	}

	if len(acts) > 0 {
		fmt.Fprintln(tw, "\nAll rules:")
		for _, a := range acts {
			state := "inactive"
			if a.Fired {
				state = "fired"
			}
			fmt.Fprintf(tw, "  %s\t%s\tmu=%.2f\tcf=%.2f\n", a.RuleID, state, a.Activation, a.Certainty)
		}
	}

	fmt.Fprintf(tw, "\nAdvice:\t%s\n", rep.Advice.Message)
	return tw.Flush()
}
