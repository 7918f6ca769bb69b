package main

import (
	"github.com/Skufu/GlucoRisk/internal/report"
	"github.com/Skufu/GlucoRisk/internal/screening"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type measurementFlag struct {
	name  string
	usage string
	dest  **float64
}

func newEvalCmd(c *cli) *cobra.Command {
	var (
		in     screening.Input
		output string
		trace  bool
		values = map[string]*float64{}
	)

	flags := []measurementFlag{
		{"pregnancies", "Number of pregnancies (female only)", &in.Pregnancies},
		{"glucose", "Plasma glucose (mg/dL)", &in.Glucose},
		{"blood-pressure", "Diastolic blood pressure (mmHg)", &in.BloodPressure},
		{"skin-thickness", "Triceps skin fold thickness (mm)", &in.SkinThickness},
		{"insulin", "Serum insulin (pmol/L)", &in.Insulin},
		{"bmi", "Body mass index", &in.BMI},
		{"dpf", "Diabetes pedigree function", &in.DiabetesPedigreeFunction},
		{"age", "Age (years)", &in.Age},
	}

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate one patient",
		Long: `Evaluates a single measurement vector. Every measurement flag is required
except --pregnancies, which is only read for female patients.

Example:
  screen eval --gender Perempuan --pregnancies 9 --glucose 150 --blood-pressure 70 \
    --skin-thickness 10 --insulin 50 --bmi 22 --dpf 0.2 --age 20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Flags left unset stay nil so validation reports them as missing.
			for _, f := range flags {
				if cmd.Flags().Changed(f.name) {
					*f.dest = values[f.name]
				}
			}

			m, err := in.Measurements()
			if err != nil {
				return err
			}

			engine := screening.Default()
			res := engine.Evaluate(m)
			rep := report.Build(m, res)
			c.logger.Debug("evaluated",
				zap.Stringer("best", res.Best),
				zap.Float64("certainty", res.Certainty),
				zap.Int("fired", len(res.Fired)),
			)

			var acts []screening.Activation
			if trace {
				acts = engine.Explain(m)
			}
			return writeReport(cmd.OutOrStdout(), output, rep, acts)
		},
	}

	cmd.Flags().StringVar(&in.Gender, "gender", "", "Laki-laki (male) or Perempuan (female)")
	for _, f := range flags {
		v := new(float64)
		values[f.name] = v
		cmd.Flags().Float64Var(v, f.name, 0, f.usage)
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text, json or yaml")
	cmd.Flags().BoolVar(&trace, "trace", false, "List every rule, including the ones that did not fire")
	_ = cmd.MarkFlagRequired("gender")

	return cmd
}
