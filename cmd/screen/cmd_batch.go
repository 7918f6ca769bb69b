package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/Skufu/GlucoRisk/internal/report"
	"github.com/Skufu/GlucoRisk/internal/screening"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func newBatchCmd(c *cli) *cobra.Command {
	var (
		file    string
		output  string
		workers int
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Evaluate a list of patients from a YAML or JSON file",
		Long: `Reads a YAML (or JSON) list of patient records and evaluates them
concurrently. Records use the same field names as the HTTP API:

  - gender: Perempuan
    pregnancies: 9
    glucose: 150
    bloodPressure: 70
    skinThickness: 10
    insulin: 50
    bmi: 22
    diabetesPedigreeFunction: 0.2
    age: 20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			batch, err := loadBatch(file)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			results, err := screening.Default().EvaluateAll(ctx, batch, workers)
			if err != nil {
				return fmt.Errorf("evaluate batch: %w", err)
			}
			c.logger.Debug("batch evaluated", zap.String("file", file), zap.Int("patients", len(results)))

			reports := make([]report.Report, len(results))
			for i, res := range results {
				reports[i] = report.Build(batch[i], res)
			}
			return writeReports(cmd.OutOrStdout(), output, reports)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the patient list")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text, json or yaml")
	cmd.Flags().IntVarP(&workers, "workers", "w", runtime.NumCPU(), "Maximum concurrent evaluations")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// loadBatch reads and validates every record, reporting all invalid ones.
func loadBatch(path string) ([]screening.Measurements, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch: %w", err)
	}

	var inputs []screening.Input
	if err := yaml.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%s: no patients found", path)
	}

	batch := make([]screening.Measurements, len(inputs))
	var errs []error
	for i, in := range inputs {
		m, err := in.Measurements()
		if err != nil {
			errs = append(errs, fmt.Errorf("patient %d: %w", i+1, err))
			continue
		}
		batch[i] = m
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return batch, nil
}
