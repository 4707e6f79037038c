package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/garrettladley/wellness/internal/analytics"
)

func bmiCmd() *cobra.Command {
	var (
		weight     float64
		weightUnit string
		height     float64
		heightUnit string
	)

	cmd := &cobra.Command{
		Use:   "bmi",
		Short: "Calculate BMI from a single weight and height",
		RunE: func(cmd *cobra.Command, _ []string) error {
			wu, hu := analytics.MassUnit(weightUnit), analytics.LengthUnit(heightUnit)
			if !wu.Valid() {
				return fmt.Errorf("invalid weight unit %q (valid: kg, lb)", weightUnit)
			}
			if !hu.Valid() {
				return fmt.Errorf("invalid height unit %q (valid: cm, in)", heightUnit)
			}

			reading, _, err := analytics.MetricBMI(&analytics.Metric{
				Weight: &analytics.Mass{Value: weight, Unit: wu},
				Height: &analytics.Length{Value: height, Unit: hu},
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "BMI %.1f (%s)\n", reading.Value, reading.Category)
			return nil
		},
	}
	cmd.Flags().Float64Var(&weight, "weight", 0, "body weight")
	cmd.Flags().StringVar(&weightUnit, "weight-unit", string(analytics.MassUnitKilograms), "weight unit (kg or lb)")
	cmd.Flags().Float64Var(&height, "height", 0, "body height")
	cmd.Flags().StringVar(&heightUnit, "height-unit", string(analytics.LengthUnitCentimeters), "height unit (cm or in)")
	_ = cmd.MarkFlagRequired("weight")
	_ = cmd.MarkFlagRequired("height")
	return cmd
}
