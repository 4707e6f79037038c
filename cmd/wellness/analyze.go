package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	go_json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/garrettladley/wellness/internal/analytics"
	"github.com/garrettladley/wellness/internal/xslog"
)

const (
	formatJSON = "json"
	formatText = "text"
)

// report is the analysis of one health record file.
type report struct {
	File          string                   `json:"file"`
	Error         string                   `json:"error,omitempty"`
	BMI           *analytics.BMIReading    `json:"bmi,omitempty"`
	WellnessScore *analytics.WellnessScore `json:"wellness_score,omitempty"`
	Insights      []analytics.Insight      `json:"insights,omitempty"`
	Goals         []analytics.GoalProgress `json:"goals,omitempty"`
	Trends        *analytics.Trends        `json:"trends,omitempty"`
}

var errAnalysisFailed = errors.New("one or more files could not be analyzed")

func analyzeCmd() *cobra.Command {
	var (
		concurrency int
		format      string
	)

	cmd := &cobra.Command{
		Use:   "analyze FILE...",
		Short: "Analyze health record JSON files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatJSON && format != formatText {
				return fmt.Errorf("invalid format %q (valid: json, text)", format)
			}

			reports, err := analyzeFiles(cmd.Context(), args, concurrency)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == formatJSON {
				enc := go_json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(reports); err != nil {
					return err
				}
			} else {
				writeText(out, reports)
			}

			for _, r := range reports {
				if r.Error != "" {
					return errAnalysisFailed
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", runtime.NumCPU(), "files analyzed in parallel")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format (json or text)")
	return cmd
}

// analyzeFiles analyzes each file with at most concurrency files in flight.
// Reports keep the order of paths; a file that fails carries its error in
// the report instead of stopping the others.
func analyzeFiles(ctx context.Context, paths []string, concurrency int) ([]report, error) {
	reports := make([]report, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = analyzeFile(ctx, path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func analyzeFile(ctx context.Context, path string) report {
	logger := xslog.FromContext(ctx)
	r := report{File: path}

	data, err := os.ReadFile(path)
	if err != nil {
		r.Error = err.Error()
		return r
	}

	var record analytics.HealthRecord
	if err := go_json.Unmarshal(data, &record); err != nil {
		r.Error = fmt.Sprintf("invalid health record: %v", err)
		return r
	}

	r, err = analyzeRecord(path, record)
	if err != nil {
		logger.WarnContext(ctx, "analysis failed", xslog.File(path), xslog.Error(err))
		r.Error = err.Error()
	}
	return r
}

func analyzeRecord(path string, record analytics.HealthRecord) (report, error) {
	r := report{File: path}

	bmi, err := analytics.LatestBMI(record)
	if err != nil {
		return r, err
	}
	r.BMI = bmi

	score, err := analytics.CalculateWellnessScore(record)
	if err != nil {
		return r, err
	}
	r.WellnessScore = &score

	insights, err := analytics.GenerateInsights(record)
	if err != nil {
		return r, err
	}
	r.Insights = insights
	r.Goals = analytics.EvaluateGoals(record.FitnessGoals, record.LatestMetric())

	trends, err := analytics.CalculateTrends(record)
	switch {
	case errors.Is(err, analytics.ErrInsufficientData):
	case err != nil:
		return r, err
	default:
		r.Trends = &trends
	}

	return r, nil
}

func writeText(w io.Writer, reports []report) {
	for i, r := range reports {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "== %s\n", r.File)
		if r.Error != "" {
			fmt.Fprintf(w, "error: %s\n", r.Error)
			continue
		}

		if r.BMI != nil {
			fmt.Fprintf(w, "BMI:            %.1f (%s)\n", r.BMI.Value, r.BMI.Category)
		} else {
			fmt.Fprintln(w, "BMI:            n/a")
		}

		f := r.WellnessScore.Factors
		fmt.Fprintf(w, "Wellness score: %d/100 (physical %d, nutrition %d, activity %d, sleep %d, stress %d)\n",
			r.WellnessScore.Score, f.Physical, f.Nutrition, f.Activity, f.Sleep, f.Stress)

		for _, g := range r.Goals {
			fmt.Fprintf(w, "Goal %-14s %3d%% %s\n", g.Type, g.Progress, g.Status)
		}

		if r.Trends != nil && r.Trends.WeightChange != nil {
			fmt.Fprintf(w, "Weight change:  %+.1f kg (%+.1f%%) over %d metrics\n",
				r.Trends.WeightChange.ValueKg, r.Trends.WeightChange.Percentage, r.Trends.MetricsCount)
		}

		for _, in := range r.Insights {
			fmt.Fprintf(w, "[%s] %s\n    %s\n", strings.ToUpper(string(in.Category)), in.Insight, in.Recommendation)
		}
	}
}
