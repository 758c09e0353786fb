package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/de-tools/sales-pulse/pkg/models/domain"
	"github.com/de-tools/sales-pulse/pkg/runtime/terminal/export"
	analysissvc "github.com/de-tools/sales-pulse/pkg/services/analysis"
)

const dateLayout = "2006-01-02"

type DrillCmd struct {
	currentStart    string
	currentEnd      string
	comparisonStart string
	comparisonEnd   string
	primary         string
	primaryValue    string
	secondary       string
	engine          Engine
	reporter        *export.Reporter
}

func NewDrillCmd(engine Engine, reporter *export.Reporter) *cobra.Command {
	dc := &DrillCmd{engine: engine, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "drill",
		Short: "Drill into one dimension value across another dimension",
		RunE:  dc.run,
	}

	cmd.Flags().StringVar(&dc.currentStart, "current-start", "", "Current window start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dc.currentEnd, "current-end", "", "Current window end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dc.comparisonStart, "comparison-start", "", "Comparison window start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dc.comparisonEnd, "comparison-end", "", "Comparison window end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dc.primary, "primary", "", "Primary dimension (product, staff, customer, region)")
	cmd.Flags().StringVar(&dc.primaryValue, "value", "", "Primary dimension value to drill into")
	cmd.Flags().StringVar(&dc.secondary, "secondary", "", "Secondary dimension to group by")

	_ = cmd.MarkFlagRequired("current-start")
	_ = cmd.MarkFlagRequired("current-end")
	_ = cmd.MarkFlagRequired("comparison-start")
	_ = cmd.MarkFlagRequired("comparison-end")
	_ = cmd.MarkFlagRequired("primary")
	_ = cmd.MarkFlagRequired("value")
	_ = cmd.MarkFlagRequired("secondary")

	return cmd
}

func (dc *DrillCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	current, err := parseWindow(dc.currentStart, dc.currentEnd)
	if err != nil {
		return fmt.Errorf("invalid current window: %w", err)
	}
	comparison, err := parseWindow(dc.comparisonStart, dc.comparisonEnd)
	if err != nil {
		return fmt.Errorf("invalid comparison window: %w", err)
	}
	primary, err := domain.ParseDimension(dc.primary)
	if err != nil {
		return err
	}
	secondary, err := domain.ParseDimension(dc.secondary)
	if err != nil {
		return err
	}

	plan := analysissvc.DrillDownPlan(current, comparison, primary, dc.primaryValue, secondary)
	rows, err := dc.engine.DrillDown(ctx, plan)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s「%s」by %s", primary.Label(), dc.primaryValue, secondary.Label())
	return dc.reporter.HandleDrivers(title, rows)
}

func parseWindow(start, end string) (domain.TimeWindow, error) {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return domain.TimeWindow{}, err
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return domain.TimeWindow{}, err
	}
	if s.After(e) {
		return domain.TimeWindow{}, fmt.Errorf("start %s is after end %s", start, end)
	}
	return domain.NewTimeWindow(s, e), nil
}
