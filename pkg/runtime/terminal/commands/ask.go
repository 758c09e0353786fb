package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/de-tools/sales-pulse/pkg/models/domain"
	"github.com/de-tools/sales-pulse/pkg/runtime/terminal/export"
	analysissvc "github.com/de-tools/sales-pulse/pkg/services/analysis"
)

// Resolver and Engine are the two collaborators every command needs. They are
// declared here so the commands stay decoupled from the concrete services.
type Resolver interface {
	Resolve(raw string, ref time.Time) domain.ResolvedQuery
}

type Engine interface {
	Analyze(ctx context.Context, q domain.ResolvedQuery) (domain.AnalysisOutcome, error)
	DrillDown(ctx context.Context, plan analysissvc.Plan) ([]domain.DriverRow, error)
	DimensionValues(ctx context.Context, dim domain.Dimension) ([]string, error)
}

type AskCmd struct {
	resolver Resolver
	engine   Engine
	reporter *export.Reporter
	refTime  func() time.Time
}

func NewAskCmd(resolver Resolver, engine Engine, reporter *export.Reporter, refTime func() time.Time) *cobra.Command {
	ac := &AskCmd{resolver: resolver, engine: engine, reporter: reporter, refTime: refTime}
	return &cobra.Command{
		Use:   "ask [query]",
		Short: "Analyze sales from a free-form query",
		Long:  "Resolves a mixed CJK/Latin query such as \"2025年Q1 vs 去年Q1 業務員業績\" and runs the period comparison.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  ac.run,
	}
}

func (ac *AskCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	raw := strings.Join(args, " ")
	resolved := ac.resolver.Resolve(raw, ac.refTime())

	outcome, err := ac.engine.Analyze(ctx, resolved)
	if err != nil {
		return err
	}

	switch result := outcome.(type) {
	case *domain.AnalysisResult:
		return ac.reporter.HandleAnalysis(result, analysissvc.Summarize(result))
	case *domain.EntityLookupResult:
		return ac.reporter.HandleLookup(result, analysissvc.SummarizeLookup(result))
	}
	return fmt.Errorf("unexpected analysis outcome for query %q", raw)
}
