// Package resolver turns free-form CJK/Latin query text into a structured
// period-over-period query: two date windows, an analysis dimension and an
// optional focus entity. Resolution is deterministic; the reference date used
// for relative defaults is always an explicit parameter.
package resolver

import (
	"time"

	"github.com/de-tools/sales-pulse/pkg/models/domain"
)

type Resolver struct {
	grammars []grammar
}

func New() *Resolver {
	return &Resolver{grammars: temporalGrammars}
}

// Resolve parses raw query text against the reference date. It is total:
// every cascade level has an explicit default, so it always produces a
// concrete ResolvedQuery and never fails.
func (r *Resolver) Resolve(raw string, ref time.Time) domain.ResolvedQuery {
	normalized := Normalize(raw)

	pair, explicit := r.resolveWindows(normalized, ref)

	return domain.ResolvedQuery{
		Current:        pair.current,
		Comparison:     pair.comparison,
		PeriodLabel:    pair.label,
		Dimension:      ClassifyDimension(raw),
		Focus:          ExtractFocus(raw),
		ExplicitPeriod: explicit,
	}
}

func (r *Resolver) resolveWindows(text string, ref time.Time) (*windowPair, bool) {
	for _, g := range r.grammars {
		if pair := g.match(text, ref); pair != nil {
			return pair, true
		}
	}
	return fallbackPair(ref), false
}
