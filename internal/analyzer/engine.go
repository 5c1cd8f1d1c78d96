package analyzer

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"groupscope/internal/groups"
)

// Engine layers refactoring suggestions on top of the group index. It only
// reads index snapshots; applying a consolidation happens externally via
// source edits followed by a rescan.
type Engine struct {
	index     *groups.Index
	oracle    SimilarityOracle
	threshold float64
	logger    *slog.Logger
}

// NewEngine creates an analyzer engine. oracle may be nil, in which case the
// pure string path is used directly.
func NewEngine(index *groups.Index, oracle SimilarityOracle, threshold float64) *Engine {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Engine{
		index:     index,
		oracle:    oracle,
		threshold: threshold,
		logger:    slog.Default(),
	}
}

// SimilarGroups returns consolidation suggestions across all distinct
// functionality names currently in the index. When an oracle is configured
// its score replaces the raw edit-distance comparison for pairs that are
// not already semantic matches; oracle failure falls back silently to the
// string path.
func (e *Engine) SimilarGroups(ctx context.Context) []Suggestion {
	names := e.index.DistinctFunctionalities()
	counts := e.index.FunctionalityCounts()

	suggestions := FindSimilarGroups(names, counts, e.threshold)
	if e.oracle == nil {
		return suggestions
	}

	// Re-score non-semantic pairs through the oracle; keep the string score
	// on any oracle failure.
	rescored := suggestions[:0]
	for _, s := range suggestions {
		if s.Confidence < 1.0 {
			score, err := e.oracle.Score(ctx, s.Names[0], s.Names[1])
			if err != nil {
				e.logger.DebugContext(ctx, "similarity oracle unavailable, using string score",
					"error", err, "names", s.Names)
			} else {
				if score < e.threshold {
					continue
				}
				s.Confidence = score
				s.Reason = "oracle similarity"
			}
		}
		rescored = append(rescored, s)
	}
	sort.SliceStable(rescored, func(i, j int) bool {
		return rescored[i].Confidence > rescored[j].Confidence
	})
	return rescored
}

// HierarchyProposals suggests parent groupings for flat functionality names
// currently in the index.
func (e *Engine) HierarchyProposals() []HierarchySuggestion {
	return SuggestHierarchy(e.index.DistinctFunctionalities())
}

// NearestTo returns indexed names close to the given one, when the engine's
// oracle supports nearest-neighbor retrieval; otherwise it falls back to a
// string-similarity scan over the distinct name set.
func (e *Engine) NearestTo(ctx context.Context, name string, k int) map[string]float64 {
	if o, ok := e.oracle.(*EmbeddingOracle); ok {
		nearest, err := o.NearestNames(ctx, name, k)
		if err == nil {
			return nearest
		}
		e.logger.DebugContext(ctx, "nearest-name retrieval unavailable, using string scan", "error", err)
	}

	nearest := make(map[string]float64)
	for _, candidate := range e.index.DistinctFunctionalities() {
		if strings.EqualFold(candidate, name) {
			continue
		}
		if score := Similarity(candidate, name); score >= e.threshold {
			nearest[candidate] = score
		}
	}
	return nearest
}
