package analyzer

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"groupscope/internal/analyzer/mocks"
	"groupscope/internal/groups"
)

func seedIndex(t *testing.T, functionalities ...string) *groups.Index {
	t.Helper()
	index := groups.NewIndex()
	for i, fn := range functionalities {
		added := index.AddRecords("go", []groups.Record{{
			Functionality: fn,
			FilePath:      "/src/file.go",
			LineNumbers:   []int{i + 1},
		}})
		if added != 1 {
			t.Fatalf("seeding %q: added %d records", fn, added)
		}
	}
	return index
}

func TestEngine_SimilarGroups_NilOracle(t *testing.T) {
	index := seedIndex(t, "Auth Config", "Authentication Configuration")
	engine := NewEngine(index, nil, 0)

	suggestions := engine.SimilarGroups(context.Background())
	if len(suggestions) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(suggestions))
	}
	if suggestions[0].Confidence != 1.0 {
		t.Errorf("confidence = %f, want 1.0", suggestions[0].Confidence)
	}
}

func TestEngine_SimilarGroups_OracleRescoresNonSemanticPairs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	index := seedIndex(t, "Pagination", "Paginaton")

	oracle := mocks.NewMockSimilarityOracle(ctrl)
	oracle.EXPECT().
		Score(gomock.Any(), "Pagination", "Paginaton").
		Return(0.88, nil)

	engine := NewEngine(index, oracle, 0)
	suggestions := engine.SimilarGroups(context.Background())
	if len(suggestions) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(suggestions))
	}
	if suggestions[0].Confidence != 0.88 {
		t.Errorf("confidence = %f, want oracle score 0.88", suggestions[0].Confidence)
	}
	if suggestions[0].Reason != "oracle similarity" {
		t.Errorf("reason = %q", suggestions[0].Reason)
	}
}

func TestEngine_SimilarGroups_OracleDropsBelowThreshold(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	index := seedIndex(t, "Pagination", "Paginaton")

	oracle := mocks.NewMockSimilarityOracle(ctrl)
	oracle.EXPECT().
		Score(gomock.Any(), "Pagination", "Paginaton").
		Return(0.3, nil)

	engine := NewEngine(index, oracle, 0)
	if got := engine.SimilarGroups(context.Background()); len(got) != 0 {
		t.Errorf("pair below oracle threshold kept: %+v", got)
	}
}

func TestEngine_SimilarGroups_OracleFailureFallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	index := seedIndex(t, "Pagination", "Paginaton")

	oracle := mocks.NewMockSimilarityOracle(ctrl)
	oracle.EXPECT().
		Score(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(0.0, errors.New("embedding service unavailable"))

	engine := NewEngine(index, oracle, 0)
	suggestions := engine.SimilarGroups(context.Background())
	if len(suggestions) != 1 {
		t.Fatalf("got %d suggestions, want 1 (string fallback)", len(suggestions))
	}
	if suggestions[0].Reason != "edit-distance similarity" {
		t.Errorf("reason = %q, want string-path reason preserved", suggestions[0].Reason)
	}
}

func TestEngine_SimilarGroups_SemanticPairsSkipOracle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	index := seedIndex(t, "Auth Config", "Authentication Configuration")

	// No Score expectation: the oracle must not be consulted for a pair that
	// is already a semantic match.
	oracle := mocks.NewMockSimilarityOracle(ctrl)

	engine := NewEngine(index, oracle, 0)
	suggestions := engine.SimilarGroups(context.Background())
	if len(suggestions) != 1 || suggestions[0].Confidence != 1.0 {
		t.Errorf("suggestions = %+v", suggestions)
	}
}

func TestEngine_HierarchyProposals(t *testing.T) {
	index := seedIndex(t, "Config Loader", "Config Validator", "Billing")
	engine := NewEngine(index, nil, 0)

	proposals := engine.HierarchyProposals()
	if len(proposals) != 1 || proposals[0].Parent != "Config" {
		t.Fatalf("proposals = %+v", proposals)
	}
}

func TestEngine_NearestTo_StringScanFallback(t *testing.T) {
	index := seedIndex(t, "Pagination", "Paginaton", "Billing")
	engine := NewEngine(index, nil, 0)

	nearest := engine.NearestTo(context.Background(), "Pagination", 5)
	if _, ok := nearest["Paginaton"]; !ok {
		t.Errorf("nearest = %v, want Paginaton present", nearest)
	}
	if _, ok := nearest["Pagination"]; ok {
		t.Error("query name must not appear in its own results")
	}
	if _, ok := nearest["Billing"]; ok {
		t.Error("unrelated name above threshold")
	}
}
