package analyzer

import (
	"context"
	"fmt"
	"math"
	"testing"

	"go.uber.org/mock/gomock"

	"groupscope/internal/vectorstore"
	"groupscope/internal/vectorstore/mocks"
)

// stubEmbedder returns a fixed vector per text.
type stubEmbedder struct {
	vectors map[string][]float32
}

func (s *stubEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for _, text := range texts {
		vec, ok := s.vectors[text]
		if !ok {
			return nil, fmt.Errorf("no stub vector for %q", text)
		}
		out = append(out, vec)
	}
	return out, nil
}

func TestStringOracle_Score(t *testing.T) {
	ctx := context.Background()
	oracle := StringOracle{}

	score, err := oracle.Score(ctx, "Auth Config", "Authentication Configuration")
	if err != nil || score != 1.0 {
		t.Errorf("semantic pair: score=%f err=%v, want 1.0", score, err)
	}

	score, err = oracle.Score(ctx, "Pagination", "Paginaton")
	if err != nil || score < DefaultThreshold || score >= 1.0 {
		t.Errorf("typo pair: score=%f err=%v, want in [%f, 1.0)", score, err, DefaultThreshold)
	}
}

func TestEmbeddingOracle_Score(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float32{
		"Auth":    {1, 0},
		"Login":   {1, 0},
		"Billing": {0, 1},
	}}
	oracle := NewEmbeddingOracle(embedder, nil, "names")
	ctx := context.Background()

	score, err := oracle.Score(ctx, "Auth", "Login")
	if err != nil || math.Abs(score-1.0) > 1e-9 {
		t.Errorf("parallel vectors: score=%f err=%v, want 1.0", score, err)
	}

	score, err = oracle.Score(ctx, "Auth", "Billing")
	if err != nil || math.Abs(score) > 1e-9 {
		t.Errorf("orthogonal vectors: score=%f err=%v, want 0.0", score, err)
	}

	if _, err := oracle.Score(ctx, "Auth", "Unknown"); err == nil {
		t.Error("expected an error when embedding fails")
	}
}

func TestEmbeddingOracle_IndexNames(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	embedder := &stubEmbedder{vectors: map[string][]float32{
		"Auth": {1, 0},
	}}
	store := mocks.NewMockVectorStore(ctrl)
	store.EXPECT().
		Upsert(gomock.Any(), "names", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, points []vectorstore.Point) error {
			if len(points) != 1 || points[0].Meta["name"] != "Auth" {
				t.Errorf("points = %+v", points)
			}
			if points[0].ID == "" {
				t.Error("point ID must be derived from the name")
			}
			return nil
		})

	oracle := NewEmbeddingOracle(embedder, store, "names")
	if err := oracle.IndexNames(context.Background(), []string{"Auth"}); err != nil {
		t.Fatalf("IndexNames: %v", err)
	}

	// Empty input never reaches the store.
	if err := oracle.IndexNames(context.Background(), nil); err != nil {
		t.Fatalf("IndexNames(nil): %v", err)
	}
}

func TestEmbeddingOracle_NearestNames(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	embedder := &stubEmbedder{vectors: map[string][]float32{
		"Auth": {1, 0},
	}}
	store := mocks.NewMockVectorStore(ctrl)
	store.EXPECT().
		Search(gomock.Any(), "names", gomock.Any(), 3, nil).
		Return([]vectorstore.SearchResult{
			{PointID: "a", Score: 0.99, Meta: map[string]any{"name": "Auth"}},
			{PointID: "b", Score: 0.91, Meta: map[string]any{"name": "Authentication"}},
			{PointID: "c", Score: 0.80, Meta: map[string]any{"name": "Authorization"}},
		}, nil)

	oracle := NewEmbeddingOracle(embedder, store, "names")
	nearest, err := oracle.NearestNames(context.Background(), "Auth", 3)
	if err != nil {
		t.Fatalf("NearestNames: %v", err)
	}

	// The query name itself is filtered out of its own results.
	if _, ok := nearest["Auth"]; ok {
		t.Error("query name present in results")
	}
	if len(nearest) != 2 || nearest["Authentication"] == 0 {
		t.Errorf("nearest = %v", nearest)
	}
}
