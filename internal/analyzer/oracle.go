package analyzer

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_similarity_oracle.go -package=mocks groupscope/internal/analyzer SimilarityOracle

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"groupscope/internal/vectorstore"
)

// SimilarityOracle scores how similar two group names are in [0, 1]. The
// engine consumes it only through this interface; a pure-string default and
// an embedding-backed implementation are selected at composition time.
type SimilarityOracle interface {
	Score(ctx context.Context, a, b string) (float64, error)
}

// Embedder generates embedding vectors for texts. Defined from the
// consumer's perspective; satisfied by llm.EmbeddingsClient.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// StringOracle is the default oracle: pure edit-distance similarity with
// semantic normalization taking priority.
type StringOracle struct{}

// Score returns 1.0 for semantically identical names, otherwise the
// normalized Levenshtein similarity. It never fails.
func (StringOracle) Score(_ context.Context, a, b string) (float64, error) {
	if SemanticallyIdentical(a, b) {
		return 1.0, nil
	}
	return Similarity(a, b), nil
}

// EmbeddingOracle scores name similarity by embedding both names and
// comparing the vectors. It can additionally maintain a vector collection
// of known names for nearest-neighbor candidate retrieval.
type EmbeddingOracle struct {
	embedder   Embedder
	store      vectorstore.VectorStore
	collection string
}

// NewEmbeddingOracle creates an embedding-backed similarity oracle.
func NewEmbeddingOracle(embedder Embedder, store vectorstore.VectorStore, collection string) *EmbeddingOracle {
	return &EmbeddingOracle{
		embedder:   embedder,
		store:      store,
		collection: collection,
	}
}

// Score embeds both names and returns their cosine similarity.
func (o *EmbeddingOracle) Score(ctx context.Context, a, b string) (float64, error) {
	vectors, err := o.embedder.EmbedTexts(ctx, []string{a, b})
	if err != nil {
		return 0, fmt.Errorf("failed to embed names: %w", err)
	}
	if len(vectors) != 2 {
		return 0, fmt.Errorf("expected 2 embeddings, got %d", len(vectors))
	}
	return cosine(vectors[0], vectors[1]), nil
}

// IndexNames upserts embedding points for the given names. Point IDs are
// derived from the name so re-indexing overwrites instead of duplicating.
func (o *EmbeddingOracle) IndexNames(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	vectors, err := o.embedder.EmbedTexts(ctx, names)
	if err != nil {
		return fmt.Errorf("failed to embed names: %w", err)
	}
	if len(vectors) != len(names) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(names), len(vectors))
	}

	points := make([]vectorstore.Point, len(names))
	for i, name := range names {
		points[i] = vectorstore.Point{
			ID:   uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String(),
			Vec:  vectors[i],
			Meta: map[string]any{"name": name},
		}
	}
	return o.store.Upsert(ctx, o.collection, points)
}

// NearestNames returns up to k indexed names closest to the given name,
// with their similarity scores.
func (o *EmbeddingOracle) NearestNames(ctx context.Context, name string, k int) (map[string]float64, error) {
	vectors, err := o.embedder.EmbedTexts(ctx, []string{name})
	if err != nil {
		return nil, fmt.Errorf("failed to embed name: %w", err)
	}

	results, err := o.store.Search(ctx, o.collection, vectors[0], k, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to search names: %w", err)
	}

	nearest := make(map[string]float64, len(results))
	for _, res := range results {
		if n, ok := res.Meta["name"].(string); ok && n != name {
			nearest[n] = float64(res.Score)
		}
	}
	return nearest, nil
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
