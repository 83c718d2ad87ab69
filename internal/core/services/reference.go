package services

import (
	"context"
	"fmt"
	"math"

	"github.com/moodtune-labs/moodtune/backend/internal/core/domain"
	"github.com/moodtune-labs/moodtune/backend/internal/core/ports"
)

// referencePoint is one label centroid inside a ReferenceSet.
type referencePoint struct {
	label  string
	vector []float32
}

// ReferenceSet is an ordered label -> centroid table. It is built once at
// startup, never mutated afterwards, and safe for concurrent reads. Insertion
// order is preserved so similarity ties resolve to the first-seen label.
type ReferenceSet struct {
	points []referencePoint
}

// BuildReferenceSet embeds each canonical sentence and stores the resulting
// centroid under its label, keeping the input order.
func BuildReferenceSet(ctx context.Context, embedder ports.Embedder, sentences []domain.ReferenceSentence) (*ReferenceSet, error) {
	set := &ReferenceSet{points: make([]referencePoint, 0, len(sentences))}
	for _, rs := range sentences {
		vec, err := embedder.EmbedText(ctx, rs.Sentence)
		if err != nil {
			return nil, fmt.Errorf("services: embed reference %q: %w", rs.Label, err)
		}
		set.points = append(set.points, referencePoint{label: rs.Label, vector: vec})
	}
	return set, nil
}

// Len reports how many labels the set holds.
func (s *ReferenceSet) Len() int {
	return len(s.points)
}

// Scores computes the similarity of vec to every centroid, in insertion order.
func (s *ReferenceSet) Scores(vec []float32) []domain.EmotionScore {
	scores := make([]domain.EmotionScore, len(s.points))
	for i, p := range s.points {
		scores[i] = domain.EmotionScore{Label: p.label, Score: cosineSimilarity(vec, p.vector)}
	}
	return scores
}

// cosineSimilarity returns 1 - cosine distance. Accumulation happens in
// float64 to keep the result stable on long vectors. A zero-magnitude input
// scores 0 against everything, as do mismatched vector lengths: a dimension
// mismatch means the embedder misbehaved, and comparing a truncated prefix
// would hide that.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := 0; i < len(a); i++ {
		af, bf := float64(a[i]), float64(b[i])
		dot += af * bf
		na += af * af
		nb += bf * bf
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
