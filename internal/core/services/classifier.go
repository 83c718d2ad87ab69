package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/moodtune-labs/moodtune/backend/internal/core/domain"
	"github.com/moodtune-labs/moodtune/backend/internal/core/ports"
)

// confidenceFloor is the similarity below which the winning emotion is
// overridden to the neutral fallback.
const confidenceFloor = 0.5

// Classifier performs nearest-centroid emotion and intent matching.
type Classifier struct {
	embedder ports.Embedder
	emotions *ReferenceSet
	intents  *ReferenceSet
}

// NewClassifier wires a classifier to its embedder and prebuilt reference sets.
func NewClassifier(embedder ports.Embedder, emotions, intents *ReferenceSet) *Classifier {
	return &Classifier{
		embedder: embedder,
		emotions: emotions,
		intents:  intents,
	}
}

// Classify embeds the text once and matches it against both reference sets.
//
// When the best emotion similarity falls below the confidence floor the
// dominant emotion becomes "neutral", but the returned confidence stays the
// original winner's similarity. Intent uses the raw text with no threshold;
// the winning intent always stands.
func (c *Classifier) Classify(ctx context.Context, text string) (domain.Classification, error) {
	vec, err := c.embedder.EmbedText(ctx, text)
	if err != nil {
		return domain.Classification{}, fmt.Errorf("services: embed message: %w", err)
	}

	emotionScores := c.emotions.Scores(vec)
	best := argmax(emotionScores)

	dominant := emotionScores[best].Label
	confidence := emotionScores[best].Score
	if confidence < confidenceFloor {
		dominant = domain.FallbackEmotion
	}

	intentScores := c.intents.Scores(vec)
	intent := intentScores[argmax(intentScores)].Label

	// Stable sort keeps insertion order among equal scores.
	ranked := make([]domain.EmotionScore, len(emotionScores))
	copy(ranked, emotionScores)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })

	return domain.Classification{
		DominantEmotion: dominant,
		Confidence:      confidence,
		DominantIntent:  intent,
		EmotionScores:   ranked,
	}, nil
}

// argmax returns the index of the highest score. Strict comparison keeps the
// first-seen label on ties.
func argmax(scores []domain.EmotionScore) int {
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i].Score > scores[best].Score {
			best = i
		}
	}
	return best
}
