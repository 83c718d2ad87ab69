package domain

// EmotionScore pairs an emotion label with its cosine similarity to the
// analyzed text.
type EmotionScore struct {
	Label string
	Score float64
}

// Classification is the outcome of nearest-centroid matching for one message.
//
// Confidence is the similarity of the winning emotion BEFORE any fallback
// relabeling: when the winner scores below the confidence floor the label is
// overridden to "neutral" but the number is left untouched.
type Classification struct {
	DominantEmotion string
	Confidence      float64
	DominantIntent  string

	// EmotionScores holds every reference emotion sorted by similarity,
	// highest first. The ranker uses the top entries for secondary-emotion
	// reinforcement.
	EmotionScores []EmotionScore
}

// Analysis is the complete per-message result returned to the client.
// It is constructed per request and never persisted as a whole; only the
// chat message derived from it is stored.
type Analysis struct {
	DominantEmotion   string   `json:"dominantEmotion"`
	Confidence        float64  `json:"confidence"`
	IsToxic           bool     `json:"isToxic"`
	RecommendedGenres []string `json:"recommendedGenres"`
	GeneratedResponse string   `json:"generatedResponse"`
	Tracks            []Track  `json:"tracks,omitempty"`
}
