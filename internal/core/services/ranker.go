package services

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/moodtune-labs/moodtune/backend/internal/core/domain"
	"github.com/moodtune-labs/moodtune/backend/internal/core/ports"
)

const maxRecommendations = 5

// contextWindow is how many trailing conversation turns feed the combined
// embedding on the preference path.
const contextWindow = 3

// Boost term sets for the tempo/energy/mode characteristics of the dominant
// emotion. Matched as substrings of the lowercased genre name.
var (
	fastTempoTerms  = []string{"dance", "techno", "house", "edm", "rock", "metal", "punk"}
	slowTempoTerms  = []string{"ballad", "ambient", "chill", "acoustic", "slow"}
	highEnergyTerms = []string{"rock", "dance", "metal", "punk", "edm"}
	lowEnergyTerms  = []string{"ambient", "acoustic", "chill", "sleep"}
	minorModeTerms  = []string{"blues", "dark", "metal", "emo"}
	majorModeTerms  = []string{"pop", "happy"}
)

// GenreRanker orders candidate genres against an emotional state.
//
// With no user preferences it samples from the emotion's default genre list
// using the injected randomness source. With preferences it is fully
// deterministic given the embedder: genre descriptions are scored against
// the combined conversation text plus characteristic boosts.
type GenreRanker struct {
	embedder ports.Embedder
	rng      *lockedRand
}

// NewGenreRanker builds a ranker. The rng is required and must be dedicated
// to this ranker; tests pass a seeded source to pin down the no-preference
// sampling.
func NewGenreRanker(embedder ports.Embedder, rng *rand.Rand) *GenreRanker {
	return &GenreRanker{embedder: embedder, rng: newLockedRand(rng)}
}

// Rank returns up to five genres for the message, best first.
// topEmotions is the classifier's descending per-emotion score list; entries
// past the first contribute secondary-emotion reinforcement.
func (r *GenreRanker) Rank(ctx context.Context, text, emotion string, userGenres, history []string, topEmotions []domain.EmotionScore) ([]string, error) {
	if len(userGenres) == 0 {
		return r.sampleDefaults(emotion), nil
	}

	// Repeated preferences collapse to their first occurrence so the final
	// list can never hold duplicates.
	userGenres = dedupe(userGenres)

	combined := combineWithHistory(text, history)
	ctxVec, err := r.embedder.EmbedText(ctx, combined)
	if err != nil {
		return nil, fmt.Errorf("services: embed conversation: %w", err)
	}

	traits := domain.TraitsFor(emotion)

	type scoredGenre struct {
		genre string
		score float64
	}
	scored := make([]scoredGenre, 0, len(userGenres))
	for _, genre := range userGenres {
		vec, err := r.embedder.EmbedText(ctx, describeGenre(genre))
		if err != nil {
			return nil, fmt.Errorf("services: embed genre %q: %w", genre, err)
		}

		lower := strings.ToLower(genre)
		score := cosineSimilarity(ctxVec, vec)
		score += keywordBoost(lower, traits.Keywords, 0.1)
		score += tempoBoost(lower, traits.Tempo)
		score += energyBoost(lower, traits.Energy)
		score += modeBoost(lower, traits.Mode)
		score += secondaryBoost(lower, topEmotions)
		if score > 1.0 {
			score = 1.0
		}
		scored = append(scored, scoredGenre{genre: genre, score: score})
	}

	// Stable sort keeps the original preference order among equal scores.
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	top := make([]string, 0, maxRecommendations)
	for _, sg := range scored {
		if len(top) == maxRecommendations {
			break
		}
		top = append(top, sg.genre)
	}

	// Top up from unused preferences, preserving their original order.
	if len(top) < maxRecommendations {
		for _, genre := range userGenres {
			if len(top) == maxRecommendations {
				break
			}
			if !containsString(top, genre) {
				top = append(top, genre)
			}
		}
	}

	return top, nil
}

// sampleDefaults picks up to five genres from the emotion's default list,
// randomized without replacement.
func (r *GenreRanker) sampleDefaults(emotion string) []string {
	pool, ok := domain.EmotionGenres[emotion]
	if !ok {
		pool = domain.FallbackGenres
	}
	n := len(pool)
	count := maxRecommendations
	if n < count {
		count = n
	}
	picks := make([]string, 0, count)
	for _, idx := range r.rng.Perm(n)[:count] {
		picks = append(picks, pool[idx])
	}
	return picks
}

// combineWithHistory joins the message with the trailing context turns,
// oldest first, separated by single spaces.
func combineWithHistory(text string, history []string) string {
	if len(history) == 0 {
		return text
	}
	recent := history
	if len(recent) > contextWindow {
		recent = recent[len(recent)-contextWindow:]
	}
	parts := append([]string{text}, recent...)
	return strings.Join(parts, " ")
}

// describeGenre resolves the description to embed for a genre, synthesizing
// one for genres missing from the catalog.
func describeGenre(genre string) string {
	if desc, ok := domain.GenreDescriptions[strings.ToLower(genre)]; ok {
		return desc
	}
	return fmt.Sprintf("Music in the %s genre", genre)
}

// keywordBoost adds per-keyword credit for bidirectional containment between
// keyword and genre name.
func keywordBoost(genreLower string, keywords []string, perMatch float64) float64 {
	var boost float64
	for _, kw := range keywords {
		if strings.Contains(genreLower, kw) || strings.Contains(kw, genreLower) {
			boost += perMatch
		}
	}
	return boost
}

func tempoBoost(genreLower, tempo string) float64 {
	switch tempo {
	case "fast":
		if containsAny(genreLower, fastTempoTerms) {
			return 0.15
		}
	case "slow":
		if containsAny(genreLower, slowTempoTerms) {
			return 0.15
		}
	}
	return 0
}

func energyBoost(genreLower, energy string) float64 {
	switch energy {
	case "high":
		if containsAny(genreLower, highEnergyTerms) {
			return 0.15
		}
	case "low":
		if containsAny(genreLower, lowEnergyTerms) {
			return 0.15
		}
	}
	return 0
}

func modeBoost(genreLower, mode string) float64 {
	switch mode {
	case "minor":
		if containsAny(genreLower, minorModeTerms) {
			return 0.1
		}
	case "major":
		if containsAny(genreLower, majorModeTerms) {
			return 0.1
		}
	}
	return 0
}

// secondaryBoost reinforces genres that match the keywords of the 2nd and
// 3rd ranked emotions, weighted by how close each came to the primary.
func secondaryBoost(genreLower string, topEmotions []domain.EmotionScore) float64 {
	if len(topEmotions) < 2 {
		return 0
	}
	primary := topEmotions[0].Score

	limit := len(topEmotions)
	if limit > 3 {
		limit = 3
	}

	var boost float64
	for _, sec := range topEmotions[1:limit] {
		weight := 0.0
		if primary != 0 {
			weight = sec.Score / primary
		}
		traits, ok := domain.EmotionTraits[sec.Label]
		if !ok {
			continue
		}
		boost += keywordBoost(genreLower, traits.Keywords, 0.05*weight)
	}
	return boost
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

func dedupe(genres []string) []string {
	seen := make(map[string]struct{}, len(genres))
	out := genres[:0:0]
	for _, g := range genres {
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
