package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/moodtune-labs/moodtune/backend/internal/core/domain"
	"github.com/moodtune-labs/moodtune/backend/internal/core/ports"
)

// trackSearchLimit caps how many tracks are fetched for the top genre.
const trackSearchLimit = 10

// ChatRequest is the core-facing input for one conversation turn.
type ChatRequest struct {
	Text       string
	SessionID  string
	Context    []string
	UserGenres []string
}

// Orchestrator composes the classifier, toxicity gate, ranker and responder
// into one request cycle, plus session bookkeeping around it.
type Orchestrator struct {
	classifier *Classifier
	ranker     *GenreRanker
	responder  *Responder
	repo       ports.SessionRepository
	tracks     ports.TrackProvider
}

// NewOrchestrator constructs an Orchestrator. repo and tracks may be nil;
// sessions and track suggestions are then skipped.
func NewOrchestrator(classifier *Classifier, ranker *GenreRanker, responder *Responder, repo ports.SessionRepository, tracks ports.TrackProvider) *Orchestrator {
	return &Orchestrator{
		classifier: classifier,
		ranker:     ranker,
		responder:  responder,
		repo:       repo,
		tracks:     tracks,
	}
}

// AnalyzeMessage runs the full cycle for one message: classification,
// toxicity, genre ranking, reply selection and track lookup. The only hard
// failure is a broken embedding provider; everything downstream degrades.
func (o *Orchestrator) AnalyzeMessage(ctx context.Context, req ChatRequest) (domain.Analysis, error) {
	history := req.Context
	if len(history) == 0 && req.SessionID != "" && o.repo != nil {
		history = o.sessionHistory(ctx, req.SessionID)
	}

	cls, err := o.classifier.Classify(ctx, req.Text)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("services: classify: %w", err)
	}

	toxic := IsToxic(req.Text)

	genres, err := o.ranker.Rank(ctx, req.Text, cls.DominantEmotion, req.UserGenres, history, cls.EmotionScores)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("services: rank genres: %w", err)
	}

	reply := o.responder.Respond(ctx, req.Text, cls.DominantIntent, cls.DominantEmotion, genres, toxic)

	var tracks []domain.Track
	if !toxic && len(genres) > 0 && o.tracks != nil {
		found, err := o.tracks.SearchByGenre(ctx, genres[0], trackSearchLimit)
		switch {
		case err == nil:
			tracks = found
		case errors.Is(err, ports.ErrNoTracks):
			// An empty catalog result is an expected outcome, not a failure.
		default:
			log.Printf("WARN orchestrator: track search for %q failed: %v", genres[0], err)
		}
	}

	return domain.Analysis{
		DominantEmotion:   cls.DominantEmotion,
		Confidence:        cls.Confidence,
		IsToxic:           toxic,
		RecommendedGenres: genres,
		GeneratedResponse: reply,
		Tracks:            tracks,
	}, nil
}

// MessageFor builds the persistable chat message for an analyzed turn.
func (o *Orchestrator) MessageFor(sessionID, text string, a domain.Analysis) domain.ChatMessage {
	return domain.ChatMessage{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		Text:       text,
		Emotion:    a.DominantEmotion,
		Confidence: a.Confidence,
		CreatedAt:  time.Now().UTC(),
	}
}

// CreateSession starts a new conversation.
func (o *Orchestrator) CreateSession(ctx context.Context) (domain.ChatSession, error) {
	if o.repo == nil {
		return domain.ChatSession{}, fmt.Errorf("services: session store not configured")
	}
	s := domain.ChatSession{ID: uuid.NewString(), CreatedAt: time.Now().UTC()}
	if err := o.repo.CreateSession(ctx, s); err != nil {
		return domain.ChatSession{}, fmt.Errorf("services: create session: %w", err)
	}
	return s, nil
}

// GetSession loads a session with all its messages.
func (o *Orchestrator) GetSession(ctx context.Context, id string) (domain.ChatSession, error) {
	if o.repo == nil {
		return domain.ChatSession{}, fmt.Errorf("services: session store not configured")
	}
	return o.repo.GetSession(ctx, id)
}

// DeleteSession removes a session and its messages.
func (o *Orchestrator) DeleteSession(ctx context.Context, id string) error {
	if o.repo == nil {
		return fmt.Errorf("services: session store not configured")
	}
	return o.repo.DeleteSession(ctx, id)
}

// sessionHistory fetches recent session messages to use as context. Lookup
// failures degrade to an empty history; a stale session must not block the
// reply.
func (o *Orchestrator) sessionHistory(ctx context.Context, sessionID string) []string {
	msgs, err := o.repo.RecentMessages(ctx, sessionID, contextWindow)
	if err != nil {
		log.Printf("WARN orchestrator: session history for %s unavailable: %v", sessionID, err)
		return nil
	}
	history := make([]string, 0, len(msgs))
	for _, m := range msgs {
		history = append(history, m.Text)
	}
	return history
}
