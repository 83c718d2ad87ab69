package services

import (
	"bytes"
	"context"
	"errors"
	"log"
	"math/rand"
	"os"
	"strings"
	"testing"

	"github.com/moodtune-labs/moodtune/backend/internal/core/domain"
	"github.com/moodtune-labs/moodtune/backend/internal/core/ports"
)

// --- Mocks ---

type mockSessionRepo struct {
	sessions  map[string]domain.ChatSession
	recent    []domain.ChatMessage
	createErr error
	recentErr error
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]domain.ChatSession)}
}

func (m *mockSessionRepo) CreateSession(ctx context.Context, s domain.ChatSession) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.sessions[s.ID] = s
	return nil
}

func (m *mockSessionRepo) GetSession(ctx context.Context, id string) (domain.ChatSession, error) {
	s, ok := m.sessions[id]
	if !ok {
		return domain.ChatSession{}, domain.ErrNotFound
	}
	return s, nil
}

func (m *mockSessionRepo) DeleteSession(ctx context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *mockSessionRepo) AppendMessage(ctx context.Context, msg domain.ChatMessage) error {
	s := m.sessions[msg.SessionID]
	s.Messages = append(s.Messages, msg)
	m.sessions[msg.SessionID] = s
	return nil
}

func (m *mockSessionRepo) RecentMessages(ctx context.Context, sessionID string, n int) ([]domain.ChatMessage, error) {
	if m.recentErr != nil {
		return nil, m.recentErr
	}
	return m.recent, nil
}

func (m *mockSessionRepo) UpdateMessageEnergy(ctx context.Context, messageID string, energy float64) error {
	return nil
}

type mockTrackProvider struct {
	tracks      []domain.Track
	err         error
	calledGenre string
	called      bool
}

func (m *mockTrackProvider) SearchByGenre(ctx context.Context, genre string, limit int) ([]domain.Track, error) {
	m.called = true
	m.calledGenre = genre
	if m.err != nil {
		return nil, m.err
	}
	return m.tracks, nil
}

// newTestOrchestrator wires a full engine around the stub embedder.
func newTestOrchestrator(t *testing.T, emb *stubEmbedder, repo *mockSessionRepo, tracks *mockTrackProvider) *Orchestrator {
	t.Helper()
	classifier := newTestClassifier(t, emb)
	ranker := NewGenreRanker(emb, rand.New(rand.NewSource(11)))
	responder := NewResponder(nil, rand.New(rand.NewSource(11)))

	// Assign the optional ports directly so an absent mock stays a nil
	// interface rather than a typed nil.
	o := NewOrchestrator(classifier, ranker, responder, nil, nil)
	if repo != nil {
		o.repo = repo
	}
	if tracks != nil {
		o.tracks = tracks
	}
	return o
}

func TestOrchestrator_HappyPartyScenario(t *testing.T) {
	const text = "I feel amazing today, let's party!"
	vectors := referenceVectors(16)
	vectors[text] = unitVec(16, 0) // aligned with the "happy" centroid
	emb := &stubEmbedder{vectors: vectors}

	tracks := &mockTrackProvider{tracks: []domain.Track{{ID: "t1", Title: "Groove", Artist: "Band"}}}
	o := newTestOrchestrator(t, emb, nil, tracks)

	got, err := o.AnalyzeMessage(context.Background(), ChatRequest{Text: text})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	if got.DominantEmotion != "happy" {
		t.Errorf("dominant emotion = %q, want happy", got.DominantEmotion)
	}
	if got.IsToxic {
		t.Error("message flagged toxic")
	}
	if len(got.RecommendedGenres) == 0 || len(got.RecommendedGenres) > 5 {
		t.Fatalf("got %d genres, want 1..5", len(got.RecommendedGenres))
	}
	allowed := make(map[string]bool)
	for _, g := range domain.EmotionGenres["happy"] {
		allowed[g] = true
	}
	for _, g := range got.RecommendedGenres {
		if !allowed[g] {
			t.Errorf("genre %q not in the happy default list", g)
		}
	}
	matched := false
	for _, tpl := range emotionTemplates["happy"] {
		if strings.HasPrefix(got.GeneratedResponse, tpl) {
			matched = true
			break
		}
	}
	if !matched {
		t.Errorf("response %q not drawn from the happy template set", got.GeneratedResponse)
	}
	if !tracks.called || tracks.calledGenre != got.RecommendedGenres[0] {
		t.Errorf("track search used %q, want top genre %q", tracks.calledGenre, got.RecommendedGenres[0])
	}
	if len(got.Tracks) != 1 {
		t.Errorf("got %d tracks, want 1", len(got.Tracks))
	}
}

func TestOrchestrator_ToxicScenario(t *testing.T) {
	const text = "you are stupid"
	vectors := referenceVectors(16)
	vectors[text] = unitVec(16, 2) // lands on "angry", irrelevant to the gate
	emb := &stubEmbedder{vectors: vectors}

	tracks := &mockTrackProvider{tracks: []domain.Track{{ID: "t1"}}}
	o := newTestOrchestrator(t, emb, nil, tracks)

	got, err := o.AnalyzeMessage(context.Background(), ChatRequest{Text: text})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !got.IsToxic {
		t.Fatal("message not flagged toxic")
	}
	if got.GeneratedResponse != SafetyReply {
		t.Fatalf("response = %q, want fixed safety reply", got.GeneratedResponse)
	}
	if tracks.called {
		t.Error("track search ran for a toxic message")
	}
	if len(got.Tracks) != 0 {
		t.Errorf("got %d tracks for toxic message, want none", len(got.Tracks))
	}
}

func TestOrchestrator_TrackSearchFailureDegrades(t *testing.T) {
	const text = "music please"
	vectors := referenceVectors(16)
	vectors[text] = unitVec(16, 0)
	emb := &stubEmbedder{vectors: vectors}

	tracks := &mockTrackProvider{err: errors.New("spotify down")}
	o := newTestOrchestrator(t, emb, nil, tracks)

	got, err := o.AnalyzeMessage(context.Background(), ChatRequest{Text: text})
	if err != nil {
		t.Fatalf("track failure should not fail the request: %v", err)
	}
	if len(got.Tracks) != 0 {
		t.Errorf("got %d tracks, want none after provider failure", len(got.Tracks))
	}
	if got.GeneratedResponse == "" {
		t.Error("reply missing after provider failure")
	}
}

func TestOrchestrator_EmptyTrackResultIsNotAFailure(t *testing.T) {
	const text = "music please"
	vectors := referenceVectors(16)
	vectors[text] = unitVec(16, 0)
	emb := &stubEmbedder{vectors: vectors}

	tracks := &mockTrackProvider{err: ports.ErrNoTracks}
	o := newTestOrchestrator(t, emb, nil, tracks)

	var logs bytes.Buffer
	log.SetOutput(&logs)
	defer log.SetOutput(os.Stderr)

	got, err := o.AnalyzeMessage(context.Background(), ChatRequest{Text: text})
	if err != nil {
		t.Fatalf("empty catalog result should not fail the request: %v", err)
	}
	if len(got.Tracks) != 0 {
		t.Errorf("got %d tracks, want none for an empty search result", len(got.Tracks))
	}
	if strings.Contains(logs.String(), "track search") {
		t.Errorf("empty result logged as a failure: %q", logs.String())
	}
}

func TestOrchestrator_SessionHistoryFeedsContext(t *testing.T) {
	const text = "more of that"
	vectors := referenceVectors(16)
	vectors[text] = unitVec(16, 0)
	// The ranker embeds text plus the stored history; give that exact
	// combination a vector so a missing-key failure would surface.
	vectors["more of that earlier message"] = unitVec(16, 0)
	vectors[describeGenre("pop")] = unitVec(16, 0)
	emb := &stubEmbedder{vectors: vectors}

	repo := newMockSessionRepo()
	repo.recent = []domain.ChatMessage{{Text: "earlier message"}}

	o := newTestOrchestrator(t, emb, repo, nil)
	got, err := o.AnalyzeMessage(context.Background(), ChatRequest{
		Text:       text,
		SessionID:  "s1",
		UserGenres: []string{"pop"},
	})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(got.RecommendedGenres) != 1 || got.RecommendedGenres[0] != "pop" {
		t.Fatalf("genres = %v, want [pop]", got.RecommendedGenres)
	}
}

func TestOrchestrator_HistoryLookupFailureDegrades(t *testing.T) {
	const text = "hello there"
	vectors := referenceVectors(16)
	vectors[text] = unitVec(16, 0)
	emb := &stubEmbedder{vectors: vectors}

	repo := newMockSessionRepo()
	repo.recentErr = errors.New("db locked")

	o := newTestOrchestrator(t, emb, repo, nil)
	if _, err := o.AnalyzeMessage(context.Background(), ChatRequest{Text: text, SessionID: "s1"}); err != nil {
		t.Fatalf("history failure should not fail the request: %v", err)
	}
}

func TestOrchestrator_EmbeddingFailureIsHardError(t *testing.T) {
	emb := &stubEmbedder{vectors: referenceVectors(16)}
	o := newTestOrchestrator(t, emb, nil, nil)

	emb.err = errors.New("model offline")
	if _, err := o.AnalyzeMessage(context.Background(), ChatRequest{Text: "anything"}); err == nil {
		t.Fatal("expected embedding failure to propagate")
	}
}

func TestOrchestrator_SessionLifecycle(t *testing.T) {
	emb := &stubEmbedder{vectors: referenceVectors(16)}
	repo := newMockSessionRepo()
	o := newTestOrchestrator(t, emb, repo, nil)

	s, err := o.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if s.ID == "" {
		t.Fatal("session id empty")
	}

	loaded, err := o.GetSession(context.Background(), s.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if loaded.ID != s.ID {
		t.Fatalf("loaded id = %q, want %q", loaded.ID, s.ID)
	}

	if err := o.DeleteSession(context.Background(), s.ID); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if _, err := o.GetSession(context.Background(), s.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("get after delete = %v, want ErrNotFound", err)
	}
}
