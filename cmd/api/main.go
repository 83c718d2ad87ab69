package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/moodtune-labs/moodtune/backend/internal/adapters/ollama"
	"github.com/moodtune-labs/moodtune/backend/internal/adapters/rest"
	"github.com/moodtune-labs/moodtune/backend/internal/adapters/spotify"
	"github.com/moodtune-labs/moodtune/backend/internal/adapters/sqlite"
	"github.com/moodtune-labs/moodtune/backend/internal/core/domain"
	"github.com/moodtune-labs/moodtune/backend/internal/core/ports"
	"github.com/moodtune-labs/moodtune/backend/internal/core/services"
	"github.com/moodtune-labs/moodtune/backend/internal/worker"
)

func main() {
	// 1. Configuration (Environment Variables)
	// Only the embedding backend is required; everything else degrades.
	ollamaClient := ollama.NewClient(
		os.Getenv("OLLAMA_HOST"),
		os.Getenv("OLLAMA_EMBED_MODEL"),
		os.Getenv("OLLAMA_CHAT_MODEL"),
	)

	// 2. Initialize "Driven" Adapters (The Tools)
	// -- Database Adapter
	dbPath := os.Getenv("MOODTUNE_DB")
	if dbPath == "" {
		dbPath = "moodtune.db"
	}
	repo, err := sqlite.NewAdapter(dbPath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	defer repo.Close()

	// -- Spotify Adapter (optional: chat works without track suggestions)
	var tracks ports.TrackProvider
	clientID := os.Getenv("SPOTIFY_CLIENT_ID")
	clientSecret := os.Getenv("SPOTIFY_CLIENT_SECRET")
	if clientID != "" && clientSecret != "" {
		tracks = spotify.NewClient(clientID, clientSecret)
	} else {
		log.Println("WARN main: SPOTIFY_CLIENT_ID/SECRET not set, track suggestions disabled")
	}

	// 3. Initialize Core Logic (The Driver)
	// Reference sets are embedded once at startup. A dead embedding backend
	// means nothing downstream can work, so crash early.
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancelStartup()

	emotions, err := services.BuildReferenceSet(startupCtx, ollamaClient, domain.EmotionSentences)
	if err != nil {
		log.Fatalf("FATAL: Failed to embed emotion references: %v", err)
	}
	intents, err := services.BuildReferenceSet(startupCtx, ollamaClient, domain.IntentSentences)
	if err != nil {
		log.Fatalf("FATAL: Failed to embed intent references: %v", err)
	}

	// Each component gets its own randomness source: the lock guarding a
	// source lives inside the component that wraps it.
	seed := time.Now().UnixNano()

	classifier := services.NewClassifier(ollamaClient, emotions, intents)
	ranker := services.NewGenreRanker(ollamaClient, rand.New(rand.NewSource(seed)))

	// The generator is opt-in: template replies need no model round-trip.
	var responder *services.Responder
	if os.Getenv("MOODTUNE_RESPONSE_MODE") == "generated" {
		responder = services.NewResponder(ollamaClient, rand.New(rand.NewSource(seed+1)))
	} else {
		responder = services.NewResponder(nil, rand.New(rand.NewSource(seed+1)))
	}

	svc := services.NewOrchestrator(classifier, ranker, responder, repo, tracks)

	// 4. Initialize "Driving" Adapter (The Interface)
	// The HTTP handler talks to the Service.
	pool := worker.NewPool(repo, 100)
	pool.Start(2)
	defer pool.Stop()

	handler := rest.NewHandler(svc, pool)

	// 5. Start the Server
	log.Println("------------------------------------------------")
	log.Println("🎧 MoodTune API is running on http://localhost:8080")
	log.Println("------------------------------------------------")

	srv := &http.Server{
		Addr:              ":8080",
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal(err)
		}
	case <-ctx.Done():
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}
