package ports

import (
	"context"
	"errors"

	"github.com/moodtune-labs/moodtune/backend/internal/core/domain"
)

// ErrNoTracks indicates a genre search returned no usable tracks.
var ErrNoTracks = errors.New("no tracks found")

// TrackProvider looks up concrete tracks for a genre. A failing or empty
// lookup degrades the chat response to a reply without tracks; it is never
// a request failure.
type TrackProvider interface {
	SearchByGenre(ctx context.Context, genre string, limit int) ([]domain.Track, error)
}
