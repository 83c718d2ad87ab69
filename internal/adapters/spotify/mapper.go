package spotify

import (
	"strings"

	"github.com/moodtune-labs/moodtune/backend/internal/core/domain"
)

// mapTrackToDomain converts a raw Spotify track to a clean domain track.
func mapTrackToDomain(wt wireTrack) domain.Track {
	var artistNames []string
	for _, a := range wt.Artists {
		artistNames = append(artistNames, a.Name)
	}

	coverURL := ""
	if len(wt.Album.Images) > 0 {
		coverURL = wt.Album.Images[0].URL
	}

	return domain.Track{
		ID:         wt.ID,
		Title:      wt.Name,
		Artist:     strings.Join(artistNames, ", "),
		Album:      wt.Album.Name,
		CoverURL:   coverURL,
		PreviewURL: wt.PreviewURL,
		URI:        wt.URI,
	}
}
