package spotify

// Wire types for the subset of the Spotify search response we consume.

type searchResponse struct {
	Tracks struct {
		Items []wireTrack `json:"items"`
	} `json:"tracks"`
}

type wireTrack struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	URI        string       `json:"uri"`
	PreviewURL string       `json:"preview_url"`
	Artists    []wireArtist `json:"artists"`
	Album      wireAlbum    `json:"album"`
}

type wireArtist struct {
	Name string `json:"name"`
}

type wireAlbum struct {
	Name   string      `json:"name"`
	Images []wireImage `json:"images"`
}

type wireImage struct {
	URL string `json:"url"`
}
