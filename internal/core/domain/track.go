package domain

// Track represents a musical track suggested alongside a chat reply.
type Track struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Album      string `json:"album,omitempty"`
	CoverURL   string `json:"coverUrl,omitempty"`
	PreviewURL string `json:"previewUrl,omitempty"`
	URI        string `json:"uri,omitempty"`
}
