package models

// Voice is the slice of a voice clip the overlay consumes. It is constructed
// elsewhere and passed in; the overlay seeds its own local counters from the
// counts below and never writes back.
type Voice struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	OwnerName    string `json:"owner_name"`
	PictureURL   string `json:"picture_url,omitempty"`
	AudioURL     string `json:"audio_url,omitempty"`
	LikeCount    int    `json:"like_count"`
	CommentCount int    `json:"comment_count"`
	PlayCount    int    `json:"play_count"`
}
