package activity

// RecentActivityRequest asks for a user's newest feed entries.
type RecentActivityRequest struct {
	UserID string `json:"user_id"`
	Limit  int    `json:"limit,omitempty"`
}

// RecentActivityResponse carries the feed slice, newest first.
type RecentActivityResponse struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}
