package dto

// LeaderboardEntryItem is one row of the leaderboard response.
type LeaderboardEntryItem struct {
	Rank   int    `json:"rank"`
	UserID string `json:"user_id"`
	Points int    `json:"points"`
}

// LeaderboardResponse is the API response for the leaderboard.
type LeaderboardResponse struct {
	Entries []LeaderboardEntryItem `json:"entries"`
}
