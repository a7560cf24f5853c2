package dto

import "time"

// AwardResponse is one award catalog entry
type AwardResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Points      int    `json:"points"`
	Tier        string `json:"tier"`
}

// UserAwardResponse is one earned award record
type UserAwardResponse struct {
	ID       string    `json:"id"`
	AwardID  string    `json:"award_id"`
	EarnedAt time.Time `json:"earned_at"`
	TaskID   string    `json:"task_id,omitempty"`
}

// StreakResponse is the user's current day streak state
type StreakResponse struct {
	CurrentStreak int        `json:"current_streak"`
	LongestStreak int        `json:"longest_streak"`
	LastActiveDay *time.Time `json:"last_active_day,omitempty"`
}

// AwardSummaryResponse is the body of GET /api/awards
type AwardSummaryResponse struct {
	Catalog     []AwardResponse     `json:"catalog"`
	Earned      []UserAwardResponse `json:"earned"`
	TotalPoints int                 `json:"total_points"`
	Streak      StreakResponse      `json:"streak"`
}
