package osuapi

import (
	"context"
	"fmt"
	"time"
)

// ScoresOptions are the query parameters of the user scores endpoints.
type ScoresOptions struct {
	Mode   string `url:"mode,omitempty"`
	Limit  int    `url:"limit,omitempty"`
	Offset int    `url:"offset,omitempty"`
}

// Score is one submitted play.
type Score struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Accuracy  float64   `json:"accuracy"`
	Mods      []string  `json:"mods"`
	Score     int       `json:"score"`
	MaxCombo  int       `json:"max_combo"`
	Passed    bool      `json:"passed"`
	Perfect   bool      `json:"perfect"`
	PP        float64   `json:"pp"`
	Rank      string    `json:"rank"`
	CreatedAt time.Time `json:"created_at"`

	Statistics Statistics `json:"statistics"`
	Beatmap    Beatmap    `json:"beatmap"`
	Beatmapset Beatmapset `json:"beatmapset"`
}

// Statistics are the per-judgement hit counts of a score.
type Statistics struct {
	Count300  int `json:"count_300"`
	Count100  int `json:"count_100"`
	Count50   int `json:"count_50"`
	CountGeki int `json:"count_geki"`
	CountKatu int `json:"count_katu"`
	CountMiss int `json:"count_miss"`
}

// UserBestScores fetches one page of a player's top scores.
func (c *Client) UserBestScores(ctx context.Context, userID int, opt ScoresOptions) ([]Score, error) {
	var scores []Score
	path := fmt.Sprintf("/users/%d/scores/best", userID)
	if err := c.get(ctx, path, opt, &scores); err != nil {
		return nil, err
	}
	return scores, nil
}

// UserRecentScores fetches one page of a player's recent plays.
func (c *Client) UserRecentScores(ctx context.Context, userID int, opt ScoresOptions) ([]Score, error) {
	var scores []Score
	path := fmt.Sprintf("/users/%d/scores/recent", userID)
	if err := c.get(ctx, path, opt, &scores); err != nil {
		return nil, err
	}
	return scores, nil
}
