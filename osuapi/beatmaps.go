package osuapi

import (
	"context"
	"fmt"

	"osukit/beatmap"
)

// Beatmapset is the API's view of a beatmap set.
type Beatmapset struct {
	ID            int       `json:"id"`
	Artist        string    `json:"artist"`
	ArtistUnicode string    `json:"artist_unicode"`
	Title         string    `json:"title"`
	TitleUnicode  string    `json:"title_unicode"`
	Creator       string    `json:"creator"`
	Source        string    `json:"source"`
	Status        string    `json:"status"`
	PlayCount     int       `json:"play_count"`
	PreviewURL    string    `json:"preview_url"`
	Beatmaps      []Beatmap `json:"beatmaps"`
}

// Beatmap is the API's view of one difficulty.
type Beatmap struct {
	ID               int     `json:"id"`
	BeatmapsetID     int     `json:"beatmapset_id"`
	Mode             string  `json:"mode"`
	ModeInt          int     `json:"mode_int"`
	Version          string  `json:"version"`
	DifficultyRating float64 `json:"difficulty_rating"`
	AR               float64 `json:"ar"`
	CS               float64 `json:"cs"`
	Drain            float64 `json:"drain"`
	Accuracy         float64 `json:"accuracy"`
	BPM              float64 `json:"bpm"`
	TotalLength      int     `json:"total_length"`
	HitLength        int     `json:"hit_length"`
	CountCircles     int     `json:"count_circles"`
	CountSliders     int     `json:"count_sliders"`
	CountSpinners    int     `json:"count_spinners"`
	MaxCombo         int     `json:"max_combo"`
	Status           string  `json:"status"`
	Checksum         string  `json:"checksum"`
}

// GetBeatmapset fetches one beatmap set with its difficulties.
func (c *Client) GetBeatmapset(ctx context.Context, id int) (*Beatmapset, error) {
	var set Beatmapset
	if err := c.get(ctx, fmt.Sprintf("/beatmapsets/%d", id), nil, &set); err != nil {
		return nil, err
	}
	return &set, nil
}

// LookupBeatmap finds a difficulty by its .osu file checksum.
func (c *Client) LookupBeatmap(ctx context.Context, checksum string) (*Beatmap, error) {
	opt := struct {
		Checksum string `url:"checksum"`
	}{checksum}
	var b Beatmap
	if err := c.get(ctx, "/beatmaps/lookup", opt, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Set converts the API metadata into a model BeatmapSet skeleton: shared
// scalars and difficulty keys, with no parsed map content behind them.
func (s *Beatmapset) Set() *beatmap.BeatmapSet {
	out := &beatmap.BeatmapSet{
		Title:         s.Title,
		TitleUnicode:  s.TitleUnicode,
		Artist:        s.Artist,
		ArtistUnicode: s.ArtistUnicode,
		Creator:       s.Creator,
		Source:        s.Source,
		ID:            s.ID,
		Maps:          make(map[string]*beatmap.Beatmap, len(s.Beatmaps)),
	}
	for _, b := range s.Beatmaps {
		out.Maps[b.Version] = &beatmap.Beatmap{
			Metadata: beatmap.Metadata{
				Title:         s.Title,
				TitleUnicode:  s.TitleUnicode,
				Artist:        s.Artist,
				ArtistUnicode: s.ArtistUnicode,
				Creator:       s.Creator,
				Source:        s.Source,
				Version:       b.Version,
				BeatmapID:     b.ID,
				BeatmapSetID:  b.BeatmapsetID,
			},
			General: beatmap.General{Mode: b.ModeInt},
			Difficulty: beatmap.Difficulty{
				HPDrainRate:       b.Drain,
				CircleSize:        b.CS,
				OverallDifficulty: b.Accuracy,
				ApproachRate:      b.AR,
			},
		}
	}
	return out
}
