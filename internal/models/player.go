package models

import "time"

type RankTrend = string

const (
	TrendUp   RankTrend = "up"
	TrendDown RankTrend = "down"
	TrendSame RankTrend = "same"
	TrendNew  RankTrend = "new"
)

type Player struct {
	ID        string `db:"id" json:"id"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Country   string `db:"country" json:"country"`

	CurrentRank  int       `db:"current_rank" json:"current_rank"`
	PreviousRank int       `db:"previous_rank" json:"previous_rank"`
	RankTrend    RankTrend `db:"rank_trend" json:"rank_trend"`

	TotalPoints   float64 `db:"total_points" json:"total_points"`
	AveragePoints float64 `db:"average_points" json:"average_points"`
	TotalEvents   int     `db:"total_events" json:"total_events"`
	FlagURL       string  `db:"flag_url" json:"flag_url"`

	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Name is the display name used for search and charts.
func (p Player) Name() string {
	if p.LastName == "" {
		return p.FirstName
	}
	if p.FirstName == "" {
		return p.LastName
	}
	return p.FirstName + " " + p.LastName
}
