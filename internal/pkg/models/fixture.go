package models

import (
	"strconv"
	"time"
)

// Fixture is one match. HomeTeamName and AwayTeamName are derived at sync
// time by joining the cached team collection; they are not part of the
// external schema.
type Fixture struct {
	ID           int       `json:"id"`
	Code         int       `json:"code"`
	EventID      int       `json:"eventId"`
	HomeTeamID   int       `json:"homeTeamId"`
	AwayTeamID   int       `json:"awayTeamId"`
	HomeTeamName string    `json:"homeTeamName"`
	AwayTeamName string    `json:"awayTeamName"`
	KickoffTime  time.Time `json:"kickoffTime"`
	Started      bool      `json:"started"`
	Finished     bool      `json:"finished"`
	HomeScore    int       `json:"homeScore"`
	AwayScore    int       `json:"awayScore"`
	Difficulty   int       `json:"difficulty"`
}

func (f Fixture) CacheID() string {
	return strconv.Itoa(f.ID)
}
