package models

import "strconv"

// LeagueEntry is one manager's row in a classic league standing.
type LeagueEntry struct {
	LeagueID   int    `json:"leagueId"`
	LeagueName string `json:"leagueName"`
	EntryID    int    `json:"entryId"`
	EntryName  string `json:"entryName"`
	PlayerName string `json:"playerName"`
	Rank       int    `json:"rank"`
	LastRank   int    `json:"lastRank"`
	EventTotal int    `json:"eventTotal"`
	Total      int    `json:"total"`
}

func (l LeagueEntry) CacheID() string {
	return strconv.Itoa(l.EntryID)
}
