package models

import "strconv"

// Team is one club of the season.
type Team struct {
	ID        int    `json:"id"`
	Code      int    `json:"code"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Strength  int    `json:"strength"`
	Position  int    `json:"position"`
	Points    int    `json:"points"`
	Win       int    `json:"win"`
	Draw      int    `json:"draw"`
	Loss      int    `json:"loss"`
}

func (t Team) CacheID() string {
	return strconv.Itoa(t.ID)
}
