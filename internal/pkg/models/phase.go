package models

import "strconv"

// Phase groups consecutive events (e.g. "Overall", "September").
type Phase struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	StartEvent int    `json:"startEvent"`
	StopEvent  int    `json:"stopEvent"`
}

func (p Phase) CacheID() string {
	return strconv.Itoa(p.ID)
}
