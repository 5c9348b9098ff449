// Package models holds the internal domain records. Fields map 1:1 from the
// external schema except where noted; JSON tags define the cache wire form.
package models

import (
	"strconv"
	"time"
)

// Event is one gameweek of the season.
type Event struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	DeadlineTime time.Time `json:"deadlineTime"`
	Finished     bool      `json:"finished"`
	IsPrevious   bool      `json:"isPrevious"`
	IsCurrent    bool      `json:"isCurrent"`
	IsNext       bool      `json:"isNext"`
	AverageScore int       `json:"averageScore"`
	HighestScore int       `json:"highestScore"`
}

// CacheID returns the hash field key for this record.
func (e Event) CacheID() string {
	return strconv.Itoa(e.ID)
}
