package models

import (
	"fmt"
	"strconv"
	"strings"
)

// PlayerStat is one element's live performance in one event. Its identity is
// composite: elementId_eventId.
type PlayerStat struct {
	ElementID      int `json:"elementId"`
	EventID        int `json:"eventId"`
	Minutes        int `json:"minutes"`
	GoalsScored    int `json:"goalsScored"`
	Assists        int `json:"assists"`
	CleanSheets    int `json:"cleanSheets"`
	GoalsConceded  int `json:"goalsConceded"`
	OwnGoals       int `json:"ownGoals"`
	PenaltiesSaved int `json:"penaltiesSaved"`
	YellowCards    int `json:"yellowCards"`
	RedCards       int `json:"redCards"`
	Saves          int `json:"saves"`
	Bonus          int `json:"bonus"`
	BPS            int `json:"bps"`
	TotalPoints    int `json:"totalPoints"`
}

func (s PlayerStat) CacheID() string {
	return fmt.Sprintf("%d_%d", s.ElementID, s.EventID)
}

// ParseStatID splits a composite elementId_eventId key.
func ParseStatID(id string) (elementID, eventID int, err error) {
	parts := strings.SplitN(id, "_", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid stat id %q", id)
	}
	elementID, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid stat id %q", id)
	}
	eventID, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid stat id %q", id)
	}
	return elementID, eventID, nil
}
