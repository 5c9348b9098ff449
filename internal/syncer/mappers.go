package syncer

import (
	"fmt"
	"time"

	"github.com/tonglam/letletme-data-sub006/internal/pkg/enums"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/fplapi"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/models"
)

// Mappers are pure: they either produce a complete domain record or fail.
// Date strings are canonicalized to UTC, which is the one documented lossy
// transform of the round-trip.

func mapEvent(raw fplapi.RawEvent) (models.Event, error) {
	deadline, err := time.Parse(time.RFC3339, raw.DeadlineTime)
	if err != nil {
		return models.Event{}, fmt.Errorf("event %d has invalid deadline %q", raw.ID, raw.DeadlineTime)
	}

	highest := 0
	if raw.HighestScore != nil {
		highest = *raw.HighestScore
	}

	return models.Event{
		ID:           raw.ID,
		Name:         raw.Name,
		DeadlineTime: deadline.UTC(),
		Finished:     raw.Finished,
		IsPrevious:   raw.IsPrevious,
		IsCurrent:    raw.IsCurrent,
		IsNext:       raw.IsNext,
		AverageScore: raw.AverageEntryScore,
		HighestScore: highest,
	}, nil
}

func mapPhase(raw fplapi.RawPhase) (models.Phase, error) {
	if raw.StartEvent > raw.StopEvent {
		return models.Phase{}, fmt.Errorf("phase %d has start event %d after stop event %d", raw.ID, raw.StartEvent, raw.StopEvent)
	}
	return models.Phase{
		ID:         raw.ID,
		Name:       raw.Name,
		StartEvent: raw.StartEvent,
		StopEvent:  raw.StopEvent,
	}, nil
}

func mapTeam(raw fplapi.RawTeam) (models.Team, error) {
	if raw.ShortName == "" {
		return models.Team{}, fmt.Errorf("team %d has empty short name", raw.ID)
	}
	return models.Team{
		ID:        raw.ID,
		Code:      raw.Code,
		Name:      raw.Name,
		ShortName: raw.ShortName,
		Strength:  raw.Strength,
		Position:  raw.Position,
		Points:    raw.Points,
		Win:       raw.Win,
		Draw:      raw.Draw,
		Loss:      raw.Loss,
	}, nil
}

func mapPlayer(raw fplapi.RawElement) (models.Player, error) {
	elementType := enums.ElementType(raw.ElementType)
	if !elementType.IsValid() {
		return models.Player{}, fmt.Errorf("element %d has unknown element type %d", raw.ID, raw.ElementType)
	}
	return models.Player{
		ID:          raw.ID,
		Code:        raw.Code,
		ElementType: elementType,
		TeamID:      raw.Team,
		WebName:     raw.WebName,
		FirstName:   raw.FirstName,
		SecondName:  raw.SecondName,
		Price:       raw.NowCost,
		StartPrice:  raw.NowCost - raw.CostChangeStart,
	}, nil
}

// mapFixture derives the team-name fields by joining the cached team
// collection. An id the join cannot resolve fails the mapping.
func mapFixture(raw fplapi.RawFixture, teamNames map[int]string) (models.Fixture, error) {
	homeName, ok := teamNames[raw.TeamH]
	if !ok {
		return models.Fixture{}, fmt.Errorf("fixture %d references unknown home team %d", raw.ID, raw.TeamH)
	}
	awayName, ok := teamNames[raw.TeamA]
	if !ok {
		return models.Fixture{}, fmt.Errorf("fixture %d references unknown away team %d", raw.ID, raw.TeamA)
	}

	// Unscheduled fixtures carry null event and kickoff; those map to zero
	// values, they are not errors.
	eventID := 0
	if raw.Event != nil {
		eventID = *raw.Event
	}
	var kickoff time.Time
	if raw.KickoffTime != "" {
		parsed, err := time.Parse(time.RFC3339, raw.KickoffTime)
		if err != nil {
			return models.Fixture{}, fmt.Errorf("fixture %d has invalid kickoff %q", raw.ID, raw.KickoffTime)
		}
		kickoff = parsed.UTC()
	}

	homeScore, awayScore := 0, 0
	if raw.TeamHScore != nil {
		homeScore = *raw.TeamHScore
	}
	if raw.TeamAScore != nil {
		awayScore = *raw.TeamAScore
	}

	return models.Fixture{
		ID:           raw.ID,
		Code:         raw.Code,
		EventID:      eventID,
		HomeTeamID:   raw.TeamH,
		AwayTeamID:   raw.TeamA,
		HomeTeamName: homeName,
		AwayTeamName: awayName,
		KickoffTime:  kickoff,
		Started:      raw.Started,
		Finished:     raw.Finished,
		HomeScore:    homeScore,
		AwayScore:    awayScore,
		Difficulty:   raw.TeamHDifficulty,
	}, nil
}

func mapPlayerStat(eventID int, raw fplapi.RawLiveElement) (models.PlayerStat, error) {
	if raw.ID <= 0 {
		return models.PlayerStat{}, fmt.Errorf("live element has invalid id %d", raw.ID)
	}
	return models.PlayerStat{
		ElementID:      raw.ID,
		EventID:        eventID,
		Minutes:        raw.Stats.Minutes,
		GoalsScored:    raw.Stats.GoalsScored,
		Assists:        raw.Stats.Assists,
		CleanSheets:    raw.Stats.CleanSheets,
		GoalsConceded:  raw.Stats.GoalsConceded,
		OwnGoals:       raw.Stats.OwnGoals,
		PenaltiesSaved: raw.Stats.PenaltiesSaved,
		YellowCards:    raw.Stats.YellowCards,
		RedCards:       raw.Stats.RedCards,
		Saves:          raw.Stats.Saves,
		Bonus:          raw.Stats.Bonus,
		BPS:            raw.Stats.BPS,
		TotalPoints:    raw.Stats.TotalPoints,
	}, nil
}

func mapLeagueEntry(leagueID int, leagueName string, raw fplapi.RawStandingsEntry) (models.LeagueEntry, error) {
	if raw.Entry <= 0 {
		return models.LeagueEntry{}, fmt.Errorf("standings row has invalid entry id %d", raw.Entry)
	}
	return models.LeagueEntry{
		LeagueID:   leagueID,
		LeagueName: leagueName,
		EntryID:    raw.Entry,
		EntryName:  raw.EntryName,
		PlayerName: raw.PlayerName,
		Rank:       raw.Rank,
		LastRank:   raw.LastRank,
		EventTotal: raw.EventTotal,
		Total:      raw.Total,
	}, nil
}
