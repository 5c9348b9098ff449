package fplapi

// Raw payload shapes, field names as delivered by the source. Pointers mark
// fields the source nulls out before a value exists.

type RawBootstrap struct {
	Events   []RawEvent   `json:"events"`
	Phases   []RawPhase   `json:"phases"`
	Teams    []RawTeam    `json:"teams"`
	Elements []RawElement `json:"elements"`
}

type RawEvent struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	DeadlineTime      string `json:"deadline_time"`
	Finished          bool   `json:"finished"`
	IsPrevious        bool   `json:"is_previous"`
	IsCurrent         bool   `json:"is_current"`
	IsNext            bool   `json:"is_next"`
	AverageEntryScore int    `json:"average_entry_score"`
	HighestScore      *int   `json:"highest_score"`
}

type RawPhase struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	StartEvent int    `json:"start_event"`
	StopEvent  int    `json:"stop_event"`
}

type RawTeam struct {
	ID        int    `json:"id"`
	Code      int    `json:"code"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Strength  int    `json:"strength"`
	Position  int    `json:"position"`
	Points    int    `json:"points"`
	Win       int    `json:"win"`
	Draw      int    `json:"draw"`
	Loss      int    `json:"loss"`
}

type RawElement struct {
	ID              int    `json:"id"`
	Code            int    `json:"code"`
	ElementType     int    `json:"element_type"`
	Team            int    `json:"team"`
	WebName         string `json:"web_name"`
	FirstName       string `json:"first_name"`
	SecondName      string `json:"second_name"`
	NowCost         int    `json:"now_cost"`
	CostChangeStart int    `json:"cost_change_start"`
}

type RawFixture struct {
	ID              int    `json:"id"`
	Code            int    `json:"code"`
	Event           *int   `json:"event"`
	TeamH           int    `json:"team_h"`
	TeamA           int    `json:"team_a"`
	KickoffTime     string `json:"kickoff_time"`
	Started         bool   `json:"started"`
	Finished        bool   `json:"finished"`
	TeamHScore      *int   `json:"team_h_score"`
	TeamAScore      *int   `json:"team_a_score"`
	TeamHDifficulty int    `json:"team_h_difficulty"`
}

type RawLive struct {
	Elements []RawLiveElement `json:"elements"`
}

type RawLiveElement struct {
	ID    int          `json:"id"`
	Stats RawLiveStats `json:"stats"`
}

type RawLiveStats struct {
	Minutes        int `json:"minutes"`
	GoalsScored    int `json:"goals_scored"`
	Assists        int `json:"assists"`
	CleanSheets    int `json:"clean_sheets"`
	GoalsConceded  int `json:"goals_conceded"`
	OwnGoals       int `json:"own_goals"`
	PenaltiesSaved int `json:"penalties_saved"`
	YellowCards    int `json:"yellow_cards"`
	RedCards       int `json:"red_cards"`
	Saves          int `json:"saves"`
	Bonus          int `json:"bonus"`
	BPS            int `json:"bps"`
	TotalPoints    int `json:"total_points"`
}

type RawStandings struct {
	League    RawLeague        `json:"league"`
	Standings RawStandingsPage `json:"standings"`
}

type RawLeague struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type RawStandingsPage struct {
	HasNext bool                `json:"has_next"`
	Page    int                 `json:"page"`
	Results []RawStandingsEntry `json:"results"`
}

type RawStandingsEntry struct {
	ID         int    `json:"id"`
	Entry      int    `json:"entry"`
	EntryName  string `json:"entry_name"`
	PlayerName string `json:"player_name"`
	Rank       int    `json:"rank"`
	LastRank   int    `json:"last_rank"`
	EventTotal int    `json:"event_total"`
	Total      int    `json:"total"`
}
