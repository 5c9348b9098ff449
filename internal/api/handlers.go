package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/tonglam/letletme-data-sub006/internal/pkg/errs"
)

type envelope struct {
	Data  any            `json:"data,omitempty"`
	Error *errorEnvelope `json:"error,omitempty"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(envelope{Data: data})
}

func writeError(w http.ResponseWriter, err error) {
	apiErr := errs.ToAPIError(err)
	if apiErr.HTTPStatus() >= http.StatusInternalServerError {
		slog.Error("Request failed", "code", apiErr.Code, "error", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.HTTPStatus())
	_ = json.NewEncoder(w).Encode(envelope{
		Error: &errorEnvelope{Code: apiErr.Code, Message: apiErr.Message},
	})
}

// pathInt parses a path segment as an integer id. A non-numeric segment is a
// VALIDATION_ERROR like any other bad input.
func pathInt(r *http.Request, name string) (int, error) {
	raw := r.PathValue(name)
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValidationError(name, raw, err)
	}
	return id, nil
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.services.Events.GetAllEvents(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, events)
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	event, err := s.services.Events.GetEvent(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, event)
}

func (s *Server) handleCurrentEvent(w http.ResponseWriter, r *http.Request) {
	event, err := s.services.Events.GetCurrentEvent(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, event)
}

func (s *Server) handleNextEvent(w http.ResponseWriter, r *http.Request) {
	event, err := s.services.Events.GetNextEvent(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, event)
}

func (s *Server) handleLastEvent(w http.ResponseWriter, r *http.Request) {
	event, err := s.services.Events.GetLastEvent(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, event)
}

func (s *Server) handleEventFixtures(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	fixtures, err := s.services.Fixtures.GetFixturesByEvent(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, fixtures)
}

func (s *Server) handleEventStats(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	stats, err := s.services.Stats.GetEventStats(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, stats)
}

func (s *Server) handleElementStat(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathInt(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	elementID, err := pathInt(r, "elementId")
	if err != nil {
		writeError(w, err)
		return
	}
	stat, err := s.services.Stats.GetStat(r.Context(), eventID, elementID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, stat)
}

func (s *Server) handlePhases(w http.ResponseWriter, r *http.Request) {
	phases, err := s.services.Phases.GetAllPhases(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, phases)
}

func (s *Server) handlePhase(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	phase, err := s.services.Phases.GetPhase(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, phase)
}

func (s *Server) handleTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.services.Teams.GetAllTeams(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, teams)
}

func (s *Server) handleTeam(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	team, err := s.services.Teams.GetTeam(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, team)
}

func (s *Server) handleTeamPlayers(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	players, err := s.services.Players.GetPlayersByTeam(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, players)
}

func (s *Server) handleTeamFixtures(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	fixtures, err := s.services.Fixtures.GetFixturesByTeam(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, fixtures)
}

func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.services.Players.GetAllPlayers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, players)
}

func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	player, err := s.services.Players.GetPlayer(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, player)
}

func (s *Server) handleFixtures(w http.ResponseWriter, r *http.Request) {
	fixtures, err := s.services.Fixtures.GetAllFixtures(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, fixtures)
}

func (s *Server) handleFixture(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	fixture, err := s.services.Fixtures.GetFixture(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, fixture)
}

func (s *Server) handleLeagueStandings(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	entries, err := s.services.Leagues.GetStandings(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, entries)
}

func (s *Server) handleLeagueEntry(w http.ResponseWriter, r *http.Request) {
	leagueID, err := pathInt(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	entryID, err := pathInt(r, "entryId")
	if err != nil {
		writeError(w, err)
		return
	}
	entry, err := s.services.Leagues.GetEntry(r.Context(), leagueID, entryID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, entry)
}
