// Package api exposes the cached collections over HTTP. Responses use one
// envelope: {"data": ...} on success, {"error": {"code", "message"}} on
// failure, with the status derived from the error code.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tonglam/letletme-data-sub006/internal/pkg/config"
	"github.com/tonglam/letletme-data-sub006/internal/service"
)

// Services bundles the use-case entry points the server routes to.
type Services struct {
	Events   *service.EventService
	Phases   *service.PhaseService
	Teams    *service.TeamService
	Players  *service.PlayerService
	Fixtures *service.FixtureService
	Stats    *service.PlayerStatService
	Leagues  *service.LeagueService
}

// Server is the read-only HTTP front of the cached data.
type Server struct {
	httpServer *http.Server
	services   *Services
}

// NewServer builds the server and its routes.
func NewServer(cfg *config.APIConfig, services *Services) *Server {
	s := &Server{services: services}

	readHeaderTimeout := cfg.ReadHeaderTimeout
	if readHeaderTimeout <= 0 {
		readHeaderTimeout = 5 * time.Second
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/events", s.handleEvents)
	mux.HandleFunc("GET /api/events/current", s.handleCurrentEvent)
	mux.HandleFunc("GET /api/events/next", s.handleNextEvent)
	mux.HandleFunc("GET /api/events/last", s.handleLastEvent)
	mux.HandleFunc("GET /api/events/{id}", s.handleEvent)
	mux.HandleFunc("GET /api/events/{id}/fixtures", s.handleEventFixtures)
	mux.HandleFunc("GET /api/events/{id}/live", s.handleEventStats)
	mux.HandleFunc("GET /api/events/{id}/live/{elementId}", s.handleElementStat)
	mux.HandleFunc("GET /api/phases", s.handlePhases)
	mux.HandleFunc("GET /api/phases/{id}", s.handlePhase)
	mux.HandleFunc("GET /api/teams", s.handleTeams)
	mux.HandleFunc("GET /api/teams/{id}", s.handleTeam)
	mux.HandleFunc("GET /api/teams/{id}/players", s.handleTeamPlayers)
	mux.HandleFunc("GET /api/teams/{id}/fixtures", s.handleTeamFixtures)
	mux.HandleFunc("GET /api/players", s.handlePlayers)
	mux.HandleFunc("GET /api/players/{id}", s.handlePlayer)
	mux.HandleFunc("GET /api/fixtures", s.handleFixtures)
	mux.HandleFunc("GET /api/fixtures/{id}", s.handleFixture)
	mux.HandleFunc("GET /api/leagues/{id}/standings", s.handleLeagueStandings)
	mux.HandleFunc("GET /api/leagues/{id}/entries/{entryId}", s.handleLeagueEntry)

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s
}

// Start blocks serving requests until Shutdown or a listener failure.
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the route tree, used by tests and by callers embedding the
// API into another server.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
