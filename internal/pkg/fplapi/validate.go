package fplapi

import "fmt"

// Schema checks gate every payload before it is accepted. They reject the
// snapshot as a whole; partial acceptance is never allowed on the write path.

func validateBootstrap(endpoint string, p *RawBootstrap) error {
	if len(p.Events) == 0 {
		return &ValidationError{Endpoint: endpoint, Reason: "no events in payload"}
	}
	if len(p.Teams) == 0 {
		return &ValidationError{Endpoint: endpoint, Reason: "no teams in payload"}
	}
	if len(p.Elements) == 0 {
		return &ValidationError{Endpoint: endpoint, Reason: "no elements in payload"}
	}
	for _, e := range p.Events {
		if e.ID <= 0 {
			return &ValidationError{Endpoint: endpoint, Reason: fmt.Sprintf("event with invalid id %d", e.ID)}
		}
		if e.Name == "" {
			return &ValidationError{Endpoint: endpoint, Reason: fmt.Sprintf("event %d has empty name", e.ID)}
		}
	}
	for _, t := range p.Teams {
		if t.ID <= 0 {
			return &ValidationError{Endpoint: endpoint, Reason: fmt.Sprintf("team with invalid id %d", t.ID)}
		}
		if t.Name == "" {
			return &ValidationError{Endpoint: endpoint, Reason: fmt.Sprintf("team %d has empty name", t.ID)}
		}
	}
	for _, el := range p.Elements {
		if el.ID <= 0 {
			return &ValidationError{Endpoint: endpoint, Reason: fmt.Sprintf("element with invalid id %d", el.ID)}
		}
		if el.Team <= 0 {
			return &ValidationError{Endpoint: endpoint, Reason: fmt.Sprintf("element %d has invalid team %d", el.ID, el.Team)}
		}
	}
	return nil
}

func validateFixtures(endpoint string, fixtures []RawFixture) error {
	for _, f := range fixtures {
		if f.ID <= 0 {
			return &ValidationError{Endpoint: endpoint, Reason: fmt.Sprintf("fixture with invalid id %d", f.ID)}
		}
		if f.TeamH <= 0 || f.TeamA <= 0 {
			return &ValidationError{Endpoint: endpoint, Reason: fmt.Sprintf("fixture %d has invalid team ids", f.ID)}
		}
	}
	return nil
}

func validateLive(endpoint string, p *RawLive) error {
	for _, el := range p.Elements {
		if el.ID <= 0 {
			return &ValidationError{Endpoint: endpoint, Reason: fmt.Sprintf("live element with invalid id %d", el.ID)}
		}
	}
	return nil
}

func validateStandings(endpoint string, p *RawStandings) error {
	if p.League.ID <= 0 {
		return &ValidationError{Endpoint: endpoint, Reason: "standings without league id"}
	}
	for _, r := range p.Standings.Results {
		if r.Entry <= 0 {
			return &ValidationError{Endpoint: endpoint, Reason: fmt.Sprintf("standings entry with invalid id %d", r.Entry)}
		}
	}
	return nil
}
