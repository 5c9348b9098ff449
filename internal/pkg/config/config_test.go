package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const validConfig = `
fpl:
  base_url: "https://example.com/api/"
  timeout: 30s
postgres:
  dsn: "postgres://u:p@localhost/db"
redis:
  addr: "localhost:6379"
  db: 2
sync:
  season: "2425"
  interval: 30m
  league_ids: [314, 967]
  live_stats: true
api:
  port: 8080
  read_header_timeout: 5s
health:
  port: 8081
  read_header_timeout: 5s
logging:
  level: "debug"
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.FPL.Timeout != 30*time.Second {
		t.Fatalf("timeout = %v", cfg.FPL.Timeout)
	}
	if cfg.Sync.Season != "2425" {
		t.Fatalf("season = %q", cfg.Sync.Season)
	}
	if len(cfg.Sync.LeagueIDs) != 2 || cfg.Sync.LeagueIDs[0] != 314 {
		t.Fatalf("league ids = %v", cfg.Sync.LeagueIDs)
	}
	if !cfg.Sync.LiveStats {
		t.Fatal("live_stats not parsed")
	}
	if cfg.Redis.DB != 2 {
		t.Fatalf("redis db = %d", cfg.Redis.DB)
	}
}

func TestLoadRejectsMissingRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		drop    string
		wantMsg string
	}{
		{"no base url", "base_url", "fpl.base_url"},
		{"no dsn", "dsn", "postgres.dsn"},
		{"no redis addr", "addr", "redis.addr"},
		{"no season", "season", "sync.season"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lines []string
			for _, line := range strings.Split(validConfig, "\n") {
				if strings.Contains(line, tt.drop+":") {
					continue
				}
				lines = append(lines, line)
			}
			_, err := Load(writeConfig(t, strings.Join(lines, "\n")))
			if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("err = %v, want mention of %s", err, tt.wantMsg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load succeeded on a missing file")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "fpl: [unclosed")); err == nil {
		t.Fatal("Load succeeded on malformed yaml")
	}
}
