package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lox/blackjack/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blackjack.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultMatchesEngineDefaults(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, game.DefaultRules(), cfg.Rules())
	assert.Equal(t, "logs", cfg.Session.LogDir)
	assert.Equal(t, 1000, cfg.Session.Rounds)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
table {
  decks              = 2
  seats              = 5
  payout_numerator   = 3
  payout_denominator = 2
}

bankroll {
  starting_balance = 500
  default_bet      = 10.5
}

session {
  log_dir = "/tmp/bj"
  pace    = "0s"
  ledger  = "rounds.db"
}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 2, cfg.Table.Decks)
	assert.Equal(t, 5, cfg.Table.Seats)
	assert.Equal(t, 0.25, cfg.Table.ReshuffleRatio, "unset attributes keep defaults")
	assert.Equal(t, "3/2", cfg.Rules().PayoutRatio())
	assert.Equal(t, game.Dollars(500), cfg.Rules().StartingBalance)
	assert.Equal(t, game.Money(1050), cfg.Rules().DefaultBet)
	assert.Equal(t, game.Dollars(1), cfg.Rules().MinBet)
	assert.Equal(t, "/tmp/bj", cfg.Session.LogDir)
	assert.Equal(t, time.Duration(0), cfg.Session.Pace)
	assert.Equal(t, 1000, cfg.Session.Rounds)
	assert.Equal(t, "rounds.db", cfg.Session.Ledger)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
table {
  decks = 2
}
`)
	t.Setenv("BLACKJACK_DECKS", "8")
	t.Setenv("BLACKJACK_MIN_BET", "5")
	t.Setenv("BLACKJACK_PACE", "1s")
	t.Setenv("BLACKJACK_LOG_DIR", "envlogs")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Table.Decks)
	assert.Equal(t, 5.0, cfg.Bankroll.MinBet)
	assert.Equal(t, time.Second, cfg.Session.Pace)
	assert.Equal(t, "envlogs", cfg.Session.LogDir)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "table {"},
		{"unknown block", "dealer {}\n"},
		{"wrong type", "table {\n  decks = \"six\"\n}\n"},
		{"bad pace", "session {\n  pace = \"soon\"\n}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadBadEnv(t *testing.T) {
	t.Setenv("BLACKJACK_SEATS", "lots")
	_, err := Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"no decks", func(c *Config) { c.Table.Decks = 0 }, "decks"},
		{"no rounds", func(c *Config) { c.Session.Rounds = 0 }, "rounds"},
		{"negative pace", func(c *Config) { c.Session.Pace = -time.Second }, "pace"},
		{"no log dir", func(c *Config) { c.Session.LogDir = "" }, "log_dir"},
		{"bet above min", func(c *Config) { c.Bankroll.MinBet = 50 }, "default bet"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}
