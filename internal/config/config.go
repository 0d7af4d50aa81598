// Package config loads table and session settings from an optional HCL file,
// then applies BLACKJACK_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// EnvPrefix is prepended to every environment override, e.g. BLACKJACK_DECKS.
const EnvPrefix = "BLACKJACK_"

// Config is the complete runtime configuration
type Config struct {
	Table    Table
	Bankroll Bankroll
	Session  Session
}

// Table describes the shoe, the seats and the blackjack payout
type Table struct {
	Decks             int     `env:"DECKS"`
	ReshuffleRatio    float64 `env:"RESHUFFLE_RATIO"`
	Seats             int     `env:"SEATS"`
	PayoutNumerator   int64   `env:"PAYOUT_NUMERATOR"`
	PayoutDenominator int64   `env:"PAYOUT_DENOMINATOR"`
}

// Bankroll amounts are in dollars
type Bankroll struct {
	StartingBalance float64 `env:"STARTING_BALANCE"`
	DefaultBet      float64 `env:"DEFAULT_BET"`
	MinBet          float64 `env:"MIN_BET"`
}

// Session holds run-level settings
type Session struct {
	LogDir string        `env:"LOG_DIR"`
	Pace   time.Duration `env:"PACE"`
	Rounds int           `env:"ROUNDS"`
	Ledger string        `env:"LEDGER"`
}

// fileConfig mirrors the HCL layout. Every block and attribute is optional;
// anything left out keeps its default.
type fileConfig struct {
	Table    *tableBlock    `hcl:"table,block"`
	Bankroll *bankrollBlock `hcl:"bankroll,block"`
	Session  *sessionBlock  `hcl:"session,block"`
}

type tableBlock struct {
	Decks             *int     `hcl:"decks,optional"`
	ReshuffleRatio    *float64 `hcl:"reshuffle_ratio,optional"`
	Seats             *int     `hcl:"seats,optional"`
	PayoutNumerator   *int64   `hcl:"payout_numerator,optional"`
	PayoutDenominator *int64   `hcl:"payout_denominator,optional"`
}

type bankrollBlock struct {
	StartingBalance *float64 `hcl:"starting_balance,optional"`
	DefaultBet      *float64 `hcl:"default_bet,optional"`
	MinBet          *float64 `hcl:"min_bet,optional"`
}

type sessionBlock struct {
	LogDir *string `hcl:"log_dir,optional"`
	Pace   *string `hcl:"pace,optional"`
	Rounds *int    `hcl:"rounds,optional"`
	Ledger *string `hcl:"ledger,optional"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Table: Table{
			Decks:             6,
			ReshuffleRatio:    deck.DefaultReshuffleRatio,
			Seats:             3,
			PayoutNumerator:   6,
			PayoutDenominator: 5,
		},
		Bankroll: Bankroll{
			StartingBalance: 1000,
			DefaultBet:      25,
			MinBet:          1,
		},
		Session: Session{
			LogDir: "logs",
			Pace:   400 * time.Millisecond,
			Rounds: 1000,
		},
	}
}

// Load reads filename over the defaults, then applies environment overrides.
// A missing file is not an error.
func Load(filename string) (*Config, error) {
	cfg := Default()
	if filename != "" {
		if err := cfg.loadFile(filename); err != nil {
			return nil, err
		}
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c *Config) loadFile(filename string) error {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	return c.merge(fc)
}

func (c *Config) merge(fc fileConfig) error {
	if t := fc.Table; t != nil {
		set(&c.Table.Decks, t.Decks)
		set(&c.Table.ReshuffleRatio, t.ReshuffleRatio)
		set(&c.Table.Seats, t.Seats)
		set(&c.Table.PayoutNumerator, t.PayoutNumerator)
		set(&c.Table.PayoutDenominator, t.PayoutDenominator)
	}
	if b := fc.Bankroll; b != nil {
		set(&c.Bankroll.StartingBalance, b.StartingBalance)
		set(&c.Bankroll.DefaultBet, b.DefaultBet)
		set(&c.Bankroll.MinBet, b.MinBet)
	}
	if s := fc.Session; s != nil {
		set(&c.Session.LogDir, s.LogDir)
		set(&c.Session.Rounds, s.Rounds)
		set(&c.Session.Ledger, s.Ledger)
		if s.Pace != nil {
			d, err := time.ParseDuration(*s.Pace)
			if err != nil {
				return fmt.Errorf("session.pace: %w", err)
			}
			c.Session.Pace = d
		}
	}
	return nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Rules converts the table and bankroll settings for the engine
func (c *Config) Rules() game.Rules {
	return game.Rules{
		Decks:             c.Table.Decks,
		ReshuffleRatio:    c.Table.ReshuffleRatio,
		Seats:             c.Table.Seats,
		StartingBalance:   game.Dollars(c.Bankroll.StartingBalance),
		DefaultBet:        game.Dollars(c.Bankroll.DefaultBet),
		MinBet:            game.Dollars(c.Bankroll.MinBet),
		PayoutNumerator:   c.Table.PayoutNumerator,
		PayoutDenominator: c.Table.PayoutDenominator,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []error
	if err := c.Rules().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Session.Rounds < 1 {
		errs = append(errs, fmt.Errorf("rounds must be at least 1, got %d", c.Session.Rounds))
	}
	if c.Session.Pace < 0 {
		errs = append(errs, fmt.Errorf("pace must not be negative, got %s", c.Session.Pace))
	}
	if c.Session.LogDir == "" {
		errs = append(errs, errors.New("log_dir must be set"))
	}
	return errors.Join(errs...)
}
