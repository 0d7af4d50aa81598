// Package ledger keeps an append-only SQLite record of played rounds.
// Amounts are stored in cents.
package ledger

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/game"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// ErrNotConfigured is returned by a nil or closed Store.
var ErrNotConfigured = errors.New("ledger is not configured")

// Entry is one recorded round
type Entry struct {
	RunID        string
	RoundID      string
	Round        int
	Bet          game.Money
	Net          game.Money
	BalanceAfter game.Money
	Outcomes     []game.Outcome
	Splits       int
	Doubles      int
	Blackjack    bool
	RecordedAt   time.Time
}

// Store persists rounds in SQLite
type Store struct {
	db    *sql.DB
	clock quartz.Clock
}

// Option configures a Store
type Option func(*Store)

// WithClock sets the clock used for RecordedAt
func WithClock(c quartz.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// Open opens or creates the ledger at path.
func Open(path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("ledger path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// SQLite allows one writer; batch simulations share this handle.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	s := &Store{db: db, clock: quartz.NewReal()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Record appends a completed round.
func (s *Store) Record(ctx context.Context, runID string, r *game.RoundResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return ErrNotConfigured
	}
	outcomes := make([]string, len(r.Hands))
	for i, h := range r.Hands {
		outcomes[i] = h.Outcome.String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO rounds (
		   run_id, round_id, round_number, bet, net, balance_after,
		   outcomes, splits, doubles, blackjack, recorded_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		r.RoundID,
		r.Round,
		int64(r.Bet),
		int64(r.Net),
		int64(r.BalanceAfter),
		strings.Join(outcomes, ","),
		r.Splits,
		r.Doubles,
		r.Blackjack,
		s.clock.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("record round %d: %w", r.Round, err)
	}
	return nil
}

// Rounds returns every round recorded for runID in play order.
func (s *Store) Rounds(ctx context.Context, runID string) ([]Entry, error) {
	if s == nil || s.db == nil {
		return nil, ErrNotConfigured
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, round_id, round_number, bet, net, balance_after,
		        outcomes, splits, doubles, blackjack, recorded_at
		   FROM rounds
		  WHERE run_id = ?
		  ORDER BY round_number`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query rounds: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                     Entry
			bet, net, balance, at int64
			outcomes              string
		)
		if err := rows.Scan(&e.RunID, &e.RoundID, &e.Round, &bet, &net, &balance,
			&outcomes, &e.Splits, &e.Doubles, &e.Blackjack, &at); err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}
		e.Bet, e.Net, e.BalanceAfter = game.Money(bet), game.Money(net), game.Money(balance)
		e.RecordedAt = time.UnixMilli(at).UTC()
		e.Outcomes, err = parseOutcomes(outcomes)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rounds: %w", err)
	}
	return entries, nil
}

// Totals returns the number of rounds and the summed net for runID.
func (s *Store) Totals(ctx context.Context, runID string) (int, game.Money, error) {
	if s == nil || s.db == nil {
		return 0, 0, ErrNotConfigured
	}
	var count int
	var net int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(net), 0) FROM rounds WHERE run_id = ?`, runID,
	).Scan(&count, &net)
	if err != nil {
		return 0, 0, fmt.Errorf("sum rounds: %w", err)
	}
	return count, game.Money(net), nil
}

func parseOutcomes(s string) ([]game.Outcome, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	outcomes := make([]game.Outcome, len(parts))
	for i, p := range parts {
		switch p {
		case "win":
			outcomes[i] = game.Win
		case "loss":
			outcomes[i] = game.Loss
		case "push":
			outcomes[i] = game.Push
		case "blackjack":
			outcomes[i] = game.BlackjackWin
		default:
			return nil, fmt.Errorf("unknown outcome %q", p)
		}
	}
	return outcomes, nil
}
