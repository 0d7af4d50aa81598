package ledger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "ledger.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleRound(n int, id string, net game.Money, outcomes ...game.Outcome) *game.RoundResult {
	r := &game.RoundResult{
		RoundID:      id,
		Round:        n,
		Bet:          game.Dollars(25),
		Net:          net,
		BalanceAfter: game.Dollars(1000) + net,
	}
	for i, o := range outcomes {
		r.Hands = append(r.Hands, game.HandOutcome{Index: i, Outcome: o})
	}
	return r
}

func TestRecordAndRounds(t *testing.T) {
	clock := quartz.NewMock(t)
	store := openTestStore(t, WithClock(clock))
	ctx := context.Background()

	split := sampleRound(2, "r2", game.Dollars(0), game.Win, game.Loss)
	split.Splits = 1
	require.NoError(t, store.Record(ctx, "run-a", sampleRound(1, "r1", game.Dollars(30), game.BlackjackWin)))
	require.NoError(t, store.Record(ctx, "run-a", split))
	require.NoError(t, store.Record(ctx, "run-b", sampleRound(1, "r3", game.Dollars(-25), game.Loss)))

	entries, err := store.Rounds(ctx, "run-a")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "r1", entries[0].RoundID)
	assert.Equal(t, game.Dollars(30), entries[0].Net)
	assert.Equal(t, []game.Outcome{game.BlackjackWin}, entries[0].Outcomes)
	assert.Equal(t, clock.Now().UTC().UnixMilli(), entries[0].RecordedAt.UnixMilli())

	assert.Equal(t, 2, entries[1].Round)
	assert.Equal(t, 1, entries[1].Splits)
	assert.Equal(t, []game.Outcome{game.Win, game.Loss}, entries[1].Outcomes)

	count, net, err := store.Totals(ctx, "run-a")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, game.Dollars(30), net)
}

func TestRecordRejectsDuplicateRound(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, "run", sampleRound(1, "same", 0, game.Push)))
	assert.Error(t, store.Record(ctx, "run", sampleRound(2, "same", 0, game.Push)))
}

func TestLedgerIsAppendOnly(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Record(ctx, "run", sampleRound(1, "r1", 0, game.Push)))

	_, err := store.db.ExecContext(ctx, `UPDATE rounds SET net = 100`)
	assert.ErrorContains(t, err, "append-only")
	_, err = store.db.ExecContext(ctx, `DELETE FROM rounds`)
	assert.ErrorContains(t, err, "append-only")
}

func TestReopenKeepsRounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	ctx := context.Background()

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Record(ctx, "run", sampleRound(1, "r1", game.Dollars(25), game.Win)))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()
	count, _, err := store.Totals(ctx, "run")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestClosedStore(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Close())

	err := store.Record(context.Background(), "run", sampleRound(1, "r1", 0))
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = Open("  ")
	assert.Error(t, err)
}
