package statistics

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/lox/blackjack/internal/fileutil"
)

// WriteHistory writes the balance history as CSV with one row per round.
// Round 0 is the starting balance.
func (s *Statistics) WriteHistory(path string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"round", "balance"}); err != nil {
		return err
	}
	for i, b := range s.History {
		if err := w.Write([]string{strconv.Itoa(i), strconv.FormatFloat(b.Dollars(), 'f', 2, 64)}); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("encode balance history: %w", err)
	}
	return fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644)
}
