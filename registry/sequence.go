package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"

	"github.com/dalgorosas/sistema-informes-dalgoro/config"
)

// ErrSequence means the counter tab's row count could not be turned into
// a positive sequence number. Fatal: generation aborts before any
// document is written.
var ErrSequence = errors.New("could not derive the report sequence number")

var seqHeaders = []string{"timestamp", "responsable", "proyecto_id"}

const (
	seqLockTTL   = 30 * time.Second
	seqTimestamp = "2006-01-02 15:04:05"
)

// Reserve claims the next report sequence number: it appends a
// timestamped row to the counter tab and derives the sequence from the
// resulting row count (row 1 is the header, so the new row at position N
// carries sequence N-1). Counter rows are never updated or deleted.
//
// The append-then-count protocol is only collision-free while the
// backing store serializes appends and reads-after-write. Two truly
// concurrent callers against plain Sheets can observe the same count.
// When Redis is configured, reservations are additionally serialized
// through a redislock mutex, which closes that window across replicas
// sharing the same Redis; without Redis the inherited behavior is kept
// as-is.
func (c *Client) Reserve(ctx context.Context, responsible, proyectoID string) (int, error) {
	if locker := config.GetRedisLock(); locker != nil {
		lock, err := locker.Obtain(ctx, "informes:seq:"+c.cfg.SpreadsheetID, seqLockTTL, &redislock.Options{
			RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(150*time.Millisecond), 40),
		})
		if err != nil {
			return 0, fmt.Errorf("could not obtain sequence lock: %w", err)
		}
		defer lock.Release(context.WithoutCancel(ctx))
	}
	return c.reserve(ctx, responsible, proyectoID)
}

func (c *Client) reserve(ctx context.Context, responsible, proyectoID string) (int, error) {
	tab := c.cfg.SeqSheetName
	if err := c.ensureHeaders(ctx, tab, seqHeaders); err != nil {
		return 0, err
	}

	ts := time.Now().In(c.cfg.Timezone).Format(seqTimestamp)
	if err := c.ws.AppendRow(ctx, tab, []string{ts, responsible, proyectoID}); err != nil {
		return 0, err
	}

	rows, err := c.ws.ReadAll(ctx, tab)
	if err != nil {
		return 0, err
	}
	seq := len(rows) - 1
	if seq < 1 {
		return 0, fmt.Errorf("%w: sheet %q has %d rows", ErrSequence, tab, len(rows))
	}
	return seq, nil
}
