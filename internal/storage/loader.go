// internal/storage/loader.go
//
// Generic batched loader shared by the backends. It cuts the coerced rows
// into batches and invokes a provided bulk-insert function per batch, so each
// backend can use its most efficient primitive (Postgres COPY, SQLite
// prepared INSERT) behind the same loop and progress logging.

package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Giomelox/Be-Analytic-ETL/internal/metrics"
)

// CopyFn abstracts a backend's bulk insert capability. Implementations insert
// the provided rows (aligned to the columns order) and return the number of
// rows inserted. The function must cancel promptly when ctx is done.
type CopyFn func(ctx context.Context, columns []string, rows [][]any) (int64, error)

// LoadBatches feeds rows to copyFn in batches of batchSize and returns the
// total number of rows reported inserted plus the first error encountered.
// Progress is logged per flushed batch with instantaneous rows/sec.
func LoadBatches(
	ctx context.Context,
	columns []string,
	rows [][]any,
	batchSize int,
	copyFn CopyFn,
) (int64, error) {
	if batchSize <= 0 {
		return 0, fmt.Errorf("batchSize must be > 0")
	}
	if copyFn == nil {
		return 0, fmt.Errorf("copyFn must not be nil")
	}

	var (
		total       int64
		batches     int64
		start       = time.Now()
		lastFlushTS = start
	)

	for off := 0; off < len(rows); off += batchSize {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		end := off + batchSize
		if end > len(rows) {
			end = len(rows)
		}

		n, err := copyFn(ctx, columns, rows[off:end])
		total += n
		if err != nil {
			log.Printf("loader: bulk insert failed after=%d total=%d err=%v", n, total, err)
			return total, err
		}

		batches++
		now := time.Now()
		sinceLast := now.Sub(lastFlushTS)
		rps := float64(0)
		if sinceLast > 0 {
			rps = float64(n) / sinceLast.Seconds()
		}
		log.Printf(
			"batch #%d: rps=%.0f inserted=%d total_inserted=%d elapsed=%s",
			batches,
			rps,
			n,
			total,
			now.Sub(start).Truncate(time.Millisecond),
		)
		lastFlushTS = now
	}

	metrics.RecordRows("inserted", int(total))
	return total, nil
}
