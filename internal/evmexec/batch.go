package evmexec

import (
	goruntime "runtime"

	"github.com/ethereum/go-ethereum/core/state"
	"golang.org/x/sync/errgroup"

	"github.com/selcukyildirim/argus-core/internal/argerr"
	"github.com/selcukyildirim/argus-core/internal/model"
	"github.com/selcukyildirim/argus-core/internal/snapshot"
)

// SimulateBatch runs every transaction in txs against its own copy-on-write
// overlay of snap, in parallel, bounded by GOMAXPROCS. Each worker operates
// on an independent state.StateDB.Copy() so no synchronization is needed in
// the hot path. The overlays are taken sequentially on the dispatching
// goroutine before any worker starts, since state.StateDB.Copy() is not
// documented as safe to call concurrently on the same receiver. Results
// preserve input order. Any worker panic or setup error fails the whole
// batch; per-transaction EVM errors do not.
func SimulateBatch(snap *state.StateDB, txs []model.Transaction, blockNumber uint64) ([]model.AccessList, error) {
	results := make([]model.AccessList, len(txs))
	overlays := make([]*state.StateDB, len(txs))
	for i := range txs {
		overlays[i] = snap.Copy()
	}

	g := new(errgroup.Group)
	g.SetLimit(goruntime.GOMAXPROCS(0))

	for i := range txs {
		i := i
		tx := txs[i]
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = argerr.Internalf("simulation worker panicked on tx %s: %v", tx.Hash, r)
				}
			}()

			al, simErr := SimulateOne(overlays[i], tx, blockNumber)
			if simErr != nil {
				return simErr
			}
			results[i] = al
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// SimulateBatchEmptyState is the legacy dry-run path: it simulates every
// transaction sequentially against a bare, empty state with nothing
// prefetched, so every storage read falls through to its default
// zero value. Used when the caller skips state prefetch (the CLI's
// --dry-run).
func SimulateBatchEmptyState(txs []model.Transaction, blockNumber uint64) ([]model.AccessList, error) {
	empty, err := snapshot.Empty()
	if err != nil {
		return nil, err
	}

	results := make([]model.AccessList, 0, len(txs))
	for _, tx := range txs {
		al, err := SimulateOne(empty.Copy(), tx, blockNumber)
		if err != nil {
			return nil, err
		}
		results = append(results, al)
	}
	return results, nil
}
