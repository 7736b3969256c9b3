// Package prefetch implements the State Prefetcher: given a set of
// transactions, it concurrently fetches every touched account plus a
// handful of known hot storage slots, and builds the WarmSnapshot every
// simulation worker then copies cheaply instead of hitting the network.
package prefetch

import (
	"context"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/selcukyildirim/argus-core/internal/argerr"
	"github.com/selcukyildirim/argus-core/internal/hotslots"
	"github.com/selcukyildirim/argus-core/internal/model"
	"github.com/selcukyildirim/argus-core/internal/snapshot"
)

// DefaultConcurrency is the default ceiling on in-flight RPC tasks. Kept low
// for free-tier RPC compatibility; raise it with WithConcurrency against a
// paid endpoint.
const DefaultConcurrency = 1

// MaxRetries is the maximum number of retries for a rate-limited ("429")
// RPC call.
const MaxRetries = 3

// StateSource is the account/storage read side of the provider interface:
// whatever can answer these four calls can back the prefetcher, RPC or
// otherwise.
type StateSource interface {
	GetBalance(ctx context.Context, addr common.Address, block uint64) (*big.Int, error)
	GetNonce(ctx context.Context, addr common.Address, block uint64) (uint64, error)
	GetCodeAt(ctx context.Context, addr common.Address, block uint64) ([]byte, error)
	GetStorageAt(ctx context.Context, addr common.Address, slot common.Hash, block uint64) (common.Hash, error)
}

var logger = log.Root().New("component", "prefetch")

// Prefetcher concurrently fetches account state and known storage slots,
// throttled by a semaphore, and assembles the results into a WarmSnapshot.
type Prefetcher struct {
	source      StateSource
	concurrency int64
}

// New builds a Prefetcher with DefaultConcurrency.
func New(source StateSource) *Prefetcher {
	return &Prefetcher{source: source, concurrency: DefaultConcurrency}
}

// WithConcurrency overrides the default max in-flight RPC tasks.
func (p *Prefetcher) WithConcurrency(n int64) *Prefetcher {
	if n > 0 {
		p.concurrency = n
	}
	return p
}

type fetchKind uint8

const (
	kindAccount fetchKind = iota
	kindStorage
)

func (k fetchKind) String() string {
	if k == kindStorage {
		return "storage"
	}
	return "account"
}

type fetchResult struct {
	kind    fetchKind
	addr    common.Address
	slot    common.Hash
	balance *big.Int
	nonce   uint64
	code    []byte
	value   common.Hash
	err     error
}

// Prefetch fetches every address touched by txs (and known hot slots for
// any of them) at block, and returns the resulting WarmSnapshot. Individual
// fetch failures are logged and swallowed -- they leave a gap in the
// snapshot (simulation will see a zero value there) rather than failing the
// whole prefetch.
func (p *Prefetcher) Prefetch(ctx context.Context, block uint64, txs []model.Transaction) (*state.StateDB, error) {
	addrs := make(map[common.Address]struct{})
	for _, tx := range txs {
		addrs[tx.From] = struct{}{}
		if tx.To != nil {
			addrs[*tx.To] = struct{}{}
		}
	}

	sem := semaphore.NewWeighted(p.concurrency)
	results := make(chan fetchResult, len(addrs)*2)
	var wg sync.WaitGroup

	slotTasks := 0
	for addr := range addrs {
		addr := addr
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				results <- fetchResult{kind: kindAccount, addr: addr, err: err}
				return
			}
			defer sem.Release(1)
			results <- p.fetchAccount(ctx, addr, block)
		}()

		slots, ok := hotslots.KnownSlots(addr)
		if !ok {
			continue
		}
		for _, slot := range slots {
			slot := slot
			slotTasks++
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := sem.Acquire(ctx, 1); err != nil {
					results <- fetchResult{kind: kindStorage, addr: addr, slot: slot, err: err}
					return
				}
				defer sem.Release(1)
				results <- p.fetchStorage(ctx, addr, slot, block)
			}()
		}
	}

	logger.Info("prefetching state", "block", block, "addrs", len(addrs), "hot_slots", slotTasks, "concurrency", p.concurrency)

	go func() {
		wg.Wait()
		close(results)
	}()

	builder, err := snapshot.NewBuilder()
	if err != nil {
		return nil, err
	}

	fetched, failed := 0, 0
	for r := range results {
		if r.err != nil {
			logger.Warn("prefetch failed", "kind", r.kind, "address", r.addr, "err", r.err)
			failed++
			continue
		}
		switch r.kind {
		case kindAccount:
			builder.SetAccount(r.addr, r.balance, r.nonce, r.code)
		case kindStorage:
			builder.SetStorage(r.addr, r.slot, r.value)
		}
		fetched++
	}

	logger.Info("prefetch done", "block", block, "fetched", fetched, "failed", failed)
	return builder.Commit()
}

// fetchAccount fetches balance, nonce and code concurrently and awaits them
// jointly; any one failing (after its own retries) fails the whole account.
func (p *Prefetcher) fetchAccount(ctx context.Context, addr common.Address, block uint64) fetchResult {
	var balance *big.Int
	var nonce uint64
	var code []byte

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := fetchWithRetry(gctx, func(ctx context.Context) (*big.Int, error) {
			return p.source.GetBalance(ctx, addr, block)
		})
		balance = v
		return err
	})
	g.Go(func() error {
		v, err := fetchWithRetry(gctx, func(ctx context.Context) (uint64, error) {
			return p.source.GetNonce(ctx, addr, block)
		})
		nonce = v
		return err
	})
	g.Go(func() error {
		v, err := fetchWithRetry(gctx, func(ctx context.Context) ([]byte, error) {
			return p.source.GetCodeAt(ctx, addr, block)
		})
		code = v
		return err
	})

	if err := g.Wait(); err != nil {
		return fetchResult{kind: kindAccount, addr: addr, err: argerr.Wrap(argerr.Provider, "fetch account", err)}
	}
	return fetchResult{kind: kindAccount, addr: addr, balance: balance, nonce: nonce, code: code}
}

func (p *Prefetcher) fetchStorage(ctx context.Context, addr common.Address, slot common.Hash, block uint64) fetchResult {
	value, err := fetchWithRetry(ctx, func(ctx context.Context) (common.Hash, error) {
		return p.source.GetStorageAt(ctx, addr, slot, block)
	})
	if err != nil {
		return fetchResult{kind: kindStorage, addr: addr, slot: slot, err: argerr.Wrap(argerr.Provider, "fetch storage", err)}
	}
	return fetchResult{kind: kindStorage, addr: addr, slot: slot, value: value}
}

// fetchWithRetry retries fn up to MaxRetries times with exponential backoff
// (200ms * 2^(attempt-1)) whenever the error text contains "429" -- the
// provider gives no structured rate-limit signal, so a substring match is
// the only signal available. Any other error returns immediately without
// retrying.
func fetchWithRetry[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(200*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return zero, ctx.Err()
			}
		}

		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err
		if !strings.Contains(err.Error(), "429") {
			return zero, err
		}
	}
	return zero, lastErr
}
