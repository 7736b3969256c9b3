// Package snapshot builds the immutable WarmSnapshot simulation runs
// against: a state.StateDB populated entirely from prefetched account and
// storage data, with no live backing database. Workers take a cheap
// copy-on-write Copy() of the committed snapshot instead of touching the
// network.
package snapshot

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/rawdb"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/core/tracing"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"

	"github.com/selcukyildirim/argus-core/internal/argerr"
)

// Builder accumulates prefetched account and storage data and commits it
// into a fresh, network-free state.StateDB.
type Builder struct {
	db       state.Database
	tmp      *state.StateDB
	accounts map[common.Address]struct{}
}

// NewBuilder starts a builder backed by an in-memory, throwaway database.
func NewBuilder() (*Builder, error) {
	db := state.NewDatabase(rawdb.NewMemoryDatabase())
	tmp, err := state.New(types.EmptyRootHash, db, nil)
	if err != nil {
		return nil, argerr.Internalf("snapshot: create empty state: %v", err)
	}
	return &Builder{db: db, tmp: tmp, accounts: make(map[common.Address]struct{})}, nil
}

// touch ensures addr exists as an account before its fields are set.
func (b *Builder) touch(addr common.Address) {
	if _, ok := b.accounts[addr]; ok {
		return
	}
	b.accounts[addr] = struct{}{}
	b.tmp.CreateAccount(addr)
}

// SetAccount records the code, balance and nonce fetched for addr.
func (b *Builder) SetAccount(addr common.Address, balance *big.Int, nonce uint64, code []byte) {
	b.touch(addr)
	if len(code) > 0 {
		b.tmp.SetCode(addr, code)
	}
	if balance != nil {
		b.tmp.SetBalance(addr, uint256.MustFromBig(balance), tracing.BalanceChangeUnspecified)
	}
	b.tmp.SetNonce(addr, nonce)
}

// SetStorage records a single fetched storage slot for addr.
func (b *Builder) SetStorage(addr common.Address, slot common.Hash, value common.Hash) {
	b.touch(addr)
	b.tmp.SetState(addr, slot, value)
}

// Commit finalizes the accumulated state and returns a fresh StateDB rooted
// at it, ready to be Copy()'d by simulation workers.
func (b *Builder) Commit() (*state.StateDB, error) {
	root, err := b.tmp.Commit(0, false)
	if err != nil {
		return nil, argerr.Internalf("snapshot: commit: %v", err)
	}
	fresh, err := state.New(root, b.db, nil)
	if err != nil {
		return nil, argerr.Internalf("snapshot: reopen committed state: %v", err)
	}
	return fresh, nil
}

// Empty returns a committed, empty snapshot, used by the legacy dry-run
// simulation path that never prefetches state.
func Empty() (*state.StateDB, error) {
	b, err := NewBuilder()
	if err != nil {
		return nil, err
	}
	snap, err := b.Commit()
	if err != nil {
		return nil, fmt.Errorf("empty snapshot: %w", err)
	}
	return snap, nil
}
