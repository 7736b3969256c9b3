// Package model defines the data types shared across the Argus conflict
// analyzer: storage locations, per-transaction access lists, and the
// conflict graph they feed into.
package model

import (
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"
)

// StorageLocation identifies a single (contract, slot) pair in EVM state.
type StorageLocation struct {
	Address common.Address
	Slot    common.Hash
}

// AccessMode distinguishes a storage read from a storage write. Read sorts
// before Write so that a location touched by both in a single transaction
// dedups down to its Write entry.
type AccessMode uint8

const (
	Read AccessMode = iota
	Write
)

func (m AccessMode) String() string {
	if m == Write {
		return "write"
	}
	return "read"
}

// AccessEntry is a single storage access: a location plus the mode it was
// touched in.
type AccessEntry struct {
	Location StorageLocation
	Mode     AccessMode
}

// inlineCapacity matches the typical number of distinct storage slots a
// single transaction touches; AccessList pre-sizes its backing slice to this
// so the common case never reallocates.
const inlineCapacity = 32

// AccessList holds every storage access recorded for one transaction.
type AccessList struct {
	TxHash  common.Hash
	Entries []AccessEntry
}

// NewAccessList returns an AccessList pre-sized to avoid reallocation for the
// common case.
func NewAccessList(txHash common.Hash) AccessList {
	return AccessList{TxHash: txHash, Entries: make([]AccessEntry, 0, inlineCapacity)}
}

// Add records a storage access.
func (al *AccessList) Add(addr common.Address, slot common.Hash, mode AccessMode) {
	al.Entries = append(al.Entries, AccessEntry{
		Location: StorageLocation{Address: addr, Slot: slot},
		Mode:     mode,
	})
}

// SortAndDedup sorts entries by (address, slot, mode) and collapses repeated
// accesses to the same location down to the strongest mode observed (Write
// beats Read), so a slot touched by both a SLOAD and an SSTORE in the same
// transaction contributes exactly one entry.
func (al *AccessList) SortAndDedup() {
	sort.Slice(al.Entries, func(i, j int) bool {
		a, b := al.Entries[i], al.Entries[j]
		if a.Location.Address != b.Location.Address {
			return a.Location.Address.Cmp(b.Location.Address) < 0
		}
		if a.Location.Slot != b.Location.Slot {
			return a.Location.Slot.Cmp(b.Location.Slot) < 0
		}
		return a.Mode < b.Mode
	})

	out := al.Entries[:0]
	for i, e := range al.Entries {
		if i > 0 {
			prev := out[len(out)-1]
			if prev.Location == e.Location {
				if e.Mode > prev.Mode {
					out[len(out)-1] = e
				}
				continue
			}
		}
		out = append(out, e)
	}
	al.Entries = out
}

// Transaction is the lightweight subset of an EVM transaction the analyzer
// needs to simulate it.
type Transaction struct {
	Hash  common.Hash
	From  common.Address
	To    *common.Address
	Input []byte
	Value *big.Int
	Gas   uint64
}
