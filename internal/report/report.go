// Package report builds the enriched conflict report: grouping conflicts by
// contract, attaching protocol labels, and flattening the result into
// sink-ready rows or a human-readable rendering.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/selcukyildirim/argus-core/internal/labels"
	"github.com/selcukyildirim/argus-core/internal/model"
)

// ConflictGroup summarizes every conflict touching one contract address.
type ConflictGroup struct {
	Address       common.Address
	Protocol      string
	Label         string
	SlotCount     int
	TxCount       int
	ConflictCount int
	KindSummary   string
}

// Report is the fully enriched result of analyzing one block.
type Report struct {
	BlockNumber    uint64
	TotalTxs       int
	TxsWithStorage int
	TotalEntries   int
	TotalConflicts int
	Groups         []ConflictGroup
	FetchTime      time.Duration
	TotalTime      time.Duration
}

type contractConflicts struct {
	slots    map[common.Hash]struct{}
	txs      map[common.Hash]struct{}
	conflict int
	ww       int
	rw       int
}

// Build produces a Report from a batch's access lists and its conflict
// graph, grouping conflicts by contract address and sorting groups by
// conflict count descending.
func Build(blockNumber uint64, lists []model.AccessList, graph model.ConflictGraph, fetchTime, totalTime time.Duration) Report {
	totalEntries := 0
	txsWithStorage := 0
	for _, al := range lists {
		if len(al.Entries) > 0 {
			txsWithStorage++
		}
		totalEntries += len(al.Entries)
	}

	byAddr := make(map[common.Address]*contractConflicts)
	for _, c := range graph.Conflicts {
		cc, ok := byAddr[c.Location.Address]
		if !ok {
			cc = &contractConflicts{slots: make(map[common.Hash]struct{}), txs: make(map[common.Hash]struct{})}
			byAddr[c.Location.Address] = cc
		}
		cc.slots[c.Location.Slot] = struct{}{}
		cc.txs[c.TxA] = struct{}{}
		cc.txs[c.TxB] = struct{}{}
		cc.conflict++
		if c.Kind == model.WriteWrite {
			cc.ww++
		} else {
			cc.rw++
		}
	}

	groups := make([]ConflictGroup, 0, len(byAddr))
	for addr, cc := range byAddr {
		protocol, name := "Unknown", addr.Hex()
		if l, ok := labels.Lookup(addr); ok {
			protocol, name = l.Protocol, l.Name
		}

		var kindSummary string
		switch {
		case cc.ww > 0 && cc.rw > 0:
			kindSummary = fmt.Sprintf("%d W-W, %d R-W", cc.ww, cc.rw)
		case cc.ww > 0:
			kindSummary = fmt.Sprintf("%d W-W", cc.ww)
		default:
			kindSummary = fmt.Sprintf("%d R-W", cc.rw)
		}

		groups = append(groups, ConflictGroup{
			Address:       addr,
			Protocol:      protocol,
			Label:         name,
			SlotCount:     len(cc.slots),
			TxCount:       len(cc.txs),
			ConflictCount: cc.conflict,
			KindSummary:   kindSummary,
		})
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].ConflictCount > groups[j].ConflictCount })

	return Report{
		BlockNumber:    blockNumber,
		TotalTxs:       len(lists),
		TxsWithStorage: txsWithStorage,
		TotalEntries:   totalEntries,
		TotalConflicts: graph.Len(),
		Groups:         groups,
		FetchTime:      fetchTime,
		TotalTime:      totalTime,
	}
}
