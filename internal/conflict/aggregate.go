package conflict

import (
	"sort"

	"github.com/ethereum/go-ethereum/common"

	"github.com/selcukyildirim/argus-core/internal/model"
)

// Severity buckets a ContentionEvent's conflict density.
type Severity uint8

const (
	Low Severity = iota
	Medium
	High
	Critical
)

func (s Severity) String() string {
	switch s {
	case Critical:
		return "CRITICAL"
	case High:
		return "HIGH"
	case Medium:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// SeverityFor buckets a conflict density into LOW (<1.0), MEDIUM
// (1.0-<3.0), HIGH (3.0-<5.0), or CRITICAL (>=5.0).
func SeverityFor(density float64) Severity {
	switch {
	case density >= 5.0:
		return Critical
	case density >= 3.0:
		return High
	case density >= 1.0:
		return Medium
	default:
		return Low
	}
}

// Hazard labels a conflict kind the way reports display it: WAW for
// write-write, RAW for read-write.
func Hazard(kind model.ConflictKind) string {
	if kind == model.WriteWrite {
		return "WAW"
	}
	return "RAW"
}

// ContentionEvent aggregates every conflict edge sharing the same
// (contract, slot, hazard) into one row, scored by conflict density --
// conflicts divided by the number of distinct transactions involved.
type ContentionEvent struct {
	Address         common.Address
	Slot            common.Hash
	Hazard          string
	AffectedTxCount int
	ConflictCount   int
	Density         float64
	Severity        Severity
}

type bucketKey struct {
	addr   common.Address
	slot   common.Hash
	hazard string
}

type bucket struct {
	txs   map[common.Hash]struct{}
	count int
}

// Aggregate groups a graph's conflict edges into ContentionEvents, sorted
// by density descending so the worst offenders come first.
func Aggregate(graph model.ConflictGraph) []ContentionEvent {
	buckets := make(map[bucketKey]*bucket)

	for _, c := range graph.Conflicts {
		key := bucketKey{addr: c.Location.Address, slot: c.Location.Slot, hazard: Hazard(c.Kind)}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{txs: make(map[common.Hash]struct{})}
			buckets[key] = b
		}
		b.txs[c.TxA] = struct{}{}
		b.txs[c.TxB] = struct{}{}
		b.count++
	}

	events := make([]ContentionEvent, 0, len(buckets))
	for key, b := range buckets {
		affected := len(b.txs)
		density := roundTo2(float64(b.count) / float64(affected))
		events = append(events, ContentionEvent{
			Address:         key.addr,
			Slot:            key.slot,
			Hazard:          key.hazard,
			AffectedTxCount: affected,
			ConflictCount:   b.count,
			Density:         density,
			Severity:        SeverityFor(density),
		})
	}

	sort.Slice(events, func(i, j int) bool { return events[i].Density > events[j].Density })
	return events
}

func roundTo2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
