package report

import (
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/selcukyildirim/argus-core/internal/conflict"
	"github.com/selcukyildirim/argus-core/internal/labels"
	"github.com/selcukyildirim/argus-core/internal/model"
)

func labelFor(addr common.Address) (protocol, name string) {
	if l, ok := labels.Lookup(addr); ok {
		return l.Protocol, l.Name
	}
	return "Unknown", addr.Hex()
}

// BlockSummaryRow is one row per analyzed block.
type BlockSummaryRow struct {
	BlockNumber    uint64 `json:"block_number"`
	TotalTxs       uint32 `json:"total_txs"`
	TxsWithStorage uint32 `json:"txs_with_storage"`
	TotalEntries   uint32 `json:"total_entries"`
	TotalConflicts uint32 `json:"total_conflicts"`
	HotspotCount   uint32 `json:"hotspot_count"`
	FetchTimeMs    uint64 `json:"fetch_time_ms"`
	TotalTimeMs    uint64 `json:"total_time_ms"`
	CreatedAt      string `json:"created_at"`
}

// ConflictRow is one row per conflict edge, fully denormalized.
type ConflictRow struct {
	BlockNumber      uint64 `json:"block_number"`
	TxA              string `json:"tx_a"`
	TxB              string `json:"tx_b"`
	ContractAddress  string `json:"contract_address"`
	ContractProtocol string `json:"contract_protocol"`
	ContractName     string `json:"contract_name"`
	Slot             string `json:"slot"`
	ConflictKind     string `json:"conflict_kind"`
	CreatedAt        string `json:"created_at"`
}

// ContentionEventRow is one row per (contract, slot, hazard) per block,
// scored by conflict density.
type ContentionEventRow struct {
	BlockNumber      uint64  `json:"block_number"`
	ContractAddress  string  `json:"contract_address"`
	ContractProtocol string  `json:"contract_protocol"`
	ContractName     string  `json:"contract_name"`
	SlotID           string  `json:"slot_id"`
	HazardType       string  `json:"hazard_type"`
	AffectedTxCount  uint32  `json:"affected_tx_count"`
	ConflictCount    uint32  `json:"conflict_count"`
	ConflictDensity  float64 `json:"conflict_density"`
	Severity         string  `json:"severity"`
	CreatedAt        string  `json:"created_at"`
}

func isoNow() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Summary flattens the report into its BlockSummaryRow.
func (r Report) Summary() BlockSummaryRow {
	return BlockSummaryRow{
		BlockNumber:    r.BlockNumber,
		TotalTxs:       uint32(r.TotalTxs),
		TxsWithStorage: uint32(r.TxsWithStorage),
		TotalEntries:   uint32(r.TotalEntries),
		TotalConflicts: uint32(r.TotalConflicts),
		HotspotCount:   uint32(len(r.Groups)),
		FetchTimeMs:    uint64(r.FetchTime.Milliseconds()),
		TotalTimeMs:    uint64(r.TotalTime.Milliseconds()),
		CreatedAt:      isoNow(),
	}
}

// ConflictRows flattens every edge of graph into a ConflictRow.
func (r Report) ConflictRows(graph model.ConflictGraph) []ConflictRow {
	now := isoNow()
	rows := make([]ConflictRow, 0, len(graph.Conflicts))
	for _, c := range graph.Conflicts {
		protocol, name := labelFor(c.Location.Address)
		kind := "R-W"
		if c.Kind == model.WriteWrite {
			kind = "W-W"
		}
		rows = append(rows, ConflictRow{
			BlockNumber:      r.BlockNumber,
			TxA:              c.TxA.Hex(),
			TxB:              c.TxB.Hex(),
			ContractAddress:  c.Location.Address.Hex(),
			ContractProtocol: protocol,
			ContractName:     name,
			Slot:             c.Location.Slot.Hex(),
			ConflictKind:     kind,
			CreatedAt:        now,
		})
	}
	return rows
}

// ContentionEventRows aggregates graph's edges into density-scored rows,
// sorted worst-offender first.
func (r Report) ContentionEventRows(graph model.ConflictGraph) []ContentionEventRow {
	now := isoNow()
	events := conflict.Aggregate(graph)
	rows := make([]ContentionEventRow, 0, len(events))
	for _, ev := range events {
		protocol, name := labelFor(ev.Address)
		rows = append(rows, ContentionEventRow{
			BlockNumber:      r.BlockNumber,
			ContractAddress:  ev.Address.Hex(),
			ContractProtocol: protocol,
			ContractName:     name,
			SlotID:           ev.Slot.Hex(),
			HazardType:       ev.Hazard,
			AffectedTxCount:  uint32(ev.AffectedTxCount),
			ConflictCount:    uint32(ev.ConflictCount),
			ConflictDensity:  ev.Density,
			Severity:         ev.Severity.String(),
			CreatedAt:        now,
		})
	}
	return rows
}
