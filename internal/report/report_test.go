package report

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/selcukyildirim/argus-core/internal/model"
)

func sampleGraphAndLists() ([]model.AccessList, model.ConflictGraph) {
	addr := common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2") // WETH
	slot := common.HexToHash("0x01")
	tx1 := common.HexToHash("0x1")
	tx2 := common.HexToHash("0x2")

	al1 := model.NewAccessList(tx1)
	al1.Add(addr, slot, model.Write)
	al2 := model.NewAccessList(tx2)
	al2.Add(addr, slot, model.Write)

	graph := model.NewConflictGraph()
	graph.AddConflict(model.Conflict{TxA: tx1, TxB: tx2, Location: model.StorageLocation{Address: addr, Slot: slot}, Kind: model.WriteWrite})

	return []model.AccessList{al1, al2}, graph
}

func TestBuildGroupsConflictsByContract(t *testing.T) {
	lists, graph := sampleGraphAndLists()
	rep := Build(100, lists, graph, 10*time.Millisecond, 50*time.Millisecond)

	require.Equal(t, 2, rep.TotalTxs)
	require.Equal(t, 2, rep.TxsWithStorage)
	require.Equal(t, 1, rep.TotalConflicts)
	require.Len(t, rep.Groups, 1)
	require.Equal(t, "WETH", rep.Groups[0].Protocol)
	require.Equal(t, "1 W-W", rep.Groups[0].KindSummary)
}

func TestBuildWithNoConflicts(t *testing.T) {
	rep := Build(1, nil, model.NewConflictGraph(), 0, 0)
	require.Equal(t, 0, rep.TotalConflicts)
	require.Empty(t, rep.Groups)
}

func TestRowsAndRenderAreConsistent(t *testing.T) {
	lists, graph := sampleGraphAndLists()
	rep := Build(100, lists, graph, 10*time.Millisecond, 50*time.Millisecond)

	summary := rep.Summary()
	require.Equal(t, uint64(100), summary.BlockNumber)
	require.Equal(t, 1, summary.TotalConflicts)

	conflictRows := rep.ConflictRows(graph)
	require.Len(t, conflictRows, 1)
	require.Equal(t, "W-W", conflictRows[0].ConflictKind)

	events := rep.ContentionEventRows(graph)
	require.Len(t, events, 1)
	require.Equal(t, 2, events[0].AffectedTxCount)

	rendered := rep.Render(graph)
	require.NotEmpty(t, rendered)
}

func TestRenderWithNoConflicts(t *testing.T) {
	rep := Build(1, nil, model.NewConflictGraph(), 0, 0)
	rendered := rep.Render(model.NewConflictGraph())
	require.NotEmpty(t, rendered)
}
