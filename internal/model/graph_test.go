package model

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestConflictGraphAddConflictUpdatesAdjacency(t *testing.T) {
	g := NewConflictGraph()
	txA := common.HexToHash("0x01")
	txB := common.HexToHash("0x02")

	g.AddConflict(Conflict{
		TxA:      txA,
		TxB:      txB,
		Location: StorageLocation{Address: common.HexToAddress("0xaaaa"), Slot: common.HexToHash("0x01")},
		Kind:     WriteWrite,
	})

	require.True(t, g.HasConflict(txA, txB))
	require.True(t, g.HasConflict(txB, txA), "adjacency must be symmetric")
	require.Equal(t, 1, g.Len())
	require.False(t, g.IsEmpty())
}

func TestConflictGraphEmpty(t *testing.T) {
	g := NewConflictGraph()
	require.True(t, g.IsEmpty())
	require.False(t, g.HasConflict(common.HexToHash("0x01"), common.HexToHash("0x02")))
}

func TestConflictKindString(t *testing.T) {
	require.Equal(t, "write-write", WriteWrite.String())
	require.Equal(t, "read-write", ReadWrite.String())
}
