package model

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestAccessModeString(t *testing.T) {
	require.Equal(t, "read", Read.String())
	require.Equal(t, "write", Write.String())
}

func TestAccessListSortAndDedupCollapsesStrongerMode(t *testing.T) {
	txHash := common.HexToHash("0x01")
	al := NewAccessList(txHash)

	addr := common.HexToAddress("0xaaaa")
	slot := common.HexToHash("0x01")

	al.Add(addr, slot, Read)
	al.Add(addr, slot, Write)
	al.SortAndDedup()

	require.Len(t, al.Entries, 1)
	require.Equal(t, Write, al.Entries[0].Mode)
}

func TestAccessListSortAndDedupKeepsDistinctLocations(t *testing.T) {
	txHash := common.HexToHash("0x01")
	al := NewAccessList(txHash)

	addrA := common.HexToAddress("0xaaaa")
	addrB := common.HexToAddress("0xbbbb")
	slot := common.HexToHash("0x01")

	al.Add(addrB, slot, Read)
	al.Add(addrA, slot, Write)
	al.SortAndDedup()

	require.Len(t, al.Entries, 2)
	require.Equal(t, addrA, al.Entries[0].Location.Address, "entries must sort by address first")
}

func TestAccessListSortAndDedupEmpty(t *testing.T) {
	al := NewAccessList(common.HexToHash("0x01"))
	al.SortAndDedup()
	require.Empty(t, al.Entries)
}
