package snapshot

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestBuilderCommitRoundTripsAccountAndStorage(t *testing.T) {
	b, err := NewBuilder()
	require.NoError(t, err)

	addr := common.HexToAddress("0xaaaa")
	slot := common.HexToHash("0x01")
	value := common.HexToHash("0x2a")
	code := []byte{0x60, 0x00}

	b.SetAccount(addr, big.NewInt(1000), 7, code)
	b.SetStorage(addr, slot, value)

	db, err := b.Commit()
	require.NoError(t, err)

	require.Equal(t, 0, db.GetBalance(addr).ToBig().Cmp(big.NewInt(1000)))
	require.Equal(t, uint64(7), db.GetNonce(addr))
	require.Equal(t, value, db.GetState(addr, slot))
	require.Equal(t, code, db.GetCode(addr))
}

func TestEmptySnapshotHasZeroValues(t *testing.T) {
	db, err := Empty()
	require.NoError(t, err)

	addr := common.HexToAddress("0xaaaa")
	require.Zero(t, db.GetBalance(addr).Sign())
	require.Empty(t, db.GetCode(addr))
}

func TestBuilderCopyIsIndependent(t *testing.T) {
	b, err := NewBuilder()
	require.NoError(t, err)
	addr := common.HexToAddress("0xaaaa")
	b.SetAccount(addr, big.NewInt(5), 0, nil)

	db, err := b.Commit()
	require.NoError(t, err)

	overlay := db.Copy()
	overlay.SetNonce(addr, 99)

	require.Equal(t, uint64(0), db.GetNonce(addr), "original snapshot must not be mutated by overlay")
	require.Equal(t, uint64(99), overlay.GetNonce(addr))
}
