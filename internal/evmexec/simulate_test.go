package evmexec

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/stretchr/testify/require"

	"github.com/selcukyildirim/argus-core/internal/model"
	"github.com/selcukyildirim/argus-core/internal/snapshot"
)

// sstoreZeroCode stores 0x2a into slot 0 then loads it back: PUSH1 0x2a
// PUSH0 SSTORE PUSH0 SLOAD STOP.
var sstoreZeroCode = []byte{
	byte(vm.PUSH1), 0x2a,
	byte(vm.PUSH0),
	byte(vm.SSTORE),
	byte(vm.PUSH0),
	byte(vm.SLOAD),
	byte(vm.STOP),
}

func TestSimulateOneRecordsStorageAccess(t *testing.T) {
	to := common.HexToAddress("0xcccc")
	b, err := snapshot.NewBuilder()
	require.NoError(t, err)
	b.SetAccount(to, nil, 0, sstoreZeroCode)
	snap, err := b.Commit()
	require.NoError(t, err)

	tx := model.Transaction{
		Hash: common.HexToHash("0x01"),
		From: common.HexToAddress("0xaaaa"),
		To:   &to,
		Gas:  1_000_000,
	}

	al, err := SimulateOne(snap.Copy(), tx, 1)
	require.NoError(t, err)
	require.Len(t, al.Entries, 1, "SSTORE+SLOAD to the same slot must collapse")
	require.Equal(t, model.Write, al.Entries[0].Mode, "write dominates")
	require.Equal(t, to, al.Entries[0].Location.Address)
}

func TestSimulateOneDoesNotFailOnRevert(t *testing.T) {
	revertCode := []byte{byte(vm.PUSH0), byte(vm.PUSH0), byte(vm.REVERT)}

	b, err := snapshot.NewBuilder()
	require.NoError(t, err)
	to := common.HexToAddress("0xdddd")
	b.SetAccount(to, nil, 0, revertCode)
	snap, err := b.Commit()
	require.NoError(t, err)

	tx := model.Transaction{
		Hash: common.HexToHash("0x02"),
		From: common.HexToAddress("0xaaaa"),
		To:   &to,
		Gas:  1_000_000,
	}

	_, err = SimulateOne(snap.Copy(), tx, 1)
	require.NoError(t, err, "a reverting call must not surface as an error")
}

func TestSimulateOneOnCreate(t *testing.T) {
	snap, err := snapshot.Empty()
	require.NoError(t, err)

	tx := model.Transaction{
		Hash:  common.HexToHash("0x03"),
		From:  common.HexToAddress("0xaaaa"),
		To:    nil,
		Input: []byte{byte(vm.PUSH0), byte(vm.PUSH0), byte(vm.RETURN)},
		Gas:   1_000_000,
	}

	_, err = SimulateOne(snap.Copy(), tx, 1)
	require.NoError(t, err, "contract creation must not surface as an error")
}
