package evmexec

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/stretchr/testify/require"

	"github.com/selcukyildirim/argus-core/internal/model"
	"github.com/selcukyildirim/argus-core/internal/snapshot"
)

func TestSimulateBatchEmptyStateEmptyInput(t *testing.T) {
	lists, err := SimulateBatchEmptyState(nil, 1)
	require.NoError(t, err)
	require.Empty(t, lists)
}

func TestSimulateBatchEmptyStatePreservesOrder(t *testing.T) {
	to := common.HexToAddress("0xcccc")
	txs := []model.Transaction{
		{Hash: common.HexToHash("0x01"), From: common.HexToAddress("0xaaaa"), To: &to, Gas: 100000},
		{Hash: common.HexToHash("0x02"), From: common.HexToAddress("0xbbbb"), To: &to, Gas: 100000},
	}

	lists, err := SimulateBatchEmptyState(txs, 1)
	require.NoError(t, err)
	require.Len(t, lists, 2)
	require.Equal(t, txs[0].Hash, lists[0].TxHash)
	require.Equal(t, txs[1].Hash, lists[1].TxHash)
}

func TestSimulateBatchRunsEveryTransaction(t *testing.T) {
	sstoreCode := []byte{byte(vm.PUSH1), 0x01, byte(vm.PUSH0), byte(vm.SSTORE), byte(vm.STOP)}
	to := common.HexToAddress("0xcccc")

	b, err := snapshot.NewBuilder()
	require.NoError(t, err)
	b.SetAccount(to, nil, 0, sstoreCode)
	snap, err := b.Commit()
	require.NoError(t, err)

	txs := []model.Transaction{
		{Hash: common.HexToHash("0x01"), From: common.HexToAddress("0xaaaa"), To: &to, Gas: 100000},
		{Hash: common.HexToHash("0x02"), From: common.HexToAddress("0xbbbb"), To: &to, Gas: 100000},
		{Hash: common.HexToHash("0x03"), From: common.HexToAddress("0xcccc"), To: &to, Gas: 100000},
	}

	lists, err := SimulateBatch(snap, txs, 1)
	require.NoError(t, err)
	require.Len(t, lists, 3)
	for i, al := range lists {
		require.Equal(t, txs[i].Hash, al.TxHash)
		require.Len(t, al.Entries, 1)
	}
}

func TestSimulateBatchWorkersDoNotMutateSharedSnapshot(t *testing.T) {
	sstoreCode := []byte{byte(vm.PUSH1), 0x01, byte(vm.PUSH0), byte(vm.SSTORE), byte(vm.STOP)}
	to := common.HexToAddress("0xcccc")

	b, err := snapshot.NewBuilder()
	require.NoError(t, err)
	b.SetAccount(to, nil, 0, sstoreCode)
	snap, err := b.Commit()
	require.NoError(t, err)

	txs := []model.Transaction{
		{Hash: common.HexToHash("0x01"), From: common.HexToAddress("0xaaaa"), To: &to, Gas: 100000},
	}

	_, err = SimulateBatch(snap, txs, 1)
	require.NoError(t, err)
	require.Equal(t, common.Hash{}, snap.GetState(to, common.Hash{}), "workers must operate on copies, not the shared base snapshot")
}
