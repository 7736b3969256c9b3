// Package evmexec is the Per-Transaction Simulator: it replays one
// transaction against a state.StateDB with an AccessListInspector installed
// as the EVM tracer, and the Batch Simulator built on top of it.
//
// Execution goes through go-ethereum's own core/vm/runtime.Call/Create
// helpers instead of the full block-processing StateTransition pipeline:
// runtime.Call bypasses nonce, balance-for-gas, block-gas-limit, base-fee
// and EIP-3607 sender-has-no-code validation entirely and invokes vm.EVM.Call
// directly, which is exactly the "skip transaction validation, replay
// straight into the interpreter" behavior this simulator needs.
package evmexec

import (
	"math/big"

	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/core/vm/runtime"
	"github.com/ethereum/go-ethereum/log"

	"github.com/selcukyildirim/argus-core/internal/inspector"
	"github.com/selcukyildirim/argus-core/internal/model"
)

var logger = log.Root().New("component", "evmexec")

// SimulateOne replays tx against snap (which the caller must already own
// exclusively -- typically a fresh state.StateDB.Copy()) and returns its
// access list. EVM-level failures (reverts, out-of-gas, insufficient
// value) are not treated as failures: the transaction still produced
// whatever storage accesses it made before failing, so they're recorded
// and returned. Only failures in this function's own setup surface as
// errors.
func SimulateOne(snap *state.StateDB, tx model.Transaction, blockNumber uint64) (model.AccessList, error) {
	ins := inspector.New(tx.Hash)

	cfg := &runtime.Config{
		Origin:      tx.From,
		BlockNumber: new(big.Int).SetUint64(blockNumber),
		GasLimit:    tx.Gas,
		GasPrice:    big.NewInt(0),
		Value:       valueOrZero(tx.Value),
		State:       snap,
		EVMConfig:   vm.Config{Tracer: ins.Hooks()},
	}

	var execErr error
	if tx.To != nil {
		_, _, execErr = runtime.Call(*tx.To, tx.Input, cfg)
	} else {
		_, _, _, execErr = runtime.Create(tx.Input, cfg)
	}
	if execErr != nil {
		logger.Debug("evm execution error", "tx", tx.Hash, "err", execErr)
	}

	return ins.AccessList(), nil
}

func valueOrZero(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return v
}
