// Package inspector implements the Access Inspector: a core/tracing.Hooks
// value installed as the EVM's tracer for the duration of one transaction,
// recording every SLOAD/SSTORE into a per-transaction access list.
package inspector

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/tracing"
	"github.com/ethereum/go-ethereum/core/vm"

	"github.com/selcukyildirim/argus-core/internal/model"
)

const (
	opSload = byte(vm.SLOAD)
	opStore = byte(vm.SSTORE)
)

// AccessListInspector tracks the current call-stack's storage context and
// records every SLOAD/SSTORE against it. Installed via Hooks, it is
// single-transaction, single-use: construct one, run one transaction, read
// AccessList.
type AccessListInspector struct {
	list  model.AccessList
	stack []common.Address
}

// New returns an inspector that will build the access list for txHash.
func New(txHash common.Hash) *AccessListInspector {
	return &AccessListInspector{list: model.NewAccessList(txHash)}
}

// Hooks returns the tracing.Hooks value to install on vm.Config.Tracer.
func (a *AccessListInspector) Hooks() *tracing.Hooks {
	return &tracing.Hooks{
		OnEnter:  a.onEnter,
		OnExit:   a.onExit,
		OnOpcode: a.onOpcode,
	}
}

// onEnter pushes the storage context for the frame being entered.
//
// DELEGATECALL and CALLCODE execute the callee's code against the caller's
// own storage, so the storage context is the caller's address (from), not
// the callee's (to). Every other call type, and contract creation, attribute
// storage to the target/new address.
func (a *AccessListInspector) onEnter(depth int, typ byte, from common.Address, to common.Address, input []byte, gas uint64, value *big.Int) {
	switch vm.OpCode(typ) {
	case vm.DELEGATECALL, vm.CALLCODE:
		a.stack = append(a.stack, from)
	default:
		a.stack = append(a.stack, to)
	}
}

func (a *AccessListInspector) onExit(depth int, output []byte, gasUsed uint64, err error, reverted bool) {
	if len(a.stack) == 0 {
		return
	}
	a.stack = a.stack[:len(a.stack)-1]
}

func (a *AccessListInspector) onOpcode(pc uint64, op byte, gas, cost uint64, scope tracing.OpContext, rData []byte, depth int, err error) {
	switch op {
	case opSload:
		a.record(scope, model.Read)
	case opStore:
		a.record(scope, model.Write)
	}
}

func (a *AccessListInspector) record(scope tracing.OpContext, mode model.AccessMode) {
	if len(a.stack) == 0 {
		return
	}
	stackData := scope.StackData()
	if len(stackData) == 0 {
		return
	}
	addr := a.stack[len(a.stack)-1]
	slot := common.Hash(stackData[len(stackData)-1].Bytes32())
	a.list.Add(addr, slot, mode)
}

// AccessList returns the sorted, deduplicated access list recorded so far.
func (a *AccessListInspector) AccessList() model.AccessList {
	a.list.SortAndDedup()
	return a.list
}
