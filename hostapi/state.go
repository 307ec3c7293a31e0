package hostapi

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

// ErrOutOfGas mirrors the teacher's core/vm sentinel of the same name; this
// module's budget-based cost helpers (CallCost) return it instead of the
// underlying *vm.EVM's gas pool, since that type is not reachable from here.
var ErrOutOfGas = errors.New("out of gas")

// StateDB is the narrow slice of go-ethereum's core/vm.StateDB that the
// storage and access-list gas formulas need. It is declared here rather
// than imported because core/vm.StateDB is an unexported-shape interface
// satisfied internally by *state.StateDB, not part of go-ethereum's public
// API surface; any concrete StateDB a host embeds this module into already
// satisfies it structurally.
type StateDB interface {
	GetState(addr common.Address, key common.Hash) common.Hash
	GetCommittedState(addr common.Address, key common.Hash) common.Hash

	SlotInAccessList(addr common.Address, key common.Hash) (addrPresent, slotPresent bool)
	AddSlotToAccessList(addr common.Address, key common.Hash)
	AddressInAccessList(addr common.Address) bool
	AddAddressToAccessList(addr common.Address)

	AddRefund(gas uint64)
	SubRefund(gas uint64)

	Empty(addr common.Address) bool
}

// BlockContext is the minimal block-header data a wasm host call may read
// (block.basefee, block.number, block.timestamp, ...), adapted from
// core/vm.BlockContext's exported fields.
type BlockContext struct {
	BlockNumber uint64
	Timestamp   uint64
	GasLimit    uint64
	BaseFee     *common.Hash
	Coinbase    common.Address
}

// L1BlockReader resolves an L1 block number's hash, grounded on
// core/vm/evm_arbitrum.go's TxProcessingHook.L1BlockNumber/L1BlockHash pair
// (the Arbitrum fork's seam for serving BLOCKHASH against the L1 chain
// rather than the L2 chain the wasm program actually executes on).
type L1BlockReader interface {
	L1BlockNumber() (uint64, error)
	L1BlockHash(number uint64) (common.Hash, error)
}
