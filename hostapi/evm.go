package hostapi

import "github.com/ethereum/go-ethereum/common"

// Fixed per-host-call gas costs, named after the constants
// arbitrator/stylus/src/host.rs buys before ever touching the EVM API
// (see DESIGN.md). These are flat prices for reading already-available
// context; the dynamic portion of each call (storage, calls, logs,
// hashing) is priced separately by SLoadCost/SStoreCost/CallCost/
// Keccak256Cost/LogCost above.
const (
	GasLeftGas      = 200
	SSTORESentryGas = 2300
	LogTopicGas     = 375
	LogDataGas      = 8
	BaseFeeGas      = 200
	ChainIDGas      = 200
	CoinbaseGas     = 200
	DifficultyGas   = 200
	GasLimitGas     = 200
	NumberGas       = 200
	TimestampGas    = 200
	AddressGas      = 200
	CallerGas       = 200
	CallValueGas    = 200
	GasPriceGas     = 200
	OriginGas       = 200
	ECRecoverGas    = 20_000
)

// EvmAPI is the host's EVM-side seam a runtime invocation calls into after
// buying a host call's fixed cost, returning the operation's result plus
// its dynamic gas cost — grounded on arbitrator/stylus/src/host.rs's
// env.evm() calls and generalized per spec.md §4.9's Open Question
// resolution (see DESIGN.md): rather than one call per primitive, this
// models the full surface the original's Go-side EvmApi trait exposes, so
// a single adapter can back every host function in this package.
type EvmAPI interface {
	AddressBalance(addr common.Address) (balance common.Hash, gasCost uint64)
	AddressCodeHash(addr common.Address) (hash common.Hash, gasCost uint64)
	BlockHash(block common.Hash) (hash common.Hash, gasCost uint64)

	LoadBytes32(key common.Hash) (value common.Hash, gasCost uint64)
	StoreBytes32(key, value common.Hash) (gasCost uint64, err error)

	ContractCall(contract common.Address, input []byte, gas uint64, value common.Hash) (outsLen uint32, gasCost uint64, status uint8)
	DelegateCall(contract common.Address, input []byte, gas uint64) (outsLen uint32, gasCost uint64, status uint8)
	StaticCall(contract common.Address, input []byte, gas uint64) (outsLen uint32, gasCost uint64, status uint8)

	Create1(code []byte, endowment common.Hash, gas uint64) (result common.Address, retLen uint32, gasCost uint64, err error)
	Create2(code []byte, endowment, salt common.Hash, gas uint64) (result common.Address, retLen uint32, gasCost uint64, err error)

	LoadReturnData() []byte
	EmitLog(data []byte, topics int) error

	EcrecoverCallback(data []byte) (addr common.Address, gasCost uint64)
}

// EvmData is the fixed per-invocation block/tx context a user program reads
// through the msg_sender/block_number/tx_origin family of host calls.
type EvmData struct {
	BlockBaseFee    common.Hash
	BlockChainID    common.Hash
	BlockCoinbase   common.Address
	BlockDifficulty common.Hash
	BlockGasLimit   uint64
	BlockNumber     common.Hash
	BlockTimestamp  common.Hash
	ContractAddress common.Address
	MsgSender       common.Address
	MsgValue        common.Hash
	GasPrice        common.Hash
	Origin          common.Address
}
