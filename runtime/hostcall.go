// Host-call dispatch, implementing spec.md §4.9's fixed discipline:
// 1. no critical section is entered and no lock is taken: an invocation is
//    single-threaded (spec.md §5), and host calls do not guard against
//    reentrancy,
// 2. pay a fixed cost,
// 3. perform the operation against hostapi, which returns a dynamic cost,
// 4. buy the dynamic cost or escape OutOfGas,
// 5. write results into bounds-checked user memory.
//
// Grounded on arbitrator/stylus/src/host.rs's per-function shape
// (env.buy_gas(fixed)?; ...; env.buy_gas(dynamic)?; env.write_*(...)?).
package runtime

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/arbstylus/wasmvm/hostapi"
	"github.com/arbstylus/wasmvm/outcome"
)

// buyGas deducts amount from gasLeft, escaping OutOfGas on insufficiency.
// This is the wasm-gas twin of hostapi.BurnGas; it lives here rather than
// in hostapi because hostapi has no notion of an invocation's gas pointer.
func (inv *Invocation) buyGas(amount uint64) *outcome.Escape {
	if inv.gasLeft < amount {
		inv.gasLeft = 0
		return outcome.LogicalEscape("out of gas")
	}
	inv.gasLeft -= amount
	return nil
}

// requireGas fails without deducting, backing the SSTORE sentry precheck
// (spec.md §4.9: "store requires SSTORE_SENTRY_GAS precheck").
func (inv *Invocation) requireGas(amount uint64) *outcome.Escape {
	if inv.gasLeft <= amount {
		return outcome.LogicalEscape("not enough gas for reentrancy sentry")
	}
	return nil
}

// ReadArgs backs the read_args host call: copies the invocation's call
// arguments into user memory at ptr.
func (inv *Invocation) ReadArgs(ptr uint32) *outcome.Escape {
	cost, err := hostapi.MemoryCopyCost(uint64(len(inv.args)))
	if err != nil {
		return outcome.InternalEscape("%s", err)
	}
	if esc := inv.buyGas(cost); esc != nil {
		return esc
	}
	if err := inv.memory.Write(ptr, inv.args); err != nil {
		return outcome.LogicalEscape("%s", err)
	}
	return nil
}

// ReturnDataSet backs the return_data host call: reads len bytes from ptr
// and stashes them as the invocation's pending output.
func (inv *Invocation) ReturnDataSet(ptr, length uint32) *outcome.Escape {
	cost, err := hostapi.MemoryCopyCost(uint64(length))
	if err != nil {
		return outcome.InternalEscape("%s", err)
	}
	if esc := inv.buyGas(cost); esc != nil {
		return esc
	}
	data, err := inv.memory.Read(ptr, length)
	if err != nil {
		return outcome.LogicalEscape("%s", err)
	}
	inv.returnData = data
	return nil
}

// AddressBalance backs the evm_address_balance host call.
func (inv *Invocation) AddressBalance(addrPtr, destPtr uint32) *outcome.Escape {
	addrBytes, err := inv.memory.ReadBytes20(addrPtr)
	if err != nil {
		return outcome.LogicalEscape("%s", err)
	}
	balance, gasCost := inv.evm.AddressBalance(common.Address(addrBytes))
	if esc := inv.buyGas(gasCost); esc != nil {
		return esc
	}
	if err := inv.memory.WriteBytes32(destPtr, balance); err != nil {
		return outcome.LogicalEscape("%s", err)
	}
	return nil
}

// AddressCodeHash backs the evm_address_codehash host call.
func (inv *Invocation) AddressCodeHash(addrPtr, destPtr uint32) *outcome.Escape {
	addrBytes, err := inv.memory.ReadBytes20(addrPtr)
	if err != nil {
		return outcome.LogicalEscape("%s", err)
	}
	hash, gasCost := inv.evm.AddressCodeHash(common.Address(addrBytes))
	if esc := inv.buyGas(gasCost); esc != nil {
		return esc
	}
	if err := inv.memory.WriteBytes32(destPtr, hash); err != nil {
		return outcome.LogicalEscape("%s", err)
	}
	return nil
}

// BlockHashLookup backs the evm_blockhash host call.
func (inv *Invocation) BlockHashLookup(blockPtr, destPtr uint32) *outcome.Escape {
	block, err := inv.memory.ReadBytes32(blockPtr)
	if err != nil {
		return outcome.LogicalEscape("%s", err)
	}
	hash, gasCost := inv.evm.BlockHash(common.Hash(block))
	if esc := inv.buyGas(gasCost); esc != nil {
		return esc
	}
	if err := inv.memory.WriteBytes32(destPtr, hash); err != nil {
		return outcome.LogicalEscape("%s", err)
	}
	return nil
}

// GasLeftCall backs the evm_gas_left host call (spec.md §4.9 supplement),
// returning the remaining gas converted to EVM gas at the invocation's
// pricing.
func (inv *Invocation) GasLeftCall() (uint64, *outcome.Escape) {
	if esc := inv.buyGas(hostapi.GasLeftGas); esc != nil {
		return 0, esc
	}
	return inv.pricing.WasmToEvm(inv.gasLeft), nil
}

// InkLeftCall backs the evm_ink_left host call, returning the remaining
// wasm gas unconverted (ink is this module's name for wasm gas units
// exposed to the user program, matching the teacher's terminology).
func (inv *Invocation) InkLeftCall() (uint64, *outcome.Escape) {
	if esc := inv.buyGas(hostapi.GasLeftGas); esc != nil {
		return 0, esc
	}
	return inv.gasLeft, nil
}

// StorageLoad backs the account_load_bytes32 host call.
func (inv *Invocation) StorageLoad(db hostapi.StateDB, program common.Address, keyPtr, destPtr uint32) *outcome.Escape {
	key, err := inv.memory.ReadBytes32(keyPtr)
	if err != nil {
		return outcome.LogicalEscape("%s", err)
	}
	cost, mg := hostapi.SLoadCost(db, program, common.Hash(key))
	inv.multi.Add(&inv.multi, &mg)
	value := db.GetState(program, common.Hash(key))
	if esc := inv.buyGas(cost); esc != nil {
		return esc
	}
	if err := inv.memory.WriteBytes32(destPtr, value); err != nil {
		return outcome.LogicalEscape("%s", err)
	}
	return nil
}

// StorageStore backs the account_store_bytes32 host call, prechecking the
// SSTORE sentry gas before touching memory or the state backend.
func (inv *Invocation) StorageStore(db hostapi.StateDB, program common.Address, keyPtr, valuePtr uint32) *outcome.Escape {
	if esc := inv.requireGas(hostapi.SSTORESentryGas); esc != nil {
		return esc
	}
	key, err := inv.memory.ReadBytes32(keyPtr)
	if err != nil {
		return outcome.LogicalEscape("%s", err)
	}
	value, err := inv.memory.ReadBytes32(valuePtr)
	if err != nil {
		return outcome.LogicalEscape("%s", err)
	}
	cost, mg := hostapi.SStoreCost(db, program, common.Hash(key), common.Hash(value))
	inv.multi.Add(&inv.multi, &mg)
	return inv.buyGas(cost)
}

// EmitLog backs the emit_log host call, validating topics≤4 and
// len≥32·topics before buying any gas, matching spec.md §4.9 exactly.
func (inv *Invocation) EmitLog(dataPtr, length, topics uint32) *outcome.Escape {
	if topics > 4 || uint64(length) < uint64(topics)*32 {
		return outcome.LogicalEscape("bad topic data")
	}
	cost, mg, err := hostapi.LogCost(uint64(topics), uint64(length))
	if err != nil {
		return outcome.InternalEscape("%s", err)
	}
	if esc := inv.buyGas(cost); esc != nil {
		return esc
	}
	inv.multi.Add(&inv.multi, &mg)
	data, err := inv.memory.Read(dataPtr, length)
	if err != nil {
		return outcome.LogicalEscape("%s", err)
	}
	if err := inv.evm.EmitLog(data, int(topics)); err != nil {
		return outcome.AsEscape(err)
	}
	return nil
}

// Ecrecover backs the lib_ecrecover host call.
func (inv *Invocation) Ecrecover(hashPtr, vPtr, rPtr, sPtr, resultPtr uint32) *outcome.Escape {
	if esc := inv.buyGas(hostapi.ECRecoverGas); esc != nil {
		return esc
	}
	hash, err := inv.memory.ReadBytes32(hashPtr)
	if err != nil {
		return outcome.LogicalEscape("%s", err)
	}
	v, err := inv.memory.ReadBytes32(vPtr)
	if err != nil {
		return outcome.LogicalEscape("%s", err)
	}
	r, err := inv.memory.ReadBytes32(rPtr)
	if err != nil {
		return outcome.LogicalEscape("%s", err)
	}
	s, err := inv.memory.ReadBytes32(sPtr)
	if err != nil {
		return outcome.LogicalEscape("%s", err)
	}
	addr, ok, reason := hostapi.Ecrecover(hash, v, r, s)
	if !ok {
		return outcome.LogicalEscape("%s", reason)
	}
	var out [32]byte
	copy(out[12:], addr[:])
	if err := inv.memory.WriteBytes32(resultPtr, out); err != nil {
		return outcome.LogicalEscape("%s", err)
	}
	return nil
}

// Keccak backs the native_keccak256 host call.
func (inv *Invocation) Keccak(dataPtr, length, destPtr uint32) *outcome.Escape {
	cost, err := hostapi.Keccak256Cost(uint64(length))
	if err != nil {
		return outcome.InternalEscape("%s", err)
	}
	if esc := inv.buyGas(cost); esc != nil {
		return esc
	}
	data, err := inv.memory.Read(dataPtr, length)
	if err != nil {
		return outcome.LogicalEscape("%s", err)
	}
	digest := hostapi.Keccak256(data)
	if err := inv.memory.WriteBytes32(destPtr, digest); err != nil {
		return outcome.LogicalEscape("%s", err)
	}
	return nil
}

// PayForMemoryGrow backs the supplemental pay_for_memory_grow host call
// (SPEC_FULL.md's original_source supplement, not in the distilled spec):
// an explicit pre-purchase of the cost of growing linear memory to
// newSizeBytes, using the same quadratic formula EVM memory expansion
// uses. Callers invoke this before actually growing the instance's
// memory; HeapBound already bounds how large newSizeBytes can ever get.
func (inv *Invocation) PayForMemoryGrow(newSizeBytes uint64) *outcome.Escape {
	fee, total, err := hostapi.MemoryGrowCost(newSizeBytes, inv.memoryGrowCost)
	if err != nil {
		return outcome.InternalEscape("%s", err)
	}
	if esc := inv.buyGas(fee); esc != nil {
		return esc
	}
	inv.memoryGrowCost = total
	return nil
}

// ConsoleLog backs the debug-only console_log_text host call: free in
// gas, a no-op entirely when debug mode is off (spec.md §4.9: "console log
// (free, debug only)").
func (inv *Invocation) ConsoleLog(ptr, length uint32, sink func(string)) *outcome.Escape {
	if !inv.debug {
		return nil
	}
	data, err := inv.memory.Read(ptr, length)
	if err != nil {
		return outcome.LogicalEscape("%s", err)
	}
	sink(string(data))
	return nil
}
