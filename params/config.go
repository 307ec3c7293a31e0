// Copyright 2024 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package params carries the version-gated configuration knobs that every
// other package in this module reads from, following the teacher's
// ArbosVersion_*/ArbitrumChainParams style of a single struct-of-knobs value
// the embedder builds once per activation.
package params

import (
	"fmt"
	"math"

	"github.com/arbstylus/wasmvm/operator"
)

// OpCosts prices a single wasm operator in wasm gas units.
type OpCosts func(op operator.OpCode) uint64

// DebugParams enables optional, non-consensus-critical instrumentation.
type DebugParams struct {
	DebugFuncs bool
	CountOps   bool
}

// DepthParams bounds the deterministic stack-depth checker.
type DepthParams struct {
	MaxDepth     uint32
	MaxFrameSize uint32 // requires recompilation if changed
}

func defaultDepthParams() DepthParams {
	return DepthParams{MaxDepth: math.MaxUint32, MaxFrameSize: math.MaxUint32}
}

// PricingParams converts between EVM gas and wasm gas.
type PricingParams struct {
	// WasmGasPrice is the price of one unit of wasm gas, in basis points of
	// one unit of EVM gas.
	WasmGasPrice uint64
	// HostioCost is the flat wasm-gas surcharge levied on every host call.
	HostioCost uint64
}

const bipsDenominator = 100_00

// EvmToWasm converts an amount of EVM gas into wasm gas at the configured
// price, saturating rather than overflowing.
func (p PricingParams) EvmToWasm(evmGas uint64) (uint64, error) {
	if p.WasmGasPrice == 0 {
		return 0, fmt.Errorf("gas price is zero")
	}
	return saturatingMul(evmGas, bipsDenominator) / p.WasmGasPrice, nil
}

// WasmToEvm converts an amount of wasm gas back into EVM gas at the
// configured price, saturating rather than overflowing.
func (p PricingParams) WasmToEvm(wasmGas uint64) uint64 {
	return saturatingMul(wasmGas, p.WasmGasPrice) / bipsDenominator
}

func saturatingMul(a, b uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}
	product := a * b
	if product/a != b {
		return math.MaxUint64
	}
	return product
}

// Config is the full set of knobs governing one activation's
// instrumentation and one call's metering, mirroring the teacher's
// StylusConfig.
type Config struct {
	// Version selects a frozen bundle of defaults below; bumping it
	// requires recompiling any already-activated module.
	Version uint32
	// Costs prices every operator; requires recompilation if changed.
	Costs OpCosts
	// StartGas is the wasm gas an invocation starts with before any EVM
	// gas has been converted and deposited.
	StartGas uint64
	// HeapBound caps linear memory growth, in bytes; requires
	// recompilation if changed.
	HeapBound uint64
	Depth     DepthParams
	Pricing   PricingParams
	Debug     DebugParams
}

func zeroCosts(operator.OpCode) uint64 { return 0 }

// DefaultConfig returns version 0: a no-op configuration with no metering,
// no depth limit, and an unbounded heap, matching the teacher's
// Default impl precisely (including the unbounded Bytes(u32::MAX) heap).
func DefaultConfig() Config {
	return Config{
		Version:   0,
		Costs:     zeroCosts,
		StartGas:  0,
		HeapBound: math.MaxUint32,
		Depth:     defaultDepthParams(),
		Pricing:   PricingParams{},
		Debug:     DebugParams{},
	}
}

const (
	version1HeapBound  = 2 * 1024 * 1024
	version1MaxDepth   = 1 * 1024 * 1024
	version1UniformCost = 1
)

// NewConfig returns the frozen configuration bundle for the given version.
// It panics on an unrecognized version, matching the teacher's own
// version-dispatch panic: picking a config version is a deployment-time
// decision, not a runtime-recoverable one.
func NewConfig(version uint32) Config {
	cfg := DefaultConfig()
	cfg.Version = version

	switch version {
	case 0:
		// no-op defaults already set above
	case 1:
		cfg.Costs = func(operator.OpCode) uint64 { return version1UniformCost }
		cfg.HeapBound = version1HeapBound
		cfg.Depth.MaxDepth = version1MaxDepth
	default:
		panic(fmt.Sprintf("no config exists for Stylus version %d", version))
	}
	return cfg
}

// HeapBoundPages returns HeapBound rounded down to whole wasm pages.
func (c Config) HeapBoundPages() uint32 {
	const pageSize = 65536
	pages := c.HeapBound / pageSize
	if pages > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(pages)
}
