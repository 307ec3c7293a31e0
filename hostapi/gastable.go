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

// Package hostapi backs the runtime host-call surface (spec.md §4.9) with
// the EVM-side gas formulas and state access a deployed contract's host
// calls buy against, adapted from the teacher's core/vm/gas_table.go,
// operations_acl.go, operations_acl_arbitrum.go, instructions_arbitrum.go,
// and contract_arbitrum.go (see DESIGN.md). Unlike the teacher, hostapi
// never touches an *EVM/*Contract/*Stack/*Memory directly — those types
// live deep inside github.com/ethereum/go-ethereum/core/vm and are not
// this module's concern; instead it exposes the same cost formulas against
// the narrow StateDB/BlockContext seams a wasm host call actually needs.
package hostapi

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
	gethmath "github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/params"

	"github.com/arbstylus/wasmvm/multigas"
)

// ErrGasUintOverflow mirrors the teacher's own sentinel of the same name.
var ErrGasUintOverflow = errors.New("gas uint64 overflow")

const wordSize = 32

func toWordSize(size uint64) uint64 {
	if size > (1<<64-31)/1 {
		return (1<<64 - 1) / wordSize
	}
	return (size + wordSize - 1) / wordSize
}

// MemoryGrowCost prices growing linear memory from oldSize to newSize
// bytes with go-ethereum's quadratic memory-expansion formula, adapted
// from memoryGasCost. lastCost is the previously paid total (mem.lastGasCost
// in the teacher); callers must persist the returned total back into their
// own running state for the next call. This backs the supplemental
// `pay_for_memory_grow` host function described in SPEC_FULL.md §4.9.
func MemoryGrowCost(newSize, lastCost uint64) (fee, newTotal uint64, err error) {
	if newSize == 0 {
		return 0, lastCost, nil
	}
	if newSize > 0x1FFFFFFFE0 {
		return 0, lastCost, ErrGasUintOverflow
	}
	words := toWordSize(newSize)
	linCoef := words * params.MemoryGas
	square := words * words
	quadCoef := square / params.QuadCoeffDiv
	total := linCoef + quadCoef
	if total <= lastCost {
		return 0, lastCost, nil
	}
	return total - lastCost, total, nil
}

// MemoryCopyCost prices copying n bytes across the host/wasm memory
// boundary, adapted from memoryCopierGas's per-word CopyGas charge (the
// quadratic expansion term is handled separately by MemoryGrowCost, since
// in this module's linear memory is already bounded by HeapBound and grows
// independently of any one host call).
func MemoryCopyCost(n uint64) (uint64, error) {
	words := toWordSize(n)
	fee, overflow := gethmath.SafeMul(words, params.CopyGas)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	return fee, nil
}

// Keccak256Cost prices hashing n bytes, following go-ethereum's KECCAK256
// opcode cost: a flat base plus a per-word charge.
func Keccak256Cost(n uint64) (uint64, error) {
	words := toWordSize(n)
	wordCost, overflow := gethmath.SafeMul(words, params.Keccak256WordGas)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	total, overflow := gethmath.SafeAdd(params.Keccak256Gas, wordCost)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	return total, nil
}

// LogCost prices EMIT_LOG per spec.md §4.9: `(1+n_topics)*LOG_TOPIC_GAS`
// plus `data_bytes*LOG_DATA_GAS`, split for debug multigas purposes the way
// the teacher's makeGasLog does (topic bytes are charged as history
// growth, the rest as computation).
func LogCost(topics, dataLen uint64) (total uint64, mg multigas.MultiGas, err error) {
	const topicBytes = 32

	base, overflow := gethmath.SafeMul(1+topics, params.LogTopicGas)
	if overflow {
		return 0, mg, ErrGasUintOverflow
	}
	histPerTopic, overflow := gethmath.SafeMul(topicBytes, params.LogDataGas)
	if overflow {
		return 0, mg, ErrGasUintOverflow
	}
	hist, overflow := gethmath.SafeMul(topics, histPerTopic)
	if overflow {
		return 0, mg, ErrGasUintOverflow
	}
	dataFee, overflow := gethmath.SafeMul(dataLen, params.LogDataGas)
	if overflow {
		return 0, mg, ErrGasUintOverflow
	}
	if dataFee < hist {
		// fewer data bytes than the topic minimum requires; spec.md §4.9's
		// bad-topic-data validation should already have rejected this.
		dataFee = hist
	}
	compute, overflow := gethmath.SafeAdd(base, dataFee-hist)
	if overflow {
		return 0, mg, ErrGasUintOverflow
	}
	mg.Increment(multigas.ResourceKindHistoryGrowth, hist)
	mg.Increment(multigas.ResourceKindComputation, compute)
	total, overflow = gethmath.SafeAdd(compute, hist)
	if overflow {
		return 0, mg, ErrGasUintOverflow
	}
	return total, mg, nil
}
