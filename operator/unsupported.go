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

package operator

// UnsupportedProposal names a wasm proposal this module refuses to
// instrument, matching the rejection arms of
// _examples/original_source/arbitrator/polyglot/src/depth.rs's
// worst_case_depth. wasmparser reports one of these in the load-time error
// the first time it sees a matching raw opcode; operator itself only has
// OpCodes for what is supported, so these names exist purely for error
// messages and the parser's lookup table.
type UnsupportedProposal string

const (
	ProposalExceptionHandling UnsupportedProposal = "exception-handling"
	ProposalReferenceTypes    UnsupportedProposal = "reference-types"
	ProposalBulkMemory        UnsupportedProposal = "bulk-memory-operations"
	ProposalThreads           UnsupportedProposal = "threads"
	ProposalSIMD              UnsupportedProposal = "simd"
)

// UnsupportedOpcodeName maps a raw wasm mnemonic outside the supported set
// to the proposal that introduced it, for wasmparser's "operator not
// supported" error. Only mnemonics plausible in real-world wasm output are
// listed; anything else is reported as simply unrecognized.
var UnsupportedOpcodeName = map[string]UnsupportedProposal{
	"try": ProposalExceptionHandling, "catch": ProposalExceptionHandling,
	"throw": ProposalExceptionHandling, "rethrow": ProposalExceptionHandling,

	"typed_select": ProposalReferenceTypes, "table.get": ProposalReferenceTypes,
	"table.set": ProposalReferenceTypes, "table.grow": ProposalReferenceTypes,
	"table.size": ProposalReferenceTypes,

	"memory.init": ProposalBulkMemory, "data.drop": ProposalBulkMemory,
	"memory.copy": ProposalBulkMemory, "memory.fill": ProposalBulkMemory,
	"table.init": ProposalBulkMemory, "elem.drop": ProposalBulkMemory,
	"table.copy": ProposalBulkMemory, "table.fill": ProposalBulkMemory,

	"memory.atomic.notify": ProposalThreads, "memory.atomic.wait32": ProposalThreads,
	"memory.atomic.wait64": ProposalThreads, "atomic.fence": ProposalThreads,

	"v128.load": ProposalSIMD, "v128.const": ProposalSIMD, "i8x16.splat": ProposalSIMD,
}
