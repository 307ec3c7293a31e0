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

// Package outcome defines the result of one invocation and the error
// classification host calls use to escape an in-flight call, grounded on
// _examples/original_source/arbitrator/stylus/src/host.rs's Escape/MaybeEscape
// and spec.md §3/§7's Outcome model.
package outcome

import "fmt"

// Status is the terminal disposition of one invocation.
type Status uint8

const (
	Success Status = iota
	Revert
	Failure
	OutOfGas
	OutOfStack
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case Revert:
		return "revert"
	case Failure:
		return "failure"
	case OutOfGas:
		return "out of gas"
	case OutOfStack:
		return "out of stack"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// Outcome is the result of one call into an instrumented module.
type Outcome struct {
	Status Status
	// Data is the returned bytes: the return/revert data on Success/Revert,
	// or a human-readable diagnostic on Failure. Never populated for
	// OutOfGas/OutOfStack, whose reason is the status itself.
	Data []byte
	// GasLeft is the gas remaining at the moment execution stopped;
	// runtime.Invocation reports it as EVM gas, converted back from its
	// wasm gas at the invocation's pricing.
	GasLeft uint64
}

// EscapeKind distinguishes a host call's internal failure (a bug or a
// resource limit local to this execution, never gas/stack related) from a
// logical one (a contract-visible violation the caller provoked, reported
// back to it as ordinary failure data).
type EscapeKind uint8

const (
	// Logical escapes surface as a Failure outcome with Data set to the
	// message: the contract did something the host refuses, not something
	// the runtime itself choked on.
	Logical EscapeKind = iota
	// Internal escapes indicate the host environment itself is broken
	// (a gas-formula overflow, a state-backend error) and must
	// never be interpreted as contract-controlled behavior.
	Internal
)

// Escape is returned by every hostapi call that can abort the invocation
// outside of the ordinary gas-accounting path.
type Escape struct {
	Kind EscapeKind
	msg  string
}

func (e *Escape) Error() string { return e.msg }

// LogicalEscape builds a contract-visible Escape, mirroring host.rs's
// `Escape::logical(...)` helper used throughout the host-call surface for
// argument validation failures (bad topic counts, invalid ecrecover
// parameters, and the like).
func LogicalEscape(format string, args ...any) *Escape {
	return &Escape{Kind: Logical, msg: fmt.Sprintf(format, args...)}
}

// InternalEscape builds a host-side Escape: the wasm program did nothing
// wrong, but the host cannot continue (a gas-formula overflow, a broken
// state backend). Out-of-bounds user-memory accesses are Logical escapes.
func InternalEscape(format string, args ...any) *Escape {
	return &Escape{Kind: Internal, msg: fmt.Sprintf(format, args...)}
}

// AsEscape unwraps err into an *Escape if it is one, classifying anything
// else as Internal: an ordinary Go error surfacing from deep in a host call
// means something this module didn't anticipate broke, not that the
// contract asked for something illegal.
func AsEscape(err error) *Escape {
	if err == nil {
		return nil
	}
	if esc, ok := err.(*Escape); ok {
		return esc
	}
	return InternalEscape("%s", err.Error())
}

// ToOutcome converts a terminal *Escape into the Outcome reported to the
// embedder: a Logical escape becomes an ordinary Failure (its message is
// contract-visible diagnostic data), while an Internal escape is never
// meant to reach this far — callers should treat it as a programming error
// and panic or log loudly instead of returning it to the chain.
func (e *Escape) ToOutcome(gasLeft uint64) Outcome {
	return Outcome{Status: Failure, Data: []byte(e.msg), GasLeft: gasLeft}
}
