// Package runtime drives a single invocation of an instrumented module
// through the state machine described in spec.md §4.10, dispatching host
// calls per §4.9's fixed/dynamic charge discipline. It is the Go-side
// equivalent of arbitrator/stylus/src/lib.rs's stylus_call plus host.rs's
// env.* helpers, adapted to call into hostapi rather than a live *vm.EVM.
package runtime

import (
	"fmt"

	"github.com/arbstylus/wasmvm/hostapi"
	"github.com/arbstylus/wasmvm/multigas"
	"github.com/arbstylus/wasmvm/outcome"
	"github.com/arbstylus/wasmvm/params"
)

// State is one point in the Loaded→Started→Running→terminal machine.
type State uint8

const (
	StateLoaded State = iota
	StateStarted
	StateRunning
	StateSuccess
	StateRevert
	StateFailure
	StateOutOfGas
	StateOutOfStack
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateStarted:
		return "started"
	case StateRunning:
		return "running"
	case StateSuccess:
		return "success"
	case StateRevert:
		return "revert"
	case StateFailure:
		return "failure"
	case StateOutOfGas:
		return "out_of_gas"
	case StateOutOfStack:
		return "out_of_stack"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

func (s State) terminal() bool { return s >= StateSuccess }

// Invocation is per-call state: lives only for the duration of one user
// call (spec.md §4.10). Nested contract calls allocate a fresh Invocation
// rather than sharing one, matching the "no shared mutable state across
// invocations" rule in spec.md §5.
type Invocation struct {
	state State

	gasLeft uint64
	pricing params.PricingParams

	args       []byte
	returnData []byte

	memory *Memory
	evm    hostapi.EvmAPI
	data   hostapi.EvmData

	debug bool
	multi multigas.MultiGas

	memoryGrowCost uint64
}

// New creates an Invocation in the Loaded state, holding startGas wasm gas
// (already converted from the EVM-side gas budget via pricing.EvmToWasm).
func New(startGas uint64, pricing params.PricingParams, args []byte, mem *Memory, evm hostapi.EvmAPI, data hostapi.EvmData, debug bool) *Invocation {
	return &Invocation{
		state:   StateLoaded,
		gasLeft: startGas,
		pricing: pricing,
		args:    args,
		memory:  mem,
		evm:     evm,
		data:    data,
		debug:   debug,
	}
}

func (inv *Invocation) State() State          { return inv.state }
func (inv *Invocation) GasLeft() uint64       { return inv.gasLeft }
func (inv *Invocation) Args() []byte          { return inv.args }
func (inv *Invocation) ReturnData() []byte    { return inv.returnData }
func (inv *Invocation) Memory() *Memory       { return inv.memory }
func (inv *Invocation) MultiGas() multigas.MultiGas { return inv.multi }

// Start transitions Loaded→Started, the renamed-start invocation.
func (inv *Invocation) Start() error {
	if inv.state != StateLoaded {
		return fmt.Errorf("runtime: Start called in state %s", inv.state)
	}
	inv.state = StateStarted
	return nil
}

// Run transitions Started→Running, the user entry-point invocation.
func (inv *Invocation) Run() error {
	if inv.state != StateStarted {
		return fmt.Errorf("runtime: Run called in state %s", inv.state)
	}
	inv.state = StateRunning
	return nil
}

// Trap reports an instrumentation trap observed after the wasm call
// returns: gasStatus is the `stylus_gas_status` global's final value,
// stackExhausted reports whether `stylus_stack_left` reached zero. Per
// spec.md §4.10, stack exhaustion forfeits all remaining gas.
func (inv *Invocation) Trap(gasStatus uint32, stackExhausted bool) outcome.Outcome {
	switch {
	case stackExhausted:
		inv.state = StateOutOfStack
		inv.gasLeft = 0
	case gasStatus != 0:
		inv.state = StateOutOfGas
	default:
		inv.state = StateFailure
	}
	return inv.outcome(nil)
}

// Escape reports a host-function escape raised mid-call (spec.md §7): a
// Logical escape becomes Failure; an Internal escape is never meant to
// reach here and is returned to the caller to panic/log loudly instead of
// being laundered into a contract-visible outcome.
func (inv *Invocation) Escape(esc *outcome.Escape) (outcome.Outcome, error) {
	if esc.Kind == outcome.Internal {
		return outcome.Outcome{}, esc
	}
	inv.state = StateFailure
	return inv.outcome([]byte(esc.Error())), nil
}

// Return reports a normal entry-point return: a zero status byte selects
// Success, nonzero selects Revert, both carrying the program's output.
func (inv *Invocation) Return(status byte, data []byte) outcome.Outcome {
	inv.returnData = data
	if status == 0 {
		inv.state = StateSuccess
	} else {
		inv.state = StateRevert
	}
	return inv.outcome(data)
}

func (inv *Invocation) outcome(data []byte) outcome.Outcome {
	var status outcome.Status
	switch inv.state {
	case StateSuccess:
		status = outcome.Success
	case StateRevert:
		status = outcome.Revert
	case StateOutOfGas:
		status = outcome.OutOfGas
	case StateOutOfStack:
		status = outcome.OutOfStack
	default:
		status = outcome.Failure
	}
	return outcome.Outcome{
		Status:  status,
		Data:    data,
		GasLeft: inv.pricing.WasmToEvm(inv.gasLeft),
	}
}
