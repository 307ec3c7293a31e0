package stylus

import "github.com/arbstylus/wasmvm/operator"

// countedOpcodes is the curated set of operators the debug-only Counter
// pass tracks when Config.Debug.CountOps is set: the branch, call-family,
// basic load/store and memory.grow operators an operator cares about most when profiling a
// program's hot path, matching the kind of opcode breakdown spec.md §4.8
// describes without tracking all ~170 recognized operators (each one costs
// a dedicated global and a block-local increment).
var countedOpcodes = []operator.OpCode{
	operator.OpCall,
	operator.OpCallIndirect,
	operator.OpBr,
	operator.OpBrIf,
	operator.OpBrTable,
	operator.OpI32Load,
	operator.OpI64Load,
	operator.OpI32Store,
	operator.OpI64Store,
	operator.OpMemoryGrow,
}
