// Package multigas defines multi-dimensional gas for the EVM.
//
// This package introduces mechanisms to track each resource used by the EVM separately. The
// possible resources are computation, history growth, storage access, storage growth, and an
// unknown bucket for charges this module's instrumentation passes cannot yet attribute precisely.
// By tracking each one individually this module's debug mode can report where an invocation's gas
// actually went, without touching the single-dimension consensus gas model spec.md mandates.
package multigas

import "math"

// ResourceKind represents a dimension for the multi-dimensional gas.
type ResourceKind uint8

const (
	ResourceKindComputation ResourceKind = iota
	ResourceKindHistoryGrowth
	ResourceKindStorageAccess
	ResourceKindStorageGrowth
	ResourceKindUnknown
	NumResourceKind
)

func (k ResourceKind) String() string {
	switch k {
	case ResourceKindComputation:
		return "computation"
	case ResourceKindHistoryGrowth:
		return "history_growth"
	case ResourceKindStorageAccess:
		return "storage_access"
	case ResourceKindStorageGrowth:
		return "storage_growth"
	case ResourceKindUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// MultiGas tracks gas for each resource separately. It is purely
// observational debug telemetry (see SPEC_FULL.md §3) and never feeds back
// into the consensus-critical single-dimension gas model.
type MultiGas [NumResourceKind]uint64

// ZeroGas returns an all-zero breakdown.
func ZeroGas() *MultiGas { return &MultiGas{} }

func single(kind ResourceKind, amount uint64) *MultiGas {
	mg := &MultiGas{}
	mg[kind] = amount
	return mg
}

func ComputationGas(amount uint64) *MultiGas    { return single(ResourceKindComputation, amount) }
func HistoryGrowthGas(amount uint64) *MultiGas  { return single(ResourceKindHistoryGrowth, amount) }
func StorageAccessGas(amount uint64) *MultiGas  { return single(ResourceKindStorageAccess, amount) }
func StorageGrowthGas(amount uint64) *MultiGas  { return single(ResourceKindStorageGrowth, amount) }
func UnknownGas(amount uint64) *MultiGas        { return single(ResourceKindUnknown, amount) }

// Get returns the gas attributed to kind.
func (mg *MultiGas) Get(kind ResourceKind) uint64 { return mg[kind] }

// Set overwrites the gas attributed to kind.
func (mg *MultiGas) Set(kind ResourceKind, amount uint64) { mg[kind] = amount }

// Increment adds amount to kind, saturating at math.MaxUint64.
func (mg *MultiGas) Increment(kind ResourceKind, amount uint64) {
	if mg[kind] > math.MaxUint64-amount {
		mg[kind] = math.MaxUint64
		return
	}
	mg[kind] += amount
}

// SafeIncrement is Increment's overflow-reporting twin, matching the
// teacher's own SafeIncrement used throughout gas_table.go: it reports
// true (and leaves mg unmodified) rather than silently saturating.
func (mg *MultiGas) SafeIncrement(kind ResourceKind, amount uint64) (overflow bool) {
	if mg[kind] > math.MaxUint64-amount {
		return true
	}
	mg[kind] += amount
	return false
}

// Add sums a and b into mg (mg may alias a or b) and returns mg, mirroring
// the teacher's chainable `gas = gas.Add(gas, more)` call style.
func (mg *MultiGas) Add(a, b *MultiGas) *MultiGas {
	var out MultiGas
	for k := ResourceKind(0); k < NumResourceKind; k++ {
		out[k] = a[k] + b[k]
	}
	*mg = out
	return mg
}

// Sub subtracts b from a into mg, saturating at zero per resource.
func (mg *MultiGas) Sub(a, b *MultiGas) *MultiGas {
	var out MultiGas
	for k := ResourceKind(0); k < NumResourceKind; k++ {
		if a[k] < b[k] {
			out[k] = 0
			continue
		}
		out[k] = a[k] - b[k]
	}
	*mg = out
	return mg
}

// Total sums every resource dimension into a single gas figure, the value
// this module reports alongside (never instead of) the consensus gas_left.
func (mg *MultiGas) Total() uint64 {
	var total uint64
	for k := ResourceKind(0); k < NumResourceKind; k++ {
		total += mg[k]
	}
	return total
}
