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

package instrument

import "github.com/arbstylus/wasmvm/wasmmod"

// StartMover renames a module's implicit start function to a reserved
// export name so the host can invoke it explicitly and charge its cost
// against the invocation, per spec.md §4.7.
type StartMover struct{}

func NewStartMover() *StartMover { return &StartMover{} }

func (s *StartMover) Name() string { return "start mover" }

func (s *StartMover) UpdateModule(mod wasmmod.ModuleMod) error {
	return mod.MoveStartFunction(wasmmod.StylusEntryPoint)
}

func (s *StartMover) Instrument(wasmmod.FunctionIndex) (FuncMiddleware, error) {
	return passthroughFuncMiddleware{name: "start mover"}, nil
}
