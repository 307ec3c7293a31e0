// Package runtime is a generated GoMock package.
package runtime

import (
	reflect "reflect"

	common "github.com/ethereum/go-ethereum/common"
	gomock "go.uber.org/mock/gomock"
)

// MockEvmAPI is a mock of the hostapi.EvmAPI interface.
type MockEvmAPI struct {
	ctrl     *gomock.Controller
	recorder *MockEvmAPIMockRecorder
}

// MockEvmAPIMockRecorder is the mock recorder for MockEvmAPI.
type MockEvmAPIMockRecorder struct {
	mock *MockEvmAPI
}

// NewMockEvmAPI creates a new mock instance.
func NewMockEvmAPI(ctrl *gomock.Controller) *MockEvmAPI {
	mock := &MockEvmAPI{ctrl: ctrl}
	mock.recorder = &MockEvmAPIMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockEvmAPI) EXPECT() *MockEvmAPIMockRecorder {
	return m.recorder
}

// AddressBalance mocks base method.
func (m *MockEvmAPI) AddressBalance(addr common.Address) (common.Hash, uint64) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddressBalance", addr)
	ret0, _ := ret[0].(common.Hash)
	ret1, _ := ret[1].(uint64)
	return ret0, ret1
}

// AddressBalance indicates an expected call of AddressBalance.
func (mr *MockEvmAPIMockRecorder) AddressBalance(addr any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddressBalance", reflect.TypeOf((*MockEvmAPI)(nil).AddressBalance), addr)
}

// AddressCodeHash mocks base method.
func (m *MockEvmAPI) AddressCodeHash(addr common.Address) (common.Hash, uint64) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddressCodeHash", addr)
	ret0, _ := ret[0].(common.Hash)
	ret1, _ := ret[1].(uint64)
	return ret0, ret1
}

// AddressCodeHash indicates an expected call of AddressCodeHash.
func (mr *MockEvmAPIMockRecorder) AddressCodeHash(addr any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddressCodeHash", reflect.TypeOf((*MockEvmAPI)(nil).AddressCodeHash), addr)
}

// BlockHash mocks base method.
func (m *MockEvmAPI) BlockHash(block common.Hash) (common.Hash, uint64) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "BlockHash", block)
	ret0, _ := ret[0].(common.Hash)
	ret1, _ := ret[1].(uint64)
	return ret0, ret1
}

// BlockHash indicates an expected call of BlockHash.
func (mr *MockEvmAPIMockRecorder) BlockHash(block any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "BlockHash", reflect.TypeOf((*MockEvmAPI)(nil).BlockHash), block)
}

// LoadBytes32 mocks base method.
func (m *MockEvmAPI) LoadBytes32(key common.Hash) (common.Hash, uint64) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LoadBytes32", key)
	ret0, _ := ret[0].(common.Hash)
	ret1, _ := ret[1].(uint64)
	return ret0, ret1
}

// LoadBytes32 indicates an expected call of LoadBytes32.
func (mr *MockEvmAPIMockRecorder) LoadBytes32(key any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LoadBytes32", reflect.TypeOf((*MockEvmAPI)(nil).LoadBytes32), key)
}

// StoreBytes32 mocks base method.
func (m *MockEvmAPI) StoreBytes32(key, value common.Hash) (uint64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "StoreBytes32", key, value)
	ret0, _ := ret[0].(uint64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// StoreBytes32 indicates an expected call of StoreBytes32.
func (mr *MockEvmAPIMockRecorder) StoreBytes32(key, value any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "StoreBytes32", reflect.TypeOf((*MockEvmAPI)(nil).StoreBytes32), key, value)
}

// ContractCall mocks base method.
func (m *MockEvmAPI) ContractCall(contract common.Address, input []byte, gas uint64, value common.Hash) (uint32, uint64, uint8) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ContractCall", contract, input, gas, value)
	ret0, _ := ret[0].(uint32)
	ret1, _ := ret[1].(uint64)
	ret2, _ := ret[2].(uint8)
	return ret0, ret1, ret2
}

// ContractCall indicates an expected call of ContractCall.
func (mr *MockEvmAPIMockRecorder) ContractCall(contract, input, gas, value any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ContractCall", reflect.TypeOf((*MockEvmAPI)(nil).ContractCall), contract, input, gas, value)
}

// DelegateCall mocks base method.
func (m *MockEvmAPI) DelegateCall(contract common.Address, input []byte, gas uint64) (uint32, uint64, uint8) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DelegateCall", contract, input, gas)
	ret0, _ := ret[0].(uint32)
	ret1, _ := ret[1].(uint64)
	ret2, _ := ret[2].(uint8)
	return ret0, ret1, ret2
}

// DelegateCall indicates an expected call of DelegateCall.
func (mr *MockEvmAPIMockRecorder) DelegateCall(contract, input, gas any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DelegateCall", reflect.TypeOf((*MockEvmAPI)(nil).DelegateCall), contract, input, gas)
}

// StaticCall mocks base method.
func (m *MockEvmAPI) StaticCall(contract common.Address, input []byte, gas uint64) (uint32, uint64, uint8) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "StaticCall", contract, input, gas)
	ret0, _ := ret[0].(uint32)
	ret1, _ := ret[1].(uint64)
	ret2, _ := ret[2].(uint8)
	return ret0, ret1, ret2
}

// StaticCall indicates an expected call of StaticCall.
func (mr *MockEvmAPIMockRecorder) StaticCall(contract, input, gas any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "StaticCall", reflect.TypeOf((*MockEvmAPI)(nil).StaticCall), contract, input, gas)
}

// Create1 mocks base method.
func (m *MockEvmAPI) Create1(code []byte, endowment common.Hash, gas uint64) (common.Address, uint32, uint64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create1", code, endowment, gas)
	ret0, _ := ret[0].(common.Address)
	ret1, _ := ret[1].(uint32)
	ret2, _ := ret[2].(uint64)
	ret3, _ := ret[3].(error)
	return ret0, ret1, ret2, ret3
}

// Create1 indicates an expected call of Create1.
func (mr *MockEvmAPIMockRecorder) Create1(code, endowment, gas any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create1", reflect.TypeOf((*MockEvmAPI)(nil).Create1), code, endowment, gas)
}

// Create2 mocks base method.
func (m *MockEvmAPI) Create2(code []byte, endowment, salt common.Hash, gas uint64) (common.Address, uint32, uint64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create2", code, endowment, salt, gas)
	ret0, _ := ret[0].(common.Address)
	ret1, _ := ret[1].(uint32)
	ret2, _ := ret[2].(uint64)
	ret3, _ := ret[3].(error)
	return ret0, ret1, ret2, ret3
}

// Create2 indicates an expected call of Create2.
func (mr *MockEvmAPIMockRecorder) Create2(code, endowment, salt, gas any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create2", reflect.TypeOf((*MockEvmAPI)(nil).Create2), code, endowment, salt, gas)
}

// LoadReturnData mocks base method.
func (m *MockEvmAPI) LoadReturnData() []byte {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LoadReturnData")
	ret0, _ := ret[0].([]byte)
	return ret0
}

// LoadReturnData indicates an expected call of LoadReturnData.
func (mr *MockEvmAPIMockRecorder) LoadReturnData() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LoadReturnData", reflect.TypeOf((*MockEvmAPI)(nil).LoadReturnData))
}

// EmitLog mocks base method.
func (m *MockEvmAPI) EmitLog(data []byte, topics int) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "EmitLog", data, topics)
	ret0, _ := ret[0].(error)
	return ret0
}

// EmitLog indicates an expected call of EmitLog.
func (mr *MockEvmAPIMockRecorder) EmitLog(data, topics any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "EmitLog", reflect.TypeOf((*MockEvmAPI)(nil).EmitLog), data, topics)
}

// EcrecoverCallback mocks base method.
func (m *MockEvmAPI) EcrecoverCallback(data []byte) (common.Address, uint64) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "EcrecoverCallback", data)
	ret0, _ := ret[0].(common.Address)
	ret1, _ := ret[1].(uint64)
	return ret0, ret1
}

// EcrecoverCallback indicates an expected call of EcrecoverCallback.
func (mr *MockEvmAPIMockRecorder) EcrecoverCallback(data any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "EcrecoverCallback", reflect.TypeOf((*MockEvmAPI)(nil).EcrecoverCallback), data)
}
