package runtime

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"

	"github.com/arbstylus/wasmvm/hostapi"
	"github.com/arbstylus/wasmvm/params"
)

// TestMain guards the invocation-state stack tests against goroutine leaks;
// ReadArgs/StorageLoad/EmitLog never spawn a goroutine themselves, so any
// leak here would come from a host call misusing its context.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeStateDB struct {
	state       map[common.Hash]common.Hash
	accessList  map[common.Hash]bool
	addrAccess  map[common.Address]bool
}

func newFakeStateDB() *fakeStateDB {
	return &fakeStateDB{
		state:      make(map[common.Hash]common.Hash),
		accessList: make(map[common.Hash]bool),
		addrAccess: make(map[common.Address]bool),
	}
}

func (db *fakeStateDB) GetState(addr common.Address, key common.Hash) common.Hash {
	return db.state[key]
}
func (db *fakeStateDB) GetCommittedState(addr common.Address, key common.Hash) common.Hash {
	return db.state[key]
}
func (db *fakeStateDB) SlotInAccessList(addr common.Address, key common.Hash) (bool, bool) {
	return db.addrAccess[addr], db.accessList[key]
}
func (db *fakeStateDB) AddSlotToAccessList(addr common.Address, key common.Hash) {
	db.addrAccess[addr] = true
	db.accessList[key] = true
}
func (db *fakeStateDB) AddressInAccessList(addr common.Address) bool { return db.addrAccess[addr] }
func (db *fakeStateDB) AddAddressToAccessList(addr common.Address)   { db.addrAccess[addr] = true }
func (db *fakeStateDB) AddRefund(uint64)                             {}
func (db *fakeStateDB) SubRefund(uint64)                             {}
func (db *fakeStateDB) Empty(common.Address) bool                    { return false }

// newTestInvocation builds an Invocation backed by a gomock EvmAPI with no
// expectations set; ReadArgs, StorageLoad, StorageStore, Keccak and
// ConsoleLog never reach the EVM-side seam, so the unexpectant mock asserts
// that stays true. A successful EmitLog does call it, so tests of that path
// set their own expectation.
func newTestInvocation(t *testing.T, startGas uint64) *Invocation {
	t.Helper()
	ctrl := gomock.NewController(t)
	evm := NewMockEvmAPI(ctrl)
	mem := NewMemory(make([]byte, 256))
	pricing := params.PricingParams{WasmGasPrice: 10000}
	return New(startGas, pricing, []byte("calldata"), mem, evm, hostapi.EvmData{}, false)
}

func TestReadArgsCopiesCalldataAndChargesGas(t *testing.T) {
	inv := newTestInvocation(t, 1_000_000)
	esc := inv.ReadArgs(0)
	require.Nil(t, esc)
	got, err := inv.Memory().Read(0, uint32(len(inv.Args())))
	require.NoError(t, err)
	require.Equal(t, inv.Args(), got)
	require.Less(t, inv.GasLeft(), uint64(1_000_000))
}

func TestReadArgsOutOfGasEscapes(t *testing.T) {
	inv := newTestInvocation(t, 0)
	esc := inv.ReadArgs(0)
	require.NotNil(t, esc)
	require.Zero(t, inv.GasLeft())
}

func TestStorageLoadMarksSlotWarmAndWritesValue(t *testing.T) {
	inv := newTestInvocation(t, 1_000_000)
	db := newFakeStateDB()
	var key [32]byte
	key[31] = 1
	db.state[common.Hash(key)] = common.Hash{0xAB}
	require.NoError(t, inv.Memory().WriteBytes32(0, key))

	esc := inv.StorageLoad(db, common.Address{}, 0, 32)
	require.Nil(t, esc)
	got, err := inv.Memory().ReadBytes32(32)
	require.NoError(t, err)
	require.Equal(t, [32]byte(common.Hash{0xAB}), got)

	gasAfterCold := inv.GasLeft()
	esc = inv.StorageLoad(db, common.Address{}, 0, 32)
	require.Nil(t, esc)
	require.Greater(t, gasAfterCold, inv.GasLeft()) // second load still costs warm price > 0
}

func TestStorageStoreRequiresSentryGas(t *testing.T) {
	inv := newTestInvocation(t, 1000) // below SSTORESentryGas
	db := newFakeStateDB()
	var key, value [32]byte
	require.NoError(t, inv.Memory().WriteBytes32(0, key))
	require.NoError(t, inv.Memory().WriteBytes32(32, value))

	esc := inv.StorageStore(db, common.Address{}, 0, 32)
	require.NotNil(t, esc)
}

func TestEmitLogRejectsBadTopicData(t *testing.T) {
	inv := newTestInvocation(t, 1_000_000)
	esc := inv.EmitLog(0, 10, 1) // length 10 < 32*topics
	require.NotNil(t, esc)
}

func TestEmitLogAcceptsValidTopics(t *testing.T) {
	inv := newTestInvocation(t, 1_000_000)
	inv.evm.(*MockEvmAPI).EXPECT().EmitLog(gomock.Any(), 1).Return(nil)
	esc := inv.EmitLog(0, 32, 1)
	require.Nil(t, esc)
}

func TestKeccakWritesDigest(t *testing.T) {
	inv := newTestInvocation(t, 1_000_000)
	require.NoError(t, inv.Memory().Write(0, []byte("hello world")))
	esc := inv.Keccak(0, 11, 64)
	require.Nil(t, esc)
	digest, err := inv.Memory().ReadBytes32(64)
	require.NoError(t, err)
	require.NotEqual(t, [32]byte{}, digest)
}

func TestConsoleLogNoOpWhenNotDebug(t *testing.T) {
	inv := newTestInvocation(t, 1_000_000)
	called := false
	require.NoError(t, inv.Memory().Write(0, []byte("hi")))
	esc := inv.ConsoleLog(0, 2, func(string) { called = true })
	require.Nil(t, esc)
	require.False(t, called)
}
