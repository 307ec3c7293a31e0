package hostapi

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

type fakeStateDB struct {
	state      map[common.Hash]common.Hash
	committed  map[common.Hash]common.Hash
	slotAccess map[common.Hash]bool
	addrAccess map[common.Address]bool
	refund     uint64
}

func newFakeStateDB() *fakeStateDB {
	return &fakeStateDB{
		state:      make(map[common.Hash]common.Hash),
		committed:  make(map[common.Hash]common.Hash),
		slotAccess: make(map[common.Hash]bool),
		addrAccess: make(map[common.Address]bool),
	}
}

func (db *fakeStateDB) GetState(addr common.Address, key common.Hash) common.Hash {
	return db.state[key]
}
func (db *fakeStateDB) GetCommittedState(addr common.Address, key common.Hash) common.Hash {
	return db.committed[key]
}
func (db *fakeStateDB) SlotInAccessList(addr common.Address, key common.Hash) (bool, bool) {
	return db.addrAccess[addr], db.slotAccess[key]
}
func (db *fakeStateDB) AddSlotToAccessList(addr common.Address, key common.Hash) {
	db.addrAccess[addr] = true
	db.slotAccess[key] = true
}
func (db *fakeStateDB) AddressInAccessList(addr common.Address) bool { return db.addrAccess[addr] }
func (db *fakeStateDB) AddAddressToAccessList(addr common.Address)   { db.addrAccess[addr] = true }
func (db *fakeStateDB) AddRefund(gas uint64)                         { db.refund += gas }
func (db *fakeStateDB) SubRefund(gas uint64)                         { db.refund -= gas }
func (db *fakeStateDB) Empty(common.Address) bool                    { return false }

func TestSLoadCostColdThenWarm(t *testing.T) {
	db := newFakeStateDB()
	var key common.Hash
	key[31] = 1

	cold, _ := SLoadCost(db, common.Address{}, key)
	warm, _ := SLoadCost(db, common.Address{}, key)
	require.Greater(t, cold, warm)
}

func TestSStoreCostNoopWhenValueUnchanged(t *testing.T) {
	db := newFakeStateDB()
	var key, value common.Hash
	db.state[key] = value
	db.AddAddressToAccessList(common.Address{}) // the executing program's address is always warm

	cost, _ := SStoreCost(db, common.Address{}, key, value)
	require.Greater(t, cost, uint64(0))
}

func TestBurnGasForfeitsOnInsufficientBalance(t *testing.T) {
	gas := uint64(5)
	err := BurnGas(&gas, 10)
	require.ErrorIs(t, err, ErrOutOfGas)
	require.Zero(t, gas)
}

func TestBurnGasDeductsExactAmount(t *testing.T) {
	gas := uint64(100)
	require.NoError(t, BurnGas(&gas, 40))
	require.EqualValues(t, 60, gas)
}

func TestMemoryCopyCostScalesWithWords(t *testing.T) {
	small, err := MemoryCopyCost(32)
	require.NoError(t, err)
	large, err := MemoryCopyCost(320)
	require.NoError(t, err)
	require.Equal(t, small*10, large)
}

func TestKeccak256CostHasBaseCharge(t *testing.T) {
	cost, err := Keccak256Cost(0)
	require.NoError(t, err)
	require.Greater(t, cost, uint64(0))
}

func TestLogCostChargesPerTopicAndByte(t *testing.T) {
	cost, _, err := LogCost(2, 64)
	require.NoError(t, err)
	require.Greater(t, cost, uint64(0))
}

func TestEcrecoverRejectsInvalidV(t *testing.T) {
	var hash, r, s [32]byte
	var v [32]byte
	v[31] = 99 // neither 27 nor 28
	_, ok, reason := Ecrecover(hash, v, r, s)
	require.False(t, ok)
	require.Equal(t, "invalid v parameter", reason)
}

func TestEcrecoverRejectsOutOfRangeR(t *testing.T) {
	var hash, s [32]byte
	var v [32]byte
	v[31] = 27
	var r [32]byte
	for i := range r {
		r[i] = 0xff // exceeds secp256k1N
	}
	_, ok, reason := Ecrecover(hash, v, r, s)
	require.False(t, ok)
	require.Equal(t, "invalid r parameter", reason)
}

func TestKeccak256Deterministic(t *testing.T) {
	a := Keccak256([]byte("hello"))
	b := Keccak256([]byte("hello"))
	require.Equal(t, a, b)
	c := Keccak256([]byte("world"))
	require.NotEqual(t, a, c)
}
