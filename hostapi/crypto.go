// Package hostapi: ecrecover host call, adapted from
// arbitrator/stylus/src/host.rs's lib_ecrecover (see DESIGN.md). Signature
// validation follows the same three checks the original performs before
// ever calling into secp256k1: v must select the two standard recovery IDs,
// and r/s must both be below the curve order. Recovery itself is delegated
// to arbcrypto.SigToPub, the teacher's own cgo/wasm-dispatching wrapper
// around secp256k1 recovery, rather than calling decred directly.
package hostapi

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/arbstylus/wasmvm/arbcrypto"
)

// secp256k1N is the order of the secp256k1 curve, used to bound-check r/s
// exactly as the original's SECP256K1N constant does.
var secp256k1N = [32]byte{
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xfe,
	0xba, 0xae, 0xdc, 0xe6, 0xaf, 0x48, 0xa0, 0x3b,
	0xbf, 0xd2, 0x5e, 0x8c, 0xd0, 0x36, 0x41, 0x41,
}

func greaterThan(a, b [32]byte) bool {
	for i := 0; i < 32; i++ {
		if a[i] != b[i] {
			return a[i] > b[i]
		}
	}
	return false
}

// Ecrecover recovers the address that produced (v, r, s) over hash,
// rejecting malformed signature components the way the original rejects
// them: with a logical (contract-visible) error, not an internal one. The
// returned bool reports whether the signature was well-formed enough to
// attempt recovery at all; recovery failure itself yields a zero address.
func Ecrecover(hash [32]byte, v, r, s [32]byte) (addr common.Address, ok bool, reason string) {
	for i := 0; i < 31; i++ {
		if v[i] != 0 {
			return common.Address{}, false, "invalid v parameter"
		}
	}
	if v[31] != 27 && v[31] != 28 {
		return common.Address{}, false, "invalid v parameter"
	}
	recoveryID := v[31] - 27

	if !greaterThan(secp256k1N, r) {
		return common.Address{}, false, "invalid r parameter"
	}
	if !greaterThan(secp256k1N, s) {
		return common.Address{}, false, "invalid s parameter"
	}

	// arbcrypto.SigToPub expects a 65-byte signature laid out r||s||v,
	// with v as a raw recovery id (0/1), not yet offset by 27.
	var sig [65]byte
	copy(sig[0:32], r[:])
	copy(sig[32:64], s[:])
	sig[64] = recoveryID

	pub, err := arbcrypto.SigToPub(hash[:], sig[:])
	if err != nil {
		return common.Address{}, true, ""
	}

	uncompressed := pub.SerializeUncompressed()
	digest := Keccak256(uncompressed[1:])
	var out common.Address
	copy(out[:], digest[12:])
	return out, true, ""
}

// Keccak256 hashes data, backing both the KECCAK256 host call and internal
// consensus hashing (operator.Value.Hash uses the same algorithm), via the
// teacher's own cgo/wasm-dispatching arbcrypto.NewLegacyKeccak256.
func Keccak256(data []byte) [32]byte {
	var out [32]byte
	h := arbcrypto.NewLegacyKeccak256()
	h.Write(data)
	h.Sum(out[:0])
	return out
}
