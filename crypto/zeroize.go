package crypto

import (
	"crypto/subtle"
	"runtime"
)

// Zeroize securely overwrites a byte slice with zeros. Used to clear
// secret key material from memory once a key is retired.
//
// subtle.XORBytes(b, b, b) XORs each byte with itself; unlike a plain
// store loop the call cannot be eliminated as a dead store, and
// runtime.KeepAlive keeps the slice live until the overwrite lands.
//
// Complexity: O(n) where n is slice length. Zero allocations.
func Zeroize(b []byte) {
	if len(b) == 0 {
		return
	}
	subtle.XORBytes(b, b, b)
	runtime.KeepAlive(b)
}
