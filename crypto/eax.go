package crypto

import (
	"crypto/cipher"
	"fmt"

	"github.com/ProtonMail/go-crypto/eax"
)

const (
	eaxNonceSize = 16
	eaxTagSize   = 16
)

// eaxAEAD wraps the library EAX mode to pin the nonce width and fold
// open failures into the package's decryption error.
type eaxAEAD struct {
	inner cipher.AEAD
}

func newEAX(block cipher.Block) (cipher.AEAD, error) {
	if block.BlockSize() != 16 {
		return nil, fmt.Errorf("%w: eax needs a 16 octet block cipher", ErrUnsupportedAlgorithm)
	}
	inner, err := eax.NewEAX(block)
	if err != nil {
		return nil, err
	}
	return &eaxAEAD{inner: inner}, nil
}

func (e *eaxAEAD) NonceSize() int { return eaxNonceSize }
func (e *eaxAEAD) Overhead() int  { return eaxTagSize }

func (e *eaxAEAD) Seal(dst, nonce, plaintext, adata []byte) []byte {
	if len(nonce) != eaxNonceSize {
		panic("crypto: incorrect nonce length given to EAX")
	}
	return e.inner.Seal(dst, nonce, plaintext, adata)
}

func (e *eaxAEAD) Open(dst, nonce, ciphertext, adata []byte) ([]byte, error) {
	if len(nonce) != eaxNonceSize {
		panic("crypto: incorrect nonce length given to EAX")
	}
	out, err := e.inner.Open(dst, nonce, ciphertext, adata)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return out, nil
}
