// Package crypto implements the algorithm dispatch and wire-format parameter
// codec that sits between an OpenPGP packet parser and the concrete
// public-key, symmetric, and hash primitives.
package crypto

import (
	stdcrypto "crypto"
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"golang.org/x/crypto/blowfish"
	"golang.org/x/crypto/cast5"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
	"golang.org/x/crypto/twofish"
)

// PublicKeyAlgorithm is an OpenPGP public-key algorithm tag (RFC 4880,
// section 9.1). HMAC and AEAD keys use the private/experimental range.
type PublicKeyAlgorithm uint8

const (
	// PubKeyRSA is RSA (encrypt or sign).
	PubKeyRSA PublicKeyAlgorithm = 1

	// PubKeyRSAEncryptOnly is RSA encrypt-only (deprecated in RFC 4880).
	PubKeyRSAEncryptOnly PublicKeyAlgorithm = 2

	// PubKeyRSASignOnly is RSA sign-only (deprecated in RFC 4880).
	PubKeyRSASignOnly PublicKeyAlgorithm = 3

	// PubKeyElGamal is ElGamal encrypt-only.
	PubKeyElGamal PublicKeyAlgorithm = 16

	// PubKeyDSA is DSA.
	PubKeyDSA PublicKeyAlgorithm = 17

	// PubKeyECDH is elliptic-curve Diffie-Hellman per RFC 6637.
	PubKeyECDH PublicKeyAlgorithm = 18

	// PubKeyECDSA is elliptic-curve DSA per RFC 6637.
	PubKeyECDSA PublicKeyAlgorithm = 19

	// PubKeyEdDSA is legacy EdDSA (draft-koch-eddsa-for-openpgp).
	PubKeyEdDSA PublicKeyAlgorithm = 22

	// PubKeyHMAC is a symmetric HMAC key, experimental range.
	PubKeyHMAC PublicKeyAlgorithm = 100

	// PubKeyAEAD is a symmetric AEAD key, experimental range.
	PubKeyAEAD PublicKeyAlgorithm = 101
)

// String returns the lowercase algorithm name.
func (a PublicKeyAlgorithm) String() string {
	switch a {
	case PubKeyRSA:
		return "rsaEncryptSign"
	case PubKeyRSAEncryptOnly:
		return "rsaEncrypt"
	case PubKeyRSASignOnly:
		return "rsaSign"
	case PubKeyElGamal:
		return "elgamal"
	case PubKeyDSA:
		return "dsa"
	case PubKeyECDH:
		return "ecdh"
	case PubKeyECDSA:
		return "ecdsa"
	case PubKeyEdDSA:
		return "eddsa"
	case PubKeyHMAC:
		return "hmac"
	case PubKeyAEAD:
		return "aead"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(a))
	}
}

// IsValid returns true if the tag is a recognized public-key algorithm.
func (a PublicKeyAlgorithm) IsValid() bool {
	switch a {
	case PubKeyRSA, PubKeyRSAEncryptOnly, PubKeyRSASignOnly,
		PubKeyElGamal, PubKeyDSA, PubKeyECDH, PubKeyECDSA, PubKeyEdDSA,
		PubKeyHMAC, PubKeyAEAD:
		return true
	default:
		return false
	}
}

// HashAlgorithm is an OpenPGP hash algorithm tag (RFC 4880, section 9.4).
type HashAlgorithm uint8

const (
	HashMD5       HashAlgorithm = 1
	HashSHA1      HashAlgorithm = 2
	HashRIPEMD160 HashAlgorithm = 3
	HashSHA256    HashAlgorithm = 8
	HashSHA384    HashAlgorithm = 9
	HashSHA512    HashAlgorithm = 10
	HashSHA224    HashAlgorithm = 11
	HashSHA3_256  HashAlgorithm = 12
	HashSHA3_512  HashAlgorithm = 14
)

// String returns the hash name.
func (h HashAlgorithm) String() string {
	switch h {
	case HashMD5:
		return "md5"
	case HashSHA1:
		return "sha1"
	case HashRIPEMD160:
		return "ripemd160"
	case HashSHA256:
		return "sha256"
	case HashSHA384:
		return "sha384"
	case HashSHA512:
		return "sha512"
	case HashSHA224:
		return "sha224"
	case HashSHA3_256:
		return "sha3-256"
	case HashSHA3_512:
		return "sha3-512"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(h))
	}
}

// IsValid returns true if the tag is a recognized hash algorithm.
func (h HashAlgorithm) IsValid() bool {
	_, err := h.New()
	return err == nil
}

// New resolves the tag to a fresh hash instance.
// Unknown tags fail with ErrUnsupportedAlgorithm.
func (h HashAlgorithm) New() (hash.Hash, error) {
	switch h {
	case HashMD5:
		return md5.New(), nil
	case HashSHA1:
		return sha1.New(), nil
	case HashRIPEMD160:
		return ripemd160.New(), nil
	case HashSHA256:
		return sha256.New(), nil
	case HashSHA384:
		return sha512.New384(), nil
	case HashSHA512:
		return sha512.New(), nil
	case HashSHA224:
		return sha256.New224(), nil
	case HashSHA3_256:
		return sha3.New256(), nil
	case HashSHA3_512:
		return sha3.New512(), nil
	default:
		return nil, fmt.Errorf("%w: hash algorithm %d", ErrUnsupportedAlgorithm, uint8(h))
	}
}

// Size returns the digest size in bytes, or 0 for unknown tags.
func (h HashAlgorithm) Size() int {
	switch h {
	case HashMD5:
		return md5.Size
	case HashSHA1:
		return sha1.Size
	case HashRIPEMD160:
		return ripemd160.Size
	case HashSHA256:
		return sha256.Size
	case HashSHA384:
		return sha512.Size384
	case HashSHA512:
		return sha512.Size
	case HashSHA224:
		return sha256.Size224
	case HashSHA3_256:
		return 32
	case HashSHA3_512:
		return 64
	default:
		return 0
	}
}

// BlockSize returns the compression-function block size in bytes,
// or 0 for unknown tags.
func (h HashAlgorithm) BlockSize() int {
	switch h {
	case HashMD5, HashSHA1, HashRIPEMD160, HashSHA256, HashSHA224:
		return 64
	case HashSHA384, HashSHA512:
		return 128
	case HashSHA3_256:
		return 136
	case HashSHA3_512:
		return 72
	default:
		return 0
	}
}

// cryptoHash maps the tag onto the standard library hash registry. The
// x/crypto imports above register the ripemd160 and sha3 entries.
func (h HashAlgorithm) cryptoHash() (stdcrypto.Hash, error) {
	switch h {
	case HashMD5:
		return stdcrypto.MD5, nil
	case HashSHA1:
		return stdcrypto.SHA1, nil
	case HashRIPEMD160:
		return stdcrypto.RIPEMD160, nil
	case HashSHA256:
		return stdcrypto.SHA256, nil
	case HashSHA384:
		return stdcrypto.SHA384, nil
	case HashSHA512:
		return stdcrypto.SHA512, nil
	case HashSHA224:
		return stdcrypto.SHA224, nil
	case HashSHA3_256:
		return stdcrypto.SHA3_256, nil
	case HashSHA3_512:
		return stdcrypto.SHA3_512, nil
	default:
		return 0, fmt.Errorf("%w: hash algorithm %d", ErrUnsupportedAlgorithm, uint8(h))
	}
}

// CipherAlgorithm is an OpenPGP symmetric cipher tag (RFC 4880, section 9.2).
type CipherAlgorithm uint8

const (
	CipherTripleDES CipherAlgorithm = 2
	CipherCAST5     CipherAlgorithm = 3
	CipherBlowfish  CipherAlgorithm = 4
	CipherAES128    CipherAlgorithm = 7
	CipherAES192    CipherAlgorithm = 8
	CipherAES256    CipherAlgorithm = 9
	CipherTwofish   CipherAlgorithm = 10
)

// String returns the cipher name.
func (c CipherAlgorithm) String() string {
	switch c {
	case CipherTripleDES:
		return "tripledes"
	case CipherCAST5:
		return "cast5"
	case CipherBlowfish:
		return "blowfish"
	case CipherAES128:
		return "aes128"
	case CipherAES192:
		return "aes192"
	case CipherAES256:
		return "aes256"
	case CipherTwofish:
		return "twofish"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// IsValid returns true if the tag is a recognized symmetric cipher.
func (c CipherAlgorithm) IsValid() bool {
	return c.KeySize() != 0
}

// KeySize returns the cipher key size in bytes, or 0 for unknown tags.
func (c CipherAlgorithm) KeySize() int {
	switch c {
	case CipherTripleDES:
		return 24
	case CipherCAST5:
		return 16
	case CipherBlowfish:
		return 16
	case CipherAES128:
		return 16
	case CipherAES192:
		return 24
	case CipherAES256:
		return 32
	case CipherTwofish:
		return 32
	default:
		return 0
	}
}

// BlockSize returns the cipher block size in bytes, or 0 for unknown tags.
func (c CipherAlgorithm) BlockSize() int {
	switch c {
	case CipherTripleDES, CipherCAST5, CipherBlowfish:
		return 8
	case CipherAES128, CipherAES192, CipherAES256, CipherTwofish:
		return 16
	default:
		return 0
	}
}

// New resolves the tag to a block cipher keyed with key.
// Unknown tags fail with ErrUnsupportedAlgorithm; a key of the wrong
// length for a known cipher fails with the primitive's own error.
func (c CipherAlgorithm) New(key []byte) (cipher.Block, error) {
	switch c {
	case CipherTripleDES:
		return des.NewTripleDESCipher(key)
	case CipherCAST5:
		return cast5.NewCipher(key)
	case CipherBlowfish:
		return blowfish.NewCipher(key)
	case CipherAES128, CipherAES192, CipherAES256:
		if len(key) != c.KeySize() {
			return nil, fmt.Errorf("%w: aes key size %d, want %d", ErrInvalidParameters, len(key), c.KeySize())
		}
		return aes.NewCipher(key)
	case CipherTwofish:
		return twofish.NewCipher(key)
	default:
		return nil, fmt.Errorf("%w: cipher algorithm %d", ErrUnsupportedAlgorithm, uint8(c))
	}
}

// AEADMode is an OpenPGP AEAD algorithm tag (RFC 9580, section 9.6).
type AEADMode uint8

const (
	AEADModeEAX AEADMode = 1
	AEADModeOCB AEADMode = 2
	AEADModeGCM AEADMode = 3
)

// String returns the mode name.
func (m AEADMode) String() string {
	switch m {
	case AEADModeEAX:
		return "eax"
	case AEADModeOCB:
		return "ocb"
	case AEADModeGCM:
		return "gcm"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(m))
	}
}

// NonceSize returns the nonce size the mode mandates, or 0 for unknown tags.
func (m AEADMode) NonceSize() int {
	switch m {
	case AEADModeEAX:
		return 16
	case AEADModeOCB:
		return 15
	case AEADModeGCM:
		return 12
	default:
		return 0
	}
}

// TagSize returns the authentication tag size, or 0 for unknown tags.
func (m AEADMode) TagSize() int {
	switch m {
	case AEADModeEAX, AEADModeOCB, AEADModeGCM:
		return 16
	default:
		return 0
	}
}

// New resolves the tag to an AEAD instance over the given block cipher.
// OCB is a recognized tag but has no binding; it fails like an unknown
// tag does, synchronously rather than at the point of use.
func (m AEADMode) New(block cipher.Block) (cipher.AEAD, error) {
	switch m {
	case AEADModeEAX:
		return newEAX(block)
	case AEADModeGCM:
		return cipher.NewGCM(block)
	default:
		return nil, fmt.Errorf("%w: aead mode %d", ErrUnsupportedAlgorithm, uint8(m))
	}
}
