package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
	"encoding/binary"
	"fmt"
	"io"
)

// anonymousSender is the fixed 20-octet label folded into the ECDH KDF
// input (RFC 6637, section 8).
var anonymousSender = []byte("Anonymous Sender    ")

// ecdhKDFParam builds the KDF parameter block: curve OID, the ECDH
// algorithm tag, the KDF pairing, the anonymous-sender label, and the
// recipient fingerprint.
func ecdhKDFParam(pub *ECDHPublicParams, fingerprint []byte) []byte {
	param := pub.Curve.OID().EncodedBytes()
	param = append(param, byte(PubKeyECDH))
	param = append(param, pub.KDF.EncodedBytes()...)
	param = append(param, anonymousSender...)
	return append(param, fingerprint...)
}

// ecdhKDF derives the key-encryption key from a shared secret:
// hash(0x00000001 || S || param), truncated to the wrapping cipher's key
// size.
func ecdhKDF(pub *ECDHPublicParams, shared, fingerprint []byte) ([]byte, error) {
	keySize := pub.KDF.Cipher.KeySize()
	if keySize == 0 {
		return nil, fmt.Errorf("%w: kdf cipher %d", ErrUnsupportedAlgorithm, uint8(pub.KDF.Cipher))
	}
	h, err := pub.KDF.Hash.New()
	if err != nil {
		return nil, err
	}
	if h.Size() < keySize {
		return nil, fmt.Errorf("%w: kdf hash shorter than cipher key", ErrInvalidParameters)
	}
	var counter [4]byte
	binary.BigEndian.PutUint32(counter[:], 1)
	h.Write(counter[:])
	h.Write(shared)
	h.Write(ecdhKDFParam(pub, fingerprint))
	return h.Sum(nil)[:keySize], nil
}

// pkcs5Pad pads to an 8-octet granularity, each padding octet holding the
// padding count. Always adds at least one octet.
func pkcs5Pad(data []byte) []byte {
	count := 8 - len(data)%8
	out := make([]byte, len(data)+count)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(count)
	}
	return out
}

func pkcs5Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 || len(data)%8 != 0 {
		return nil, ErrDecryptionFailed
	}
	count := int(data[len(data)-1])
	if count == 0 || count > 8 || count > len(data) {
		return nil, ErrDecryptionFailed
	}
	for _, b := range data[len(data)-count:] {
		if int(b) != count {
			return nil, ErrDecryptionFailed
		}
	}
	return data[:len(data)-count], nil
}

// keywrapIV is the RFC 3394 initial value.
var keywrapIV = []byte{0xa6, 0xa6, 0xa6, 0xa6, 0xa6, 0xa6, 0xa6, 0xa6}

// keywrap implements the RFC 3394 AES key wrap over a plaintext whose
// length is a non-zero multiple of 8. PKCS#5 padding always produces at
// least one block, so a single-block wrap must round-trip.
func keywrap(block cipher.Block, plain []byte) ([]byte, error) {
	if len(plain)%8 != 0 || len(plain) < 8 {
		return nil, fmt.Errorf("%w: key wrap input length %d", ErrInvalidParameters, len(plain))
	}
	n := len(plain) / 8
	r := make([]byte, len(plain))
	copy(r, plain)

	var a, b [16]byte
	copy(a[:8], keywrapIV)
	for j := 0; j < 6; j++ {
		for i := 0; i < n; i++ {
			copy(a[8:], r[i*8:i*8+8])
			block.Encrypt(b[:], a[:])
			t := uint64(n*j + i + 1)
			binary.BigEndian.PutUint64(a[:8], binary.BigEndian.Uint64(b[:8])^t)
			copy(r[i*8:], b[8:])
		}
	}
	return append(a[:8:8], r...), nil
}

// keyunwrap is the inverse of keywrap; an integrity-check mismatch is a
// decryption failure.
func keyunwrap(block cipher.Block, wrapped []byte) ([]byte, error) {
	if len(wrapped)%8 != 0 || len(wrapped) < 16 {
		return nil, ErrDecryptionFailed
	}
	n := len(wrapped)/8 - 1
	r := make([]byte, n*8)
	copy(r, wrapped[8:])

	var a, b [16]byte
	copy(a[:8], wrapped[:8])
	for j := 5; j >= 0; j-- {
		for i := n - 1; i >= 0; i-- {
			t := uint64(n*j + i + 1)
			binary.BigEndian.PutUint64(a[:8], binary.BigEndian.Uint64(a[:8])^t)
			copy(a[8:], r[i*8:i*8+8])
			block.Decrypt(b[:], a[:])
			copy(a[:8], b[:8])
			copy(r[i*8:], b[8:])
		}
	}
	if subtle.ConstantTimeCompare(a[:8], keywrapIV) != 1 {
		return nil, ErrDecryptionFailed
	}
	return r, nil
}

// ecdhEncryptSessionKey derives a KEK from a fresh ephemeral agreement
// with the recipient point and wraps the padded session key under it.
func ecdhEncryptSessionKey(rand io.Reader, pub *ECDHPublicParams, data, fingerprint []byte) (*ECDHSessionKeyParams, error) {
	ephemeral, shared, err := pub.Curve.encapsulate(rand, pub.Q)
	if err != nil {
		return nil, err
	}
	kek, err := ecdhKDF(pub, shared, fingerprint)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(kek)
	if err != nil {
		return nil, err
	}
	wrapped, err := keywrap(block, pkcs5Pad(data))
	if err != nil {
		return nil, err
	}
	return &ECDHSessionKeyParams{V: NewMPI(ephemeral), C: wrapped}, nil
}

// ecdhDecryptSessionKey recomputes the KEK from the ephemeral point and
// unwraps the session key.
func ecdhDecryptSessionKey(pub *ECDHPublicParams, priv *ECScalarPrivateParams, sk *ECDHSessionKeyParams, fingerprint []byte) ([]byte, error) {
	shared, err := pub.Curve.decapsulate(priv.D, leftPad(sk.V.Bytes(), pub.Curve.PointSize))
	if err != nil {
		return nil, err
	}
	kek, err := ecdhKDF(pub, shared, fingerprint)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(kek)
	if err != nil {
		return nil, err
	}
	padded, err := keyunwrap(block, sk.C)
	if err != nil {
		return nil, err
	}
	return pkcs5Unpad(padded)
}

// ecdhValidateParams rederives the public point from the secret scalar.
func ecdhValidateParams(pub *ECDHPublicParams, priv *ECScalarPrivateParams) bool {
	q, err := pub.Curve.ecdhPublic(priv.D)
	if err != nil {
		return false
	}
	return bytes.Equal(q, pub.Q)
}
