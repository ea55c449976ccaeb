package crypto

import (
	"crypto/cipher"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"io"
)

// symmetricBindingDigest commits the public half of an HMAC or AEAD key to
// its private seed.
func symmetricBindingDigest(seed []byte) []byte {
	digest := sha256.Sum256(seed)
	return digest[:]
}

// symmetricGenerateParams draws a fresh seed and key material for an HMAC
// or AEAD key. symAlgo is a hash tag for HMAC keys and a cipher tag for
// AEAD keys; it fixes the key material width.
func symmetricGenerateParams(rand io.Reader, algo PublicKeyAlgorithm, symAlgo uint8) (*SymmetricPublicParams, *SymmetricPrivateParams, error) {
	keySize, err := symmetricKeySize(algo, symAlgo)
	if err != nil {
		return nil, nil, err
	}
	seed := make([]byte, symmetricSeedSize)
	if _, err := io.ReadFull(rand, seed); err != nil {
		return nil, nil, err
	}
	key := make([]byte, keySize)
	if _, err := io.ReadFull(rand, key); err != nil {
		return nil, nil, err
	}
	pub := &SymmetricPublicParams{
		Algo:   symAlgo,
		Digest: symmetricBindingDigest(seed),
	}
	priv := &SymmetricPrivateParams{
		HashSeed:    seed,
		KeyMaterial: key,
	}
	return pub, priv, nil
}

// symmetricValidateParams checks the binding digest and the key material
// width against the bound algorithm tag.
func symmetricValidateParams(algo PublicKeyAlgorithm, pub *SymmetricPublicParams, priv *SymmetricPrivateParams) bool {
	keySize, err := symmetricKeySize(algo, pub.Algo)
	if err != nil || len(priv.KeyMaterial) != keySize {
		return false
	}
	digest := symmetricBindingDigest(priv.HashSeed)
	return subtle.ConstantTimeCompare(digest, pub.Digest) == 1
}

// aeadCipher assembles the AEAD instance an AEAD key encrypts with.
func aeadCipher(pub *SymmetricPublicParams, priv *SymmetricPrivateParams, mode AEADMode) (cipher.AEAD, error) {
	block, err := CipherAlgorithm(pub.Algo).New(priv.KeyMaterial)
	if err != nil {
		return nil, err
	}
	return mode.New(block)
}

// aeadEncryptSessionKey seals data under the key's cipher in the
// configured AEAD mode with a fresh random IV.
func aeadEncryptSessionKey(rand io.Reader, pub *SymmetricPublicParams, priv *SymmetricPrivateParams, data []byte, mode AEADMode) (*AEADSessionKeyParams, error) {
	aead, err := aeadCipher(pub, priv, mode)
	if err != nil {
		return nil, err
	}
	iv := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand, iv); err != nil {
		return nil, err
	}
	return &AEADSessionKeyParams{
		Mode: mode,
		IV:   iv,
		C:    aead.Seal(nil, iv, data, nil),
	}, nil
}

// aeadDecryptSessionKey opens an AEAD-sealed session key in the mode the
// payload names.
func aeadDecryptSessionKey(pub *SymmetricPublicParams, priv *SymmetricPrivateParams, sk *AEADSessionKeyParams) ([]byte, error) {
	aead, err := aeadCipher(pub, priv, sk.Mode)
	if err != nil {
		return nil, err
	}
	if len(sk.IV) != aead.NonceSize() {
		return nil, fmt.Errorf("%w: aead iv length %d", ErrInvalidParameters, len(sk.IV))
	}
	out, err := aead.Open(nil, sk.IV, sk.C, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return out, nil
}
