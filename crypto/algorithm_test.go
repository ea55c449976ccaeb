package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Algorithm Tag Tests
// ============================================================================

func TestPublicKeyAlgorithm_String(t *testing.T) {
	assert.Equal(t, "rsaEncryptSign", PubKeyRSA.String())
	assert.Equal(t, "elgamal", PubKeyElGamal.String())
	assert.Equal(t, "ecdh", PubKeyECDH.String())
	assert.Equal(t, "hmac", PubKeyHMAC.String())
	assert.Equal(t, "aead", PubKeyAEAD.String())
}

func TestPublicKeyAlgorithm_IsValid(t *testing.T) {
	valid := []PublicKeyAlgorithm{
		PubKeyRSA, PubKeyRSAEncryptOnly, PubKeyRSASignOnly,
		PubKeyElGamal, PubKeyDSA, PubKeyECDH, PubKeyECDSA, PubKeyEdDSA,
		PubKeyHMAC, PubKeyAEAD,
	}
	for _, algo := range valid {
		assert.True(t, algo.IsValid(), "algo %d", algo)
	}
	assert.False(t, PublicKeyAlgorithm(0).IsValid())
	assert.False(t, PublicKeyAlgorithm(99).IsValid())
	assert.False(t, PublicKeyAlgorithm(200).IsValid())
}

func TestHashAlgorithm_Sizes(t *testing.T) {
	tests := []struct {
		algo      HashAlgorithm
		size      int
		blockSize int
	}{
		{HashMD5, 16, 64},
		{HashSHA1, 20, 64},
		{HashRIPEMD160, 20, 64},
		{HashSHA256, 32, 64},
		{HashSHA384, 48, 128},
		{HashSHA512, 64, 128},
		{HashSHA224, 28, 64},
		{HashSHA3_256, 32, 136},
		{HashSHA3_512, 64, 72},
	}
	for _, tc := range tests {
		t.Run(tc.algo.String(), func(t *testing.T) {
			assert.Equal(t, tc.size, tc.algo.Size())
			assert.Equal(t, tc.blockSize, tc.algo.BlockSize())

			h, err := tc.algo.New()
			require.NoError(t, err)
			assert.Equal(t, tc.size, h.Size())
			assert.Equal(t, tc.blockSize, h.BlockSize())
		})
	}

	assert.Equal(t, 0, HashAlgorithm(99).Size())
	_, err := HashAlgorithm(99).New()
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}

func TestCipherAlgorithm_Sizes(t *testing.T) {
	tests := []struct {
		algo      CipherAlgorithm
		keySize   int
		blockSize int
	}{
		{CipherTripleDES, 24, 8},
		{CipherCAST5, 16, 8},
		{CipherBlowfish, 16, 8},
		{CipherAES128, 16, 16},
		{CipherAES192, 24, 16},
		{CipherAES256, 32, 16},
		{CipherTwofish, 32, 16},
	}
	for _, tc := range tests {
		t.Run(tc.algo.String(), func(t *testing.T) {
			assert.Equal(t, tc.keySize, tc.algo.KeySize())
			assert.Equal(t, tc.blockSize, tc.algo.BlockSize())

			block, err := tc.algo.New(make([]byte, tc.keySize))
			require.NoError(t, err)
			assert.Equal(t, tc.blockSize, block.BlockSize())
		})
	}
}

func TestCipherAlgorithm_New_WrongKeySize(t *testing.T) {
	_, err := CipherAES128.New(make([]byte, 24))
	assert.ErrorIs(t, err, ErrInvalidParameters)

	_, err = CipherAlgorithm(99).New(make([]byte, 16))
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}

func TestAEADMode_Properties(t *testing.T) {
	assert.Equal(t, 16, AEADModeEAX.NonceSize())
	assert.Equal(t, 15, AEADModeOCB.NonceSize())
	assert.Equal(t, 12, AEADModeGCM.NonceSize())
	assert.Equal(t, 0, AEADMode(9).NonceSize())

	for _, mode := range []AEADMode{AEADModeEAX, AEADModeOCB, AEADModeGCM} {
		assert.Equal(t, 16, mode.TagSize())
	}
}

func TestAEADMode_New(t *testing.T) {
	block, err := CipherAES128.New(make([]byte, 16))
	require.NoError(t, err)

	for _, mode := range []AEADMode{AEADModeEAX, AEADModeGCM} {
		aead, err := mode.New(block)
		require.NoError(t, err)
		assert.Equal(t, mode.NonceSize(), aead.NonceSize())
	}

	_, err = AEADModeOCB.New(block)
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}
