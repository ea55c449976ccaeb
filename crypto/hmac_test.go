package crypto

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// ============================================================================
// Known-Answer Tests (RFC 2202 / RFC 4231)
// ============================================================================

func TestHmac_KnownVectors(t *testing.T) {
	key1 := bytes.Repeat([]byte{0x0b}, 20)
	data1 := []byte("Hi There")
	key2 := []byte("Jefe")
	data2 := []byte("what do ya want for nothing?")

	tests := []struct {
		name string
		algo HashAlgorithm
		key  []byte
		data []byte
		mac  string
	}{
		{"sha1 case 1", HashSHA1, key1, data1,
			"b617318655057264e28bc0b6fb378c8ef146be00"},
		{"sha1 case 2", HashSHA1, key2, data2,
			"effcdf6ae5eb2fa2d27416d5f184df9c259a7c79"},
		{"sha256 case 1", HashSHA256, key1, data1,
			"b0344c61d8db38535ca8afceaf0bf12b881dc200c9833da726e9376c2e32cff7"},
		{"sha256 case 2", HashSHA256, key2, data2,
			"5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843"},
		{"sha512 case 1", HashSHA512, key1, data1,
			"87aa7cdea5ef619d4ff0b4241a1d6cb02379f4e2ce4ec2787ad0b30545e17cde" +
				"daa833b7d6b8a702038b274eaea3f4e4be9d914eeb61f1702e696c203a126854"},
		{"sha512 case 2", HashSHA512, key2, data2,
			"164b7a7bfcf819e2e395fbe73b56e0a387bd64222e831fd610270cd7ea250554" +
				"9758bf75c05a994a6d034f65f8f0e6fdcaeab1a34d4a6b4b636e070a38bce737"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mac, err := Hmac(tc.algo, tc.key, tc.data)
			require.NoError(t, err)
			assert.Equal(t, mustHex(t, tc.mac), mac)
		})
	}
}

// ============================================================================
// Key Handling Tests
// ============================================================================

func TestHmac_ShortKeyZeroExtended(t *testing.T) {
	key := []byte("short key")
	data := []byte("payload")

	mac1, err := Hmac(HashSHA256, key, data)
	require.NoError(t, err)
	mac2, err := Hmac(HashSHA256, append(key, make([]byte, 16)...), data)
	require.NoError(t, err)

	assert.Equal(t, mac1, mac2)
}

func TestHmac_LongKeyTruncatedNotHashed(t *testing.T) {
	// Standard HMAC hashes keys longer than the block size down to a
	// digest before padding. Here only the leading block contributes.
	key := bytes.Repeat([]byte{0x37}, HashSHA256.BlockSize()+40)
	data := []byte("payload")

	long, err := Hmac(HashSHA256, key, data)
	require.NoError(t, err)
	truncated, err := Hmac(HashSHA256, key[:HashSHA256.BlockSize()], data)
	require.NoError(t, err)

	assert.Equal(t, truncated, long)
}

func TestHmac_DigestSizes(t *testing.T) {
	for _, algo := range []HashAlgorithm{HashSHA1, HashSHA256, HashSHA512} {
		mac, err := Hmac(algo, []byte("k"), []byte("d"))
		require.NoError(t, err)
		assert.Len(t, mac, algo.Size())
	}
}

func TestHmac_UnsupportedHash(t *testing.T) {
	for _, algo := range []HashAlgorithm{HashMD5, HashRIPEMD160, HashSHA224, HashSHA384, HashSHA3_256, HashSHA3_512, HashAlgorithm(99)} {
		_, err := Hmac(algo, []byte("k"), []byte("d"))
		assert.ErrorIs(t, err, ErrUnsupportedAlgorithm, "algo %d", algo)
	}
}
