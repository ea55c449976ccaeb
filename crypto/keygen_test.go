package crypto

import (
	"crypto/sha256"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Key Generation Tests
// ============================================================================

func TestGenerateParams_RSA(t *testing.T) {
	pub, priv, err := GenerateParams(PubKeyRSA, 1024, nil, 0, nil)
	require.NoError(t, err)

	rsaPub := pub.(*RSAPublicParams)
	rsaPriv := priv.(*RSAPrivateParams)
	assert.Equal(t, uint16(1024), rsaPub.N.BitLength())
	assert.Equal(t, []byte{0x01, 0x00, 0x01}, rsaPub.E.Bytes())

	// u is the inverse of p modulo q.
	u := new(big.Int).ModInverse(rsaPriv.P.Big(), rsaPriv.Q.Big())
	assert.Equal(t, 0, u.Cmp(rsaPriv.U.Big()))
}

func TestGenerateParams_ECDH_CurveDefaults(t *testing.T) {
	tests := []struct {
		curve  *Curve
		hash   HashAlgorithm
		cipher CipherAlgorithm
	}{
		{CurveNistP256, HashSHA256, CipherAES128},
		{CurveNistP384, HashSHA384, CipherAES192},
		{CurveNistP521, HashSHA512, CipherAES256},
		{CurveSecp256k1, HashSHA256, CipherAES128},
		{Curve25519, HashSHA256, CipherAES128},
		{Curve448, HashSHA512, CipherAES256},
	}
	for _, tc := range tests {
		t.Run(tc.curve.Name, func(t *testing.T) {
			pub, priv, err := GenerateParams(PubKeyECDH, 0, tc.curve, 0, nil)
			require.NoError(t, err)

			ecPub := pub.(*ECDHPublicParams)
			assert.Equal(t, tc.curve, ecPub.Curve)
			assert.Equal(t, tc.hash, ecPub.KDF.Hash)
			assert.Equal(t, tc.cipher, ecPub.KDF.Cipher)
			assert.Len(t, ecPub.Q, tc.curve.PointSize)
			assert.Len(t, priv.(*ECScalarPrivateParams).D, tc.curve.PayloadSize)
		})
	}
}

func TestGenerateParams_EdDSA(t *testing.T) {
	for _, curve := range []*Curve{CurveEd25519, CurveEd448} {
		t.Run(curve.Name, func(t *testing.T) {
			pub, priv, err := GenerateParams(PubKeyEdDSA, 0, curve, 0, nil)
			require.NoError(t, err)

			edPub := pub.(*EdDSAPublicParams)
			assert.Len(t, edPub.Q, curve.PointSize)
			assert.Equal(t, byte(0x40), edPub.Q[0])
			assert.Len(t, priv.(*EdDSAPrivateParams).Seed, curve.PayloadSize)
		})
	}
}

func TestGenerateParams_ECDSA_WeierstrassPointEncoding(t *testing.T) {
	pub, _, err := GenerateParams(PubKeyECDSA, 0, CurveNistP256, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, byte(0x04), pub.(*ECDSAPublicParams).Q[0])
}

func TestGenerateParams_ECDSA_RejectsEdwardsCurves(t *testing.T) {
	_, _, err := GenerateParams(PubKeyECDSA, 0, CurveEd25519, 0, nil)
	assert.ErrorIs(t, err, ErrUnsupportedCurve)

	_, _, err = GenerateParams(PubKeyECDH, 0, CurveEd25519, 0, nil)
	assert.ErrorIs(t, err, ErrUnsupportedCurve)
}

func TestGenerateParams_MissingCurve(t *testing.T) {
	for _, algo := range []PublicKeyAlgorithm{PubKeyECDSA, PubKeyEdDSA, PubKeyECDH} {
		_, _, err := GenerateParams(algo, 0, nil, 0, nil)
		assert.ErrorIs(t, err, ErrMissingParameters, "algo %d", algo)
	}
}

func TestGenerateParams_HMAC(t *testing.T) {
	pub, priv, err := GenerateParams(PubKeyHMAC, 0, nil, uint8(HashSHA512), nil)
	require.NoError(t, err)

	symPub := pub.(*SymmetricPublicParams)
	symPriv := priv.(*SymmetricPrivateParams)
	assert.Equal(t, uint8(HashSHA512), symPub.Algo)
	assert.Len(t, symPriv.HashSeed, 32)
	assert.Len(t, symPriv.KeyMaterial, HashSHA512.Size())

	digest := sha256.Sum256(symPriv.HashSeed)
	assert.Equal(t, digest[:], symPub.Digest)
}

func TestGenerateParams_AEAD_KeySizes(t *testing.T) {
	tests := []struct {
		cipher  CipherAlgorithm
		keySize int
	}{
		{CipherAES128, 16},
		{CipherAES192, 24},
		{CipherAES256, 32},
		{CipherTwofish, 32},
	}
	for _, tc := range tests {
		t.Run(tc.cipher.String(), func(t *testing.T) {
			_, priv, err := GenerateParams(PubKeyAEAD, 0, nil, uint8(tc.cipher), nil)
			require.NoError(t, err)
			assert.Len(t, priv.(*SymmetricPrivateParams).KeyMaterial, tc.keySize)
		})
	}
}

func TestGenerateParams_Symmetric_UnknownAlgo(t *testing.T) {
	_, _, err := GenerateParams(PubKeyHMAC, 0, nil, 99, nil)
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)

	_, _, err = GenerateParams(PubKeyAEAD, 0, nil, 99, nil)
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}

func TestGenerateParams_LegacyAlgorithmsRejected(t *testing.T) {
	for _, algo := range []PublicKeyAlgorithm{PubKeyDSA, PubKeyElGamal, PublicKeyAlgorithm(200)} {
		_, _, err := GenerateParams(algo, 1024, nil, 0, nil)
		assert.ErrorIs(t, err, ErrUnsupportedAlgorithm, "algo %d", algo)
	}
}

func TestGenerateParams_FreshKeysDiffer(t *testing.T) {
	_, priv1, err := GenerateParams(PubKeyEdDSA, 0, CurveEd25519, 0, nil)
	require.NoError(t, err)
	_, priv2, err := GenerateParams(PubKeyEdDSA, 0, CurveEd25519, 0, nil)
	require.NoError(t, err)
	assert.NotEqual(t, priv1.(*EdDSAPrivateParams).Seed, priv2.(*EdDSAPrivateParams).Seed)
}
