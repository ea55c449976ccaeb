package crypto

import (
	"fmt"
)

// Encrypt wraps a session key for a recipient key. The fingerprint binds
// ECDH payloads to the recipient; other algorithms ignore it.
//
// An algorithm without an encryption form returns an empty (nil, nil)
// result rather than an error, so callers iterating over mixed key sets
// can skip sign-only keys without special-casing them. Decrypt takes the
// opposite stance: there an unsupported algorithm is always an error.
func Encrypt(algo PublicKeyAlgorithm, pub PublicParams, priv PrivateParams, data, fingerprint []byte, config *Config) (SessionKeyParams, error) {
	if pub == nil {
		return nil, ErrMissingParameters
	}
	rand := config.Random()

	switch algo {
	case PubKeyRSA, PubKeyRSAEncryptOnly:
		rsaPub, ok := pub.(*RSAPublicParams)
		if !ok {
			return nil, fmt.Errorf("%w: rsa params required", ErrInvalidParameters)
		}
		return rsaEncryptSessionKey(rand, rsaPub, data)

	case PubKeyElGamal:
		egPub, ok := pub.(*ElGamalPublicParams)
		if !ok {
			return nil, fmt.Errorf("%w: elgamal params required", ErrInvalidParameters)
		}
		return elgamalEncryptSessionKey(rand, egPub, data)

	case PubKeyECDH:
		ecPub, ok := pub.(*ECDHPublicParams)
		if !ok {
			return nil, fmt.Errorf("%w: ecdh params required", ErrInvalidParameters)
		}
		return ecdhEncryptSessionKey(rand, ecPub, data, fingerprint)

	case PubKeyAEAD:
		// The key material doing the sealing is the caller's own secret.
		if priv == nil {
			return nil, ErrMissingParameters
		}
		symPub, ok1 := pub.(*SymmetricPublicParams)
		symPriv, ok2 := priv.(*SymmetricPrivateParams)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%w: aead params required", ErrInvalidParameters)
		}
		return aeadEncryptSessionKey(rand, symPub, symPriv, data, config.AEAD())

	default:
		return nil, nil
	}
}

// Decrypt unwraps an encrypted session key. For the RSA and ElGamal paths
// a non-nil randomPayload replaces the error on a padding or decryption
// failure: the caller receives a copy of randomPayload and cannot tell a
// bad ciphertext from a good one, which blunts padding-oracle probes.
func Decrypt(algo PublicKeyAlgorithm, pub PublicParams, priv PrivateParams, sk SessionKeyParams, fingerprint, randomPayload []byte) ([]byte, error) {
	if pub == nil || priv == nil || sk == nil {
		return nil, ErrMissingParameters
	}

	switch algo {
	case PubKeyRSA, PubKeyRSAEncryptOnly:
		rsaPub, ok1 := pub.(*RSAPublicParams)
		rsaPriv, ok2 := priv.(*RSAPrivateParams)
		rsaSK, ok3 := sk.(*RSASessionKeyParams)
		if !ok1 || !ok2 || !ok3 {
			return nil, fmt.Errorf("%w: rsa params required", ErrInvalidParameters)
		}
		return rsaDecryptSessionKey(rsaPub, rsaPriv, rsaSK, randomPayload)

	case PubKeyElGamal:
		egPub, ok1 := pub.(*ElGamalPublicParams)
		egPriv, ok2 := priv.(*DiscreteLogPrivateParams)
		egSK, ok3 := sk.(*ElGamalSessionKeyParams)
		if !ok1 || !ok2 || !ok3 {
			return nil, fmt.Errorf("%w: elgamal params required", ErrInvalidParameters)
		}
		return elgamalDecryptSessionKey(egPub, egPriv, egSK, randomPayload)

	case PubKeyECDH:
		ecPub, ok1 := pub.(*ECDHPublicParams)
		ecPriv, ok2 := priv.(*ECScalarPrivateParams)
		ecSK, ok3 := sk.(*ECDHSessionKeyParams)
		if !ok1 || !ok2 || !ok3 {
			return nil, fmt.Errorf("%w: ecdh params required", ErrInvalidParameters)
		}
		return ecdhDecryptSessionKey(ecPub, ecPriv, ecSK, fingerprint)

	case PubKeyAEAD:
		symPub, ok1 := pub.(*SymmetricPublicParams)
		symPriv, ok2 := priv.(*SymmetricPrivateParams)
		symSK, ok3 := sk.(*AEADSessionKeyParams)
		if !ok1 || !ok2 || !ok3 {
			return nil, fmt.Errorf("%w: aead params required", ErrInvalidParameters)
		}
		return aeadDecryptSessionKey(symPub, symPriv, symSK)

	default:
		return nil, fmt.Errorf("%w: public key algorithm %d", ErrUnsupportedAlgorithm, uint8(algo))
	}
}
