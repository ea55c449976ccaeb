package crypto

import (
	"fmt"
)

// GenerateParams produces a fresh key pair for algo. bits sizes RSA keys,
// curve selects the group for the elliptic algorithms, and symAlgo binds
// an HMAC key to a hash or an AEAD key to a cipher; arguments an algorithm
// does not use are ignored.
//
// DSA and ElGamal keys can be parsed and used but not generated.
func GenerateParams(algo PublicKeyAlgorithm, bits int, curve *Curve, symAlgo uint8, config *Config) (PublicParams, PrivateParams, error) {
	rand := config.Random()

	switch algo {
	case PubKeyRSA, PubKeyRSAEncryptOnly, PubKeyRSASignOnly:
		return rsaGenerateParams(rand, bits)

	case PubKeyECDSA:
		if curve == nil {
			return nil, nil, fmt.Errorf("%w: curve", ErrMissingParameters)
		}
		point, secret, err := curve.generateECDSA(rand)
		if err != nil {
			return nil, nil, err
		}
		return &ECDSAPublicParams{Curve: curve, Q: point},
			&ECScalarPrivateParams{D: secret}, nil

	case PubKeyEdDSA:
		if curve == nil {
			return nil, nil, fmt.Errorf("%w: curve", ErrMissingParameters)
		}
		point, seed, err := curve.generateEdDSA(rand)
		if err != nil {
			return nil, nil, err
		}
		return &EdDSAPublicParams{Curve: curve, Q: point},
			&EdDSAPrivateParams{Seed: seed}, nil

	case PubKeyECDH:
		if curve == nil {
			return nil, nil, fmt.Errorf("%w: curve", ErrMissingParameters)
		}
		if !curve.supportsECDH() {
			return nil, nil, fmt.Errorf("%w: %s has no ecdh form", ErrUnsupportedCurve, curve.Name)
		}
		point, secret, err := curve.generateECDH(rand)
		if err != nil {
			return nil, nil, err
		}
		pub := &ECDHPublicParams{
			Curve: curve,
			Q:     point,
			KDF:   &KDFParams{Hash: curve.KDFHash, Cipher: curve.KDFCipher},
		}
		return pub, &ECScalarPrivateParams{D: secret}, nil

	case PubKeyHMAC, PubKeyAEAD:
		return symmetricGenerateParams(rand, algo, symAlgo)

	default:
		return nil, nil, fmt.Errorf("%w: cannot generate keys for public key algorithm %d", ErrUnsupportedAlgorithm, uint8(algo))
	}
}
