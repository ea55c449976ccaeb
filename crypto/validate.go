package crypto

import (
	"bytes"
	"fmt"
	"math/big"
)

// ValidateParams checks that a secret parameter set belongs to a public
// one. A consistent pair yields (true, nil) and a mismatched pair
// (false, nil); errors are reserved for missing params, shape mismatches,
// and unsupported algorithms.
func ValidateParams(algo PublicKeyAlgorithm, pub PublicParams, priv PrivateParams) (bool, error) {
	if pub == nil || priv == nil {
		return false, ErrMissingParameters
	}

	switch algo {
	case PubKeyRSA, PubKeyRSAEncryptOnly, PubKeyRSASignOnly:
		rsaPub, ok1 := pub.(*RSAPublicParams)
		rsaPriv, ok2 := priv.(*RSAPrivateParams)
		if !ok1 || !ok2 {
			return false, fmt.Errorf("%w: rsa params required", ErrInvalidParameters)
		}
		return rsaValidateParams(rsaPub, rsaPriv), nil

	case PubKeyDSA:
		dsaPub, ok1 := pub.(*DSAPublicParams)
		dsaPriv, ok2 := priv.(*DiscreteLogPrivateParams)
		if !ok1 || !ok2 {
			return false, fmt.Errorf("%w: dsa params required", ErrInvalidParameters)
		}
		return dsaValidateParams(dsaPub, dsaPriv), nil

	case PubKeyElGamal:
		egPub, ok1 := pub.(*ElGamalPublicParams)
		egPriv, ok2 := priv.(*DiscreteLogPrivateParams)
		if !ok1 || !ok2 {
			return false, fmt.Errorf("%w: elgamal params required", ErrInvalidParameters)
		}
		return elgamalValidateParams(egPub, egPriv), nil

	case PubKeyECDSA:
		ecPub, ok1 := pub.(*ECDSAPublicParams)
		ecPriv, ok2 := priv.(*ECScalarPrivateParams)
		if !ok1 || !ok2 {
			return false, fmt.Errorf("%w: ecdsa params required", ErrInvalidParameters)
		}
		q, err := ecPub.Curve.ecdhPublic(ecPriv.D)
		if err != nil {
			return false, nil
		}
		return bytes.Equal(q, ecPub.Q), nil

	case PubKeyEdDSA:
		edPub, ok1 := pub.(*EdDSAPublicParams)
		edPriv, ok2 := priv.(*EdDSAPrivateParams)
		if !ok1 || !ok2 {
			return false, fmt.Errorf("%w: eddsa params required", ErrInvalidParameters)
		}
		q, err := edPub.Curve.eddsaPublic(edPriv.Seed)
		if err != nil {
			return false, nil
		}
		return bytes.Equal(q, edPub.Q), nil

	case PubKeyECDH:
		ecPub, ok1 := pub.(*ECDHPublicParams)
		ecPriv, ok2 := priv.(*ECScalarPrivateParams)
		if !ok1 || !ok2 {
			return false, fmt.Errorf("%w: ecdh params required", ErrInvalidParameters)
		}
		return ecdhValidateParams(ecPub, ecPriv), nil

	case PubKeyHMAC, PubKeyAEAD:
		symPub, ok1 := pub.(*SymmetricPublicParams)
		symPriv, ok2 := priv.(*SymmetricPrivateParams)
		if !ok1 || !ok2 {
			return false, fmt.Errorf("%w: symmetric params required", ErrInvalidParameters)
		}
		return symmetricValidateParams(algo, symPub, symPriv), nil

	default:
		return false, fmt.Errorf("%w: public key algorithm %d", ErrUnsupportedAlgorithm, uint8(algo))
	}
}

// dsaValidateParams checks the group relation y = g^x mod p.
func dsaValidateParams(pub *DSAPublicParams, priv *DiscreteLogPrivateParams) bool {
	p := pub.P.Big()
	if p.Sign() <= 0 {
		return false
	}
	y := new(big.Int).Exp(pub.G.Big(), priv.X.Big(), p)
	return y.Cmp(pub.Y.Big()) == 0
}
