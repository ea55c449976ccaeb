package crypto

import (
	"crypto/dsa" //nolint:staticcheck // wire compatibility requires classic DSA
	"crypto/subtle"
	"fmt"
	"io"
	"math/big"
)

// RSASignatureParams is an RSA signature: the value s as a single MPI.
type RSASignatureParams struct {
	S *MPI
}

func (p *RSASignatureParams) isSignatureParams() {}

func (p *RSASignatureParams) appendTo(out []byte) []byte {
	return p.S.appendTo(out)
}

// DSASignatureParams is the r/s pair shared by DSA and ECDSA signatures.
type DSASignatureParams struct {
	R *MPI
	S *MPI
}

func (p *DSASignatureParams) isSignatureParams() {}

func (p *DSASignatureParams) appendTo(out []byte) []byte {
	out = p.R.appendTo(out)
	return p.S.appendTo(out)
}

// EdDSASignatureParams is an EdDSA signature: the native R and S halves,
// each carried as an MPI.
type EdDSASignatureParams struct {
	R *MPI
	S *MPI
}

func (p *EdDSASignatureParams) isSignatureParams() {}

func (p *EdDSASignatureParams) appendTo(out []byte) []byte {
	out = p.R.appendTo(out)
	return p.S.appendTo(out)
}

// HMACSignatureParams is an HMAC authentication tag in a short byte string.
type HMACSignatureParams struct {
	MAC []byte
}

func (p *HMACSignatureParams) isSignatureParams() {}

func (p *HMACSignatureParams) appendTo(out []byte) []byte {
	return appendShortByteString(out, p.MAC)
}

// ParseSignatureParams decodes the signature material for algo.
func ParseSignatureParams(algo PublicKeyAlgorithm, data []byte) (SignatureParams, error) {
	switch algo {
	case PubKeyRSA, PubKeyRSASignOnly:
		var p RSASignatureParams
		if _, err := readMPIs(data, &p.S); err != nil {
			return nil, err
		}
		return &p, nil

	case PubKeyDSA, PubKeyECDSA:
		var p DSASignatureParams
		if _, err := readMPIs(data, &p.R, &p.S); err != nil {
			return nil, err
		}
		return &p, nil

	case PubKeyEdDSA:
		var p EdDSASignatureParams
		if _, err := readMPIs(data, &p.R, &p.S); err != nil {
			return nil, err
		}
		return &p, nil

	case PubKeyHMAC:
		_, mac, err := readShortByteString(data)
		if err != nil {
			return nil, err
		}
		return &HMACSignatureParams{MAC: mac}, nil

	default:
		return nil, fmt.Errorf("%w: public key algorithm %d", ErrUnsupportedAlgorithm, uint8(algo))
	}
}

// Sign produces a signature over an externally computed digest. For HMAC
// keys the digest is authenticated with the key's bound hash algorithm and
// hash is ignored.
func Sign(algo PublicKeyAlgorithm, hash HashAlgorithm, pub PublicParams, priv PrivateParams, digest []byte, config *Config) (SignatureParams, error) {
	if pub == nil || priv == nil {
		return nil, ErrMissingParameters
	}
	rand := config.Random()

	switch algo {
	case PubKeyRSA, PubKeyRSASignOnly:
		rsaPub, ok1 := pub.(*RSAPublicParams)
		rsaPriv, ok2 := priv.(*RSAPrivateParams)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%w: rsa params required", ErrInvalidParameters)
		}
		return rsaSign(rand, rsaPub, rsaPriv, hash, digest)

	case PubKeyDSA:
		dsaPub, ok1 := pub.(*DSAPublicParams)
		dsaPriv, ok2 := priv.(*DiscreteLogPrivateParams)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%w: dsa params required", ErrInvalidParameters)
		}
		return dsaSign(rand, dsaPub, dsaPriv, digest)

	case PubKeyECDSA:
		ecPub, ok1 := pub.(*ECDSAPublicParams)
		ecPriv, ok2 := priv.(*ECScalarPrivateParams)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%w: ecdsa params required", ErrInvalidParameters)
		}
		r, s, err := ecPub.Curve.ecdsaSign(rand, ecPriv.D, digest)
		if err != nil {
			return nil, err
		}
		return &DSASignatureParams{R: new(MPI).SetBig(r), S: new(MPI).SetBig(s)}, nil

	case PubKeyEdDSA:
		edPub, ok1 := pub.(*EdDSAPublicParams)
		edPriv, ok2 := priv.(*EdDSAPrivateParams)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%w: eddsa params required", ErrInvalidParameters)
		}
		r, s, err := edPub.Curve.eddsaSign(edPriv.Seed, digest)
		if err != nil {
			return nil, err
		}
		return &EdDSASignatureParams{R: NewMPI(r), S: NewMPI(s)}, nil

	case PubKeyHMAC:
		symPub, ok1 := pub.(*SymmetricPublicParams)
		symPriv, ok2 := priv.(*SymmetricPrivateParams)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%w: hmac params required", ErrInvalidParameters)
		}
		mac, err := Hmac(HashAlgorithm(symPub.Algo), symPriv.KeyMaterial, digest)
		if err != nil {
			return nil, err
		}
		return &HMACSignatureParams{MAC: mac}, nil

	default:
		return nil, fmt.Errorf("%w: public key algorithm %d", ErrUnsupportedAlgorithm, uint8(algo))
	}
}

// Verify checks a signature over an externally computed digest. A
// well-formed but non-matching signature yields (false, nil); a malformed
// input yields an error.
func Verify(algo PublicKeyAlgorithm, hash HashAlgorithm, pub PublicParams, priv PrivateParams, digest []byte, sig SignatureParams) (bool, error) {
	if pub == nil || sig == nil {
		return false, ErrMissingParameters
	}

	switch algo {
	case PubKeyRSA, PubKeyRSASignOnly:
		rsaPub, ok1 := pub.(*RSAPublicParams)
		rsaSig, ok2 := sig.(*RSASignatureParams)
		if !ok1 || !ok2 {
			return false, fmt.Errorf("%w: rsa params required", ErrInvalidParameters)
		}
		return rsaVerify(rsaPub, hash, digest, rsaSig)

	case PubKeyDSA:
		dsaPub, ok1 := pub.(*DSAPublicParams)
		dsaSig, ok2 := sig.(*DSASignatureParams)
		if !ok1 || !ok2 {
			return false, fmt.Errorf("%w: dsa params required", ErrInvalidParameters)
		}
		return dsaVerify(dsaPub, digest, dsaSig), nil

	case PubKeyECDSA:
		ecPub, ok1 := pub.(*ECDSAPublicParams)
		ecSig, ok2 := sig.(*DSASignatureParams)
		if !ok1 || !ok2 {
			return false, fmt.Errorf("%w: ecdsa params required", ErrInvalidParameters)
		}
		return ecPub.Curve.ecdsaVerify(ecPub.Q, digest, ecSig.R.Big(), ecSig.S.Big())

	case PubKeyEdDSA:
		edPub, ok1 := pub.(*EdDSAPublicParams)
		edSig, ok2 := sig.(*EdDSASignatureParams)
		if !ok1 || !ok2 {
			return false, fmt.Errorf("%w: eddsa params required", ErrInvalidParameters)
		}
		return edPub.Curve.eddsaVerify(edPub.Q, digest, edSig.R.Bytes(), edSig.S.Bytes())

	case PubKeyHMAC:
		symPub, ok1 := pub.(*SymmetricPublicParams)
		symPriv, ok2 := priv.(*SymmetricPrivateParams)
		macSig, ok3 := sig.(*HMACSignatureParams)
		if !ok1 || !ok2 || !ok3 {
			return false, fmt.Errorf("%w: hmac params required", ErrInvalidParameters)
		}
		mac, err := Hmac(HashAlgorithm(symPub.Algo), symPriv.KeyMaterial, digest)
		if err != nil {
			return false, err
		}
		return subtle.ConstantTimeCompare(mac, macSig.MAC) == 1, nil

	default:
		return false, fmt.Errorf("%w: public key algorithm %d", ErrUnsupportedAlgorithm, uint8(algo))
	}
}

// dsaSign signs a digest truncated to the subgroup width (FIPS 186-3,
// section 4.6).
func dsaSign(rand io.Reader, pub *DSAPublicParams, priv *DiscreteLogPrivateParams, digest []byte) (*DSASignatureParams, error) {
	key := &dsa.PrivateKey{
		PublicKey: dsa.PublicKey{
			Parameters: dsa.Parameters{P: pub.P.Big(), Q: pub.Q.Big(), G: pub.G.Big()},
			Y:          pub.Y.Big(),
		},
		X: priv.X.Big(),
	}
	r, s, err := dsa.Sign(rand, key, truncateToWidth(digest, pub.Q.Big()))
	if err != nil {
		return nil, err
	}
	return &DSASignatureParams{R: new(MPI).SetBig(r), S: new(MPI).SetBig(s)}, nil
}

func dsaVerify(pub *DSAPublicParams, digest []byte, sig *DSASignatureParams) bool {
	key := &dsa.PublicKey{
		Parameters: dsa.Parameters{P: pub.P.Big(), Q: pub.Q.Big(), G: pub.G.Big()},
		Y:          pub.Y.Big(),
	}
	return dsa.Verify(key, truncateToWidth(digest, pub.Q.Big()), sig.R.Big(), sig.S.Big())
}

func truncateToWidth(digest []byte, q *big.Int) []byte {
	width := (q.BitLen() + 7) / 8
	if len(digest) > width {
		return digest[:width]
	}
	return digest
}
