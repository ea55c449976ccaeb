package crypto

import (
	"fmt"
)

// Params is the common surface of every parameter set the codec handles.
// Wire order is fixed per algorithm: each appendTo emits its fields in the
// exact sequence the packet format mandates, and the parse functions read
// them back in the same sequence.
type Params interface {
	appendTo(out []byte) []byte
}

// PublicParams is the algorithm-specific public key material.
type PublicParams interface {
	Params
	isPublicParams()
}

// PrivateParams is the algorithm-specific secret key material. It is owned
// by the key object holding it; Zeroize clears it when the key is retired.
type PrivateParams interface {
	Params
	isPrivateParams()
	Zeroize()
}

// SessionKeyParams is the encrypted-session-key payload produced by Encrypt
// and consumed by Decrypt.
type SessionKeyParams interface {
	Params
	isSessionKeyParams()
}

// SignatureParams is the algorithm-specific signature material produced by
// Sign and consumed by Verify.
type SignatureParams interface {
	Params
	isSignatureParams()
}

// RSAPublicParams is the RSA public material: modulus n, exponent e.
type RSAPublicParams struct {
	N *MPI
	E *MPI
}

func (p *RSAPublicParams) isPublicParams() {}

func (p *RSAPublicParams) appendTo(out []byte) []byte {
	out = p.N.appendTo(out)
	return p.E.appendTo(out)
}

// RSAPrivateParams is the RSA secret material: exponent d, primes p and q,
// and u, the multiplicative inverse of p modulo q.
type RSAPrivateParams struct {
	D *MPI
	P *MPI
	Q *MPI
	U *MPI
}

func (p *RSAPrivateParams) isPrivateParams() {}

func (p *RSAPrivateParams) appendTo(out []byte) []byte {
	out = p.D.appendTo(out)
	out = p.P.appendTo(out)
	out = p.Q.appendTo(out)
	return p.U.appendTo(out)
}

// Zeroize clears the secret material.
func (p *RSAPrivateParams) Zeroize() {
	Zeroize(p.D.bytes)
	Zeroize(p.P.bytes)
	Zeroize(p.Q.bytes)
	Zeroize(p.U.bytes)
}

// DSAPublicParams is the DSA public material: p, q, g, y.
type DSAPublicParams struct {
	P *MPI
	Q *MPI
	G *MPI
	Y *MPI
}

func (p *DSAPublicParams) isPublicParams() {}

func (p *DSAPublicParams) appendTo(out []byte) []byte {
	out = p.P.appendTo(out)
	out = p.Q.appendTo(out)
	out = p.G.appendTo(out)
	return p.Y.appendTo(out)
}

// ElGamalPublicParams is the ElGamal public material: prime p, generator g,
// public value y.
type ElGamalPublicParams struct {
	P *MPI
	G *MPI
	Y *MPI
}

func (p *ElGamalPublicParams) isPublicParams() {}

func (p *ElGamalPublicParams) appendTo(out []byte) []byte {
	out = p.P.appendTo(out)
	out = p.G.appendTo(out)
	return p.Y.appendTo(out)
}

// DiscreteLogPrivateParams is the secret exponent x shared by the DSA and
// ElGamal key shapes.
type DiscreteLogPrivateParams struct {
	X *MPI
}

func (p *DiscreteLogPrivateParams) isPrivateParams() {}

func (p *DiscreteLogPrivateParams) appendTo(out []byte) []byte {
	return p.X.appendTo(out)
}

// Zeroize clears the secret exponent.
func (p *DiscreteLogPrivateParams) Zeroize() {
	Zeroize(p.X.bytes)
}

// ECDSAPublicParams is the ECDSA public material: a curve and an
// uncompressed public point.
type ECDSAPublicParams struct {
	Curve *Curve
	Q     []byte
}

func (p *ECDSAPublicParams) isPublicParams() {}

func (p *ECDSAPublicParams) appendTo(out []byte) []byte {
	out = p.Curve.OID().appendTo(out)
	return NewMPI(p.Q).appendTo(out)
}

// EdDSAPublicParams is the EdDSA public material: a curve and a native
// 0x40-prefixed point held at the curve's fixed width.
type EdDSAPublicParams struct {
	Curve *Curve
	Q     []byte
}

func (p *EdDSAPublicParams) isPublicParams() {}

func (p *EdDSAPublicParams) appendTo(out []byte) []byte {
	out = p.Curve.OID().appendTo(out)
	return NewMPI(p.Q).appendTo(out)
}

// ECDHPublicParams is the ECDH public material: a curve, a public point,
// and the KDF pairing used for key wrapping.
type ECDHPublicParams struct {
	Curve *Curve
	Q     []byte
	KDF   *KDFParams
}

func (p *ECDHPublicParams) isPublicParams() {}

func (p *ECDHPublicParams) appendTo(out []byte) []byte {
	out = p.Curve.OID().appendTo(out)
	out = NewMPI(p.Q).appendTo(out)
	return p.KDF.appendTo(out)
}

// ECScalarPrivateParams is the secret scalar d used by ECDSA and ECDH keys,
// held left-padded to the curve's payload width.
type ECScalarPrivateParams struct {
	D []byte
}

func (p *ECScalarPrivateParams) isPrivateParams() {}

func (p *ECScalarPrivateParams) appendTo(out []byte) []byte {
	return NewMPI(p.D).appendTo(out)
}

// Zeroize clears the secret scalar.
func (p *ECScalarPrivateParams) Zeroize() {
	Zeroize(p.D)
}

// EdDSAPrivateParams is the EdDSA secret seed, held at the curve's payload
// width.
type EdDSAPrivateParams struct {
	Seed []byte
}

func (p *EdDSAPrivateParams) isPrivateParams() {}

func (p *EdDSAPrivateParams) appendTo(out []byte) []byte {
	return NewMPI(p.Seed).appendTo(out)
}

// Zeroize clears the seed.
func (p *EdDSAPrivateParams) Zeroize() {
	Zeroize(p.Seed)
}

// SymmetricPublicParams is the public half of an HMAC or AEAD key: the
// bound algorithm tag (a hash tag for HMAC keys, a cipher tag for AEAD
// keys) and the 32-octet binding digest over the private seed.
//
// Unlike the asymmetric shapes these fields are not numeric key material,
// so they serialize raw: one algorithm octet followed by the digest
// verbatim, no MPI framing.
type SymmetricPublicParams struct {
	Algo   uint8
	Digest []byte
}

func (p *SymmetricPublicParams) isPublicParams() {}

func (p *SymmetricPublicParams) appendTo(out []byte) []byte {
	out = append(out, p.Algo)
	return append(out, p.Digest...)
}

// SymmetricPrivateParams is the secret half of an HMAC or AEAD key: the
// 32-octet seed the binding digest commits to, and the raw key material.
type SymmetricPrivateParams struct {
	HashSeed    []byte
	KeyMaterial []byte
}

func (p *SymmetricPrivateParams) isPrivateParams() {}

func (p *SymmetricPrivateParams) appendTo(out []byte) []byte {
	out = append(out, p.HashSeed...)
	return append(out, p.KeyMaterial...)
}

// Zeroize clears the seed and key material.
func (p *SymmetricPrivateParams) Zeroize() {
	Zeroize(p.HashSeed)
	Zeroize(p.KeyMaterial)
}

// RSASessionKeyParams is an RSA-encrypted session key: ciphertext c.
type RSASessionKeyParams struct {
	C *MPI
}

func (p *RSASessionKeyParams) isSessionKeyParams() {}

func (p *RSASessionKeyParams) appendTo(out []byte) []byte {
	return p.C.appendTo(out)
}

// ElGamalSessionKeyParams is an ElGamal-encrypted session key: the pair
// c1, c2 in the primitive's native shape.
type ElGamalSessionKeyParams struct {
	C1 *MPI
	C2 *MPI
}

func (p *ElGamalSessionKeyParams) isSessionKeyParams() {}

func (p *ElGamalSessionKeyParams) appendTo(out []byte) []byte {
	out = p.C1.appendTo(out)
	return p.C2.appendTo(out)
}

// ECDHSessionKeyParams is an ECDH-encrypted session key: the sender's
// ephemeral point V and the wrapped key C in a short byte string.
type ECDHSessionKeyParams struct {
	V *MPI
	C []byte
}

func (p *ECDHSessionKeyParams) isSessionKeyParams() {}

func (p *ECDHSessionKeyParams) appendTo(out []byte) []byte {
	out = p.V.appendTo(out)
	return appendShortByteString(out, p.C)
}

// AEADSessionKeyParams is an AEAD-encrypted session key: the mode tag, the
// initialization vector at the mode's nonce size, and the ciphertext plus
// tag in a short byte string.
type AEADSessionKeyParams struct {
	Mode AEADMode
	IV   []byte
	C    []byte
}

func (p *AEADSessionKeyParams) isSessionKeyParams() {}

func (p *AEADSessionKeyParams) appendTo(out []byte) []byte {
	out = append(out, byte(p.Mode))
	out = append(out, p.IV...)
	return appendShortByteString(out, p.C)
}

// ParsePublicKeyParams decodes the public key material for algo from the
// front of data, returning the number of octets consumed. For curve-bearing
// algorithms the OID must resolve to a known curve; an unknown curve is a
// hard parse failure, not a soft default.
func ParsePublicKeyParams(algo PublicKeyAlgorithm, data []byte) (int, PublicParams, error) {
	switch algo {
	case PubKeyRSA, PubKeyRSAEncryptOnly, PubKeyRSASignOnly:
		var p RSAPublicParams
		n, err := readMPIs(data, &p.N, &p.E)
		if err != nil {
			return 0, nil, err
		}
		return n, &p, nil

	case PubKeyDSA:
		var p DSAPublicParams
		n, err := readMPIs(data, &p.P, &p.Q, &p.G, &p.Y)
		if err != nil {
			return 0, nil, err
		}
		return n, &p, nil

	case PubKeyElGamal:
		var p ElGamalPublicParams
		n, err := readMPIs(data, &p.P, &p.G, &p.Y)
		if err != nil {
			return 0, nil, err
		}
		return n, &p, nil

	case PubKeyECDSA:
		n, curve, err := readCurveOID(data)
		if err != nil {
			return 0, nil, err
		}
		used, q, err := readMPI(data[n:])
		if err != nil {
			return 0, nil, err
		}
		return n + used, &ECDSAPublicParams{Curve: curve, Q: q.Bytes()}, nil

	case PubKeyEdDSA:
		n, curve, err := readCurveOID(data)
		if err != nil {
			return 0, nil, err
		}
		used, q, err := readMPI(data[n:])
		if err != nil {
			return 0, nil, err
		}
		// MPI decoding strips leading zeros; the native point is fixed width.
		point := leftPad(q.Bytes(), curve.PointSize)
		return n + used, &EdDSAPublicParams{Curve: curve, Q: point}, nil

	case PubKeyECDH:
		n, curve, err := readCurveOID(data)
		if err != nil {
			return 0, nil, err
		}
		used, q, err := readMPI(data[n:])
		if err != nil {
			return 0, nil, err
		}
		n += used
		used, kdf, err := readKDFParams(data[n:])
		if err != nil {
			return 0, nil, err
		}
		return n + used, &ECDHPublicParams{Curve: curve, Q: q.Bytes(), KDF: kdf}, nil

	case PubKeyHMAC, PubKeyAEAD:
		if len(data) < 1+symmetricDigestSize {
			return 0, nil, fmt.Errorf("%w: symmetric public params", ErrTruncated)
		}
		p := &SymmetricPublicParams{
			Algo:   data[0],
			Digest: append([]byte(nil), data[1:1+symmetricDigestSize]...),
		}
		return 1 + symmetricDigestSize, p, nil

	default:
		return 0, nil, fmt.Errorf("%w: public key algorithm %d", ErrUnsupportedAlgorithm, uint8(algo))
	}
}

// ParsePrivateKeyParams decodes the secret key material for algo from the
// front of data. The already-parsed public params of the same key supply
// the curve widths and symmetric key sizes the secret fields depend on.
func ParsePrivateKeyParams(algo PublicKeyAlgorithm, data []byte, pub PublicParams) (int, PrivateParams, error) {
	switch algo {
	case PubKeyRSA, PubKeyRSAEncryptOnly, PubKeyRSASignOnly:
		var p RSAPrivateParams
		n, err := readMPIs(data, &p.D, &p.P, &p.Q, &p.U)
		if err != nil {
			return 0, nil, err
		}
		return n, &p, nil

	case PubKeyDSA, PubKeyElGamal:
		var p DiscreteLogPrivateParams
		n, err := readMPIs(data, &p.X)
		if err != nil {
			return 0, nil, err
		}
		return n, &p, nil

	case PubKeyECDSA:
		pp, ok := pub.(*ECDSAPublicParams)
		if !ok {
			return 0, nil, fmt.Errorf("%w: ecdsa public params required", ErrInvalidParameters)
		}
		n, d, err := readMPI(data)
		if err != nil {
			return 0, nil, err
		}
		return n, &ECScalarPrivateParams{D: leftPad(d.Bytes(), pp.Curve.PayloadSize)}, nil

	case PubKeyECDH:
		pp, ok := pub.(*ECDHPublicParams)
		if !ok {
			return 0, nil, fmt.Errorf("%w: ecdh public params required", ErrInvalidParameters)
		}
		n, d, err := readMPI(data)
		if err != nil {
			return 0, nil, err
		}
		return n, &ECScalarPrivateParams{D: leftPad(d.Bytes(), pp.Curve.PayloadSize)}, nil

	case PubKeyEdDSA:
		pp, ok := pub.(*EdDSAPublicParams)
		if !ok {
			return 0, nil, fmt.Errorf("%w: eddsa public params required", ErrInvalidParameters)
		}
		n, seed, err := readMPI(data)
		if err != nil {
			return 0, nil, err
		}
		return n, &EdDSAPrivateParams{Seed: leftPad(seed.Bytes(), pp.Curve.PayloadSize)}, nil

	case PubKeyHMAC, PubKeyAEAD:
		pp, ok := pub.(*SymmetricPublicParams)
		if !ok {
			return 0, nil, fmt.Errorf("%w: symmetric public params required", ErrInvalidParameters)
		}
		keySize, err := symmetricKeySize(algo, pp.Algo)
		if err != nil {
			return 0, nil, err
		}
		if len(data) < symmetricSeedSize+keySize {
			return 0, nil, fmt.Errorf("%w: symmetric private params", ErrTruncated)
		}
		p := &SymmetricPrivateParams{
			HashSeed:    append([]byte(nil), data[:symmetricSeedSize]...),
			KeyMaterial: append([]byte(nil), data[symmetricSeedSize:symmetricSeedSize+keySize]...),
		}
		return symmetricSeedSize + keySize, p, nil

	default:
		return 0, nil, fmt.Errorf("%w: public key algorithm %d", ErrUnsupportedAlgorithm, uint8(algo))
	}
}

// ParseEncSessionKeyParams decodes an encrypted-session-key payload.
func ParseEncSessionKeyParams(algo PublicKeyAlgorithm, data []byte) (SessionKeyParams, error) {
	switch algo {
	case PubKeyRSA, PubKeyRSAEncryptOnly:
		var p RSASessionKeyParams
		if _, err := readMPIs(data, &p.C); err != nil {
			return nil, err
		}
		return &p, nil

	case PubKeyElGamal:
		var p ElGamalSessionKeyParams
		if _, err := readMPIs(data, &p.C1, &p.C2); err != nil {
			return nil, err
		}
		return &p, nil

	case PubKeyECDH:
		n, v, err := readMPI(data)
		if err != nil {
			return nil, err
		}
		_, c, err := readShortByteString(data[n:])
		if err != nil {
			return nil, err
		}
		return &ECDHSessionKeyParams{V: v, C: c}, nil

	case PubKeyAEAD:
		if len(data) < 1 {
			return nil, fmt.Errorf("%w: aead mode", ErrTruncated)
		}
		mode := AEADMode(data[0])
		ivLen := mode.NonceSize()
		if ivLen == 0 {
			return nil, fmt.Errorf("%w: aead mode %d", ErrUnsupportedAlgorithm, data[0])
		}
		if len(data) < 1+ivLen {
			return nil, fmt.Errorf("%w: aead iv", ErrTruncated)
		}
		_, c, err := readShortByteString(data[1+ivLen:])
		if err != nil {
			return nil, err
		}
		p := &AEADSessionKeyParams{
			Mode: mode,
			IV:   append([]byte(nil), data[1:1+ivLen]...),
			C:    c,
		}
		return p, nil

	default:
		return nil, fmt.Errorf("%w: public key algorithm %d", ErrUnsupportedAlgorithm, uint8(algo))
	}
}

// SerializeParams encodes a parameter set to its wire form. The field
// order is fixed per algorithm and matches what the parse functions read.
func SerializeParams(algo PublicKeyAlgorithm, params Params) ([]byte, error) {
	if params == nil {
		return nil, ErrMissingParameters
	}
	if !algo.IsValid() {
		return nil, fmt.Errorf("%w: public key algorithm %d", ErrUnsupportedAlgorithm, uint8(algo))
	}
	if !paramsMatch(algo, params) {
		return nil, fmt.Errorf("%w: %T does not belong to %s", ErrInvalidParameters, params, algo)
	}
	return params.appendTo(nil), nil
}

// paramsMatch reports whether a parameter set has a shape the algorithm
// tag can own.
func paramsMatch(algo PublicKeyAlgorithm, params Params) bool {
	switch params.(type) {
	case *RSAPublicParams, *RSAPrivateParams, *RSASessionKeyParams, *RSASignatureParams:
		return algo == PubKeyRSA || algo == PubKeyRSAEncryptOnly || algo == PubKeyRSASignOnly
	case *DSAPublicParams:
		return algo == PubKeyDSA
	case *ElGamalPublicParams, *ElGamalSessionKeyParams:
		return algo == PubKeyElGamal
	case *DiscreteLogPrivateParams:
		return algo == PubKeyDSA || algo == PubKeyElGamal
	case *ECDSAPublicParams:
		return algo == PubKeyECDSA
	case *EdDSAPublicParams, *EdDSAPrivateParams, *EdDSASignatureParams:
		return algo == PubKeyEdDSA
	case *ECDHPublicParams, *ECDHSessionKeyParams:
		return algo == PubKeyECDH
	case *ECScalarPrivateParams:
		return algo == PubKeyECDSA || algo == PubKeyECDH
	case *DSASignatureParams:
		return algo == PubKeyDSA || algo == PubKeyECDSA
	case *SymmetricPublicParams, *SymmetricPrivateParams:
		return algo == PubKeyHMAC || algo == PubKeyAEAD
	case *AEADSessionKeyParams:
		return algo == PubKeyAEAD
	case *HMACSignatureParams:
		return algo == PubKeyHMAC
	default:
		return false
	}
}

// readMPIs decodes consecutive MPIs into the given slots.
func readMPIs(data []byte, slots ...**MPI) (int, error) {
	var total int
	for _, slot := range slots {
		n, m, err := readMPI(data[total:])
		if err != nil {
			return 0, err
		}
		*slot = m
		total += n
	}
	return total, nil
}

// readCurveOID decodes an OID and resolves it against the curve table.
func readCurveOID(data []byte) (int, *Curve, error) {
	n, oid, err := readOID(data)
	if err != nil {
		return 0, nil, err
	}
	curve := FindCurveByOID(oid)
	if curve == nil {
		return 0, nil, fmt.Errorf("%w: oid %x", ErrUnsupportedCurve, oid.Bytes())
	}
	return n, curve, nil
}

const (
	// symmetricSeedSize is the width of the random seed the binding
	// digest commits to.
	symmetricSeedSize = 32

	// symmetricDigestSize is the width of the binding digest (SHA-256).
	symmetricDigestSize = 32
)

// symmetricKeySize returns the key material width an HMAC or AEAD key must
// carry for its bound algorithm tag.
func symmetricKeySize(algo PublicKeyAlgorithm, id uint8) (int, error) {
	switch algo {
	case PubKeyHMAC:
		if size := HashAlgorithm(id).Size(); size != 0 {
			return size, nil
		}
		return 0, fmt.Errorf("%w: hash algorithm %d", ErrUnsupportedAlgorithm, id)
	case PubKeyAEAD:
		if size := CipherAlgorithm(id).KeySize(); size != 0 {
			return size, nil
		}
		return 0, fmt.Errorf("%w: cipher algorithm %d", ErrUnsupportedAlgorithm, id)
	default:
		return 0, fmt.Errorf("%w: public key algorithm %d", ErrUnsupportedAlgorithm, uint8(algo))
	}
}
