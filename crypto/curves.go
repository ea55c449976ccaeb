package crypto

import (
	"bytes"
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"fmt"
	"io"
	"math/big"

	"github.com/cloudflare/circl/dh/x448"
	circled448 "github.com/cloudflare/circl/sign/ed448"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secp256k1ecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"golang.org/x/crypto/curve25519"
)

type curveKind uint8

const (
	kindECDSA curveKind = 1 << iota
	kindEdDSA
	kindECDH
)

// Curve describes a named elliptic curve: its wire OID, the fixed widths of
// its scalars and encoded points, and the default KDF pairing used when
// generating ECDH keys on it.
type Curve struct {
	Name string

	// PayloadSize is the scalar (or EdDSA seed) width in octets.
	PayloadSize int

	// PointSize is the encoded public point width in octets, including
	// the 0x40 native-point or 0x04 uncompressed prefix.
	PointSize int

	// KDFHash and KDFCipher are the curve's default RFC 6637 pairing.
	KDFHash   HashAlgorithm
	KDFCipher CipherAlgorithm

	oid  []byte
	kind curveKind
}

var (
	CurveNistP256 = &Curve{
		Name:        "p256",
		PayloadSize: 32,
		PointSize:   65,
		KDFHash:     HashSHA256,
		KDFCipher:   CipherAES128,
		oid:         []byte{0x2A, 0x86, 0x48, 0xCE, 0x3D, 0x03, 0x01, 0x07},
		kind:        kindECDSA | kindECDH,
	}

	CurveNistP384 = &Curve{
		Name:        "p384",
		PayloadSize: 48,
		PointSize:   97,
		KDFHash:     HashSHA384,
		KDFCipher:   CipherAES192,
		oid:         []byte{0x2B, 0x81, 0x04, 0x00, 0x22},
		kind:        kindECDSA | kindECDH,
	}

	CurveNistP521 = &Curve{
		Name:        "p521",
		PayloadSize: 66,
		PointSize:   133,
		KDFHash:     HashSHA512,
		KDFCipher:   CipherAES256,
		oid:         []byte{0x2B, 0x81, 0x04, 0x00, 0x23},
		kind:        kindECDSA | kindECDH,
	}

	CurveSecp256k1 = &Curve{
		Name:        "secp256k1",
		PayloadSize: 32,
		PointSize:   65,
		KDFHash:     HashSHA256,
		KDFCipher:   CipherAES128,
		oid:         []byte{0x2B, 0x81, 0x04, 0x00, 0x0A},
		kind:        kindECDSA | kindECDH,
	}

	// Curve25519 is the legacy ECDH-only X25519 curve.
	Curve25519 = &Curve{
		Name:        "curve25519",
		PayloadSize: 32,
		PointSize:   33,
		KDFHash:     HashSHA256,
		KDFCipher:   CipherAES128,
		oid:         []byte{0x2B, 0x06, 0x01, 0x04, 0x01, 0x97, 0x55, 0x01, 0x05, 0x01},
		kind:        kindECDH,
	}

	// CurveEd25519 is the legacy EdDSA-only Ed25519 curve.
	CurveEd25519 = &Curve{
		Name:        "ed25519",
		PayloadSize: 32,
		PointSize:   33,
		KDFHash:     HashSHA256,
		KDFCipher:   CipherAES128,
		oid:         []byte{0x2B, 0x06, 0x01, 0x04, 0x01, 0xDA, 0x47, 0x0F, 0x01},
		kind:        kindEdDSA,
	}

	Curve448 = &Curve{
		Name:        "curve448",
		PayloadSize: 56,
		PointSize:   57,
		KDFHash:     HashSHA512,
		KDFCipher:   CipherAES256,
		oid:         []byte{0x2B, 0x65, 0x6F},
		kind:        kindECDH,
	}

	CurveEd448 = &Curve{
		Name:        "ed448",
		PayloadSize: 57,
		PointSize:   58,
		KDFHash:     HashSHA512,
		KDFCipher:   CipherAES256,
		oid:         []byte{0x2B, 0x65, 0x71},
		kind:        kindEdDSA,
	}
)

var curves = []*Curve{
	CurveNistP256, CurveNistP384, CurveNistP521, CurveSecp256k1,
	Curve25519, CurveEd25519, Curve448, CurveEd448,
}

// OID returns the curve's wire object identifier.
func (c *Curve) OID() *OID {
	return NewOID(c.oid)
}

func (c *Curve) supportsECDSA() bool { return c.kind&kindECDSA != 0 }
func (c *Curve) supportsEdDSA() bool { return c.kind&kindEdDSA != 0 }
func (c *Curve) supportsECDH() bool {
	return c.kind&(kindECDH|kindECDSA) != 0
}

// FindCurveByOID resolves an object identifier to a known curve, or nil.
func FindCurveByOID(oid *OID) *Curve {
	for _, c := range curves {
		if bytes.Equal(c.oid, oid.Bytes()) {
			return c
		}
	}
	return nil
}

// FindCurveByName resolves a curve name to a known curve, or nil.
func FindCurveByName(name string) *Curve {
	for _, c := range curves {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// nistECDH maps a Weierstrass curve to its crypto/ecdh implementation.
func (c *Curve) nistECDH() ecdh.Curve {
	switch c {
	case CurveNistP256:
		return ecdh.P256()
	case CurveNistP384:
		return ecdh.P384()
	case CurveNistP521:
		return ecdh.P521()
	default:
		return nil
	}
}

// nistElliptic maps a Weierstrass curve to its crypto/elliptic form, used
// by the ECDSA primitive.
func (c *Curve) nistElliptic() elliptic.Curve {
	switch c {
	case CurveNistP256:
		return elliptic.P256()
	case CurveNistP384:
		return elliptic.P384()
	case CurveNistP521:
		return elliptic.P521()
	default:
		return nil
	}
}

// reversed returns a byte-reversed copy. Curve25519 secrets travel
// big-endian on the wire but the primitive wants little-endian.
func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// generateECDH produces a fresh keypair on the curve: the encoded public
// point and the wire-format secret scalar.
func (c *Curve) generateECDH(rand io.Reader) (point, secret []byte, err error) {
	switch c {
	case Curve25519:
		scalar := make([]byte, curve25519.ScalarSize)
		if _, err := io.ReadFull(rand, scalar); err != nil {
			return nil, nil, err
		}
		// Clamp per RFC 7748 so the stored scalar is canonical.
		scalar[0] &= 248
		scalar[31] = (scalar[31] & 127) | 64
		pub, err := curve25519.X25519(scalar, curve25519.Basepoint)
		if err != nil {
			return nil, nil, err
		}
		return append([]byte{0x40}, pub...), reversed(scalar), nil

	case Curve448:
		var sec, pub x448.Key
		if _, err := io.ReadFull(rand, sec[:]); err != nil {
			return nil, nil, err
		}
		x448.KeyGen(&pub, &sec)
		return append([]byte{0x40}, pub[:]...), append([]byte(nil), sec[:]...), nil

	case CurveSecp256k1:
		priv, err := secp256k1.GeneratePrivateKeyFromRand(rand)
		if err != nil {
			return nil, nil, err
		}
		return priv.PubKey().SerializeUncompressed(), priv.Serialize(), nil

	default:
		ec := c.nistECDH()
		if ec == nil {
			return nil, nil, fmt.Errorf("%w: %s has no ecdh form", ErrUnsupportedCurve, c.Name)
		}
		priv, err := ec.GenerateKey(rand)
		if err != nil {
			return nil, nil, err
		}
		return priv.PublicKey().Bytes(), priv.Bytes(), nil
	}
}

// ecdhPublic recomputes the encoded public point for a wire-format secret.
func (c *Curve) ecdhPublic(secret []byte) ([]byte, error) {
	switch c {
	case Curve25519:
		pub, err := curve25519.X25519(reversed(secret), curve25519.Basepoint)
		if err != nil {
			return nil, err
		}
		return append([]byte{0x40}, pub...), nil

	case Curve448:
		var sec, pub x448.Key
		if len(secret) != x448.Size {
			return nil, fmt.Errorf("crypto: bad curve448 secret size %d", len(secret))
		}
		copy(sec[:], secret)
		x448.KeyGen(&pub, &sec)
		return append([]byte{0x40}, pub[:]...), nil

	case CurveSecp256k1:
		return secp256k1.PrivKeyFromBytes(secret).PubKey().SerializeUncompressed(), nil

	default:
		ec := c.nistECDH()
		if ec == nil {
			return nil, fmt.Errorf("%w: %s has no ecdh form", ErrUnsupportedCurve, c.Name)
		}
		priv, err := ec.NewPrivateKey(secret)
		if err != nil {
			return nil, err
		}
		return priv.PublicKey().Bytes(), nil
	}
}

// encapsulate generates an ephemeral keypair against the peer's encoded
// point and returns the encoded ephemeral point plus the shared secret
// (the x coordinate for Weierstrass curves, the raw output for Montgomery).
func (c *Curve) encapsulate(rand io.Reader, peer []byte) (ephemeral, shared []byte, err error) {
	switch c {
	case Curve25519:
		if len(peer) != c.PointSize || peer[0] != 0x40 {
			return nil, nil, fmt.Errorf("crypto: malformed curve25519 point")
		}
		scalar := make([]byte, curve25519.ScalarSize)
		if _, err := io.ReadFull(rand, scalar); err != nil {
			return nil, nil, err
		}
		pub, err := curve25519.X25519(scalar, curve25519.Basepoint)
		if err != nil {
			return nil, nil, err
		}
		shared, err := curve25519.X25519(scalar, peer[1:])
		if err != nil {
			return nil, nil, err
		}
		return append([]byte{0x40}, pub...), shared, nil

	case Curve448:
		if len(peer) != c.PointSize || peer[0] != 0x40 {
			return nil, nil, fmt.Errorf("crypto: malformed curve448 point")
		}
		var sec, pub, peerKey, ss x448.Key
		if _, err := io.ReadFull(rand, sec[:]); err != nil {
			return nil, nil, err
		}
		x448.KeyGen(&pub, &sec)
		copy(peerKey[:], peer[1:])
		if !x448.Shared(&ss, &sec, &peerKey) {
			return nil, nil, fmt.Errorf("crypto: low order curve448 point")
		}
		return append([]byte{0x40}, pub[:]...), ss[:], nil

	case CurveSecp256k1:
		peerKey, err := secp256k1.ParsePubKey(peer)
		if err != nil {
			return nil, nil, fmt.Errorf("crypto: malformed secp256k1 point: %w", err)
		}
		eph, err := secp256k1.GeneratePrivateKeyFromRand(rand)
		if err != nil {
			return nil, nil, err
		}
		return eph.PubKey().SerializeUncompressed(), secp256k1.GenerateSharedSecret(eph, peerKey), nil

	default:
		ec := c.nistECDH()
		if ec == nil {
			return nil, nil, fmt.Errorf("%w: %s has no ecdh form", ErrUnsupportedCurve, c.Name)
		}
		peerKey, err := ec.NewPublicKey(peer)
		if err != nil {
			return nil, nil, fmt.Errorf("crypto: malformed %s point: %w", c.Name, err)
		}
		eph, err := ec.GenerateKey(rand)
		if err != nil {
			return nil, nil, err
		}
		shared, err := eph.ECDH(peerKey)
		if err != nil {
			return nil, nil, err
		}
		return eph.PublicKey().Bytes(), shared, nil
	}
}

// decapsulate recovers the shared secret from our wire-format secret and
// the sender's encoded ephemeral point.
func (c *Curve) decapsulate(secret, ephemeral []byte) ([]byte, error) {
	switch c {
	case Curve25519:
		if len(ephemeral) != c.PointSize || ephemeral[0] != 0x40 {
			return nil, fmt.Errorf("crypto: malformed curve25519 point")
		}
		return curve25519.X25519(reversed(secret), ephemeral[1:])

	case Curve448:
		if len(ephemeral) != c.PointSize || ephemeral[0] != 0x40 {
			return nil, fmt.Errorf("crypto: malformed curve448 point")
		}
		var sec, peer, ss x448.Key
		if len(secret) != x448.Size {
			return nil, fmt.Errorf("crypto: bad curve448 secret size %d", len(secret))
		}
		copy(sec[:], secret)
		copy(peer[:], ephemeral[1:])
		if !x448.Shared(&ss, &sec, &peer) {
			return nil, fmt.Errorf("crypto: low order curve448 point")
		}
		return ss[:], nil

	case CurveSecp256k1:
		peer, err := secp256k1.ParsePubKey(ephemeral)
		if err != nil {
			return nil, fmt.Errorf("crypto: malformed secp256k1 point: %w", err)
		}
		return secp256k1.GenerateSharedSecret(secp256k1.PrivKeyFromBytes(secret), peer), nil

	default:
		ec := c.nistECDH()
		if ec == nil {
			return nil, fmt.Errorf("%w: %s has no ecdh form", ErrUnsupportedCurve, c.Name)
		}
		priv, err := ec.NewPrivateKey(secret)
		if err != nil {
			return nil, err
		}
		peer, err := ec.NewPublicKey(ephemeral)
		if err != nil {
			return nil, fmt.Errorf("crypto: malformed %s point: %w", c.Name, err)
		}
		return priv.ECDH(peer)
	}
}

// generateEdDSA produces a fresh EdDSA keypair: the 0x40-prefixed native
// point and the seed.
func (c *Curve) generateEdDSA(rand io.Reader) (point, seed []byte, err error) {
	switch c {
	case CurveEd25519:
		seed := make([]byte, ed25519.SeedSize)
		if _, err := io.ReadFull(rand, seed); err != nil {
			return nil, nil, err
		}
		pub := ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey)
		return append([]byte{0x40}, pub...), seed, nil

	case CurveEd448:
		seed := make([]byte, circled448.SeedSize)
		if _, err := io.ReadFull(rand, seed); err != nil {
			return nil, nil, err
		}
		pub := circled448.NewKeyFromSeed(seed).Public().(circled448.PublicKey)
		return append([]byte{0x40}, pub...), seed, nil

	default:
		return nil, nil, fmt.Errorf("%w: %s has no eddsa form", ErrUnsupportedCurve, c.Name)
	}
}

// eddsaPublic recomputes the encoded public point for a seed.
func (c *Curve) eddsaPublic(seed []byte) ([]byte, error) {
	switch c {
	case CurveEd25519:
		if len(seed) != ed25519.SeedSize {
			return nil, fmt.Errorf("crypto: bad ed25519 seed size %d", len(seed))
		}
		pub := ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey)
		return append([]byte{0x40}, pub...), nil

	case CurveEd448:
		if len(seed) != circled448.SeedSize {
			return nil, fmt.Errorf("crypto: bad ed448 seed size %d", len(seed))
		}
		pub := circled448.NewKeyFromSeed(seed).Public().(circled448.PublicKey)
		return append([]byte{0x40}, pub...), nil

	default:
		return nil, fmt.Errorf("%w: %s has no eddsa form", ErrUnsupportedCurve, c.Name)
	}
}

// eddsaSign signs a digest, returning the R and S halves at the curve's
// fixed width.
func (c *Curve) eddsaSign(seed, digest []byte) (r, s []byte, err error) {
	switch c {
	case CurveEd25519:
		if len(seed) != ed25519.SeedSize {
			return nil, nil, fmt.Errorf("crypto: bad ed25519 seed size %d", len(seed))
		}
		sig := ed25519.Sign(ed25519.NewKeyFromSeed(seed), digest)
		return sig[:32], sig[32:], nil

	case CurveEd448:
		if len(seed) != circled448.SeedSize {
			return nil, nil, fmt.Errorf("crypto: bad ed448 seed size %d", len(seed))
		}
		sig := circled448.Sign(circled448.NewKeyFromSeed(seed), digest, "")
		return sig[:57], sig[57:], nil

	default:
		return nil, nil, fmt.Errorf("%w: %s has no eddsa form", ErrUnsupportedCurve, c.Name)
	}
}

// eddsaVerify checks an R/S pair against a 0x40-prefixed point. The halves
// are re-padded to the curve width before verification.
func (c *Curve) eddsaVerify(point, digest, r, s []byte) (bool, error) {
	if len(point) != c.PointSize || point[0] != 0x40 {
		return false, fmt.Errorf("crypto: malformed %s point", c.Name)
	}
	switch c {
	case CurveEd25519:
		sig := append(leftPad(r, 32), leftPad(s, 32)...)
		return ed25519.Verify(ed25519.PublicKey(point[1:]), digest, sig), nil

	case CurveEd448:
		sig := append(leftPad(r, 57), leftPad(s, 57)...)
		return circled448.Verify(circled448.PublicKey(point[1:]), digest, sig, ""), nil

	default:
		return false, fmt.Errorf("%w: %s has no eddsa form", ErrUnsupportedCurve, c.Name)
	}
}

// generateECDSA produces a fresh signing keypair: the uncompressed point
// and the wire-format scalar.
func (c *Curve) generateECDSA(rand io.Reader) (point, secret []byte, err error) {
	if !c.supportsECDSA() {
		return nil, nil, fmt.Errorf("%w: %s has no ecdsa form", ErrUnsupportedCurve, c.Name)
	}
	// Weierstrass scalars are valid for both signing and ECDH.
	return c.generateECDH(rand)
}

// ecdsaSign signs a digest with a wire-format scalar, returning r and s.
func (c *Curve) ecdsaSign(rand io.Reader, secret, digest []byte) (r, s *big.Int, err error) {
	switch c {
	case CurveSecp256k1:
		sig := secp256k1ecdsa.Sign(secp256k1.PrivKeyFromBytes(secret), digest)
		sigR := sig.R()
		sigS := sig.S()
		rBytes := sigR.Bytes()
		sBytes := sigS.Bytes()
		return new(big.Int).SetBytes(rBytes[:]), new(big.Int).SetBytes(sBytes[:]), nil

	default:
		ec := c.nistElliptic()
		if ec == nil {
			return nil, nil, fmt.Errorf("%w: %s has no ecdsa form", ErrUnsupportedCurve, c.Name)
		}
		d := new(big.Int).SetBytes(secret)
		x, y := ec.ScalarBaseMult(secret)
		priv := &ecdsa.PrivateKey{
			PublicKey: ecdsa.PublicKey{Curve: ec, X: x, Y: y},
			D:         d,
		}
		return ecdsa.Sign(rand, priv, digest)
	}
}

// ecdsaVerify checks an r/s pair against an uncompressed point.
func (c *Curve) ecdsaVerify(point, digest []byte, r, s *big.Int) (bool, error) {
	switch c {
	case CurveSecp256k1:
		pub, err := secp256k1.ParsePubKey(point)
		if err != nil {
			return false, fmt.Errorf("crypto: malformed secp256k1 point: %w", err)
		}
		var rs, ss secp256k1.ModNScalar
		if overflow := rs.SetByteSlice(leftPad(r.Bytes(), 32)); overflow {
			return false, nil
		}
		if overflow := ss.SetByteSlice(leftPad(s.Bytes(), 32)); overflow {
			return false, nil
		}
		return secp256k1ecdsa.NewSignature(&rs, &ss).Verify(digest, pub), nil

	default:
		ec := c.nistElliptic()
		if ec == nil {
			return false, fmt.Errorf("%w: %s has no ecdsa form", ErrUnsupportedCurve, c.Name)
		}
		x, y := elliptic.Unmarshal(ec, point)
		if x == nil {
			return false, fmt.Errorf("crypto: malformed %s point", c.Name)
		}
		pub := &ecdsa.PublicKey{Curve: ec, X: x, Y: y}
		return ecdsa.Verify(pub, digest, r, s), nil
	}
}
