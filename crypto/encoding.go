package crypto

import (
	"bytes"
	"fmt"
	"math/big"
	"math/bits"
)

// MPI is a multi-precision integer in the OpenPGP wire encoding: a two-octet
// big-endian bit count followed by the big-endian magnitude (RFC 4880,
// section 3.2). The stored bytes and bit count round-trip exactly.
type MPI struct {
	bytes     []byte
	bitLength uint16
}

// NewMPI returns an MPI over the minimal big-endian representation of b.
// Leading zero octets are stripped; the bit length is recomputed from the
// top octet. Complexity: O(n).
func NewMPI(b []byte) *MPI {
	for len(b) > 0 && b[0] == 0 {
		b = b[1:]
	}
	m := &MPI{bytes: append([]byte(nil), b...)}
	if len(m.bytes) > 0 {
		m.bitLength = uint16((len(m.bytes)-1)*8 + bits.Len8(m.bytes[0]))
	}
	return m
}

// SetBig sets the MPI from a big integer and returns the receiver.
func (m *MPI) SetBig(n *big.Int) *MPI {
	m.bytes = n.Bytes()
	m.bitLength = uint16(n.BitLen())
	return m
}

// Bytes returns the magnitude octets without the length prefix.
func (m *MPI) Bytes() []byte {
	return m.bytes
}

// BitLength returns the declared bit count.
func (m *MPI) BitLength() uint16 {
	return m.bitLength
}

// Big returns the MPI as a big integer.
func (m *MPI) Big() *big.Int {
	return new(big.Int).SetBytes(m.bytes)
}

// EncodedLength returns the wire size of the MPI including the prefix.
func (m *MPI) EncodedLength() int {
	return 2 + len(m.bytes)
}

// EncodedBytes returns the wire form: bit-count prefix plus magnitude.
func (m *MPI) EncodedBytes() []byte {
	return m.appendTo(make([]byte, 0, m.EncodedLength()))
}

func (m *MPI) appendTo(out []byte) []byte {
	out = append(out, byte(m.bitLength>>8), byte(m.bitLength))
	return append(out, m.bytes...)
}

// Equal reports whether two MPIs have identical wire form.
func (m *MPI) Equal(other *MPI) bool {
	return m.bitLength == other.bitLength && bytes.Equal(m.bytes, other.bytes)
}

// readMPI decodes an MPI from the front of data, returning the number of
// octets consumed. The magnitude is copied; the result never aliases data.
func readMPI(data []byte) (int, *MPI, error) {
	if len(data) < 2 {
		return 0, nil, fmt.Errorf("%w: mpi bit count", ErrTruncated)
	}
	bitLength := uint16(data[0])<<8 | uint16(data[1])
	byteLength := (int(bitLength) + 7) / 8
	if len(data) < 2+byteLength {
		return 0, nil, fmt.Errorf("%w: mpi of %d bits", ErrTruncated, bitLength)
	}
	m := &MPI{
		bytes:     append([]byte(nil), data[2:2+byteLength]...),
		bitLength: bitLength,
	}
	return 2 + byteLength, m, nil
}

// OID is a length-prefixed object identifier naming an elliptic curve
// (RFC 6637, section 11).
type OID struct {
	bytes []byte
}

// NewOID returns an OID over a copy of the identifier octets.
func NewOID(b []byte) *OID {
	return &OID{bytes: append([]byte(nil), b...)}
}

// Bytes returns the identifier octets without the length prefix.
func (o *OID) Bytes() []byte {
	return o.bytes
}

// EncodedLength returns the wire size including the length octet.
func (o *OID) EncodedLength() int {
	return 1 + len(o.bytes)
}

// EncodedBytes returns the wire form: length octet plus identifier.
func (o *OID) EncodedBytes() []byte {
	return o.appendTo(make([]byte, 0, o.EncodedLength()))
}

func (o *OID) appendTo(out []byte) []byte {
	out = append(out, byte(len(o.bytes)))
	return append(out, o.bytes...)
}

// Equal reports whether two OIDs name the same object.
func (o *OID) Equal(other *OID) bool {
	return bytes.Equal(o.bytes, other.bytes)
}

// readOID decodes an OID from the front of data. The 0x00 and 0xFF length
// octets are reserved for future extensions and rejected.
func readOID(data []byte) (int, *OID, error) {
	if len(data) < 1 {
		return 0, nil, fmt.Errorf("%w: oid length", ErrTruncated)
	}
	length := int(data[0])
	if length == 0 || length == 0xFF {
		return 0, nil, fmt.Errorf("%w: reserved oid length octet %d", ErrInvalidParameters, length)
	}
	if len(data) < 1+length {
		return 0, nil, fmt.Errorf("%w: oid of %d octets", ErrTruncated, length)
	}
	return 1 + length, NewOID(data[1 : 1+length]), nil
}

// KDFParams is the fixed-layout ECDH key-derivation block (RFC 6637,
// section 9): a length octet, the reserved version 0x01, a hash tag, and a
// symmetric cipher tag.
type KDFParams struct {
	Hash   HashAlgorithm
	Cipher CipherAlgorithm
}

const kdfVersion = 0x01

// EncodedLength returns the wire size of the block.
func (k *KDFParams) EncodedLength() int {
	return 4
}

// EncodedBytes returns the wire form of the block.
func (k *KDFParams) EncodedBytes() []byte {
	return k.appendTo(make([]byte, 0, 4))
}

func (k *KDFParams) appendTo(out []byte) []byte {
	return append(out, 3, kdfVersion, byte(k.Hash), byte(k.Cipher))
}

// readKDFParams decodes a KDF block from the front of data. Fields beyond
// the three defined ones are consumed and ignored.
func readKDFParams(data []byte) (int, *KDFParams, error) {
	if len(data) < 1 {
		return 0, nil, fmt.Errorf("%w: kdf length", ErrTruncated)
	}
	length := int(data[0])
	if length < 3 {
		return 0, nil, fmt.Errorf("%w: kdf block of %d octets", ErrInvalidParameters, length)
	}
	if len(data) < 1+length {
		return 0, nil, fmt.Errorf("%w: kdf block of %d octets", ErrTruncated, length)
	}
	if data[1] != kdfVersion {
		return 0, nil, fmt.Errorf("%w: kdf version %d", ErrInvalidParameters, data[1])
	}
	k := &KDFParams{
		Hash:   HashAlgorithm(data[2]),
		Cipher: CipherAlgorithm(data[3]),
	}
	return 1 + length, k, nil
}

// appendShortByteString appends a one-octet length prefix and the payload.
// Used for ECDH wrapped keys and AEAD ciphertext containers.
func appendShortByteString(out, b []byte) []byte {
	out = append(out, byte(len(b)))
	return append(out, b...)
}

// readShortByteString decodes a length-prefixed byte string from the front
// of data, copying the payload.
func readShortByteString(data []byte) (int, []byte, error) {
	if len(data) < 1 {
		return 0, nil, fmt.Errorf("%w: byte string length", ErrTruncated)
	}
	length := int(data[0])
	if len(data) < 1+length {
		return 0, nil, fmt.Errorf("%w: byte string of %d octets", ErrTruncated, length)
	}
	return 1 + length, append([]byte(nil), data[1:1+length]...), nil
}

// leftPad returns b left-padded with zero octets to size. MPI encoding
// strips leading zeros; fixed-width curve math needs them back.
func leftPad(b []byte, size int) []byte {
	if len(b) >= size {
		return b
	}
	padded := make([]byte, size)
	copy(padded[size-len(b):], b)
	return padded
}
