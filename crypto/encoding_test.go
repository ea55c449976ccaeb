package crypto

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// MPI Tests
// ============================================================================

func TestMPI_EncodedBytes(t *testing.T) {
	tests := []struct {
		name    string
		in      []byte
		encoded []byte
	}{
		{"single byte", []byte{0x01}, []byte{0x00, 0x01, 0x01}},
		{"full byte", []byte{0xff}, []byte{0x00, 0x08, 0xff}},
		{"rfc 4880 example 511", []byte{0x01, 0xff}, []byte{0x00, 0x09, 0x01, 0xff}},
		{"leading zeros stripped", []byte{0x00, 0x00, 0x01, 0xff}, []byte{0x00, 0x09, 0x01, 0xff}},
		{"zero value", []byte{}, []byte{0x00, 0x00}},
		{"all zero bytes", []byte{0x00, 0x00}, []byte{0x00, 0x00}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMPI(tc.in)
			assert.Equal(t, tc.encoded, m.EncodedBytes())
			assert.Equal(t, len(tc.encoded), m.EncodedLength())
		})
	}
}

func TestMPI_BitLength(t *testing.T) {
	assert.Equal(t, uint16(1), NewMPI([]byte{0x01}).BitLength())
	assert.Equal(t, uint16(8), NewMPI([]byte{0xff}).BitLength())
	assert.Equal(t, uint16(9), NewMPI([]byte{0x01, 0xff}).BitLength())
	assert.Equal(t, uint16(0), NewMPI(nil).BitLength())
}

func TestReadMPI_RoundTrip(t *testing.T) {
	m := NewMPI([]byte{0x01, 0xff})
	encoded := m.EncodedBytes()

	n, parsed, err := readMPI(encoded)
	require.NoError(t, err)
	assert.Equal(t, len(encoded), n)
	assert.True(t, m.Equal(parsed))
}

func TestReadMPI_ConsumesPrefixOnly(t *testing.T) {
	buf := append(NewMPI([]byte{0xab, 0xcd}).EncodedBytes(), 0xde, 0xad)
	n, parsed, err := readMPI(buf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte{0xab, 0xcd}, parsed.Bytes())
}

func TestReadMPI_Truncated(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
	}{
		{"empty", nil},
		{"header only", []byte{0x00}},
		{"short payload", []byte{0x00, 0x10, 0xff}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := readMPI(tc.in)
			assert.ErrorIs(t, err, ErrTruncated)
		})
	}
}

func TestReadMPI_DoesNotAliasInput(t *testing.T) {
	buf := []byte{0x00, 0x08, 0xaa}
	_, m, err := readMPI(buf)
	require.NoError(t, err)

	buf[2] = 0x55
	assert.Equal(t, []byte{0xaa}, m.Bytes())
}

func TestMPI_SetBig(t *testing.T) {
	n := new(big.Int).SetInt64(65537)
	m := new(MPI).SetBig(n)
	assert.Equal(t, uint16(17), m.BitLength())
	assert.Equal(t, []byte{0x01, 0x00, 0x01}, m.Bytes())
	assert.Equal(t, 0, n.Cmp(m.Big()))
}

// ============================================================================
// OID Tests
// ============================================================================

func TestOID_RoundTrip(t *testing.T) {
	oid := NewOID([]byte{0x2b, 0x81, 0x04, 0x00, 0x0a})
	encoded := oid.EncodedBytes()
	assert.Equal(t, []byte{0x05, 0x2b, 0x81, 0x04, 0x00, 0x0a}, encoded)

	n, parsed, err := readOID(encoded)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.True(t, oid.Equal(parsed))
}

func TestReadOID_ReservedLengths(t *testing.T) {
	_, _, err := readOID([]byte{0x00})
	assert.ErrorIs(t, err, ErrInvalidParameters)

	_, _, err = readOID(append([]byte{0xff}, make([]byte, 255)...))
	assert.ErrorIs(t, err, ErrInvalidParameters)
}

func TestReadOID_Truncated(t *testing.T) {
	_, _, err := readOID(nil)
	assert.ErrorIs(t, err, ErrTruncated)

	_, _, err = readOID([]byte{0x05, 0x2b})
	assert.ErrorIs(t, err, ErrTruncated)
}

// ============================================================================
// KDF Params Tests
// ============================================================================

func TestKDFParams_RoundTrip(t *testing.T) {
	kdf := &KDFParams{Hash: HashSHA256, Cipher: CipherAES128}
	encoded := kdf.EncodedBytes()
	assert.Equal(t, []byte{0x03, 0x01, 0x08, 0x07}, encoded)

	n, parsed, err := readKDFParams(encoded)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, kdf.Hash, parsed.Hash)
	assert.Equal(t, kdf.Cipher, parsed.Cipher)
}

func TestReadKDFParams_BadVersion(t *testing.T) {
	_, _, err := readKDFParams([]byte{0x03, 0x02, 0x08, 0x07})
	assert.ErrorIs(t, err, ErrInvalidParameters)
}

func TestReadKDFParams_Truncated(t *testing.T) {
	_, _, err := readKDFParams(nil)
	assert.ErrorIs(t, err, ErrTruncated)

	_, _, err = readKDFParams([]byte{0x03, 0x01, 0x08})
	assert.ErrorIs(t, err, ErrTruncated)
}

// ============================================================================
// Short Byte String Tests
// ============================================================================

func TestShortByteString_RoundTrip(t *testing.T) {
	payload := []byte{0xde, 0xad, 0xbe, 0xef}
	encoded := appendShortByteString(nil, payload)
	assert.Equal(t, []byte{0x04, 0xde, 0xad, 0xbe, 0xef}, encoded)

	n, parsed, err := readShortByteString(encoded)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, payload, parsed)
}

func TestReadShortByteString_Truncated(t *testing.T) {
	_, _, err := readShortByteString(nil)
	assert.ErrorIs(t, err, ErrTruncated)

	_, _, err = readShortByteString([]byte{0x04, 0xde})
	assert.ErrorIs(t, err, ErrTruncated)
}
