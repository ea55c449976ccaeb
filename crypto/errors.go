package crypto

import "errors"

var (
	// ErrUnsupportedAlgorithm is returned when an algorithm tag has no
	// registered handler for the requested operation.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

	// ErrUnsupportedCurve is returned when an OID does not resolve to a
	// known elliptic curve, or a known curve cannot serve the operation.
	ErrUnsupportedCurve = errors.New("unsupported elliptic curve")

	// ErrMissingParameters is returned when an operation is invoked
	// without the parameter set it requires.
	ErrMissingParameters = errors.New("missing key parameters")

	// ErrInvalidParameters is returned when a parameter set does not have
	// the shape the algorithm tag calls for.
	ErrInvalidParameters = errors.New("invalid key parameters")

	// ErrDecryptionFailed is returned when a session key cannot be
	// recovered from a ciphertext. Callers decrypting untrusted RSA or
	// ElGamal ciphertexts should supply a random payload instead of
	// branching on this error; see Decrypt.
	ErrDecryptionFailed = errors.New("session key decryption failed")

	// ErrTruncated is returned when the input ends inside a wire field.
	ErrTruncated = errors.New("truncated parameter data")
)
