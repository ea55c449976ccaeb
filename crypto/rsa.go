package crypto

import (
	"crypto/rsa"
	"fmt"
	"io"
	"math/big"
)

// rsaPublicKey assembles the stdlib key from wire params. The exponent is
// range-checked because rsa.PublicKey holds it as an int.
func rsaPublicKey(pub *RSAPublicParams) (*rsa.PublicKey, error) {
	e := pub.E.Big()
	if !e.IsInt64() || e.Int64() <= 1 || e.Int64() > 1<<31-1 {
		return nil, fmt.Errorf("%w: rsa exponent out of range", ErrInvalidParameters)
	}
	return &rsa.PublicKey{N: pub.N.Big(), E: int(e.Int64())}, nil
}

func rsaPrivateKey(pub *RSAPublicParams, priv *RSAPrivateParams) (*rsa.PrivateKey, error) {
	pk, err := rsaPublicKey(pub)
	if err != nil {
		return nil, err
	}
	return &rsa.PrivateKey{
		PublicKey: *pk,
		D:         priv.D.Big(),
		Primes:    []*big.Int{priv.P.Big(), priv.Q.Big()},
	}, nil
}

// rsaEncryptSessionKey wraps data under PKCS#1 v1.5 padding.
func rsaEncryptSessionKey(rand io.Reader, pub *RSAPublicParams, data []byte) (*RSASessionKeyParams, error) {
	pk, err := rsaPublicKey(pub)
	if err != nil {
		return nil, err
	}
	c, err := rsa.EncryptPKCS1v15(rand, pk, data)
	if err != nil {
		return nil, err
	}
	return &RSASessionKeyParams{C: NewMPI(c)}, nil
}

// rsaDecryptSessionKey unwraps an encrypted session key. When
// randomPayload is non-nil the padding check is folded into a
// constant-shape session-key recovery: on a padding failure the caller
// gets randomPayload back instead of an error, so invalid and valid
// ciphertexts are indistinguishable to a timing observer.
func rsaDecryptSessionKey(pub *RSAPublicParams, priv *RSAPrivateParams, sk *RSASessionKeyParams, randomPayload []byte) ([]byte, error) {
	key, err := rsaPrivateKey(pub, priv)
	if err != nil {
		return nil, err
	}
	c := leftPad(sk.C.Bytes(), (int(pub.N.BitLength())+7)/8)
	if randomPayload != nil {
		out := make([]byte, len(randomPayload))
		copy(out, randomPayload)
		if err := rsa.DecryptPKCS1v15SessionKey(nil, key, c, out); err != nil {
			return nil, ErrDecryptionFailed
		}
		return out, nil
	}
	out, err := rsa.DecryptPKCS1v15(nil, key, c)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return out, nil
}

// rsaSign produces a PKCS#1 v1.5 signature over an externally computed
// digest.
func rsaSign(rand io.Reader, pub *RSAPublicParams, priv *RSAPrivateParams, hash HashAlgorithm, digest []byte) (*RSASignatureParams, error) {
	key, err := rsaPrivateKey(pub, priv)
	if err != nil {
		return nil, err
	}
	ch, err := hash.cryptoHash()
	if err != nil {
		return nil, err
	}
	sig, err := rsa.SignPKCS1v15(rand, key, ch, digest)
	if err != nil {
		return nil, err
	}
	return &RSASignatureParams{S: NewMPI(sig)}, nil
}

func rsaVerify(pub *RSAPublicParams, hash HashAlgorithm, digest []byte, sig *RSASignatureParams) (bool, error) {
	pk, err := rsaPublicKey(pub)
	if err != nil {
		return false, err
	}
	ch, err := hash.cryptoHash()
	if err != nil {
		return false, err
	}
	s := leftPad(sig.S.Bytes(), (int(pub.N.BitLength())+7)/8)
	return rsa.VerifyPKCS1v15(pk, ch, digest, s) == nil, nil
}

// rsaGenerateParams generates a fresh key pair with public exponent 65537.
// The private u field is the inverse of p modulo q, which is the transpose
// of the stdlib's CRT coefficient.
func rsaGenerateParams(rand io.Reader, bits int) (*RSAPublicParams, *RSAPrivateParams, error) {
	key, err := rsa.GenerateKey(rand, bits)
	if err != nil {
		return nil, nil, err
	}
	p, q := key.Primes[0], key.Primes[1]
	u := new(big.Int).ModInverse(p, q)
	pub := &RSAPublicParams{
		N: new(MPI).SetBig(key.N),
		E: new(MPI).SetBig(big.NewInt(int64(key.E))),
	}
	priv := &RSAPrivateParams{
		D: new(MPI).SetBig(key.D),
		P: new(MPI).SetBig(p),
		Q: new(MPI).SetBig(q),
		U: new(MPI).SetBig(u),
	}
	return pub, priv, nil
}

// rsaValidateParams checks that the secret material is internally
// consistent and matches the public modulus.
func rsaValidateParams(pub *RSAPublicParams, priv *RSAPrivateParams) bool {
	key, err := rsaPrivateKey(pub, priv)
	if err != nil {
		return false
	}
	if key.Validate() != nil {
		return false
	}
	u := new(big.Int).ModInverse(priv.P.Big(), priv.Q.Big())
	return u != nil && u.Cmp(priv.U.Big()) == 0
}
