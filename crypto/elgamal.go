package crypto

import (
	"io"
	"math/big"

	"golang.org/x/crypto/openpgp/elgamal"
)

func elgamalPublicKey(pub *ElGamalPublicParams) *elgamal.PublicKey {
	return &elgamal.PublicKey{
		P: pub.P.Big(),
		G: pub.G.Big(),
		Y: pub.Y.Big(),
	}
}

func elgamalEncryptSessionKey(rand io.Reader, pub *ElGamalPublicParams, data []byte) (*ElGamalSessionKeyParams, error) {
	c1, c2, err := elgamal.Encrypt(rand, elgamalPublicKey(pub), data)
	if err != nil {
		return nil, err
	}
	return &ElGamalSessionKeyParams{
		C1: new(MPI).SetBig(c1),
		C2: new(MPI).SetBig(c2),
	}, nil
}

// elgamalDecryptSessionKey unwraps an encrypted session key. With a
// non-nil randomPayload any decryption failure returns a copy of that
// payload instead of an error, mirroring the RSA session-key path.
func elgamalDecryptSessionKey(pub *ElGamalPublicParams, priv *DiscreteLogPrivateParams, sk *ElGamalSessionKeyParams, randomPayload []byte) ([]byte, error) {
	key := &elgamal.PrivateKey{
		PublicKey: *elgamalPublicKey(pub),
		X:         priv.X.Big(),
	}
	out, err := elgamal.Decrypt(key, sk.C1.Big(), sk.C2.Big())
	if err != nil {
		if randomPayload != nil {
			return append([]byte(nil), randomPayload...), nil
		}
		return nil, ErrDecryptionFailed
	}
	return out, nil
}

// elgamalValidateParams checks the group relation y = g^x mod p.
func elgamalValidateParams(pub *ElGamalPublicParams, priv *DiscreteLogPrivateParams) bool {
	p := pub.P.Big()
	if p.Sign() <= 0 {
		return false
	}
	y := new(big.Int).Exp(pub.G.Big(), priv.X.Big(), p)
	return y.Cmp(pub.Y.Big()) == 0
}
