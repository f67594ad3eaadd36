package encryption

import (
	"fmt"
	"math/big"

	"github.com/roasbeef/go-go-gadget-paillier"
)

// RemotePublicKey is the server-side view of the client's Paillier key,
// rebuilt from the transmitted modulus. It supports encryption-space
// operations only; no decrypt method exists on this type, so a server
// holding one structurally cannot recover plaintexts.
type RemotePublicKey struct {
	public *paillier.PublicKey
}

// RebuildPublicKey reconstructs the public key from the decimal modulus sent
// in the announcement frame. An absent or non-numeric modulus leaves the
// server with no crypto context to operate under, so callers treat the error
// as session-fatal.
func RebuildPublicKey(n string) (*RemotePublicKey, error) {
	if n == "" {
		return nil, fmt.Errorf("public key modulus is missing")
	}

	modulus, ok := new(big.Int).SetString(n, 10)
	if !ok {
		return nil, fmt.Errorf("public key modulus %q is not numeric", n)
	}
	if modulus.Sign() <= 0 {
		return nil, fmt.Errorf("public key modulus must be positive")
	}

	// g = n+1 and n^2 are derivable from the modulus alone
	return &RemotePublicKey{
		public: &paillier.PublicKey{
			N:        modulus,
			G:        new(big.Int).Add(modulus, big.NewInt(1)),
			NSquared: new(big.Int).Mul(modulus, modulus),
		},
	}, nil
}

// Modulus returns the decimal public modulus.
func (r *RemotePublicKey) Modulus() string {
	return r.public.N.String()
}

// Combine multiplies two ciphertexts in the encryption space; under the
// client's private key the result decrypts to the sum of the two plaintexts.
func (r *RemotePublicKey) Combine(a, b *big.Int) *big.Int {
	combined := paillier.AddCipher(r.public, a.Bytes(), b.Bytes())
	return new(big.Int).SetBytes(combined)
}

// Encrypt encrypts a non-negative value under the rebuilt public key.
func (r *RemotePublicKey) Encrypt(value *big.Int) (*big.Int, error) {
	if value.Sign() < 0 {
		return nil, fmt.Errorf("additive scheme supports non-negative values only, got %s", value)
	}

	ciphertext, err := paillier.Encrypt(r.public, value.Bytes())
	if err != nil {
		return nil, fmt.Errorf("additive encryption failed: %v", err)
	}
	return new(big.Int).SetBytes(ciphertext), nil
}
