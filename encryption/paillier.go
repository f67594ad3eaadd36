package encryption

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/roasbeef/go-go-gadget-paillier"
)

// KeyPair holds the client-side key material: the full Paillier keypair and
// the order-preserving secret key. It is generated once per client process
// and never serialized; only the public modulus leaves the process.
type KeyPair struct {
	private  *paillier.PrivateKey
	orderKey *OrderKey
}

// EncryptedValue carries the two ciphertexts of a single plaintext salary.
type EncryptedValue struct {
	Additive *big.Int
	Order    *big.Int
}

// GenerateKeyPair produces a fresh Paillier keypair of the given modulus size
// together with a fresh order-preserving key.
func GenerateKeyPair(bits int) (*KeyPair, error) {
	private, err := paillier.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Paillier keypair: %v", err)
	}

	orderKey, err := GenerateOrderKey()
	if err != nil {
		return nil, err
	}

	return &KeyPair{
		private:  private,
		orderKey: orderKey,
	}, nil
}

// PublicView returns the public modulus as a decimal string, the only key
// material that ever crosses the wire.
func (k *KeyPair) PublicView() string {
	return k.private.PublicKey.N.String()
}

// OrderKeyFingerprint identifies the order-preserving key in operator logs.
func (k *KeyPair) OrderKeyFingerprint() string {
	return k.orderKey.Fingerprint()
}

// EncryptAdditive encrypts a non-negative value under the Paillier public key.
func (k *KeyPair) EncryptAdditive(value *big.Int) (*big.Int, error) {
	if value.Sign() < 0 {
		return nil, fmt.Errorf("additive scheme supports non-negative values only, got %s", value)
	}

	ciphertext, err := paillier.Encrypt(&k.private.PublicKey, value.Bytes())
	if err != nil {
		return nil, fmt.Errorf("additive encryption failed: %v", err)
	}
	return new(big.Int).SetBytes(ciphertext), nil
}

// EncryptOrder encrypts a non-negative value under the order-preserving key.
func (k *KeyPair) EncryptOrder(value *big.Int) (*big.Int, error) {
	return k.orderKey.Encrypt(value)
}

// EncryptValue produces both ciphertexts from one plaintext, keeping the two
// components of a record tied to the same value.
func (k *KeyPair) EncryptValue(value *big.Int) (*EncryptedValue, error) {
	additive, err := k.EncryptAdditive(value)
	if err != nil {
		return nil, err
	}

	order, err := k.EncryptOrder(value)
	if err != nil {
		return nil, err
	}

	return &EncryptedValue{Additive: additive, Order: order}, nil
}

// DecryptAdditive recovers the plaintext behind a Paillier ciphertext. This
// capability exists only on KeyPair; the server holds a RemotePublicKey and
// has no decrypt path.
func (k *KeyPair) DecryptAdditive(ciphertext *big.Int) (*big.Int, error) {
	if ciphertext == nil || ciphertext.Sign() <= 0 {
		return nil, fmt.Errorf("invalid additive ciphertext")
	}

	plaintext, err := paillier.Decrypt(k.private, ciphertext.Bytes())
	if err != nil {
		return nil, fmt.Errorf("additive decryption failed: %v", err)
	}
	return new(big.Int).SetBytes(plaintext), nil
}
