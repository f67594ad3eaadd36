package encryption

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/sha3"
)

const (
	orderKeySize = 32

	// 64-bit plaintext domain mapped into a 128-bit ciphertext space; the
	// slack is what keeps every split below from running out of room.
	plaintextBits  = 64
	ciphertextBits = 128
)

var (
	plaintextSpace  = new(big.Int).Lsh(big.NewInt(1), plaintextBits)
	ciphertextSpace = new(big.Int).Lsh(big.NewInt(1), ciphertextBits)
)

// OrderKey is the symmetric secret of the order-preserving scheme. Like the
// Paillier private key it exists only on the client.
type OrderKey struct {
	key []byte
}

// GenerateOrderKey draws a fresh secret from the system CSPRNG.
func GenerateOrderKey() (*OrderKey, error) {
	key := make([]byte, orderKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate order-preserving key: %v", err)
	}
	return &OrderKey{key: key}, nil
}

// Encrypt maps a plaintext through a keyed binary search: the domain and
// ciphertext space are halved together, and every ciphertext-space split
// point is drawn pseudorandomly from the key. Sibling subtrees get disjoint,
// ordered ciphertext ranges, so a < b implies Encrypt(a) < Encrypt(b), and
// the walk depends only on the key and the value, so equal plaintexts
// produce equal ciphertexts. A ciphertext reveals nothing beyond order:
// inverting it means replaying the key's split points.
func (o *OrderKey) Encrypt(value *big.Int) (*big.Int, error) {
	if value.Sign() < 0 {
		return nil, fmt.Errorf("order-preserving scheme supports non-negative values only, got %s", value)
	}
	if value.BitLen() > plaintextBits {
		return nil, fmt.Errorf("value %s is outside the %d-bit plaintext domain", value, plaintextBits)
	}

	one := big.NewInt(1)
	domainLo := new(big.Int)
	domainHi := new(big.Int).Sub(plaintextSpace, one)
	rangeLo := new(big.Int)
	rangeHi := new(big.Int).Sub(ciphertextSpace, one)

	for domainLo.Cmp(domainHi) < 0 {
		// domainMid = domainLo + (domainHi-domainLo)/2
		domainMid := new(big.Int).Sub(domainHi, domainLo)
		domainMid.Rsh(domainMid, 1)
		domainMid.Add(domainMid, domainLo)

		// the split leaves each side at least as wide as the domain half
		// it has to host
		leftDomain := new(big.Int).Sub(domainMid, domainLo)
		leftDomain.Add(leftDomain, one)
		rightDomain := new(big.Int).Sub(domainHi, domainMid)

		splitMin := new(big.Int).Add(rangeLo, leftDomain)
		splitMin.Sub(splitMin, one)
		splitMax := new(big.Int).Sub(rangeHi, rightDomain)

		width := new(big.Int).Sub(splitMax, splitMin)
		width.Add(width, one)
		split := o.draw(domainLo, domainHi)
		split.Mod(split, width)
		split.Add(split, splitMin)

		if value.Cmp(domainMid) <= 0 {
			domainHi.Set(domainMid)
			rangeHi.Set(split)
		} else {
			domainLo.Add(domainMid, one)
			rangeLo.Add(split, one)
		}
	}

	width := new(big.Int).Sub(rangeHi, rangeLo)
	width.Add(width, one)
	ciphertext := o.draw(domainLo, domainHi)
	ciphertext.Mod(ciphertext, width)
	return ciphertext.Add(ciphertext, rangeLo), nil
}

// draw derives the pseudorandom coins for one domain interval. Internal
// nodes always have lo < hi and the leaf has lo == hi, so tags never
// collide across levels.
func (o *OrderKey) draw(lo, hi *big.Int) *big.Int {
	var tag [16]byte
	lo.FillBytes(tag[:8])
	hi.FillBytes(tag[8:])
	return new(big.Int).SetBytes(crypto.Keccak256(o.key, tag[:]))
}

// Fingerprint identifies the key in operator logs without revealing it.
func (o *OrderKey) Fingerprint() string {
	sum := sha3.Sum256(o.key)
	return hex.EncodeToString(sum[:8])
}
