package encryption

import (
	"math/big"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderPreservation(t *testing.T) {
	key, err := GenerateOrderKey()
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	values := []int64{0, 1, 2, 5000, 7000}
	for i := 0; i < 50; i++ {
		values = append(values, rng.Int63())
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	var previous *big.Int
	var previousValue int64
	for _, value := range values {
		ciphertext, err := key.Encrypt(big.NewInt(value))
		require.NoError(t, err)

		if previous != nil && value != previousValue {
			require.Equal(t, -1, previous.Cmp(ciphertext),
				"order broken between %d and %d", previousValue, value)
		}
		previous = ciphertext
		previousValue = value
	}
}

func TestOrderEncryptDeterministic(t *testing.T) {
	key, err := GenerateOrderKey()
	require.NoError(t, err)

	first, err := key.Encrypt(big.NewInt(5000))
	require.NoError(t, err)
	second, err := key.Encrypt(big.NewInt(5000))
	require.NoError(t, err)
	require.Zero(t, first.Cmp(second))
}

func TestOrderCiphertextHidesPlaintext(t *testing.T) {
	key, err := GenerateOrderKey()
	require.NoError(t, err)

	ciphertext, err := key.Encrypt(big.NewInt(5000))
	require.NoError(t, err)

	// no arithmetic on the bare ciphertext may expose the plaintext:
	// stripping the low bits of the 128-bit ciphertext is the obvious
	// keyless attack and must come up empty
	recovered := new(big.Int).Rsh(ciphertext, ciphertextBits-plaintextBits)
	require.NotEqual(t, int64(5000), recovered.Int64())

	// the mapping is keyed: a second key places the same plaintext elsewhere
	other, err := GenerateOrderKey()
	require.NoError(t, err)
	otherCiphertext, err := other.Encrypt(big.NewInt(5000))
	require.NoError(t, err)
	require.NotZero(t, ciphertext.Cmp(otherCiphertext))
}

func TestOrderEncryptRejectsOutOfDomain(t *testing.T) {
	key, err := GenerateOrderKey()
	require.NoError(t, err)

	tooBig := new(big.Int).Lsh(big.NewInt(1), plaintextBits)
	_, err = key.Encrypt(tooBig)
	require.Error(t, err)

	// the domain's top value still encrypts
	edge := new(big.Int).Sub(tooBig, big.NewInt(1))
	_, err = key.Encrypt(edge)
	require.NoError(t, err)
}

func TestOrderEncryptRejectsNegative(t *testing.T) {
	key, err := GenerateOrderKey()
	require.NoError(t, err)

	_, err = key.Encrypt(big.NewInt(-5))
	require.Error(t, err)
}

func TestOrderKeyFingerprint(t *testing.T) {
	key, err := GenerateOrderKey()
	require.NoError(t, err)
	require.Len(t, key.Fingerprint(), 16)
}
