package encryption

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func testKeyPair(t *testing.T) *KeyPair {
	t.Helper()
	keys, err := GenerateKeyPair(512)
	require.NoError(t, err)
	return keys
}

func TestAdditiveRoundTrip(t *testing.T) {
	keys := testKeyPair(t)

	for _, value := range []int64{0, 1, 42, 5000, 123456789} {
		ciphertext, err := keys.EncryptAdditive(big.NewInt(value))
		require.NoError(t, err)

		plaintext, err := keys.DecryptAdditive(ciphertext)
		require.NoError(t, err)
		require.Equal(t, value, plaintext.Int64(), "round trip of %d", value)
	}
}

func TestAdditiveRejectsNegative(t *testing.T) {
	keys := testKeyPair(t)

	_, err := keys.EncryptAdditive(big.NewInt(-1))
	require.Error(t, err)
}

func TestCombineMatchesPlaintextSum(t *testing.T) {
	keys := testKeyPair(t)

	remote, err := RebuildPublicKey(keys.PublicView())
	require.NoError(t, err)

	a, err := keys.EncryptAdditive(big.NewInt(5000))
	require.NoError(t, err)
	b, err := keys.EncryptAdditive(big.NewInt(7000))
	require.NoError(t, err)

	sum, err := keys.DecryptAdditive(remote.Combine(a, b))
	require.NoError(t, err)
	require.Equal(t, int64(12000), sum.Int64())
}

func TestRemoteEncryptDecryptsClientSide(t *testing.T) {
	keys := testKeyPair(t)

	remote, err := RebuildPublicKey(keys.PublicView())
	require.NoError(t, err)
	require.Equal(t, keys.PublicView(), remote.Modulus())

	ciphertext, err := remote.Encrypt(big.NewInt(314))
	require.NoError(t, err)

	plaintext, err := keys.DecryptAdditive(ciphertext)
	require.NoError(t, err)
	require.Equal(t, int64(314), plaintext.Int64())
}

func TestRebuildPublicKeyRejectsBadModulus(t *testing.T) {
	tests := []struct {
		name    string
		modulus string
	}{
		{"missing", ""},
		{"non-numeric", "not-a-number"},
		{"negative", "-42"},
		{"zero", "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := RebuildPublicKey(tc.modulus)
			require.Error(t, err)
		})
	}
}

func TestEncryptValueComponentsShareOnePlaintext(t *testing.T) {
	keys := testKeyPair(t)

	value, err := keys.EncryptValue(big.NewInt(5000))
	require.NoError(t, err)

	plaintext, err := keys.DecryptAdditive(value.Additive)
	require.NoError(t, err)
	require.Equal(t, int64(5000), plaintext.Int64())

	// the order component is the deterministic encryption of that same
	// plaintext under this key, nothing else
	order, err := keys.EncryptOrder(big.NewInt(5000))
	require.NoError(t, err)
	require.Zero(t, order.Cmp(value.Order))

	lower, err := keys.EncryptOrder(big.NewInt(4999))
	require.NoError(t, err)
	require.Equal(t, -1, lower.Cmp(value.Order))
}
