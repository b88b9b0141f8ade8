package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardCipherRoundTrip(t *testing.T) {
	cipher, err := NewCardCipher("unit-test-secret-with-enough-length")
	require.NoError(t, err)

	encrypted, err := cipher.Encrypt("4242424242424242")
	require.NoError(t, err)
	assert.NotEqual(t, "4242424242424242", encrypted)

	decrypted, err := cipher.Decrypt(encrypted)
	require.NoError(t, err)
	assert.Equal(t, "4242424242424242", decrypted)
}

func TestCardCipherNonceUniqueness(t *testing.T) {
	cipher, err := NewCardCipher("unit-test-secret-with-enough-length")
	require.NoError(t, err)

	a, err := cipher.Encrypt("378282246310005")
	require.NoError(t, err)
	b, err := cipher.Encrypt("378282246310005")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestCardCipherRejectsTamperedCiphertext(t *testing.T) {
	cipher, err := NewCardCipher("unit-test-secret-with-enough-length")
	require.NoError(t, err)

	_, err = cipher.Decrypt("not base64!!")
	assert.ErrorIs(t, err, ErrCiphertextInvalid)

	_, err = cipher.Decrypt("c2hvcnQ=") // valid base64, shorter than a nonce
	assert.ErrorIs(t, err, ErrCiphertextInvalid)
}

func TestCardCipherWrongKeyFails(t *testing.T) {
	a, err := NewCardCipher("unit-test-secret-with-enough-length")
	require.NoError(t, err)
	b, err := NewCardCipher("a-different-secret-with-enough-length")
	require.NoError(t, err)

	encrypted, err := a.Encrypt("4242424242424242")
	require.NoError(t, err)

	_, err = b.Decrypt(encrypted)
	assert.ErrorIs(t, err, ErrCiphertextInvalid)
}

func TestCardCipherEmptyStringPassthrough(t *testing.T) {
	cipher, err := NewCardCipher("unit-test-secret-with-enough-length")
	require.NoError(t, err)

	encrypted, err := cipher.Encrypt("")
	require.NoError(t, err)
	assert.Empty(t, encrypted)

	decrypted, err := cipher.Decrypt("")
	require.NoError(t, err)
	assert.Empty(t, decrypted)
}
