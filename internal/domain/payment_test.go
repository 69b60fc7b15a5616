package domain

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidLast4Digits(t *testing.T) {
	assert.True(t, ValidLast4Digits("1234"))
	assert.True(t, ValidLast4Digits("0042")) // leading zeros are data, not formatting

	assert.False(t, ValidLast4Digits(""))
	assert.False(t, ValidLast4Digits("123"))
	assert.False(t, ValidLast4Digits("12345"))
	assert.False(t, ValidLast4Digits("12a4"))
	assert.False(t, ValidLast4Digits(" 123"))
}

func TestDecodeSlipImage(t *testing.T) {
	raw := []byte("not really a png")
	encoded := base64.StdEncoding.EncodeToString(raw)

	contentType, data, err := DecodeSlipImage(encoded)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, raw, data)

	contentType, data, err = DecodeSlipImage("data:image/jpeg;base64," + encoded)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)
	assert.Equal(t, raw, data)
}

func TestDecodeSlipImageRejectsGarbage(t *testing.T) {
	for _, payload := range []string{"", "%%%not-base64%%%", "data:image/png;base64,"} {
		_, _, err := DecodeSlipImage(payload)
		assert.ErrorIs(t, err, ErrInvalidSlipImage, "payload %q", payload)
	}
}

func TestPaymentStatusTerminal(t *testing.T) {
	assert.False(t, PaymentWaiting.Terminal())
	assert.True(t, PaymentConfirmed.Terminal())
	assert.True(t, PaymentCanceled.Terminal())
}
