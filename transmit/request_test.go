package transmit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequestAccepts(t *testing.T) {
	req, err := NewRequest("m1", []string{"1234567"}, "TEST", Alphanumeric, 439.9875, Baud1200)
	require.NoError(t, err)
	assert.Equal(t, "m1", req.MessageID)
}

func TestValidateRejectsEmptyRecipients(t *testing.T) {
	_, err := NewRequest("m1", nil, "TEST", Alphanumeric, 439.9875, Baud1200)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestValidateRejectsBadRIC(t *testing.T) {
	cases := []string{"", "12345678", "abc", "-5"}
	for _, ric := range cases {
		_, err := NewRequest("m1", []string{ric}, "TEST", Alphanumeric, 439.9875, Baud1200)
		var ve *ValidationError
		assert.ErrorAs(t, err, &ve, "ric=%q", ric)
	}
}

func TestValidateRejectsUnknownMessageType(t *testing.T) {
	_, err := NewRequest("m1", []string{"123"}, "TEST", MessageType("binary"), 439.9875, Baud1200)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestValidateRejectsBadBaud(t *testing.T) {
	_, err := NewRequest("m1", []string{"123"}, "TEST", Alphanumeric, 439.9875, BaudRate(9600))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestValidateRejectsOutOfCharsetMessage(t *testing.T) {
	_, err := NewRequest("m1", []string{"123"}, "\x01bad", Alphanumeric, 439.9875, Baud1200)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	_, err = NewRequest("m1", []string{"123"}, "12a", Numeric, 439.9875, Baud1200)
	require.ErrorAs(t, err, &ve)
}

func TestWarningsFlagsLongAlphanumeric(t *testing.T) {
	long := make([]byte, 81)
	for i := range long {
		long[i] = 'A'
	}
	req, err := NewRequest("m1", []string{"123"}, string(long), Alphanumeric, 439.9875, Baud1200)
	require.NoError(t, err)
	assert.NotEmpty(t, req.Warnings())
}
