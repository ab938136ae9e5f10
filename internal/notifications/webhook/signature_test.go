package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignPayloadFormat(t *testing.T) {
	sm := NewSignatureManager()
	now := time.Date(2025, 8, 13, 6, 0, 0, 0, time.UTC)
	payload := []byte(`{"region":"patlania"}`)

	header, err := sm.SignPayload(payload, "topsecret", now)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(header, fmt.Sprintf("t=%d,v1=", now.Unix())))

	// Recompute the expected HMAC independently.
	mac := hmac.New(sha256.New, []byte("topsecret"))
	mac.Write([]byte(fmt.Sprintf("%d.%s", now.Unix(), payload)))
	expected := hex.EncodeToString(mac.Sum(nil))
	assert.Equal(t, fmt.Sprintf("t=%d,v1=%s", now.Unix(), expected), header)
}

func TestSignPayloadEmptySecret(t *testing.T) {
	sm := NewSignatureManager()
	_, err := sm.SignPayload([]byte("x"), "", time.Now())
	require.Error(t, err)
}

func TestVerifySignatureRoundTrip(t *testing.T) {
	sm := NewSignatureManager()
	payload := []byte(`{"region":"velden"}`)
	header, err := sm.SignPayload(payload, "topsecret", time.Now())
	require.NoError(t, err)

	assert.True(t, sm.VerifySignature(payload, header, "topsecret"))
	assert.False(t, sm.VerifySignature(payload, header, "wrong"))
	assert.False(t, sm.VerifySignature([]byte("tampered"), header, "topsecret"))
}

func TestVerifySignatureMalformedHeader(t *testing.T) {
	sm := NewSignatureManager()

	assert.False(t, sm.VerifySignature([]byte("x"), "", "secret"))
	assert.False(t, sm.VerifySignature([]byte("x"), "garbage", "secret"))
	assert.False(t, sm.VerifySignature([]byte("x"), "t=123", "secret"))
	assert.False(t, sm.VerifySignature([]byte("x"), "v1=abc", "secret"))
}
