package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// SignatureHeader is the HTTP header carrying the payload signature.
const SignatureHeader = "X-Skyherald-Signature"

// SignatureManager handles HMAC-SHA256 payload signing so receivers can
// authenticate posts. Header format: X-Skyherald-Signature: t=<unix>,v1=<hmac>
type SignatureManager struct{}

// NewSignatureManager creates a new SignatureManager instance.
func NewSignatureManager() *SignatureManager {
	return &SignatureManager{}
}

// SignPayload generates the signature header value for a webhook payload.
// The signed content is "{unix_timestamp}.{payload}" using HMAC-SHA256.
func (sm *SignatureManager) SignPayload(payload []byte, secret string, now time.Time) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("webhook signature: empty secret")
	}

	timestamp := now.Unix()
	signedContent := fmt.Sprintf("%d.%s", timestamp, string(payload))
	v1 := computeHMAC(signedContent, secret)

	return fmt.Sprintf("t=%d,v1=%s", timestamp, v1), nil
}

// VerifySignature checks a payload against a signature header value.
func (sm *SignatureManager) VerifySignature(payload []byte, header, secret string) bool {
	timestamp, v1 := parseSignatureHeader(header)
	if timestamp == "" || v1 == "" || secret == "" {
		return false
	}

	signedContent := fmt.Sprintf("%s.%s", timestamp, string(payload))
	expected := computeHMAC(signedContent, secret)
	return hmac.Equal([]byte(v1), []byte(expected))
}

// parseSignatureHeader breaks a signature header into its component parts.
// Expected format: "t=<unix>,v1=<hex>"
func parseSignatureHeader(header string) (timestamp, v1 string) {
	for _, segment := range strings.Split(header, ",") {
		kv := strings.SplitN(segment, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch strings.TrimSpace(kv[0]) {
		case "t":
			timestamp = strings.TrimSpace(kv[1])
		case "v1":
			v1 = strings.TrimSpace(kv[1])
		}
	}
	return timestamp, v1
}

// computeHMAC computes the HMAC-SHA256 of content using the given key
// and returns it as a lowercase hex string.
func computeHMAC(content, key string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(content))
	return hex.EncodeToString(mac.Sum(nil))
}
