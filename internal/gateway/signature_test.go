// ABOUTME: Tests for HMAC-SHA256 webhook signature verification
// ABOUTME: Covers prefix handling, hex case-insensitivity, and rejection paths

package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
)

func signBody(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature_Valid(t *testing.T) {
	secret := []byte("topsecret")
	body := []byte(`{"object":"whatsapp_business_account"}`)
	sig := signBody(secret, body)

	if !verifySignature(secret, body, sig) {
		t.Error("bare hex digest should verify")
	}
	if !verifySignature(secret, body, "sha256="+sig) {
		t.Error("sha256= prefixed digest should verify")
	}
	if !verifySignature(secret, body, "SHA256="+sig) {
		t.Error("prefix match should be case-insensitive")
	}
	if !verifySignature(secret, body, "sha256="+strings.ToUpper(sig)) {
		t.Error("hex digits should match case-insensitively")
	}
	if !verifySignature(secret, body, "  sha256="+sig+"  ") {
		t.Error("surrounding whitespace should be tolerated")
	}
}

func TestVerifySignature_Rejects(t *testing.T) {
	secret := []byte("topsecret")
	body := []byte(`{"object":"whatsapp_business_account"}`)
	sig := signBody(secret, body)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong secret", "sha256=" + signBody([]byte("other"), body)},
		{"tampered body", "sha256=" + signBody(secret, []byte(`{"object":"x"}`))},
		{"not hex", "sha256=zzzz"},
		{"truncated digest", "sha256=" + sig[:16]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if verifySignature(secret, body, tt.header) {
				t.Errorf("verifySignature accepted %q", tt.header)
			}
		})
	}
}
