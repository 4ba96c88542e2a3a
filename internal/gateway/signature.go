// ABOUTME: HMAC-SHA256 webhook signature verification
// ABOUTME: Compares the provider's signature header against the raw request body

package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// signaturePrefix is the algorithm prefix the provider puts in front of the
// hex digest, as in "sha256=<hex>".
const signaturePrefix = "sha256="

// verifySignature checks the signature header against an HMAC-SHA256 of the
// raw request body keyed with secret. The header may carry a "sha256="
// prefix and the hex digits are matched case-insensitively. Returns false
// for a missing or malformed header.
func verifySignature(secret, body []byte, header string) bool {
	header = strings.TrimSpace(header)
	if header == "" {
		return false
	}

	if len(header) >= len(signaturePrefix) && strings.EqualFold(header[:len(signaturePrefix)], signaturePrefix) {
		header = header[len(signaturePrefix):]
	}

	supplied, err := hex.DecodeString(strings.ToLower(header))
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(body)

	return hmac.Equal(supplied, mac.Sum(nil))
}
