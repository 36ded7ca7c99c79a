package util

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base64"
)

// HmacSHA1Base64 computes the signature scheme Twilio uses for webhook
// validation: base64-encoded HMAC-SHA1 over the full request URL with the
// sorted form parameters appended.
func HmacSHA1Base64(secret, data string) string {
	h := hmac.New(sha1.New, []byte(secret))
	h.Write([]byte(data))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

func ConstantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
