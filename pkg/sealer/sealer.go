package sealer

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	"notarynow/pkg/config"
)

// encodedKey is resolved once at startup; SEALER_KEY overrides the built-in
// default so deployments can rotate the key.
var encodedKey = resolveKey()

func resolveKey() string {
	if k := os.Getenv(config.EnvSealerKey); k != "" {
		return k
	}
	return config.DefaultSealerKey
}

// CreateActionToken seals a recipient and appointment pair into an opaque
// token. Notification action links carry the token instead of raw IDs so a
// recipient cannot tamper with the reference.
func CreateActionToken(recipientID string, appointmentID string) (string, error) {
	plaintext := []byte(recipientID + ":" + appointmentID)

	key, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ct := aesgcm.Seal(nonce, nonce, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(ct), nil
}

// ParseActionToken reverses CreateActionToken, returning the recipient ID
// and appointment ID.
func ParseActionToken(token string) (string, string, error) {
	key, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return "", "", err
	}

	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", "", err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", "", err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", "", err
	}

	nonceSize := aesgcm.NonceSize()
	if len(data) < nonceSize {
		return "", "", fmt.Errorf("invalid token format")
	}
	nonce := data[:nonceSize]
	ciphertext := data[nonceSize:]

	pt, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", "", err
	}

	parts := strings.SplitN(string(pt), ":", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid token format")
	}

	return parts[0], parts[1], nil
}
