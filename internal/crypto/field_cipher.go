// Package crypto provides field-level encryption for sensitive vault values.
//
// A single 32-byte key is derived once from a configured passphrase-like
// secret using PBKDF2-SHA256 and kept for the process lifetime. Values are
// sealed with AES-256-GCM into self-contained, base64url-safe tokens that
// embed the random nonce, so a stored token is all that is needed to recover
// the plaintext later.
//
// Known limitation: the KDF salt is a fixed application-level constant rather
// than per-value, so identical secrets configured on two deployments derive
// identical keys. Key rotation is out of scope.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	apperrors "github.com/allisson/familyvault/internal/errors"
)

const (
	// tokenPrefix marks the encrypted-token format so plain stored values
	// are cheaply distinguishable from ciphertext.
	tokenPrefix = "fv1."

	// kdfIterations is the PBKDF2 iteration count for key derivation.
	kdfIterations = 100000

	// kdfKeyLength is the derived key size in bytes (AES-256).
	kdfKeyLength = 32
)

// kdfSalt is the fixed application-level KDF salt.
var kdfSalt = []byte("familyvault_field_key_salt")

// Error values returned by Decrypt. Callers that need the fail-open behavior
// for legacy plaintext values should treat these as a signal to keep the
// stored representation, not as terminal failures.
var (
	// ErrNotCipherToken indicates the input does not carry the token prefix.
	ErrNotCipherToken = apperrors.New("value is not an encrypted token")

	// ErrMalformedToken indicates the token could not be decoded.
	ErrMalformedToken = apperrors.New("malformed encrypted token")

	// ErrDecryptFailed indicates authentication failed (wrong key or corrupt data).
	ErrDecryptFailed = apperrors.New("decryption failed")
)

// FieldCipher encrypts and decrypts sensitive field values.
//
// The cipher is stateless after construction and safe for concurrent use from
// multiple request handlers. It is built once at startup and injected into the
// services that need it; there is no package-level singleton.
type FieldCipher struct {
	aead cipher.AEAD
}

// NewFieldCipher derives the encryption key from the configured secret and
// initializes the AEAD. Key derivation is intentionally expensive (100k PBKDF2
// iterations) and must happen exactly once per process.
func NewFieldCipher(secret string) (*FieldCipher, error) {
	if secret == "" {
		return nil, apperrors.New("field encryption secret must not be empty")
	}

	key := pbkdf2.Key([]byte(secret), kdfSalt, kdfIterations, kdfKeyLength, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &FieldCipher{aead: aead}, nil
}

// Encrypt seals a plaintext value into a self-contained token.
//
// A fresh 12-byte nonce is generated per call and prepended to the sealed
// bytes before base64url encoding. Empty values pass through unchanged; the
// system never stores an encrypted form of the empty string.
func (f *FieldCipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return plaintext, nil
	}

	nonce := make([]byte, f.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := f.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return tokenPrefix + base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decrypt recovers the plaintext from a token produced by Encrypt.
//
// Any failure is reported as a typed error: ErrNotCipherToken for values that
// never were tokens, ErrMalformedToken for undecodable input, ErrDecryptFailed
// when authentication fails. Empty values pass through unchanged.
func (f *FieldCipher) Decrypt(token string) (string, error) {
	if token == "" {
		return token, nil
	}

	raw, ok := strings.CutPrefix(token, tokenPrefix)
	if !ok {
		return "", ErrNotCipherToken
	}

	sealed, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return "", apperrors.Wrap(ErrMalformedToken, err.Error())
	}

	nonceSize := f.aead.NonceSize()
	if len(sealed) <= nonceSize {
		return "", ErrMalformedToken
	}

	plaintext, err := f.aead.Open(nil, sealed[:nonceSize], sealed[nonceSize:], nil)
	if err != nil {
		return "", apperrors.Wrap(ErrDecryptFailed, err.Error())
	}

	return string(plaintext), nil
}

// IsCipherToken reports whether a stored value looks like an encrypted token.
func (f *FieldCipher) IsCipherToken(value string) bool {
	return strings.HasPrefix(value, tokenPrefix)
}
