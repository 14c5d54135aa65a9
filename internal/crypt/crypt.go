package crypt

import (
	"errors"
	"fmt"

	"github.com/fernet/fernet-go"
)

// ErrDecrypt marks ciphertext that could not be verified and decrypted.
// Callers render it as a visible marker instead of failing the request.
var ErrDecrypt = errors.New("could not decrypt content")

// Encryptor wraps a process-wide Fernet key. Clinical note bodies only
// ever cross this boundary as ciphertext.
type Encryptor struct {
	keys []*fernet.Key
}

// New parses a base64 Fernet key as produced by GenerateKey.
func New(encodedKey string) (*Encryptor, error) {
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("decode encryption key: %w", err)
	}
	return &Encryptor{keys: []*fernet.Key{key}}, nil
}

// GenerateKey returns a fresh encoded key, used by deployments that have
// not configured one yet.
func GenerateKey() (string, error) {
	var key fernet.Key
	if err := key.Generate(); err != nil {
		return "", fmt.Errorf("generate encryption key: %w", err)
	}
	return key.Encode(), nil
}

func (e *Encryptor) Encrypt(plaintext string) ([]byte, error) {
	token, err := fernet.EncryptAndSign([]byte(plaintext), e.keys[0])
	if err != nil {
		return nil, fmt.Errorf("encrypt: %w", err)
	}
	return token, nil
}

// Decrypt verifies and decrypts a token. Tokens never expire here: note
// ciphertexts are long-lived records, not transient credentials.
func (e *Encryptor) Decrypt(ciphertext []byte) (string, error) {
	msg := fernet.VerifyAndDecrypt(ciphertext, 0, e.keys)
	if msg == nil {
		return "", ErrDecrypt
	}
	return string(msg), nil
}
