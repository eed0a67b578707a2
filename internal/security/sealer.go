package security

import (
	"crypto"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
)

// Sealer encrypts and signs payloads exchanged with kiosk terminals:
// AES-256-GCM for confidentiality, RSA-SHA256 over the ciphertext for
// authenticity. A verify-only instance (no RSA private key) can still
// Decrypt and Verify.
type Sealer interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
	Sign(payload []byte) ([]byte, error)
	Verify(payload, signature []byte) error
}

type sealer struct {
	aead      cipher.AEAD
	nonceSize int
	rsaPub    *rsa.PublicKey
	rsaPriv   *rsa.PrivateKey // nil => verify-only
}

func NewSealer(km *KeyMaterial) (Sealer, error) {
	if len(km.AESKey) != 32 {
		return nil, fmt.Errorf("aes key must be 32 bytes, got %d", len(km.AESKey))
	}
	if km.RSAPub == nil {
		return nil, errors.New("rsa public key required")
	}

	block, err := aes.NewCipher(km.AESKey)
	if err != nil {
		return nil, fmt.Errorf("aes.NewCipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cipher.NewGCM: %w", err)
	}

	return &sealer{
		aead:      aead,
		nonceSize: aead.NonceSize(),
		rsaPub:    km.RSAPub,
		rsaPriv:   km.RSAPri,
	}, nil
}

func (s *sealer) Encrypt(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, s.nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("rand nonce: %w", err)
	}
	ct := s.aead.Seal(nil, nonce, plaintext, nil)

	// wire format: nonce || ciphertext
	out := make([]byte, 0, len(nonce)+len(ct))
	out = append(out, nonce...)
	out = append(out, ct...)
	return out, nil
}

func (s *sealer) Decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < s.nonceSize+s.aead.Overhead() {
		return nil, errors.New("ciphertext too short")
	}
	nonce := ciphertext[:s.nonceSize]
	ct := ciphertext[s.nonceSize:]
	pt, err := s.aead.Open(nil, nonce, ct, nil)
	if err != nil {
		return nil, fmt.Errorf("gcm open: %w", err)
	}
	return pt, nil
}

func (s *sealer) Sign(payload []byte) ([]byte, error) {
	if s.rsaPriv == nil {
		return nil, errors.New("signing not configured (no RSA private key)")
	}
	sum := sha256.Sum256(payload)
	sig, err := rsa.SignPKCS1v15(rand.Reader, s.rsaPriv, crypto.SHA256, sum[:])
	if err != nil {
		return nil, fmt.Errorf("rsa sign: %w", err)
	}
	return sig, nil
}

func (s *sealer) Verify(payload, signature []byte) error {
	sum := sha256.Sum256(payload)
	if err := rsa.VerifyPKCS1v15(s.rsaPub, crypto.SHA256, sum[:], signature); err != nil {
		return fmt.Errorf("rsa verify: %w", err)
	}
	return nil
}
