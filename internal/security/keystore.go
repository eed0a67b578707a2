package security

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/CSCE331-Fall2024/project-3-team-xp/configs"
)

type KeyMaterial struct {
	KeyID  string
	AESKey []byte
	RSAPub *rsa.PublicKey
	RSAPri *rsa.PrivateKey
}

// LoadKeyMaterial parses the sealing keys from config. Returns an error
// when the material is absent; callers decide whether sealing is
// mandatory for their deployment.
func LoadKeyMaterial(c configs.Config) (*KeyMaterial, error) {
	if c.Crypto.AES256B64 == "" || c.Crypto.RSAPubPEM == "" {
		return nil, errors.New("missing aes256_b64url or rsa_pub_pem")
	}

	key, err := base64.RawURLEncoding.DecodeString(c.Crypto.AES256B64)
	if err != nil {
		return nil, fmt.Errorf("decode aes256_b64url: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("aes key must be 32 bytes, got %d", len(key))
	}

	pub, err := parseRSAPublicKey([]byte(c.Crypto.RSAPubPEM))
	if err != nil {
		return nil, fmt.Errorf("parse rsa pub pem: %w", err)
	}

	var pri *rsa.PrivateKey
	if c.Crypto.RSAPriPEM != "" {
		pri, err = parseRSAPrivateKey([]byte(c.Crypto.RSAPriPEM))
		if err != nil {
			return nil, fmt.Errorf("parse rsa pri pem: %w", err)
		}
	}

	id := c.Crypto.KeyID
	if id == "" {
		id = "v1"
	}
	return &KeyMaterial{KeyID: id, AESKey: key, RSAPub: pub, RSAPri: pri}, nil
}

func parseRSAPublicKey(pemBytes []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("no pem block")
	}
	pubAny, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	pub, ok := pubAny.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("not rsa public key")
	}
	return pub, nil
}

func parseRSAPrivateKey(pemBytes []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("no pem block in RSA private key")
	}

	// PKCS#8 first, then PKCS#1
	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err == nil {
		if rsaKey, ok := key.(*rsa.PrivateKey); ok {
			return rsaKey, nil
		}
		return nil, errors.New("not an RSA private key in PKCS#8")
	}
	rsaKey, err2 := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err2 != nil {
		return nil, fmt.Errorf("parse RSA private key failed (PKCS#8: %v, PKCS#1: %v)", err, err2)
	}
	return rsaKey, nil
}
