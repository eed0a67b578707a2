package middleware

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/CSCE331-Fall2024/project-3-team-xp/internal/security"
	"github.com/gin-gonic/gin"
)

// SealedVerify unwraps checkout payloads sealed by kiosk terminals:
// AES-256-GCM ciphertext signed with RSA-SHA256. When no sealer is
// configured (cashier/manager deployments) the middleware passes bodies
// through untouched.
type SealedVerify struct {
	sealer security.Sealer
}

func NewSealedVerify(sealer security.Sealer) *SealedVerify {
	return &SealedVerify{sealer: sealer}
}

type sealedReq struct {
	Data      string `json:"data"`      // base64(nonce||ciphertext)
	Signature string `json:"signature"` // base64(RSA-SHA256 over ciphertext)
}

func (sv *SealedVerify) Unseal() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sv.sealer == nil {
			c.Next()
			return
		}

		rawBody, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
			return
		}
		defer c.Request.Body.Close()

		var req sealedReq
		if err := json.Unmarshal(rawBody, &req); err != nil || req.Data == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid sealed request format"})
			return
		}

		ciphertext, err := base64.StdEncoding.DecodeString(req.Data)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid ciphertext encoding"})
			return
		}
		sig, err := base64.StdEncoding.DecodeString(req.Signature)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid signature encoding"})
			return
		}

		if err := sv.sealer.Verify(ciphertext, sig); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "signature verification failed"})
			return
		}

		plaintext, err := sv.sealer.Decrypt(ciphertext)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "decryption failed"})
			return
		}

		c.Request.Body = io.NopCloser(bytes.NewReader(plaintext))
		c.Request.ContentLength = int64(len(plaintext))
		c.Request.Header.Set("Content-Type", "application/json")

		c.Next()
	}
}
