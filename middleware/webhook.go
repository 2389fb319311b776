package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// WebhookAuth verifies the payment provider's webhook signature: an
// HMAC-SHA512 of the raw body under the provider secret, sent in the
// signature header. Skipped in sandbox/dev mode.
func WebhookAuth(secretEnv, header string) gin.HandlerFunc {
	secretKey := os.Getenv(secretEnv)
	if secretKey == "" {
		panic(secretEnv + " is not set")
	}

	mode := strings.ToLower(os.Getenv("PAYMENT_MODE"))

	return func(c *gin.Context) {
		if mode == "sandbox" || mode == "dev" {
			c.Next()
			return
		}

		provided := c.GetHeader(header)
		if provided == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "missing webhook signature"})
			c.Abort()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body for signature verification"})
			c.Abort()
			return
		}
		// body is consumed by the check; restore it for the handler
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		mac := hmac.New(sha512.New, []byte(secretKey))
		mac.Write(body)
		calculated := hex.EncodeToString(mac.Sum(nil))

		if !hmac.Equal([]byte(strings.ToLower(provided)), []byte(calculated)) {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid webhook signature"})
			c.Abort()
			return
		}

		c.Next()
	}
}
