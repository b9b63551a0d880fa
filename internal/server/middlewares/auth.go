package middlewares

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
)

type CredentialsVerifier interface {
	Enabled() bool
	Verify(username, password string) error
}

// BasicAuth rejects requests without valid basic credentials. Paths in
// skip are always let through. Nothing is checked when the verifier is
// disabled.
func BasicAuth(v CredentialsVerifier, skip ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !v.Enabled() || slices.Contains(skip, c.FullPath()) {
			c.Next()
			return
		}

		username, password, ok := c.Request.BasicAuth()
		if !ok || v.Verify(username, password) != nil {
			c.Header("WWW-Authenticate", `Basic realm="smtp-gateway-agent"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		c.Next()
	}
}
