package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const ContextAccountID = "accountID"

// AuthRequired returns a Gin middleware function that validates Bearer tokens
// and restricts access to authenticated accounts only.
// The verifier carries the signing secret; nothing is read from the
// environment at request time.
func AuthRequired(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		// 2. Verify signature and expiry
		accountID, err := verifier.VerifyToken(tokenStr)
		if err != nil {
			// Malformed, expired, and tampered tokens all read the same
			// to the caller; the distinction only matters server-side.
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}

		// 3. Expose the account ID to downstream handlers
		c.Set(ContextAccountID, accountID)
		c.Next()
	}
}
