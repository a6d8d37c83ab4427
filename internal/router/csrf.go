package router

import (
	"errors"
	"net/http"

	"govforms/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Define keys for storing the token in the session and context.
const (
	csrfTokenSessionKey = "csrf_token"
	csrfTokenContextKey = "csrf_token"
	csrfTokenHeaderKey  = "X-CSRF-Token"
)

// csrfExempt lists endpoints reachable before a client holds a token.
var csrfExempt = map[string]bool{
	"/api/auth/login": true,
	"/api/seed-admin": true,
}

// CSRFProtection is a custom middleware to protect against CSRF attacks.
// The token travels in the X-CSRF-Token header; clients obtain it from
// the session endpoint.
func CSRFProtection() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		// 1. Get or create the real CSRF token for the session.
		var token string
		sessionToken := session.Get(csrfTokenSessionKey)

		if sessionToken == nil {
			// Generate a new token if one doesn't exist.
			newToken, err := utils.GenerateSecureToken(32)
			if err != nil {
				c.AbortWithError(http.StatusInternalServerError, errors.New("failed to generate CSRF token"))
				return
			}
			token = newToken
			session.Set(csrfTokenSessionKey, token)
			if err := session.Save(); err != nil {
				c.AbortWithError(http.StatusInternalServerError, errors.New("failed to save session"))
				return
			}
		} else {
			token = sessionToken.(string)
		}

		// 2. Make the token available to handlers.
		c.Set(csrfTokenContextKey, token)

		// 3. Validate the token on unsafe methods (POST, etc.).
		if (c.Request.Method == "POST" || c.Request.Method == "PUT" || c.Request.Method == "DELETE") && !csrfExempt[c.Request.URL.Path] {
			submittedToken := c.GetHeader(csrfTokenHeaderKey)
			if submittedToken == "" || submittedToken != token {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid CSRF token"})
				return
			}
		}

		// If everything is okay, proceed to the next handler.
		c.Next()
	}
}
