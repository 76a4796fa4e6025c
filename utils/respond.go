// utils/respond.go
package utils

import (
	"log"

	"github.com/gin-gonic/gin"
)

// RespondWithError writes the standard {error} envelope and stops the chain.
func RespondWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// RespondWithErrorDetails writes the {error, details} envelope. The
// underlying error is logged in full server-side; only its message goes to
// the caller.
func RespondWithErrorDetails(c *gin.Context, code int, message string, err error) {
	details := ""
	if err != nil {
		log.Printf("[ERROR] %s %s: %s: %v", c.Request.Method, c.Request.URL.Path, message, err)
		details = err.Error()
	}
	c.AbortWithStatusJSON(code, gin.H{"error": message, "details": details})
}
