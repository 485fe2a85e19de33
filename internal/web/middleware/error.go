package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorHandler turns panics into a rendered 500 page instead of a
// dropped connection.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("panic handling %s: %v", c.Request.URL.Path, err)
				c.HTML(http.StatusInternalServerError, "error", gin.H{
					"Title":   "Something went wrong (500)",
					"Message": "An unexpected error occurred.",
				})
				c.Abort()
			}
		}()

		c.Next()
	}
}
