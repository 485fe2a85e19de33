package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/mwhitfield/quill/internal/core/domain"
	"github.com/mwhitfield/quill/internal/core/repository"
	"github.com/mwhitfield/quill/internal/core/service"
)

const (
	SessionCookie  = "quill_session"
	UserContextKey = "current_user"
)

// CurrentUser resolves the session cookie into a user row and stores it
// in the request context. An absent or invalid cookie is not an error;
// the request simply proceeds anonymous.
func CurrentUser(authService *service.AuthService, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		userID, err := authService.ValidateSession(token)
		if err != nil {
			c.Next()
			return
		}

		// Re-load the user so a deleted account invalidates its sessions.
		user, err := userRepo.FindByID(c.Request.Context(), userID)
		if err != nil {
			c.Next()
			return
		}

		c.Set(UserContextKey, user)
		c.Next()
	}
}

// RequireAuth redirects anonymous requests to the login page, carrying
// the original target in the next parameter.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserFromContext(c); !ok {
			next := url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, "/login?next="+next)
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserFromContext retrieves the authenticated user placed by CurrentUser.
func UserFromContext(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(UserContextKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}
