package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mwhitfield/quill/internal/web/middleware"
)

const flashCookie = "quill_flash"

// FlashMessage is a one-time notice surfaced on the next rendered page
// after a redirect.
type FlashMessage struct {
	Category string
	Message  string
}

// flash queues a message for the next rendered page.
func flash(c *gin.Context, category, message string) {
	c.SetCookie(flashCookie, category+"|"+message, 60, "/", "", false, true)
}

// popFlash takes the queued message, if any, and clears it.
func popFlash(c *gin.Context) *FlashMessage {
	value, err := c.Cookie(flashCookie)
	if err != nil || value == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	category, message, found := strings.Cut(value, "|")
	if !found {
		return &FlashMessage{Category: "info", Message: value}
	}
	return &FlashMessage{Category: category, Message: message}
}

// render draws a page template with the ambient context (current user,
// pending flash) merged into the handler-supplied data.
func render(c *gin.Context, code int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if user, ok := middleware.UserFromContext(c); ok {
		data["CurrentUser"] = user
	}
	// A handler can flash inline for the page it renders itself; the
	// cookie queue only feeds pages reached through a redirect.
	if _, ok := data["Flash"]; !ok {
		if msg := popFlash(c); msg != nil {
			data["Flash"] = msg
		}
	}
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = map[string]string{}
	}
	c.HTML(code, name, data)
}

// NotFound renders the 404 page for unmatched routes.
func NotFound(c *gin.Context) {
	renderNotFound(c)
}

func renderNotFound(c *gin.Context) {
	render(c, http.StatusNotFound, "error", gin.H{
		"Title":   "Page Not Found (404)",
		"Message": "That page does not exist.",
	})
}

func renderForbidden(c *gin.Context) {
	render(c, http.StatusForbidden, "error", gin.H{
		"Title":   "You don't have permission to do that (403)",
		"Message": "Please check your account and try again.",
	})
}

func renderServerError(c *gin.Context) {
	render(c, http.StatusInternalServerError, "error", gin.H{
		"Title":   "Something went wrong (500)",
		"Message": "An unexpected error occurred.",
	})
}

// redirectIfAuthenticated sends logged-in users back home from pages
// that only make sense anonymous (login, register, reset).
func redirectIfAuthenticated(c *gin.Context) bool {
	if _, ok := middleware.UserFromContext(c); ok {
		c.Redirect(http.StatusFound, "/home")
		return true
	}
	return false
}

// safeNext only allows same-site relative redirect targets.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return ""
}
