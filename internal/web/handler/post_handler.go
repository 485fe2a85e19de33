package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mwhitfield/quill/internal/core/repository"
	"github.com/mwhitfield/quill/internal/core/service"
	"github.com/mwhitfield/quill/internal/web/middleware"
)

type PostForm struct {
	Title   string `form:"title" binding:"required,max=100"`
	Content string `form:"content" binding:"required"`
}

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Home handles GET / and GET /home
func (h *PostHandler) Home(c *gin.Context) {
	posts, pagination, err := h.postService.ListPage(c.Request.Context(), pageParam(c))
	if err != nil {
		renderServerError(c)
		return
	}
	render(c, http.StatusOK, "home", gin.H{
		"Posts":      posts,
		"Pagination": pagination,
	})
}

// About handles GET /about
func (h *PostHandler) About(c *gin.Context) {
	render(c, http.StatusOK, "about", gin.H{"Title": "About"})
}

// ShowCreate handles GET /post/new
func (h *PostHandler) ShowCreate(c *gin.Context) {
	render(c, http.StatusOK, "create_post", gin.H{
		"Title":  "New Post",
		"Legend": "New Post",
		"Action": "/post/new",
		"Form":   PostForm{},
	})
}

// Create handles POST /post/new
func (h *PostHandler) Create(c *gin.Context) {
	user, _ := middleware.UserFromContext(c)

	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "create_post", gin.H{
			"Title":  "New Post",
			"Legend": "New Post",
			"Action": "/post/new",
			"Form":   form,
			"Errors": fieldErrors(err),
		})
		return
	}

	post, err := h.postService.Create(c.Request.Context(), user.ID, form.Title, form.Content)
	if err != nil {
		renderServerError(c)
		return
	}

	flash(c, "success", "Your post has been created!")
	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", post.ID))
}

// Show handles GET /post/:id
func (h *PostHandler) Show(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		renderNotFound(c)
		return
	}

	post, err := h.postService.Get(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		renderNotFound(c)
		return
	}
	if err != nil {
		renderServerError(c)
		return
	}

	user, _ := middleware.UserFromContext(c)
	render(c, http.StatusOK, "post", gin.H{
		"Title":   post.Title,
		"Post":    post,
		"IsOwner": user != nil && user.ID == post.UserID,
	})
}

// ShowUpdate handles GET /post/:id/update
func (h *PostHandler) ShowUpdate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		renderNotFound(c)
		return
	}

	post, err := h.postService.Get(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		renderNotFound(c)
		return
	}
	if err != nil {
		renderServerError(c)
		return
	}

	user, _ := middleware.UserFromContext(c)
	if user.ID != post.UserID {
		renderForbidden(c)
		return
	}

	render(c, http.StatusOK, "create_post", gin.H{
		"Title":  "Update Post",
		"Legend": "Update Post",
		"Action": fmt.Sprintf("/post/%d/update", post.ID),
		"Form":   PostForm{Title: post.Title, Content: post.Content},
	})
}

// Update handles POST /post/:id/update
func (h *PostHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		renderNotFound(c)
		return
	}

	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "create_post", gin.H{
			"Title":  "Update Post",
			"Legend": "Update Post",
			"Action": fmt.Sprintf("/post/%d/update", id),
			"Form":   form,
			"Errors": fieldErrors(err),
		})
		return
	}

	user, _ := middleware.UserFromContext(c)
	post, err := h.postService.Update(c.Request.Context(), id, user.ID, form.Title, form.Content)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		renderNotFound(c)
		return
	case errors.Is(err, service.ErrForbidden):
		renderForbidden(c)
		return
	case err != nil:
		renderServerError(c)
		return
	}

	flash(c, "success", "Your post has been updated!")
	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", post.ID))
}

// Delete handles POST /post/:id/delete
func (h *PostHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		renderNotFound(c)
		return
	}

	user, _ := middleware.UserFromContext(c)
	err = h.postService.Delete(c.Request.Context(), id, user.ID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		renderNotFound(c)
		return
	case errors.Is(err, service.ErrForbidden):
		renderForbidden(c)
		return
	case err != nil:
		renderServerError(c)
		return
	}

	flash(c, "success", "Your post has been deleted!")
	c.Redirect(http.StatusFound, "/home")
}

// UserPosts handles GET /user/:username
func (h *PostHandler) UserPosts(c *gin.Context) {
	author, posts, pagination, err := h.postService.ListByUsername(c.Request.Context(), c.Param("username"), pageParam(c))
	if errors.Is(err, repository.ErrNotFound) {
		renderNotFound(c)
		return
	}
	if err != nil {
		renderServerError(c)
		return
	}

	render(c, http.StatusOK, "user_posts", gin.H{
		"Title":      author.Username,
		"Author":     author,
		"Posts":      posts,
		"Pagination": pagination,
	})
}
