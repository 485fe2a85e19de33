package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mwhitfield/quill/internal/core/service"
	"github.com/mwhitfield/quill/internal/web/middleware"
)

type AccountForm struct {
	Username string                `form:"username" binding:"required,min=2,max=20"`
	Email    string                `form:"email" binding:"required,email,max=120"`
	Picture  *multipart.FileHeader `form:"picture"`
}

type AccountHandler struct {
	userService    *service.UserService
	pictureService *service.PictureService
}

func NewAccountHandler(userService *service.UserService, pictureService *service.PictureService) *AccountHandler {
	return &AccountHandler{
		userService:    userService,
		pictureService: pictureService,
	}
}

// Show handles GET /account, prefilled with the current values.
func (h *AccountHandler) Show(c *gin.Context) {
	user, _ := middleware.UserFromContext(c)
	render(c, http.StatusOK, "account", gin.H{
		"Title": "Account",
		"Form":  AccountForm{Username: user.Username, Email: user.Email},
	})
}

// Update handles POST /account.
func (h *AccountHandler) Update(c *gin.Context) {
	user, _ := middleware.UserFromContext(c)

	var form AccountForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "account", gin.H{
			"Title":  "Account",
			"Form":   form,
			"Errors": fieldErrors(err),
		})
		return
	}

	var newPicture string
	if form.Picture != nil {
		file, err := form.Picture.Open()
		if err != nil {
			renderServerError(c)
			return
		}
		newPicture, err = h.pictureService.Save(file, form.Picture.Filename)
		file.Close()
		if errors.Is(err, service.ErrBadImage) {
			render(c, http.StatusBadRequest, "account", gin.H{
				"Title":  "Account",
				"Form":   form,
				"Errors": map[string]string{"picture": "That file could not be read as an image. Please upload a valid picture."},
			})
			return
		}
		if err != nil {
			renderServerError(c)
			return
		}
	}

	previousPicture := user.ImageFile
	err := h.userService.UpdateAccount(c.Request.Context(), user, form.Username, form.Email, newPicture)
	if errs := duplicateFieldErrors(err); errs != nil {
		// The freshly stored picture is orphaned if the update is rejected.
		if newPicture != "" {
			h.pictureService.Remove(newPicture)
		}
		render(c, http.StatusBadRequest, "account", gin.H{
			"Title":  "Account",
			"Form":   form,
			"Errors": errs,
		})
		return
	}
	if err != nil {
		if newPicture != "" {
			h.pictureService.Remove(newPicture)
		}
		renderServerError(c)
		return
	}

	if newPicture != "" && previousPicture != newPicture {
		h.pictureService.Remove(previousPicture)
	}

	flash(c, "success", "Your account has been updated!")
	c.Redirect(http.StatusFound, "/account")
}
