package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/mwhitfield/quill/internal/core/service"
)

type InputClassesForm struct {
	ClassName string `form:"class_name"`
	Term      string `form:"term"`
}

type ProductHandler struct {
	productService *service.ProductService
}

func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ShowInputClasses handles GET /input_classes
func (h *ProductHandler) ShowInputClasses(c *gin.Context) {
	render(c, http.StatusOK, "input_classes", gin.H{"Title": "Input Classes"})
}

// InputClasses handles POST /input_classes and forwards the chosen term
// to the search results page. The category field wins over the free
// text term when both are filled.
func (h *ProductHandler) InputClasses(c *gin.Context) {
	var form InputClassesForm
	_ = c.ShouldBind(&form)

	query := form.ClassName
	if query == "" {
		query = form.Term
	}

	c.Redirect(http.StatusFound, "/amazon?search="+url.QueryEscape(query))
}

// Amazon handles GET /amazon?search=
func (h *ProductHandler) Amazon(c *gin.Context) {
	products, err := h.productService.Search(c.Request.Context(), c.Query("search"))
	if err != nil {
		renderServerError(c)
		return
	}

	render(c, http.StatusOK, "amazon", gin.H{
		"Title":    "Amazon Products",
		"Products": products,
	})
}
