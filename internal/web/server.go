package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mwhitfield/quill/internal/core/repository"
	"github.com/mwhitfield/quill/internal/core/service"
	"github.com/mwhitfield/quill/internal/web/handler"
	"github.com/mwhitfield/quill/internal/web/middleware"
	"github.com/mwhitfield/quill/pkg/config"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Server struct {
	router *gin.Engine
	srv    *http.Server
	config *config.Config
}

// NewServer wires handlers, middleware and routes into a gin engine.
func NewServer(
	cfg *config.Config,
	userService *service.UserService,
	postService *service.PostService,
	productService *service.ProductService,
	pictureService *service.PictureService,
	authService *service.AuthService,
	userRepo repository.UserRepository,
) *Server {
	if !cfg.IsDevMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	// Global middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CurrentUser(authService, userRepo))

	// Uploaded profile pictures
	router.Static("/static/profile_pics", cfg.PictureDir)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userService, authService)
	accountHandler := handler.NewAccountHandler(userService, pictureService)
	postHandler := handler.NewPostHandler(postService)
	productHandler := handler.NewProductHandler(productService)

	requireAuth := middleware.RequireAuth()

	// Public pages
	router.GET("/", postHandler.Home)
	router.GET("/home", postHandler.Home)
	router.GET("/about", postHandler.About)
	router.GET("/post/:id", postHandler.Show)
	router.GET("/user/:username", postHandler.UserPosts)

	// Session management
	router.GET("/register", authHandler.ShowRegister)
	router.POST("/register", authHandler.Register)
	router.GET("/login", authHandler.ShowLogin)
	router.POST("/login", authHandler.Login)
	router.GET("/logout", authHandler.Logout)

	// Password reset
	router.GET("/reset_password", authHandler.ShowResetRequest)
	router.POST("/reset_password", authHandler.ResetRequest)
	router.GET("/reset_password/:token", authHandler.ShowResetPassword)
	router.POST("/reset_password/:token", authHandler.ResetPassword)

	// Account
	account := router.Group("/account")
	account.Use(requireAuth)
	{
		account.GET("", accountHandler.Show)
		account.POST("", accountHandler.Update)
	}

	// Post mutations
	router.GET("/post/new", requireAuth, postHandler.ShowCreate)
	router.POST("/post/new", requireAuth, postHandler.Create)
	router.GET("/post/:id/update", requireAuth, postHandler.ShowUpdate)
	router.POST("/post/:id/update", requireAuth, postHandler.Update)
	router.POST("/post/:id/delete", requireAuth, postHandler.Delete)

	// Product search
	router.GET("/input_classes", productHandler.ShowInputClasses)
	router.POST("/input_classes", productHandler.InputClasses)
	router.GET("/amazon", requireAuth, productHandler.Amazon)
	router.POST("/amazon", requireAuth, productHandler.Amazon)

	router.NoRoute(handler.NotFound)

	return &Server{
		router: router,
		config: cfg,
	}
}

// Handler exposes the route table for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.HTTPHost, s.config.HTTPPort)

	s.srv = &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	fmt.Printf("Starting HTTP server on %s\n", addr)
	return s.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}
