package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mwhitfield/quill/internal/core/repository"
	"github.com/mwhitfield/quill/internal/core/service"
	"github.com/mwhitfield/quill/internal/infrastructure/sqlite"
	"github.com/mwhitfield/quill/pkg/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "Quill - a small server-rendered blog",
	Long: `Quill is a small server-rendered blog application.

It provides:
- User registration and login with session cookies
- Password reset via signed, time-limited email links
- Post publishing with pagination and per-author pages
- Profile picture upload with automatic thumbnailing
- A product price search over an imported catalog`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		// Load configuration
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/quill/config.yml)")
}

// initServices initializes the database, repositories and services
func initServices() (*Services, error) {
	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	userRepo := sqlite.NewUserRepository(db)
	postRepo := sqlite.NewPostRepository(db)
	productRepo := sqlite.NewProductRepository(db)

	authService := service.NewAuthService(cfg.SecretKey)
	resetTokens := service.NewResetTokenService(cfg.SecretKey, time.Now)

	var mailer service.Mailer
	if cfg.SMTPHost != "" {
		mailer = service.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
	} else {
		mailer = service.LogMailer{}
	}

	userService := service.NewUserService(userRepo, authService, resetTokens, mailer, cfg.BaseURL)
	postService := service.NewPostService(postRepo, userRepo)
	productService := service.NewProductService(productRepo)
	pictureService := service.NewPictureService(cfg.PictureDir)

	return &Services{
		DB:             db,
		UserRepo:       userRepo,
		PostRepo:       postRepo,
		ProductRepo:    productRepo,
		AuthService:    authService,
		UserService:    userService,
		PostService:    postService,
		ProductService: productService,
		PictureService: pictureService,
	}, nil
}

// Services holds all initialized services
type Services struct {
	DB             *sqlite.DB
	UserRepo       repository.UserRepository
	PostRepo       repository.PostRepository
	ProductRepo    repository.ProductRepository
	AuthService    *service.AuthService
	UserService    *service.UserService
	PostService    *service.PostService
	ProductService *service.ProductService
	PictureService *service.PictureService
}

// Close closes all resources
func (s *Services) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}
