package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mwhitfield/quill/internal/core/domain"
	"github.com/mwhitfield/quill/internal/core/repository"
	"github.com/mwhitfield/quill/internal/core/service"
	"github.com/mwhitfield/quill/internal/infrastructure/sqlite"
	"github.com/mwhitfield/quill/internal/web/middleware"
	"github.com/mwhitfield/quill/pkg/config"
)

// captureMailer records outbound mail instead of sending it.
type captureMailer struct {
	to      string
	subject string
	body    string
}

func (m *captureMailer) Send(to, subject, body string) error {
	m.to, m.subject, m.body = to, subject, body
	return nil
}

type testEnv struct {
	db             *sqlite.DB
	server         *Server
	mailer         *captureMailer
	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	productRepo    repository.ProductRepository
	authService    *service.AuthService
	userService    *service.UserService
	postService    *service.PostService
	productService *service.ProductService
}

// setupTestEnv wires the full route table against an in-memory database.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		SecretKey:  "test-secret",
		BaseURL:    "http://localhost:8330",
		PictureDir: t.TempDir(),
	}

	userRepo := sqlite.NewUserRepository(db)
	postRepo := sqlite.NewPostRepository(db)
	productRepo := sqlite.NewProductRepository(db)

	mailer := &captureMailer{}
	authService := service.NewAuthService(cfg.SecretKey)
	resetTokens := service.NewResetTokenService(cfg.SecretKey, time.Now)
	userService := service.NewUserService(userRepo, authService, resetTokens, mailer, cfg.BaseURL)
	postService := service.NewPostService(postRepo, userRepo)
	productService := service.NewProductService(productRepo)
	pictureService := service.NewPictureService(cfg.PictureDir)

	server := NewServer(cfg, userService, postService, productService, pictureService, authService, userRepo)

	return &testEnv{
		db:             db,
		server:         server,
		mailer:         mailer,
		userRepo:       userRepo,
		postRepo:       postRepo,
		productRepo:    productRepo,
		authService:    authService,
		userService:    userService,
		postService:    postService,
		productService: productService,
	}
}

// createUser registers an account directly through the service layer.
func (env *testEnv) createUser(t *testing.T, username, email, password string) *domain.User {
	t.Helper()

	user, err := env.userService.Register(context.Background(), username, email, password)
	if err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

// createPost publishes a post directly through the service layer.
func (env *testEnv) createPost(t *testing.T, userID int64, title, content string) *domain.Post {
	t.Helper()

	post, err := env.postService.Create(context.Background(), userID, title, content)
	if err != nil {
		t.Fatalf("failed to create post %s: %v", title, err)
	}
	return post
}

// sessionCookie issues a session for the user, as the login handler would.
func (env *testEnv) sessionCookie(t *testing.T, userID int64) *http.Cookie {
	t.Helper()

	token, _, err := env.authService.IssueSession(userID, false)
	if err != nil {
		t.Fatalf("failed to issue session: %v", err)
	}
	return &http.Cookie{Name: middleware.SessionCookie, Value: token}
}

// get performs a GET request with optional cookies.
func (env *testEnv) get(t *testing.T, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	return env.do(t, http.MethodGet, path, nil, cookies...)
}

// postForm performs a POST with form-encoded body and optional cookies.
func (env *testEnv) postForm(t *testing.T, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	return env.do(t, http.MethodPost, path, form, cookies...)
}

func (env *testEnv) do(t *testing.T, method, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	var err error
	if form != nil {
		req, err = http.NewRequest(method, path, strings.NewReader(form.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	} else {
		req, err = http.NewRequest(method, path, nil)
	}
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(w, req)
	return w
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302 redirect, got %d\nBody: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != location {
		t.Fatalf("expected redirect to %s, got %s", location, got)
	}
}
