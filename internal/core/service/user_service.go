package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mwhitfield/quill/internal/core/domain"
	"github.com/mwhitfield/quill/internal/core/repository"
)

// UserService implements registration, login, account updates and the
// password reset flow.
type UserService struct {
	userRepo    repository.UserRepository
	auth        *AuthService
	resetTokens *ResetTokenService
	mailer      Mailer
	baseURL     string
}

func NewUserService(
	userRepo repository.UserRepository,
	auth *AuthService,
	resetTokens *ResetTokenService,
	mailer Mailer,
	baseURL string,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		auth:        auth,
		resetTokens: resetTokens,
		mailer:      mailer,
		baseURL:     baseURL,
	}
}

// Register creates a new account with a hashed password. Uniqueness is
// checked up front so callers get a field-level error rather than a
// constraint violation.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if err := s.checkUnique(ctx, username, email, 0); err != nil {
		return nil, err
	}

	hashed, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := domain.NewUser(username, email, hashed)
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate looks up the user by email and compares passwords. Both
// failure modes collapse to ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !s.auth.VerifyPassword(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// UpdateAccount changes username, email and optionally the profile
// picture filename. An empty imageFile leaves the current one in place.
func (s *UserService) UpdateAccount(ctx context.Context, user *domain.User, username, email, imageFile string) error {
	if err := s.checkUnique(ctx, username, email, user.ID); err != nil {
		return err
	}

	user.Username = username
	user.Email = email
	if imageFile != "" {
		user.ImageFile = imageFile
	}
	return s.userRepo.Update(ctx, user)
}

// RequestPasswordReset mails a reset link to the address if an account
// exists. An unknown email is a silent no-op so the endpoint does not
// reveal which addresses are registered.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	token, err := s.resetTokens.Issue(user.ID, DefaultResetTokenTTL)
	if err != nil {
		return err
	}

	body := fmt.Sprintf(`To reset your password, visit the following link:
%s/reset_password/%s

If you did not make this request, then simply ignore this email and no changes will be made.
`, s.baseURL, token)

	return s.mailer.Send(user.Email, "Password Reset Request", body)
}

// VerifyResetToken checks a token without consuming it, so the reset
// form can bounce bad links before asking for a new password.
func (s *UserService) VerifyResetToken(token string) error {
	_, err := s.resetTokens.Verify(token)
	return err
}

// ResetPassword verifies the token and replaces the password hash.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := s.resetTokens.Verify(token)
	if err != nil {
		return ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return ErrInvalidToken
	}

	hashed, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.Password = hashed
	return s.userRepo.Update(ctx, user)
}

func (s *UserService) checkUnique(ctx context.Context, username, email string, selfID int64) error {
	if existing, err := s.userRepo.FindByUsername(ctx, username); err == nil && existing.ID != selfID {
		return ErrDuplicateUsername
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	if existing, err := s.userRepo.FindByEmail(ctx, email); err == nil && existing.ID != selfID {
		return ErrDuplicateEmail
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	return nil
}
