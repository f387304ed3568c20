package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"AuthKit/internal/mailer"
	"AuthKit/internal/model"
	"AuthKit/internal/repo"
	"AuthKit/internal/security"

	"go.uber.org/zap"
)

const minPasswordLen = 8

const (
	StatusPendingVerification = "pending_verification"
	genericCodeSent           = "If the email is registered, a code has been sent."
)

// Result — ответ операций без токенов.
type Result struct {
	Message string `json:"message"`
	Status  string `json:"status,omitempty"`
}

// TokenPair is issued on successful login.
type TokenPair struct {
	Access  string
	Refresh string
}

// Options — настраиваемые параметры одноразовых кодов.
type Options struct {
	CodeTTL     time.Duration
	MaxAttempts int
	DebugCodes  bool // log raw codes (development only)
}

// AuthService инкапсулирует регистрацию, вход и одноразовые коды.
type AuthService struct {
	users  repo.UserRepository
	codes  repo.CodeRepository
	tokens *security.Tokens
	mailer mailer.Mailer
	logger *zap.SugaredLogger
	opts   Options

	now func() time.Time
}

func NewAuthService(
	users repo.UserRepository,
	codes repo.CodeRepository,
	tokens *security.Tokens,
	m mailer.Mailer,
	logger *zap.SugaredLogger,
	opts Options,
) *AuthService {
	if opts.CodeTTL <= 0 {
		opts.CodeTTL = 15 * time.Minute
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 6
	}
	return &AuthService{
		users:  users,
		codes:  codes,
		tokens: tokens,
		mailer: m,
		logger: logger,
		opts:   opts,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// normalizeEmail lowercases and validates a bare address.
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// lookup returns (nil, nil) for an unknown email.
func (s *AuthService) lookup(ctx context.Context, email string) (*model.User, error) {
	u, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *AuthService) Register(ctx context.Context, email, password string) (Result, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return Result{}, err
	}
	if len(password) < minPasswordLen {
		return Result{}, ErrPasswordTooShort
	}
	existing, err := s.lookup(ctx, email)
	if err != nil {
		return Result{}, err
	}
	if existing != nil {
		if existing.IsVerified {
			return Result{}, ErrEmailRegistered
		}
		if err := s.issueCode(ctx, existing, model.PurposeVerify); err != nil {
			return Result{}, err
		}
		return Result{Message: "Code re-sent.", Status: StatusPendingVerification}, nil
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return Result{}, err
	}
	user, err := s.users.CreateUser(ctx, &model.User{Email: email, PasswordHash: hash, IsActive: true})
	if err != nil {
		return Result{}, fmt.Errorf("create user: %w", err)
	}
	if err := s.issueCode(ctx, user, model.PurposeVerify); err != nil {
		return Result{}, err
	}
	return Result{
		Message: "Registered. Check your email for the 6-digit code.",
		Status:  StatusPendingVerification,
	}, nil
}

func (s *AuthService) Verify(ctx context.Context, email, code string) (Result, error) {
	user, err := s.mustUser(ctx, email)
	if err != nil {
		return Result{}, err
	}
	if err := s.validateCode(ctx, user, model.PurposeVerify, code); err != nil {
		return Result{}, err
	}
	user.IsVerified = true
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return Result{}, fmt.Errorf("update user: %w", err)
	}
	return Result{Message: "Email verified. You can log in now."}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (TokenPair, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		// неизвестный формат не раскрываем отдельно
		return TokenPair{}, ErrInvalidCredentials
	}
	user, err := s.lookup(ctx, email)
	if err != nil {
		return TokenPair{}, err
	}
	if user == nil || !security.VerifyPassword(password, user.PasswordHash) {
		return TokenPair{}, ErrInvalidCredentials
	}
	if !user.IsVerified {
		return TokenPair{}, ErrNotVerified
	}
	access, err := s.tokens.Access(user.Email)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.tokens.Refresh(user.Email)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh is a placeholder endpoint: tokens are not rotated.
func (s *AuthService) Refresh(context.Context) Result {
	return Result{Message: "OK"}
}

// Forgot never reveals whether the email is registered.
func (s *AuthService) Forgot(ctx context.Context, email string) (Result, error) {
	res := Result{Message: genericCodeSent}
	email, err := normalizeEmail(email)
	if err != nil {
		return Result{}, err
	}
	user, err := s.lookup(ctx, email)
	if err != nil {
		return Result{}, err
	}
	if user == nil {
		return res, nil
	}
	if err := s.issueCode(ctx, user, model.PurposeReset); err != nil {
		return Result{}, err
	}
	return res, nil
}

func (s *AuthService) Reset(ctx context.Context, email, code, newPassword string) (Result, error) {
	user, err := s.mustUser(ctx, email)
	if err != nil {
		return Result{}, err
	}
	if len(newPassword) < minPasswordLen {
		return Result{}, ErrPasswordTooShort
	}
	if err := s.validateCode(ctx, user, model.PurposeReset, code); err != nil {
		return Result{}, err
	}
	if err := s.setPassword(ctx, user, newPassword); err != nil {
		return Result{}, err
	}
	return Result{Message: "Password updated. You can log in now."}, nil
}

func (s *AuthService) ChangePasswordRequest(ctx context.Context, user *model.User) (Result, error) {
	if err := s.issueCode(ctx, user, model.PurposeChangePassword); err != nil {
		return Result{}, err
	}
	return Result{Message: "A confirmation code was sent to your email."}, nil
}

func (s *AuthService) ChangePasswordConfirm(ctx context.Context, user *model.User, code, current, newPassword string) (Result, error) {
	if !security.VerifyPassword(current, user.PasswordHash) {
		return Result{}, ErrCurrentPassword
	}
	if len(newPassword) < minPasswordLen {
		return Result{}, ErrPasswordTooShort
	}
	if err := s.validateCode(ctx, user, model.PurposeChangePassword, code); err != nil {
		return Result{}, err
	}
	if err := s.setPassword(ctx, user, newPassword); err != nil {
		return Result{}, err
	}
	return Result{Message: "Password changed successfully."}, nil
}

func (s *AuthService) ResendVerify(ctx context.Context, email string) (Result, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return Result{}, err
	}
	user, err := s.lookup(ctx, email)
	if err != nil {
		return Result{}, err
	}
	if user == nil {
		return Result{Message: genericCodeSent}, nil
	}
	if user.IsVerified {
		return Result{Message: "Email is already verified."}, nil
	}
	if err := s.issueCode(ctx, user, model.PurposeVerify); err != nil {
		return Result{}, err
	}
	return Result{Message: "Verification code re-sent if the email exists."}, nil
}

// CurrentUser resolves a bearer access token to its user.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	claims, err := s.tokens.Decode(token)
	if err != nil || claims.Type == security.TypeRefresh {
		return nil, ErrInvalidToken
	}
	user, err := s.lookup(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnknownSubject
	}
	return user, nil
}

func (s *AuthService) mustUser(ctx context.Context, email string) (*model.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	user, err := s.lookup(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) setPassword(ctx context.Context, user *model.User, pw string) error {
	hash, err := security.HashPassword(pw)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}
