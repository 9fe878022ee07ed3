package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"scireda/backend/internal/logger"
	"scireda/backend/internal/model"
	"scireda/backend/internal/repository"
)

const (
	tokenIssuer       = "scireda"
	minUsernameLength = 3
	minPasswordLength = 8
	// bcrypt only hashes the first 72 bytes and rejects longer input.
	maxPasswordLength = 72
	passwordSpecials  = "@$!%*?&"
)

// User is the public view of an account.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// AuthResponse is returned after successful login/register.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// AuthService provides authentication functionality.
type AuthService interface {
	// Register creates an account and returns a fresh token for it.
	Register(ctx context.Context, email, username, password string) (*AuthResponse, error)
	// Login authenticates by email and password.
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	// Logout revokes every token issued to the user.
	Logout(ctx context.Context, userID string) error
	// CurrentUser returns the account behind userID.
	CurrentUser(ctx context.Context, userID string) (*User, error)
	// ValidateToken checks signature, expiry and revocation, and returns the user id.
	ValidateToken(ctx context.Context, token string) (string, error)
	// PurgeExpiredTokens drops revocation records of tokens that expired anyway.
	PurgeExpiredTokens(ctx context.Context) (int64, error)
}

type authService struct {
	users  repository.UserRepository
	tokens repository.TokenRepository
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time
}

type AuthOption func(*authService)

// WithPasswordCost overrides the bcrypt cost.
func WithPasswordCost(cost int) AuthOption {
	return func(s *authService) { s.cost = cost }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) AuthOption {
	return func(s *authService) { s.now = now }
}

// NewAuthService creates a new auth service signing HS256 tokens with secret.
func NewAuthService(users repository.UserRepository, tokens repository.TokenRepository, secret []byte, ttl time.Duration, opts ...AuthOption) AuthService {
	s := &authService{
		users:  users,
		tokens: tokens,
		secret: secret,
		ttl:    ttl,
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *authService) Register(ctx context.Context, email, username, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)

	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if len(username) < minUsernameLength {
		return nil, invalid("username", fmt.Sprintf("must be at least %d characters", minUsernameLength))
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByEmailOrUsername(ctx, email, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, model.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
	})
	if err != nil {
		// Lost a race with a concurrent registration.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	logger.Info("user registered", "module", "service", "action", "register", "resource", "user", "result", "ok", "user_id", user.ID)
	return &AuthResponse{Token: token, User: toUser(user)}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, invalid("email", "is required")
	}
	if password == "" {
		return nil, invalid("password", "is required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Warn("login rejected", "module", "service", "action", "login", "resource", "user", "result", "failed", "user_id", user.ID)
		return nil, ErrUnauthorized
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: toUser(*user)}, nil
}

func (s *authService) Logout(ctx context.Context, userID string) error {
	n, err := s.tokens.DeleteByUser(ctx, userID)
	if err != nil {
		return err
	}
	logger.Info("user logged out", "module", "service", "action", "logout", "resource", "user", "result", "ok", "user_id", userID, "tokens_revoked", n)
	return nil
}

func (s *authService) CurrentUser(ctx context.Context, userID string) (*User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toUser(user), nil
}

func (s *authService) ValidateToken(ctx context.Context, token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return "", ErrUnauthorized
	}

	record, err := s.tokens.Find(ctx, claims.ID)
	if err != nil {
		return "", err
	}
	if record == nil || record.UserID != claims.Subject || !record.ExpiresAt.After(s.now()) {
		return "", ErrUnauthorized
	}
	return claims.Subject, nil
}

func (s *authService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	return s.tokens.DeleteExpired(ctx, s.now())
}

func (s *authService) issueToken(ctx context.Context, userID string) (string, error) {
	now := s.now()
	record := model.AccessToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	claims := jwt.RegisteredClaims{
		ID:        record.ID,
		Subject:   userID,
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(record.ExpiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	if err := s.tokens.Create(ctx, record); err != nil {
		return "", err
	}
	return signed, nil
}

func validateEmail(email string) error {
	if email == "" {
		return invalid("email", "is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return invalid("email", "must be a valid email address")
	}
	return nil
}

// validatePassword requires a lower and upper case letter, a digit and one of
// the special characters @$!%*?&.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return invalid("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}
	if len(password) > maxPasswordLength {
		return invalid("password", fmt.Sprintf("must be at most %d bytes", maxPasswordLength))
	}
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	if !lower || !upper || !digit || !special {
		return invalid("password", "must contain upper and lower case letters, a digit and one of "+passwordSpecials)
	}
	return nil
}

func toUser(u model.User) *User {
	return &User{ID: u.ID, Email: u.Email, Username: u.Username}
}
