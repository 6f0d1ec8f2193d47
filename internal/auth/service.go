// Package auth manages accounts and bearer tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Houeta/scoperival/internal/models"
	"github.com/Houeta/scoperival/internal/repository"
	"github.com/google/uuid"
)

// TokenType is returned alongside every access token.
const TokenType = "bearer"

var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidInput       = errors.New("email, password and company_name are required")
)

// Token is an issued access token.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Service registers users and issues tokens.
type Service struct {
	log        *slog.Logger
	users      repository.UserRepository
	secret     []byte
	ttl        time.Duration
	bcryptCost int
	now        func() time.Time
}

// NewService creates an auth Service. A zero ttl falls back to DefaultTokenTTL.
func NewService(log *slog.Logger, users repository.UserRepository, secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	return &Service{
		log:    log,
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// SetBcryptCost overrides the bcrypt cost, mostly to keep tests fast.
func (s *Service) SetBcryptCost(cost int) {
	s.bcryptCost = cost
}

// Register creates an account and returns its first token.
// A taken email is reported as repository.ErrAlreadyExists.
func (s *Service) Register(ctx context.Context, email, password, companyName string) (*Token, error) {
	const opn = "auth.Register"

	email = normalizeEmail(email)
	if email == "" || password == "" || strings.TrimSpace(companyName) == "" {
		return nil, fmt.Errorf("%s: %w", opn, ErrInvalidInput)
	}

	hash, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	user := &models.User{
		ID:             uuid.NewString(),
		Email:          email,
		HashedPassword: hash,
		CompanyName:    strings.TrimSpace(companyName),
		CreatedAt:      s.now(),
	}
	if err = s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	s.log.InfoContext(ctx, "User registered", "op", opn, "user_id", user.ID)

	return s.issue(user)
}

// Login checks credentials and returns a fresh token.
func (s *Service) Login(ctx context.Context, email, password string) (*Token, error) {
	const opn = "auth.Login"

	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", opn, ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	if !CheckPassword(password, user.HashedPassword) {
		return nil, fmt.Errorf("%s: %w", opn, ErrInvalidCredentials)
	}

	return s.issue(user)
}

// Authenticate resolves a bearer token to its user.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, error) {
	const opn = "auth.Authenticate"

	claims, err := ValidateJWT(token, s.secret)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", opn, ErrInvalidToken)
		}
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	return user, nil
}

func (s *Service) issue(user *models.User) (*Token, error) {
	signed, err := GenerateJWT(user.ID, user.Email, s.secret, s.ttl, s.now())
	if err != nil {
		return nil, err
	}

	return &Token{AccessToken: signed, TokenType: TokenType}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
