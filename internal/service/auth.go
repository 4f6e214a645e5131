package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/msomdec/lamenar/internal/company"
	"github.com/msomdec/lamenar/internal/domain"
	"github.com/msomdec/lamenar/internal/logger"
	"github.com/msomdec/lamenar/internal/metrics"
)

const (
	minPasswordLength = 8
	defaultTokenTTL   = 7 * 24 * time.Hour
)

// AuthOptions configures an AuthService.
type AuthOptions struct {
	// JWTSecret is the HMAC signing key.
	JWTSecret string
	// Algorithm is the HMAC algorithm name, HS256 when empty.
	Algorithm string
	// TokenTTL is the lifetime of tokens issued by Login.
	TokenTTL time.Duration
	// BcryptCost is the bcrypt work factor.
	BcryptCost int
}

// AuthService handles user registration, login, and JWT token operations.
type AuthService struct {
	users      domain.UserRepository
	jwtSecret  []byte
	method     jwt.SigningMethod
	tokenTTL   time.Duration
	bcryptCost int
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, opts AuthOptions) (*AuthService, error) {
	alg := opts.Algorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", alg)
	}

	ttl := opts.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	return &AuthService{
		users:      users,
		jwtSecret:  []byte(opts.JWTSecret),
		method:     method,
		tokenTTL:   ttl,
		bcryptCost: opts.BcryptCost,
	}, nil
}

// SignupInput carries the fields submitted when creating an account.
type SignupInput struct {
	Email         string
	Password      string
	Name          string
	Department    string
	Role          string
	WasReferred   string
	ReferrerName  string
	ReferrerEmail string
}

// Register creates a new user account. The company is derived from the email
// domain; personal mail providers are rejected.
func (s *AuthService) Register(ctx context.Context, in SignupInput) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	role := strings.TrimSpace(in.Role)
	if strings.TrimSpace(in.Email) == "" || in.Password == "" || name == "" || role == "" {
		return nil, fmt.Errorf("%w: email, password, name, and role are required", domain.ErrInvalidInput)
	}

	if utf8.RuneCountInString(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}

	if in.WasReferred != domain.ReferredYes && in.WasReferred != domain.ReferredNo {
		return nil, fmt.Errorf("%w: was_referred must be %q or %q", domain.ErrInvalidInput, domain.ReferredYes, domain.ReferredNo)
	}

	referred := in.WasReferred == domain.ReferredYes
	referrerName := strings.TrimSpace(in.ReferrerName)
	referrerEmail := strings.ToLower(strings.TrimSpace(in.ReferrerEmail))
	if referred && referrerName == "" && referrerEmail == "" {
		return nil, fmt.Errorf("%w: please provide either referrer name or email when you were referred by someone",
			domain.ErrInvalidInput)
	}

	email, err := CheckWorkEmail(in.Email)
	if err != nil {
		return nil, err
	}

	info, err := company.Resolve(email)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	if !strings.Contains(info.DisplayName, " ") {
		metrics.CompanyNameFallbacks.Inc()
	}

	hash, err := HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:              email,
		PasswordHash:       hash,
		Name:               name,
		CompanyDomain:      info.NormalizedKey,
		CompanyDisplayName: info.DisplayName,
		Department:         strings.TrimSpace(in.Department),
		Role:               role,
		WasReferred:        in.WasReferred,
	}
	if referred {
		user.ReferrerName = referrerName
		user.ReferrerEmail = referrerEmail
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.Info(ctx, "user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("company_domain", user.CompanyDomain),
		zap.String("company_display_name", user.CompanyDisplayName),
	)

	return user, nil
}

// Login verifies credentials and returns the user with a signed access token.
// Unknown emails and wrong passwords both yield domain.ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrUnauthorized
		}
		return nil, "", fmt.Errorf("get user: %w", err)
	}

	if !CheckPassword(user.PasswordHash, password) {
		return nil, "", domain.ErrUnauthorized
	}

	token, err := s.IssueToken(user, s.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("generate jwt: %w", err)
	}

	return user, token, nil
}

// TokenTTL returns the lifetime of tokens issued by Login.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}

// Claims are the JWT claims carried by access tokens.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// IssueToken signs an access token for user valid for ttl.
func (s *AuthService) IssueToken(user *domain.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(s.method, claims).SignedString(s.jwtSecret)
}

// ValidateToken parses and validates a JWT token string.
// Returns the user ID from the sub claim.
func (s *AuthService) ValidateToken(tokenString string) (uuid.UUID, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{s.method.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return uuid.Nil, domain.ErrUnauthorized
	}

	if claims.Email == "" || claims.Subject == "" {
		return uuid.Nil, domain.ErrUnauthorized
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, domain.ErrUnauthorized
	}

	return userID, nil
}

// Authenticate resolves a bearer token to its user.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*domain.User, error) {
	userID, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email, ignoring case.
func (s *AuthService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}
