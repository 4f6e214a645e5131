package service_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/lamenar/internal/company"
	"github.com/msomdec/lamenar/internal/domain"
	"github.com/msomdec/lamenar/internal/repository/sqlite"
	"github.com/msomdec/lamenar/internal/service"
)

const testJWTSecret = "test-secret-key-for-unit-tests-0123456789"

func newTestAuthService(t *testing.T) *service.AuthService {
	t.Helper()
	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background()))
	t.Cleanup(func() { db.Close() })

	// Use cost 4 for fast tests.
	auth, err := service.NewAuthService(db.Users(), service.AuthOptions{
		JWTSecret:  testJWTSecret,
		TokenTTL:   time.Hour,
		BcryptCost: 4,
	})
	require.NoError(t, err)
	return auth
}

func signup(email string) service.SignupInput {
	return service.SignupInput{
		Email:       email,
		Password:    "password123",
		Name:        "New User",
		Role:        "Engineer",
		WasReferred: domain.ReferredNo,
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	auth := newTestAuthService(t)

	in := signup("  New.User@Eng.AcmeCorp.com ")
	in.Department = "Platform"
	user, err := auth.Register(context.Background(), in)
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "new.user@eng.acmecorp.com", user.Email)
	assert.Equal(t, "eng.acmecorp.com", user.CompanyDomain)
	assert.Equal(t, "Acme Corp", user.CompanyDisplayName)
	assert.Equal(t, "Platform", user.Department)
	assert.NotEqual(t, "password123", user.PasswordHash)
}

func TestAuthService_Register_PersonalEmail(t *testing.T) {
	auth := newTestAuthService(t)

	_, err := auth.Register(context.Background(), signup("someone@Gmail.com"))
	require.ErrorIs(t, err, domain.ErrPersonalEmail)
	assert.Contains(t, err.Error(), "gmail.com, hotmail.com, yahoo.com, yahoo.co.uk, yahoo.co.in")
}

func TestAuthService_Register_InvalidEmail(t *testing.T) {
	auth := newTestAuthService(t)

	_, err := auth.Register(context.Background(), signup("no-at-sign"))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	require.ErrorIs(t, err, company.ErrInvalidEmail)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, signup("dup@acmecorp.com"))
	require.NoError(t, err)

	_, err = auth.Register(ctx, signup("DUP@acmecorp.com"))
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestAuthService_Register_InvalidInput(t *testing.T) {
	auth := newTestAuthService(t)

	tests := []struct {
		name   string
		mutate func(*service.SignupInput)
	}{
		{"empty email", func(in *service.SignupInput) { in.Email = "" }},
		{"empty name", func(in *service.SignupInput) { in.Name = "  " }},
		{"empty role", func(in *service.SignupInput) { in.Role = "" }},
		{"empty password", func(in *service.SignupInput) { in.Password = "" }},
		{"weak password", func(in *service.SignupInput) { in.Password = "short" }},
		{"bad referral answer", func(in *service.SignupInput) { in.WasReferred = "maybe" }},
		{"referred without referrer", func(in *service.SignupInput) { in.WasReferred = domain.ReferredYes }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := signup("invalid@acmecorp.com")
			tc.mutate(&in)
			_, err := auth.Register(context.Background(), in)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestAuthService_Register_Referral(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	in := signup("referred@acmecorp.com")
	in.WasReferred = domain.ReferredYes
	in.ReferrerEmail = "Boss@AcmeCorp.com"
	user, err := auth.Register(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "boss@acmecorp.com", user.ReferrerEmail)

	in = signup("notreferred@acmecorp.com")
	in.ReferrerName = "Ignored"
	in.ReferrerEmail = "ignored@acmecorp.com"
	user, err = auth.Register(ctx, in)
	require.NoError(t, err)
	assert.Empty(t, user.ReferrerName)
	assert.Empty(t, user.ReferrerEmail)
}

func TestAuthService_Login_Success(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	registered, err := auth.Register(ctx, signup("login@acmecorp.com"))
	require.NoError(t, err)

	user, token, err := auth.Login(ctx, "Login@AcmeCorp.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, registered.ID, user.ID)
}

func TestAuthService_Login_LongPassword(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	in := signup("long@acmecorp.com")
	in.Password = strings.Repeat("p", 100)
	_, err := auth.Register(ctx, in)
	require.NoError(t, err)

	_, _, err = auth.Login(ctx, "long@acmecorp.com", strings.Repeat("p", 100))
	require.NoError(t, err)

	_, _, err = auth.Login(ctx, "long@acmecorp.com", strings.Repeat("p", 99)+"q")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, signup("wrongpw@acmecorp.com"))
	require.NoError(t, err)

	_, _, err = auth.Login(ctx, "wrongpw@acmecorp.com", "wrongpassword")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	auth := newTestAuthService(t)

	_, _, err := auth.Login(context.Background(), "nobody@acmecorp.com", "password123")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_JWT_GenerateAndValidate(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	registered, err := auth.Register(ctx, signup("jwt@acmecorp.com"))
	require.NoError(t, err)

	_, token, err := auth.Login(ctx, "jwt@acmecorp.com", "password123")
	require.NoError(t, err)

	userID, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)

	user, err := auth.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "jwt@acmecorp.com", user.Email)
}

func TestAuthService_JWT_InvalidToken(t *testing.T) {
	auth := newTestAuthService(t)

	_, err := auth.ValidateToken("not-a-valid-jwt")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_JWT_TamperedToken(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, signup("tamper@acmecorp.com"))
	require.NoError(t, err)
	_, token, err := auth.Login(ctx, "tamper@acmecorp.com", "password123")
	require.NoError(t, err)

	// Tamper with the token by flipping several characters in the signature.
	tampered := token[:len(token)-5] + "XXXXX"
	_, err = auth.ValidateToken(tampered)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_JWT_Expired(t *testing.T) {
	auth := newTestAuthService(t)

	user, err := auth.Register(context.Background(), signup("expired@acmecorp.com"))
	require.NoError(t, err)

	token, err := auth.IssueToken(user, -time.Minute)
	require.NoError(t, err)

	_, err = auth.ValidateToken(token)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_JWT_WrongAlgorithm(t *testing.T) {
	auth := newTestAuthService(t)

	user, err := auth.Register(context.Background(), signup("alg@acmecorp.com"))
	require.NoError(t, err)

	claims := service.Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	_, err = auth.ValidateToken(token)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_JWT_MissingEmailClaim(t *testing.T) {
	auth := newTestAuthService(t)

	user, err := auth.Register(context.Background(), signup("noemail@acmecorp.com"))
	require.NoError(t, err)

	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	_, err = auth.ValidateToken(token)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_JWT_WrongSecret(t *testing.T) {
	auth1 := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth1.Register(ctx, signup("secret@acmecorp.com"))
	require.NoError(t, err)
	_, token, err := auth1.Login(ctx, "secret@acmecorp.com", "password123")
	require.NoError(t, err)

	db2, err := sqlite.New(filepath.Join(t.TempDir(), "test2.db"))
	require.NoError(t, err)
	defer db2.Close()
	require.NoError(t, db2.Migrate(ctx))

	auth2, err := service.NewAuthService(db2.Users(), service.AuthOptions{
		JWTSecret:  "a-completely-different-secret-0123456789",
		BcryptCost: 4,
	})
	require.NoError(t, err)

	_, err = auth2.ValidateToken(token)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_Authenticate_DeletedUser(t *testing.T) {
	auth := newTestAuthService(t)

	// A valid token for a user that was never stored.
	ghost := &domain.User{Email: "ghost@acmecorp.com"}
	ghost.ID[0] = 1
	token, err := auth.IssueToken(ghost, time.Hour)
	require.NoError(t, err)

	_, err = auth.Authenticate(context.Background(), token)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestNewAuthService_UnsupportedAlgorithm(t *testing.T) {
	_, err := service.NewAuthService(nil, service.AuthOptions{JWTSecret: testJWTSecret, Algorithm: "RS256"})
	require.Error(t, err)
}
