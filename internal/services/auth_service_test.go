package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/fintrackhq/fintrack-api/internal/config"
	"github.com/fintrackhq/fintrack-api/internal/models"
	"github.com/fintrackhq/fintrack-api/internal/repository"
)

type mockAuthUserRepo struct {
	repository.UserRepository
	mockCreate           func(ctx context.Context, user *models.User) error
	mockFindByID         func(ctx context.Context, id uint) (*models.User, error)
	mockFindByIdentifier func(ctx context.Context, identifier string) (*models.User, error)
}

func (m *mockAuthUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, user)
	}
	return nil
}

func (m *mockAuthUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockAuthUserRepo) FindByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	return m.mockFindByIdentifier(ctx, identifier)
}

type mockRefreshTokenRepo struct {
	repository.RefreshTokenRepository
	mockFindByToken func(ctx context.Context, token string) (*models.RefreshToken, error)
	deleted         []string
	created         []*models.RefreshToken
}

func (m *mockRefreshTokenRepo) Create(ctx context.Context, token *models.RefreshToken) error {
	m.created = append(m.created, token)
	return nil
}

func (m *mockRefreshTokenRepo) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	return m.mockFindByToken(ctx, token)
}

func (m *mockRefreshTokenRepo) Delete(ctx context.Context, token string) error {
	m.deleted = append(m.deleted, token)
	return nil
}

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 24,
	}
}

func TestSignup_CreatesUserAndIssuesTokens(t *testing.T) {
	var created *models.User
	userRepo := &mockAuthUserRepo{
		mockCreate: func(ctx context.Context, user *models.User) error {
			user.ID = 1
			created = user
			return nil
		},
	}
	rtRepo := &mockRefreshTokenRepo{}
	svc := NewAuthService(userRepo, rtRepo, testAuthConfig())

	result, err := svc.Signup(context.Background(), SignupInput{
		Username: "alice",
		Email:    "  Alice@Example.COM ",
		Password: "supersecret",
	})

	assert.NoError(t, err)
	assert.Equal(t, "alice@example.com", created.Email)
	assert.NotEqual(t, "supersecret", created.EncryptedPassword)
	assert.True(t, VerifyPassword("supersecret", created.EncryptedPassword))

	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Len(t, rtRepo.created, 1)

	// The JWT carries the user identity
	parsed, err := jwt.Parse(result.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(1), claims["user_id"])
	assert.Equal(t, "alice", claims["username"])
}

func TestSignup_RejectsShortPassword(t *testing.T) {
	svc := NewAuthService(&mockAuthUserRepo{}, &mockRefreshTokenRepo{}, testAuthConfig())

	_, err := svc.Signup(context.Background(), SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "short",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestLogin_WrongPassword(t *testing.T) {
	hashed, _ := HashPassword("correct-password")
	userRepo := &mockAuthUserRepo{
		mockFindByIdentifier: func(ctx context.Context, identifier string) (*models.User, error) {
			return &models.User{ID: 1, Username: "alice", EncryptedPassword: hashed}, nil
		},
	}
	svc := NewAuthService(userRepo, &mockRefreshTokenRepo{}, testAuthConfig())

	_, err := svc.Login(context.Background(), "alice", "wrong-password")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	userRepo := &mockAuthUserRepo{
		mockFindByIdentifier: func(ctx context.Context, identifier string) (*models.User, error) {
			return nil, ErrNotFound
		},
	}
	svc := NewAuthService(userRepo, &mockRefreshTokenRepo{}, testAuthConfig())

	_, err := svc.Login(context.Background(), "nobody", "whatever")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_Success(t *testing.T) {
	hashed, _ := HashPassword("correct-password")
	userRepo := &mockAuthUserRepo{
		mockFindByIdentifier: func(ctx context.Context, identifier string) (*models.User, error) {
			return &models.User{ID: 1, Username: "alice", EncryptedPassword: hashed}, nil
		},
	}
	rtRepo := &mockRefreshTokenRepo{}
	svc := NewAuthService(userRepo, rtRepo, testAuthConfig())

	result, err := svc.Login(context.Background(), "alice", "correct-password")

	assert.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "alice", result.User.Username)
}

func TestRefreshToken_RotatesToken(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour)
	rtRepo := &mockRefreshTokenRepo{
		mockFindByToken: func(ctx context.Context, token string) (*models.RefreshToken, error) {
			return &models.RefreshToken{UserID: 1, Token: token, ExpiresAt: &expiresAt}, nil
		},
	}
	userRepo := &mockAuthUserRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "alice"}, nil
		},
	}
	svc := NewAuthService(userRepo, rtRepo, testAuthConfig())

	result, err := svc.RefreshToken(context.Background(), "old-token")

	assert.NoError(t, err)
	assert.NotEqual(t, "old-token", result.RefreshToken)
	// The old token is single use
	assert.Contains(t, rtRepo.deleted, "old-token")
	assert.Len(t, rtRepo.created, 1)
}

func TestRefreshToken_Expired(t *testing.T) {
	expiresAt := time.Now().Add(-time.Hour)
	rtRepo := &mockRefreshTokenRepo{
		mockFindByToken: func(ctx context.Context, token string) (*models.RefreshToken, error) {
			return &models.RefreshToken{UserID: 1, Token: token, ExpiresAt: &expiresAt}, nil
		},
	}
	svc := NewAuthService(&mockAuthUserRepo{}, rtRepo, testAuthConfig())

	_, err := svc.RefreshToken(context.Background(), "stale-token")

	assert.Error(t, err)
	assert.Contains(t, rtRepo.deleted, "stale-token")
}
