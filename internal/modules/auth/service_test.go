package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"roombooking/internal/domain"
	"roombooking/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Mock User Repository implementing the interface
type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func seededUser(t *testing.T) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{ID: 42, Email: "ann@example.com", Name: "Ann", Role: domain.RoleAdmin, PasswordHash: string(hash)}
}

func TestIssueToken_Success(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByEmail", mock.Anything, "ann@example.com").Return(seededUser(t), nil)
	jwtService := jwt.New("secret", time.Hour)
	svc := NewService(repo, jwtService)

	tok, err := svc.IssueToken(context.Background(), TokenRequest{Email: " Ann@Example.com ", Password: "password123"})

	require.NoError(t, err)
	assert.Equal(t, "Bearer", tok.TokenType)
	assert.Equal(t, int64(42), tok.User.ID)

	claims, err := jwtService.ValidateToken(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestIssueToken_InvalidCredentials(t *testing.T) {
	tests := []struct {
		name     string
		user     *domain.User
		repoErr  error
		password string
	}{
		{"wrong password", nil, nil, "nope"},
		{"unknown user", nil, domain.ErrRecordNotFound, "password123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockUserRepo)
			if tt.repoErr != nil {
				repo.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, tt.repoErr)
			} else {
				repo.On("GetByEmail", mock.Anything, mock.Anything).Return(seededUser(t), nil)
			}
			svc := NewService(repo, jwt.New("secret", time.Hour))

			_, err := svc.IssueToken(context.Background(), TokenRequest{Email: "ann@example.com", Password: tt.password})
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestIssueToken_StoreError(t *testing.T) {
	boom := errors.New("boom")
	repo := new(mockUserRepo)
	repo.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, boom)

	_, err := NewService(repo, jwt.New("secret", time.Hour)).IssueToken(context.Background(), TokenRequest{Email: "a@b.co", Password: "x"})
	assert.ErrorIs(t, err, boom)
}

func TestHandler_IssueToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := new(mockUserRepo)
	repo.On("GetByEmail", mock.Anything, "ann@example.com").Return(seededUser(t), nil)
	r := gin.New()
	NewHandler(NewService(repo, jwt.New("secret", time.Hour))).RegisterPublicRoutes(r.Group("/api/v1"))

	post := func(body any) *httptest.ResponseRecorder {
		b, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr
	}

	rr := post(map[string]string{"email": "ann@example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), "access_token")

	rr = post(map[string]string{"email": "ann@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_CREDENTIALS")

	rr = post(map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
