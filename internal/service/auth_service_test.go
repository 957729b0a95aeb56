package service

import (
	"context"
	"testing"

	"coldstore/internal/domainerr"
	"coldstore/internal/dto"
	"coldstore/internal/middleware"
	"coldstore/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	users map[string]model.User
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.Username] = *u
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	u, ok := r.users[username]
	if !ok || !u.Active {
		return nil, gorm.ErrRecordNotFound
	}
	cp := u
	return &cp, nil
}

const testSecret = "test-secret"

func newAuthFixture(t *testing.T) AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &stubUserRepo{users: map[string]model.User{}}
	require.NoError(t, users.Create(context.Background(), &model.User{
		Username:     "admin",
		Name:         "Admin",
		PasswordHash: string(hash),
		AccessLevel:  model.AccessEdit,
		Active:       true,
	}))
	return NewAuthService(users, testSecret, 24)
}

func TestLogin_IssuesTokenWithAccessLevel(t *testing.T) {
	svc := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "admin", Password: "hunter22",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, model.AccessEdit, resp.AccessLevel)

	claims := &middleware.JWTClaims{}
	parsed, err := jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, model.AccessEdit, claims.AccessLevel)
}

func TestLogin_SameErrorForUnknownUserAndBadPassword(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	_, errUser := svc.Login(ctx, dto.LoginRequest{Username: "ghost", Password: "hunter22"})
	_, errPass := svc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "wrong"})

	var ve *domainerr.ValidationError
	require.ErrorAs(t, errUser, &ve)
	require.ErrorAs(t, errPass, &ve)
	assert.Equal(t, errUser.Error(), errPass.Error())
}
