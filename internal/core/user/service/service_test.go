package userapp

import (
	"context"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	dbadapter "yatube/internal/adapters/database"
	"yatube/internal/core/apperror"
	"yatube/internal/core/user"
	"yatube/internal/testutil"
)

func newService(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	return NewUserService(dbadapter.NewUserRepositoryDatabase(db), []byte("test-secret"), zap.NewNop()), db
}

func register(t *testing.T, s *UserService, username string) {
	t.Helper()
	_, err := s.RegisterUser(context.Background(), RegisterUserInput{Username: username, Password: "correct horse"})
	require.NoError(t, err)
}

func TestRegisterUser(t *testing.T) {
	s, db := newService(t)
	dto, err := s.RegisterUser(context.Background(), RegisterUserInput{
		Username: " leo ", Password: "correct horse", FirstName: "Leo", Email: "leo@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "leo", dto.Username)
	assert.Equal(t, "Leo", dto.FirstName)

	var stored user.User
	require.NoError(t, db.Where("username = ?", "leo").First(&stored).Error)
	assert.NotEqual(t, "correct horse", stored.Password)
}

func TestRegisterUserRejectsDuplicateUsername(t *testing.T) {
	s, _ := newService(t)
	register(t, s, "leo")
	_, err := s.RegisterUser(context.Background(), RegisterUserInput{Username: "leo", Password: "another one"})
	assert.True(t, errors.Is(err, apperror.ErrConflict))
}

func TestRegisterUserValidation(t *testing.T) {
	s, _ := newService(t)
	cases := map[string]struct {
		in    RegisterUserInput
		field string
	}{
		"missing username": {RegisterUserInput{Password: "correct horse"}, "username"},
		"short password":   {RegisterUserInput{Username: "leo", Password: "short"}, "password"},
		"bad email":        {RegisterUserInput{Username: "leo", Password: "correct horse", Email: "nope"}, "email"},
		"bad username":     {RegisterUserInput{Username: "le o", Password: "correct horse"}, "username"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.RegisterUser(context.Background(), tc.in)
			var verr *apperror.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields, tc.field)
		})
	}
}

func TestLoginAndParseToken(t *testing.T) {
	s, _ := newService(t)
	register(t, s, "leo")

	resp, err := s.LoginUser(context.Background(), LoginInput{Username: "leo", Password: "correct horse"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	a, err := s.ParseToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.True(t, a.Authenticated)
	assert.Equal(t, "leo", a.Username)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	s, _ := newService(t)
	register(t, s, "leo")

	for _, in := range []LoginInput{
		{Username: "leo", Password: "wrong password"},
		{Username: "nobody", Password: "correct horse"},
	} {
		_, err := s.LoginUser(context.Background(), in)
		var verr *apperror.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "non_field_errors")
	}
}

func TestParseTokenRejectsInvalidTokens(t *testing.T) {
	s, _ := newService(t)
	register(t, s, "leo")
	resp, err := s.LoginUser(context.Background(), LoginInput{Username: "leo", Password: "correct horse"})
	require.NoError(t, err)

	other := NewUserService(s.UserRepository, []byte("other-secret"), zap.NewNop())
	_, err = other.ParseToken(context.Background(), resp.Token)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	_, err = s.ParseToken(context.Background(), "not-a-token")
	assert.True(t, errors.Is(err, ErrInvalidToken))

	expired := NewUserService(s.UserRepository, []byte("test-secret"), zap.NewNop())
	expired.Now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	old, err := expired.LoginUser(context.Background(), LoginInput{Username: "leo", Password: "correct horse"})
	require.NoError(t, err)
	_, err = s.ParseToken(context.Background(), old.Token)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	ghost := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Username:       "ghost",
		StandardClaims: jwt.StandardClaims{Subject: "00000000-0000-0000-0000-000000000001"},
	})
	raw, err := ghost.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = s.ParseToken(context.Background(), raw)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestGetAndListUsers(t *testing.T) {
	s, _ := newService(t)
	register(t, s, "zoe")
	register(t, s, "leo")

	dto, err := s.GetUser(context.Background(), "leo")
	require.NoError(t, err)
	assert.Equal(t, "leo", dto.Username)

	_, err = s.GetUser(context.Background(), "nobody")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	page, err := s.ListUsers(context.Background(), "", 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "leo", page.Items[0].Username)

	page, err = s.ListUsers(context.Background(), "zoe", 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
}
