package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"linkboard/internal/common"
	"linkboard/internal/server/auth"
	"linkboard/internal/server/config"
)

func testConfig() *config.Config {
	return &config.Config{AppSecret: "test-secret", BcryptCost: bcrypt.MinCost}
}

func newUserServiceForTest() (*UserService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	m := &fakeManager{users: repo}
	return NewUserService(nil, m, testConfig()), repo
}

func TestRegisterIssuesVerifiableToken(t *testing.T) {
	svc, _ := newUserServiceForTest()
	ctx := context.Background()

	payload, err := svc.Register(ctx, "Ann", "a@x.com", "pw")
	require.NoError(t, err)
	require.NotNil(t, payload.User)

	assert.Equal(t, "Ann", payload.User.Name)
	assert.Equal(t, "a@x.com", payload.User.Email)
	assert.Empty(t, payload.User.PasswordHash, "hash must not leave the service")

	userID, ok := auth.UserIDFromToken(payload.Token, []byte("test-secret"))
	require.True(t, ok)
	assert.Equal(t, payload.User.ID, userID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newUserServiceForTest()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ann", "a@x.com", "pw")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other Ann", "a@x.com", "pw2")
	assert.ErrorIs(t, err, common.ErrDuplicateIdentity)
}

func TestLoginAfterSignupSameSubject(t *testing.T) {
	svc, _ := newUserServiceForTest()
	ctx := context.Background()

	signup, err := svc.Register(ctx, "Ann", "a@x.com", "pw")
	require.NoError(t, err)

	login, err := svc.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err)

	signupID, ok := auth.UserIDFromToken(signup.Token, []byte("test-secret"))
	require.True(t, ok)
	loginID, ok := auth.UserIDFromToken(login.Token, []byte("test-secret"))
	require.True(t, ok)

	assert.Equal(t, signupID, loginID)
	assert.Empty(t, login.User.PasswordHash)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newUserServiceForTest()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ann", "a@x.com", "pw")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "a@x.com", "nope")
	assert.ErrorIs(t, err, common.ErrInvalidCredential)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newUserServiceForTest()

	_, err := svc.Login(context.Background(), "nobody@x.com", "pw")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
