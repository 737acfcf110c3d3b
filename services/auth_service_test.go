package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Username:  "referee1",
		Password:  "s3cret-pass",
		Password2: "s3cret-pass",
		Email:     "referee1@example.com",
		FirstName: "Asha",
		LastName:  "Rao",
	}
}

func newAuthServiceForTest() (AuthService, *fakeUserRepo, *fakeProfileRepo, *fakeTokenRepo) {
	userRepo := newFakeUserRepo()
	profileRepo := newFakeProfileRepo()
	tokenRepo := newFakeTokenRepo()
	svc := NewAuthService(fakeTxRunner{}, userRepo, profileRepo, tokenRepo)
	return svc, userRepo, profileRepo, tokenRepo
}

func TestRegisterCreatesUserAndProfile(t *testing.T) {
	svc, userRepo, profileRepo, _ := newAuthServiceForTest()

	user, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "referee1", user.Username)

	stored, err := userRepo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")))

	profile, err := profileRepo.GetByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.False(t, profile.IsReferee, "new accounts must not be referees")
}

func TestRegisterPasswordMismatch(t *testing.T) {
	svc, userRepo, _, _ := newAuthServiceForTest()

	input := validRegisterInput()
	input.Password2 = "different-pass"
	_, err := svc.Register(context.Background(), input)

	var vErr ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr, "password")
	assert.Empty(t, userRepo.users, "no user row on validation failure")
}

func TestRegisterPasswordPolicy(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"too short", "short1"},
		{"entirely numeric", "1234567890"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, _ := newAuthServiceForTest()
			input := validRegisterInput()
			input.Password = tt.password
			input.Password2 = tt.password

			_, err := svc.Register(context.Background(), input)

			var vErr ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Contains(t, vErr, "password")
		})
	}
}

func TestRegisterMissingFields(t *testing.T) {
	svc, _, _, _ := newAuthServiceForTest()

	input := validRegisterInput()
	input.Email = "not-an-email"
	input.FirstName = ""
	_, err := svc.Register(context.Background(), input)

	var vErr ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr, "email")
	assert.Contains(t, vErr, "first_name")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, userRepo, _, _ := newAuthServiceForTest()

	_, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	input := validRegisterInput()
	input.Email = "other@example.com"
	_, err = svc.Register(context.Background(), input)

	var vErr ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr, "username")
	assert.Len(t, userRepo.users, 1)
}

func TestLoginReturnsStableToken(t *testing.T) {
	svc, _, _, _ := newAuthServiceForTest()

	_, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	first, err := svc.Login(context.Background(), LoginInput{Username: "referee1", Password: "s3cret-pass"})
	require.NoError(t, err)
	require.Len(t, first.Token, 40)
	assert.Equal(t, "referee1", first.Username)
	assert.Equal(t, "referee1@example.com", first.Email)

	second, err := svc.Login(context.Background(), LoginInput{Username: "referee1", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, first.Token, second.Token, "token key must survive repeated logins")
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _, _, _ := newAuthServiceForTest()

	_, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	// Unknown username and wrong password must be indistinguishable.
	_, err = svc.Login(context.Background(), LoginInput{Username: "nobody", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)

	_, err = svc.Login(context.Background(), LoginInput{Username: "referee1", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)
}

func TestLoginMissingFields(t *testing.T) {
	svc, _, _, _ := newAuthServiceForTest()

	_, err := svc.Login(context.Background(), LoginInput{Username: "referee1"})

	var vErr ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr, "password")
}

func TestRegisteredUserHasNoTokenUntilLogin(t *testing.T) {
	svc, _, _, tokenRepo := newAuthServiceForTest()

	user, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	_, ok := tokenRepo.byUser[user.ID]
	assert.False(t, ok, "tokens are issued on login, not registration")

	result, err := svc.Login(context.Background(), LoginInput{Username: "referee1", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, tokenRepo.byUser[user.ID], result.Token)
	assert.Equal(t, user.ID, result.UserID)
}
