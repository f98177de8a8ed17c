package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pensacomp/lms-service/internal/auth"
	"github.com/pensacomp/lms-service/internal/cache"
	"github.com/pensacomp/lms-service/internal/events"
	"github.com/pensacomp/lms-service/internal/mail"
	"github.com/pensacomp/lms-service/internal/validator"
)

type userFixture struct {
	service   UserService
	repo      *mockRepository
	mailer    *mail.MockMailer
	publisher *events.MockEventPublisher
	redis     *miniredis.Miniredis
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := newMockRepository()
	mailer := mail.NewMockMailer()
	publisher := events.NewMockEventPublisher(testLogger())
	tokens := auth.NewTokenManager(auth.Config{
		AccessSecret:     "access",
		RefreshSecret:    "refresh",
		ActivationSecret: "activation",
		AccessTTL:        5 * time.Minute,
		RefreshTTL:       3 * 24 * time.Hour,
		ActivationTTL:    5 * time.Minute,
	})
	sessions := cache.NewSessionStore(client, 7*24*time.Hour)

	service := NewUserService(repo, tokens, sessions, mailer, publisher, testLogger(), validator.New())
	return &userFixture{service: service, repo: repo, mailer: mailer, publisher: publisher, redis: mr}
}

var activationCodeRe = regexp.MustCompile(`\b(\d{4})\b`)

func (f *userFixture) lastMailedCode(t *testing.T) string {
	t.Helper()

	sent := f.mailer.SentMessages()
	require.NotEmpty(t, sent)
	match := activationCodeRe.FindStringSubmatch(sent[len(sent)-1].Body)
	require.NotNil(t, match, "activation mail should contain a 4-digit code")
	return match[1]
}

func registerAndActivate(t *testing.T, f *userFixture, email string) {
	t.Helper()
	ctx := context.Background()

	result, err := f.service.Register(ctx, &validator.RegistrationRequest{
		Name:     "Ana",
		Email:    email,
		Password: "segredo123",
	})
	require.NoError(t, err)

	_, err = f.service.Activate(ctx, &validator.ActivationRequest{
		ActivationToken: result.ActivationToken,
		ActivationCode:  f.lastMailedCode(t),
	})
	require.NoError(t, err)
}

func TestRegisterActivateLoginFlow(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	registerAndActivate(t, f, "ana@example.com")

	user, tokens, err := f.service.Login(ctx, &validator.LoginRequest{
		Email:    "ana@example.com",
		Password: "segredo123",
	})
	require.NoError(t, err)
	assert.True(t, user.IsVerified)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	published := f.publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.TypeUserActivated, published[0].Type)
}

func TestActivateWrongCode(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	result, err := f.service.Register(ctx, &validator.RegistrationRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "segredo123",
	})
	require.NoError(t, err)

	code := f.lastMailedCode(t)
	wrong := "0000"
	if code == wrong {
		wrong = "0001"
	}

	_, err = f.service.Activate(ctx, &validator.ActivationRequest{
		ActivationToken: result.ActivationToken,
		ActivationCode:  wrong,
	})
	assert.ErrorIs(t, err, ErrInvalidActivation)
}

func TestActivateGarbageToken(t *testing.T) {
	f := newUserFixture(t)

	_, err := f.service.Activate(context.Background(), &validator.ActivationRequest{
		ActivationToken: "not-a-token",
		ActivationCode:  "1234",
	})
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	registerAndActivate(t, f, "ana@example.com")

	_, err := f.service.Register(ctx, &validator.RegistrationRequest{
		Name:     "Outra Ana",
		Email:    "ana@example.com",
		Password: "outrasenha",
	})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	registerAndActivate(t, f, "ana@example.com")

	_, _, err := f.service.Login(ctx, &validator.LoginRequest{
		Email:    "ana@example.com",
		Password: "errada",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = f.service.Login(ctx, &validator.LoginRequest{
		Email:    "ninguem@example.com",
		Password: "qualquer",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRotatesPair(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	registerAndActivate(t, f, "ana@example.com")
	_, tokens, err := f.service.Login(ctx, &validator.LoginRequest{
		Email:    "ana@example.com",
		Password: "segredo123",
	})
	require.NoError(t, err)

	user, rotated, err := f.service.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.NotEmpty(t, rotated.AccessToken)
	assert.NotEmpty(t, rotated.RefreshToken)
}

func TestRefreshAfterLogout(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	registerAndActivate(t, f, "ana@example.com")
	user, tokens, err := f.service.Login(ctx, &validator.LoginRequest{
		Email:    "ana@example.com",
		Password: "segredo123",
	})
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, user.ID))

	_, _, err = f.service.Refresh(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestRefreshAfterMirrorExpiry(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	registerAndActivate(t, f, "ana@example.com")
	_, tokens, err := f.service.Login(ctx, &validator.LoginRequest{
		Email:    "ana@example.com",
		Password: "segredo123",
	})
	require.NoError(t, err)

	f.redis.FastForward(8 * 24 * time.Hour)

	_, _, err = f.service.Refresh(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestSocialAuthCreatesVerifiedAccount(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	user, tokens, err := f.service.SocialAuth(ctx, &validator.SocialAuthRequest{
		Email:  "ana@example.com",
		Name:   "Ana",
		Avatar: "https://cdn.example.com/ana.png",
	})
	require.NoError(t, err)
	assert.True(t, user.IsVerified)
	assert.Empty(t, user.Password)
	assert.NotEmpty(t, tokens.AccessToken)

	// Second call logs into the same account.
	again, _, err := f.service.SocialAuth(ctx, &validator.SocialAuthRequest{
		Email: "ana@example.com",
		Name:  "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
}

func TestSocialAccountCannotUseLogin(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	_, _, err := f.service.SocialAuth(ctx, &validator.SocialAuthRequest{
		Email: "ana@example.com",
		Name:  "Ana",
	})
	require.NoError(t, err)

	_, _, err = f.service.Login(ctx, &validator.LoginRequest{
		Email:    "ana@example.com",
		Password: "qualquer",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdatePassword(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	registerAndActivate(t, f, "ana@example.com")
	user, _, err := f.service.Login(ctx, &validator.LoginRequest{
		Email:    "ana@example.com",
		Password: "segredo123",
	})
	require.NoError(t, err)

	_, err = f.service.UpdatePassword(ctx, user.ID, &validator.UpdatePasswordRequest{
		OldPassword: "errada",
		NewPassword: "novasenha1",
	})
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = f.service.UpdatePassword(ctx, user.ID, &validator.UpdatePasswordRequest{
		OldPassword: "segredo123",
		NewPassword: "novasenha1",
	})
	require.NoError(t, err)

	_, _, err = f.service.Login(ctx, &validator.LoginRequest{
		Email:    "ana@example.com",
		Password: "novasenha1",
	})
	assert.NoError(t, err)
}
