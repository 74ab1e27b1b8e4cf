package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/agrosense/agrosense/pkg/config"
	"github.com/agrosense/agrosense/pkg/errs"
	"github.com/agrosense/agrosense/pkg/helpers"
	"github.com/agrosense/agrosense/pkg/models"
	"github.com/agrosense/agrosense/pkg/storage/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthService(t *testing.T) AuthService {
	t.Helper()

	logger := helpers.SetupLogger(config.Trace, "AgroSense", "ServiceTest")
	engine, err := postgres.NewStorageEngine(logger, config.PluggableStorageEngine{
		Provider: config.SQLite,
		SQLite: config.SQLitePSEConfig{
			DatabasePath: filepath.Join(t.TempDir(), "auth-svc.db"),
		},
	})
	require.NoError(t, err)

	usersRepo, err := engine.GetUsersStorage()
	require.NoError(t, err)

	return NewAuthService(AuthBuilder{
		Logger:       logger,
		UsersStorage: usersRepo,
		Config: config.AuthConfig{
			JWTSigningKey:   "test-signing-key",
			TokenTTLMinutes: 15,
		},
	})
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	auth := setupAuthService(t)

	user, err := auth.Register(ctx, RegisterInput{
		Email:    "farmer@example.com",
		FullName: "Test Farmer",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleFarmer, user.Role, "role defaults to farmer")
	assert.NotEqual(t, "correct-horse", user.PasswordHash)

	out, err := auth.Login(ctx, LoginInput{
		Email:    "farmer@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, user.ID, out.User.ID)

	claims, err := auth.ParseAndVerify(ctx, out.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleFarmer, claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	auth := setupAuthService(t)

	_, err := auth.Register(ctx, RegisterInput{
		Email:    "farmer@example.com",
		FullName: "Test Farmer",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = auth.Register(ctx, RegisterInput{
		Email:    "farmer@example.com",
		FullName: "Impostor",
		Password: "another-pass",
	})
	assert.ErrorIs(t, err, errs.ErrUserAlreadyExists)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	auth := setupAuthService(t)

	_, err := auth.Register(ctx, RegisterInput{
		Email:    "not-an-email",
		FullName: "Test",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, errs.ErrValidateBadRequest)

	_, err = auth.Register(ctx, RegisterInput{
		Email:    "farmer@example.com",
		FullName: "Test",
		Password: "short",
	})
	assert.ErrorIs(t, err, errs.ErrValidateBadRequest, "passwords below 8 chars are rejected")
}

func TestLoginBadCredentials(t *testing.T) {
	ctx := context.Background()
	auth := setupAuthService(t)

	_, err := auth.Register(ctx, RegisterInput{
		Email:    "farmer@example.com",
		FullName: "Test Farmer",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = auth.Login(ctx, LoginInput{Email: "farmer@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, errs.ErrInvalidCredentials)

	_, err = auth.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
}

func TestParseAndVerifyRejectsGarbage(t *testing.T) {
	ctx := context.Background()
	auth := setupAuthService(t)

	_, err := auth.ParseAndVerify(ctx, "not.a.token")
	assert.ErrorIs(t, err, errs.ErrInvalidCredentials)

	_, err = auth.ParseAndVerify(ctx, "")
	assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
}

func TestParseAndVerifyRejectsForeignSignature(t *testing.T) {
	ctx := context.Background()
	auth := setupAuthService(t)
	otherAuth := setupAuthService(t)

	_, err := auth.Register(ctx, RegisterInput{
		Email:    "farmer@example.com",
		FullName: "Test Farmer",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	out, err := auth.Login(ctx, LoginInput{Email: "farmer@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	// Same token against a service with a different key must fail.
	otherBackend, ok := otherAuth.(*AuthServiceBackend)
	require.True(t, ok)
	otherBackend.signingKey = []byte("a-different-key")

	_, err = otherAuth.ParseAndVerify(ctx, out.Token)
	assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
}
