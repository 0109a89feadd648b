package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/buildtrack/construct-api/internal/auth"
	"github.com/buildtrack/construct-api/internal/constants"
	"github.com/buildtrack/construct-api/internal/models"
)

func setupAuthTestEnv(t *testing.T) (accountTestEnv, *AuthService, *auth.Manager) {
	t.Helper()

	env := setupAccountTestEnv(t)
	tokens := auth.NewManager("test-secret")
	return env, NewAuthService(env.userRepo, tokens), tokens
}

func TestAuthService_Login(t *testing.T) {
	env, authService, tokens := setupAuthTestEnv(t)

	created, err := env.accounts.CreateUser(CreateUserInput{
		Username:        "alice",
		Password:        "supersecret",
		ConfirmPassword: "supersecret",
		Role:            models.RoleManager,
	})
	require.NoError(t, err)

	user, pair, err := authService.Login(LoginInput{
		Username: "alice",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.Equal(t, created.ID, user.ID)

	claims, err := tokens.Parse(pair.Access, constants.TokenTypeAccess)
	require.NoError(t, err)
	require.Equal(t, created.ID, claims.UserID)
	require.Equal(t, models.RoleManager, claims.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	env, authService, _ := setupAuthTestEnv(t)

	_, err := env.accounts.CreateUser(CreateUserInput{
		Username:        "alice",
		Password:        "supersecret",
		ConfirmPassword: "supersecret",
		Role:            models.RoleManager,
	})
	require.NoError(t, err)

	_, _, err = authService.Login(LoginInput{
		Username: "alice",
		Password: "wrong",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	_, authService, _ := setupAuthTestEnv(t)

	_, _, err := authService.Login(LoginInput{
		Username: "nobody",
		Password: "supersecret",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Refresh(t *testing.T) {
	env, authService, tokens := setupAuthTestEnv(t)

	created, err := env.accounts.CreateUser(CreateUserInput{
		Username:        "alice",
		Password:        "supersecret",
		ConfirmPassword: "supersecret",
		Role:            models.RoleManager,
	})
	require.NoError(t, err)

	_, pair, err := authService.Login(LoginInput{
		Username: "alice",
		Password: "supersecret",
	})
	require.NoError(t, err)

	access, err := authService.Refresh(pair.Refresh)
	require.NoError(t, err)

	claims, err := tokens.Parse(access, constants.TokenTypeAccess)
	require.NoError(t, err)
	require.Equal(t, created.ID, claims.UserID)
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	env, authService, _ := setupAuthTestEnv(t)

	_, err := env.accounts.CreateUser(CreateUserInput{
		Username:        "alice",
		Password:        "supersecret",
		ConfirmPassword: "supersecret",
		Role:            models.RoleManager,
	})
	require.NoError(t, err)

	_, pair, err := authService.Login(LoginInput{
		Username: "alice",
		Password: "supersecret",
	})
	require.NoError(t, err)

	_, err = authService.Refresh(pair.Access)
	require.ErrorIs(t, err, ErrInvalidRefresh)
}
