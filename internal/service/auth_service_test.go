package service_test

import (
	"context"
	"testing"

	"github.com/dstone/movie-club-server/internal/repository/postgres"
	"github.com/dstone/movie-club-server/internal/service"
	"github.com/dstone/movie-club-server/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, cfg)
	ctx := context.Background()

	tests := []struct {
		name      string
		input     service.RegisterInput
		setup     func()
		wantErr   error
		checkUser bool
	}{
		{
			name: "successful registration",
			input: service.RegisterInput{
				Name:     "newmember",
				Password: "password123",
			},
			checkUser: true,
		},
		{
			name: "duplicate name",
			input: service.RegisterInput{
				Name:     "existingmember",
				Password: "password123",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithName("existingmember").
					Build(t, testDB.DB)
			},
			wantErr: service.ErrNameExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testDB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			result, err := authService.Register(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			if tt.checkUser {
				assert.NotNil(t, result.User)
				assert.Equal(t, tt.input.Name, result.User.Name)
				assert.True(t, result.User.IsActive, "new members join the rotation")
				assert.False(t, result.User.IsAdmin)
				assert.NotEmpty(t, result.AccessToken)
				assert.NotEmpty(t, result.RefreshToken)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, cfg)
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		testDB.Truncate(t)
		user, rawPassword := testutil.NewUserBuilder().
			WithName("loginmember").
			WithPassword("correctpassword").
			Build(t, testDB.DB)

		result, err := authService.Login(ctx, service.LoginInput{
			Name:     "loginmember",
			Password: rawPassword,
		})
		require.NoError(t, err)
		assert.Equal(t, user.ID, result.User.ID)
		assert.NotEmpty(t, result.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		testDB.Truncate(t)
		testutil.NewUserBuilder().
			WithName("loginmember").
			WithPassword("correctpassword").
			Build(t, testDB.DB)

		_, err := authService.Login(ctx, service.LoginInput{
			Name:     "loginmember",
			Password: "wrongpassword",
		})
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown name", func(t *testing.T) {
		testDB.Truncate(t)

		_, err := authService.Login(ctx, service.LoginInput{
			Name:     "ghost",
			Password: "whatever",
		})
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("deactivated account", func(t *testing.T) {
		testDB.Truncate(t)
		_, rawPassword := testutil.NewUserBuilder().
			WithName("retiredmember").
			Deactivated().
			Build(t, testDB.DB)

		_, err := authService.Login(ctx, service.LoginInput{
			Name:     "retiredmember",
			Password: rawPassword,
		})
		assert.ErrorIs(t, err, service.ErrAccountDeactivated)
	})
}

func TestAuthService_ValidateToken(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, cfg)
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		testDB.Truncate(t)

		result, err := authService.Register(ctx, service.RegisterInput{
			Name:     "tokenmember",
			Password: "password123",
		})
		require.NoError(t, err)

		claims, err := authService.ValidateToken(result.AccessToken)
		require.NoError(t, err)

		sub, _ := (*claims)["sub"].(string)
		parsed, err := uuid.Parse(sub)
		require.NoError(t, err)
		assert.Equal(t, result.User.ID, parsed)
		assert.Equal(t, "tokenmember", (*claims)["name"])
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := authService.ValidateToken("not-a-token")
		assert.Error(t, err)
	})
}
