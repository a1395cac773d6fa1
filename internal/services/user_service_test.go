package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railway_station/internal/models"
	"github.com/railway_station/internal/repositories"
)

func newUserFixture(t *testing.T) (UserService, repositories.UserRepository) {
	t.Helper()
	repo := repositories.NewGormUserRepository(newTestDB(t))
	return NewUserService(repo, prefixHasher{}), repo
}

func validRegistration(username string) models.RegistrationInput {
	return models.RegistrationInput{
		Username: username,
		Email:    username + "@railway.com",
		Phone:    "9990000001",
		Password: "secret",
	}
}

func TestRegisterCreatesPlainUser(t *testing.T) {
	svc, repo := newUserFixture(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, validRegistration("ivan"))
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, "hashed:secret", user.PasswordHash)

	stored, err := repo.GetUserByUsername(ctx, "ivan")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, stored.Role)

	exists, err := svc.Exists(ctx, "ivan")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRegisterRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.RegistrationInput)
		rule   string
	}{
		{"blank email", func(in *models.RegistrationInput) { in.Email = " " }, RuleEmailRequired},
		{"bad email", func(in *models.RegistrationInput) { in.Email = "ivan@railway" }, RuleEmailFormat},
		{"phone with plus", func(in *models.RegistrationInput) { in.Phone = "+79990000001" }, RulePhoneFormat},
		{"blank password", func(in *models.RegistrationInput) { in.Password = "" }, RulePasswordRequired},
		{"short password", func(in *models.RegistrationInput) { in.Password = "abc" }, RulePasswordLength},
		{"long password", func(in *models.RegistrationInput) { in.Password = "abcdefghijklmnopqrstu" }, RulePasswordLength},
		{"long username", func(in *models.RegistrationInput) { in.Username = "abcdefghijklmnopqrstu" }, RuleUsernameLength},
		{"blank username", func(in *models.RegistrationInput) { in.Username = "" }, RuleUsernameRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newUserFixture(t)
			in := validRegistration("ivan")
			tt.mutate(&in)
			_, err := svc.Register(context.Background(), in)
			requireRule(t, err, tt.rule)
		})
	}
}

func TestRegisterPasswordLengthCountsCharacters(t *testing.T) {
	svc, _ := newUserFixture(t)
	in := validRegistration("ivan")
	in.Password = "пароль"
	_, err := svc.Register(context.Background(), in)
	assert.NoError(t, err)
}

func TestRegisterDuplicates(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, validRegistration("ivan"))
	require.NoError(t, err)

	cases := []struct {
		name  string
		in    models.RegistrationInput
		field string
	}{
		{"username", models.RegistrationInput{Username: "ivan", Email: "", Phone: "", Password: ""}, "username"},
		{"email", models.RegistrationInput{Username: "petr", Email: "ivan@railway.com", Phone: "9990000002", Password: "secret"}, "email"},
		{"phone", models.RegistrationInput{Username: "petr", Email: "petr@railway.com", Phone: "9990000001", Password: "secret"}, "phone"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDuplicateKey))
			var dup *DuplicateKeyError
			require.True(t, errors.As(err, &dup))
			assert.Equal(t, tc.field, dup.Field)
		})
	}
}

func TestEnsureUserSeedsOnce(t *testing.T) {
	svc, repo := newUserFixture(t)
	ctx := context.Background()
	admin := SeedAccount{Username: "admin", Password: "admin", Email: "admin@railway.com", Phone: "+79991112233", Role: models.RoleAdmin}

	created, err := svc.EnsureUser(ctx, admin)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureUser(ctx, admin)
	require.NoError(t, err)
	assert.False(t, created)

	stored, err := repo.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, stored.Role)
	assert.Equal(t, "+79991112233", stored.Phone, "seeding bypasses registration rules")
}

func TestAuthenticateLookup(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, validRegistration("ivan"))
	require.NoError(t, err)

	creds, err := svc.AuthenticateLookup(ctx, "ivan")
	require.NoError(t, err)
	assert.Equal(t, "ivan", creds.Username)
	assert.Equal(t, "hashed:secret", creds.PasswordHash)
	assert.Equal(t, models.RoleUser, creds.Role)

	_, err = svc.AuthenticateLookup(ctx, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRole(t *testing.T) {
	svc, repo := newUserFixture(t)
	ctx := context.Background()
	_, err := svc.EnsureUser(ctx, SeedAccount{Username: "admin", Password: "admin", Email: "a@r.com", Phone: "1", Role: models.RoleAdmin})
	require.NoError(t, err)
	user, err := svc.Register(ctx, validRegistration("ivan"))
	require.NoError(t, err)
	admin, err := repo.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)

	t.Run("promotes another user", func(t *testing.T) {
		require.NoError(t, svc.UpdateRole(ctx, user.ID, models.RoleAdmin, "admin"))
		stored, err := repo.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, stored.Role)
	})

	t.Run("cannot change own role", func(t *testing.T) {
		err := svc.UpdateRole(ctx, admin.ID, models.RoleUser, "admin")
		assert.ErrorIs(t, err, ErrSelfRoleChangeForbidden)
		stored, err := repo.GetUserByID(ctx, admin.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, stored.Role)
	})

	t.Run("unknown target", func(t *testing.T) {
		assert.ErrorIs(t, svc.UpdateRole(ctx, 999, models.RoleUser, "admin"), ErrUserNotFound)
	})

	t.Run("unknown acting user", func(t *testing.T) {
		assert.ErrorIs(t, svc.UpdateRole(ctx, user.ID, models.RoleUser, "ghost"), ErrUserNotFound)
	})

	t.Run("unknown role", func(t *testing.T) {
		err := svc.UpdateRole(ctx, user.ID, models.Role("ROLE_ROOT"), "admin")
		requireRule(t, err, RuleRoleUnknown)
	})
}

func TestListUsersOrderedByID(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()
	for i, name := range []string{"zoe", "adam"} {
		in := validRegistration(name)
		in.Phone = []string{"9990000001", "9990000002"}[i]
		_, err := svc.Register(ctx, in)
		require.NoError(t, err)
	}
	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "zoe", users[0].Username)
	assert.Equal(t, "adam", users[1].Username)
}
