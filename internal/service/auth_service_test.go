package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daffodil-hmo/internal/domain"
	"daffodil-hmo/internal/repo"
	"daffodil-hmo/internal/service"
	"daffodil-hmo/internal/testutil"
	"daffodil-hmo/pkg/utils"
)

func setupAuthService(t *testing.T) (*service.AuthService, domain.UserRepository) {
	db := testutil.SetupTestDB(t)
	users := repo.NewUserRepo(db)
	// magic-link paths need Redis and SMTP; these tests stay on the DB side
	svc := service.NewAuthService(users, nil, nil, "http://127.0.0.1:8080", 0)
	return svc, users
}

func TestSignIn_CreatesOnFirstVisit(t *testing.T) {
	svc, _ := setupAuthService(t)

	u, isNew, err := svc.SignIn("Jane@Example.com", "Jane", "https://img.example/jane.png")
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, "jane@example.com", u.Email)
	assert.Equal(t, "Jane", u.Name)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.NotEmpty(t, u.ID)
}

func TestSignIn_ReturnsExisting(t *testing.T) {
	svc, _ := setupAuthService(t)

	first, _, err := svc.SignIn("jane@example.com", "Jane", "")
	require.NoError(t, err)

	again, isNew, err := svc.SignIn("jane@example.com", "Someone Else", "")
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "Jane", again.Name)
}

func TestSignIn_RefreshesImage(t *testing.T) {
	svc, users := setupAuthService(t)

	u, _, err := svc.SignIn("jane@example.com", "Jane", "https://img.example/old.png")
	require.NoError(t, err)

	_, _, err = svc.SignIn("jane@example.com", "Jane", "https://img.example/new.png")
	require.NoError(t, err)

	got, err := users.FindByID(u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "https://img.example/new.png", got.Image)
}

func TestSignIn_DerivesNameFromEmail(t *testing.T) {
	svc, _ := setupAuthService(t)

	u, _, err := svc.SignIn("sam@example.com", "", "")
	require.NoError(t, err)
	assert.Equal(t, "sam", u.Name)
}

func TestSignIn_EmptyEmail(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, _, err := svc.SignIn("  ", "x", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMe_Taxonomy(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, err := svc.Me("")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.Me(utils.NewID())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	u, _, err := svc.SignIn("jane@example.com", "Jane", "")
	require.NoError(t, err)
	got, err := svc.Me(u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)
}

func TestEnsureAdmins(t *testing.T) {
	svc, users := setupAuthService(t)

	// pre-existing plain user gets promoted, unknown email gets created
	existing, _, err := svc.SignIn("ops@example.com", "Ops", "")
	require.NoError(t, err)
	require.Equal(t, domain.RoleUser, existing.Role)

	err = svc.EnsureAdmins([]string{"ops@example.com", "", "Boss@Example.com"})
	require.NoError(t, err)

	got, err := users.FindByEmail("ops@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.RoleAdmin, got.Role)

	got, err = users.FindByEmail("boss@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.RoleAdmin, got.Role)

	// idempotent
	require.NoError(t, svc.EnsureAdmins([]string{"ops@example.com"}))
}
