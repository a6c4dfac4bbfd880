package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"daffodil-hmo/internal/domain"
	"daffodil-hmo/internal/repo"
	"daffodil-hmo/internal/service"
	"daffodil-hmo/internal/testutil"
	"daffodil-hmo/pkg/utils"
)

func setupFavoriteService(t *testing.T) (*service.FavoriteService, *domain.User, *domain.Property, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	u := testutil.CreateTestUser(t, db, "guest@example.com")
	p := testutil.CreateTestProperty(t, db, "12 Daffodil Road")
	svc := service.NewFavoriteService(repo.NewUserRepo(db), repo.NewFavoriteRepo(db))
	return svc, u, p, db
}

func TestFavoriteToggle_AddThenRemove(t *testing.T) {
	svc, u, p, db := setupFavoriteService(t)

	added, err := svc.Toggle(u.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, added)

	var count int64
	db.Model(&domain.Favorite{}).Where("user_id = ? AND property_id = ?", u.ID, p.ID).Count(&count)
	assert.EqualValues(t, 1, count)

	added, err = svc.Toggle(u.ID, p.ID)
	require.NoError(t, err)
	assert.False(t, added)

	db.Model(&domain.Favorite{}).Where("user_id = ? AND property_id = ?", u.ID, p.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestFavoriteToggle_NeverDuplicates(t *testing.T) {
	svc, u, p, db := setupFavoriteService(t)

	for i := 0; i < 5; i++ {
		_, err := svc.Toggle(u.ID, p.ID)
		require.NoError(t, err)
	}

	var count int64
	db.Model(&domain.Favorite{}).Where("user_id = ?", u.ID).Count(&count)
	assert.LessOrEqual(t, count, int64(1))
}

func TestFavoriteToggle_AuthTaxonomy(t *testing.T) {
	svc, _, p, _ := setupFavoriteService(t)

	_, err := svc.Toggle("", p.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.Toggle(utils.NewID(), p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFavoriteToggle_EmptyProperty(t *testing.T) {
	svc, u, _, _ := setupFavoriteService(t)

	_, err := svc.Toggle(u.ID, "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFavoriteList(t *testing.T) {
	svc, u, p, db := setupFavoriteService(t)
	p2 := testutil.CreateTestProperty(t, db, "7 Tulip Lane")

	_, err := svc.Toggle(u.ID, p.ID)
	require.NoError(t, err)
	_, err = svc.Toggle(u.ID, p2.ID)
	require.NoError(t, err)

	fs, err := svc.List(u.ID)
	require.NoError(t, err)
	assert.Len(t, fs, 2)

	// other users see their own list only
	other := testutil.CreateTestUser(t, db, "other@example.com")
	fs, err = svc.List(other.ID)
	require.NoError(t, err)
	assert.Empty(t, fs)
}

func TestFavoriteList_Unauthorized(t *testing.T) {
	svc, _, _, _ := setupFavoriteService(t)

	_, err := svc.List("")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
