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

func setupBookingService(t *testing.T) (*service.BookingService, *domain.User, *domain.Property, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	u := testutil.CreateTestUser(t, db, "guest@example.com")
	p := testutil.CreateTestProperty(t, db, "12 Daffodil Road")
	svc := service.NewBookingService(repo.NewUserRepo(db), repo.NewBookingRepo(db))
	return svc, u, p, db
}

func TestBookingCreate_Success(t *testing.T) {
	svc, u, p, _ := setupBookingService(t)

	b, err := svc.Create(u.ID, p.ID, "2025-03-01", "2025-03-10")
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, u.ID, b.UserID)
	assert.Equal(t, p.ID, b.PropertyID)
}

func TestBookingCreate_OverlapConflicts(t *testing.T) {
	svc, u, p, _ := setupBookingService(t)

	_, err := svc.Create(u.ID, p.ID, "2025-03-01", "2025-03-10")
	require.NoError(t, err)

	_, err = svc.Create(u.ID, p.ID, "2025-03-05", "2025-03-20")
	assert.ErrorIs(t, err, domain.ErrConflict)

	// inclusive endpoints: touching the last booked day still conflicts
	_, err = svc.Create(u.ID, p.ID, "2025-03-10", "2025-03-12")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestBookingCreate_AdjacentRangeSucceeds(t *testing.T) {
	svc, u, p, _ := setupBookingService(t)

	_, err := svc.Create(u.ID, p.ID, "2025-03-01", "2025-03-10")
	require.NoError(t, err)

	_, err = svc.Create(u.ID, p.ID, "2025-03-11", "2025-03-20")
	assert.NoError(t, err)
}

func TestBookingCreate_ConflictIsPerUser(t *testing.T) {
	svc, u, p, db := setupBookingService(t)

	_, err := svc.Create(u.ID, p.ID, "2025-03-01", "2025-03-10")
	require.NoError(t, err)

	// the rule scopes to user+property, so another guest books freely
	other := testutil.CreateTestUser(t, db, "other@example.com")
	_, err = svc.Create(other.ID, p.ID, "2025-03-01", "2025-03-10")
	assert.NoError(t, err)
}

func TestBookingCreate_Validation(t *testing.T) {
	svc, u, p, _ := setupBookingService(t)

	_, err := svc.Create(u.ID, "", "2025-03-01", "2025-03-10")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Create(u.ID, p.ID, "", "2025-03-10")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Create(u.ID, p.ID, "not-a-date", "2025-03-10")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// start after end
	_, err = svc.Create(u.ID, p.ID, "2025-03-10", "2025-03-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBookingCreate_AuthTaxonomy(t *testing.T) {
	svc, _, p, _ := setupBookingService(t)

	_, err := svc.Create("", p.ID, "2025-03-01", "2025-03-10")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// session id that resolves to no user record
	_, err = svc.Create(utils.NewID(), p.ID, "2025-03-01", "2025-03-10")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingCreate_UnknownProperty(t *testing.T) {
	svc, u, _, _ := setupBookingService(t)

	_, err := svc.Create(u.ID, utils.NewID(), "2025-03-01", "2025-03-10")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingCancelByID(t *testing.T) {
	svc, u, p, _ := setupBookingService(t)

	b, err := svc.Create(u.ID, p.ID, "2025-03-01", "2025-03-10")
	require.NoError(t, err)

	require.NoError(t, svc.CancelByID(u.ID, b.ID))

	// gone now
	assert.ErrorIs(t, svc.CancelByID(u.ID, b.ID), domain.ErrNotFound)

	// and the range is free again
	_, err = svc.Create(u.ID, p.ID, "2025-03-01", "2025-03-10")
	assert.NoError(t, err)
}

func TestBookingCancelByID_OtherOwnerLooksMissing(t *testing.T) {
	svc, u, p, db := setupBookingService(t)

	b, err := svc.Create(u.ID, p.ID, "2025-03-01", "2025-03-10")
	require.NoError(t, err)

	other := testutil.CreateTestUser(t, db, "other@example.com")
	assert.ErrorIs(t, svc.CancelByID(other.ID, b.ID), domain.ErrNotFound)

	// still there for the real owner
	bs, err := svc.List(u.ID)
	require.NoError(t, err)
	assert.Len(t, bs, 1)
}

func TestBookingCancelByProperty(t *testing.T) {
	svc, u, p, _ := setupBookingService(t)

	// nothing there yet
	_, err := svc.CancelByProperty(u.ID, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Create(u.ID, p.ID, "2025-03-01", "2025-03-10")
	require.NoError(t, err)
	_, err = svc.Create(u.ID, p.ID, "2025-04-01", "2025-04-10")
	require.NoError(t, err)

	n, err := svc.CancelByProperty(u.ID, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	bs, err := svc.List(u.ID)
	require.NoError(t, err)
	assert.Empty(t, bs)
}

func TestBookingList_JoinsProperty(t *testing.T) {
	svc, u, p, _ := setupBookingService(t)

	_, err := svc.Create(u.ID, p.ID, "2025-03-01", "2025-03-10")
	require.NoError(t, err)

	bs, err := svc.List(u.ID)
	require.NoError(t, err)
	require.Len(t, bs, 1)
	require.NotNil(t, bs[0].Property)
	assert.Equal(t, p.Name, bs[0].Property.Name)
}

func TestBookingList_Unauthorized(t *testing.T) {
	svc, _, _, _ := setupBookingService(t)

	_, err := svc.List("")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestBookingNoOverlapAfterCreates(t *testing.T) {
	svc, u, p, _ := setupBookingService(t)

	ranges := [][2]string{
		{"2025-03-01", "2025-03-05"},
		{"2025-03-06", "2025-03-08"},
		{"2025-03-03", "2025-03-07"}, // clashes with both above
		{"2025-03-09", "2025-03-09"},
		{"2025-02-20", "2025-03-02"}, // clashes with the first
	}
	for _, r := range ranges {
		_, _ = svc.Create(u.ID, p.ID, r[0], r[1])
	}

	bs, err := svc.List(u.ID)
	require.NoError(t, err)
	for i := range bs {
		for j := i + 1; j < len(bs); j++ {
			assert.False(t, bs[i].Overlaps(bs[j].StartDate, bs[j].EndDate),
				"bookings %d and %d overlap", i, j)
		}
	}
}
