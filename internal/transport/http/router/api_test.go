package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"daffodil-hmo/internal/core/auth"
	"daffodil-hmo/internal/domain"
	"daffodil-hmo/internal/repo"
	"daffodil-hmo/internal/service"
	"daffodil-hmo/internal/testutil"
	"daffodil-hmo/internal/transport/http/router"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []string // "to|subject"
}

func (f *fakeSender) Send(to, subject, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to+"|"+subject)
	return nil
}

// NewAPIEngine feeds the module registry, so the test server is built once
// and shared; tests isolate through their own users and properties.
var (
	buildOnce sync.Once
	testEng   *gin.Engine
	testDB    *gorm.DB
	testJWT   *auth.JWTer
	testMail  *fakeSender
)

func testServer(t *testing.T) (*gin.Engine, *gorm.DB, *auth.JWTer) {
	t.Helper()
	buildOnce.Do(func() {
		gin.SetMode(gin.TestMode)

		db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
			Logger: glogger.Default.LogMode(glogger.Silent),
		})
		if err != nil {
			t.Fatalf("failed to open test database: %v", err)
		}
		if err := db.AutoMigrate(
			&domain.User{}, &domain.Property{}, &domain.Booking{},
			&domain.Favorite{}, &domain.TeamMember{}, &domain.Job{},
		); err != nil {
			t.Fatalf("failed to migrate test database: %v", err)
		}
		testDB = db
		testMail = &fakeSender{}
		testJWT = &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour}

		users := repo.NewUserRepo(testDB)
		deps := router.Deps{
			Auth:      service.NewAuthService(users, nil, testMail, "http://127.0.0.1:8080", 15*time.Minute),
			Bookings:  service.NewBookingService(users, repo.NewBookingRepo(testDB)),
			Favorites: service.NewFavoriteService(users, repo.NewFavoriteRepo(testDB)),
			Catalog: service.NewCatalogService(
				repo.NewPropertyRepo(testDB), repo.NewTeamRepo(testDB), repo.NewJobRepo(testDB), nil, 0),
			Outreach: service.NewOutreachService(repo.NewJobRepo(testDB), testMail, "inbox@example.com"),
		}
		testEng = router.NewAPIEngine(zap.NewNop(), testDB, testJWT, deps)
	})
	return testEng, testDB, testJWT
}

func bearerFor(t *testing.T, jwter *auth.JWTer, u *domain.User) string {
	t.Helper()
	tok, err := jwter.Issue(u.ID, u.Email, u.Role)
	require.NoError(t, err)
	return "Bearer " + tok
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func doJSON(eng *gin.Engine, method, path, bearer string, body any) (*httptest.ResponseRecorder, envelope) {
	var rd *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		rd = bytes.NewReader(raw)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	w := httptest.NewRecorder()
	eng.ServeHTTP(w, req)
	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestMemberRoutesRequireToken(t *testing.T) {
	eng, db, _ := testServer(t)

	w, _ := doJSON(eng, http.MethodGet, "/api/v1/bookings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(eng, http.MethodPost, "/api/v1/favorites", "", gin.H{"propertyId": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var count int64
	db.Model(&domain.Favorite{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestInvalidTokenRejected(t *testing.T) {
	eng, _, _ := testServer(t)

	w, _ := doJSON(eng, http.MethodGet, "/api/v1/me", "Bearer not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBookingCreateThenConflict(t *testing.T) {
	eng, db, jwter := testServer(t)
	u := testutil.CreateTestUser(t, db, "booker@example.com")
	p := testutil.CreateTestProperty(t, db, "3 Crocus Close")
	bearer := bearerFor(t, jwter, u)

	in := gin.H{"propertyId": p.ID, "startDate": "2025-05-01", "endDate": "2025-05-10"}
	w, env := doJSON(eng, http.MethodPost, "/api/v1/bookings", bearer, in)
	require.Equal(t, http.StatusCreated, w.Code, env.Msg)

	var b domain.Booking
	require.NoError(t, json.Unmarshal(env.Data, &b))
	assert.Equal(t, p.ID, b.PropertyID)

	w, env = doJSON(eng, http.MethodPost, "/api/v1/bookings", bearer, in)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Property already booked", env.Msg)
}

func TestBookingCancelByIDRoute(t *testing.T) {
	eng, db, jwter := testServer(t)
	u := testutil.CreateTestUser(t, db, "canceller@example.com")
	p := testutil.CreateTestProperty(t, db, "9 Bluebell Way")
	bearer := bearerFor(t, jwter, u)

	w, env := doJSON(eng, http.MethodPost, "/api/v1/bookings", bearer,
		gin.H{"propertyId": p.ID, "startDate": "2025-06-01", "endDate": "2025-06-03"})
	require.Equal(t, http.StatusCreated, w.Code)
	var b domain.Booking
	require.NoError(t, json.Unmarshal(env.Data, &b))

	w, env = doJSON(eng, http.MethodDelete, "/api/v1/bookings/"+b.ID, bearer, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "Booking cancelled")

	w, _ = doJSON(eng, http.MethodDelete, "/api/v1/bookings/"+b.ID, bearer, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingCancelByPropertyRoute(t *testing.T) {
	eng, db, jwter := testServer(t)
	u := testutil.CreateTestUser(t, db, "bulk@example.com")
	p := testutil.CreateTestProperty(t, db, "14 Snowdrop Street")
	bearer := bearerFor(t, jwter, u)

	for _, r := range [][2]string{{"2025-07-01", "2025-07-03"}, {"2025-08-01", "2025-08-03"}} {
		w, _ := doJSON(eng, http.MethodPost, "/api/v1/bookings", bearer,
			gin.H{"propertyId": p.ID, "startDate": r[0], "endDate": r[1]})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, env := doJSON(eng, http.MethodDelete, "/api/v1/bookings", bearer, gin.H{"propertyId": p.ID})
	assert.Equal(t, http.StatusOK, w.Code)

	var out struct {
		Message string `json:"message"`
		Count   int64  `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "Bookings cancelled", out.Message)
	assert.EqualValues(t, 2, out.Count)
}

func TestFavoriteToggleRoute(t *testing.T) {
	eng, db, jwter := testServer(t)
	u := testutil.CreateTestUser(t, db, "fav@example.com")
	p := testutil.CreateTestProperty(t, db, "2 Primrose Hill")
	bearer := bearerFor(t, jwter, u)

	var out struct {
		Message   string `json:"message"`
		Favorited bool   `json:"favorited"`
	}

	w, env := doJSON(eng, http.MethodPost, "/api/v1/favorites", bearer, gin.H{"propertyId": p.ID})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "Added", out.Message)
	assert.True(t, out.Favorited)

	w, env = doJSON(eng, http.MethodPost, "/api/v1/favorites", bearer, gin.H{"propertyId": p.ID})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "Removed", out.Message)
	assert.False(t, out.Favorited)
}

func TestPropertiesArePublic(t *testing.T) {
	eng, db, _ := testServer(t)
	testutil.CreateTestProperty(t, db, "Public Listing")

	w, env := doJSON(eng, http.MethodGet, "/api/v1/properties?offset=0&limit=5", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Total int64             `json:"total"`
		Items []domain.Property `json:"items"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.GreaterOrEqual(t, page.Total, int64(1))
	assert.NotEmpty(t, page.Items)
}

func TestPropertyNotFound(t *testing.T) {
	eng, _, _ := testServer(t)

	w, _ := doJSON(eng, http.MethodGet, "/api/v1/properties/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMeRoute(t *testing.T) {
	eng, db, jwter := testServer(t)
	u := testutil.CreateTestUser(t, db, "me@example.com")

	w, env := doJSON(eng, http.MethodGet, "/api/v1/me", bearerFor(t, jwter, u), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got domain.User
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, u.Email, got.Email)
}

func TestContactSendsMail(t *testing.T) {
	eng, _, _ := testServer(t)

	before := len(testMail.sent)
	w, _ := doJSON(eng, http.MethodPost, "/api/v1/contact", "",
		gin.H{"name": "Visitor", "email": "visitor@example.com", "message": "Hello"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Greater(t, len(testMail.sent), before)

	// invalid payload never reaches the mailer
	before = len(testMail.sent)
	w, _ = doJSON(eng, http.MethodPost, "/api/v1/contact", "", gin.H{"name": "Visitor"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, before, len(testMail.sent))
}

func TestHealth(t *testing.T) {
	eng, _, _ := testServer(t)

	w, _ := doJSON(eng, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
