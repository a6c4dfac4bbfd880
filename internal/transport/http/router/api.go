package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"daffodil-hmo/internal/core/auth"
	"daffodil-hmo/internal/core/cache"
	"daffodil-hmo/internal/service"
	mdw "daffodil-hmo/internal/transport/http/middleware"
)

// Deps bundles everything the route mounts need.
type Deps struct {
	Auth      *service.AuthService
	Bookings  *service.BookingService
	Favorites *service.FavoriteService
	Catalog   *service.CatalogService
	Outreach  *service.OutreachService
	Google    *auth.GoogleOAuth
	Cache     *cache.Cache
}

func NewAPIEngine(l *zap.Logger, db *gorm.DB, jwter *auth.JWTer, deps Deps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.SimpleRecovery(),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	// public surface registered through the module registry
	Register(newCatalogModule(db, deps.Catalog, deps.Outreach))
	MountAllAPI(api)

	mountAuthActions(api, db, jwter, deps)

	// member surface: everything below resolves a session first
	authUser := api.Group("")
	authUser.Use(mdw.AuthJWT(jwter, ""))
	mountMeAction(authUser, db, deps)
	mountBookingActions(authUser, db, deps.Bookings)
	mountFavoriteActions(authUser, db, deps.Favorites)

	return r
}
