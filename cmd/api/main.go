package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"daffodil-hmo/internal/core/auth"
	"daffodil-hmo/internal/core/cache"
	"daffodil-hmo/internal/core/config"
	"daffodil-hmo/internal/core/database"
	"daffodil-hmo/internal/core/logger"
	"daffodil-hmo/internal/core/server"
	"daffodil-hmo/internal/domain"
	"daffodil-hmo/internal/mail"
	"daffodil-hmo/internal/repo"
	"daffodil-hmo/internal/service"
	"daffodil-hmo/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := newLogger(cfg)
	defer cleanup()

	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(
			&domain.User{},
			&domain.Property{},
			&domain.Booking{},
			&domain.Favorite{},
			&domain.TeamMember{},
			&domain.Job{},
		); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}
	cch := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	mailer := mail.New(mail.Options{
		Host:      cfg.Mail.Host,
		Port:      cfg.Mail.Port,
		Username:  cfg.Mail.Username,
		Password:  cfg.Mail.Password,
		FromName:  cfg.Mail.FromName,
		FromEmail: cfg.Mail.FromEmail,
	})

	userRepo := repo.NewUserRepo(db)
	authSvc := service.NewAuthService(userRepo, cch, mailer, cfg.App.BaseURL,
		time.Duration(cfg.Cache.MagicLinkTTLMin)*time.Minute)
	if err := authSvc.EnsureAdmins(cfg.App.AdminEmails); err != nil {
		log.Fatal("admin bootstrap failed", zap.Error(err))
	}

	deps := router.Deps{
		Auth:      authSvc,
		Bookings:  service.NewBookingService(userRepo, repo.NewBookingRepo(db)),
		Favorites: service.NewFavoriteService(userRepo, repo.NewFavoriteRepo(db)),
		Catalog: service.NewCatalogService(
			repo.NewPropertyRepo(db), repo.NewTeamRepo(db), repo.NewJobRepo(db),
			cch, time.Duration(cfg.Cache.CatalogTTLSec)*time.Second),
		Outreach: service.NewOutreachService(repo.NewJobRepo(db), mailer, cfg.Mail.InboxTo),
		Google: auth.NewGoogleOAuth(
			cfg.OAuth.GoogleClientID, cfg.OAuth.GoogleClientSecret, cfg.OAuth.GoogleRedirectURL),
		Cache: cch,
	}
	r := router.NewAPIEngine(log, db, jwter, deps)

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("api start FAILED", zap.Error(err))
		}
	}()
	log.Info("api started SUCCESS")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("api stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, func()) {
	if cfg.Log.File != "" {
		return logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File,
			cfg.Log.MaxSizeMB, cfg.Log.MaxBackups, cfg.Log.MaxAgeDays, cfg.Log.Compress)
	}
	return logger.New(cfg.Log.Level, cfg.Log.JSON)
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err), zap.String("dsn", database.MaskDSN(cfg.DB.DSN)))
	}
	return db
}
