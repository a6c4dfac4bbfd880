package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"daffodil-hmo/internal/core/auth"
	"daffodil-hmo/internal/domain"
	resp "daffodil-hmo/internal/transport/http/response"
	httpez "daffodil-hmo/internal/transport/http/ez"
	"daffodil-hmo/pkg/utils"
)

type sessionOut struct {
	Token string       `json:"token"`
	IsNew bool         `json:"isNew"`
	User  *domain.User `json:"user"`
}

func issueSession(jwter *auth.JWTer, u *domain.User, isNew bool) (sessionOut, error) {
	tok, err := jwter.Issue(u.ID, u.Email, u.Role)
	if err != nil || tok == "" {
		return sessionOut{}, httpez.Internal("issue token failed", err)
	}
	return sessionOut{Token: tok, IsNew: isNew, User: u}, nil
}

func mountAuthActions(api *gin.RouterGroup, db *gorm.DB, jwter *auth.JWTer, deps Deps) {
	ez := httpez.New(api)

	// GET /auth/google — redirect to consent, state parked in Redis
	api.GET("/auth/google", func(c *gin.Context) {
		state := utils.NewID()
		if err := deps.Cache.RDB.Set(c, "oauthstate:"+state, "1", 10*time.Minute).Err(); err != nil {
			c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, "internal error"))
			return
		}
		c.Redirect(http.StatusTemporaryRedirect, deps.Google.AuthURL(state))
	})

	// GET /auth/google/callback — verify state, exchange code, sign in
	httpez.RegisterAction[struct{}, sessionOut](ez, db, httpez.Action[struct{}, sessionOut]{
		Method: http.MethodGet,
		Path:   "/auth/google/callback",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (sessionOut, error) {
			state, code := c.Query("state"), c.Query("code")
			if state == "" || code == "" {
				return sessionOut{}, httpez.BadRequest("missing state or code")
			}
			if err := deps.Cache.RDB.GetDel(c, "oauthstate:"+state).Err(); err == redis.Nil {
				return sessionOut{}, httpez.Unauthorized("unknown oauth state")
			} else if err != nil {
				return sessionOut{}, httpez.Internal("state lookup failed", err)
			}
			profile, err := deps.Google.Exchange(c, code)
			if err != nil {
				return sessionOut{}, httpez.Unauthorized("google sign-in failed")
			}
			u, isNew, err := deps.Auth.SignIn(profile.Email, profile.Name, profile.Picture)
			if err != nil {
				return sessionOut{}, httpez.FromDomain(err)
			}
			return issueSession(jwter, u, isNew)
		},
	})

	// POST /auth/magic-link — always 200 so addresses can't be probed
	type linkIn struct {
		Email string `json:"email" binding:"required,email"`
	}
	httpez.RegisterAction[linkIn, gin.H](ez, db, httpez.Action[linkIn, gin.H]{
		Method: http.MethodPost,
		Path:   "/auth/magic-link",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, _ *gorm.DB, in *linkIn) (gin.H, error) {
			if err := deps.Auth.RequestMagicLink(c, in.Email); err != nil {
				return nil, httpez.FromDomain(err)
			}
			return gin.H{"message": "Check your email for a sign-in link"}, nil
		},
	})

	// GET /auth/verify — consume the link
	type verifyQ struct {
		Email string `form:"email" binding:"required"`
		Token string `form:"token" binding:"required"`
	}
	httpez.RegisterAction[verifyQ, sessionOut](ez, db, httpez.Action[verifyQ, sessionOut]{
		Method: http.MethodGet,
		Path:   "/auth/verify",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, _ *gorm.DB, in *verifyQ) (sessionOut, error) {
			u, isNew, err := deps.Auth.VerifyMagicLink(c, in.Email, in.Token)
			if err != nil {
				return sessionOut{}, httpez.FromDomain(err)
			}
			return issueSession(jwter, u, isNew)
		},
	})
}

func mountMeAction(g *gin.RouterGroup, db *gorm.DB, deps Deps) {
	ez := httpez.New(g)
	httpez.RegisterAction[struct{}, *domain.User](ez, db, httpez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (*domain.User, error) {
			u, err := deps.Auth.Me(c.GetString("userId"))
			if err != nil {
				return nil, httpez.FromDomain(err)
			}
			return u, nil
		},
	})
}
