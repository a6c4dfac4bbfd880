package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"daffodil-hmo/internal/domain"
	"daffodil-hmo/internal/service"
	httpez "daffodil-hmo/internal/transport/http/ez"
)

func mountFavoriteActions(g *gin.RouterGroup, db *gorm.DB, favorites *service.FavoriteService) {
	ez := httpez.New(g)

	// POST /favorites — toggle semantics: add if absent, remove if present
	type toggleIn struct {
		PropertyID string `json:"propertyId" binding:"required"`
	}
	httpez.RegisterAction[toggleIn, gin.H](ez, db, httpez.Action[toggleIn, gin.H]{
		Method: http.MethodPost,
		Path:   "/favorites",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, _ *gorm.DB, in *toggleIn) (gin.H, error) {
			added, err := favorites.Toggle(c.GetString("userId"), in.PropertyID)
			if err != nil {
				return nil, httpez.FromDomain(err)
			}
			msg := "Removed"
			if added {
				msg = "Added"
			}
			return gin.H{"message": msg, "favorited": added}, nil
		},
	})

	// GET /favorites — property references only; callers resolve details
	httpez.RegisterAction[struct{}, []domain.Favorite](ez, db, httpez.Action[struct{}, []domain.Favorite]{
		Method: http.MethodGet,
		Path:   "/favorites",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) ([]domain.Favorite, error) {
			fs, err := favorites.List(c.GetString("userId"))
			if err != nil {
				return nil, httpez.FromDomain(err)
			}
			return fs, nil
		},
	})
}
