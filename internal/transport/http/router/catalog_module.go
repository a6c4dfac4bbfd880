package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"daffodil-hmo/internal/domain"
	"daffodil-hmo/internal/service"
	httpez "daffodil-hmo/internal/transport/http/ez"
)

// catalogModule is the public, unauthenticated surface: property listings,
// team page, job postings, contact form and job applications.
type catalogModule struct {
	db       *gorm.DB
	catalog  *service.CatalogService
	outreach *service.OutreachService
}

func newCatalogModule(db *gorm.DB, catalog *service.CatalogService, outreach *service.OutreachService) *catalogModule {
	return &catalogModule{db: db, catalog: catalog, outreach: outreach}
}

func (m *catalogModule) Priority() int { return 10 }

func (m *catalogModule) MountAPI(g *gin.RouterGroup) {
	ez := httpez.New(g)

	type pageQ struct {
		Offset int `form:"offset,default=0"`
		Limit  int `form:"limit,default=20"`
	}
	httpez.RegisterAction[pageQ, *service.PropertyPage](ez, m.db, httpez.Action[pageQ, *service.PropertyPage]{
		Method: http.MethodGet,
		Path:   "/properties",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, _ *gorm.DB, in *pageQ) (*service.PropertyPage, error) {
			page, err := m.catalog.ListProperties(c, in.Offset, in.Limit)
			if err != nil {
				return nil, httpez.FromDomain(err)
			}
			return page, nil
		},
	})

	httpez.RegisterAction[struct{}, *domain.Property](ez, m.db, httpez.Action[struct{}, *domain.Property]{
		Method: http.MethodGet,
		Path:   "/properties/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (*domain.Property, error) {
			p, err := m.catalog.GetProperty(c.Param("id"))
			if err != nil {
				return nil, httpez.FromDomain(err)
			}
			return p, nil
		},
	})

	httpez.RegisterAction[struct{}, []domain.TeamMember](ez, m.db, httpez.Action[struct{}, []domain.TeamMember]{
		Method: http.MethodGet,
		Path:   "/team",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) ([]domain.TeamMember, error) {
			ms, err := m.catalog.ListTeam()
			if err != nil {
				return nil, httpez.FromDomain(err)
			}
			return ms, nil
		},
	})

	httpez.RegisterAction[struct{}, []domain.Job](ez, m.db, httpez.Action[struct{}, []domain.Job]{
		Method: http.MethodGet,
		Path:   "/jobs",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) ([]domain.Job, error) {
			js, err := m.catalog.ListJobs()
			if err != nil {
				return nil, httpez.FromDomain(err)
			}
			return js, nil
		},
	})

	httpez.RegisterAction[struct{}, *domain.Job](ez, m.db, httpez.Action[struct{}, *domain.Job]{
		Method: http.MethodGet,
		Path:   "/jobs/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (*domain.Job, error) {
			j, err := m.catalog.GetJob(c.Param("id"))
			if err != nil {
				return nil, httpez.FromDomain(err)
			}
			return j, nil
		},
	})

	type contactIn struct {
		Name    string `json:"name"    binding:"required,max=64"`
		Email   string `json:"email"   binding:"required,email"`
		Message string `json:"message" binding:"required,max=4000"`
	}
	httpez.RegisterAction[contactIn, gin.H](ez, m.db, httpez.Action[contactIn, gin.H]{
		Method: http.MethodPost,
		Path:   "/contact",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, _ *gorm.DB, in *contactIn) (gin.H, error) {
			if err := m.outreach.Contact(in.Name, in.Email, in.Message); err != nil {
				return nil, httpez.FromDomain(err)
			}
			return gin.H{"message": "Message sent"}, nil
		},
	})

	type applyIn struct {
		Name      string `json:"name"      binding:"required,max=64"`
		Email     string `json:"email"     binding:"required,email"`
		CoverNote string `json:"coverNote" binding:"max=4000"`
	}
	httpez.RegisterAction[applyIn, gin.H](ez, m.db, httpez.Action[applyIn, gin.H]{
		Method: http.MethodPost,
		Path:   "/jobs/:id/apply",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, _ *gorm.DB, in *applyIn) (gin.H, error) {
			if err := m.outreach.Apply(c.Param("id"), in.Name, in.Email, in.CoverNote); err != nil {
				return nil, httpez.FromDomain(err)
			}
			return gin.H{"message": "Application received"}, nil
		},
	})
}
