package router

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"daffodil-hmo/internal/core/cache"
	"daffodil-hmo/internal/domain"
	httpez "daffodil-hmo/internal/transport/http/ez"
)

const catalogCachePrefix = "catalog:properties:"

// MountAdminActions wires the dashboard CRUD: catalog records via the
// generic registration, plus user listing and role management.
func MountAdminActions(admin *gin.RouterGroup, db *gorm.DB, cch *cache.Cache) {
	invalidate := func(c *gin.Context) {
		if cch != nil {
			_ = cch.InvalidatePrefix(c, catalogCachePrefix)
		}
	}

	httpez.Crud(httpez.CrudConfig[domain.Property]{
		DB:    db,
		Group: admin,
		Path:  "/properties",
		New:   func() *domain.Property { return &domain.Property{} },
		Hooks: httpez.CrudHooks[domain.Property]{
			BeforeCreate: func(c *gin.Context, p *domain.Property) error {
				if strings.TrimSpace(p.Name) == "" {
					return errors.New("name is required")
				}
				if p.Price.Currency == "" {
					p.Price.Currency = "GBP"
				}
				return nil
			},
			AfterWrite: func(c *gin.Context, _ *domain.Property) { invalidate(c) },
		},
		OrderBy: "created_at DESC",
	})

	httpez.Crud(httpez.CrudConfig[domain.TeamMember]{
		DB:    db,
		Group: admin,
		Path:  "/team",
		New:   func() *domain.TeamMember { return &domain.TeamMember{} },
		Hooks: httpez.CrudHooks[domain.TeamMember]{
			BeforeCreate: func(c *gin.Context, m *domain.TeamMember) error {
				if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.Title) == "" {
					return errors.New("name and title are required")
				}
				return nil
			},
		},
		OrderBy: "created_at ASC",
	})

	httpez.Crud(httpez.CrudConfig[domain.Job]{
		DB:    db,
		Group: admin,
		Path:  "/jobs",
		New:   func() *domain.Job { return &domain.Job{} },
		Hooks: httpez.CrudHooks[domain.Job]{
			BeforeCreate: func(c *gin.Context, j *domain.Job) error {
				if strings.TrimSpace(j.Title) == "" {
					return errors.New("title is required")
				}
				return nil
			},
		},
		OrderBy: "created_at DESC",
	})

	ez := httpez.New(admin)

	// GET /admin/v1/users — paged, with q matching email/name
	type listQ struct {
		Offset int    `form:"offset,default=0"`
		Limit  int    `form:"limit,default=20"`
		Q      string `form:"q"`
	}
	type row struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
		Role  string `json:"role"`
	}
	type listOut struct {
		Total int64 `json:"total"`
		Items []row `json:"items"`
	}
	httpez.RegisterAction[listQ, listOut](ez, db, httpez.Action[listQ, listOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, tx *gorm.DB, in *listQ) (listOut, error) {
			if in.Limit <= 0 || in.Limit > 100 {
				in.Limit = 20
			}
			q := tx.Model(&domain.User{})
			if s := strings.TrimSpace(in.Q); s != "" {
				like := "%" + s + "%"
				q = q.Where("email LIKE ? OR name LIKE ?", like, like)
			}

			var total int64
			if err := q.Count(&total).Error; err != nil {
				return listOut{}, httpez.Internal("count users failed", err)
			}
			var us []domain.User
			if err := q.Order("created_at DESC").Limit(in.Limit).Offset(in.Offset).Find(&us).Error; err != nil {
				return listOut{}, httpez.Internal("list users failed", err)
			}

			out := listOut{Total: total, Items: make([]row, 0, len(us))}
			for _, u := range us {
				out.Items = append(out.Items, row{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role})
			}
			return out, nil
		},
	})

	// PUT /admin/v1/users/:id/role — promote or demote
	type roleIn struct {
		Role string `json:"role" binding:"required,oneof=user admin"`
	}
	httpez.RegisterAction[roleIn, gin.H](ez, db, httpez.Action[roleIn, gin.H]{
		Method: http.MethodPut,
		Path:   "/users/:id/role",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, tx *gorm.DB, in *roleIn) (gin.H, error) {
			id := c.Param("id")
			res := tx.Model(&domain.User{}).Where("id = ?", id).Update("role", in.Role)
			if res.Error != nil {
				return nil, httpez.Internal("update role failed", res.Error)
			}
			if res.RowsAffected == 0 {
				return nil, httpez.NotFound("user not found")
			}
			return gin.H{"id": id, "role": in.Role}, nil
		},
	})
}
