package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"daffodil-hmo/internal/domain"
	"daffodil-hmo/internal/service"
	httpez "daffodil-hmo/internal/transport/http/ez"
)

func mountBookingActions(g *gin.RouterGroup, db *gorm.DB, bookings *service.BookingService) {
	ez := httpez.New(g)

	// POST /bookings — gated by the overlap rule
	type createIn struct {
		PropertyID string `json:"propertyId" binding:"required"`
		StartDate  string `json:"startDate"  binding:"required"`
		EndDate    string `json:"endDate"    binding:"required"`
	}
	httpez.RegisterAction[createIn, *domain.Booking](ez, db, httpez.Action[createIn, *domain.Booking]{
		Method: http.MethodPost,
		Path:   "/bookings",
		Binder: httpez.BindJSON,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, _ *gorm.DB, in *createIn) (*domain.Booking, error) {
			b, err := bookings.Create(c.GetString("userId"), in.PropertyID, in.StartDate, in.EndDate)
			if err != nil {
				if errors.Is(err, domain.ErrConflict) {
					return nil, httpez.Conflict("Property already booked")
				}
				return nil, httpez.FromDomain(err)
			}
			return b, nil
		},
	})

	// GET /bookings — caller's bookings with property snapshots
	httpez.RegisterAction[struct{}, []domain.Booking](ez, db, httpez.Action[struct{}, []domain.Booking]{
		Method: http.MethodGet,
		Path:   "/bookings",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) ([]domain.Booking, error) {
			bs, err := bookings.List(c.GetString("userId"))
			if err != nil {
				return nil, httpez.FromDomain(err)
			}
			return bs, nil
		},
	})

	// DELETE /bookings/:id — cancel one booking
	httpez.RegisterAction[struct{}, gin.H](ez, db, httpez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/bookings/:id",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (gin.H, error) {
			if err := bookings.CancelByID(c.GetString("userId"), c.Param("id")); err != nil {
				return nil, httpez.FromDomain(err)
			}
			return gin.H{"message": "Booking cancelled"}, nil
		},
	})

	// DELETE /bookings — cancel everything the caller holds on a property
	type cancelIn struct {
		PropertyID string `json:"propertyId" binding:"required"`
	}
	httpez.RegisterAction[cancelIn, gin.H](ez, db, httpez.Action[cancelIn, gin.H]{
		Method: http.MethodDelete,
		Path:   "/bookings",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, _ *gorm.DB, in *cancelIn) (gin.H, error) {
			n, err := bookings.CancelByProperty(c.GetString("userId"), in.PropertyID)
			if err != nil {
				return nil, httpez.FromDomain(err)
			}
			return gin.H{"message": "Bookings cancelled", "count": n}, nil
		},
	})
}
