package service

import (
	"strings"
	"time"

	"daffodil-hmo/internal/domain"
	"daffodil-hmo/pkg/utils"
)

const dateLayout = "2006-01-02"

type BookingService struct {
	users    domain.UserRepository
	bookings domain.BookingRepository
}

func NewBookingService(users domain.UserRepository, bookings domain.BookingRepository) *BookingService {
	return &BookingService{users: users, bookings: bookings}
}

func (s *BookingService) resolveUser(userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	u, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		// valid session but the user record is gone
		return nil, domain.ErrNotFound
	}
	return u, nil
}

// Create books the property for [startDate, endDate] unless the user already
// holds an overlapping booking on it. Dates are inclusive on both ends.
func (s *BookingService) Create(userID, propertyID, startDate, endDate string) (*domain.Booking, error) {
	u, err := s.resolveUser(userID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(propertyID) == "" || startDate == "" || endDate == "" {
		return nil, domain.ErrInvalidInput
	}
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if start.After(end) {
		return nil, domain.ErrInvalidInput
	}

	b := &domain.Booking{
		ID:         utils.NewID(),
		UserID:     u.ID,
		PropertyID: propertyID,
		StartDate:  start,
		EndDate:    end,
	}
	if err := s.bookings.CreateIfAvailable(b); err != nil {
		return nil, err
	}
	return b, nil
}

// CancelByID removes a single booking. Bookings owned by somebody else look
// the same as missing ones to the caller.
func (s *BookingService) CancelByID(userID, bookingID string) error {
	u, err := s.resolveUser(userID)
	if err != nil {
		return err
	}
	if bookingID == "" {
		return domain.ErrInvalidInput
	}
	b, err := s.bookings.FindByID(bookingID)
	if err != nil {
		return err
	}
	if b == nil || b.UserID != u.ID {
		return domain.ErrNotFound
	}
	n, err := s.bookings.DeleteByID(bookingID)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CancelByProperty removes every booking the user holds on the property.
func (s *BookingService) CancelByProperty(userID, propertyID string) (int64, error) {
	u, err := s.resolveUser(userID)
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(propertyID) == "" {
		return 0, domain.ErrInvalidInput
	}
	n, err := s.bookings.DeleteByUserProperty(u.ID, propertyID)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, domain.ErrNotFound
	}
	return n, nil
}

// List returns the user's bookings with the property snapshot joined in.
func (s *BookingService) List(userID string) ([]domain.Booking, error) {
	u, err := s.resolveUser(userID)
	if err != nil {
		return nil, err
	}
	return s.bookings.ListByUser(u.ID)
}
