package domain

import "time"

type Booking struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	UserID     string    `gorm:"size:36;not null;index:idx_bookings_user_property" json:"userId"`
	PropertyID string    `gorm:"size:36;not null;index:idx_bookings_user_property" json:"propertyId"`
	StartDate  time.Time `gorm:"not null" json:"startDate"`
	EndDate    time.Time `gorm:"not null" json:"endDate"`
	CreatedAt  time.Time `json:"createdAt"`

	Property *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
}

func (Booking) TableName() string { return "bookings" }

// Overlaps reports whether the two date ranges intersect, endpoints included.
func (b Booking) Overlaps(start, end time.Time) bool {
	return !b.StartDate.After(end) && !b.EndDate.Before(start)
}

type BookingRepository interface {
	// CreateIfAvailable inserts the booking unless the caller already holds a
	// booking on the same property whose date range overlaps. The check and
	// the insert run inside one serialized transaction; ErrConflict is
	// returned when an overlap exists and nothing is written.
	CreateIfAvailable(b *Booking) error
	ListByUser(userID string) ([]Booking, error)
	FindByID(id string) (*Booking, error)
	DeleteByID(id string) (int64, error)
	DeleteByUserProperty(userID, propertyID string) (int64, error)
}
