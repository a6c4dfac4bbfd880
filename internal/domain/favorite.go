package domain

import "time"

type Favorite struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	UserID     string    `gorm:"size:36;not null;uniqueIndex:uniq_favorites_user_property" json:"userId"`
	PropertyID string    `gorm:"size:36;not null;uniqueIndex:uniq_favorites_user_property" json:"propertyId"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (Favorite) TableName() string { return "favorites" }

type FavoriteRepository interface {
	// Toggle flips membership for (userID, propertyID) atomically and
	// reports whether a favorite exists after the call.
	Toggle(f *Favorite) (added bool, err error)
	ListByUser(userID string) ([]Favorite, error)
}
