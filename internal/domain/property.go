package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Money is a structured amount, stored in minor units so listings can be
// sorted and compared without parsing display strings.
type Money struct {
	AmountPence int64  `gorm:"column:amount_pence" json:"amountPence"`
	Currency    string `gorm:"column:currency;size:3;default:GBP" json:"currency"`
}

// URLList is an ordered list of image URLs serialized as a JSON column.
type URLList []string

func (l URLList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *URLList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return fmt.Errorf("urllist: cannot scan %T", src)
}

type Property struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:191;not null" json:"name"`
	Price     Money     `gorm:"embedded;embeddedPrefix:price_" json:"price"`
	Bedrooms  int       `json:"bedrooms"`
	Toilets   int       `json:"toilets"`
	Balcony   bool      `json:"balcony"`
	Sqft      int       `json:"sqft"`
	Images    URLList   `gorm:"type:text" json:"images"`
	Details   string    `gorm:"type:text" json:"details"`
	Location  string    `gorm:"size:191" json:"location"`
	Available string    `gorm:"size:7" json:"available"` // "2025-09"
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Property) TableName() string { return "properties" }

type PropertyRepository interface {
	Create(p *Property) error
	FindByID(id string) (*Property, error)
	// List returns newest first, for the "newly arrived" section.
	List(offset, limit int) ([]Property, int64, error)
	Update(p *Property) error
	Delete(id string) error
}
