package domain

import "time"

type TeamMember struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:64;not null" json:"name"`
	Title     string    `gorm:"size:64;not null" json:"title"`
	Bio       string    `gorm:"type:text" json:"bio"`
	Image     string    `gorm:"size:255" json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (TeamMember) TableName() string { return "team_members" }

type TeamRepository interface {
	List() ([]TeamMember, error)
}
