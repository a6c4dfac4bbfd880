package domain

import "time"

type Job struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Title       string    `gorm:"size:191;not null" json:"title"`
	Salary      string    `gorm:"size:64" json:"salary"`
	Location    string    `gorm:"size:191" json:"location"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Job) TableName() string { return "jobs" }

type JobRepository interface {
	List() ([]Job, error)
	FindByID(id string) (*Job, error)
}
