package repo

import (
	"errors"

	"gorm.io/gorm"

	"daffodil-hmo/internal/domain"
)

// Content repos back the public team/jobs pages. Admin CRUD goes through the
// generic ez registration instead.

type TeamRepo struct{ db *gorm.DB }

func NewTeamRepo(db *gorm.DB) *TeamRepo { return &TeamRepo{db: db} }

func (r *TeamRepo) List() ([]domain.TeamMember, error) {
	var ms []domain.TeamMember
	err := r.db.Order("created_at asc").Find(&ms).Error
	return ms, err
}

type JobRepo struct{ db *gorm.DB }

func NewJobRepo(db *gorm.DB) *JobRepo { return &JobRepo{db: db} }

func (r *JobRepo) List() ([]domain.Job, error) {
	var js []domain.Job
	err := r.db.Order("created_at desc").Find(&js).Error
	return js, err
}

func (r *JobRepo) FindByID(id string) (*domain.Job, error) {
	var j domain.Job
	err := r.db.First(&j, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &j, err
}
