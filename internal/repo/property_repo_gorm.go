package repo

import (
	"errors"

	"gorm.io/gorm"

	"daffodil-hmo/internal/domain"
)

type PropertyRepo struct{ db *gorm.DB }

func NewPropertyRepo(db *gorm.DB) *PropertyRepo { return &PropertyRepo{db: db} }

func (r *PropertyRepo) Create(p *domain.Property) error { return r.db.Create(p).Error }

func (r *PropertyRepo) FindByID(id string) (*domain.Property, error) {
	var p domain.Property
	err := r.db.First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *PropertyRepo) List(offset, limit int) ([]domain.Property, int64, error) {
	var ps []domain.Property
	tx := r.db.Model(&domain.Property{})
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	// newest first: drives the "newly arrived" section
	if err := tx.Offset(offset).Limit(limit).Order("created_at desc").Find(&ps).Error; err != nil {
		return nil, 0, err
	}
	return ps, total, nil
}

func (r *PropertyRepo) Update(p *domain.Property) error { return r.db.Save(p).Error }

func (r *PropertyRepo) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&domain.Property{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
