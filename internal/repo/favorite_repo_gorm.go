package repo

import (
	"gorm.io/gorm"

	"daffodil-hmo/internal/domain"
)

type FavoriteRepo struct{ db *gorm.DB }

func NewFavoriteRepo(db *gorm.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

// Toggle deletes the (user, property) edge if it exists, otherwise inserts
// it. The delete-first shape plus the unique index on (user_id, property_id)
// keeps the membership at most one row even under double submits.
func (r *FavoriteRepo) Toggle(f *domain.Favorite) (bool, error) {
	added := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND property_id = ?", f.UserID, f.PropertyID).
			Delete(&domain.Favorite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		if err := tx.Create(f).Error; err != nil {
			return err
		}
		added = true
		return nil
	})
	return added, err
}

func (r *FavoriteRepo) ListByUser(userID string) ([]domain.Favorite, error) {
	var fs []domain.Favorite
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&fs).Error
	return fs, err
}
