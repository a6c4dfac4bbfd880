package repo

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"daffodil-hmo/internal/domain"
)

type BookingRepo struct{ db *gorm.DB }

func NewBookingRepo(db *gorm.DB) *BookingRepo { return &BookingRepo{db: db} }

// CreateIfAvailable serializes concurrent creates on the same property by
// locking the property row for the duration of the transaction, then checks
// the inclusive-overlap rule before inserting. Closes the check-then-act
// race that a plain query-then-create sequence has.
func (r *BookingRepo) CreateIfAvailable(b *domain.Booking) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&domain.Property{}).Where("id = ?", b.PropertyID)
		if tx.Dialector.Name() != "sqlite" {
			// sqlite has no row locks; its transactions are serialized anyway
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var prop domain.Property
		if err := q.First(&prop).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		var clash int64
		err := tx.Model(&domain.Booking{}).
			Where("user_id = ? AND property_id = ?", b.UserID, b.PropertyID).
			Where("start_date <= ? AND end_date >= ?", b.EndDate, b.StartDate).
			Count(&clash).Error
		if err != nil {
			return err
		}
		if clash > 0 {
			return domain.ErrConflict
		}
		return tx.Create(b).Error
	})
}

func (r *BookingRepo) ListByUser(userID string) ([]domain.Booking, error) {
	var bs []domain.Booking
	err := r.db.Preload("Property").
		Where("user_id = ?", userID).
		Order("start_date asc").
		Find(&bs).Error
	return bs, err
}

func (r *BookingRepo) FindByID(id string) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &b, err
}

func (r *BookingRepo) DeleteByID(id string) (int64, error) {
	res := r.db.Where("id = ?", id).Delete(&domain.Booking{})
	return res.RowsAffected, res.Error
}

func (r *BookingRepo) DeleteByUserProperty(userID, propertyID string) (int64, error) {
	res := r.db.Where("user_id = ? AND property_id = ?", userID, propertyID).
		Delete(&domain.Booking{})
	return res.RowsAffected, res.Error
}
