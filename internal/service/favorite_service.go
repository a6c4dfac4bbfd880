package service

import (
	"strings"

	"daffodil-hmo/internal/domain"
	"daffodil-hmo/pkg/utils"
)

type FavoriteService struct {
	users     domain.UserRepository
	favorites domain.FavoriteRepository
}

func NewFavoriteService(users domain.UserRepository, favorites domain.FavoriteRepository) *FavoriteService {
	return &FavoriteService{users: users, favorites: favorites}
}

// Toggle flips the favorite edge and reports whether it now exists.
func (s *FavoriteService) Toggle(userID, propertyID string) (added bool, err error) {
	if userID == "" {
		return false, domain.ErrUnauthorized
	}
	u, err := s.users.FindByID(userID)
	if err != nil {
		return false, err
	}
	if u == nil {
		return false, domain.ErrNotFound
	}
	if strings.TrimSpace(propertyID) == "" {
		return false, domain.ErrInvalidInput
	}
	return s.favorites.Toggle(&domain.Favorite{
		ID:         utils.NewID(),
		UserID:     u.ID,
		PropertyID: propertyID,
	})
}

func (s *FavoriteService) List(userID string) ([]domain.Favorite, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	u, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return s.favorites.ListByUser(u.ID)
}
