package store

import (
	"errors"
	"time"

	"note-service/internal/model"
	"note-service/prometheus"

	"gorm.io/gorm"
)

// UserStore provides the user lookup needed by login.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// FindByEmail returns the user with the given email, or nil if absent.
func (s *UserStore) FindByEmail(email string) (*model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var user model.User
	result := s.db.Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &user, nil
}
