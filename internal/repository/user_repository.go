package repository

import (
	"time"

	"leave-service/internal/model"
	"leave-service/prometheus"

	"gorm.io/gorm"
)

// UserRepository provides access to the user collection
type UserRepository interface {
	Create(user *model.User) error
	GetByID(id uint) (*model.User, error)
	GetByEmail(email string) (*model.User, error)
	ListByRole(role string) ([]model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a GORM-backed user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	return r.db.Create(user).Error
}

func (r *userRepository) GetByID(id uint) (*model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ListByRole(role string) ([]model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var users []model.User
	if err := r.db.Where("role = ?", role).Order("id asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
