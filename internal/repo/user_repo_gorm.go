package repo

import (
	"errors"

	"gorm.io/gorm"

	"store-ratings/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(u *domain.User) error { return r.db.Create(u).Error }

func (r *UserRepo) FindByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.db.First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.db.First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) List() ([]domain.User, error) {
	var users []domain.User
	err := r.db.Order("created_at, id").Find(&users).Error
	return users, err
}

func (r *UserRepo) ListByRole(role string) ([]domain.User, error) {
	var users []domain.User
	err := r.db.Where("role = ?", role).Order("created_at, id").Find(&users).Error
	return users, err
}

func (r *UserRepo) Count() (int64, error) {
	var n int64
	err := r.db.Model(&domain.User{}).Count(&n).Error
	return n, err
}

func (r *UserRepo) UpdatePassword(id, passwordHash string) error {
	return r.db.Model(&domain.User{}).Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}
