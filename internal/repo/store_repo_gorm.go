package repo

import (
	"errors"

	"gorm.io/gorm"

	"store-ratings/internal/domain"
)

type StoreRepo struct{ db *gorm.DB }

func NewStoreRepo(db *gorm.DB) *StoreRepo { return &StoreRepo{db: db} }

func (r *StoreRepo) Create(s *domain.Store) error { return r.db.Create(s).Error }

func (r *StoreRepo) FindByID(id string) (*domain.Store, error) {
	var s domain.Store
	err := r.db.First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StoreRepo) FindByEmail(email string) (*domain.Store, error) {
	var s domain.Store
	err := r.db.First(&s, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StoreRepo) List() ([]domain.Store, error) {
	var stores []domain.Store
	err := r.db.Order("created_at, id").Find(&stores).Error
	return stores, err
}

func (r *StoreRepo) ListByOwner(ownerID string) ([]domain.Store, error) {
	var stores []domain.Store
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at, id").Find(&stores).Error
	return stores, err
}

func (r *StoreRepo) Count() (int64, error) {
	var n int64
	err := r.db.Model(&domain.Store{}).Count(&n).Error
	return n, err
}
