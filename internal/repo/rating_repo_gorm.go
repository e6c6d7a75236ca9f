package repo

import (
	"database/sql"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"store-ratings/internal/domain"
)

type RatingRepo struct{ db *gorm.DB }

func NewRatingRepo(db *gorm.DB) *RatingRepo { return &RatingRepo{db: db} }

// Upsert 以 (user_id, store_id) 唯一键落库；冲突时只覆盖评分值。
// 并发重复提交靠唯一约束收敛成一行。
func (r *RatingRepo) Upsert(rt *domain.Rating) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "store_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"rating": rt.Rating}),
	}).Create(rt).Error
	if err != nil {
		return err
	}
	// 冲突分支不会回填已有行的 ID，重新读一次拿最终行
	var row domain.Rating
	if e := r.db.First(&row, "user_id = ? AND store_id = ?", rt.UserID, rt.StoreID).Error; e != nil {
		return e
	}
	*rt = row
	return nil
}

func (r *RatingRepo) FindByUserAndStore(userID, storeID string) (*domain.Rating, error) {
	var rt domain.Rating
	err := r.db.First(&rt, "user_id = ? AND store_id = ?", userID, storeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *RatingRepo) FindByID(id string) (*domain.Rating, error) {
	var rt domain.Rating
	err := r.db.First(&rt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *RatingRepo) Delete(id string) error {
	return r.db.Delete(&domain.Rating{}, "id = ?", id).Error
}

func (r *RatingRepo) Count() (int64, error) {
	var n int64
	err := r.db.Model(&domain.Rating{}).Count(&n).Error
	return n, err
}

func (r *RatingRepo) ListByUser(userID string) ([]domain.MyRating, error) {
	var rows []domain.MyRating
	err := r.db.Model(&domain.Rating{}).
		Select("ratings.id, ratings.rating, ratings.store_id, stores.name AS store_name").
		Joins("JOIN stores ON stores.id = ratings.store_id").
		Where("ratings.user_id = ?", userID).
		Order("ratings.created_at, ratings.id").
		Scan(&rows).Error
	return rows, err
}

func (r *RatingRepo) ListByStore(storeID string) ([]domain.StoreRating, error) {
	var rows []domain.StoreRating
	err := r.db.Model(&domain.Rating{}).
		Select("ratings.id, ratings.rating, ratings.store_id, users.id AS user_id, users.name AS user_name, users.email AS user_email").
		Joins("JOIN users ON users.id = ratings.user_id").
		Where("ratings.store_id = ?", storeID).
		Order("ratings.created_at, ratings.id").
		Scan(&rows).Error
	return rows, err
}

func (r *RatingRepo) ListByOwner(ownerID string) ([]domain.StoreRating, error) {
	var rows []domain.StoreRating
	err := r.db.Model(&domain.Rating{}).
		Select("ratings.id, ratings.rating, ratings.store_id, stores.name AS store_name, users.id AS user_id, users.name AS user_name, users.email AS user_email").
		Joins("JOIN stores ON stores.id = ratings.store_id").
		Joins("JOIN users ON users.id = ratings.user_id").
		Where("stores.owner_id = ?", ownerID).
		Order("ratings.created_at, ratings.id").
		Scan(&rows).Error
	return rows, err
}

func (r *RatingRepo) StoreAverages() (map[string]float64, error) {
	var rows []struct {
		StoreID string
		Avg     float64
	}
	err := r.db.Model(&domain.Rating{}).
		Select("store_id, AVG(rating) AS avg").
		Group("store_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(rows))
	for _, row := range rows {
		out[row.StoreID] = row.Avg
	}
	return out, nil
}

func (r *RatingRepo) RatingsByUser(userID string) (map[string]int, error) {
	var rows []struct {
		StoreID string
		Rating  int
	}
	err := r.db.Model(&domain.Rating{}).
		Select("store_id, rating").
		Where("user_id = ?", userID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.StoreID] = row.Rating
	}
	return out, nil
}

func (r *RatingRepo) AverageByStore(storeID string) (float64, bool, error) {
	var avg sql.NullFloat64
	err := r.db.Model(&domain.Rating{}).
		Select("AVG(rating)").
		Where("store_id = ?", storeID).
		Scan(&avg).Error
	if err != nil {
		return 0, false, err
	}
	return avg.Float64, avg.Valid, nil
}

func (r *RatingRepo) AverageByOwner(ownerID string) (float64, bool, error) {
	var avg sql.NullFloat64
	err := r.db.Model(&domain.Rating{}).
		Select("AVG(ratings.rating)").
		Joins("JOIN stores ON stores.id = ratings.store_id").
		Where("stores.owner_id = ?", ownerID).
		Scan(&avg).Error
	if err != nil {
		return 0, false, err
	}
	return avg.Float64, avg.Valid, nil
}
