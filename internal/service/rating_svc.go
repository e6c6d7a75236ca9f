package service

import (
	"context"
	"math"

	"store-ratings/internal/core/cache"
	"store-ratings/internal/domain"
	"store-ratings/pkg/utils"
)

// 缓存 key（写路径统一失效）
const (
	cacheKeyStoreAverages  = "stores:avg"
	cacheKeyAdminDashboard = "admin:dashboard"
)

// RatingService 评分台账：一人一店一条，重复提交覆盖。
type RatingService struct {
	ratings domain.RatingRepository
	stores  domain.StoreRepository
	cache   *cache.Cache
}

func NewRatingService(ratings domain.RatingRepository, stores domain.StoreRepository, c *cache.Cache) *RatingService {
	return &RatingService{ratings: ratings, stores: stores, cache: c}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// Submit 提交评分（upsert）：已评过则覆盖原值。
func (s *RatingService) Submit(ctx context.Context, userID, storeID string, value int) (*domain.Rating, error) {
	if value < 1 || value > 5 {
		return nil, Invalid("Rating must be between 1 and 5.")
	}
	st, err := s.stores.FindByID(storeID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, NotFound("Store not found.")
	}
	rt := &domain.Rating{
		ID:      utils.NewID(),
		UserID:  userID,
		StoreID: storeID,
		Rating:  value,
	}
	if err := s.ratings.Upsert(rt); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, cacheKeyStoreAverages, cacheKeyAdminDashboard)
	return rt, nil
}

// Update 修改评分：要求该 (user, store) 已有评分，否则 404。
// 效果与 Submit 的覆盖分支一致，只是入口语义更严格。
func (s *RatingService) Update(ctx context.Context, userID, storeID string, value int) (*domain.Rating, error) {
	if value < 1 || value > 5 {
		return nil, Invalid("Rating must be between 1 and 5.")
	}
	existing, err := s.ratings.FindByUserAndStore(userID, storeID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, NotFound("Rating not found. You must rate the store first.")
	}
	existing.Rating = value
	if err := s.ratings.Upsert(existing); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, cacheKeyStoreAverages, cacheKeyAdminDashboard)
	return existing, nil
}

// Delete 只能删除自己的评分；不存在或不属于调用者都按 404 处理，
// 不区分两种情况，避免泄露别人评分的存在性。
func (s *RatingService) Delete(ctx context.Context, userID, ratingID string) error {
	rt, err := s.ratings.FindByID(ratingID)
	if err != nil {
		return err
	}
	if rt == nil || rt.UserID != userID {
		return NotFound("Rating not found or not authorized to delete.")
	}
	if err := s.ratings.Delete(ratingID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, cacheKeyStoreAverages, cacheKeyAdminDashboard)
	return nil
}

func (s *RatingService) MyRatings(userID string) ([]domain.MyRating, error) {
	return s.ratings.ListByUser(userID)
}

// AverageForStore 平均分保留两位小数，无评分返回 0。
func (s *RatingService) AverageForStore(storeID string) (float64, error) {
	avg, ok, err := s.ratings.AverageByStore(storeID)
	if err != nil || !ok {
		return 0, err
	}
	return round2(avg), nil
}

// AverageForOwner 店主名下所有门店评分的平均值。
func (s *RatingService) AverageForOwner(ownerID string) (float64, error) {
	avg, ok, err := s.ratings.AverageByOwner(ownerID)
	if err != nil || !ok {
		return 0, err
	}
	return round2(avg), nil
}
