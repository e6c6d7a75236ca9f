package service

import (
	"context"
	"time"

	"store-ratings/internal/core/cache"
	"store-ratings/internal/domain"
)

const storeAvgTTL = 30 * time.Second

// StoreService 门店浏览（所有角色）与店主视角的评分查询。
type StoreService struct {
	stores  domain.StoreRepository
	ratings domain.RatingRepository
	cache   *cache.Cache
}

func NewStoreService(stores domain.StoreRepository, ratings domain.RatingRepository, c *cache.Cache) *StoreService {
	return &StoreService{stores: stores, ratings: ratings, cache: c}
}

// storeAverages 平均分快照，读多写少，短 TTL + 写路径失效
func (s *StoreService) storeAverages(ctx context.Context) (map[string]float64, error) {
	avgs, err := cache.GetOrLoadJSON[map[string]float64](s.cache, ctx, cacheKeyStoreAverages, storeAvgTTL,
		func(context.Context) (*map[string]float64, error) {
			m, e := s.ratings.StoreAverages()
			if e != nil {
				return nil, e
			}
			return &m, nil
		})
	if err != nil {
		return nil, err
	}
	if avgs == nil {
		return map[string]float64{}, nil
	}
	return *avgs, nil
}

// ListWithRatings 所有门店 + 平均分；userID 非空时附带该用户自己的评分。
func (s *StoreService) ListWithRatings(ctx context.Context, userID string) ([]domain.StoreWithRating, error) {
	stores, err := s.stores.List()
	if err != nil {
		return nil, err
	}
	avgs, err := s.storeAverages(ctx)
	if err != nil {
		return nil, err
	}
	var mine map[string]int
	if userID != "" {
		if mine, err = s.ratings.RatingsByUser(userID); err != nil {
			return nil, err
		}
	}
	out := make([]domain.StoreWithRating, 0, len(stores))
	for _, st := range stores {
		row := domain.StoreWithRating{
			ID:      st.ID,
			Name:    st.Name,
			Email:   st.Email,
			Address: st.Address,
			Rating:  round2(avgs[st.ID]),
		}
		if v, ok := mine[st.ID]; ok {
			r := v
			row.MyRating = &r
		}
		out = append(out, row)
	}
	return out, nil
}

// OwnerStoreView 店主“我的门店”页：门店信息 + 平均分 + 全部评分明细。
type OwnerStoreView struct {
	Store         domain.Store         `json:"store"`
	AverageRating float64              `json:"averageRating"`
	TotalRatings  int                  `json:"totalRatings"`
	Ratings       []domain.StoreRating `json:"ratings"`
}

// MyStoreRatings 店主查看自己第一家门店的评分；没有门店时 404。
func (s *StoreService) MyStoreRatings(ownerID string) (*OwnerStoreView, error) {
	owned, err := s.stores.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if len(owned) == 0 {
		return nil, NotFound("You don't own any stores.")
	}
	st := owned[0]
	rows, err := s.ratings.ListByStore(st.ID)
	if err != nil {
		return nil, err
	}
	avg, ok, err := s.ratings.AverageByStore(st.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		avg = 0
	}
	return &OwnerStoreView{
		Store:         st,
		AverageRating: round2(avg),
		TotalRatings:  len(rows),
		Ratings:       rows,
	}, nil
}

// OwnerRatings 店主名下所有门店的评分明细 + 整体平均分。
// 只返回自己门店的数据，别人门店的评分从查询条件上就拿不到。
func (s *StoreService) OwnerRatings(ownerID string) ([]domain.StoreRating, float64, error) {
	rows, err := s.ratings.ListByOwner(ownerID)
	if err != nil {
		return nil, 0, err
	}
	avg, ok, err := s.ratings.AverageByOwner(ownerID)
	if err != nil {
		return nil, 0, err
	}
	if !ok {
		avg = 0
	}
	return rows, round2(avg), nil
}
