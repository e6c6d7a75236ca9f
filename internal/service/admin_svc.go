package service

import (
	"context"
	"time"

	"store-ratings/internal/core/cache"
	"store-ratings/internal/domain"
	"store-ratings/pkg/utils"
)

const dashboardTTL = 30 * time.Second

// AdminService 后台：用户/门店管理、平台统计。
type AdminService struct {
	users   domain.UserRepository
	stores  domain.StoreRepository
	ratings domain.RatingRepository
	cache   *cache.Cache
}

func NewAdminService(users domain.UserRepository, stores domain.StoreRepository, ratings domain.RatingRepository, c *cache.Cache) *AdminService {
	return &AdminService{users: users, stores: stores, ratings: ratings, cache: c}
}

type Stats struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalStores  int64 `json:"totalStores"`
	TotalRatings int64 `json:"totalRatings"`
}

type Dashboard struct {
	Stats  Stats          `json:"stats"`
	Users  []domain.User  `json:"users"`
	Stores []domain.Store `json:"stores"`
}

func (s *AdminService) Dashboard(ctx context.Context) (*Dashboard, error) {
	return cache.GetOrLoadJSON[Dashboard](s.cache, ctx, cacheKeyAdminDashboard, dashboardTTL,
		func(context.Context) (*Dashboard, error) {
			users, err := s.users.List()
			if err != nil {
				return nil, err
			}
			stores, err := s.stores.List()
			if err != nil {
				return nil, err
			}
			nRatings, err := s.ratings.Count()
			if err != nil {
				return nil, err
			}
			return &Dashboard{
				Stats: Stats{
					TotalUsers:   int64(len(users)),
					TotalStores:  int64(len(stores)),
					TotalRatings: nRatings,
				},
				Users:  users,
				Stores: stores,
			}, nil
		})
}

// CreateUser 后台建号，可指定任意角色。
func (s *AdminService) CreateUser(ctx context.Context, name, email, password, address, role string) (string, error) {
	if !domain.ValidRole(role) {
		return "", Invalid("Invalid role provided.")
	}
	if err := validateProfileFields(name, email, address); err != nil {
		return "", err
	}
	if !utils.ValidPassword(password) {
		return "", Invalid(msgPassword)
	}
	existing, err := s.users.FindByEmail(email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", Invalid(msgEmailTaken)
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: utils.HashPassword(password),
		Address:      address,
		Role:         role,
	}
	if err := s.users.Create(u); err != nil {
		return "", err
	}
	s.cache.Invalidate(ctx, cacheKeyAdminDashboard)
	return u.ID, nil
}

// CreateStore ownerID 可空（无主门店）；给了就必须指向 role=owner 的用户。
func (s *AdminService) CreateStore(ctx context.Context, name, email, address string, ownerID *string) (*domain.Store, error) {
	if err := validateProfileFields(name, email, address); err != nil {
		return nil, err
	}
	existing, err := s.stores.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, Invalid(msgEmailTaken)
	}
	if ownerID != nil && *ownerID != "" {
		owner, err := s.users.FindByID(*ownerID)
		if err != nil {
			return nil, err
		}
		if owner == nil || owner.Role != domain.RoleOwner {
			return nil, Invalid("Invalid owner_id. No such user with role 'owner'.")
		}
	} else {
		ownerID = nil
	}
	st := &domain.Store{
		ID:      utils.NewID(),
		Name:    name,
		Email:   email,
		Address: address,
		OwnerID: ownerID,
	}
	if err := s.stores.Create(st); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, cacheKeyAdminDashboard, cacheKeyStoreAverages)
	return st, nil
}

// UserRow 用户列表行；店主带自己门店的平均分。
type UserRow struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Address string  `json:"address"`
	Role    string  `json:"role"`
	Average float64 `json:"average_rating"`
}

func (s *AdminService) ListUsers() ([]UserRow, error) {
	users, err := s.users.List()
	if err != nil {
		return nil, err
	}
	out := make([]UserRow, 0, len(users))
	for _, u := range users {
		row := UserRow{ID: u.ID, Name: u.Name, Email: u.Email, Address: u.Address, Role: u.Role}
		if u.Role == domain.RoleOwner {
			avg, ok, err := s.ratings.AverageByOwner(u.ID)
			if err != nil {
				return nil, err
			}
			if ok {
				row.Average = round2(avg)
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *AdminService) ListStores(ctx context.Context) ([]domain.StoreWithRating, error) {
	stores, err := s.stores.List()
	if err != nil {
		return nil, err
	}
	avgs, err := s.ratings.StoreAverages()
	if err != nil {
		return nil, err
	}
	out := make([]domain.StoreWithRating, 0, len(stores))
	for _, st := range stores {
		out = append(out, domain.StoreWithRating{
			ID:      st.ID,
			Name:    st.Name,
			Email:   st.Email,
			Address: st.Address,
			Rating:  round2(avgs[st.ID]),
		})
	}
	return out, nil
}

type OwnerRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (s *AdminService) StoreOwners() ([]OwnerRef, error) {
	owners, err := s.users.ListByRole(domain.RoleOwner)
	if err != nil {
		return nil, err
	}
	out := make([]OwnerRef, 0, len(owners))
	for _, o := range owners {
		out = append(out, OwnerRef{ID: o.ID, Name: o.Name})
	}
	return out, nil
}
