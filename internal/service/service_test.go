package service_test

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"store-ratings/internal/domain"
	"store-ratings/internal/repo"
	"store-ratings/internal/service"
	"store-ratings/pkg/utils"
)

type env struct {
	db       *gorm.DB
	users    *repo.UserRepo
	stores   *repo.StoreRepo
	ratings  *repo.RatingRepo
	accounts *service.AccountService
	ledger   *service.RatingService
	storeSvc *service.StoreService
	admin    *service.AdminService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Store{}, &domain.Rating{}))

	users := repo.NewUserRepo(db)
	stores := repo.NewStoreRepo(db)
	ratings := repo.NewRatingRepo(db)
	return &env{
		db:       db,
		users:    users,
		stores:   stores,
		ratings:  ratings,
		accounts: service.NewAccountService(users, nil),
		ledger:   service.NewRatingService(ratings, stores, nil),
		storeSvc: service.NewStoreService(stores, ratings, nil),
		admin:    service.NewAdminService(users, stores, ratings, nil),
	}
}

func (e *env) addUser(t *testing.T, name, email, role string) *domain.User {
	t.Helper()
	u := &domain.User{
		ID:           utils.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: utils.HashPassword("Abcdef1!"),
		Address:      "somewhere",
		Role:         role,
	}
	require.NoError(t, e.users.Create(u))
	return u
}

func (e *env) addStore(t *testing.T, name, email string, ownerID *string) *domain.Store {
	t.Helper()
	s := &domain.Store{
		ID:      utils.NewID(),
		Name:    name,
		Email:   email,
		Address: "main street",
		OwnerID: ownerID,
	}
	require.NoError(t, e.stores.Create(s))
	return s
}

func kindOf(t *testing.T, err error) service.Kind {
	t.Helper()
	se, ok := err.(*service.Error)
	require.True(t, ok, "expected *service.Error, got %T: %v", err, err)
	return se.Kind
}
