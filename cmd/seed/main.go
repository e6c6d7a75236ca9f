package main

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"store-ratings/internal/core/config"
	"store-ratings/internal/core/database"
	"store-ratings/internal/core/logger"
	"store-ratings/internal/domain"
	"store-ratings/internal/repo"
	"store-ratings/pkg/utils"
)

// 初始化管理员账号：已存在则跳过，幂等可重跑。
func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		log.Fatal("seed.adminEmail / seed.adminPassword not configured")
	}
	if !utils.ValidPassword(cfg.Seed.AdminPassword) {
		log.Fatal("seed admin password does not meet the password policy")
	}

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Store{}, &domain.Rating{}); err != nil {
		log.Fatal("automigrate failed", zap.Error(err))
	}

	users := repo.NewUserRepo(db)
	existing, err := users.FindByEmail(cfg.Seed.AdminEmail)
	if err != nil {
		log.Fatal("lookup admin", zap.Error(err))
	}
	if existing != nil {
		log.Info("admin already exists, nothing to do", zap.String("email", cfg.Seed.AdminEmail))
		return
	}

	admin := &domain.User{
		ID:           utils.NewID(),
		Name:         cfg.Seed.AdminName,
		Email:        cfg.Seed.AdminEmail,
		PasswordHash: utils.HashPassword(cfg.Seed.AdminPassword),
		Address:      cfg.Seed.AdminAddress,
		Role:         domain.RoleAdmin,
	}
	if err := users.Create(admin); err != nil {
		log.Fatal("create admin", zap.Error(err))
	}
	log.Info("admin created", zap.String("id", admin.ID), zap.String("email", admin.Email))
}
