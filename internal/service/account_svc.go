package service

import (
	"context"

	"github.com/go-playground/validator/v10"

	"store-ratings/internal/core/cache"
	"store-ratings/internal/domain"
	"store-ratings/pkg/utils"
)

// 校验消息与前端约定保持一致，改动会破坏页面提示
const (
	msgNameLength   = "Name must be between 20 and 60 characters"
	msgInvalidEmail = "Invalid email address"
	msgPassword     = "Password must be 8-16 characters long and include at least one uppercase letter and one special character"
	msgAddress      = "Address must be less than 400 characters"
	msgEmailTaken   = "Email already exists"
)

var validate = validator.New()

func validEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

// AccountService 注册/登录/改密/资料。
type AccountService struct {
	users domain.UserRepository
	cache *cache.Cache
}

func NewAccountService(users domain.UserRepository, c *cache.Cache) *AccountService {
	return &AccountService{users: users, cache: c}
}

func validateProfileFields(name, email, address string) error {
	if !utils.ValidName(name) {
		return Invalid(msgNameLength)
	}
	if !validEmail(email) {
		return Invalid(msgInvalidEmail)
	}
	if !utils.ValidAddress(address) {
		return Invalid(msgAddress)
	}
	return nil
}

// Register 自助注册，角色固定为 user。
func (s *AccountService) Register(ctx context.Context, name, email, password, address string) (string, error) {
	if !utils.ValidName(name) {
		return "", Invalid(msgNameLength)
	}
	if !validEmail(email) {
		return "", Invalid(msgInvalidEmail)
	}
	if !utils.ValidPassword(password) {
		return "", Invalid(msgPassword)
	}
	if !utils.ValidAddress(address) {
		return "", Invalid(msgAddress)
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
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(u); err != nil {
		return "", err
	}
	// 后台用户列表/统计走缓存，自助注册同样要立即可见
	s.cache.Invalidate(ctx, cacheKeyAdminDashboard)
	return u.ID, nil
}

// Login 邮箱不存在与密码错误返回不同错误（沿用现有前端的分支处理）。
func (s *AccountService) Login(email, password string) (*domain.User, error) {
	u, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, NotFound("User not found")
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return nil, Unauthorized("Invalid password")
	}
	return u, nil
}

func (s *AccountService) UpdatePassword(userID, oldPassword, newPassword string) error {
	if !utils.ValidPassword(newPassword) {
		return Invalid(msgPassword)
	}
	u, err := s.users.FindByID(userID)
	if err != nil {
		return err
	}
	if u == nil {
		return NotFound("User not found")
	}
	if !utils.CheckPassword(oldPassword, u.PasswordHash) {
		return Invalid("Old password is incorrect")
	}
	return s.users.UpdatePassword(userID, utils.HashPassword(newPassword))
}

func (s *AccountService) Profile(userID string) (*domain.User, error) {
	u, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, NotFound("User not found")
	}
	return u, nil
}
