package domain

import "time"

// 角色
const (
	RoleAdmin = "admin"
	RoleOwner = "owner"
	RoleUser  = "user"
)

func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleOwner || r == RoleUser
}

type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(32)" json:"id"`
	Name         string    `gorm:"size:60;not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	Address      string    `gorm:"size:400;not null" json:"address"`
	Role         string    `gorm:"size:16;not null;default:user" json:"role"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

type UserRepository interface {
	Create(u *User) error
	FindByID(id string) (*User, error)
	FindByEmail(email string) (*User, error)
	List() ([]User, error)
	ListByRole(role string) ([]User, error)
	Count() (int64, error)
	UpdatePassword(id, passwordHash string) error
}
