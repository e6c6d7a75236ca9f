package domain

import "time"

type Store struct {
	ID        string    `gorm:"primaryKey;type:varchar(32)" json:"id"`
	Name      string    `gorm:"size:60;not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Address   string    `gorm:"size:400;not null" json:"address"`
	OwnerID   *string   `gorm:"type:varchar(32);index" json:"owner_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Store) TableName() string { return "stores" }

// StoreWithRating 列表视图：门店 + 平均分（没有评分时为 0）
type StoreWithRating struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Address string  `json:"address"`
	Rating  float64 `json:"rating"`
	// MyRating 当前登录用户对该门店的评分，未评为 nil
	MyRating *int `json:"my_rating,omitempty"`
}

type StoreRepository interface {
	Create(s *Store) error
	FindByID(id string) (*Store, error)
	FindByEmail(email string) (*Store, error)
	List() ([]Store, error)
	ListByOwner(ownerID string) ([]Store, error)
	Count() (int64, error)
}
