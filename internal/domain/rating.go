package domain

import "time"

type Rating struct {
	ID        string    `gorm:"primaryKey;type:varchar(32)" json:"id"`
	UserID    string    `gorm:"type:varchar(32);not null;uniqueIndex:uniq_user_store" json:"user_id"`
	StoreID   string    `gorm:"type:varchar(32);not null;uniqueIndex:uniq_user_store" json:"store_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Rating) TableName() string { return "ratings" }

// MyRating 用户自己的评分列表行（带门店名）
type MyRating struct {
	ID        string `json:"id"`
	Rating    int    `json:"rating"`
	StoreID   string `json:"store_id"`
	StoreName string `json:"store_name"`
}

// StoreRating 店主视角的单条评分（带评分人信息）
type StoreRating struct {
	ID        string `json:"id"`
	Rating    int    `json:"rating"`
	StoreID   string `json:"store_id"`
	StoreName string `json:"store_name,omitempty"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

type RatingRepository interface {
	// Upsert 以 (user_id, store_id) 唯一键插入或覆盖评分值
	Upsert(r *Rating) error
	FindByUserAndStore(userID, storeID string) (*Rating, error)
	FindByID(id string) (*Rating, error)
	Delete(id string) error
	Count() (int64, error)
	ListByUser(userID string) ([]MyRating, error)
	ListByStore(storeID string) ([]StoreRating, error)
	ListByOwner(ownerID string) ([]StoreRating, error)
	// AverageByStore / AverageByOwner 返回未舍入的平均值；无评分时 (0, false)
	AverageByStore(storeID string) (float64, bool, error)
	AverageByOwner(ownerID string) (float64, bool, error)
	// StoreAverages 所有门店的平均分（store_id → 未舍入平均值），一次查询
	StoreAverages() (map[string]float64, error)
	// RatingsByUser 某用户在各门店的评分（store_id → rating）
	RatingsByUser(userID string) (map[string]int, error)
}
