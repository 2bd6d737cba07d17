package models

import "time"

type Currency string

const (
	CurrencyINR    Currency = "INR"
	CurrencyDollar Currency = "DOLLAR"
)

// Price is embedded in Product so the wire shape stays {amount, currency}.
type Price struct {
	Amount   float64  `gorm:"not null" json:"amount"`
	Currency Currency `gorm:"type:VARCHAR(10);default:'INR'" json:"currency"`
}

type Product struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"not null" json:"description"`
	Price       Price          `gorm:"embedded;embeddedPrefix:price_" json:"price"`
	Images      []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
	UserID      string         `gorm:"not null;index" json:"user_id"`
	User        User           `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// ProductImage stores what the image host returned for one upload.
type ProductImage struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	ProductID    string `gorm:"index" json:"-"`
	FileID       string `json:"fileId"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Name         string `json:"name"`
}
