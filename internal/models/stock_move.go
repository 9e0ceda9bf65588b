package models

import "time"

type MoveDirection string

const (
	MoveIn  MoveDirection = "in"
	MoveOut MoveDirection = "out"
)

// StockMove: Depo giriş/çıkış hareketi. Ürünün CurrentStock alanı her
// hareketle birlikte aynı transaction içinde güncellenir.
type StockMove struct {
	ID        uint `gorm:"primaryKey"`
	ProductID uint `gorm:"index;not null"`
	Product   Product
	Direction MoveDirection `gorm:"size:10;not null"` // in / out
	Quantity  float64       `gorm:"not null"`         // her zaman pozitif
	Note      string        `gorm:"size:255"`         // Opsiyonel not (ör: "Sevkiyat #123")
	UserID    uint          `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
