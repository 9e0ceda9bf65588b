package models

import "time"

type Product struct {
	ID            uint    `gorm:"primaryKey"`
	StockCode     string  `gorm:"size:50;uniqueIndex;not null"` // depo genelinde benzersiz
	MaterialName1 string  `gorm:"column:material_name_1;size:150;not null"`
	MaterialName2 *string `gorm:"column:material_name_2;size:150"`
	UnitOfMeasure string  `gorm:"size:20;not null"` // kg, adet, koli vs.
	SerialNumber  *string `gorm:"size:100"`
	GroupID       *uint   `gorm:"index"`
	Group         *ProductGroup
	CurrentStock  float64 `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
