package models

import "time"

// ProductGroup: Ürün grubu (aynı isimle birden fazla grup açılabilir,
// benzersizlik yalnızca ürünlerin stok kodunda aranır)
type ProductGroup struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
