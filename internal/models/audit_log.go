package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionImport AuditAction = "import"
)

type AuditLog struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	// Hangi kullanıcı?
	UserID   uint
	UserName string `gorm:"size:100"` // Kullanıcı adı (denormalize)

	// Hangi entity? (ör: "product", "product_group", "stock_move")
	EntityType string `gorm:"size:50;index"`
	EntityID   uint   `gorm:"index"`

	Action AuditAction `gorm:"size:20"`

	// Opsiyonel açıklama (küçük bir özet)
	Description string `gorm:"size:255"`

	// Kaydın oluşturulduğu andaki hali (JSON)
	AfterData string `gorm:"type:jsonb"`
}
