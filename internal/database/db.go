package database

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"depo-web/internal/config"
	"depo-web/internal/models"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		zap.L().Fatal("Veritabanına bağlanılamadı", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		zap.L().Fatal("Veritabanı havuzuna erişilemedi", zap.Error(err))
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	DB = db
	Migrate()

	zap.L().Info("Veritabanı bağlantısı başarılı, migration tamamlandı")
}

// Migrate, şemayı DB üzerinde günceller. Testler kendi bağlantılarını
// atadıktan sonra da çağırır.
func Migrate() {
	if err := DB.AutoMigrate(
		&models.User{},
		&models.ProductGroup{},
		&models.Product{},
		&models.StockMove{},
		&models.AuditLog{},
	); err != nil {
		zap.L().Fatal("AutoMigrate hatası", zap.Error(err))
	}
}
