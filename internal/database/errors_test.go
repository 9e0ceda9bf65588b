package database

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil hata", nil, false},
		{"alakasız hata", errors.New("bağlantı koptu"), false},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, true},
		{"sarılmış gorm hatası", fmt.Errorf("ürün kaydedilemedi: %w", gorm.ErrDuplicatedKey), true},
		{"pgconn 23505", &pgconn.PgError{Code: "23505"}, true},
		{"sarılmış pgconn 23505", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), true},
		{"pgconn foreign key 23503", &pgconn.PgError{Code: "23503"}, false},
		{"kayıt bulunamadı", gorm.ErrRecordNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsUniqueViolation(tt.err))
		})
	}
}

// Gerçek bir unique index ihlalinin TranslateError üzerinden
// yakalandığını doğrular.
func TestIsUniqueViolationWithRealConstraint(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	type uniqueRow struct {
		ID   uint   `gorm:"primaryKey"`
		Code string `gorm:"uniqueIndex"`
	}
	require.NoError(t, db.AutoMigrate(&uniqueRow{}))

	require.NoError(t, db.Create(&uniqueRow{Code: "VID-001"}).Error)

	dupErr := db.Create(&uniqueRow{Code: "VID-001"}).Error
	require.Error(t, dupErr)
	require.True(t, IsUniqueViolation(dupErr))
}
