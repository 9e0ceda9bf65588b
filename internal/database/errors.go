package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PgErrUniqueViolation: Postgres unique_violation hata kodu (Class 23)
const PgErrUniqueViolation = "23505"

// IsUniqueViolation, insert/update hatasının benzersizlik kısıtından
// kaynaklanıp kaynaklanmadığını söyler. Postgres sürücüsü pgconn.PgError
// döndürür; sqlite ile çalışan testlerde gorm'un çevirdiği
// ErrDuplicatedKey yakalanır.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == PgErrUniqueViolation
}
