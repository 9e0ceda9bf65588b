package audit

import (
	"encoding/json"

	"go.uber.org/zap"

	"depo-web/internal/database"
	"depo-web/internal/models"
)

type LogOptions struct {
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	After       any
}

// WriteLog, işlem geçmişine bir kayıt ekler. Asıl işlemi bloke etmemesi
// için çağıran taraf hatayı genellikle yutar.
func WriteLog(opts LogOptions) error {
	afterJSON := "null"
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterJSON = string(b)
		}
	}

	entry := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		AfterData:   afterJSON,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		zap.L().Error("İşlem geçmişi yazılamadı", zap.Error(err))
		return err
	}
	return nil
}
