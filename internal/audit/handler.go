package audit

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"depo-web/internal/database"
	"depo-web/internal/models"
)

type LogRow struct {
	Date        string
	UserName    string
	Entity      string
	Action      string
	Description string
}

var entityLabels = map[string]string{
	"product":       "Ürün",
	"product_group": "Ürün grubu",
	"stock_move":    "Stok hareketi",
	"user":          "Kullanıcı",
}

var actionLabels = map[models.AuditAction]string{
	models.AuditActionCreate: "Oluşturma",
	models.AuditActionImport: "İçe aktarma",
}

// GET /audit
func ListLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "50"))
		if err != nil || limit < 1 || limit > 200 {
			limit = 50
		}

		var logs []models.AuditLog
		if err := database.DB.Order("created_at desc").Limit(limit).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İşlem geçmişi listelenemedi")
		}

		rows := make([]LogRow, 0, len(logs))
		for _, l := range logs {
			entity := l.EntityType
			if label, ok := entityLabels[l.EntityType]; ok {
				entity = label
			}
			action := string(l.Action)
			if label, ok := actionLabels[l.Action]; ok {
				action = label
			}
			rows = append(rows, LogRow{
				Date:        l.CreatedAt.Format("02.01.2006 15:04"),
				UserName:    l.UserName,
				Entity:      entity,
				Action:      action,
				Description: l.Description,
			})
		}

		return c.Render("audit", fiber.Map{
			"Title": "İşlem Geçmişi",
			"Rows":  rows,
		})
	}
}
