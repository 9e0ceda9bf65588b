package inventory

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"depo-web/internal/audit"
	"depo-web/internal/database"
	"depo-web/internal/models"
)

type GroupRow struct {
	ID           uint
	Name         string
	ProductCount int64
	CreatedAt    string
}

// GET /groups
func ListGroupsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var groups []models.ProductGroup
		if err := database.DB.Order("name asc").Find(&groups).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün grupları listelenemedi")
		}

		rows := make([]GroupRow, 0, len(groups))
		for _, g := range groups {
			var count int64
			if err := database.DB.Model(&models.Product{}).Where("group_id = ?", g.ID).Count(&count).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Ürün grupları listelenemedi")
			}
			rows = append(rows, GroupRow{
				ID:           g.ID,
				Name:         g.Name,
				ProductCount: count,
				CreatedAt:    g.CreatedAt.Format("02.01.2006"),
			})
		}

		return c.Render("groups", fiber.Map{
			"Title": "Ürün Grupları",
			"Rows":  rows,
		})
	}
}

// GET /groups/new
func NewGroupFormHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Render("group_new", fiber.Map{"Title": "Yeni Grup", "Error": "", "Name": ""})
	}
}

// POST /groups/new
// Aynı isimle birden fazla grup açılabilir, isim benzersizliği aranmaz.
func CreateGroupHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := strings.TrimSpace(c.FormValue("name"))
		if name == "" {
			return c.Status(fiber.StatusBadRequest).Render("group_new", fiber.Map{
				"Title": "Yeni Grup",
				"Error": "Grup adı zorunlu",
				"Name":  name,
			})
		}

		g := models.ProductGroup{Name: name}
		if err := database.DB.Create(&g).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Grup oluşturulamadı")
		}

		if userID, userName, err := getUserInfo(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "product_group",
				EntityID:    g.ID,
				Action:      models.AuditActionCreate,
				Description: "Ürün grubu oluşturuldu: " + g.Name,
				After:       g,
			})
		}

		return c.Redirect("/groups", fiber.StatusSeeOther)
	}
}
