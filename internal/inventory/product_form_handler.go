package inventory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"depo-web/internal/audit"
	"depo-web/internal/auth"
	"depo-web/internal/database"
	"depo-web/internal/models"
)

type ProductFormValues struct {
	StockCode     string
	MaterialName1 string
	MaterialName2 string
	UnitOfMeasure string
	SerialNumber  string
	GroupID       string
}

func readProductForm(c *fiber.Ctx) ProductFormValues {
	return ProductFormValues{
		StockCode:     strings.TrimSpace(c.FormValue("stock_code")),
		MaterialName1: strings.TrimSpace(c.FormValue("material_name_1")),
		MaterialName2: strings.TrimSpace(c.FormValue("material_name_2")),
		UnitOfMeasure: strings.TrimSpace(c.FormValue("unit_of_measure")),
		SerialNumber:  strings.TrimSpace(c.FormValue("serial_number")),
		GroupID:       strings.TrimSpace(c.FormValue("group_id")),
	}
}

// validateProductForm, tüm alan hatalarını tek seferde toplar ve form
// alan adından Türkçe mesaja bir map döndürür. Form yeniden
// gösterildiğinde her alanın hatası kendi yanında çıkar.
func validateProductForm(v ProductFormValues) map[string]string {
	errs := make(map[string]string)
	if v.StockCode == "" {
		errs["stock_code"] = "Stok kodu zorunlu"
	}
	if v.MaterialName1 == "" {
		errs["material_name_1"] = "Malzeme adı zorunlu"
	}
	if v.UnitOfMeasure == "" {
		errs["unit_of_measure"] = "Birim zorunlu"
	}
	if v.GroupID == "" {
		errs["group_id"] = "Ürün grubu zorunlu"
	} else if _, err := strconv.ParseUint(v.GroupID, 10, 32); err != nil {
		errs["group_id"] = "Geçersiz ürün grubu"
	}
	return errs
}

func renderProductForm(c *fiber.Ctx, status int, values ProductFormValues, fieldErrors map[string]string, conflict string) error {
	var groups []models.ProductGroup
	if err := database.DB.Order("name asc").Find(&groups).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Ürün grupları listelenemedi")
	}

	return c.Status(status).Render("product_new", fiber.Map{
		"Title":    "Yeni Ürün",
		"Values":   values,
		"Errors":   fieldErrors,
		"Conflict": conflict,
		"Groups":   groups,
	})
}

// GET /products/new
func NewProductFormHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return renderProductForm(c, fiber.StatusOK, ProductFormValues{}, nil, "")
	}
}

// POST /products/new
// Benzersizlik kontrolü veritabanındaki unique index'e bırakılır; insert
// sırasında yakalanan ihlal 409 olarak forma geri yansıtılır.
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		values := readProductForm(c)
		fieldErrors := validateProductForm(values)

		var groupID uint
		if _, bad := fieldErrors["group_id"]; !bad {
			id64, _ := strconv.ParseUint(values.GroupID, 10, 32)
			var group models.ProductGroup
			if err := database.DB.First(&group, "id = ?", uint(id64)).Error; err != nil {
				fieldErrors["group_id"] = "Geçersiz ürün grubu"
			} else {
				groupID = group.ID
			}
		}

		if len(fieldErrors) > 0 {
			return renderProductForm(c, fiber.StatusBadRequest, values, fieldErrors, "")
		}

		p := models.Product{
			StockCode:     values.StockCode,
			MaterialName1: values.MaterialName1,
			MaterialName2: optional(values.MaterialName2),
			UnitOfMeasure: values.UnitOfMeasure,
			SerialNumber:  optional(values.SerialNumber),
			GroupID:       &groupID,
		}

		if err := database.DB.Create(&p).Error; err != nil {
			if database.IsUniqueViolation(err) {
				msg := fmt.Sprintf("'%s' stok kodu zaten kayıtlı", values.StockCode)
				return renderProductForm(c, fiber.StatusConflict, values, nil, msg)
			}
			zap.L().Error("Ürün oluşturulamadı", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün kaydedilemedi")
		}

		if userID, userName, err := getUserInfo(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "product",
				EntityID:    p.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Ürün oluşturuldu: %s (%s)", p.MaterialName1, p.StockCode),
				After:       p,
			})
		}

		return c.Redirect("/products", fiber.StatusSeeOther)
	}
}

// boş bırakılan opsiyonel alanlar NULL olarak saklanır
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func getUserInfo(c *fiber.Ctx) (uint, string, error) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		return 0, "", fiber.NewError(fiber.StatusForbidden, "Kullanıcı bilgisi alınamadı")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return 0, "", fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı bulunamadı")
	}
	return userID, user.Name, nil
}
