package inventory

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"depo-web/internal/database"
	"depo-web/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ProductRow struct {
	ID            uint
	StockCode     string
	MaterialName1 string
	MaterialName2 string
	UnitOfMeasure string
	SerialNumber  string
	GroupName     string
	CurrentStock  string
}

var quantityPrinter = message.NewPrinter(language.Turkish)

// FormatQuantity: Stok miktarını Türkçe biçimde, her zaman üç ondalık
// basamakla yazar. Örn: 1234.5 -> "1.234,500"
func FormatQuantity(v float64) string {
	return quantityPrinter.Sprint(number.Decimal(v, number.Scale(3)))
}

func buildProductRows(products []models.Product) []ProductRow {
	rows := make([]ProductRow, 0, len(products))
	for _, p := range products {
		row := ProductRow{
			ID:            p.ID,
			StockCode:     p.StockCode,
			MaterialName1: p.MaterialName1,
			UnitOfMeasure: p.UnitOfMeasure,
			SerialNumber:  "—",
			GroupName:     "N/A", // grubu hiç atanmamış ya da bulunamıyor
			CurrentStock:  FormatQuantity(p.CurrentStock),
		}
		if p.MaterialName2 != nil {
			row.MaterialName2 = *p.MaterialName2
		}
		if p.SerialNumber != nil && *p.SerialNumber != "" {
			row.SerialNumber = *p.SerialNumber
		}
		if p.Group != nil {
			row.GroupName = p.Group.Name
		}
		rows = append(rows, row)
	}
	return rows
}

// GET /products
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		if err := database.DB.Preload("Group").Order("material_name_1 asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		return c.Render("products", fiber.Map{
			"Title":    "Ürünler",
			"Rows":     buildProductRows(products),
			"Imported": c.Query("imported"),
			"Skipped":  c.Query("skipped"),
		})
	}
}
