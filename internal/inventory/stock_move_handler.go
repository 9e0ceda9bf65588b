package inventory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"depo-web/internal/audit"
	"depo-web/internal/database"
	"depo-web/internal/models"
)

type MoveRow struct {
	Date      string
	Direction string
	Quantity  string
	Note      string
}

func findProduct(c *fiber.Ctx) (*models.Product, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Geçersiz ürün ID")
	}

	var product models.Product
	if err := database.DB.First(&product, "id = ?", uint(id)).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
	}
	return &product, nil
}

func renderMovesPage(c *fiber.Ctx, status int, product *models.Product, formError string) error {
	var moves []models.StockMove
	if err := database.DB.Where("product_id = ?", product.ID).Order("created_at desc").Find(&moves).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Stok hareketleri listelenemedi")
	}

	rows := make([]MoveRow, 0, len(moves))
	for _, mv := range moves {
		direction := "Giriş"
		if mv.Direction == models.MoveOut {
			direction = "Çıkış"
		}
		rows = append(rows, MoveRow{
			Date:      mv.CreatedAt.Format("02.01.2006 15:04"),
			Direction: direction,
			Quantity:  FormatQuantity(mv.Quantity),
			Note:      mv.Note,
		})
	}

	return c.Status(status).Render("product_moves", fiber.Map{
		"Title":        "Stok Hareketleri",
		"ProductID":    product.ID,
		"ProductName":  product.MaterialName1,
		"StockCode":    product.StockCode,
		"Unit":         product.UnitOfMeasure,
		"CurrentStock": FormatQuantity(product.CurrentStock),
		"Rows":         rows,
		"Error":        formError,
	})
}

// GET /products/:id/moves
func ListStockMovesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		product, err := findProduct(c)
		if err != nil {
			return err
		}
		return renderMovesPage(c, fiber.StatusOK, product, "")
	}
}

// POST /products/:id/moves
// Hareket kaydı ve ürünün güncel stoğu aynı transaction içinde yazılır;
// biri başarısız olursa ikisi de geri alınır.
func CreateStockMoveHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		product, err := findProduct(c)
		if err != nil {
			return err
		}

		direction := models.MoveDirection(c.FormValue("direction"))
		if direction != models.MoveIn && direction != models.MoveOut {
			return renderMovesPage(c, fiber.StatusBadRequest, product, "Geçersiz hareket yönü")
		}

		// "2,5" gibi virgüllü girişler de kabul edilir
		qtyRaw := strings.ReplaceAll(strings.TrimSpace(c.FormValue("quantity")), ",", ".")
		quantity, err := strconv.ParseFloat(qtyRaw, 64)
		if err != nil {
			return renderMovesPage(c, fiber.StatusBadRequest, product, "Geçersiz miktar")
		}
		if quantity <= 0 {
			return renderMovesPage(c, fiber.StatusBadRequest, product, "Miktar 0'dan büyük olmalı")
		}
		if direction == models.MoveOut && quantity > product.CurrentStock {
			return renderMovesPage(c, fiber.StatusBadRequest, product, "Yetersiz stok")
		}

		userID, userName, err := getUserInfo(c)
		if err != nil {
			return err
		}

		delta := quantity
		label := "giriş"
		if direction == models.MoveOut {
			delta = -quantity
			label = "çıkış"
		}

		move := models.StockMove{
			ProductID: product.ID,
			Direction: direction,
			Quantity:  quantity,
			Note:      strings.TrimSpace(c.FormValue("note")),
			UserID:    userID,
		}

		tx := database.DB.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		if err := tx.Create(&move).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Stok hareketi kaydedilemedi")
		}

		// Çıkışta stok koşulu güncellemenin içinde denetlenir; stok, yukarıdaki
		// okumadan sonra başka bir hareketle düşmüşse satır etkilenmez.
		update := tx.Model(&models.Product{}).Where("id = ?", product.ID)
		if direction == models.MoveOut {
			update = update.Where("current_stock >= ?", quantity)
		}
		res := update.Update("current_stock", gorm.Expr("current_stock + ?", delta))
		if res.Error != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Stok güncellenemedi")
		}
		if direction == models.MoveOut && res.RowsAffected == 0 {
			tx.Rollback()
			database.DB.First(product, product.ID) // sayfa güncel stokla çizilsin
			return renderMovesPage(c, fiber.StatusBadRequest, product, "Yetersiz stok")
		}

		if err := tx.Commit().Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok hareketi kaydedilemedi")
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "stock_move",
			EntityID:    move.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("%s için %s: %s %s", product.StockCode, label, FormatQuantity(quantity), product.UnitOfMeasure),
			After:       move,
		})

		return c.Redirect(fmt.Sprintf("/products/%d/moves", product.ID), fiber.StatusSeeOther)
	}
}
