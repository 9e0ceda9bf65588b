package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"depo-web/internal/audit"
	"depo-web/internal/database"
	"depo-web/internal/models"
)

// normalizeTurkish: Türkçe karakterleri ASCII karşılıklarına çevirir ve
// küçük harfe indirir. Örn: "GIDA MALZEMESİ" -> "gida malzemesi"
func normalizeTurkish(s string) string {
	replacements := map[rune]string{
		'ç': "c", 'Ç': "C",
		'ğ': "g", 'Ğ': "G",
		'ı': "i", 'İ': "I",
		'ö': "o", 'Ö': "O",
		'ş': "s", 'Ş': "S",
		'ü': "u", 'Ü': "U",
	}

	var result strings.Builder
	for _, r := range s {
		if replacement, ok := replacements[r]; ok {
			result.WriteString(replacement)
		} else {
			result.WriteRune(r)
		}
	}
	return strings.ToLower(result.String())
}

var productExportHeaders = []string{"Stok Kodu", "Malzeme Adı", "Malzeme Adı 2", "Birim", "Seri No", "Grup", "Mevcut Stok"}

// GET /products/export
// Ürün listesini XLSX olarak indirir. Satırlar liste sayfasıyla aynı
// sırada (malzeme adına göre) yazılır.
func ExportProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		if err := database.DB.Preload("Group").Order("material_name_1 asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := "Ürünler"
		f.SetSheetName("Sheet1", sheet)

		for i, h := range productExportHeaders {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		for rowIdx, p := range products {
			name2, serial := "", ""
			if p.MaterialName2 != nil {
				name2 = *p.MaterialName2
			}
			if p.SerialNumber != nil {
				serial = *p.SerialNumber
			}
			groupName := "N/A"
			if p.Group != nil {
				groupName = p.Group.Name
			}

			values := []any{p.StockCode, p.MaterialName1, name2, p.UnitOfMeasure, serial, groupName, p.CurrentStock}
			for colIdx, v := range values {
				cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası oluşturulamadı")
		}

		fileName := fmt.Sprintf("urunler-%s.xlsx", time.Now().Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))
		return c.Send(buf.Bytes())
	}
}

// POST /products/import
// XLSX dosyasındaki satırlardan yeni ürünler oluşturur. Kolon sırası
// export ile aynıdır: stok kodu, malzeme adı, malzeme adı 2, birim,
// seri no, grup. Eşleşmeyen ya da eksik satırlar atlanır.
func ImportProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userName, err := getUserInfo(c)
		if err != nil {
			return err
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya yüklenemedi: "+err.Error())
		}

		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Sadece .xlsx dosyaları yüklenebilir")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya açılamadı: "+err.Error())
		}
		defer file.Close()

		excelFile, err := excelize.OpenReader(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyası okunamadı: "+err.Error())
		}
		defer excelFile.Close()

		sheetList := excelFile.GetSheetList()
		if len(sheetList) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyasında sheet bulunamadı")
		}

		rows, err := excelFile.GetRows(sheetList[0])
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Sheet okunamadı: "+err.Error())
		}
		if len(rows) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyası boş")
		}

		// Grup isimleri büyük/küçük harf ve Türkçe karakter duyarsız eşleştirilir
		var groups []models.ProductGroup
		if err := database.DB.Find(&groups).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün grupları okunamadı")
		}
		groupsByName := make(map[string]uint, len(groups))
		for _, g := range groups {
			groupsByName[normalizeTurkish(g.Name)] = g.ID
		}

		// İlk satır başlık satırı mı? ("STOK KODU", "MALZEME ADI" gibi)
		startIndex := 0
		if len(rows[0]) > 0 {
			firstCell := strings.ToUpper(strings.TrimSpace(rows[0][0]))
			if strings.Contains(firstCell, "STOK") || strings.Contains(firstCell, "MALZEME") || strings.Contains(firstCell, "ÜRÜN") {
				startIndex = 1
			}
		}

		importedCount := 0
		skippedCount := 0

		for i := startIndex; i < len(rows); i++ {
			row := rows[i]
			if len(row) == 0 {
				continue
			}

			stockCode := cellAt(row, 0)
			name1 := cellAt(row, 1)
			name2 := cellAt(row, 2)
			unit := cellAt(row, 3)
			serial := cellAt(row, 4)
			groupName := cellAt(row, 5)

			// tamamen boş satır
			if stockCode == "" && name1 == "" {
				continue
			}

			if stockCode == "" || name1 == "" || unit == "" || groupName == "" {
				skippedCount++
				continue
			}

			groupID, ok := groupsByName[normalizeTurkish(groupName)]
			if !ok {
				skippedCount++
				continue
			}

			p := models.Product{
				StockCode:     stockCode,
				MaterialName1: name1,
				MaterialName2: optional(name2),
				UnitOfMeasure: unit,
				SerialNumber:  optional(serial),
				GroupID:       &groupID,
			}
			if err := database.DB.Create(&p).Error; err != nil {
				if !database.IsUniqueViolation(err) {
					zap.L().Error("İçe aktarma satırı kaydedilemedi", zap.Int("row", i+1), zap.Error(err))
				}
				skippedCount++
				continue
			}
			importedCount++
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "product",
			Action:      models.AuditActionImport,
			Description: fmt.Sprintf("Excel'den %d ürün aktarıldı, %d satır atlandı (%s)", importedCount, skippedCount, fileHeader.Filename),
		})

		return c.Redirect(fmt.Sprintf("/products?imported=%d&skipped=%d", importedCount, skippedCount), fiber.StatusSeeOther)
	}
}

func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
