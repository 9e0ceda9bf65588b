package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	"depo-web/internal/audit"
	"depo-web/internal/auth"
	"depo-web/internal/config"
	"depo-web/internal/inventory"
	"depo-web/web"
)

// New, şablon motorunu, middleware'leri ve tüm rotaları bağlayıp
// uygulamayı kurar. Testler de aynı kurulumu kullanır.
func New(cfg *config.Config, sessions *auth.Manager) *fiber.App {
	engine := html.NewFileSystem(web.Templates(), ".html")

	app := fiber.New(fiber.Config{
		Views:        engine,
		ViewsLayout:  "layouts/main",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/products")
	})

	// Oturum gerektirmeyen sayfalar
	app.Get("/login", auth.LoginPageHandler())
	app.Post("/login", auth.LoginHandler(sessions))
	app.Get("/setup", auth.SetupPageHandler())
	app.Post("/setup", auth.SetupHandler(sessions))

	// Oturum gerektiren sayfalar. Koruma prefix bazlıdır; hiçbir rotaya
	// uymayan yollar ErrorHandler'ın 404 sayfasına düşer.
	guard := auth.RequireSession(sessions)

	app.Post("/logout", guard, auth.LogoutHandler(sessions))

	// Ürünler ve stok hareketleri
	products := app.Group("/products", guard)
	products.Get("/", inventory.ListProductsHandler())
	products.Get("/new", inventory.NewProductFormHandler())
	products.Post("/new", inventory.CreateProductHandler())
	products.Get("/export", inventory.ExportProductsHandler())
	products.Post("/import", inventory.ImportProductsHandler())
	products.Get("/:id/moves", inventory.ListStockMovesHandler())
	products.Post("/:id/moves", inventory.CreateStockMoveHandler())

	// Ürün grupları
	groups := app.Group("/groups", guard)
	groups.Get("/", inventory.ListGroupsHandler())
	groups.Get("/new", inventory.NewGroupFormHandler())
	groups.Post("/new", inventory.CreateGroupHandler())

	// İşlem geçmişi
	app.Get("/audit", guard, audit.ListLogsHandler())

	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Beklenmeyen sunucu hatası"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		msg = e.Message
	} else {
		zap.L().Error("Beklenmeyen hata", zap.Error(err))
	}

	if renderErr := c.Status(code).Render("error", fiber.Map{
		"Title":   "Hata",
		"Code":    code,
		"Message": msg,
	}); renderErr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}
