package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"depo-web/internal/audit"
	"depo-web/internal/database"
	"depo-web/internal/models"
)

func userCount() (int64, error) {
	var count int64
	err := database.DB.Model(&models.User{}).Count(&count).Error
	return count, err
}

// GET /login
func LoginPageHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		count, err := userCount()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcılar okunamadı")
		}
		if count == 0 {
			// Hiç kullanıcı yok, önce kurulum
			return c.Redirect("/setup")
		}
		return c.Render("login", fiber.Map{"Title": "Giriş", "Error": "", "Email": ""})
	}
}

// POST /login
func LoginHandler(sessions *Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := strings.TrimSpace(strings.ToLower(c.FormValue("email")))
		password := c.FormValue("password")

		if email == "" || password == "" {
			return c.Status(fiber.StatusBadRequest).Render("login", fiber.Map{
				"Title": "Giriş",
				"Error": "Email ve şifre zorunlu",
				"Email": email,
			})
		}

		var user models.User
		if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{
				"Title": "Giriş",
				"Error": "Email veya şifre hatalı",
				"Email": email,
			})
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{
				"Title": "Giriş",
				"Error": "Email veya şifre hatalı",
				"Email": email,
			})
		}

		if err := sessions.Issue(c, user.ID); err != nil {
			zap.L().Error("Oturum açılamadı", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "Oturum açılamadı")
		}

		zap.L().Info("Kullanıcı giriş yaptı", zap.Uint("user_id", user.ID))
		return c.Redirect("/products", fiber.StatusSeeOther)
	}
}

// POST /logout
func LogoutHandler(sessions *Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessions.Destroy(c)
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
}

// GET /setup
func SetupPageHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		count, err := userCount()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcılar okunamadı")
		}
		if count > 0 {
			return c.Redirect("/login")
		}
		return c.Render("setup", fiber.Map{"Title": "Kurulum", "Error": "", "Name": "", "Email": ""})
	}
}

// POST /setup
// İlk kullanıcıyı oluşturur. Sistemde kullanıcı varsa form reddedilir.
func SetupHandler(sessions *Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		count, err := userCount()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcılar okunamadı")
		}
		if count > 0 {
			return c.Redirect("/login", fiber.StatusSeeOther)
		}

		name := strings.TrimSpace(c.FormValue("name"))
		email := strings.TrimSpace(strings.ToLower(c.FormValue("email")))
		password := c.FormValue("password")

		if name == "" || email == "" || len(password) < 6 {
			return c.Status(fiber.StatusBadRequest).Render("setup", fiber.Map{
				"Title": "Kurulum",
				"Error": "Ad, email ve en az 6 karakterlik şifre zorunlu",
				"Name":  name,
				"Email": email,
			})
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre işlenemedi")
		}

		user := models.User{Name: name, Email: email, PasswordHash: string(hash)}
		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı oluşturulamadı")
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      user.ID,
			UserName:    user.Name,
			EntityType:  "user",
			EntityID:    user.ID,
			Action:      models.AuditActionCreate,
			Description: "İlk kullanıcı oluşturuldu: " + user.Email,
		})

		if err := sessions.Issue(c, user.ID); err != nil {
			zap.L().Error("Oturum açılamadı", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "Oturum açılamadı")
		}

		zap.L().Info("İlk kullanıcı oluşturuldu", zap.Uint("user_id", user.ID))
		return c.Redirect("/products", fiber.StatusSeeOther)
	}
}
