package auth

import (
	"github.com/gofiber/fiber/v2"
)

const CtxUserIDKey = "userID"

// RequireSession, oturumu olmayan istekleri veri katmanına hiç inmeden
// /login sayfasına yönlendirir. Geçerli oturumun kullanıcı kimliği
// c.Locals üzerinden sonraki handler'lara taşınır.
func RequireSession(sessions *Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := sessions.Resolve(c)
		if err != nil {
			return c.Redirect("/login")
		}

		c.Locals(CtxUserIDKey, userID)
		return c.Next()
	}
}

func CurrentUserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals(CtxUserIDKey).(uint)
	return userID, ok
}
