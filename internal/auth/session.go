package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"depo-web/internal/config"
)

const CookieName = "depo_session"

var ErrNoSession = errors.New("oturum bulunamadı")

// Manager, çerez tabanlı oturumları yönetir. Çerezde imzalı bir JWT
// taşınır, oturumun kendisi store'da yaşar; böylece logout anında
// sunucu tarafında geçersiz kılınabilir.
type Manager struct {
	secret []byte
	ttl    time.Duration
	secure bool
	store  SessionStore
}

func NewManager(cfg *config.Config, store SessionStore) *Manager {
	return &Manager{
		secret: []byte(cfg.JWTSecret),
		ttl:    time.Duration(cfg.SessionTTLHours) * time.Hour,
		secure: cfg.CookieSecure,
		store:  store,
	}
}

// Issue, kullanıcı için yeni bir oturum açar ve çerezi yanıta yazar.
func (m *Manager) Issue(c *fiber.Ctx, userID uint) error {
	sid := uuid.NewString()
	if err := m.store.Save(c.Context(), sid, userID, m.ttl); err != nil {
		return err
	}

	token, err := signSessionToken(m.secret, userID, sid, m.ttl)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  time.Now().Add(m.ttl),
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: "Lax",
		Path:     "/",
	})
	return nil
}

// Resolve, istekteki oturum çerezini doğrular ve kullanıcı kimliğini
// döndürür. Token imzası geçerli olsa bile store'da kaydı olmayan
// (logout edilmiş ya da süresi dolmuş) oturumlar reddedilir.
func (m *Manager) Resolve(c *fiber.Ctx) (uint, error) {
	raw := c.Cookies(CookieName)
	if raw == "" {
		return 0, ErrNoSession
	}

	claims, err := parseSessionToken(m.secret, raw)
	if err != nil {
		return 0, ErrNoSession
	}

	userID, err := m.store.Get(c.Context(), claims.ID)
	if err != nil {
		return 0, ErrNoSession
	}
	if userID != claims.UserID {
		return 0, ErrNoSession
	}
	return userID, nil
}

// Destroy, oturum kaydını store'dan siler ve çerezi geçersiz kılar.
func (m *Manager) Destroy(c *fiber.Ctx) {
	if raw := c.Cookies(CookieName); raw != "" {
		if claims, err := parseSessionToken(m.secret, raw); err == nil {
			_ = m.store.Delete(c.Context(), claims.ID)
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: "Lax",
		Path:     "/",
	})
}
