package inventory_test

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"depo-web/internal/auth"
	"depo-web/internal/config"
	"depo-web/internal/database"
	"depo-web/internal/models"
	"depo-web/internal/server"
)

// newTestApp, her test için ayrı bir in-memory sqlite veritabanı açar ve
// uygulamayı gerçek rotalarıyla kurar. TranslateError sayesinde sqlite
// benzersizlik ihlalleri gorm.ErrDuplicatedKey olarak görünür.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	database.DB = db
	database.Migrate()

	cfg := &config.Config{
		JWTSecret:       strings.Repeat("s", 32),
		SessionTTLHours: 1,
	}
	sessions := auth.NewManager(cfg, auth.NewMemorySessionStore())
	return server.New(cfg, sessions), db
}

// loginCookie, bir kullanıcı oluşturup login akışından geçer ve oturum
// çerezini döndürür.
func loginCookie(t *testing.T, app *fiber.App, db *gorm.DB) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("parola123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{Name: "Depocu", Email: "depocu@example.com", PasswordHash: string(hash)}
	require.NoError(t, db.Create(&user).Error)

	form := url.Values{"email": {user.Email}, "password": {"parola123"}}
	resp := postForm(t, app, "/login", "", form)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	for _, ck := range resp.Cookies() {
		if ck.Name == auth.CookieName {
			return ck.Name + "=" + ck.Value
		}
	}
	t.Fatal("oturum çerezi dönmedi")
	return ""
}

func get(t *testing.T, app *fiber.App, path, cookie string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func postForm(t *testing.T, app *fiber.App, path, cookie string, form url.Values) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func postFile(t *testing.T, app *fiber.App, path, cookie, filename string, content []byte) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func seedGroup(t *testing.T, db *gorm.DB, name string) models.ProductGroup {
	t.Helper()

	g := models.ProductGroup{Name: name}
	require.NoError(t, db.Create(&g).Error)
	return g
}

func seedProduct(t *testing.T, db *gorm.DB, p models.Product) models.Product {
	t.Helper()

	require.NoError(t, db.Create(&p).Error)
	return p
}

func buildXLSX(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		require.NoError(t, f.SetSheetRow("Sheet1", fmt.Sprintf("A%d", i+1), &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func strPtr(s string) *string { return &s }
