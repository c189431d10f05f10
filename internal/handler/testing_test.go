package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/folio/folio-api/internal/cookie"
	"github.com/folio/folio-api/internal/crypto"
	"github.com/folio/folio-api/internal/mail"
	"github.com/folio/folio-api/internal/middleware"
	"github.com/folio/folio-api/internal/repository"
	"github.com/folio/folio-api/internal/service"
)

var testTokens = crypto.TokenIssuer{
	AccessSecret:  "access-secret-access-secret-0123456789",
	RefreshSecret: "refresh-secret-refresh-secret-0123456789",
	AccessTTL:     time.Hour,
	RefreshTTL:    24 * time.Hour,
}

type memoryImages struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (m *memoryImages) Upload(_ context.Context, fileName, _ string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	url := "https://cdn.test/portfolio/" + fileName
	m.objects[url] = data
	return url, nil
}

func (m *memoryImages) Delete(_ context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, url)
	return nil
}

func (m *memoryImages) has(url string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[url]
	return ok
}

type memoryMailer struct {
	mu   sync.Mutex
	sent []mail.Message
}

func (m *memoryMailer) Send(_ context.Context, msg mail.Message) (mail.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return mail.Receipt{ID: "msg-1", Accepted: msg.To}, nil
}

type testServer struct {
	*httptest.Server
	images *memoryImages
	mailer *memoryMailer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithLimiter(t, middleware.NewRateLimiter(middleware.RateLimitConfig{RPS: 1000, Burst: 1000}))
}

func newTestServerWithLimiter(t *testing.T, limiter *middleware.RateLimiter) *testServer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))

	users := repository.NewUserRepository(db)
	hasher := crypto.NewHasher(bcrypt.MinCost)
	images := &memoryImages{objects: make(map[string][]byte)}
	mailer := &memoryMailer{}

	router := NewRouter(Deps{
		Auth:          service.NewAuthService(users, hasher, testTokens, nil),
		Users:         service.NewUserService(users, hasher, testTokens, images),
		Blogs:         service.NewBlogService(repository.NewBlogRepository(db), images),
		Projects:      service.NewProjectService(repository.NewProjectRepository(db), images),
		Skills:        service.NewSkillService(repository.NewSkillRepository(db), images),
		Contact:       service.NewContactService(mailer, "owner@example.com"),
		Authenticator: middleware.NewAuthenticator(users, testTokens, nil, true),
		Images:        images,
		Cookies:       cookie.NewWriter(false, false, time.Hour, 24*time.Hour),
		Env:           "test",
		FrontendURL:   "http://localhost:3000",
		RateLimiter:   limiter,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		srv.Close()
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return &testServer{Server: srv, images: images, mailer: mailer}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    *struct {
		Total int `json:"total"`
	} `json:"meta"`
}

type call struct {
	method      string
	path        string
	body        io.Reader
	contentType string
	token       string
	cookies     []*http.Cookie
	headers     map[string]string
}

func (s *testServer) do(t *testing.T, c call) (*http.Response, envelope) {
	t.Helper()

	req, err := http.NewRequest(c.method, s.URL+c.path, c.body)
	require.NoError(t, err)
	if c.contentType != "" {
		req.Header.Set("Content-Type", c.contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()

	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func (s *testServer) postJSON(t *testing.T, path, token string, v any) (*http.Response, envelope) {
	t.Helper()
	return s.do(t, call{method: http.MethodPost, path: path, body: jsonBody(t, v), contentType: "application/json", token: token})
}

type upload struct {
	field       string
	fileName    string
	contentType string
	data        []byte
}

// multipartBody builds a form with a "data" JSON field and the given files.
func multipartBody(t *testing.T, data any, files ...upload) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if data != nil {
		raw, err := json.Marshal(data)
		require.NoError(t, err)
		require.NoError(t, mw.WriteField("data", string(raw)))
	}

	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.fileName+`"`)
		h.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

// formBody builds a multipart form of plain fields, without a "data" document.
func formBody(t *testing.T, fields [][2]string, files ...upload) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range fields {
		require.NoError(t, mw.WriteField(f[0], f[1]))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.fileName+`"`)
		h.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func decodeData(t *testing.T, env envelope, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

func cookieNamed(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

type session struct {
	UserID       string
	AccessToken  string
	RefreshToken string
}

// registerAndLogin creates a user through the API and logs in.
func (s *testServer) registerAndLogin(t *testing.T, email string) session {
	t.Helper()

	resp, _ := s.postJSON(t, "/api/v1/users/register", "", map[string]string{
		"email": email, "password": "correct horse", "name": "Ada",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, env := s.postJSON(t, "/api/v1/auth/login", "", map[string]string{
		"email": email, "password": "correct horse",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
		User         struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	decodeData(t, env, &data)
	return session{UserID: data.User.ID, AccessToken: data.AccessToken, RefreshToken: data.RefreshToken}
}
