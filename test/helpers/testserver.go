package helpers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"

	"startuphub_backend/database"
	"startuphub_backend/internal/app"
	"startuphub_backend/internal/config"
	"startuphub_backend/internal/email"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// TestServer wires the full router against an isolated in-memory database.
// Every server gets its own database, so tests can run in parallel.
type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
	Mailer *CapturingMailer
}

// NewTestServer builds a ready-to-use server. opts mutate the config before
// the router is built (rate limits, legacy session toggle, storage paths).
func NewTestServer(t *testing.T, opts ...func(*config.Config)) *TestServer {
	t.Helper()

	cfg := TestConfig(t)
	for _, opt := range opts {
		opt(cfg)
	}

	db := OpenTestDB(t)
	mailer := NewCapturingMailer()

	router := app.SetupRouter(cfg, db, mailer)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestServer{
		Server: server,
		DB:     db,
		Mailer: mailer,
	}
}

// TestConfig returns a config suitable for tests: generous rate limits so
// unrelated tests never trip them, local storage in a temp dir.
func TestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.JWT.Secret = "test-signing-secret-0123456789"
	cfg.JWT.AccessTTLMinutes = 15
	cfg.JWT.RefreshTTLDays = 7
	cfg.Auth.LegacySessions = true
	cfg.Auth.CookieHTTPOnly = true
	cfg.Auth.CodeTTLMinutes = 15
	cfg.RateLimit.SignupPerMinute = 1000
	cfg.RateLimit.LoginPerMinute = 1000
	cfg.RateLimit.SendCodePerMinute = 1000
	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = t.TempDir()
	cfg.Upload.MaxSize = 10 * 1024 * 1024
	return cfg
}

// OpenTestDB opens a fresh in-memory sqlite database with the full schema.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// The in-memory database lives as long as one connection does.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get *sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// SendRequest performs a JSON request against the server. An empty token
// sends no Authorization header.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return ts.do(t, req)
}

// SendRequestWithCookies is SendRequest with explicit cookies instead of a
// bearer token.
func (ts *TestServer) SendRequestWithCookies(t *testing.T, method, path string, cookies []*http.Cookie, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return ts.do(t, req)
}

// UploadFile performs a multipart upload of the given bytes as field "file"
// with an explicit part content type.
func (ts *TestServer) UploadFile(t *testing.T, path, token, filename, contentType string, content []byte) (*http.Response, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	partHeader.Set("Content-Type", contentType)
	part, err := writer.CreatePart(partHeader)
	if err != nil {
		t.Fatalf("failed to build multipart body: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write multipart body: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+path, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return ts.do(t, req)
}

func (ts *TestServer) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return res, string(raw)
}

// CapturingMailer records verification codes instead of sending email.
type CapturingMailer struct {
	mu    sync.Mutex
	codes map[string][]string
}

func NewCapturingMailer() *CapturingMailer {
	return &CapturingMailer{codes: make(map[string][]string)}
}

func (m *CapturingMailer) Send(e *email.Email) error { return nil }

func (m *CapturingMailer) SendTemplate(to []string, subject, templateName string, data email.TemplateData) error {
	return nil
}

func (m *CapturingMailer) SendVerificationCode(to, username, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[to] = append(m.codes[to], code)
	return nil
}

func (m *CapturingMailer) Validate() error { return nil }
func (m *CapturingMailer) Close() error    { return nil }

// LastCode returns the most recent code sent to the address, or "".
func (m *CapturingMailer) LastCode(to string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	sent := m.codes[to]
	if len(sent) == 0 {
		return ""
	}
	return sent[len(sent)-1]
}

// CodesSent returns how many codes were sent to the address.
func (m *CapturingMailer) CodesSent(to string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.codes[to])
}
