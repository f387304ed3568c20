package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"AuthKit/internal/config"
	"AuthKit/internal/handlers"
	"AuthKit/internal/repo"
	"AuthKit/internal/security"
	"AuthKit/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

var codeRe = regexp.MustCompile(`>(\d{6})<`)

// codeMailer запоминает последний отправленный код по адресу.
type codeMailer struct {
	mu    sync.Mutex
	codes map[string]string
}

func (m *codeMailer) Send(_ context.Context, to, _, html string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if match := codeRe.FindStringSubmatch(html); match != nil {
		m.codes[to] = match[1]
	}
	return nil
}

func (m *codeMailer) code(to string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.codes[to]
}

type testServer struct {
	router http.Handler
	mail   *codeMailer
	cfg    *config.Config
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: "file:" + uuid.NewString() + "?mode=memory&cache=shared"}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{AuthSecret: "test-secret", AccessTokenMin: 60, RefreshTokenDay: 7}
	logger := zap.NewNop().Sugar()
	mail := &codeMailer{codes: map[string]string{}}
	tokens := security.NewTokens(cfg.AuthSecret, time.Hour, 7*24*time.Hour)
	svc := service.NewAuthService(repo.NewUserRepository(db), repo.NewCodeRepository(db), tokens, mail, logger,
		service.Options{CodeTTL: 15 * time.Minute, MaxAttempts: 6})

	h := handlers.NewHandler(svc, logger, cfg)
	return &testServer{router: h.Router, mail: mail, cfg: cfg}
}

// do выполняет запрос; token != "" добавляет Authorization: Bearer.
func (s *testServer) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

// signup регистрирует, подтверждает и логинит пользователя; возвращает access token.
func (s *testServer) signup(t *testing.T, email, password string) string {
	t.Helper()
	rr := s.do(t, http.MethodPost, "/auth/register", `{"email":"`+email+`","password":"`+password+`"}`, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("register: %d %s", rr.Code, rr.Body.String())
	}
	rr = s.do(t, http.MethodPost, "/auth/verify", `{"email":"`+email+`","code":"`+s.mail.code(email)+`"}`, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("verify: %d %s", rr.Code, rr.Body.String())
	}
	rr = s.do(t, http.MethodPost, "/auth/login", `{"email":"`+email+`","password":"`+password+`"}`, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("login: %d %s", rr.Code, rr.Body.String())
	}
	return decodeBody(t, rr)["access_token"].(string)
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return m
}

func newRecorder(s *testServer, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}
