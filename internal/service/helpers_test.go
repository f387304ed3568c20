package service

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"AuthKit/internal/model"
	"AuthKit/internal/repo"
	"AuthKit/internal/security"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// captureMailer запоминает отправленные письма и коды из них
type captureMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

type sentMail struct {
	To, Subject, Code string
}

var codeRe = regexp.MustCompile(`>(\d{6})<`)

func (m *captureMailer) Send(_ context.Context, to, subject, html string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	code := ""
	if mm := codeRe.FindStringSubmatch(html); mm != nil {
		code = mm[1]
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Code: code})
	return nil
}

func (m *captureMailer) last() sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return sentMail{}
	}
	return m.sent[len(m.sent)-1]
}

func (m *captureMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

// мок для repo.UserRepository
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) UpdateUser(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

type testEnv struct {
	svc    *AuthService
	mail   *captureMailer
	users  repo.UserRepository
	codes  repo.CodeRepository
	tokens *security.Tokens
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: "file:" + uuid.NewString() + "?mode=memory&cache=shared"}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	env := &testEnv{
		mail:   &captureMailer{},
		users:  repo.NewUserRepository(db),
		codes:  repo.NewCodeRepository(db),
		tokens: security.NewTokens("test-secret", time.Hour, 24*time.Hour),
	}
	env.svc = NewAuthService(env.users, env.codes, env.tokens, env.mail, zap.NewNop().Sugar(),
		Options{CodeTTL: 15 * time.Minute, MaxAttempts: 3})
	return env
}

// registerVerified регистрирует и подтверждает пользователя
func (e *testEnv) registerVerified(t *testing.T, email, pw string) *model.User {
	t.Helper()
	ctx := context.Background()
	if _, err := e.svc.Register(ctx, email, pw); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := e.svc.Verify(ctx, email, e.mail.last().Code); err != nil {
		t.Fatalf("verify: %v", err)
	}
	u, err := e.users.GetUserByEmail(ctx, email)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	return u
}
