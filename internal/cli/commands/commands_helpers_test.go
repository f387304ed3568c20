package commands

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"AuthKit/internal/config"
)

// withTempConfig возвращает конфиг клиента, чьи артефакты (файл токена)
// создаются во временном каталоге.
func withTempConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return &config.Config{
		ServerURL:     serverURL,
		TokenBackend:  config.BackendFile,
		TokenFile:     filepath.Join(dir, "access"),
		AfterLoginURL: "/dashboard",
	}
}

// fakeServer отвечает на каждый путь заданным статусом и телом и
// запоминает последний запрос.
type fakeServer struct {
	routes map[string]fakeResponse
	last   *http.Request
	body   string
}

type fakeResponse struct {
	status int
	body   string
}

func newFakeServer(t *testing.T, routes map[string]fakeResponse) (*fakeServer, string) {
	t.Helper()
	fs := &fakeServer{routes: routes}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r.Body)
		fs.last, fs.body = r, buf.String()
		resp, ok := fs.routes[r.URL.Path]
		if !ok {
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(resp.status)
		_, _ = w.Write([]byte(resp.body))
	}))
	t.Cleanup(ts.Close)
	return fs, ts.URL
}

func readToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	b, err := os.ReadFile(cfg.TokenFile)
	if os.IsNotExist(err) {
		return ""
	}
	if err != nil {
		t.Fatalf("read token: %v", err)
	}
	return string(b)
}
