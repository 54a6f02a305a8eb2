package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/msomdec/taskvault/internal/config"
	"github.com/msomdec/taskvault/internal/handler"
	"github.com/msomdec/taskvault/internal/repository/sqlite"
	"github.com/msomdec/taskvault/internal/service"
)

const testSecretKey = "test-secret-for-handler-tests-0123456789"

type testEnv struct {
	db     *sqlite.DB
	svc    handler.Services
	server *httptest.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		SecretKey:                testSecretKey,
		Algorithm:                "HS256",
		AccessTokenExpireMinutes: 60,
	}
	tokens, err := service.NewTokenService(cfg)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	svc := handler.Services{
		Store:    db,
		Tokens:   tokens,
		Resolver: service.NewIdentityResolver(tokens),
		// Cheap parameters keep the tests fast.
		Accounts: service.NewAccountService(service.NewArgon2Hasher(64, 1, 1)),
		Tasks:    service.NewTaskService(),
	}

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, svc)
	srv := httptest.NewServer(handler.SecurityHeaders(mux))
	t.Cleanup(srv.Close)

	return &testEnv{db: db, svc: svc, server: srv}
}

type response struct {
	status int
	header http.Header
	body   []byte
}

func (r response) decode(t *testing.T, dst any) {
	t.Helper()
	if err := json.Unmarshal(r.body, dst); err != nil {
		t.Fatalf("decode %s: %v", r.body, err)
	}
}

func (r response) detail(t *testing.T) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	r.decode(t, &body)
	return body.Detail
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) response {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return response{status: resp.StatusCode, header: resp.Header, body: raw}
}

// signup registers and logs in, returning an access token.
func (e *testEnv) signup(t *testing.T, email, password string) string {
	t.Helper()
	creds := map[string]string{"email": email, "password": password}

	if resp := e.do(t, http.MethodPost, "/auth/register", "", creds); resp.status != http.StatusOK {
		t.Fatalf("register %s: status %d body %s", email, resp.status, resp.body)
	}

	resp := e.do(t, http.MethodPost, "/auth/login", "", creds)
	if resp.status != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", email, resp.status, resp.body)
	}
	var tok handler.TokenDTO
	resp.decode(t, &tok)
	return tok.AccessToken
}
