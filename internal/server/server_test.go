package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"appsuite-be/internal/cache"
	"appsuite-be/internal/config"
	"appsuite-be/internal/idgen"
	"appsuite-be/internal/jwt"
	"appsuite-be/internal/repository"
	"appsuite-be/internal/service"
)

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		BaseURL:                "http://sho.rt",
		RateLimitRPS:           1000,
		RateLimitBurst:         1000,
		RateLimitAuthRPS:       1000,
		RateLimitAuthBurst:     1000,
		RateLimitShortenRPS:    1000,
		RateLimitShortenBurst:  1000,
		RateLimitRedirectRPS:   1000,
		RateLimitRedirectBurst: 1000,
	}
	store := repository.NewMemoryStore()
	cacheClient := cache.NewMemoryCache()
	logger := zap.NewNop()

	srv := New(Deps{
		Config:       cfg,
		Logger:       logger,
		URLService:   service.NewURLService(store.URLs(), cacheClient, idgen.NewRandomGenerator(6), logger),
		AuthService:  service.NewAuthService(store.Users(), jwt.NewJWTService("test", time.Hour), cacheClient, logger),
		Notes:        service.NewNoteStore(),
		RegexService: service.NewRegexService(),
		NameService:  service.NewNameService(),
	})
	t.Cleanup(srv.Close)
	return &testServer{t: t, router: srv.Router}
}

func (s *testServer) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			s.t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dest); err != nil {
		t.Fatalf("invalid JSON %q: %v", w.Body.String(), err)
	}
}

type shortenBody struct {
	Success      bool   `json:"success"`
	ShortenedURL string `json:"shortened_url"`
	ShortCode    string `json:"short_code"`
	Message      string `json:"message"`
	Error        string `json:"error"`
}

type historyBody struct {
	Data []struct {
		ID          string `json:"id"`
		OriginalURL string `json:"original_url"`
		ShortCode   string `json:"short_code"`
		ClickCount  int64  `json:"click_count"`
	} `json:"data"`
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	if w := s.do(http.MethodGet, "/health", nil, ""); w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
	if w := s.do(http.MethodGet, "/metrics", nil, ""); w.Code != http.StatusOK {
		t.Errorf("metrics status = %d", w.Code)
	}
}

func TestAnonymousShortener(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/shorten", map[string]string{"url": "example.com"}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("shorten status = %d: %s", w.Code, w.Body.String())
	}
	var created shortenBody
	decode(t, w, &created)
	if len(created.ShortCode) != 6 || created.ShortenedURL != "http://sho.rt/s/"+created.ShortCode {
		t.Errorf("unexpected response %+v", created)
	}

	w = s.do(http.MethodPost, "/api/shorten", map[string]string{"url": "https://example.com"}, "")
	var again shortenBody
	decode(t, w, &again)
	if w.Code != http.StatusOK || again.ShortCode != created.ShortCode || again.Message != "URL already shortened" {
		t.Errorf("second shorten = %d %+v", w.Code, again)
	}

	w = s.do(http.MethodGet, "/s/"+created.ShortCode, nil, "")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "https://example.com" {
		t.Errorf("redirect = %d %q", w.Code, w.Header().Get("Location"))
	}

	var history historyBody
	decode(t, s.do(http.MethodGet, "/api/history", nil, ""), &history)
	if len(history.Data) != 1 || history.Data[0].ClickCount != 1 {
		t.Fatalf("history = %+v", history)
	}

	if w := s.do(http.MethodDelete, "/api/delete/"+history.Data[0].ID, nil, ""); w.Code != http.StatusOK {
		t.Errorf("delete status = %d", w.Code)
	}
	if w := s.do(http.MethodDelete, "/api/delete/"+history.Data[0].ID, nil, ""); w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d", w.Code)
	}
	if w := s.do(http.MethodGet, "/s/"+created.ShortCode, nil, ""); w.Code != http.StatusNotFound {
		t.Errorf("redirect after delete status = %d", w.Code)
	}
}

func TestShortenValidation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/shorten", map[string]string{"url": "  "}, "")
	var body shortenBody
	decode(t, w, &body)
	if w.Code != http.StatusBadRequest || body.Error != "URL cannot be empty" {
		t.Errorf("got %d %+v", w.Code, body)
	}
}

func TestAccountsShortener(t *testing.T) {
	s := newTestServer(t)

	creds := map[string]string{"username": "alice1", "password": "secret1", "confirm_password": "secret1"}
	if w := s.do(http.MethodPost, "/api/v1/auth/signup", creds, ""); w.Code != http.StatusCreated {
		t.Fatalf("signup status = %d: %s", w.Code, w.Body.String())
	}
	if w := s.do(http.MethodPost, "/api/v1/auth/signup", creds, ""); w.Code != http.StatusBadRequest {
		t.Errorf("duplicate signup status = %d", w.Code)
	}

	w := s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "alice1", "password": "secret1"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", w.Code, w.Body.String())
	}
	var login struct {
		Token    string `json:"token"`
		Username string `json:"username"`
	}
	decode(t, w, &login)
	if login.Token == "" || login.Username != "alice1" {
		t.Fatalf("login = %+v", login)
	}
	if !strings.Contains(w.Header().Get("Set-Cookie"), "session=") {
		t.Error("login did not set the session cookie")
	}

	if w := s.do(http.MethodPost, "/api/v1/shorten", map[string]string{"url": "example.com"}, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated shorten status = %d", w.Code)
	}

	w = s.do(http.MethodPost, "/api/v1/shorten", map[string]string{"url": "example.com"}, login.Token)
	if w.Code != http.StatusCreated {
		t.Fatalf("shorten status = %d: %s", w.Code, w.Body.String())
	}
	var created shortenBody
	decode(t, w, &created)

	var anon historyBody
	decode(t, s.do(http.MethodGet, "/api/history", nil, ""), &anon)
	if len(anon.Data) != 0 {
		t.Errorf("owned mapping leaked into anonymous history: %+v", anon)
	}

	s.do(http.MethodGet, "/s/"+created.ShortCode, nil, "")
	if w := s.do(http.MethodGet, "/api/v1/url/"+created.ShortCode, nil, login.Token); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"click_count":1`) {
		t.Errorf("stats = %d %s", w.Code, w.Body.String())
	}
	if w := s.do(http.MethodGet, "/api/v1/url/"+created.ShortCode+"/analytics?hours=6", nil, login.Token); w.Code != http.StatusOK {
		t.Errorf("analytics status = %d", w.Code)
	}

	w = s.do(http.MethodGet, "/api/v1/redirect/"+created.ShortCode, nil, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "https://example.com") {
		t.Errorf("preview = %d %s", w.Code, w.Body.String())
	}
	w = s.do(http.MethodGet, "/api/v1/qrcode/"+created.ShortCode, nil, "")
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "image/png" {
		t.Errorf("qrcode = %d %q", w.Code, w.Header().Get("Content-Type"))
	}
	if w := s.do(http.MethodGet, "/api/v1/qrcode/nope00", nil, ""); w.Code != http.StatusNotFound {
		t.Errorf("qrcode for unknown code status = %d", w.Code)
	}

	w = s.do(http.MethodGet, "/api/v1/auth/check-auth", nil, login.Token)
	if !strings.Contains(w.Body.String(), `"logged_in":true`) {
		t.Errorf("check-auth = %s", w.Body.String())
	}

	if w := s.do(http.MethodPost, "/api/v1/auth/logout", nil, login.Token); w.Code != http.StatusOK {
		t.Errorf("logout status = %d", w.Code)
	}
	if w := s.do(http.MethodGet, "/api/v1/history", nil, login.Token); w.Code != http.StatusUnauthorized {
		t.Errorf("history after logout status = %d", w.Code)
	}
	w = s.do(http.MethodGet, "/api/v1/auth/check-auth", nil, login.Token)
	if !strings.Contains(w.Body.String(), `"logged_in":false`) {
		t.Errorf("check-auth after logout = %s", w.Body.String())
	}
}

func TestLoginFailures(t *testing.T) {
	s := newTestServer(t)
	s.do(http.MethodPost, "/api/v1/auth/signup", map[string]string{"username": "alice1", "password": "secret1", "confirm_password": "secret1"}, "")

	if w := s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "alice1", "password": "nope123"}, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d", w.Code)
	}
	if w := s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "alice1"}, ""); w.Code != http.StatusBadRequest {
		t.Errorf("missing password status = %d", w.Code)
	}
}

func TestDeleteAccount(t *testing.T) {
	s := newTestServer(t)
	s.do(http.MethodPost, "/api/v1/auth/signup", map[string]string{"username": "alice1", "password": "secret1", "confirm_password": "secret1"}, "")
	var login struct {
		Token string `json:"token"`
	}
	decode(t, s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "alice1", "password": "secret1"}, ""), &login)

	var created shortenBody
	decode(t, s.do(http.MethodPost, "/api/v1/shorten", map[string]string{"url": "example.com"}, login.Token), &created)

	if w := s.do(http.MethodDelete, "/api/v1/auth/account", nil, login.Token); w.Code != http.StatusOK {
		t.Fatalf("delete account status = %d: %s", w.Code, w.Body.String())
	}
	if w := s.do(http.MethodGet, "/s/"+created.ShortCode, nil, ""); w.Code != http.StatusNotFound {
		t.Errorf("mapping survived account deletion: %d", w.Code)
	}
}

func TestNotes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/notes", map[string]string{"note": "buy milk"}, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"notes":["buy milk"]`) {
		t.Fatalf("add = %d %s", w.Code, w.Body.String())
	}

	for i := 0; i < 2; i++ {
		w = s.do(http.MethodDelete, "/api/notes/0", nil, "")
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"notes":[]`) {
			t.Errorf("delete #%d = %d %s", i, w.Code, w.Body.String())
		}
	}

	if w := s.do(http.MethodDelete, "/api/notes/abc", nil, ""); w.Code != http.StatusNotFound {
		t.Errorf("non-numeric index status = %d", w.Code)
	}
}

func TestRegexAndNames(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/regex/test", map[string]string{"pattern": `\d+`, "test_string": "a1b22", "flags": ""}, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"total_matches":2`) {
		t.Errorf("regex = %d %s", w.Code, w.Body.String())
	}
	w = s.do(http.MethodPost, "/api/regex/test", map[string]string{"pattern": `(`, "test_string": "x"}, "")
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "Invalid regex") {
		t.Errorf("invalid regex = %d %s", w.Code, w.Body.String())
	}

	w = s.do(http.MethodGet, "/api/names?name=Bob", nil, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"uppercase_name":"BOB"`) {
		t.Errorf("names = %d %s", w.Code, w.Body.String())
	}
	if w := s.do(http.MethodGet, "/api/names", nil, ""); w.Code != http.StatusBadRequest {
		t.Errorf("empty name status = %d", w.Code)
	}
}
