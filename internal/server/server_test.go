package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"linkgate/internal/config"
	"linkgate/internal/logger"
	"linkgate/internal/metrics"
	"linkgate/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type apiClient struct {
	t      *testing.T
	router http.Handler
	clock  *testutil.Clock
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.Config{
		JWTSecret:              "e2e-secret",
		JWTTTL:                 168,
		BcryptCost:             bcrypt.MinCost,
		SlugLength:             5,
		MaxPageLimit:           100,
		RateLimitRPS:           1000,
		RateLimitBurst:         1000,
		RateLimitAuthRPS:       1000,
		RateLimitAuthBurst:     1000,
		RateLimitShortenRPS:    1000,
		RateLimitShortenBurst:  1000,
		RateLimitRedirectRPS:   1000,
		RateLimitRedirectBurst: 1000,
	}
	clock := testutil.NewClock(time.Now().UTC())

	router := NewRouter(ctx, Options{
		Config:  cfg,
		DB:      testutil.NewDB(t),
		Logger:  logger.Nop(),
		Metrics: metrics.New(),
		Clock:   clock,
	})
	return &apiClient{t: t, router: router, clock: clock}
}

func (a *apiClient) do(method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Host = "sho.rt"
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Header().Get("Content-Type") != "" && bytes.HasPrefix(bytes.TrimSpace(w.Body.Bytes()), []byte("{")) {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func (a *apiClient) login(email string) string {
	a.t.Helper()
	creds := map[string]string{"email": email, "password": "secret1"}

	w, _ := a.do(http.MethodPost, "/api/auth/register", "", creds)
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	w, body := a.do(http.MethodPost, "/api/auth/login", "", creds)
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	return body["token"].(string)
}

func (a *apiClient) create(token string, req map[string]any) map[string]any {
	a.t.Helper()
	w, body := a.do(http.MethodPost, "/api/urls", token, req)
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	return body["url"].(map[string]any)
}

func (a *apiClient) clickTotal(token, id string) float64 {
	a.t.Helper()
	w, body := a.do(http.MethodGet, "/api/urls/"+id+"/clicks", token, nil)
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	return body["pagination"].(map[string]any)["total"].(float64)
}

func TestHealthAndMetrics(t *testing.T) {
	api := newAPI(t)

	w, body := api.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])

	w, _ = api.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "linkgate_http_requests_total")
}

func TestAuthFlow(t *testing.T) {
	api := newAPI(t)
	api.login("a@example.com")

	w, body := api.do(http.MethodPost, "/api/auth/register", "", map[string]string{"email": "a@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "User already exists", body["error"])

	w, _ = api.do(http.MethodPost, "/api/auth/register", "", map[string]string{"email": "b@example.com", "password": "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = api.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "a@example.com", "password": "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = api.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "a@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAndRedirect(t *testing.T) {
	api := newAPI(t)

	url := api.create("", map[string]any{"originalUrl": "example.com"})
	assert.Equal(t, "https://example.com/", url["originalUrl"])
	assert.Equal(t, "http://sho.rt/"+url["slug"].(string), url["shortUrl"])
	assert.Equal(t, false, url["isCustom"])

	w, _ := api.do(http.MethodGet, "/"+url["slug"].(string), "", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://example.com/", w.Header().Get("Location"))

	w, body := api.do(http.MethodGet, "/api/urls/check/"+url["slug"].(string), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://example.com/", body["redirectUrl"])

	w, _ = api.do(http.MethodGet, "/missing1", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = api.do(http.MethodPost, "/api/urls", "", map[string]any{"originalUrl": "not a url"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = api.do(http.MethodPost, "/api/urls", "", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = api.do(http.MethodGet, "/api/qrcode/"+url["slug"].(string), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
}

func TestInvalidTokenCreatesAnonymousLink(t *testing.T) {
	api := newAPI(t)
	token := api.login("owner@example.com")

	url := api.create("garbage-token", map[string]any{"originalUrl": "https://anon.example"})
	assert.Nil(t, url["userId"])

	w, body := api.do(http.MethodGet, "/api/urls", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["urls"])

	w, _ = api.do(http.MethodDelete, "/api/urls/"+url["id"].(string), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "anonymous links are immutable")
}

func TestOwnedLifecycle(t *testing.T) {
	api := newAPI(t)
	owner := api.login("owner@example.com")
	intruder := api.login("intruder@example.com")

	url := api.create(owner, map[string]any{"originalUrl": "https://a.example", "customSlug": "launch", "title": "Launch"})
	id := url["id"].(string)
	assert.Equal(t, true, url["isCustom"])

	w, _ := api.do(http.MethodPost, "/api/urls", "", map[string]any{"originalUrl": "https://b.example", "customSlug": "launch"})
	assert.Equal(t, http.StatusConflict, w.Code)

	for i := 0; i < 3; i++ {
		w, _ = api.do(http.MethodGet, "/launch", "", nil)
		require.Equal(t, http.StatusFound, w.Code)
	}
	w, _ = api.do(http.MethodPost, "/api/urls/"+id+"/clicks", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, body := api.do(http.MethodGet, "/api/urls", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	urls := body["urls"].([]any)
	require.Len(t, urls, 1)
	assert.Equal(t, 4.0, urls[0].(map[string]any)["clickCount"])

	w, body = api.do(http.MethodGet, "/api/urls/"+id+"/clicks?page=1&limit=3", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"page": 1.0, "limit": 3.0, "total": 4.0, "pages": 2.0}, body["pagination"])

	// Foreign and unauthenticated callers
	w, _ = api.do(http.MethodGet, "/api/urls/"+id+"/clicks", intruder, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = api.do(http.MethodPut, "/api/urls/"+id, intruder, map[string]any{"isActive": false})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = api.do(http.MethodGet, "/api/urls", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = api.do(http.MethodDelete, "/api/urls/"+id, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Partial update
	w, body = api.do(http.MethodPut, "/api/urls/"+id, owner, map[string]any{"slug": "relaunch", "title": nil})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := body["url"].(map[string]any)
	assert.Equal(t, "relaunch", updated["slug"])
	assert.Nil(t, updated["title"])
	assert.Equal(t, "https://a.example/", updated["originalUrl"])

	w, _ = api.do(http.MethodGet, "/launch", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Deactivation wins over everything
	w, _ = api.do(http.MethodPut, "/api/urls/"+id, owner, map[string]any{"isActive": false})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = api.do(http.MethodGet, "/relaunch", "", nil)
	assert.Equal(t, http.StatusGone, w.Code)

	// Delete cascades
	w, _ = api.do(http.MethodDelete, "/api/urls/"+id, owner, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = api.do(http.MethodGet, "/api/urls/"+id+"/clicks", owner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = api.do(http.MethodPost, "/api/urls/"+id+"/clicks", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPasswordProtectedLink(t *testing.T) {
	api := newAPI(t)
	owner := api.login("owner@example.com")

	url := api.create(owner, map[string]any{"originalUrl": "https://secret.example", "password": "open-sesame"})
	id, slug := url["id"].(string), url["slug"].(string)
	assert.Equal(t, true, url["hasPassword"])

	w, body := api.do(http.MethodGet, "/"+slug, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Password required", body["error"])
	assert.Equal(t, true, body["requiresPassword"])
	assert.Equal(t, id, body["urlId"])

	w, _ = api.do(http.MethodPost, "/api/urls/"+id+"/access", "", map[string]any{"password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, api.clickTotal(owner, id))

	w, _ = api.do(http.MethodPost, "/api/urls/"+id+"/access", "", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = api.do(http.MethodPost, "/api/urls/"+id+"/access", "", map[string]any{"password": "open-sesame"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://secret.example/", body["redirectUrl"])
	assert.Equal(t, 1.0, api.clickTotal(owner, id))

	// Removing the password opens the link
	w, _ = api.do(http.MethodPut, "/api/urls/"+id, owner, map[string]any{"password": ""})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = api.do(http.MethodPost, "/api/urls/"+id+"/access", "", map[string]any{"password": "open-sesame"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = api.do(http.MethodGet, "/"+slug, "", nil)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestOverlongPasswordsAreRejected(t *testing.T) {
	api := newAPI(t)
	long := strings.Repeat("p", 80)

	w, body := api.do(http.MethodPost, "/api/auth/register", "", map[string]string{"email": "long@example.com", "password": long})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Password must be at most 72 bytes long", body["error"])

	token := api.login("owner@example.com")
	w, _ = api.do(http.MethodPost, "/api/urls", token, map[string]any{"originalUrl": "https://a.example", "password": long})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	url := api.create(token, map[string]any{"originalUrl": "https://a.example"})
	w, _ = api.do(http.MethodPut, "/api/urls/"+url["id"].(string), token, map[string]any{"password": long})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClicksPageBeyondLast(t *testing.T) {
	api := newAPI(t)
	token := api.login("owner@example.com")

	url := api.create(token, map[string]any{"originalUrl": "https://a.example"})
	id := url["id"].(string)
	w, _ := api.do(http.MethodPost, "/api/urls/"+id+"/clicks", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, body := api.do(http.MethodGet, "/api/urls/"+id+"/clicks?page=9223372036854775807&limit=100", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["clicks"])
	pagination := body["pagination"].(map[string]any)
	assert.Equal(t, 1.0, pagination["total"])
	assert.Equal(t, 1.0, pagination["pages"])
}

func TestExpiredLink(t *testing.T) {
	api := newAPI(t)

	expires := api.clock.Now().Add(time.Minute).Format(time.RFC3339)
	url := api.create("", map[string]any{"originalUrl": "https://soon.example", "expiresAt": expires, "password": "pw"})
	slug := url["slug"].(string)

	w, _ := api.do(http.MethodGet, "/"+slug, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	api.clock.Advance(2 * time.Minute)

	w, body := api.do(http.MethodGet, "/"+slug, "", nil)
	assert.Equal(t, http.StatusGone, w.Code)
	assert.Equal(t, "URL has expired", body["error"])

	w, _ = api.do(http.MethodGet, "/api/urls/check/"+slug, "", nil)
	assert.Equal(t, http.StatusGone, w.Code)
}

func TestRun_GracefulShutdown(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	srv := NewHTTPServer(addr, handler)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, srv, time.Second, logger.Nop()) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusNoContent
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
