package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"aisolutions-backend/config"
	"aisolutions-backend/controllers"
	"aisolutions-backend/generator"
	"aisolutions-backend/models"
	"aisolutions-backend/services"
	"aisolutions-backend/store"
	"aisolutions-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret   = "test-secret"
	testUser     = "kwoto"
	testPassword = "correct horse"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	hash, err := utils.HashPassword(testPassword)
	require.NoError(t, err)

	st := store.Open(filepath.Join(t.TempDir(), "sales.csv"))
	reg := prometheus.NewRegistry()
	ingest := services.NewIngestService(generator.New(generator.DefaultConfig(), generator.WithSeed(3)), st, log)
	ingest.Metrics = services.NewMetrics(reg)

	router := SetupRouter(Deps{
		Config: config.Config{
			JWTSecret:   testSecret,
			JWTExpiry:   time.Hour,
			AuthUsers:   map[string]string{testUser: hash},
			CORSOrigins: []string{"http://localhost:3000"},
		},
		Store:    st,
		Ingest:   ingest,
		Gatherer: reg,
		Log:      log,
	})

	token, err := utils.GenerateToken(testUser, testSecret, time.Hour)
	require.NoError(t, err)
	return &testServer{router: router, token: token}
}

func (s *testServer) do(method, target string, body io.Reader, authed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestCORS(t *testing.T) {
	s := newTestServer(t)

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/records", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		return w
	}

	w := preflight("http://localhost:3000")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = preflight("http://evil.test")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"kwoto","password":"nope"}`), false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, w.Body.String())

	w = s.do(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"kwoto"}`), false)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/auth/login", strings.NewReader(`{"username":" kwoto ","password":"correct horse"}`), false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[struct {
		Token string `json:"token"`
	}](t, w)
	sub, err := utils.ParseToken(resp.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, testUser, sub)

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == utils.TokenCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(cookie)
	me := httptest.NewRecorder()
	s.router.ServeHTTP(me, req)
	assert.Equal(t, http.StatusOK, me.Code)
	assert.JSONEq(t, `{"user":{"username":"kwoto"}}`, me.Body.String())
}

func TestLogout(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/auth/logout", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, utils.TokenCookie, cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestAPIRequiresToken(t *testing.T) {
	s := newTestServer(t)

	for _, target := range []string{"/api/dashboard/sales", "/api/records", "/api/export", "/auth/me"} {
		w := s.do(http.MethodGet, target, nil, false)
		assert.Equal(t, http.StatusUnauthorized, w.Code, target)
	}

	w := s.do(http.MethodGet, "/health", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDashboardsWithoutData(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/dashboard/sales", nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"No sales data yet"}`, w.Body.String())
}

func TestGenerateBounds(t *testing.T) {
	s := newTestServer(t)

	for _, count := range []string{"0", "101", "abc"} {
		w := s.do(http.MethodPost, "/api/records/generate?count="+count, nil, true)
		assert.Equal(t, http.StatusBadRequest, w.Code, count)
	}

	w := s.do(http.MethodPost, "/api/records/generate", nil, true)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, decode[struct {
		Count int `json:"count"`
	}](t, w).Count)
}

func TestGenerateThenQuery(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/records/generate?count=40", nil, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	generated := decode[struct {
		Records []models.Record `json:"records"`
	}](t, w).Records
	require.Len(t, generated, 40)

	t.Run("sales", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/dashboard/sales", nil, true)
		require.Equal(t, http.StatusOK, w.Code)
		d := decode[controllers.SalesDashboard](t, w)
		assert.Equal(t, 40, d.KPIs.TotalCustomers)
		assert.Len(t, d.MonthlyRevenue, 12)
		assert.NotEmpty(t, d.Options.Countries)
		assert.LessOrEqual(t, len(d.TopProducts), 10)
	})

	t.Run("sales filtered by country", func(t *testing.T) {
		country := generated[0].Country
		want := 0
		for _, r := range generated {
			if r.Country == country {
				want++
			}
		}
		w := s.do(http.MethodGet, "/api/dashboard/sales?country="+url.QueryEscape(country), nil, true)
		require.Equal(t, http.StatusOK, w.Code)
		d := decode[controllers.SalesDashboard](t, w)
		assert.Equal(t, want, d.KPIs.TotalCustomers)
		assert.Equal(t, []string{country}, d.Filter.Countries)
	})

	t.Run("effectiveness", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/dashboard/effectiveness", nil, true)
		require.Equal(t, http.StatusOK, w.Code)
		d := decode[controllers.EffectivenessDashboard](t, w)
		total := 0
		for _, sc := range d.StatusCounts {
			total += sc.Count
		}
		assert.Equal(t, 40, total)
		assert.GreaterOrEqual(t, d.KPIs.AvgRating, 1.0)
	})

	t.Run("analysis", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/dashboard/analysis", nil, true)
		require.Equal(t, http.StatusOK, w.Code)
		d := decode[controllers.AnalysisDashboard](t, w)
		assert.NotEmpty(t, d.CountryProduct)
		assert.LessOrEqual(t, len(d.Daily), 30)
		assert.Len(t, d.Statistics, 10)
		assert.Equal(t, 40, d.Statistics[0].Count)
	})

	t.Run("records limit keeps the newest", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/records?limit=5", nil, true)
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[struct {
			Total   int             `json:"total"`
			Records []models.Record `json:"records"`
		}](t, w)
		assert.Equal(t, 40, resp.Total)
		require.Len(t, resp.Records, 5)
		assert.Equal(t, generated[39].CustomerID, resp.Records[4].CustomerID)
	})

	t.Run("csv export", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/export", nil, true)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="Filtered_AI_Data.csv"`)
		recs, skipped, err := store.Read(bytes.NewReader(w.Body.Bytes()))
		require.NoError(t, err)
		assert.Zero(t, skipped)
		assert.Len(t, recs, 40)
	})

	t.Run("xlsx export", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/export?format=xlsx", nil, true)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="Filtered_AI_Data.xlsx"`)
		assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	})

	t.Run("unknown export format", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/export?format=pdf", nil, true)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("metrics", func(t *testing.T) {
		w := s.do(http.MethodGet, "/metrics", nil, false)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "aisolutions_records_generated_total")
	})

	t.Run("health", func(t *testing.T) {
		w := s.do(http.MethodGet, "/health", nil, false)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `40`, string(mustField(t, w.Body.Bytes(), "records")))
	})
}

func TestNoRoute(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/nope", nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
}

func mustField(t *testing.T, body []byte, key string) json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &m))
	require.Contains(t, m, key)
	return m[key]
}
