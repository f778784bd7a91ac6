package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"credit-limit/domain"
	"credit-limit/repository"
	"credit-limit/service"
)

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func newTestRouter(t *testing.T, capacity int, opts ...service.Option) http.Handler {
	t.Helper()

	cache := repository.NewMockCache()
	svc := service.NewCreditLimitService(cache, opts...)
	limiter := NewRateLimiter(capacity, time.Minute)
	t.Cleanup(limiter.Stop)

	return NewRouter(NewCreditLimitHandler(svc), cache, limiter)
}

func postCalculate(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/credit-limit/calculate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestCalculateCreditLimitHandler_OK(t *testing.T) {
	router := newTestRouter(t, 100)

	tests := []struct {
		body  string
		limit string
		max   string
		band  domain.RiskBand
	}{
		{`{"monthly_income": 5000, "credit_score": 600}`, "70000.00", "100000.00", domain.RiskBandFair},
		{`{"monthly_income": 5000, "credit_score": 850}`, "100000.00", "100000.00", domain.RiskBandExceptional},
		{`{"monthly_income": 3000, "credit_score": 300}`, "30000.00", "60000.00", domain.RiskBandVeryPoor},
		{`{"monthly_income": 0, "credit_score": 700}`, "0.00", "0.00", domain.RiskBandGood},
		{`{"monthly_income": 0.125, "credit_score": 700}`, "2.12", "2.50", domain.RiskBandGood},
	}

	for _, tt := range tests {
		w := postCalculate(t, router, tt.body)
		require.Equal(t, http.StatusOK, w.Code, tt.body)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var resp calculateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, tt.limit, resp.CreditLimit, tt.body)
		assert.Equal(t, tt.max, resp.MaxCreditLimit, tt.body)
		assert.Equal(t, tt.band, resp.RiskBand, tt.body)
	}
}

func TestCalculateCreditLimitHandler_BadRequest(t *testing.T) {
	router := newTestRouter(t, 100)

	w := postCalculate(t, router, `{invalid-json}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postCalculate(t, router, `{"monthly_income": 5000, "credit_score": 600.5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postCalculate(t, router, `{"monthly_income": 5000}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "This field is required", resp.Fields["credit_score"])
	assert.NotContains(t, resp.Fields, "monthly_income")
}

func TestCalculateCreditLimitHandler_StrictValidation(t *testing.T) {
	router := newTestRouter(t, 100, service.WithStrictValidation(true))

	w := postCalculate(t, router, `{"monthly_income": -10, "credit_score": 900}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "must be at least 0", resp.Fields["monthly_income"])
	assert.Equal(t, "must be at most 850", resp.Fields["credit_score"])
}

func TestCalculateCreditLimitHandler_LenientByDefault(t *testing.T) {
	router := newTestRouter(t, 100)

	w := postCalculate(t, router, `{"monthly_income": -100, "credit_score": 700}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp calculateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "-1700.00", resp.CreditLimit)
}

func TestCalculateCreditLimitHandler_UnrepresentableIncome(t *testing.T) {
	router := newTestRouter(t, 100)

	w := postCalculate(t, router, `{"monthly_income": 1.7e308, "credit_score": 700}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalculateCreditLimitHandler_UnsupportedMediaType(t *testing.T) {
	router := newTestRouter(t, 100)

	req := httptest.NewRequest(http.MethodPost, "/credit-limit/calculate",
		bytes.NewBufferString(`{"monthly_income": 5000, "credit_score": 600}`))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestCalculateCreditLimitHandler_MethodNotAllowed(t *testing.T) {
	handler := NewCreditLimitHandler(service.NewCreditLimitService(repository.NewMockCache()))

	req := httptest.NewRequest(http.MethodGet, "/credit-limit/calculate", nil)
	w := httptest.NewRecorder()
	handler.CalculateCreditLimit(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = httptest.NewRecorder()
	newTestRouter(t, 100).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/credit-limit/calculate", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestCalculateCreditLimitHandler_RateLimited(t *testing.T) {
	router := newTestRouter(t, 2)
	body := `{"monthly_income": 5000, "credit_score": 600}`

	assert.Equal(t, http.StatusOK, postCalculate(t, router, body).Code)
	assert.Equal(t, http.StatusOK, postCalculate(t, router, body).Code)
	assert.Equal(t, http.StatusTooManyRequests, postCalculate(t, router, body).Code)
}

func TestBandsHandler(t *testing.T) {
	router := newTestRouter(t, 100)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/credit-limit/bands", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var bands []domain.BandRule
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bands))
	require.Len(t, bands, 5)
	assert.Equal(t, domain.RiskBandVeryPoor, bands[0].Band)
	assert.Equal(t, 579, *bands[0].MaxScore)
	assert.Equal(t, 1.0, bands[4].AdjustmentFactor)
}

func TestRequestIDHeader(t *testing.T) {
	router := newTestRouter(t, 100)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, 100)
	postCalculate(t, router, `{"monthly_income": 4000, "credit_score": 720}`)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "credit_limit_decisions_total")
	assert.Contains(t, w.Body.String(), `path="/credit-limit/calculate"`)
}

func TestHandleHealthz(t *testing.T) {
	w := httptest.NewRecorder()
	HandleHealthz().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"status":"ok"}`+"\n", w.Body.String())
}

func TestHandleReadyz(t *testing.T) {
	t.Run("cache reachable", func(t *testing.T) {
		p := &MockPinger{}
		p.On("Ping", mock.Anything).Return(nil)

		w := httptest.NewRecorder()
		HandleReadyz(p).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		p.AssertExpectations(t)
	})

	t.Run("cache unreachable", func(t *testing.T) {
		p := &MockPinger{}
		p.On("Ping", mock.Anything).Return(assert.AnError)

		w := httptest.NewRecorder()
		HandleReadyz(p).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"unavailable"`)
		p.AssertExpectations(t)
	})
}
