package api_test

import (
	"bytes"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dwalsh/recall/internal/api"
	"github.com/dwalsh/recall/internal/config"
	"github.com/dwalsh/recall/internal/models"
	"github.com/dwalsh/recall/internal/services"
	"github.com/dwalsh/recall/internal/testutil/mocks"
)

var apiNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type apiFixture struct {
	questions *mocks.MockQuestionRepository
	progress  *mocks.MockTemplateProgressRepository
	math      *mocks.MockMathQuestionRepository
	reviews   *mocks.MockReviewRepository
	llm       *mocks.MockLLMClient
	handler   http.Handler
}

func newAPIFixture() *apiFixture {
	f := &apiFixture{
		questions: new(mocks.MockQuestionRepository),
		progress:  new(mocks.MockTemplateProgressRepository),
		math:      new(mocks.MockMathQuestionRepository),
		reviews:   new(mocks.MockReviewRepository),
		llm:       new(mocks.MockLLMClient),
	}

	now := func() time.Time { return apiNow }
	rng := rand.New(rand.NewPCG(3, 3))
	cfg := config.Config{LLMProvider: config.ProviderGemini, GeminiModel: "gemini-2.0-flash"}

	mathSvc := services.NewMathService(f.progress, f.math, f.reviews, f.llm, now, rng)
	learnSvc := services.NewLearnService(f.questions, f.progress, f.reviews, mathSvc, f.llm, false, now, rng)
	questionSvc := services.NewQuestionService(f.questions, f.llm, now)
	settingsSvc := services.NewSettingsService(&cfg, f.llm)

	f.handler = api.NewServer(learnSvc, questionSvc, mathSvc, settingsSvc).Routes()
	return f
}

func (f *apiFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, rec)
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected error envelope, got %s", rec.Body.String())
	code, _ := errObj["code"].(string)
	return code
}

func TestHealth(t *testing.T) {
	f := newAPIFixture()

	rec := f.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestLearnNext_EmptyPoolIs404(t *testing.T) {
	f := newAPIFixture()
	f.questions.On("DueQuestionIDs", mock.Anything, "", "work", apiNow).Return([]int64{}, nil)
	f.questions.On("RandomQuestionIDs", mock.Anything, "", "work", 5).Return([]int64{}, nil)

	rec := f.do(t, http.MethodGet, "/api/v1/learn/next?focus=work", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NO_CANDIDATES", errorCode(t, rec))
}

func TestLearnNext_ReturnsItem(t *testing.T) {
	f := newAPIFixture()
	f.questions.On("DueQuestionIDs", mock.Anything, "", "work", apiNow).Return([]int64{7}, nil)
	f.questions.On("Get", mock.Anything, int64(7)).Return(&models.Question{
		ID:           7,
		QuestionText: "What does a context cancellation propagate to?",
		Topic:        "go",
		CreatedAt:    apiNow,
	}, nil)

	rec := f.do(t, http.MethodGet, "/api/v1/learn/next?focus=work", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "regular", body["question_type"])
	assert.Equal(t, float64(7), body["question_id"])
	assert.NotContains(t, body, "answer_text")
}

func TestLearnSubmit_UnknownTypeIs400(t *testing.T) {
	f := newAPIFixture()

	rec := f.do(t, http.MethodPost, "/api/v1/learn/submit", map[string]any{
		"question_type": "essay",
		"user_answer":   "42",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
}

func TestLearnSubmit_MathUnparseableIs400(t *testing.T) {
	f := newAPIFixture()

	rec := f.do(t, http.MethodPost, "/api/v1/learn/submit", map[string]any{
		"question_type":    "math",
		"math_question_id": "abc-123",
		"user_answer":      "about five",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "UNPARSEABLE_ANSWER", errorCode(t, rec))
	f.math.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestLearnSubmit_InvalidBodyIs400(t *testing.T) {
	f := newAPIFixture()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/learn/submit", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "BAD_REQUEST", errorCode(t, rec))
}

func TestGetQuestion_NotFound(t *testing.T) {
	f := newAPIFixture()
	f.questions.On("Get", mock.Anything, int64(99)).Return(nil, nil)

	rec := f.do(t, http.MethodGet, "/api/v1/questions/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, rec))
}

func TestGetQuestion_BadID(t *testing.T) {
	f := newAPIFixture()

	rec := f.do(t, http.MethodGet, "/api/v1/questions/seven", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "BAD_REQUEST", errorCode(t, rec))
}

func TestCreateQuestion(t *testing.T) {
	f := newAPIFixture()
	created := &models.Question{
		ID:           3,
		QuestionText: "What is TCP slow start?",
		Topic:        "networking",
		Tags:         []string{"work"},
		CreatedAt:    apiNow,
	}
	f.questions.On("Insert", mock.Anything, mock.Anything).Return(int64(3), nil)
	f.questions.On("Get", mock.Anything, int64(3)).Return(created, nil)

	rec := f.do(t, http.MethodPost, "/api/v1/questions/", map[string]any{
		"question_text": "What is TCP slow start?",
		"topic":         "networking",
		"tags":          []string{"work"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, float64(3), decodeBody(t, rec)["id"])
}

func TestCreateQuestion_MissingTopicIs400(t *testing.T) {
	f := newAPIFixture()

	rec := f.do(t, http.MethodPost, "/api/v1/questions/", map[string]any{
		"question_text": "What is TCP slow start?",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
	f.questions.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestMathTemplates(t *testing.T) {
	f := newAPIFixture()

	rec := f.do(t, http.MethodGet, "/api/v1/math/templates?topic=finance", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(3), decodeBody(t, rec)["count"])
}

func TestMathNext_UnknownTemplateIs404(t *testing.T) {
	f := newAPIFixture()

	rec := f.do(t, http.MethodGet, "/api/v1/math/next?template_type=student_t", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "UNKNOWN_TEMPLATE", errorCode(t, rec))
}

func TestSettingsLLMMode(t *testing.T) {
	f := newAPIFixture()
	f.llm.On("Provider").Return("gemini")
	f.llm.On("SetProvider", "ollama").Return(nil)

	rec := f.do(t, http.MethodGet, "/api/v1/settings/llm-mode", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "web", decodeBody(t, rec)["mode"])

	rec = f.do(t, http.MethodPut, "/api/v1/settings/llm-mode", map[string]any{"mode": "space"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
}
