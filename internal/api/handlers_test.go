package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/campusflow/event-approval/internal/auth"
	"github.com/campusflow/event-approval/internal/domain/entity"
	"github.com/campusflow/event-approval/internal/engine"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockWorkflow mocks the WorkflowService interface
type MockWorkflow struct {
	mock.Mock
}

func (m *MockWorkflow) Execute(ctx context.Context, req *engine.ActionRequest) (*engine.ActionResult, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*engine.ActionResult)
	return result, args.Error(1)
}

// MockPlanStore mocks the PlanStore interface
type MockPlanStore struct {
	mock.Mock
}

func (m *MockPlanStore) Create(ctx context.Context, plan *entity.EventPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanStore) GetByID(ctx context.Context, id int64) (*entity.EventPlan, error) {
	args := m.Called(ctx, id)
	plan, _ := args.Get(0).(*entity.EventPlan)
	return plan, args.Error(1)
}

func (m *MockPlanStore) ListByOrganizer(ctx context.Context, organizerUserID int64, limit, offset int) ([]*entity.EventPlan, error) {
	args := m.Called(ctx, organizerUserID, limit, offset)
	plans, _ := args.Get(0).([]*entity.EventPlan)
	return plans, args.Error(1)
}

// MockLetterReader mocks the LetterReader interface
type MockLetterReader struct {
	mock.Mock
}

func (m *MockLetterReader) ListByPlan(ctx context.Context, planID int64) ([]*entity.SignedLetter, error) {
	args := m.Called(ctx, planID)
	letters, _ := args.Get(0).([]*entity.SignedLetter)
	return letters, args.Error(1)
}

func (m *MockLetterReader) MarkSent(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockNotificationReader mocks the NotificationReader interface
type MockNotificationReader struct {
	mock.Mock
}

func (m *MockNotificationReader) ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]*entity.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly, limit)
	notifications, _ := args.Get(0).([]*entity.Notification)
	return notifications, args.Error(1)
}

func (m *MockNotificationReader) MarkRead(ctx context.Context, id, userID int64) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

// MockHistoryReader mocks the HistoryReader interface
type MockHistoryReader struct {
	mock.Mock
}

func (m *MockHistoryReader) ListByPlan(ctx context.Context, planID int64) ([]*entity.ApprovalHistory, error) {
	args := m.Called(ctx, planID)
	records, _ := args.Get(0).([]*entity.ApprovalHistory)
	return records, args.Error(1)
}

type apiFixture struct {
	router        *gin.Engine
	provider      *auth.HMACProvider
	workflow      *MockWorkflow
	plans         *MockPlanStore
	letters       *MockLetterReader
	notifications *MockNotificationReader
	history       *MockHistoryReader
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	f := &apiFixture{
		provider:      auth.NewHMACProvider("test-secret"),
		workflow:      new(MockWorkflow),
		plans:         new(MockPlanStore),
		letters:       new(MockLetterReader),
		notifications: new(MockNotificationReader),
		history:       new(MockHistoryReader),
	}

	handlers := NewHandlers(f.workflow, f.plans, f.letters, f.notifications, f.history, zap.NewNop())
	f.router = NewRouter(handlers, f.provider, zap.NewNop())
	return f
}

// request performs an authenticated request as the given user and role.
// An empty role skips the Authorization header.
func (f *apiFixture) request(t *testing.T, method, path, body string, userID int64, role string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if role != "" {
		token, err := f.provider.Issue(userID, role, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	f := newAPIFixture(t)

	w := f.request(t, http.MethodGet, "/health", "", 0, "")

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "healthy")
}

func TestRouter_MissingToken(t *testing.T) {
	f := newAPIFixture(t)

	w := f.request(t, http.MethodGet, "/api/v1/event-plans", "", 0, "")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestRouter_RequestIDHeader(t *testing.T) {
	f := newAPIFixture(t)

	w := f.request(t, http.MethodGet, "/health", "", 0, "")
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
