package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/campusflow/event-approval/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreatePlan(t *testing.T) {
	f := newAPIFixture(t)
	f.plans.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.EventPlan) bool {
		return p.OrganizerUserID == 42 && p.Title == "Tech Fest" && p.Participants == 300
	})).Return(nil)

	w := f.request(t, http.MethodPost, "/api/v1/event-plans",
		`{"title":"Tech Fest","type":"CULTURAL","organizer_name":"CS Society","date":"2026-10-01","time":"18:00","participants":300}`,
		42, entity.RoleOrganizer)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool             `json:"success"`
		Data    entity.EventPlan `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(42), resp.Data.OrganizerUserID)
}

func TestCreatePlan_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"type":"CULTURAL","organizer_name":"CS Society","date":"2026-10-01","time":"18:00","participants":300}`},
		{"bad date", `{"title":"Tech Fest","type":"CULTURAL","organizer_name":"CS Society","date":"01/10/2026","time":"18:00","participants":300}`},
		{"negative participants", `{"title":"Tech Fest","type":"CULTURAL","organizer_name":"CS Society","date":"2026-10-01","time":"18:00","participants":-5}`},
		{"participants over capacity", `{"title":"Tech Fest","type":"CULTURAL","organizer_name":"CS Society","date":"2026-10-01","time":"18:00","participants":60000}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAPIFixture(t)

			w := f.request(t, http.MethodPost, "/api/v1/event-plans", tt.body, 42, entity.RoleOrganizer)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			f.plans.AssertNotCalled(t, "Create")
		})
	}
}

func TestGetPlan(t *testing.T) {
	f := newAPIFixture(t)
	f.plans.On("GetByID", mock.Anything, int64(10)).Return(&entity.EventPlan{
		ID:     10,
		Title:  "Tech Fest",
		Status: entity.PlanStatusSubmitted,
	}, nil)

	w := f.request(t, http.MethodGet, "/api/v1/event-plans/10", "", 42, entity.RoleOrganizer)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Tech Fest")
}

func TestGetPlan_NotFound(t *testing.T) {
	f := newAPIFixture(t)
	f.plans.On("GetByID", mock.Anything, int64(99)).Return(nil, nil)

	w := f.request(t, http.MethodGet, "/api/v1/event-plans/99", "", 42, entity.RoleOrganizer)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestListPlans_Pagination(t *testing.T) {
	f := newAPIFixture(t)
	f.plans.On("ListByOrganizer", mock.Anything, int64(42), 5, 10).Return([]*entity.EventPlan{}, nil)

	w := f.request(t, http.MethodGet, "/api/v1/event-plans?limit=5&offset=10", "", 42, entity.RoleOrganizer)

	require.Equal(t, http.StatusOK, w.Code)
	f.plans.AssertExpectations(t)
}

func TestListPlans_PaginationDefaults(t *testing.T) {
	f := newAPIFixture(t)
	f.plans.On("ListByOrganizer", mock.Anything, int64(42), 20, 0).Return([]*entity.EventPlan{}, nil)

	// Out-of-range values fall back to the defaults
	w := f.request(t, http.MethodGet, "/api/v1/event-plans?limit=500&offset=-3", "", 42, entity.RoleOrganizer)

	require.Equal(t, http.StatusOK, w.Code)
	f.plans.AssertExpectations(t)
}

func TestGetPlanHistory(t *testing.T) {
	f := newAPIFixture(t)
	f.history.On("ListByPlan", mock.Anything, int64(10)).Return([]*entity.ApprovalHistory{
		{EventPlanID: 10, ActorRole: entity.RoleWarden, Action: entity.ActionApprove},
	}, nil)

	w := f.request(t, http.MethodGet, "/api/v1/event-plans/10/history", "", 1, entity.RoleSuperAdmin)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), entity.RoleWarden)
}

func TestListLetters(t *testing.T) {
	f := newAPIFixture(t)
	f.letters.On("ListByPlan", mock.Anything, int64(10)).Return([]*entity.SignedLetter{
		{EventPlanID: 10, FromRole: entity.RoleWarden, LetterType: entity.LetterTypeApproval},
	}, nil)

	w := f.request(t, http.MethodGet, "/api/v1/event-plans/10/letters", "", 1, entity.RoleSuperAdmin)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), entity.LetterTypeApproval)
}

func TestMarkLetterSent_SuperAdminOnly(t *testing.T) {
	f := newAPIFixture(t)

	w := f.request(t, http.MethodPost, "/api/v1/letters/5/sent", "", 3, entity.RoleWarden)

	require.Equal(t, http.StatusForbidden, w.Code)
	f.letters.AssertNotCalled(t, "MarkSent")
}

func TestMarkLetterSent(t *testing.T) {
	f := newAPIFixture(t)
	f.letters.On("MarkSent", mock.Anything, int64(5)).Return(nil)

	w := f.request(t, http.MethodPost, "/api/v1/letters/5/sent", "", 1, entity.RoleSuperAdmin)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestListNotifications_UnreadFilter(t *testing.T) {
	f := newAPIFixture(t)
	f.notifications.On("ListByUser", mock.Anything, int64(3), true, 20).Return([]*entity.Notification{
		{UserID: 3, Title: "Review requested", Status: entity.NotificationStatusUnread},
	}, nil)

	w := f.request(t, http.MethodGet, "/api/v1/notifications?unread=true", "", 3, entity.RoleWarden)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Review requested")
}

func TestMarkNotificationRead(t *testing.T) {
	f := newAPIFixture(t)
	f.notifications.On("MarkRead", mock.Anything, int64(7), int64(3)).Return(true, nil)

	w := f.request(t, http.MethodPost, "/api/v1/notifications/7/read", "", 3, entity.RoleWarden)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestMarkNotificationRead_OtherUsersNotification(t *testing.T) {
	f := newAPIFixture(t)
	f.notifications.On("MarkRead", mock.Anything, int64(7), int64(3)).Return(false, nil)

	w := f.request(t, http.MethodPost, "/api/v1/notifications/7/read", "", 3, entity.RoleWarden)

	require.Equal(t, http.StatusNotFound, w.Code)
}
