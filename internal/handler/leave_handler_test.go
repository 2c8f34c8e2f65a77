package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"leave-service/internal/model"
	"leave-service/internal/service"
	"leave-service/pkg/config"
	"leave-service/prometheus"

	"github.com/labstack/echo/v4"
)

func init() {
	// Handlers increment domain counters; the registry must exist
	prometheus.InitMetrics(&config.Config{Metrics: config.MetricsConfig{Prefix: "handlertest"}})
}

// =============================================================================
// Stub LeaveService
// =============================================================================

type stubLeaveService struct {
	createFunc func(input service.CreateLeaveInput) (*model.LeaveRequest, error)
	listFunc   func(userID *uint) ([]model.LeaveRequest, error)
	updateFunc func(id uint, status, adminComment string) (*model.LeaveRequest, error)
	statsFunc  func() (model.LeaveStats, error)
}

func (s *stubLeaveService) Create(input service.CreateLeaveInput) (*model.LeaveRequest, error) {
	if s.createFunc != nil {
		return s.createFunc(input)
	}
	return nil, errors.New("not implemented")
}

func (s *stubLeaveService) List(userID *uint) ([]model.LeaveRequest, error) {
	if s.listFunc != nil {
		return s.listFunc(userID)
	}
	return nil, errors.New("not implemented")
}

func (s *stubLeaveService) UpdateStatus(id uint, status, adminComment string) (*model.LeaveRequest, error) {
	if s.updateFunc != nil {
		return s.updateFunc(id, status, adminComment)
	}
	return nil, errors.New("not implemented")
}

func (s *stubLeaveService) Stats() (model.LeaveStats, error) {
	if s.statsFunc != nil {
		return s.statsFunc()
	}
	return model.LeaveStats{}, errors.New("not implemented")
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func asAdmin(c echo.Context) {
	c.Set("user_id", uint(1))
	c.Set("role", model.RoleAdmin)
}

func asEmployee(c echo.Context) {
	c.Set("user_id", uint(2))
	c.Set("role", model.RoleEmployee)
}

// =============================================================================
// Create
// =============================================================================

func TestCreateHandler(t *testing.T) {
	var captured service.CreateLeaveInput
	h := NewLeaveHandler(&stubLeaveService{
		createFunc: func(input service.CreateLeaveInput) (*model.LeaveRequest, error) {
			captured = input
			return &model.LeaveRequest{
				ID:            1,
				UserID:        input.UserID,
				LeaveType:     input.LeaveType,
				StartDate:     input.StartDate,
				EndDate:       input.EndDate,
				DaysRequested: 5,
				Reason:        input.Reason,
				Status:        model.StatusPending,
			}, nil
		},
	})

	body := `{"leave_type":"vacation","start_date":"2024-01-15","end_date":"2024-01-19","reason":"Family vacation to Hawaii"}`
	c, rec := newTestContext(http.MethodPost, "/api/leaves", body)
	asEmployee(c)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.UserID != 2 {
		t.Errorf("owner must come from the token subject, got %d", captured.UserID)
	}
	if !captured.StartDate.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected parsed start date: %v", captured.StartDate)
	}

	var resp model.LeaveRequest
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Status != model.StatusPending || resp.DaysRequested != 5 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestCreateHandlerBadDate(t *testing.T) {
	h := NewLeaveHandler(&stubLeaveService{})

	body := `{"leave_type":"vacation","start_date":"15/01/2024","end_date":"2024-01-19","reason":"Family vacation to Hawaii"}`
	c, rec := newTestContext(http.MethodPost, "/api/leaves", body)
	asEmployee(c)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed date, got %d", rec.Code)
	}
}

func TestCreateHandlerValidationError(t *testing.T) {
	h := NewLeaveHandler(&stubLeaveService{
		createFunc: func(input service.CreateLeaveInput) (*model.LeaveRequest, error) {
			return nil, service.ErrValidation
		},
	})

	body := `{"leave_type":"vacation","start_date":"2024-01-15","end_date":"2024-01-19","reason":"short"}`
	c, rec := newTestContext(http.MethodPost, "/api/leaves", body)
	asEmployee(c)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for validation error, got %d", rec.Code)
	}
}

func TestCreateHandlerMissingIdentity(t *testing.T) {
	h := NewLeaveHandler(&stubLeaveService{})

	body := `{"leave_type":"vacation","start_date":"2024-01-15","end_date":"2024-01-19","reason":"Family vacation to Hawaii"}`
	c, rec := newTestContext(http.MethodPost, "/api/leaves", body)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without auth context, got %d", rec.Code)
	}
}

// =============================================================================
// List
// =============================================================================

func TestListHandlerEmployeeSeesOwn(t *testing.T) {
	var requestedOwner *uint
	h := NewLeaveHandler(&stubLeaveService{
		listFunc: func(userID *uint) ([]model.LeaveRequest, error) {
			requestedOwner = userID
			return []model.LeaveRequest{{ID: 3, UserID: 2, Status: model.StatusPending}}, nil
		},
	})

	// user_id in the query must not override the token for employees
	c, rec := newTestContext(http.MethodGet, "/api/leaves?user_id=99", "")
	asEmployee(c)

	if err := h.List(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if requestedOwner == nil || *requestedOwner != 2 {
		t.Errorf("employee listing must be scoped to the token subject, got %v", requestedOwner)
	}
}

func TestListHandlerAdminFilters(t *testing.T) {
	h := NewLeaveHandler(&stubLeaveService{
		listFunc: func(userID *uint) ([]model.LeaveRequest, error) {
			if userID != nil {
				t.Errorf("admin without user_id param must list everything")
			}
			return []model.LeaveRequest{
				{ID: 1, UserID: 2, LeaveType: model.LeaveTypeVacation, Reason: "Family vacation to Hawaii", Status: model.StatusPending},
				{ID: 2, UserID: 3, LeaveType: model.LeaveTypeSick, Reason: "Flu symptoms", Status: model.StatusApproved},
			}, nil
		},
	})

	c, rec := newTestContext(http.MethodGet, "/api/leaves?status=approved&search=flu", "")
	asAdmin(c)

	if err := h.List(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		LeaveRequests []model.LeaveRequest `json:"leave_requests"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.LeaveRequests) != 1 || resp.LeaveRequests[0].ID != 2 {
		t.Errorf("expected only the approved flu request, got %+v", resp.LeaveRequests)
	}
}

func TestListHandlerAdminByUser(t *testing.T) {
	var requestedOwner *uint
	h := NewLeaveHandler(&stubLeaveService{
		listFunc: func(userID *uint) ([]model.LeaveRequest, error) {
			requestedOwner = userID
			return nil, nil
		},
	})

	c, rec := newTestContext(http.MethodGet, "/api/leaves?user_id=3", "")
	asAdmin(c)

	if err := h.List(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if requestedOwner == nil || *requestedOwner != 3 {
		t.Errorf("expected owner filter 3, got %v", requestedOwner)
	}
}

// =============================================================================
// UpdateStatus
// =============================================================================

func TestUpdateStatusHandler(t *testing.T) {
	h := NewLeaveHandler(&stubLeaveService{
		updateFunc: func(id uint, status, adminComment string) (*model.LeaveRequest, error) {
			if id != 7 || status != model.StatusApproved || adminComment != "Enjoy!" {
				t.Errorf("unexpected arguments: id=%d status=%s comment=%q", id, status, adminComment)
			}
			return &model.LeaveRequest{ID: id, Status: status, AdminComment: adminComment}, nil
		},
	})

	c, rec := newTestContext(http.MethodPut, "/api/leaves/7/status", `{"status":"approved","admin_comment":"Enjoy!"}`)
	asAdmin(c)
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUpdateStatusHandlerErrors(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"not found", service.ErrRequestNotFound, http.StatusNotFound},
		{"already processed", service.ErrInvalidTransition, http.StatusConflict},
		{"bad target status", service.ErrValidation, http.StatusBadRequest},
		{"internal", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewLeaveHandler(&stubLeaveService{
				updateFunc: func(id uint, status, adminComment string) (*model.LeaveRequest, error) {
					return nil, tt.serviceErr
				},
			})

			c, rec := newTestContext(http.MethodPut, "/api/leaves/7/status", `{"status":"approved"}`)
			asAdmin(c)
			c.SetParamNames("id")
			c.SetParamValues("7")

			if err := h.UpdateStatus(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestUpdateStatusHandlerBadID(t *testing.T) {
	h := NewLeaveHandler(&stubLeaveService{})

	c, rec := newTestContext(http.MethodPut, "/api/leaves/abc/status", `{"status":"approved"}`)
	asAdmin(c)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non-numeric id, got %d", rec.Code)
	}
}

// =============================================================================
// Stats
// =============================================================================

func TestGetStatsHandler(t *testing.T) {
	h := NewLeaveHandler(&stubLeaveService{
		statsFunc: func() (model.LeaveStats, error) {
			return model.LeaveStats{
				TotalRequests:    3,
				PendingRequests:  1,
				ApprovedRequests: 1,
				RejectedRequests: 1,
				TotalUsers:       2,
				ApprovalRate:     33,
			}, nil
		},
	})

	c, rec := newTestContext(http.MethodGet, "/api/stats", "")
	asEmployee(c)

	if err := h.GetStats(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp model.LeaveStats
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.TotalRequests != 3 || resp.ApprovalRate != 33 {
		t.Errorf("unexpected stats payload: %+v", resp)
	}
}
