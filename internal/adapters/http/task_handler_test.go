package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskshare/core/internal/domain/entities"
	"github.com/taskshare/core/internal/infrastructure/logger"
	"github.com/taskshare/core/internal/ports"
)

// stubTaskService returns canned results so the handler's wiring and status
// mapping can be exercised without a store.
type stubTaskService struct {
	task *entities.Task
	list []*entities.Task
	err  error

	lastActor uuid.UUID
}

func (s *stubTaskService) CreateTask(_ context.Context, ownerID uuid.UUID, _ ports.CreateTaskRequest) (*entities.Task, error) {
	s.lastActor = ownerID
	return s.task, s.err
}

func (s *stubTaskService) GetTask(_ context.Context, actorID, _ uuid.UUID) (*entities.Task, error) {
	s.lastActor = actorID
	return s.task, s.err
}

func (s *stubTaskService) UpdateTask(_ context.Context, actorID, _ uuid.UUID, _ ports.UpdateTaskRequest) (*entities.Task, error) {
	s.lastActor = actorID
	return s.task, s.err
}

func (s *stubTaskService) DeleteTask(_ context.Context, actorID, _ uuid.UUID) error {
	s.lastActor = actorID
	return s.err
}

func (s *stubTaskService) ListTasks(_ context.Context, actorID uuid.UUID) ([]*entities.Task, error) {
	s.lastActor = actorID
	return s.list, s.err
}

func (s *stubTaskService) ShareTask(_ context.Context, actorID, _, _ uuid.UUID) (*entities.Task, error) {
	s.lastActor = actorID
	return s.task, s.err
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %T: %v", err, err)
	return he.Code
}

func TestCreateTask_Created(t *testing.T) {
	actor := uuid.New()
	svc := &stubTaskService{task: &entities.Task{ID: uuid.New(), Title: "Ship release", OwnerID: actor}}
	h := NewTaskHandler(svc, logger.NewNop())

	c, rec := newTestContext(t, http.MethodPost, "/api/v1/tasks", `{"title":"Ship release"}`)
	c.Set(ActorContextKey, actor)

	require.NoError(t, h.CreateTask(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"Ship release"`)
	assert.Equal(t, actor, svc.lastActor)
}

func TestCreateTask_MissingTitle(t *testing.T) {
	h := NewTaskHandler(&stubTaskService{}, logger.NewNop())

	c, _ := newTestContext(t, http.MethodPost, "/api/v1/tasks", `{"description":"no title"}`)
	c.Set(ActorContextKey, uuid.New())

	err := h.CreateTask(c)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}

func TestCreateTask_NoIdentity(t *testing.T) {
	h := NewTaskHandler(&stubTaskService{}, logger.NewNop())

	c, _ := newTestContext(t, http.MethodPost, "/api/v1/tasks", `{"title":"x"}`)

	err := h.CreateTask(c)
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))
}

func TestListTasks_EmptyIsArray(t *testing.T) {
	h := NewTaskHandler(&stubTaskService{list: nil}, logger.NewNop())

	c, rec := newTestContext(t, http.MethodGet, "/api/v1/tasks", "")
	c.Set(ActorContextKey, uuid.New())

	require.NoError(t, h.ListTasks(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestGetTask_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", entities.ErrTaskNotFound, http.StatusNotFound},
		{"no access", entities.ErrNoTaskAccess, http.StatusForbidden},
		{"store failure", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTaskHandler(&stubTaskService{err: tt.err}, logger.NewNop())

			c, _ := newTestContext(t, http.MethodGet, "/api/v1/tasks/"+uuid.NewString(), "")
			c.SetParamNames("id")
			c.SetParamValues(uuid.NewString())
			c.Set(ActorContextKey, uuid.New())

			err := h.GetTask(c)
			assert.Equal(t, tt.want, httpStatus(t, err))
		})
	}
}

func TestGetTask_BadID(t *testing.T) {
	h := NewTaskHandler(&stubTaskService{}, logger.NewNop())

	c, _ := newTestContext(t, http.MethodGet, "/api/v1/tasks/not-a-uuid", "")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")
	c.Set(ActorContextKey, uuid.New())

	err := h.GetTask(c)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}

func TestUpdateTask_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not owner", entities.ErrNotTaskOwner, http.StatusForbidden},
		{"not found", entities.ErrTaskNotFound, http.StatusNotFound},
		{"empty title", entities.ErrTitleRequired, http.StatusBadRequest},
		{"stale write", entities.ErrTaskConflict, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTaskHandler(&stubTaskService{err: tt.err}, logger.NewNop())

			c, _ := newTestContext(t, http.MethodPut, "/api/v1/tasks/"+uuid.NewString(), `{"title":"x"}`)
			c.SetParamNames("id")
			c.SetParamValues(uuid.NewString())
			c.Set(ActorContextKey, uuid.New())

			err := h.UpdateTask(c)
			assert.Equal(t, tt.want, httpStatus(t, err))
		})
	}
}

func TestDeleteTask_Confirmation(t *testing.T) {
	h := NewTaskHandler(&stubTaskService{}, logger.NewNop())

	c, rec := newTestContext(t, http.MethodDelete, "/api/v1/tasks/"+uuid.NewString(), "")
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())
	c.Set(ActorContextKey, uuid.New())

	require.NoError(t, h.DeleteTask(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Task deleted")
}

func TestShareTask(t *testing.T) {
	grantee := uuid.New()
	task := &entities.Task{ID: uuid.New(), Title: "x", SharedWith: []uuid.UUID{grantee}}
	h := NewTaskHandler(&stubTaskService{task: task}, logger.NewNop())

	c, rec := newTestContext(t, http.MethodPost, "/api/v1/tasks/"+task.ID.String()+"/share",
		`{"userId":"`+grantee.String()+`"}`)
	c.SetParamNames("id")
	c.SetParamValues(task.ID.String())
	c.Set(ActorContextKey, uuid.New())

	require.NoError(t, h.ShareTask(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), grantee.String())
}

func TestShareTask_MissingUserID(t *testing.T) {
	h := NewTaskHandler(&stubTaskService{}, logger.NewNop())

	c, _ := newTestContext(t, http.MethodPost, "/api/v1/tasks/"+uuid.NewString()+"/share", `{}`)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())
	c.Set(ActorContextKey, uuid.New())

	err := h.ShareTask(c)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}

func TestShareTask_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not owner", entities.ErrNotTaskOwner, http.StatusForbidden},
		{"share with owner", entities.ErrShareWithOwner, http.StatusBadRequest},
		{"unknown grantee", entities.ErrUserNotFound, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTaskHandler(&stubTaskService{err: tt.err}, logger.NewNop())

			c, _ := newTestContext(t, http.MethodPost, "/api/v1/tasks/"+uuid.NewString()+"/share",
				`{"userId":"`+uuid.NewString()+`"}`)
			c.SetParamNames("id")
			c.SetParamValues(uuid.NewString())
			c.Set(ActorContextKey, uuid.New())

			err := h.ShareTask(c)
			assert.Equal(t, tt.want, httpStatus(t, err))
		})
	}
}
