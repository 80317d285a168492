package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	authuc "github.com/BaAEz/taskapp-Immersiveai/internal/application/auth"
	"github.com/BaAEz/taskapp-Immersiveai/internal/application/tasks"
	"github.com/BaAEz/taskapp-Immersiveai/internal/domain"
	domerrors "github.com/BaAEz/taskapp-Immersiveai/internal/domain/errors"
	infraauth "github.com/BaAEz/taskapp-Immersiveai/internal/infrastructure/auth"
	"github.com/BaAEz/taskapp-Immersiveai/internal/infrastructure/http/handlers"
	"github.com/BaAEz/taskapp-Immersiveai/internal/infrastructure/http/middleware"
	"github.com/BaAEz/taskapp-Immersiveai/internal/infrastructure/security"
)

// --- in-memory stores implementing the repository ports ---

type memUserRepo struct {
	mu    sync.Mutex
	users []*domain.User
}

func (m *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return domerrors.ErrEmailTaken
		}
	}
	copied := *user
	m.users = append(m.users, &copied)
	return nil
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

type memTaskRepo struct {
	mu    sync.Mutex
	tasks []*domain.Task
}

func (m *memTaskRepo) Create(ctx context.Context, task *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *task
	m.tasks = append(m.tasks, &copied)
	return nil
}

func (m *memTaskRepo) ListByOwner(ctx context.Context, owner domain.UserID) ([]*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Task
	for _, t := range m.tasks {
		if t.OwnerID == owner {
			copied := *t
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memTaskRepo) Update(ctx context.Context, owner domain.UserID, id domain.TaskID, patch domain.TaskPatch) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tasks {
		if t.ID == id && t.OwnerID == owner {
			if patch.Title != nil {
				t.Title = *patch.Title
			}
			if patch.IsCompleted != nil {
				t.IsCompleted = *patch.IsCompleted
			}
			t.UpdatedAt = time.Now()
			copied := *t
			return &copied, nil
		}
	}
	return nil, domerrors.ErrTaskNotFound
}

func (m *memTaskRepo) Delete(ctx context.Context, owner domain.UserID, id domain.TaskID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.tasks {
		if t.ID == id && t.OwnerID == owner {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return nil
		}
	}
	return domerrors.ErrTaskNotFound
}

// --- test server ---

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	userRepo := &memUserRepo{}
	taskRepo := &memTaskRepo{}
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	issuer := infraauth.NewTokenIssuer([]byte("test-secret"), time.Hour)
	log := zerolog.Nop()

	authHandler := handlers.NewAuthHandler(
		authuc.NewSignup(userRepo, hasher, issuer),
		authuc.NewLogin(userRepo, hasher, issuer),
		log,
	)
	tasksHandler := handlers.NewTasksHandler(
		tasks.NewCreateTask(taskRepo),
		tasks.NewListTasks(taskRepo),
		tasks.NewUpdateTask(taskRepo),
		tasks.NewDeleteTask(taskRepo),
		log,
	)

	return NewRouter(RouterConfig{
		AuthHandler:  authHandler,
		TasksHandler: tasksHandler,
		RequireAuth:  middleware.NewAuthValidator(issuer, userRepo, log).Handler,
		Log:          log,
	})
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&decoded))
	}
	return rec, decoded
}

func signup(t *testing.T, router http.Handler, email, password string) (token, userID string) {
	t.Helper()
	rec, body := doJSON(t, router, http.MethodPost, "/signup", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, true, body["success"])
	user := body["user"].(map[string]interface{})
	return body["token"].(string), user["id"].(string)
}

// --- tests ---

func TestLiveness(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, handlers.LivenessMessage, rec.Body.String())
}

func TestSignup(t *testing.T) {
	router := newTestRouter(t)

	t.Run("success returns identity and working token", func(t *testing.T) {
		rec, body := doJSON(t, router, http.MethodPost, "/signup", "", map[string]string{
			"email":    "alice@x.com",
			"password": "secret1",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, true, body["success"])

		user := body["user"].(map[string]interface{})
		assert.Equal(t, "alice@x.com", user["email"])
		assert.NotEmpty(t, user["id"])
		assert.NotContains(t, user, "passwordHash")
		assert.NotContains(t, user, "password")

		// The returned token must pass introspection.
		rec, body = doJSON(t, router, http.MethodGet, "/verify-token", body["token"].(string), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, user["id"], body["user"].(map[string]interface{})["id"])
	})

	t.Run("duplicate email rejected regardless of password", func(t *testing.T) {
		rec, body := doJSON(t, router, http.MethodPost, "/signup", "", map[string]string{
			"email":    "alice@x.com",
			"password": "another-password",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Email already in use", body["message"])
	})

	t.Run("missing fields", func(t *testing.T) {
		for _, payload := range []map[string]string{
			{},
			{"email": "bob@x.com"},
			{"password": "pw"},
			{"email": "   ", "password": "pw"},
		} {
			rec, body := doJSON(t, router, http.MethodPost, "/signup", "", payload)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Email and password are required", body["message"])
		}
	})
}

func TestLogin(t *testing.T) {
	router := newTestRouter(t)
	signup(t, router, "alice@x.com", "secret1")

	t.Run("success issues fresh token", func(t *testing.T) {
		rec, body := doJSON(t, router, http.MethodPost, "/login", "", map[string]string{
			"email":    "alice@x.com",
			"password": "secret1",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"])
		assert.NotEmpty(t, body["token"])
		assert.Equal(t, "alice@x.com", body["user"].(map[string]interface{})["email"])
	})

	t.Run("wrong password and unknown email share one message", func(t *testing.T) {
		recWrong, bodyWrong := doJSON(t, router, http.MethodPost, "/login", "", map[string]string{
			"email":    "alice@x.com",
			"password": "wrong",
		})
		recUnknown, bodyUnknown := doJSON(t, router, http.MethodPost, "/login", "", map[string]string{
			"email":    "nobody@x.com",
			"password": "whatever",
		})
		assert.Equal(t, http.StatusUnauthorized, recWrong.Code)
		assert.Equal(t, http.StatusUnauthorized, recUnknown.Code)
		assert.Equal(t, "Invalid credentials", bodyWrong["message"])
		assert.Equal(t, bodyWrong["message"], bodyUnknown["message"])
	})

	t.Run("missing fields", func(t *testing.T) {
		rec, body := doJSON(t, router, http.MethodPost, "/login", "", map[string]string{"email": "alice@x.com"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Email and password are required", body["message"])
	})
}

func TestVerifyToken_RequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodGet, "/verify-token", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestTaskLifecycle(t *testing.T) {
	router := newTestRouter(t)
	token, userID := signup(t, router, "alice@x.com", "secret1")

	// Create.
	rec, body := doJSON(t, router, http.MethodPost, "/tasks", token, map[string]string{"title": "Buy milk"})
	require.Equal(t, http.StatusCreated, rec.Code)
	task := body["task"].(map[string]interface{})
	assert.Equal(t, "Buy milk", task["title"])
	assert.Equal(t, false, task["isCompleted"])
	assert.Equal(t, userID, task["ownerId"])
	taskID := task["id"].(string)

	// List contains exactly the new task.
	rec, body = doJSON(t, router, http.MethodGet, "/tasks", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := body["tasks"].([]interface{})
	require.Len(t, list, 1)
	assert.Equal(t, "Buy milk", list[0].(map[string]interface{})["title"])

	// Complete it.
	rec, body = doJSON(t, router, http.MethodPut, "/tasks/"+taskID, token, map[string]bool{"isCompleted": true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["task"].(map[string]interface{})["isCompleted"])

	rec, body = doJSON(t, router, http.MethodGet, "/tasks", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["tasks"].([]interface{})[0].(map[string]interface{})["isCompleted"])

	// Delete, then the list is an empty array, not null.
	rec, body = doJSON(t, router, http.MethodDelete, "/tasks/"+taskID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Task deleted successfully", body["message"])

	rec, body = doJSON(t, router, http.MethodGet, "/tasks", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, body["tasks"])
	assert.Empty(t, body["tasks"].([]interface{}))

	// Deleting the same id again is a clean 404.
	rec, body = doJSON(t, router, http.MethodDelete, "/tasks/"+taskID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Task not found", body["message"])
}

func TestTasks_MissingTitle(t *testing.T) {
	router := newTestRouter(t)
	token, _ := signup(t, router, "alice@x.com", "secret1")

	for _, payload := range []interface{}{
		map[string]string{},
		map[string]string{"title": ""},
		map[string]string{"title": "   "},
	} {
		rec, body := doJSON(t, router, http.MethodPost, "/tasks", token, payload)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Task title is required", body["message"])
	}
}

func TestTasks_OwnershipIsolation(t *testing.T) {
	router := newTestRouter(t)
	aliceToken, _ := signup(t, router, "alice@x.com", "secret1")
	bobToken, _ := signup(t, router, "bob@x.com", "secret2")

	_, body := doJSON(t, router, http.MethodPost, "/tasks", aliceToken, map[string]string{"title": "private"})
	taskID := body["task"].(map[string]interface{})["id"].(string)

	// Bob never sees Alice's task, and acting on its id looks exactly like
	// acting on an id that does not exist.
	rec, body := doJSON(t, router, http.MethodGet, "/tasks", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, body["tasks"].([]interface{}))

	rec, body = doJSON(t, router, http.MethodPut, "/tasks/"+taskID, bobToken, map[string]bool{"isCompleted": true})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Task not found", body["message"])

	rec, body = doJSON(t, router, http.MethodDelete, "/tasks/"+taskID, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Task not found", body["message"])

	// Alice's task survives untouched.
	rec, body = doJSON(t, router, http.MethodGet, "/tasks", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := body["tasks"].([]interface{})
	require.Len(t, list, 1)
	assert.Equal(t, false, list[0].(map[string]interface{})["isCompleted"])
}

func TestTasks_InvalidID(t *testing.T) {
	router := newTestRouter(t)
	token, _ := signup(t, router, "alice@x.com", "secret1")

	for _, method := range []string{http.MethodPut, http.MethodDelete} {
		rec, body := doJSON(t, router, method, "/tasks/not-a-uuid", token, map[string]bool{"isCompleted": true})
		assert.Equal(t, http.StatusNotFound, rec.Code, method)
		assert.Equal(t, "Task not found", body["message"], method)
	}
}

func TestTasks_RequireAuth(t *testing.T) {
	router := newTestRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/tasks"},
		{http.MethodPost, "/tasks"},
		{http.MethodPut, fmt.Sprintf("/tasks/%s", "00000000-0000-0000-0000-000000000000")},
		{http.MethodDelete, fmt.Sprintf("/tasks/%s", "00000000-0000-0000-0000-000000000000")},
	}
	for _, p := range paths {
		rec, body := doJSON(t, router, p.method, p.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, p)
		assert.Equal(t, false, body["success"], p)
		assert.Equal(t, "Access denied. No token provided", body["message"], p)
	}
}
