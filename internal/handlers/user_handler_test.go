package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	apperrors "github.com/itimpact/spendx/internal/errors"
	"github.com/itimpact/spendx/internal/models"
)

func TestListUsers(t *testing.T) {
	deps := newTestDeps()
	deps.users.listFn = func(ctx context.Context) ([]models.User, error) {
		return []models.User{
			{ID: 1, Username: "alice", Email: "alice@example.com", PasswordHash: "secret"},
			{ID: 2, Username: "bob", Email: "bob@example.com"},
		}, nil
	}

	rec := doRequest(deps.router(), http.MethodGet, "/users", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "secret") || strings.Contains(body, "passwordHash") {
		t.Errorf("password hash leaked into response: %s", body)
	}
	if !strings.Contains(body, `"userId":1`) || !strings.Contains(body, `"username":"bob"`) {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestGetUser(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		deps := newTestDeps()
		deps.users.getFn = func(ctx context.Context, id int64) (*models.User, error) {
			return &models.User{ID: id, Username: "carol", Email: "carol@example.com"}, nil
		}

		rec := doRequest(deps.router(), http.MethodGet, "/users/3", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["userId"] != float64(3) || result["username"] != "carol" {
			t.Errorf("unexpected body: %v", result)
		}
	})

	t.Run("not found", func(t *testing.T) {
		deps := newTestDeps()
		deps.users.getFn = func(ctx context.Context, id int64) (*models.User, error) {
			return nil, apperrors.ErrUserNotFound
		}

		rec := doRequest(deps.router(), http.MethodGet, "/users/3", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
		assertError(t, parseJSON(t, rec), "USER_NOT_FOUND", "")
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := newTestDeps()

		rec := doRequest(deps.router(), http.MethodGet, "/users/abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
		assertError(t, parseJSON(t, rec), "INVALID_INPUT", "Invalid id")
	})
}

func TestCreateUser(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		deps := newTestDeps()
		var got models.CreateUserRequest
		deps.users.createFn = func(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
			got = req
			return &models.User{ID: 10, Username: req.Username, Email: req.Email, PasswordHash: "hashed"}, nil
		}

		rec := doRequest(deps.router(), http.MethodPost, "/users",
			`{"username":"dave","email":"dave@example.com","password":"password123"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Password != "password123" {
			t.Errorf("expected password to reach the service, got %q", got.Password)
		}
		if parseJSON(t, rec)["userId"] != float64(10) {
			t.Errorf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("validation errors", func(t *testing.T) {
		bodies := map[string]string{
			"malformed json": `{"username":`,
			"missing email":  `{"username":"dave","password":"password123"}`,
			"bad email":      `{"username":"dave","email":"nope","password":"password123"}`,
			"short password": `{"username":"dave","email":"dave@example.com","password":"short"}`,
			"short username": `{"username":"d","email":"dave@example.com","password":"password123"}`,
		}
		for name, body := range bodies {
			t.Run(name, func(t *testing.T) {
				deps := newTestDeps()
				rec := doRequest(deps.router(), http.MethodPost, "/users", body)

				if rec.Code != http.StatusBadRequest {
					t.Fatalf("expected status 400, got %d", rec.Code)
				}
				assertError(t, parseJSON(t, rec), "INVALID_INPUT", "")
			})
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		deps := newTestDeps()
		deps.users.createFn = func(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
			return nil, apperrors.ErrDuplicateEmail
		}

		rec := doRequest(deps.router(), http.MethodPost, "/users",
			`{"username":"dave","email":"dave@example.com","password":"password123"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected status 409, got %d", rec.Code)
		}
		assertError(t, parseJSON(t, rec), "DUPLICATE_EMAIL", "")
	})
}

func TestUpdateUser(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		deps := newTestDeps()
		var gotID int64
		deps.users.updateFn = func(ctx context.Context, id int64, req models.UpdateUserRequest) (*models.User, error) {
			gotID = id
			return &models.User{ID: id, Username: req.Username, Email: req.Email}, nil
		}

		rec := doRequest(deps.router(), http.MethodPut, "/users/5", `{"username":"erin","email":"erin@example.com"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotID != 5 {
			t.Errorf("expected id 5, got %d", gotID)
		}
	})

	t.Run("not found", func(t *testing.T) {
		deps := newTestDeps()
		deps.users.updateFn = func(ctx context.Context, id int64, req models.UpdateUserRequest) (*models.User, error) {
			return nil, apperrors.ErrUserNotFound
		}

		rec := doRequest(deps.router(), http.MethodPut, "/users/5", `{"username":"erin","email":"erin@example.com"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
	})

	t.Run("invalid body", func(t *testing.T) {
		deps := newTestDeps()

		rec := doRequest(deps.router(), http.MethodPut, "/users/5", `{"username":"erin"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		deps := newTestDeps()
		var gotID int64
		deps.users.deleteFn = func(ctx context.Context, id int64) error {
			gotID = id
			return nil
		}

		rec := doRequest(deps.router(), http.MethodDelete, "/users/8", "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected status 204, got %d", rec.Code)
		}
		if gotID != 8 {
			t.Errorf("expected id 8, got %d", gotID)
		}
	})

	t.Run("not found", func(t *testing.T) {
		deps := newTestDeps()
		deps.users.deleteFn = func(ctx context.Context, id int64) error {
			return apperrors.ErrUserNotFound
		}

		rec := doRequest(deps.router(), http.MethodDelete, "/users/8", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := newTestDeps()

		rec := doRequest(deps.router(), http.MethodDelete, "/users/0", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
	})
}
