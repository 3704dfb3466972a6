package main

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	usr "github.com/zero3nine/AgriLinkWeb/internal/user"
)

type stubUserRepo struct {
	users map[string]*usr.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*usr.User)}
}

func (s *stubUserRepo) add(u usr.User) {
	cp := u
	s.users[u.ID] = &cp
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*usr.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, usr.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *stubUserRepo) ListByRole(ctx context.Context, role string) ([]usr.User, error) {
	var out []usr.User
	for _, u := range s.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func newUserRouter(repo usr.Repository) *gin.Engine {
	r := gin.New()
	r.GET("/users/:id", getUserHandler(repo))
	r.GET("/users", listUsersHandler(repo))
	return r
}

func TestGetUser_HidesEmail(t *testing.T) {
	t.Parallel()

	repo := newStubUserRepo()
	id := uuid.NewString()
	repo.add(usr.User{ID: id, Username: "kumar", Email: "kumar@example.com", Role: usr.RoleSeller})
	r := newUserRouter(repo)

	w := doJSON(t, r, http.MethodGet, "/users/"+id, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got usr.User
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Username != "kumar" || got.Role != usr.RoleSeller {
		t.Fatalf("unexpected user: %+v", got)
	}
	if got.Email != "" {
		t.Fatalf("email leaked: %q", got.Email)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	t.Parallel()

	r := newUserRouter(newStubUserRepo())
	w := doJSON(t, r, http.MethodGet, "/users/"+uuid.NewString(), "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d (want 404)", w.Code)
	}
}

func TestListUsers_ByRole(t *testing.T) {
	t.Parallel()

	repo := newStubUserRepo()
	repo.add(usr.User{ID: uuid.NewString(), Username: "rider1", Role: usr.RoleDelivery})
	repo.add(usr.User{ID: uuid.NewString(), Username: "farmer1", Role: usr.RoleSeller})
	r := newUserRouter(repo)

	w := doJSON(t, r, http.MethodGet, "/users?role=delivery_provider", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got []usr.User
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got) != 1 || got[0].Username != "rider1" {
		t.Fatalf("unexpected listing: %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/users", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing role status=%d (want 400)", w.Code)
	}
}
