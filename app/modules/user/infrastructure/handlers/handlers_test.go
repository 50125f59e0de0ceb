package userhandlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	userservice "github.com/Black-And-White-Club/frolf-rounds/app/modules/user/application"
	usertypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/user/domain/types"
	"github.com/Black-And-White-Club/frolf-rounds/pkg/results"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type FakeUserService struct {
	GetUserFunc    func(ctx context.Context, discordID usertypes.DiscordID) (userservice.UserResult, error)
	CreateUserFunc func(ctx context.Context, input usertypes.CreateUserInput) (userservice.UserResult, error)
	UpdateUserFunc func(ctx context.Context, input usertypes.UpdateUserInput, requesterRole usertypes.UserRole) (userservice.UserResult, error)
}

func (f *FakeUserService) GetUser(ctx context.Context, discordID usertypes.DiscordID) (userservice.UserResult, error) {
	return f.GetUserFunc(ctx, discordID)
}

func (f *FakeUserService) CreateUser(ctx context.Context, input usertypes.CreateUserInput) (userservice.UserResult, error) {
	return f.CreateUserFunc(ctx, input)
}

func (f *FakeUserService) UpdateUser(ctx context.Context, input usertypes.UpdateUserInput, requesterRole usertypes.UserRole) (userservice.UserResult, error) {
	return f.UpdateUserFunc(ctx, input, requesterRole)
}

func (f *FakeUserService) GetUserTag(context.Context, usertypes.DiscordID) (*int, error) {
	return nil, nil
}

var _ userservice.Service = (*FakeUserService)(nil)

const discordID = "123456789012345678"

func newTestRouter(svc userservice.Service) http.Handler {
	r := chi.NewRouter()
	r.Route("/users", NewHandlers(svc, slog.Default()).Routes)
	return r
}

func send(t *testing.T, h http.Handler, method, path string, body any, role string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if role != "" {
		req.Header.Set(UserRoleHeader, role)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGetUserHandler(t *testing.T) {
	svc := &FakeUserService{
		GetUserFunc: func(_ context.Context, id usertypes.DiscordID) (userservice.UserResult, error) {
			if id == discordID {
				return results.SuccessResult[*usertypes.User, error](&usertypes.User{DiscordID: id, Name: "Alex", Role: usertypes.UserRoleRattler}), nil
			}
			return results.FailureResult[*usertypes.User, error](userservice.ErrUserNotFound), nil
		},
	}
	router := newTestRouter(svc)

	rec := send(t, router, http.MethodGet, "/users/"+discordID, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var user usertypes.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "Alex", user.Name)

	assert.Equal(t, http.StatusNotFound, send(t, router, http.MethodGet, "/users/999", nil, "").Code)
}

func TestCreateUserHandler(t *testing.T) {
	tests := []struct {
		name    string
		failure error
		infra   error
		want    int
	}{
		{name: "created", want: http.StatusCreated},
		{name: "duplicate", failure: userservice.ErrUserAlreadyExists, want: http.StatusConflict},
		{name: "invalid", failure: &userservice.ValidationError{Problems: []string{"name is required"}}, want: http.StatusBadRequest},
		{name: "infrastructure", infra: errors.New("db down"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &FakeUserService{
				CreateUserFunc: func(_ context.Context, input usertypes.CreateUserInput) (userservice.UserResult, error) {
					if tt.infra != nil {
						return userservice.UserResult{}, tt.infra
					}
					if tt.failure != nil {
						return results.FailureResult[*usertypes.User, error](tt.failure), nil
					}
					return results.SuccessResult[*usertypes.User, error](&usertypes.User{DiscordID: input.DiscordID, Name: input.Name, Role: usertypes.UserRoleRattler}), nil
				},
			}
			rec := send(t, newTestRouter(svc), http.MethodPost, "/users", map[string]any{"discord_id": discordID, "name": "Alex"}, "")
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestUpdateUserHandler_PassesRequesterRole(t *testing.T) {
	var roleSeen usertypes.UserRole
	var inputSeen usertypes.UpdateUserInput
	svc := &FakeUserService{
		UpdateUserFunc: func(_ context.Context, input usertypes.UpdateUserInput, requesterRole usertypes.UserRole) (userservice.UserResult, error) {
			roleSeen, inputSeen = requesterRole, input
			if input.Role != nil && input.Role.Privileged() && requesterRole != usertypes.UserRoleAdmin {
				return results.FailureResult[*usertypes.User, error](userservice.ErrUnauthorizedRoleChange), nil
			}
			return results.SuccessResult[*usertypes.User, error](&usertypes.User{DiscordID: input.DiscordID}), nil
		},
	}
	router := newTestRouter(svc)

	rec := send(t, router, http.MethodPatch, "/users/"+discordID, map[string]any{"role": "EDITOR"}, "EDITOR")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, usertypes.UserRoleEditor, roleSeen)
	assert.Equal(t, usertypes.DiscordID(discordID), inputSeen.DiscordID)

	rec = send(t, router, http.MethodPatch, "/users/"+discordID, map[string]any{"role": "ADMIN"}, "superuser")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, usertypes.UserRoleRattler, roleSeen)

	rec = send(t, router, http.MethodPatch, "/users/"+discordID, map[string]any{"role": "EDITOR"}, "ADMIN")
	assert.Equal(t, http.StatusOK, rec.Code)
}
